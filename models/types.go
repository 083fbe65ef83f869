// Package models contain needed models
package models

// CipherRequest represents the request for encrypting or decrypting a message
type CipherRequest struct {
	Key     string `json:"key" binding:"required"`
	Text    string `json:"text" binding:"required"`
	Padding string `json:"padding"`
}

// CipherResponse represents the response after encryption or decryption
type CipherResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Result   string   `json:"result,omitempty"`
	Input    string   `json:"input,omitempty"`
	Digraphs []string `json:"digraphs,omitempty"`
	Padding  string   `json:"padding,omitempty"`
}

// SquareRequest represents the request for inspecting a key square
type SquareRequest struct {
	Key string `json:"key" binding:"required"`
}

// SquareResponse represents the key square derived from a key
type SquareResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Rows    []string `json:"rows,omitempty"`
}

// CipherConfig represents configuration for cipher operations
type CipherConfig struct {
	Padding          string `mapstructure:"padding"`
	MaxMessageLength int    `mapstructure:"max_message_length"`
}
