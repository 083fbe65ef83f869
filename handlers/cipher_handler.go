// Package handlers is made to handle requests
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"playfair-backend/crypto"
	"playfair-backend/models"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

const Version = "1.0.0"

type CipherHandler struct {
	log    logrus.FieldLogger
	config models.CipherConfig
}

func NewCipherHandler(log logrus.FieldLogger, config models.CipherConfig) *CipherHandler {
	return &CipherHandler{
		log:    log,
		config: config,
	}
}

func (h *CipherHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Playfair API is running",
		"version": Version,
	})
}

func (h *CipherHandler) EncryptMessage(c *gin.Context) {
	h.handleCipher(c, crypto.Encipher)
}

func (h *CipherHandler) DecryptMessage(c *gin.Context) {
	h.handleCipher(c, crypto.Decipher)
}

func (h *CipherHandler) KeySquare(c *gin.Context) {
	var req models.SquareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.SquareResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid request: %v", err),
		})
		return
	}

	if err := crypto.ValidateKey(req.Key); err != nil {
		c.JSON(http.StatusBadRequest, models.SquareResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid key: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, models.SquareResponse{
		Success: true,
		Message: "Key square generated",
		Rows:    crypto.NewKeySquare(crypto.Sanitize(req.Key)).Rows(),
	})
}

func (h *CipherHandler) handleCipher(c *gin.Context, dir crypto.Direction) {
	var req models.CipherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.CipherResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid request: %v", err),
		})
		return
	}

	if err := crypto.ValidateKey(req.Key); err != nil {
		c.JSON(http.StatusBadRequest, models.CipherResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid key: %v", err),
		})
		return
	}

	text := crypto.Sanitize(req.Text)
	if h.config.MaxMessageLength > 0 && len(text) > h.config.MaxMessageLength {
		c.JSON(http.StatusBadRequest, models.CipherResponse{
			Success: false,
			Message: fmt.Sprintf("Message too long. Maximum: %d letters, got: %d letters",
				h.config.MaxMessageLength, len(text)),
		})
		return
	}

	if err := crypto.ValidateMessage(text); err != nil {
		c.JSON(http.StatusBadRequest, models.CipherResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid message: %v", err),
		})
		return
	}

	paddingName := req.Padding
	if paddingName == "" {
		paddingName = h.config.Padding
	}
	padding, err := crypto.ParsePadding(paddingName)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.CipherResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid padding: %v", err),
		})
		return
	}

	// The key gets the same accent folding as the message.
	pf := crypto.NewPlayfair(crypto.Sanitize(req.Key), crypto.WithPadding(padding))
	pairs := pf.Digraphs(text)

	var result string
	if dir == crypto.Encipher {
		result, err = pf.Encrypt(text)
	} else {
		result, err = pf.Decrypt(text)
	}
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, crypto.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		h.log.WithError(err).WithField(RequestIDKey, c.GetString(RequestIDKey)).Error("cipher operation failed")
		c.JSON(status, models.CipherResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to process message: %v", err),
		})
		return
	}

	h.log.WithFields(logrus.Fields{
		RequestIDKey: c.GetString(RequestIDKey),
		"direction":  directionName(dir),
		"pairs":      len(pairs),
		"padding":    padding.String(),
	}).Debug("message processed")

	digraphs := make([]string, len(pairs))
	for i, p := range pairs {
		digraphs[i] = p.String()
	}

	c.Header("X-Cipher-Pairs", strconv.Itoa(len(pairs)))
	c.Header("X-Cipher-Padding", padding.String())

	c.JSON(http.StatusOK, models.CipherResponse{
		Success:  true,
		Message:  fmt.Sprintf("Message successfully %s", directionName(dir)),
		Result:   result,
		Input:    text,
		Digraphs: digraphs,
		Padding:  padding.String(),
	})
}

func directionName(dir crypto.Direction) string {
	if dir == crypto.Decipher {
		return "decrypted"
	}
	return "encrypted"
}
