package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := map[string]string{
		"HELLO WORLD":       "HELLOWORLD",
		"hello, world!":     "HELLOWORLD",
		"Crème brûlée 2024": "CREMEBRULEE",
		"   ":               "",
		"jumbo-jet":         "JUMBOJET",
	}

	for in, want := range tests {
		assert.Equal(t, want, Sanitize(in), "Sanitize(%q)", in)
	}
}

func TestValidateKey(t *testing.T) {
	assert.NoError(t, ValidateKey("playfair example"))
	assert.ErrorIs(t, ValidateKey(""), ErrEmptyKey)
	assert.ErrorIs(t, ValidateKey("1234 !!"), ErrEmptyKey)
	assert.ErrorIs(t, ValidateKey(strings.Repeat("K", maxKeyLength+1)), ErrKeyTooLong)
}

func TestValidateMessage(t *testing.T) {
	assert.NoError(t, ValidateMessage("HIDETHEGOLD"))
	assert.NoError(t, ValidateMessage("jello"))
	assert.ErrorIs(t, ValidateMessage(""), ErrEmptyMessage)
	assert.ErrorIs(t, ValidateMessage("HELLO WORLD"), ErrInvalidInput)
}
