package crypto

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxKeyLength = 256

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrEmptyKey       = errors.New("key cannot be empty")
	ErrKeyTooLong     = fmt.Errorf("key length cannot exceed %d characters", maxKeyLength)
	ErrEmptyMessage   = errors.New("message has no letters")
	ErrUnknownPadding = errors.New("unknown padding")
)

// Sanitize turns raw user input into cipher text: accents are dropped,
// letters upper-cased and everything outside A-Z removed.
func Sanitize(raw string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, raw)
	if err != nil {
		folded = raw
	}
	folded = cases.Upper(language.Und).String(folded)

	buf := make([]byte, 0, len(folded))
	for i := 0; i < len(folded); i++ {
		if c := folded[i]; c >= 'A' && c <= 'Z' {
			buf = append(buf, c)
		}
	}
	return string(buf)
}

// ValidateKey validates if the key is suitable for a key square
func ValidateKey(key string) error {
	if utf8.RuneCountInString(key) > maxKeyLength {
		return ErrKeyTooLong
	}
	if Sanitize(key) == "" {
		return ErrEmptyKey
	}
	return nil
}

// ValidateMessage rejects text the core cannot substitute. Callers are
// expected to run Sanitize first.
func ValidateMessage(text string) error {
	normalized := normalize(text)
	if normalized == "" {
		return ErrEmptyMessage
	}
	for i := 0; i < len(normalized); i++ {
		if c := normalized[i]; c < 'A' || c > 'Z' {
			return fmt.Errorf("%w: non-letter %q at offset %d", ErrInvalidInput, c, i)
		}
	}
	return nil
}
