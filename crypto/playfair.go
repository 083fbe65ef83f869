// Package crypto contains Playfair Encryption and Decryption
package crypto

import (
	"fmt"
	"strings"
)

const (
	squareSize = 5
	alphabet   = "ABCDEFGHIKLMNOPQRSTUVWXYZ"
	filler     = 'X'
)

// Padding selects how an unpaired trailing letter is handled.
type Padding int

const (
	// PaddingCompat pads like the reference implementation: an odd-length
	// message always gets an extra (last, X) pair after the scan, even when
	// the last letter was already consumed.
	PaddingCompat Padding = iota
	// PaddingStandard pads only a letter the scan left unpaired.
	PaddingStandard
)

func (p Padding) String() string {
	switch p {
	case PaddingCompat:
		return "compat"
	case PaddingStandard:
		return "standard"
	default:
		return fmt.Sprintf("Padding(%d)", int(p))
	}
}

// ParsePadding accepts "compat", "standard" or an empty string (compat).
func ParsePadding(s string) (Padding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "compat":
		return PaddingCompat, nil
	case "standard":
		return PaddingStandard, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPadding, s)
	}
}

// Direction of a substitution pass.
type Direction int

const (
	// Encipher shifts right in a row and down in a column.
	Encipher Direction = iota
	// Decipher shifts left and up.
	Decipher
)

// Position is a cell in a KeySquare.
type Position struct {
	Row int
	Col int
}

// Digraph is one substitution unit.
type Digraph struct {
	First  byte
	Second byte
}

func (d Digraph) String() string {
	return string([]byte{d.First, d.Second})
}

// KeySquare is the 5x5 letter matrix derived from a key. The zero value is
// not usable; build one with NewKeySquare.
type KeySquare struct {
	cells [squareSize][squareSize]byte
	index [26]Position
}

// NewKeySquare builds the square for key. Any string is accepted: key letters
// come first in order of first appearance, then the rest of the alphabet.
func NewKeySquare(key string) KeySquare {
	var sq KeySquare
	var seen [26]bool

	flat := make([]byte, 0, squareSize*squareSize)
	add := func(c byte) {
		if c < 'A' || c > 'Z' || seen[c-'A'] {
			return
		}
		seen[c-'A'] = true
		flat = append(flat, c)
	}

	normalized := normalize(key)
	for i := 0; i < len(normalized); i++ {
		add(normalized[i])
	}
	for i := 0; i < len(alphabet); i++ {
		add(alphabet[i])
	}

	for i, c := range flat {
		pos := Position{Row: i / squareSize, Col: i % squareSize}
		sq.cells[pos.Row][pos.Col] = c
		sq.index[c-'A'] = pos
	}
	// J shares I's cell
	sq.index['J'-'A'] = sq.index['I'-'A']

	return sq
}

// At returns the letter at pos.
func (sq KeySquare) At(pos Position) byte {
	return sq.cells[pos.Row][pos.Col]
}

// Locate returns the position of c, which must be an uppercase letter.
func (sq KeySquare) Locate(c byte) (Position, bool) {
	if c < 'A' || c > 'Z' {
		return Position{}, false
	}
	return sq.index[c-'A'], true
}

// Rows returns the square as five strings of five letters.
func (sq KeySquare) Rows() []string {
	rows := make([]string, squareSize)
	for r := range sq.cells {
		rows[r] = string(sq.cells[r][:])
	}
	return rows
}

func (sq KeySquare) String() string {
	var b strings.Builder
	for r := range sq.cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := range sq.cells[r] {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte(sq.cells[r][c])
		}
	}
	return b.String()
}

// PrepareDigraphs splits normalized text into letter pairs. A doubled letter
// is split with X and revisited as the start of the next pair.
func PrepareDigraphs(text string, padding Padding) []Digraph {
	pairs := make([]Digraph, 0, len(text)/2+1)

	for i := 0; i < len(text); {
		first := text[i]
		if i+1 < len(text) && text[i+1] != first {
			pairs = append(pairs, Digraph{First: first, Second: text[i+1]})
			i += 2
			continue
		}
		pairs = append(pairs, Digraph{First: first, Second: filler})
		i++
	}

	if padding == PaddingCompat && len(text)%2 != 0 {
		pairs = append(pairs, Digraph{First: text[len(text)-1], Second: filler})
	}

	return pairs
}

// Substitute applies the row, column and rectangle rules to every pair.
func Substitute(sq KeySquare, pairs []Digraph, dir Direction) ([]Digraph, error) {
	shift := 1
	if dir == Decipher {
		shift = squareSize - 1
	}

	out := make([]Digraph, len(pairs))
	for i, pair := range pairs {
		p1, ok := sq.Locate(pair.First)
		if !ok {
			return nil, fmt.Errorf("%w: %q in pair %d", ErrInvalidInput, pair.First, i)
		}
		p2, ok := sq.Locate(pair.Second)
		if !ok {
			return nil, fmt.Errorf("%w: %q in pair %d", ErrInvalidInput, pair.Second, i)
		}

		switch {
		case p1.Row == p2.Row:
			p1.Col = (p1.Col + shift) % squareSize
			p2.Col = (p2.Col + shift) % squareSize
		case p1.Col == p2.Col:
			p1.Row = (p1.Row + shift) % squareSize
			p2.Row = (p2.Row + shift) % squareSize
		default:
			p1.Col, p2.Col = p2.Col, p1.Col
		}

		out[i] = Digraph{First: sq.At(p1), Second: sq.At(p2)}
	}

	return out, nil
}

// Encrypt enciphers plaintext under key using compat padding.
func Encrypt(key, plaintext string) (string, error) {
	return NewPlayfair(key).Encrypt(plaintext)
}

// Decrypt deciphers ciphertext under key. The ciphertext is paired with the
// same rules as plaintext.
func Decrypt(key, ciphertext string) (string, error) {
	return NewPlayfair(key).Decrypt(ciphertext)
}

// Playfair holds one key square for repeated use.
type Playfair struct {
	square  KeySquare
	padding Padding
}

// Option configures a Playfair.
type Option func(*Playfair)

// WithPadding overrides the default compat padding.
func WithPadding(p Padding) Option {
	return func(pf *Playfair) {
		pf.padding = p
	}
}

// NewPlayfair builds the key square for key once. A Playfair is never
// mutated after construction and may be shared between goroutines.
func NewPlayfair(key string, opts ...Option) *Playfair {
	pf := &Playfair{
		square:  NewKeySquare(key),
		padding: PaddingCompat,
	}
	for _, opt := range opts {
		opt(pf)
	}
	return pf
}

// Square returns a copy of the key square.
func (pf *Playfair) Square() KeySquare {
	return pf.square
}

// Padding reports the padding mode in use.
func (pf *Playfair) Padding() Padding {
	return pf.padding
}

// Digraphs returns the pairs text would be split into.
func (pf *Playfair) Digraphs(text string) []Digraph {
	return PrepareDigraphs(normalize(text), pf.padding)
}

func (pf *Playfair) Encrypt(plaintext string) (string, error) {
	return pf.run(plaintext, Encipher)
}

func (pf *Playfair) Decrypt(ciphertext string) (string, error) {
	return pf.run(ciphertext, Decipher)
}

func (pf *Playfair) run(text string, dir Direction) (string, error) {
	out, err := Substitute(pf.square, pf.Digraphs(text), dir)
	if err != nil {
		return "", err
	}
	return JoinDigraphs(out), nil
}

// JoinDigraphs concatenates pairs into a single string.
func JoinDigraphs(pairs []Digraph) string {
	buf := make([]byte, 0, len(pairs)*2)
	for _, p := range pairs {
		buf = append(buf, p.First, p.Second)
	}
	return string(buf)
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToUpper(s), "J", "I")
}
