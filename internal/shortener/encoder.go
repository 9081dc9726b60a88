package shortener

import (
	"fmt"

	"github.com/jaevor/go-nanoid"
)

const (
	// DefaultAlphabet is URL-safe and free of punctuation.
	DefaultAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	DefaultCodeLength = 6
	MinCodeLength     = 4
	MaxCodeLength     = 16
)

// Encoder produces random short codes of a fixed length.
type Encoder struct {
	generate func() string
	length   int
}

// NewEncoder creates an encoder drawing length characters from alphabet.
// An empty alphabet selects DefaultAlphabet.
func NewEncoder(alphabet string, length int) (*Encoder, error) {
	if length < MinCodeLength || length > MaxCodeLength {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidCodeLength, length, MinCodeLength, MaxCodeLength)
	}

	if alphabet == "" {
		alphabet = DefaultAlphabet
	}

	generate, err := nanoid.CustomASCII(alphabet, length)
	if err != nil {
		return nil, fmt.Errorf("create code generator: %w", err)
	}

	return &Encoder{generate: generate, length: length}, nil
}

// NewEncoderFunc wraps an arbitrary generator, mostly for tests.
func NewEncoderFunc(generate func() string) *Encoder {
	return &Encoder{generate: generate}
}

// Encode returns a fresh code.
func (e *Encoder) Encode() Code {
	return Code(e.generate())
}

// Length is the length of generated codes, zero for NewEncoderFunc encoders.
func (e *Encoder) Length() int {
	return e.length
}
