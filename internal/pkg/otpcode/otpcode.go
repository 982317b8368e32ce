// Package otpcode generates random numeric one-time codes.
//
// Codes are short-lived secrets sent out of band (email), so the default
// randomness source is crypto/rand. The source is injectable for tests.
package otpcode

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// ErrInvalidLength is returned when the configured code length is unusable.
var ErrInvalidLength = errors.New("otpcode: length must be between 4 and 10")

// Generator produces one-time codes.
type Generator interface {
	// Generate returns a new random code.
	Generate() (string, error)
}

// Numeric generates fixed-length digit codes.
type Numeric struct {
	length int
	max    *big.Int
	source io.Reader
}

// Option customizes a Numeric generator.
type Option func(*Numeric)

// WithSource overrides the randomness source. Meant for tests.
func WithSource(r io.Reader) Option {
	return func(n *Numeric) {
		n.source = r
	}
}

// NewNumeric returns a generator for codes of the given digit length.
func NewNumeric(length int, opts ...Option) (*Numeric, error) {
	if length < 4 || length > 10 {
		return nil, ErrInvalidLength
	}

	max := big.NewInt(10)
	max.Exp(max, big.NewInt(int64(length)), nil)

	n := &Numeric{length: length, max: max, source: rand.Reader}
	for _, opt := range opts {
		opt(n)
	}

	return n, nil
}

// Generate returns a new random code, zero padded to the configured length.
func (n *Numeric) Generate() (string, error) {
	v, err := rand.Int(n.source, n.max)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", n.length, v), nil
}
