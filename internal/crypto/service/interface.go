// Package service implements the two leaf units of the engine: AES-256-GCM authenticated
// encryption and Argon2id password hashing. Units perform no I/O and no logging; they return a
// domain value or one of the typed errors from the domain package.
package service

import (
	"crypto/rand"
	"io"

	cryptoDomain "github.com/allisson/crypto-api/internal/crypto/domain"
)

// Cipher defines authenticated encryption under a single long-lived key.
type Cipher interface {
	// Encrypt seals plaintext under a fresh nonce, binding the optional aad into the tag.
	Encrypt(plaintext, aad []byte) (cryptoDomain.CipherEnvelope, error)

	// Decrypt verifies the envelope's tag and returns the plaintext.
	Decrypt(envelope cryptoDomain.CipherEnvelope, aad []byte) ([]byte, error)
}

// PasswordHasher defines memory-hard password hashing and verification.
type PasswordHasher interface {
	// Hash derives a self-describing hash. A nil params uses the hasher defaults.
	Hash(password []byte, params *cryptoDomain.HashParams) (cryptoDomain.PasswordHash, error)

	// Verify reports whether password matches stored. A mismatch is false, not an error.
	Verify(password []byte, stored cryptoDomain.PasswordHash) (bool, error)
}

// DefaultNonceWindow is the number of recent nonces remembered for duplicate detection.
const DefaultNonceWindow = 1 << 16

// options holds the settings shared by the unit constructors.
type options struct {
	random      io.Reader
	nonceWindow int
}

// Option configures a unit at construction.
type Option func(*options)

// WithRandom replaces the entropy source used for nonces and salts.
// It must be a CSPRNG in production; tests use it to simulate a failing or repeating source.
func WithRandom(r io.Reader) Option {
	return func(o *options) {
		o.random = r
	}
}

// WithNonceWindow sets how many recent nonces the cipher remembers to detect repeats.
// Zero disables duplicate detection but keeps the per-key invocation budget.
func WithNonceWindow(n int) Option {
	return func(o *options) {
		o.nonceWindow = n
	}
}

func newOptions(opts []Option) options {
	o := options{
		random:      rand.Reader,
		nonceWindow: DefaultNonceWindow,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
