// Package usecase exposes the cryptographic engine to the request layer: it composes the codec
// with the cipher and hasher units, runs password hashing on a bounded worker pool and halts the
// engine after a fatal entropy failure.
package usecase

import (
	"context"

	cryptoDomain "github.com/allisson/crypto-api/internal/crypto/domain"
)

// CryptoUseCase defines the operations offered by the cryptographic engine.
type CryptoUseCase interface {
	// Encrypt seals plaintext under the engine key. The optional aad is authenticated but not
	// encrypted and must be presented again on Decrypt.
	Encrypt(ctx context.Context, plaintext, aad []byte) (*cryptoDomain.CipherEnvelope, error)

	// Decrypt decodes a text envelope and returns its plaintext.
	//
	// Security Note: Callers MUST zero the returned plaintext after use by calling
	// cryptoDomain.Zero(plaintext).
	Decrypt(ctx context.Context, ciphertext string, aad []byte) ([]byte, error)

	// Hash derives a self-describing Argon2id hash of password with the engine defaults.
	Hash(ctx context.Context, password []byte) (*cryptoDomain.PasswordHash, error)

	// Verify reports whether password matches the encoded hash.
	Verify(ctx context.Context, password []byte, encoded string) (bool, error)

	// Halted reports whether a fatal failure has stopped the engine.
	Halted() bool
}

// FatalHandler is invoked once, with the triggering error, when the engine halts.
type FatalHandler func(err error)
