package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"

	cryptoDomain "github.com/allisson/crypto-api/internal/crypto/domain"
	apperrors "github.com/allisson/crypto-api/internal/errors"
)

// DefaultMaxPasswordLength caps password input to keep hashing cost bounded per request.
const DefaultMaxPasswordLength = 1024

// Argon2idHasher implements PasswordHasher with Argon2id (RFC 9106).
//
// Each Hash call draws a fresh salt from the entropy source and records the algorithm, version and
// parameters in the returned PasswordHash, so Verify never depends on the hasher's own defaults.
// Safe for concurrent use; derivation is CPU and memory bound and should run off request
// goroutines (see usecase.CryptoUseCase).
type Argon2idHasher struct {
	params            cryptoDomain.HashParams
	maxPasswordLength int
	random            io.Reader
}

// NewArgon2idHasher creates a hasher with default params and a password length cap.
// Returns ErrInvalidHashParams if params are out of bounds.
func NewArgon2idHasher(
	params cryptoDomain.HashParams,
	maxPasswordLength int,
	opts ...Option,
) (*Argon2idHasher, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if maxPasswordLength <= 0 {
		return nil, errors.New("max password length must be positive")
	}

	o := newOptions(opts)
	return &Argon2idHasher{
		params:            params,
		maxPasswordLength: maxPasswordLength,
		random:            o.random,
	}, nil
}

// Params returns the default parameters used when Hash is called with nil params.
func (h *Argon2idHasher) Params() cryptoDomain.HashParams {
	return h.params
}

// Hash derives an Argon2id hash of password.
//
// Returns ErrEmptyPassword for an empty password, ErrPayloadTooLarge above the length cap,
// ErrInvalidHashParams for out-of-bounds params and ErrEntropySourceUnavailable if no salt can be
// generated.
func (h *Argon2idHasher) Hash(
	password []byte,
	params *cryptoDomain.HashParams,
) (cryptoDomain.PasswordHash, error) {
	if len(password) == 0 {
		return cryptoDomain.PasswordHash{}, cryptoDomain.ErrEmptyPassword
	}
	if len(password) > h.maxPasswordLength {
		return cryptoDomain.PasswordHash{}, fmt.Errorf(
			"%w: password exceeds %d bytes",
			cryptoDomain.ErrPayloadTooLarge,
			h.maxPasswordLength,
		)
	}

	p := h.params
	if params != nil {
		p = *params
		if err := p.Validate(); err != nil {
			return cryptoDomain.PasswordHash{}, err
		}
	}

	salt := make([]byte, p.SaltLength)
	if _, err := io.ReadFull(h.random, salt); err != nil {
		return cryptoDomain.PasswordHash{}, apperrors.Wrapf(
			cryptoDomain.ErrEntropySourceUnavailable,
			"reading salt: %v",
			err,
		)
	}

	return cryptoDomain.PasswordHash{
		Algorithm: cryptoDomain.Argon2id,
		Version:   argon2.Version,
		Params:    p,
		Salt:      salt,
		Hash:      argon2.IDKey(password, salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength),
	}, nil
}

// Verify re-derives a hash from password with the salt and parameters embedded in stored and
// compares the result in constant time.
//
// Returns ErrMalformedHash if stored names another algorithm or version or carries parameters out
// of bounds, and ErrPayloadTooLarge above the length cap. A wrong or empty password is (false, nil).
func (h *Argon2idHasher) Verify(password []byte, stored cryptoDomain.PasswordHash) (bool, error) {
	if stored.Algorithm != cryptoDomain.Argon2id {
		return false, fmt.Errorf("%w: unsupported algorithm %q", cryptoDomain.ErrMalformedHash, stored.Algorithm)
	}
	if stored.Version != argon2.Version {
		return false, fmt.Errorf("%w: unsupported version %d", cryptoDomain.ErrMalformedHash, stored.Version)
	}

	p := stored.Params
	p.SaltLength = uint32(len(stored.Salt))
	p.KeyLength = uint32(len(stored.Hash))
	if err := p.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", cryptoDomain.ErrMalformedHash, err)
	}

	if len(password) > h.maxPasswordLength {
		return false, fmt.Errorf(
			"%w: password exceeds %d bytes",
			cryptoDomain.ErrPayloadTooLarge,
			h.maxPasswordLength,
		)
	}
	if len(password) == 0 {
		return false, nil
	}

	derived := argon2.IDKey(password, stored.Salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
	defer cryptoDomain.Zero(derived)

	return subtle.ConstantTimeCompare(derived, stored.Hash) == 1, nil
}
