package commands

import (
	"errors"
	"fmt"
	"log/slog"

	cryptoDomain "github.com/allisson/crypto-api/internal/crypto/domain"
	cryptoService "github.com/allisson/crypto-api/internal/crypto/service"
)

// errPasswordMismatch makes verify-password exit non-zero when the password is wrong.
var errPasswordMismatch = errors.New("password does not match")

// RunHashPassword derives an Argon2id hash of a password and writes its PHC string.
// The password comes from the --password flag when set, otherwise from the first line of
// the reader. A nil params uses the hasher defaults.
func RunHashPassword(
	hasher cryptoService.PasswordHasher,
	params *cryptoDomain.HashParams,
	logger *slog.Logger,
	ioTuple IOTuple,
	password string,
	format string,
) error {
	secret, err := passwordInput(ioTuple, password)
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(secret)

	hash, err := hasher.Hash(secret, params)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	logger.Debug("password hashed",
		slog.Uint64("memory_kib", uint64(hash.Params.Memory)),
		slog.Uint64("iterations", uint64(hash.Params.Iterations)),
		slog.Int("parallelism", int(hash.Params.Parallelism)),
	)

	encoded := hash.String()
	return writeOutput(ioTuple.Writer, format, map[string]any{"hash": encoded}, encoded)
}

// RunVerifyPassword checks a password against an encoded Argon2id hash. A mismatch is reported on
// the writer and returned as an error.
func RunVerifyPassword(
	hasher cryptoService.PasswordHasher,
	ioTuple IOTuple,
	password string,
	encoded string,
	format string,
) error {
	stored, err := cryptoDomain.ParsePasswordHash(encoded)
	if err != nil {
		return fmt.Errorf("failed to parse hash: %w", err)
	}

	secret, err := passwordInput(ioTuple, password)
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(secret)

	valid, err := hasher.Verify(secret, stored)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}

	text := "valid"
	if !valid {
		text = "invalid"
	}
	if err := writeOutput(ioTuple.Writer, format, map[string]any{"valid": valid}, text); err != nil {
		return err
	}

	if !valid {
		return errPasswordMismatch
	}
	return nil
}

// passwordInput returns a private copy of the flag value, or the first line of the reader.
func passwordInput(ioTuple IOTuple, password string) ([]byte, error) {
	if password != "" {
		return []byte(password), nil
	}

	secret, err := readSecret(ioTuple.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return secret, nil
}
