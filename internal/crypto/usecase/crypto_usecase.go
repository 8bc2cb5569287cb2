package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	cryptoDomain "github.com/allisson/crypto-api/internal/crypto/domain"
	cryptoService "github.com/allisson/crypto-api/internal/crypto/service"
)

// Config bounds the resources the engine spends per request.
type Config struct {
	// MaxPayloadSize is the largest plaintext accepted by Encrypt, in bytes.
	MaxPayloadSize int
	// HashWorkers is the number of password derivations allowed to run at once.
	HashWorkers int
	// HashTimeout bounds how long a caller waits for a hashing slot and result.
	HashTimeout time.Duration
	// MaxVerifyCost caps the memory, iterations and lanes a stored hash may name. Zero fields are
	// bounded only by HashParams.Validate.
	MaxVerifyCost cryptoDomain.HashParams
}

type cryptoUseCase struct {
	cipher         cryptoService.Cipher
	hasher         cryptoService.PasswordHasher
	maxPayloadSize int
	maxEncodedSize int
	hashTimeout    time.Duration
	maxVerifyCost  cryptoDomain.HashParams
	workers        *semaphore.Weighted

	halted   atomic.Bool
	haltOnce sync.Once
	onFatal  FatalHandler
}

// Encrypt rejects oversized plaintext and seals the rest with the cipher unit.
func (c *cryptoUseCase) Encrypt(
	ctx context.Context,
	plaintext, aad []byte,
) (*cryptoDomain.CipherEnvelope, error) {
	if c.halted.Load() {
		return nil, cryptoDomain.ErrEngineHalted
	}
	if len(plaintext) > c.maxPayloadSize {
		return nil, fmt.Errorf(
			"%w: plaintext exceeds %d bytes",
			cryptoDomain.ErrPayloadTooLarge,
			c.maxPayloadSize,
		)
	}

	envelope, err := c.cipher.Encrypt(plaintext, aad)
	if err != nil {
		return nil, c.observe(err)
	}

	return &envelope, nil
}

// Decrypt parses the text envelope and opens it with the cipher unit.
func (c *cryptoUseCase) Decrypt(ctx context.Context, ciphertext string, aad []byte) ([]byte, error) {
	if c.halted.Load() {
		return nil, cryptoDomain.ErrEngineHalted
	}
	if len(ciphertext) > c.maxEncodedSize {
		return nil, fmt.Errorf(
			"%w: ciphertext exceeds %d characters",
			cryptoDomain.ErrPayloadTooLarge,
			c.maxEncodedSize,
		)
	}

	envelope, err := cryptoDomain.ParseCipherEnvelope(ciphertext)
	if err != nil {
		return nil, err
	}

	plaintext, err := c.cipher.Decrypt(envelope, aad)
	if err != nil {
		return nil, c.observe(err)
	}

	return plaintext, nil
}

// Hash derives a password hash on the worker pool.
func (c *cryptoUseCase) Hash(ctx context.Context, password []byte) (*cryptoDomain.PasswordHash, error) {
	if c.halted.Load() {
		return nil, cryptoDomain.ErrEngineHalted
	}

	hash, err := offload(ctx, c, func() (cryptoDomain.PasswordHash, error) {
		return c.hasher.Hash(password, nil)
	})
	if err != nil {
		return nil, c.observe(err)
	}

	return &hash, nil
}

// Verify parses the stored hash, then re-derives and compares on the worker pool. A hash whose
// cost exceeds the verify ceiling is rejected before it can take a worker.
func (c *cryptoUseCase) Verify(ctx context.Context, password []byte, encoded string) (bool, error) {
	if c.halted.Load() {
		return false, cryptoDomain.ErrEngineHalted
	}

	stored, err := cryptoDomain.ParsePasswordHash(encoded)
	if err != nil {
		return false, err
	}
	if err := stored.Params.WithinCost(c.maxVerifyCost); err != nil {
		return false, err
	}

	ok, err := offload(ctx, c, func() (bool, error) {
		return c.hasher.Verify(password, stored)
	})
	if err != nil {
		return false, c.observe(err)
	}

	return ok, nil
}

// Halted reports whether the engine has stopped after a fatal failure.
func (c *cryptoUseCase) Halted() bool {
	return c.halted.Load()
}

// observe halts the engine on the first entropy failure and passes err through.
func (c *cryptoUseCase) observe(err error) error {
	if errors.Is(err, cryptoDomain.ErrEntropySourceUnavailable) {
		c.haltOnce.Do(func() {
			c.halted.Store(true)
			if c.onFatal != nil {
				c.onFatal(err)
			}
		})
	}
	return err
}

type result[T any] struct {
	value T
	err   error
}

// offload runs fn on a pool slot and waits at most hashTimeout for it. On expiry the caller gets
// ErrOperationTimeout while fn runs to completion and then frees its slot.
func offload[T any](ctx context.Context, c *cryptoUseCase, fn func() (T, error)) (T, error) {
	var zero T

	ctx, cancel := context.WithTimeout(ctx, c.hashTimeout)
	defer cancel()

	if err := c.workers.Acquire(ctx, 1); err != nil {
		return zero, fmt.Errorf("%w: waiting for a worker: %v", cryptoDomain.ErrOperationTimeout, err)
	}

	done := make(chan result[T], 1)
	go func() {
		defer c.workers.Release(1)
		value, err := fn()
		done <- result[T]{value: value, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		return zero, fmt.Errorf("%w: %v", cryptoDomain.ErrOperationTimeout, ctx.Err())
	}
}

// NewCryptoUseCase creates a new CryptoUseCase. onFatal may be nil.
func NewCryptoUseCase(
	cipher cryptoService.Cipher,
	hasher cryptoService.PasswordHasher,
	cfg Config,
	onFatal FatalHandler,
) (CryptoUseCase, error) {
	if cfg.MaxPayloadSize <= 0 {
		return nil, errors.New("max payload size must be positive")
	}
	if cfg.HashWorkers <= 0 {
		return nil, errors.New("hash workers must be positive")
	}
	if cfg.HashTimeout <= 0 {
		return nil, errors.New("hash timeout must be positive")
	}

	return &cryptoUseCase{
		cipher:         cipher,
		hasher:         hasher,
		maxPayloadSize: cfg.MaxPayloadSize,
		maxEncodedSize: base64.StdEncoding.EncodedLen(cfg.MaxPayloadSize + cryptoDomain.MinEnvelopeSize),
		hashTimeout:    cfg.HashTimeout,
		maxVerifyCost:  cfg.MaxVerifyCost,
		workers:        semaphore.NewWeighted(int64(cfg.HashWorkers)),
		onFatal:        onFatal,
	}, nil
}
