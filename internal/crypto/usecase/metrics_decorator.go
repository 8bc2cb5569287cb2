package usecase

import (
	"context"
	"time"

	cryptoDomain "github.com/allisson/crypto-api/internal/crypto/domain"
	"github.com/allisson/crypto-api/internal/metrics"
)

const metricsDomain = "crypto"

// cryptoUseCaseWithMetrics decorates CryptoUseCase with metrics instrumentation.
type cryptoUseCaseWithMetrics struct {
	next    CryptoUseCase
	metrics metrics.BusinessMetrics
}

// NewCryptoUseCaseWithMetrics wraps a CryptoUseCase with metrics recording.
func NewCryptoUseCaseWithMetrics(useCase CryptoUseCase, m metrics.BusinessMetrics) CryptoUseCase {
	return &cryptoUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Encrypt records metrics for encryption operations.
func (c *cryptoUseCaseWithMetrics) Encrypt(
	ctx context.Context,
	plaintext, aad []byte,
) (*cryptoDomain.CipherEnvelope, error) {
	start := time.Now()
	c.metrics.RecordPayloadSize(ctx, metricsDomain, "encrypt", len(plaintext))
	envelope, err := c.next.Encrypt(ctx, plaintext, aad)
	c.record(ctx, "encrypt", start, err)
	return envelope, err
}

// Decrypt records metrics for decryption operations.
func (c *cryptoUseCaseWithMetrics) Decrypt(ctx context.Context, ciphertext string, aad []byte) ([]byte, error) {
	start := time.Now()
	c.metrics.RecordPayloadSize(ctx, metricsDomain, "decrypt", len(ciphertext))
	plaintext, err := c.next.Decrypt(ctx, ciphertext, aad)
	c.record(ctx, "decrypt", start, err)
	return plaintext, err
}

// Hash records metrics for password hashing, including the number of derivations in flight.
func (c *cryptoUseCaseWithMetrics) Hash(ctx context.Context, password []byte) (*cryptoDomain.PasswordHash, error) {
	start := time.Now()
	c.metrics.AddInFlight(ctx, metricsDomain, "hash", 1)
	hash, err := c.next.Hash(ctx, password)
	c.metrics.AddInFlight(ctx, metricsDomain, "hash", -1)
	c.record(ctx, "hash", start, err)
	return hash, err
}

// Verify records metrics for password verification, including the number of derivations in flight.
func (c *cryptoUseCaseWithMetrics) Verify(ctx context.Context, password []byte, encoded string) (bool, error) {
	start := time.Now()
	c.metrics.AddInFlight(ctx, metricsDomain, "verify", 1)
	ok, err := c.next.Verify(ctx, password, encoded)
	c.metrics.AddInFlight(ctx, metricsDomain, "verify", -1)
	c.record(ctx, "verify", start, err)
	return ok, err
}

// Halted delegates without recording.
func (c *cryptoUseCaseWithMetrics) Halted() bool {
	return c.next.Halted()
}

func (c *cryptoUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	c.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}
