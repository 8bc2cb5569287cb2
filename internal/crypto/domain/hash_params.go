package domain

import (
	"fmt"

	"github.com/allisson/crypto-api/internal/errors"
)

// Bounds applied to every parameter set, whether requested for a new hash or read back from a stored
// one. The upper bounds keep a crafted hash string from turning verification into a resource
// exhaustion attack.
const (
	MinSaltLength  = 16
	MinKeyLength   = 16
	MaxKeyLength   = 1024
	MaxSaltLength  = 1024
	MaxMemoryKiB   = 1 << 20 // 1 GiB
	MaxIterations  = 64
	MaxParallelism = 255
)

// HashParams are the Argon2id cost parameters.
type HashParams struct {
	// Memory is the memory cost in KiB.
	Memory uint32
	// Iterations is the time cost (number of passes over memory).
	Iterations uint32
	// Parallelism is the number of lanes.
	Parallelism uint8
	// SaltLength is the length of the random salt generated per hash.
	SaltLength uint32
	// KeyLength is the length of the derived hash.
	KeyLength uint32
}

// DefaultHashParams returns 64 MiB, 3 iterations, 2 lanes, a 128-bit salt and a 256-bit output.
func DefaultHashParams() HashParams {
	return HashParams{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Validate returns ErrInvalidHashParams when a parameter is outside the accepted bounds.
func (p HashParams) Validate() error {
	switch {
	case p.Iterations < 1 || p.Iterations > MaxIterations:
		return fmt.Errorf("%w: iterations must be between 1 and %d", ErrInvalidHashParams, MaxIterations)
	case p.Parallelism < 1:
		return fmt.Errorf("%w: parallelism must be at least 1", ErrInvalidHashParams)
	case p.Memory < 8*uint32(p.Parallelism) || p.Memory > MaxMemoryKiB:
		return fmt.Errorf(
			"%w: memory must be between %d and %d KiB",
			ErrInvalidHashParams,
			8*uint32(p.Parallelism),
			MaxMemoryKiB,
		)
	case p.SaltLength < MinSaltLength || p.SaltLength > MaxSaltLength:
		return fmt.Errorf("%w: salt length must be between %d and %d", ErrInvalidHashParams, MinSaltLength, MaxSaltLength)
	case p.KeyLength < MinKeyLength || p.KeyLength > MaxKeyLength:
		return fmt.Errorf("%w: key length must be between %d and %d", ErrInvalidHashParams, MinKeyLength, MaxKeyLength)
	}
	return nil
}

// WithinCost returns ErrMalformedHash when p asks for more memory, iterations or lanes than limit.
// A zero field in limit leaves that parameter bounded only by Validate.
func (p HashParams) WithinCost(limit HashParams) error {
	switch {
	case limit.Memory > 0 && p.Memory > limit.Memory:
		return errors.Wrapf(ErrMalformedHash, "memory %d KiB exceeds the %d KiB ceiling", p.Memory, limit.Memory)
	case limit.Iterations > 0 && p.Iterations > limit.Iterations:
		return errors.Wrapf(ErrMalformedHash, "%d iterations exceed the ceiling of %d", p.Iterations, limit.Iterations)
	case limit.Parallelism > 0 && p.Parallelism > limit.Parallelism:
		return errors.Wrapf(ErrMalformedHash, "%d lanes exceed the ceiling of %d", p.Parallelism, limit.Parallelism)
	}
	return nil
}
