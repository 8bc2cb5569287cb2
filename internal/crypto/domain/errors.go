// Package domain defines the value types of the cryptographic engine, their textual codecs and the
// closed set of failures the engine can return.
package domain

import (
	"github.com/allisson/crypto-api/internal/errors"
)

// Cryptographic engine error definitions.
//
// Every failure the engine returns wraps one of the generic categories from internal/errors so the
// request layer can map it without inspecting domain details. Malformed input and authentication
// failures deliberately share ErrInvalidInput: callers see the same rejection whichever of key,
// nonce, tag or associated data was at fault.
var (
	// ErrInvalidKeyLength indicates key material that is not exactly 32 bytes.
	ErrInvalidKeyLength = errors.Wrap(errors.ErrInvalidInput, "invalid key length")

	// ErrMalformedEnvelope indicates an envelope that cannot be decoded or has invalid field lengths.
	ErrMalformedEnvelope = errors.Wrap(errors.ErrInvalidInput, "malformed envelope")

	// ErrAuthenticationFailed indicates the GCM tag did not verify. No plaintext is released.
	ErrAuthenticationFailed = errors.Wrap(errors.ErrInvalidInput, "authentication failed")

	// ErrMalformedHash indicates an encoded password hash that cannot be parsed or uses an
	// unsupported algorithm, version or parameter set.
	ErrMalformedHash = errors.Wrap(errors.ErrInvalidInput, "malformed password hash")

	// ErrInvalidHashParams indicates hashing parameters outside the accepted bounds.
	ErrInvalidHashParams = errors.Wrap(errors.ErrInvalidInput, "invalid hash parameters")

	// ErrEmptyPassword indicates an attempt to hash an empty password.
	ErrEmptyPassword = errors.Wrap(errors.ErrInvalidInput, "password must not be empty")

	// ErrPayloadTooLarge indicates a plaintext or password above the configured maximum.
	ErrPayloadTooLarge = errors.Wrap(errors.ErrTooLarge, "payload too large")

	// ErrEntropySourceUnavailable indicates the secure random source failed. Fatal: the engine must
	// refuse all further operations rather than fall back to a weaker source.
	ErrEntropySourceUnavailable = errors.Wrap(errors.ErrUnavailable, "entropy source unavailable")

	// ErrNonceReuse indicates a freshly generated nonce repeated one already used under the key, or
	// the key exhausted its random-nonce budget. Treated like a failed entropy source.
	ErrNonceReuse = errors.Wrap(ErrEntropySourceUnavailable, "nonce reuse detected")

	// ErrEngineHalted is returned by every operation once a fatal failure has been observed.
	ErrEngineHalted = errors.Wrap(errors.ErrUnavailable, "engine halted")

	// ErrOperationTimeout indicates the caller's deadline expired before a result was ready.
	// Retryable; never a partial result.
	ErrOperationTimeout = errors.Wrap(errors.ErrUnavailable, "operation timed out")
)
