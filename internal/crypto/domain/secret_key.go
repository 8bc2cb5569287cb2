package domain

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
)

const redacted = "[REDACTED]"

// SecretKey is the 256-bit AES key owned by the cipher for the lifetime of the process.
//
// The zero value is not a usable key; construct one with NewSecretKey or ParseSecretKey. The key
// material is copied in at construction and never mutated afterwards, so a SecretKey can be shared
// between goroutines without locking. Every formatting and serialization path renders [REDACTED].
type SecretKey struct {
	material *[KeySize]byte
}

// NewSecretKey copies raw key material into a SecretKey.
// Returns ErrInvalidKeyLength unless key is exactly 32 bytes.
func NewSecretKey(key []byte) (SecretKey, error) {
	if len(key) != KeySize {
		return SecretKey{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKeyLength, KeySize, len(key))
	}

	var material [KeySize]byte
	copy(material[:], key)
	return SecretKey{material: &material}, nil
}

// ParseSecretKey decodes a standard base64 key as found in process configuration.
// The decoded buffer is zeroed before returning.
func ParseSecretKey(encoded string) (SecretKey, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return SecretKey{}, fmt.Errorf("%w: key is not valid base64", ErrInvalidKeyLength)
	}
	defer Zero(raw)

	return NewSecretKey(raw)
}

// IsZero reports whether the key was never initialized.
func (k SecretKey) IsZero() bool {
	return k.material == nil
}

// Bytes returns a copy of the key material. Callers must Zero the copy when done.
func (k SecretKey) Bytes() []byte {
	if k.material == nil {
		return nil
	}
	out := make([]byte, KeySize)
	copy(out, k.material[:])
	return out
}

// String implements fmt.Stringer without exposing key material.
func (k SecretKey) String() string {
	return redacted
}

// GoString implements fmt.GoStringer without exposing key material.
func (k SecretKey) GoString() string {
	return "domain.SecretKey{" + redacted + "}"
}

// LogValue implements slog.LogValuer without exposing key material.
func (k SecretKey) LogValue() slog.Value {
	return slog.StringValue(redacted)
}

// MarshalText implements encoding.TextMarshaler without exposing key material.
func (k SecretKey) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}

// MarshalJSON implements json.Marshaler without exposing key material.
func (k SecretKey) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}
