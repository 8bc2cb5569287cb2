package service

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/crypto-api/internal/crypto/domain"
)

// AESGCMCipher implements Cipher using AES-256-GCM.
//
// Security properties:
//   - 256-bit key, copied into the AES key schedule once at construction
//   - 12-byte nonce read from the entropy source for every Encrypt call
//   - 16-byte authentication tag over ciphertext, nonce and associated data
//   - Decrypt verifies the tag in constant time before any plaintext is produced
//
// Every generated nonce passes through a nonceGuard. A repeat within the guard's window, or more
// than 2^32 encryptions under the key, fails with ErrNonceReuse instead of sealing the message.
//
// Thread safety:
//
//	Safe for concurrent use. The only mutable state is the nonce guard, which locks internally.
//
// Example usage:
//
//	key, err := cryptoDomain.ParseSecretKey(os.Getenv("ENCRYPTION_KEY"))
//	if err != nil {
//	    return err
//	}
//	c, err := NewAESGCM(key)
//	if err != nil {
//	    return err
//	}
//	envelope, err := c.Encrypt([]byte("hello"), nil)
//	plaintext, err := c.Decrypt(envelope, nil)
type AESGCMCipher struct {
	aead   cipher.AEAD
	random io.Reader
	nonces *nonceGuard
}

// NewAESGCM creates an AES-256-GCM cipher bound to key.
// Returns ErrInvalidKeyLength if key was never initialized.
func NewAESGCM(key cryptoDomain.SecretKey, opts ...Option) (*AESGCMCipher, error) {
	if key.IsZero() {
		return nil, fmt.Errorf("%w: key is not initialized", cryptoDomain.ErrInvalidKeyLength)
	}

	raw := key.Bytes()
	defer cryptoDomain.Zero(raw)

	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, cryptoDomain.NonceSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	o := newOptions(opts)
	return &AESGCMCipher{
		aead:   aead,
		random: o.random,
		nonces: newNonceGuard(o.nonceWindow, maxNoncesPerKey),
	}, nil
}

// Encrypt seals plaintext under a fresh random nonce.
//
// plaintext may be empty; aad may be nil. The resulting ciphertext has the same length as the
// plaintext and the tag authenticates ciphertext, nonce and aad.
//
// Returns ErrEntropySourceUnavailable if the nonce cannot be read and ErrNonceReuse if the guard
// rejects it. Both are fatal for the process.
func (a *AESGCMCipher) Encrypt(plaintext, aad []byte) (cryptoDomain.CipherEnvelope, error) {
	nonce := make([]byte, cryptoDomain.NonceSize)
	if _, err := io.ReadFull(a.random, nonce); err != nil {
		return cryptoDomain.CipherEnvelope{}, fmt.Errorf("%w: %v", cryptoDomain.ErrEntropySourceUnavailable, err)
	}

	if err := a.nonces.register(nonce); err != nil {
		return cryptoDomain.CipherEnvelope{}, err
	}

	sealed := a.aead.Seal(nil, nonce, plaintext, aad)
	tagStart := len(sealed) - cryptoDomain.TagSize

	return cryptoDomain.CipherEnvelope{
		Nonce:      nonce,
		Ciphertext: sealed[:tagStart:tagStart],
		Tag:        sealed[tagStart:],
	}, nil
}

// Decrypt authenticates and opens envelope.
//
// The same aad used at encryption must be supplied. Returns ErrMalformedEnvelope if the nonce or
// tag length is wrong and ErrAuthenticationFailed if the tag does not verify; in both cases the
// returned plaintext is nil.
func (a *AESGCMCipher) Decrypt(envelope cryptoDomain.CipherEnvelope, aad []byte) ([]byte, error) {
	if err := envelope.Validate(); err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(envelope.Ciphertext)+cryptoDomain.TagSize)
	sealed = append(sealed, envelope.Ciphertext...)
	sealed = append(sealed, envelope.Tag...)

	plaintext, err := a.aead.Open(nil, envelope.Nonce, sealed, aad)
	if err != nil {
		return nil, cryptoDomain.ErrAuthenticationFailed
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}
