package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// CipherEnvelope is the transport unit for one AES-256-GCM message.
//
// Its textual form is the standard (padded) base64 encoding of Nonce || Ciphertext || Tag. The nonce
// and tag have fixed sizes, so the three fields are recovered from the decoded length alone.
type CipherEnvelope struct {
	Nonce      []byte
	Ciphertext []byte
	Tag        []byte
}

// ParseCipherEnvelope decodes the textual form produced by String.
//
// Returns ErrMalformedEnvelope if text is not canonical padded base64 or decodes to fewer than
// MinEnvelopeSize bytes. Line breaks and non-zero padding bits are rejected, so every envelope has
// exactly one textual form.
//
// Example:
//
//	envelope, err := ParseCipherEnvelope(req.Ciphertext)
//	if err != nil {
//	    return nil, err
//	}
//	plaintext, err := cipher.Decrypt(envelope, nil)
func ParseCipherEnvelope(text string) (CipherEnvelope, error) {
	if strings.ContainsAny(text, "\r\n") {
		return CipherEnvelope{}, fmt.Errorf("%w: line breaks are not allowed", ErrMalformedEnvelope)
	}

	raw, err := base64.StdEncoding.Strict().DecodeString(text)
	if err != nil {
		return CipherEnvelope{}, fmt.Errorf("%w: invalid base64", ErrMalformedEnvelope)
	}

	if len(raw) < MinEnvelopeSize {
		return CipherEnvelope{}, fmt.Errorf(
			"%w: expected at least %d bytes, got %d",
			ErrMalformedEnvelope,
			MinEnvelopeSize,
			len(raw),
		)
	}

	tagStart := len(raw) - TagSize
	return CipherEnvelope{
		Nonce:      raw[:NonceSize:NonceSize],
		Ciphertext: raw[NonceSize:tagStart:tagStart],
		Tag:        raw[tagStart:],
	}, nil
}

// Validate checks the fixed field lengths. The ciphertext may be empty.
func (e CipherEnvelope) Validate() error {
	if len(e.Nonce) != NonceSize {
		return fmt.Errorf("%w: nonce must be %d bytes, got %d", ErrMalformedEnvelope, NonceSize, len(e.Nonce))
	}
	if len(e.Tag) != TagSize {
		return fmt.Errorf("%w: tag must be %d bytes, got %d", ErrMalformedEnvelope, TagSize, len(e.Tag))
	}
	return nil
}

// Bytes returns Nonce || Ciphertext || Tag in a newly allocated slice.
func (e CipherEnvelope) Bytes() []byte {
	out := make([]byte, 0, len(e.Nonce)+len(e.Ciphertext)+len(e.Tag))
	out = append(out, e.Nonce...)
	out = append(out, e.Ciphertext...)
	out = append(out, e.Tag...)
	return out
}

// String encodes the envelope for transport.
func (e CipherEnvelope) String() string {
	return base64.StdEncoding.EncodeToString(e.Bytes())
}
