package domain_test

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/crypto-api/internal/crypto/domain"
	apperrors "github.com/allisson/crypto-api/internal/errors"
)

func TestParseCipherEnvelope_Success(t *testing.T) {
	t.Run("ValidInput_WithCiphertext", func(t *testing.T) {
		// Arrange
		nonce := bytes.Repeat([]byte{0x01}, domain.NonceSize)
		ciphertext := []byte("hello")
		tag := bytes.Repeat([]byte{0x02}, domain.TagSize)
		raw := append(append(append([]byte{}, nonce...), ciphertext...), tag...)

		// Act
		envelope, err := domain.ParseCipherEnvelope(base64.StdEncoding.EncodeToString(raw))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, nonce, envelope.Nonce)
		assert.Equal(t, ciphertext, envelope.Ciphertext)
		assert.Equal(t, tag, envelope.Tag)
		assert.NoError(t, envelope.Validate())
	})

	t.Run("ValidInput_MinimumLength", func(t *testing.T) {
		raw := make([]byte, domain.MinEnvelopeSize)

		envelope, err := domain.ParseCipherEnvelope(base64.StdEncoding.EncodeToString(raw))

		require.NoError(t, err)
		assert.Len(t, envelope.Nonce, domain.NonceSize)
		assert.Empty(t, envelope.Ciphertext)
		assert.Len(t, envelope.Tag, domain.TagSize)
	})

	t.Run("FieldsDoNotAlias", func(t *testing.T) {
		raw := make([]byte, domain.MinEnvelopeSize+4)

		envelope, err := domain.ParseCipherEnvelope(base64.StdEncoding.EncodeToString(raw))
		require.NoError(t, err)

		// Appending to one field must not overwrite the next one.
		_ = append(envelope.Nonce, 0xff)
		_ = append(envelope.Ciphertext, 0xff)
		assert.Equal(t, make([]byte, domain.TagSize), envelope.Tag)
		assert.Equal(t, make([]byte, 4), envelope.Ciphertext)
	})
}

func withLineBreak(s, sep string) string {
	return s[:20] + sep + s[20:]
}

func TestParseCipherEnvelope_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "EmptyString", input: ""},
		{name: "NotBase64", input: "not base64!!"},
		{name: "TruncatedBase64", input: "AAAA="},
		{name: "Truncated_27Bytes", input: base64.StdEncoding.EncodeToString(make([]byte, 27))},
		{name: "OnlyNonce", input: base64.StdEncoding.EncodeToString(make([]byte, domain.NonceSize))},
		{name: "UnpaddedBase64", input: base64.RawStdEncoding.EncodeToString(make([]byte, 31))},
		{name: "EmbeddedNewline", input: withLineBreak(base64.StdEncoding.EncodeToString(make([]byte, 32)), "\n")},
		{name: "EmbeddedCRLF", input: withLineBreak(base64.StdEncoding.EncodeToString(make([]byte, 32)), "\r\n")},
		{name: "TrailingNewline", input: base64.StdEncoding.EncodeToString(make([]byte, 32)) + "\n"},
		// 32 zero bytes end in "AAA="; "AAB=" decodes to the same bytes with non-zero padding bits.
		{
			name:  "NonCanonicalPaddingBits",
			input: strings.TrimSuffix(base64.StdEncoding.EncodeToString(make([]byte, 32)), "A=") + "B=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope, err := domain.ParseCipherEnvelope(tt.input)

			assert.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedEnvelope)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			assert.Empty(t, envelope.Nonce)
		})
	}
}

func TestCipherEnvelope_Validate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		envelope := domain.CipherEnvelope{
			Nonce: make([]byte, domain.NonceSize),
			Tag:   make([]byte, domain.TagSize),
		}
		assert.NoError(t, envelope.Validate())
	})

	t.Run("ShortNonce", func(t *testing.T) {
		envelope := domain.CipherEnvelope{
			Nonce: make([]byte, 8),
			Tag:   make([]byte, domain.TagSize),
		}
		assert.ErrorIs(t, envelope.Validate(), domain.ErrMalformedEnvelope)
	})

	t.Run("LongTag", func(t *testing.T) {
		envelope := domain.CipherEnvelope{
			Nonce: make([]byte, domain.NonceSize),
			Tag:   make([]byte, 32),
		}
		assert.ErrorIs(t, envelope.Validate(), domain.ErrMalformedEnvelope)
	})

	t.Run("MissingFields", func(t *testing.T) {
		assert.ErrorIs(t, domain.CipherEnvelope{}.Validate(), domain.ErrMalformedEnvelope)
	})
}

func TestCipherEnvelope_String(t *testing.T) {
	envelope := domain.CipherEnvelope{
		Nonce:      bytes.Repeat([]byte{0xaa}, domain.NonceSize),
		Ciphertext: []byte("payload"),
		Tag:        bytes.Repeat([]byte{0xbb}, domain.TagSize),
	}

	encoded := envelope.String()

	// Padded standard base64 of nonce || ciphertext || tag.
	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Len(t, raw, domain.NonceSize+len("payload")+domain.TagSize)
	assert.Equal(t, envelope.Bytes(), raw)

	parsed, err := domain.ParseCipherEnvelope(encoded)
	require.NoError(t, err)
	assert.Equal(t, envelope, parsed)
}
