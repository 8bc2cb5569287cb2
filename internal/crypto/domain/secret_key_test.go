package domain_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/crypto-api/internal/crypto/domain"
)

func TestNewSecretKey(t *testing.T) {
	t.Run("Success_32Bytes", func(t *testing.T) {
		raw := bytes.Repeat([]byte{0x42}, 32)

		key, err := domain.NewSecretKey(raw)

		require.NoError(t, err)
		assert.False(t, key.IsZero())
		assert.Equal(t, raw, key.Bytes())
	})

	t.Run("Success_CopiesInput", func(t *testing.T) {
		raw := bytes.Repeat([]byte{0x42}, 32)
		key, err := domain.NewSecretKey(raw)
		require.NoError(t, err)

		domain.Zero(raw)

		assert.Equal(t, bytes.Repeat([]byte{0x42}, 32), key.Bytes())
	})

	t.Run("Success_BytesReturnsCopy", func(t *testing.T) {
		key, err := domain.NewSecretKey(bytes.Repeat([]byte{0x42}, 32))
		require.NoError(t, err)

		b := key.Bytes()
		domain.Zero(b)

		assert.Equal(t, bytes.Repeat([]byte{0x42}, 32), key.Bytes())
	})

	for _, size := range []int{0, 16, 24, 31, 33, 64} {
		t.Run(fmt.Sprintf("Error_%dBytes", size), func(t *testing.T) {
			key, err := domain.NewSecretKey(make([]byte, size))

			assert.ErrorIs(t, err, domain.ErrInvalidKeyLength)
			assert.True(t, key.IsZero())
		})
	}
}

func TestParseSecretKey(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		raw := bytes.Repeat([]byte{0x07}, 32)

		key, err := domain.ParseSecretKey(base64.StdEncoding.EncodeToString(raw))

		require.NoError(t, err)
		assert.Equal(t, raw, key.Bytes())
	})

	t.Run("Success_TrimsWhitespace", func(t *testing.T) {
		raw := bytes.Repeat([]byte{0x07}, 32)

		key, err := domain.ParseSecretKey("  " + base64.StdEncoding.EncodeToString(raw) + "\n")

		require.NoError(t, err)
		assert.Equal(t, raw, key.Bytes())
	})

	t.Run("Error_InvalidBase64", func(t *testing.T) {
		_, err := domain.ParseSecretKey("%%%")
		assert.ErrorIs(t, err, domain.ErrInvalidKeyLength)
	})

	t.Run("Error_WrongLength", func(t *testing.T) {
		_, err := domain.ParseSecretKey(base64.StdEncoding.EncodeToString(make([]byte, 16)))
		assert.ErrorIs(t, err, domain.ErrInvalidKeyLength)
	})
}

func TestSecretKey_NeverRendersMaterial(t *testing.T) {
	raw := []byte("0123456789abcdef0123456789abcdef")
	key, err := domain.NewSecretKey(raw)
	require.NoError(t, err)

	assert.Equal(t, "[REDACTED]", key.String())
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%v", key))
	assert.NotContains(t, fmt.Sprintf("%#v", key), "0123456789")

	encoded, err := json.Marshal(struct {
		Key domain.SecretKey `json:"key"`
	}{Key: key})
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"[REDACTED]"}`, string(encoded))

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("loaded", slog.Any("key", key))
	assert.Contains(t, buf.String(), "[REDACTED]")
	assert.NotContains(t, buf.String(), "0123456789")
}
