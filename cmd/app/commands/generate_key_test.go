package commands

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/crypto-api/internal/crypto/domain"
)

func TestRunGenerateKey(t *testing.T) {
	t.Run("text-output", func(t *testing.T) {
		var out bytes.Buffer
		err := RunGenerateKey(bytes.NewReader(bytes.Repeat([]byte{7}, 32)), &out, "text")

		require.NoError(t, err)
		expected := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))
		assert.Equal(t, `ENCRYPTION_KEY="`+expected+`"`+"\n", out.String())
	})

	t.Run("json-output-is-a-usable-key", func(t *testing.T) {
		var out bytes.Buffer
		err := RunGenerateKey(bytes.NewReader(bytes.Repeat([]byte{9}, 32)), &out, "json")
		require.NoError(t, err)

		var result map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))

		key, err := cryptoDomain.ParseSecretKey(result["encryption_key"])
		require.NoError(t, err)
		assert.False(t, key.IsZero())
	})

	t.Run("short-entropy-source", func(t *testing.T) {
		var out bytes.Buffer
		err := RunGenerateKey(strings.NewReader("short"), &out, "text")

		require.Error(t, err)
		assert.Empty(t, out.String())
	})

	t.Run("failing-entropy-source", func(t *testing.T) {
		err := RunGenerateKey(iotest.ErrReader(errors.New("boom")), &bytes.Buffer{}, "text")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to generate key")
	})
}
