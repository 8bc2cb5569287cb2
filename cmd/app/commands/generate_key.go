package commands

import (
	"encoding/base64"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/crypto-api/internal/crypto/domain"
)

// RunGenerateKey writes a fresh base64 encoded 256-bit key suitable for ENCRYPTION_KEY.
// The raw key is zeroed after encoding.
//
// Output format:
//   - text: ENCRYPTION_KEY="<base64>"
//   - json: {"encryption_key": "<base64>"}
func RunGenerateKey(random io.Reader, w io.Writer, format string) error {
	raw := make([]byte, cryptoDomain.KeySize)
	defer cryptoDomain.Zero(raw)

	if _, err := io.ReadFull(random, raw); err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(raw)
	return writeOutput(w, format,
		map[string]any{"encryption_key": encoded},
		fmt.Sprintf("ENCRYPTION_KEY=%q", encoded),
	)
}
