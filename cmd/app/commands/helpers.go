// Package commands contains CLI command implementations for the application.
package commands

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/allisson/crypto-api/internal/app"
)

// errEmptyInput is returned when a secret was expected on the reader but none arrived.
var errEmptyInput = errors.New("no input provided")

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// readSecret reads one line from r without its line terminator.
func readSecret(r io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(r).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	line = bytes.TrimRight(line, "\r\n")
	if len(line) == 0 {
		return nil, errEmptyInput
	}
	return line, nil
}

// writeOutput prints result as indented JSON, or text when format is anything else.
func writeOutput(w io.Writer, format string, result map[string]any, text string) error {
	if format != "json" {
		_, err := fmt.Fprintln(w, text)
		return err
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonBytes))
	return err
}
