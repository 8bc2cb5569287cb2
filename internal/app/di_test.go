package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/allisson/crypto-api/internal/config"
	cryptoDomain "github.com/allisson/crypto-api/internal/crypto/domain"
)

// zeroKey is the base64 form of 32 zero bytes.
const zeroKey = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="

// newTestConfig returns a configuration with a valid key and cheap hashing parameters.
func newTestConfig() *config.Config {
	return &config.Config{
		ServerHost:                 "localhost",
		ServerPort:                 8080,
		LogLevel:                   "error",
		EncryptionKey:              zeroKey,
		MaxPayloadSize:             1024,
		MaxPasswordLength:          64,
		NonceWindow:                16,
		Argon2MemoryKiB:            64,
		Argon2Iterations:           1,
		Argon2Parallelism:          1,
		Argon2MaxVerifyMemoryKiB:   256,
		Argon2MaxVerifyIterations:  4,
		Argon2MaxVerifyParallelism: 4,
		HashWorkers:                2,
		HashTimeout:                5 * time.Second,
		MetricsNamespace:           "test_app",
		MetricsPort:                8081,
	}
}

// TestNewContainer verifies that a new container can be created with a valid configuration.
func TestNewContainer(t *testing.T) {
	cfg := newTestConfig()

	container := NewContainer(cfg)

	if container == nil {
		t.Fatal("expected non-nil container")
	}

	if container.Config() != cfg {
		t.Error("container config does not match provided config")
	}
}

// TestContainerLogger verifies that the logger can be retrieved from the container.
func TestContainerLogger(t *testing.T) {
	container := NewContainer(&config.Config{LogLevel: "debug"})
	logger := container.Logger()

	if logger == nil {
		t.Fatal("expected non-nil logger")
	}

	// Calling Logger() again should return the same instance (singleton)
	if logger != container.Logger() {
		t.Error("expected same logger instance on multiple calls")
	}
}

// TestContainerLoggerDefaultLevel verifies that logger defaults to info level.
func TestContainerLoggerDefaultLevel(t *testing.T) {
	container := NewContainer(&config.Config{LogLevel: "invalid"})

	if !container.Logger().Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info level to be enabled")
	}
	if container.Logger().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug level to be disabled")
	}
}

// TestContainerSecretKey_Missing verifies that a missing key fails and the failure is remembered.
func TestContainerSecretKey_Missing(t *testing.T) {
	cfg := newTestConfig()
	cfg.EncryptionKey = ""
	container := NewContainer(cfg)

	_, err := container.SecretKey()
	if err == nil {
		t.Fatal("expected error for missing encryption key")
	}
	if !errors.Is(err, cryptoDomain.ErrInvalidKeyLength) {
		t.Errorf("expected ErrInvalidKeyLength, got %v", err)
	}

	_, err2 := container.SecretKey()
	if err2 == nil || err2.Error() != err.Error() {
		t.Errorf("expected cached error on second call, got %v", err2)
	}

	if _, err := container.CryptoUseCase(); err == nil {
		t.Error("expected crypto use case to fail without a key")
	}
}

// TestContainerSecretKey_ErrorDoesNotLeakKey verifies that a short key never appears in the error.
func TestContainerSecretKey_ErrorDoesNotLeakKey(t *testing.T) {
	cfg := newTestConfig()
	cfg.EncryptionKey = "c2hvcnQta2V5LW1hdGVyaWFs"
	container := NewContainer(cfg)

	_, err := container.SecretKey()
	if err == nil {
		t.Fatal("expected error for short key")
	}
	if strings.Contains(err.Error(), cfg.EncryptionKey) || strings.Contains(err.Error(), "short-key-material") {
		t.Errorf("error leaks key material: %v", err)
	}
}

// TestContainerHasher verifies that the hasher carries the configured parameters.
func TestContainerHasher(t *testing.T) {
	container := NewContainer(newTestConfig())

	hasher, err := container.Hasher()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	params := hasher.Params()
	if params.Memory != 64 || params.Iterations != 1 || params.Parallelism != 1 {
		t.Errorf("unexpected params: %+v", params)
	}
}

// TestContainerHasher_InvalidParams verifies that invalid Argon2 settings are rejected.
func TestContainerHasher_InvalidParams(t *testing.T) {
	cfg := newTestConfig()
	cfg.Argon2Iterations = 0
	container := NewContainer(cfg)

	_, err := container.Hasher()
	if !errors.Is(err, cryptoDomain.ErrInvalidHashParams) {
		t.Errorf("expected ErrInvalidHashParams, got %v", err)
	}
}

// TestContainerCryptoUseCase verifies the assembled engine round trips without metrics.
func TestContainerCryptoUseCase(t *testing.T) {
	container := NewContainer(newTestConfig())

	useCase, err := container.CryptoUseCase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	envelope, err := useCase.Encrypt(ctx, []byte("hello"), nil)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	plaintext, err := useCase.Decrypt(ctx, envelope.String(), nil)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if string(plaintext) != "hello" {
		t.Errorf("expected hello, got %q", plaintext)
	}

	hash, err := useCase.Hash(ctx, []byte("secret123"))
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	valid, err := useCase.Verify(ctx, []byte("secret123"), hash.String())
	if err != nil || !valid {
		t.Errorf("expected password to verify, got valid=%v err=%v", valid, err)
	}
}

// TestContainerCryptoUseCase_VerifyCeiling verifies that hashes costlier than the configured ceiling are rejected.
func TestContainerCryptoUseCase_VerifyCeiling(t *testing.T) {
	container := NewContainer(newTestConfig())

	ceiling := container.VerifyCeiling()
	if ceiling.Memory != 256 || ceiling.Iterations != 4 || ceiling.Parallelism != 4 {
		t.Fatalf("unexpected ceiling: %+v", ceiling)
	}

	useCase, err := container.CryptoUseCase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	costly := cryptoDomain.PasswordHash{
		Algorithm: cryptoDomain.Argon2id,
		Version:   cryptoDomain.Argon2Version,
		Params:    cryptoDomain.HashParams{Memory: 1 << 20, Iterations: 64, Parallelism: 255},
		Salt:      make([]byte, 16),
		Hash:      make([]byte, 32),
	}.String()

	valid, err := useCase.Verify(context.Background(), []byte("secret123"), costly)
	if !errors.Is(err, cryptoDomain.ErrMalformedHash) {
		t.Errorf("expected ErrMalformedHash, got %v", err)
	}
	if valid {
		t.Error("expected costly hash to be rejected")
	}
}

// TestContainerMetricsDisabled verifies that no metrics components are built when disabled.
func TestContainerMetricsDisabled(t *testing.T) {
	container := NewContainer(newTestConfig())

	provider, err := container.MetricsProvider()
	if err != nil || provider != nil {
		t.Fatalf("expected nil provider, got %v (err %v)", provider, err)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil || metricsServer != nil {
		t.Fatalf("expected nil metrics server, got %v (err %v)", metricsServer, err)
	}

	businessMetrics, err := container.BusinessMetrics()
	if err != nil || businessMetrics == nil {
		t.Fatalf("expected no-op business metrics, got %v (err %v)", businessMetrics, err)
	}
}

// TestContainerMetricsEnabled verifies that servers and the instrumented engine are wired.
func TestContainerMetricsEnabled(t *testing.T) {
	cfg := newTestConfig()
	cfg.MetricsEnabled = true
	container := NewContainer(cfg)
	defer func() {
		if err := container.Shutdown(context.Background()); err != nil {
			t.Errorf("shutdown failed: %v", err)
		}
	}()

	useCase, err := container.CryptoUseCase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := useCase.Encrypt(context.Background(), []byte("hello"), nil); err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil || metricsServer == nil {
		t.Fatalf("expected metrics server, got %v (err %v)", metricsServer, err)
	}

	server, err := container.HTTPServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	server2, _ := container.HTTPServer()
	if server != server2 {
		t.Error("expected same http server instance on multiple calls")
	}
}

// TestContainerFatal verifies that only the first fatal failure is delivered.
func TestContainerFatal(t *testing.T) {
	container := NewContainer(newTestConfig())

	first := errors.New("first")
	container.onFatal(first)
	container.onFatal(errors.New("second"))

	select {
	case err := <-container.Fatal():
		if err != first {
			t.Errorf("expected first error, got %v", err)
		}
	default:
		t.Fatal("expected a fatal error")
	}

	select {
	case err := <-container.Fatal():
		t.Errorf("unexpected second fatal error: %v", err)
	default:
	}
}

// TestContainerShutdown verifies that shutdown succeeds with and without initialized servers.
func TestContainerShutdown(t *testing.T) {
	container := NewContainer(newTestConfig())
	if err := container.Shutdown(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	container = NewContainer(newTestConfig())
	if _, err := container.HTTPServer(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := container.Shutdown(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
