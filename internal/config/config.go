// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// ShutdownTimeout bounds graceful shutdown of the servers.
	ShutdownTimeout time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// EncryptionKey is the base64-encoded 256-bit AES key. Never logged.
	EncryptionKey string `json:"-"`
	// MaxPayloadSize is the largest plaintext accepted for encryption, in bytes.
	MaxPayloadSize int
	// MaxPasswordLength is the longest password accepted for hashing, in bytes.
	MaxPasswordLength int
	// NonceWindow is how many recent nonces are remembered to detect a repeating entropy source.
	NonceWindow int

	// Argon2MemoryKiB is the default Argon2id memory cost.
	Argon2MemoryKiB int
	// Argon2Iterations is the default Argon2id time cost.
	Argon2Iterations int
	// Argon2Parallelism is the default Argon2id lane count.
	Argon2Parallelism int
	// Argon2MaxVerifyMemoryKiB is the largest memory cost a hash submitted for verification may name.
	Argon2MaxVerifyMemoryKiB int
	// Argon2MaxVerifyIterations is the largest time cost a hash submitted for verification may name.
	Argon2MaxVerifyIterations int
	// Argon2MaxVerifyParallelism is the largest lane count a hash submitted for verification may name.
	Argon2MaxVerifyParallelism int

	// HashWorkers is the number of password derivations allowed to run at once.
	HashWorkers int
	// HashTimeout bounds how long a request waits for a password derivation.
	HashTimeout time.Duration

	// RateLimitEnabled indicates whether per-IP rate limiting of the engine endpoints is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per client IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for per-IP rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// verifyCostFactor sets the default verify ceilings as a multiple of the hashing defaults.
const verifyCostFactor = 4

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	argon2Memory := env.GetInt("ARGON2_MEMORY_KIB", 64*1024)
	argon2Iterations := env.GetInt("ARGON2_ITERATIONS", 3)
	argon2Parallelism := env.GetInt("ARGON2_PARALLELISM", 2)

	return &Config{
		// Server configuration
		ServerHost:      env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:      env.GetInt("SERVER_PORT", 3000),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 10, time.Second),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Engine
		EncryptionKey:     env.GetString("ENCRYPTION_KEY", ""),
		MaxPayloadSize:    env.GetInt("MAX_PAYLOAD_SIZE", 1<<20),
		MaxPasswordLength: env.GetInt("MAX_PASSWORD_LENGTH", 1024),
		NonceWindow:       env.GetInt("NONCE_WINDOW", 1<<16),

		// Password hashing
		Argon2MemoryKiB:   argon2Memory,
		Argon2Iterations:  argon2Iterations,
		Argon2Parallelism: argon2Parallelism,
		Argon2MaxVerifyMemoryKiB: env.GetInt(
			"ARGON2_MAX_VERIFY_MEMORY_KIB",
			verifyCostFactor*argon2Memory,
		),
		Argon2MaxVerifyIterations: env.GetInt(
			"ARGON2_MAX_VERIFY_ITERATIONS",
			verifyCostFactor*argon2Iterations,
		),
		Argon2MaxVerifyParallelism: env.GetInt(
			"ARGON2_MAX_VERIFY_PARALLELISM",
			min(verifyCostFactor*argon2Parallelism, 255),
		),
		HashWorkers: env.GetInt("HASH_WORKERS", runtime.NumCPU()),
		HashTimeout: env.GetDuration("HASH_TIMEOUT_SECONDS", 10, time.Second),

		// Rate Limiting (IP-based)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", "http://localhost:5173"),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "crypto_api"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// Validate checks the settings that cannot be defaulted safely. The encryption key is parsed
// separately so its content never appears in an error message.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.MaxPayloadSize, validation.Required, validation.Min(1)),
		validation.Field(&c.MaxPasswordLength, validation.Required, validation.Min(1)),
		validation.Field(&c.NonceWindow, validation.Min(0)),
		validation.Field(&c.Argon2Parallelism, validation.Required, validation.Min(1), validation.Max(255)),
		validation.Field(&c.Argon2MaxVerifyMemoryKiB, validation.Min(c.Argon2MemoryKiB)),
		validation.Field(&c.Argon2MaxVerifyIterations, validation.Min(c.Argon2Iterations)),
		validation.Field(
			&c.Argon2MaxVerifyParallelism,
			validation.Min(c.Argon2Parallelism),
			validation.Max(255),
		),
		validation.Field(&c.HashWorkers, validation.Required, validation.Min(1)),
		validation.Field(&c.HashTimeout, validation.Required),
		validation.Field(&c.RateLimitRequestsPerSec, validation.When(c.RateLimitEnabled, validation.Required)),
		validation.Field(&c.RateLimitBurst, validation.When(c.RateLimitEnabled, validation.Required)),
		validation.Field(&c.MetricsPort, validation.When(c.MetricsEnabled, validation.Required, validation.Max(65535))),
	)
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
