package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/allisson/crypto-api/internal/app"
	"github.com/allisson/crypto-api/internal/config"
)

// starter is a server that blocks in Start until shut down.
type starter interface {
	Start(ctx context.Context) error
}

// RunServer starts the API and metrics servers and blocks until SIGINT/SIGTERM, a server error or
// a fatal engine failure. A fatal engine failure is returned so the process exits non-zero rather
// than keep serving without a trustworthy entropy source. Servers are drained through the container
// within SHUTDOWN_TIMEOUT_SECONDS.
func RunServer(ctx context.Context, version string) (err error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if shutErr := container.Shutdown(shutdownCtx); shutErr != nil {
			err = errors.Join(err, fmt.Errorf("shutdown: %w", shutErr))
		}
	}()

	// Building the API server initializes the whole engine, so a bad key fails here.
	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	servers := map[string]starter{"api server": server}
	if metricsServer != nil {
		servers["metrics server"] = metricsServer
	}

	serverErr := make(chan error, len(servers))
	for name, s := range servers {
		go func() {
			if err := s.Start(ctx); err != nil {
				serverErr <- fmt.Errorf("%s error: %w", name, err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		return nil
	case err := <-serverErr:
		logger.Error("server error, initiating shutdown", slog.Any("error", err))
		return err
	case err := <-container.Fatal():
		logger.Error("engine halted, initiating shutdown", slog.Any("error", err))
		return fmt.Errorf("engine halted: %w", err)
	}
}
