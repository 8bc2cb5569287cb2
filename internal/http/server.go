// Package http provides the HTTP server, router and middleware for the crypto API.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/crypto-api/internal/config"
	cryptoHTTP "github.com/allisson/crypto-api/internal/crypto/http"
	"github.com/allisson/crypto-api/internal/crypto/http/dto"
	"github.com/allisson/crypto-api/internal/metrics"
)

// jsonEscapeFactor is the worst-case growth of a string once JSON escaped (\u0000).
const jsonEscapeFactor = 6

// EngineStatus reports whether the cryptographic engine stopped serving after a fatal fault.
type EngineStatus interface {
	Halted() bool
}

// listener runs one http.Server until Shutdown.
type listener struct {
	name   string
	server *http.Server
	logger *slog.Logger
}

func (l *listener) serve() error {
	l.logger.Info("starting "+l.name, slog.String("addr", l.server.Addr))

	if err := l.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start %s: %w", l.name, err)
	}
	return nil
}

func (l *listener) shutdown(ctx context.Context) error {
	l.logger.Info("shutting down " + l.name)
	return l.server.Shutdown(ctx)
}

// Server is the API server in front of the cryptographic engine.
type Server struct {
	listener
	router       *gin.Engine
	engine       EngineStatus
	shuttingDown atomic.Bool
}

// NewServer creates a new HTTP server. A nil engine is reported as not ready.
func NewServer(
	engine EngineStatus,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		listener: listener{
			name:   "http server",
			server: newHTTPServer(host, port, nil),
			logger: logger,
		},
		engine: engine,
	}
}

// newHTTPServer builds an http.Server with the timeouts shared by the API and metrics listeners.
// The write timeout leaves room for a password derivation queued behind busy workers.
func newHTTPServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// SetupRouter configures the Gin router with all routes and middleware.
// The context bounds background work started by middleware, such as limiter cleanup.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	cryptoHandler *cryptoHTTP.CryptoHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	security := router.Group("/security")
	security.Use(MaxBodyBytesMiddleware(requestBodyLimit(cfg), s.logger))
	if cfg.RateLimitEnabled {
		security.Use(RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	{
		security.POST("/encrypt", cryptoHandler.EncryptHandler)
		security.POST("/decrypt", cryptoHandler.DecryptHandler)
		security.POST("/hash", cryptoHandler.HashHandler)
		security.POST("/verify", cryptoHandler.VerifyHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves the router built by SetupRouter. It blocks until the server stops.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router
	return s.serve()
}

// Shutdown marks the server not ready, then drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shuttingDown.Store(true)
	return s.shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the engine can accept work.
func (s *Server) readinessHandler(c *gin.Context) {
	engineStatus := "ok"
	switch {
	case s.engine == nil:
		engineStatus = "error"
	case s.engine.Halted():
		engineStatus = "halted"
	case s.shuttingDown.Load():
		engineStatus = "shutting_down"
	}

	if engineStatus != "ok" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"engine": engineStatus},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"engine": engineStatus},
	})
}

// requestBodyLimit bounds request bodies on the engine routes: a maximal plaintext fully
// escaped, or its envelope, plus the associated data and the JSON framing.
func requestBodyLimit(cfg *config.Config) int64 {
	payload := max(jsonEscapeFactor*cfg.MaxPayloadSize, 2*(cfg.MaxPayloadSize+64))
	payload = max(payload, jsonEscapeFactor*cfg.MaxPasswordLength)
	return int64(payload + 2*dto.MaxAssociatedDataSize + 4096)
}
