package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/crypto-api/internal/metrics"
)

// MetricsServer serves the Prometheus exposition on its own port, away from the engine routes.
type MetricsServer struct {
	listener
}

// NewMetricsServer creates a new MetricsServer. Without a provider only /health is served.
func NewMetricsServer(host string, port int, logger *slog.Logger, metricsProvider *metrics.Provider) *MetricsServer {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	if metricsProvider != nil {
		router.GET("/metrics", gin.WrapH(metricsProvider.Handler()))
	}

	return &MetricsServer{listener: listener{
		name:   "metrics server",
		server: newHTTPServer(host, port, router),
		logger: logger,
	}}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *MetricsServer) GetHandler() http.Handler {
	return s.server.Handler
}

// Start blocks until the metrics server stops.
func (s *MetricsServer) Start(ctx context.Context) error {
	return s.serve()
}

// Shutdown gracefully shuts down the metrics server.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.shutdown(ctx)
}
