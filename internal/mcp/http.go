package mcp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/huangsam/metricviz/internal/telemetry"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// HTTP endpoint paths.
const (
	MCPPath     = "/mcp"
	MetricsPath = "/metrics"
	HealthPath  = "/healthz"
)

const shutdownTimeout = 5 * time.Second

// NewRouter mounts the streamable MCP endpoint, Prometheus metrics and a health check.
func NewRouter(s *server.MCPServer, metrics *telemetry.Metrics) *mux.Router {
	r := mux.NewRouter()
	r.Handle(MCPPath, server.NewStreamableHTTPServer(s, server.WithEndpointPath(MCPPath)))
	if metrics != nil {
		r.Handle(MetricsPath, metrics.Handler()).Methods(http.MethodGet)
	}
	r.HandleFunc(HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	}).Methods(http.MethodGet)
	return r
}

// ServeHTTP listens on addr until ctx is canceled, then shuts down gracefully.
func ServeHTTP(ctx context.Context, addr string, s *server.MCPServer, metrics *telemetry.Metrics) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(s, metrics),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("serving MCP over HTTP", zap.String("addr", addr), zap.String("path", MCPPath))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		zap.L().Info("shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	}
}
