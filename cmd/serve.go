package cmd

import (
	"github.com/huangsam/metricviz/internal/mcp"
	"github.com/huangsam/metricviz/internal/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd starts the MCP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the metricviz MCP server",
	Long: `Launch an MCP server exposing the push, get_metrics, get_chart and clear tools
and the data://metrics resource.

Transports:
  stdio - Speak MCP over stdin/stdout (default). Logs go to stderr or --log-file
  http  - Serve streamable HTTP on /mcp, Prometheus metrics on /metrics and /healthz

Examples:
  # Serve over stdio against a local Redis
  REDIS_URL=redis://localhost:6379/0 metricviz serve

  # Serve over HTTP with a SQLite store
  metricviz serve --transport http --addr :8000 --store-backend sqlite`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		defer CloseStore()
		zap.L().Info("starting metricviz",
			zap.String("version", version),
			zap.String("transport", string(cfg.Transport)),
			zap.String("backend", string(cfg.StoreBackend)))
		return mcp.StartMCPServer(rootCtx, cfg, newService(), telemetry.NewMetrics())
	},
}
