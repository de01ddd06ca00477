// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/huangsam/metricviz/core"
	"github.com/huangsam/metricviz/internal/contract"
	"github.com/huangsam/metricviz/internal/telemetry"
	"github.com/huangsam/metricviz/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Server identity reported during initialization.
const (
	ServerName    = "metricviz"
	ServerVersion = "1.0.0"
)

// NewMCPServer initializes and configures the metricviz MCP server without starting it.
// A nil metrics disables instrumentation.
func NewMCPServer(svc *core.Service, metrics *telemetry.Metrics) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithLogging(),
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	h := &toolHandler{
		svc:     svc,
		metrics: metrics,
		logger:  zap.L().Named("mcp"),
	}

	// --- 1. Tool: push ---
	s.AddTool(mcp.NewTool(schema.ToolPush,
		mcp.WithDescription("Record a metric value. Only the most recent 100 points are kept."),
		mcp.WithNumber("value", mcp.Description("The numeric value to record."), mcp.Required()),
		mcp.WithString("label", mcp.Description("Series label for the value. Defaults to 'default'."), mcp.DefaultString(schema.DefaultLabel)),
	), h.instrument(schema.ToolPush, h.handlePush))

	// --- 2. Tool: get_metrics ---
	s.AddTool(mcp.NewTool(schema.ToolGetMetrics,
		mcp.WithDescription("Return all recorded metric points with their count and last update time."),
	), h.instrument(schema.ToolGetMetrics, h.handleGetMetrics))

	// --- 3. Tool: get_chart ---
	s.AddTool(mcp.NewTool(schema.ToolGetChart,
		mcp.WithDescription("Render the recorded metrics as a PNG line chart with one line per label."),
		mcp.WithString("title", mcp.Description("Chart title."), mcp.DefaultString(schema.DefaultChartTitle)),
		mcp.WithNumber("width", mcp.Description("Image width in pixels."), mcp.DefaultNumber(schema.DefaultChartWidth)),
		mcp.WithNumber("height", mcp.Description("Image height in pixels."), mcp.DefaultNumber(schema.DefaultChartHeight)),
	), h.instrument(schema.ToolGetChart, h.handleGetChart))

	// --- 4. Tool: clear ---
	s.AddTool(mcp.NewTool(schema.ToolClear,
		mcp.WithDescription("Delete all recorded metric points."),
	), h.instrument(schema.ToolClear, h.handleClear))

	// --- Resource: data://metrics ---
	s.AddResource(mcp.NewResource(schema.ResourceURI, "Metrics data",
		mcp.WithResourceDescription("The stored metrics document as JSON."),
		mcp.WithMIMEType("application/json"),
	), h.handleReadMetrics)

	return s
}

// StartMCPServer starts the metricviz MCP server on the configured transport.
// It returns when the transport stops or ctx is canceled.
func StartMCPServer(ctx context.Context, cfg *contract.Config, svc *core.Service, metrics *telemetry.Metrics) error {
	s := NewMCPServer(svc, metrics)
	switch cfg.Transport {
	case schema.HTTPTransport:
		return ServeHTTP(ctx, cfg.Addr, s, metrics)
	case schema.StdioTransport, "":
		zap.L().Info("serving MCP over stdio")
		return server.NewStdioServer(s).Listen(ctx, os.Stdin, os.Stdout)
	default:
		return fmt.Errorf("unsupported transport: %s", cfg.Transport)
	}
}
