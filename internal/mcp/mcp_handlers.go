package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/metricviz/core"
	"github.com/huangsam/metricviz/internal/contract"
	"github.com/huangsam/metricviz/internal/telemetry"
	"github.com/huangsam/metricviz/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	svc     *core.Service
	metrics *telemetry.Metrics
	logger  *zap.Logger
}

// instrument records the outcome and latency of every call to next.
func (h *toolHandler) instrument(tool string, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		res, err := next(ctx, request)

		outcome := telemetry.OutcomeOK
		switch {
		case err != nil:
			outcome = telemetry.OutcomeError
			h.logger.Error("tool call failed", zap.String("tool", tool), zap.Error(err))
		case res != nil && res.IsError:
			outcome = telemetry.OutcomeToolError
		}
		h.metrics.ObserveCall(tool, outcome, time.Since(start))
		return res, err
	}
}

func (h *toolHandler) handlePush(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	value, err := core.ParseValue(args["value"])
	if err != nil {
		return toolErrorResult(err)
	}
	label, err := core.ParseLabel(args["label"])
	if err != nil {
		return toolErrorResult(err)
	}

	result, err := h.svc.Push(ctx, value, label)
	if err != nil {
		return toolErrorResult(err)
	}
	h.metrics.SetStoredPoints(result.TotalPoints)
	return jsonResult(result)
}

func (h *toolHandler) handleGetMetrics(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snapshot, err := h.svc.GetMetrics(ctx)
	if err != nil {
		return toolErrorResult(err)
	}
	return jsonResult(snapshot)
}

func (h *toolHandler) handleGetChart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts, err := parseChartOptions(request.GetArguments())
	if err != nil {
		return toolErrorResult(err)
	}

	result, err := h.svc.GetChart(ctx, opts)
	if err != nil {
		return nil, err
	}

	switch r := result.(type) {
	case schema.ChartImage:
		encoded := base64.StdEncoding.EncodeToString(r.PNG)
		return &mcp.CallToolResult{
			Content: []mcp.Content{mcp.NewImageContent(encoded, "image/png")},
		}, nil
	case *schema.ToolError:
		return mcp.NewToolResultError(r.JSON()), nil
	default:
		return nil, fmt.Errorf("unexpected chart result %T", result)
	}
}

func (h *toolHandler) handleClear(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.svc.Clear(ctx)
	if err != nil {
		return toolErrorResult(err)
	}
	h.metrics.SetStoredPoints(0)
	return jsonResult(result)
}

func (h *toolHandler) handleReadMetrics(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	doc, err := h.svc.ReadDocument(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metrics document: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// parseChartOptions reads get_chart arguments, rejecting malformed values
// instead of falling back to defaults.
func parseChartOptions(args map[string]any) (schema.ChartOptions, error) {
	var opts schema.ChartOptions
	var err error
	if opts.Title, err = core.ParseTitle(args["title"]); err != nil {
		return opts, err
	}
	if opts.Width, err = core.ParseDimension("width", args["width"], schema.DefaultChartWidth); err != nil {
		return opts, err
	}
	if opts.Height, err = core.ParseDimension("height", args["height"], schema.DefaultChartHeight); err != nil {
		return opts, err
	}
	return opts, nil
}

// toolErrorResult reports recoverable errors as structured tool errors.
// Everything else, such as corrupt state or store I/O failures, becomes a protocol error.
func toolErrorResult(err error) (*mcp.CallToolResult, error) {
	if te, ok := contract.AsToolError(err); ok {
		return mcp.NewToolResultError(te.JSON()), nil
	}
	var corrupt *contract.CorruptStateError
	if errors.As(err, &corrupt) {
		return nil, fmt.Errorf("stored metrics are unreadable and were left untouched: %w", err)
	}
	return nil, err
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
