package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/huangsam/metricviz/core"
	"github.com/huangsam/metricviz/internal/iostate"
	"github.com/huangsam/metricviz/internal/telemetry"
	"github.com/huangsam/metricviz/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *toolHandler {
	t.Helper()
	svc := core.NewService(iostate.NewStateAdapter(iostate.NewMemoryStore(), ""), nil)
	return &toolHandler{svc: svc, metrics: telemetry.NewMetrics(), logger: zap.NewNop()}
}

func TestHandleReadMetrics(t *testing.T) {
	h := newTestHandler(t)
	ctx := context.Background()

	req := mcp.ReadResourceRequest{}
	req.Params.URI = schema.ResourceURI

	contents, err := h.handleReadMetrics(ctx, req)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "application/json", text.MIMEType)
	assert.Equal(t, schema.ResourceURI, text.URI)
	assert.JSONEq(t, `{"metrics":[],"last_updated":null}`, text.Text)

	_, err = h.svc.Push(ctx, 7, schema.DefaultLabel)
	require.NoError(t, err)

	contents, err = h.handleReadMetrics(ctx, req)
	require.NoError(t, err)
	assert.Contains(t, contents[0].(mcp.TextResourceContents).Text, `"label":"default"`)
}

func TestHandleGetChartWithoutRenderer(t *testing.T) {
	h := newTestHandler(t)
	ctx := context.Background()
	_, err := h.svc.Push(ctx, 1, "a")
	require.NoError(t, err)

	res, err := h.handleGetChart(ctx, mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, `"kind":"renderer_unavailable"`)
}

func TestRouter(t *testing.T) {
	h := newTestHandler(t)
	router := NewRouter(NewMCPServer(h.svc, h.metrics), h.metrics)

	t.Run("healthz", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthPath, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok\n", rec.Body.String())
	})

	t.Run("metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, MetricsPath, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "metricviz_stored_points")
	})

	t.Run("unknown path", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
