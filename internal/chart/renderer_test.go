//go:build !nochart

package chart

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/huangsam/metricviz/internal/contract"
	"github.com/huangsam/metricviz/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePoints() []schema.MetricPoint {
	return []schema.MetricPoint{
		{Value: 1, Label: "a", Timestamp: "2024-05-01T10:00:00Z"},
		{Value: 10, Label: "b", Timestamp: "2024-05-01T10:00:01Z"},
		{Value: 2, Label: "a", Timestamp: "2024-05-01T10:00:02Z"},
		{Value: 20, Label: "b", Timestamp: "2024-05-01T10:00:03Z"},
	}
}

func TestRenderDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"default", schema.DefaultChartWidth, schema.DefaultChartHeight},
		{"vga", 640, 480},
		{"square", 300, 300},
	}
	r := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := r.Render(context.Background(), samplePoints(), schema.ChartOptions{
				Title:  "Metrics",
				Width:  tt.width,
				Height: tt.height,
			})
			require.NoError(t, err)
			require.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))

			cfg, err := png.DecodeConfig(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, tt.width, cfg.Width)
			assert.Equal(t, tt.height, cfg.Height)
		})
	}
}

func TestRenderSinglePoint(t *testing.T) {
	data, err := New().Render(context.Background(), []schema.MetricPoint{
		{Value: 42, Label: "default", Timestamp: "2024-05-01T10:00:00Z"},
	}, schema.DefaultChartOptions())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRenderNoData(t *testing.T) {
	_, err := New().Render(context.Background(), nil, schema.DefaultChartOptions())
	assert.ErrorIs(t, err, contract.ErrNoData)
}

func TestRenderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Render(ctx, samplePoints(), schema.DefaultChartOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildPlotLabels(t *testing.T) {
	p, err := buildPlot(samplePoints(), "Temps")
	require.NoError(t, err)
	assert.Equal(t, "Temps", p.Title.Text)
	assert.Equal(t, XAxisLabel, p.X.Label.Text)
	assert.Equal(t, YAxisLabel, p.Y.Label.Text)
	assert.True(t, Available())
}
