//go:build nochart

package chart

import (
	"context"
	"testing"

	"github.com/huangsam/metricviz/internal/contract"
	"github.com/huangsam/metricviz/schema"
	"github.com/stretchr/testify/assert"
)

func TestRenderUnavailable(t *testing.T) {
	points := []schema.MetricPoint{{Value: 1, Label: "default", Timestamp: "2024-05-01T10:00:00Z"}}
	_, err := New().Render(context.Background(), points, schema.DefaultChartOptions())
	assert.ErrorIs(t, err, contract.ErrRendererUnavailable)
	assert.False(t, Available())
}
