//go:build nochart

package chart

import (
	"context"

	"github.com/huangsam/metricviz/internal/contract"
	"github.com/huangsam/metricviz/schema"
)

// Available reports whether this build can render charts.
func Available() bool {
	return false
}

// Render always fails in builds without the plotting stack.
func (r *Renderer) Render(_ context.Context, points []schema.MetricPoint, _ schema.ChartOptions) ([]byte, error) {
	if len(points) == 0 {
		return nil, contract.ErrNoData
	}
	return nil, contract.ErrRendererUnavailable
}
