// Package chart renders metric points as PNG line charts.
package chart

import (
	"github.com/huangsam/metricviz/internal/contract"
)

// Chart layout constants.
const (
	DPI        = 96
	XAxisLabel = "Sample"
	YAxisLabel = "Value"
)

// Renderer draws one line per label. Builds tagged nochart return
// contract.ErrRendererUnavailable from every call.
type Renderer struct{}

var _ contract.Renderer = &Renderer{} // Compile-time check

// New returns a Renderer.
func New() *Renderer {
	return &Renderer{}
}
