// Package schema has models and constants for all parts of metricviz.
package schema

import "encoding/json"

// MetricPoint is a single recorded measurement. Points are never modified after creation.
type MetricPoint struct {
	Value     float64 `json:"value"` // Measured value
	Label     string  `json:"label"` // Series the point belongs to
	Timestamp string  `json:"ts"`    // ISO-8601 time the point was pushed
}

// MetricsDocument is the single JSON document persisted under the state key.
// Metrics are ordered oldest first and never exceed MaxPoints entries.
type MetricsDocument struct {
	Metrics     []MetricPoint `json:"metrics"`
	LastUpdated *string       `json:"last_updated"`
}

// Snapshot is a read-only projection of a MetricsDocument.
type Snapshot struct {
	Metrics     []MetricPoint `json:"metrics"`
	Count       int           `json:"count"`
	LastUpdated *string       `json:"last_updated"`
}

// PushResult is returned by the push tool.
type PushResult struct {
	Pushed      MetricPoint `json:"pushed"`
	TotalPoints int         `json:"total_points"`
}

// ClearResult is returned by the clear tool.
type ClearResult struct {
	Cleared bool `json:"cleared"`
}

// ChartOptions controls chart rendering.
type ChartOptions struct {
	Title  string `json:"title" validate:"max=200"`
	Width  int    `json:"width" validate:"min=1,max=4096"`
	Height int    `json:"height" validate:"min=1,max=4096"`
}

// DefaultChartOptions returns the options used when get_chart omits its parameters.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Title:  DefaultChartTitle,
		Width:  DefaultChartWidth,
		Height: DefaultChartHeight,
	}
}

// ChartResult is the outcome of a chart request: either a ChartImage or a ToolError.
type ChartResult interface {
	isChartResult()
}

// ChartImage holds an encoded chart.
type ChartImage struct {
	PNG []byte
}

// ToolError is a recoverable failure reported back to the caller as a structured payload.
type ToolError struct {
	Kind    ToolErrorKind `json:"kind"`
	Message string        `json:"error"`
}

func (ChartImage) isChartResult() {}

func (*ToolError) isChartResult() {}

// Error implements the error interface.
func (e *ToolError) Error() string {
	return e.Message
}

// JSON returns the payload sent to tool callers.
func (e *ToolError) JSON() string {
	data, _ := json.Marshal(e)
	return string(data)
}
