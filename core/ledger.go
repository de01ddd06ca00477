package core

import (
	"time"

	"github.com/huangsam/metricviz/schema"
)

// TimestampFormat is the ISO-8601 layout used for point timestamps.
const TimestampFormat = time.RFC3339Nano

// NewDocument returns the canonical empty document.
func NewDocument() schema.MetricsDocument {
	return schema.MetricsDocument{Metrics: []schema.MetricPoint{}}
}

// Append returns a copy of doc with a new point added and the history bounded to
// schema.MaxPoints entries, dropping the oldest first. doc itself is not modified.
// The label is stored as given; callers apply schema.DefaultLabel when it is omitted.
func Append(doc schema.MetricsDocument, value float64, label string, now time.Time) (schema.MetricsDocument, schema.MetricPoint) {
	point := schema.MetricPoint{
		Value:     value,
		Label:     label,
		Timestamp: now.Format(TimestampFormat),
	}

	start := 0
	if n := len(doc.Metrics) + 1; n > schema.MaxPoints {
		start = n - schema.MaxPoints
	}
	kept := doc.Metrics[start:]
	metrics := make([]schema.MetricPoint, 0, len(kept)+1)
	metrics = append(metrics, kept...)
	metrics = append(metrics, point)

	ts := point.Timestamp
	return schema.MetricsDocument{Metrics: metrics, LastUpdated: &ts}, point
}

// TakeSnapshot projects doc into the read-only get_metrics payload.
func TakeSnapshot(doc schema.MetricsDocument) schema.Snapshot {
	metrics := doc.Metrics
	if metrics == nil {
		metrics = []schema.MetricPoint{}
	}
	return schema.Snapshot{
		Metrics:     metrics,
		Count:       len(metrics),
		LastUpdated: doc.LastUpdated,
	}
}

// Reset returns the empty document written by clear.
func Reset() schema.MetricsDocument {
	return NewDocument()
}
