// Package parquet provides data structures and functions for exporting the
// metrics ledger to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/metricviz/schema"
	"github.com/parquet-go/parquet-go"
)

// timestampLayouts are tried in order when parsing stored point timestamps.
// Timestamps without a zone are read in local time.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// MetricPointRecord represents a single metric point in the exported file.
type MetricPointRecord struct {
	// Index is the position of the point in the ledger, oldest first
	Index int32 `parquet:"index,snappy"`

	// Label is the series the point belongs to
	Label string `parquet:"label,dict,snappy"`

	// Value is the measured value
	Value float64 `parquet:"value,snappy"`

	// Timestamp is the stored ISO-8601 string, kept verbatim
	Timestamp string `parquet:"ts,snappy"`

	// RecordedAt is Timestamp parsed as a TIMESTAMP (nullable when unparseable)
	RecordedAt *time.Time `parquet:"recorded_at,optional,snappy"`
}

// WriteMetricPointsParquet writes a slice of MetricPointRecord structs to a Parquet file.
func WriteMetricPointsParquet(data []MetricPointRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the MetricPointRecord struct tags
	writer := parquet.NewGenericWriter[MetricPointRecord](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertMetricPoints converts ledger points to MetricPointRecord for Parquet export.
func ConvertMetricPoints(points []schema.MetricPoint) []MetricPointRecord {
	result := make([]MetricPointRecord, len(points))
	for i, p := range points {
		result[i] = MetricPointRecord{
			Index:      int32(i),
			Label:      p.Label,
			Value:      p.Value,
			Timestamp:  p.Timestamp,
			RecordedAt: parseTimestamp(p.Timestamp),
		}
	}
	return result
}

func parseTimestamp(ts string) *time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, ts, time.Local); err == nil {
			return &t
		}
	}
	return nil
}
