package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/huangsam/metricviz/internal/contract"
	"github.com/huangsam/metricviz/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func sampleSnapshot() schema.Snapshot {
	ts := "2024-05-01T10:00:02Z"
	return schema.Snapshot{
		Metrics: []schema.MetricPoint{
			{Value: 1, Label: "cpu", Timestamp: "2024-05-01T10:00:00Z"},
			{Value: 50, Label: "mem", Timestamp: "2024-05-01T10:00:01Z"},
			{Value: 3, Label: "cpu", Timestamp: ts},
		},
		Count:       3,
		LastUpdated: &ts,
	}
}

func TestCreateFormatter(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		value     float64
		expected  string
	}{
		{"precision 2", 2, 3.14159, "3.14"},
		{"precision 0", 0, 3.14159, "3"},
		{"precision 4", 4, 3.14159, "3.1416"},
		{"negative value", 2, -42.567, "-42.57"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, createFormatter(tt.precision)(tt.value))
		})
	}
}

func TestSummarize(t *testing.T) {
	summaries := Summarize(sampleSnapshot().Metrics)
	require.Len(t, summaries, 2)

	assert.Equal(t, SeriesSummary{Label: "cpu", Count: 2, Min: 1, Max: 3, Mean: 2, Last: 3}, summaries[0])
	assert.Equal(t, SeriesSummary{Label: "mem", Count: 1, Min: 50, Max: 50, Mean: 50, Last: 50}, summaries[1])
	assert.Empty(t, Summarize(nil))
}

func TestWriteMetricsTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Precision: 1, Width: 120}
	require.NoError(t, writeMetricsTable(&buf, sampleSnapshot(), cfg, createFormatter(cfg.Precision)))

	out := buf.String()
	upper := strings.ToUpper(out)
	assert.Contains(t, upper, "TIMESTAMP")
	assert.Contains(t, out, "50.0")
	assert.Contains(t, upper, "MEAN")
	assert.Contains(t, out, "Showing 3 of at most 100 points. Last updated: 2024-05-01T10:00:02Z")
}

func TestWriteMetricsTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Precision: 2, Width: 80}
	require.NoError(t, writeMetricsTable(&buf, schema.Snapshot{Metrics: []schema.MetricPoint{}}, cfg, createFormatter(2)))
	assert.Contains(t, buf.String(), "No metrics recorded")
}

func TestWriteMetricsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeMetricsCSV(&buf, sampleSnapshot(), createFormatter(2)))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"index", "label", "value", "ts"}, records[0])
	assert.Equal(t, []string{"1", "mem", "50.00", "2024-05-01T10:00:01Z"}, records[2])
}

func TestWriteMetricsJSONFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "metrics.json")
	cfg := &contract.Config{Output: schema.JSONOut, OutputFile: outPath, Precision: 2}
	require.NoError(t, WriteMetrics(sampleSnapshot(), cfg))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var got schema.Snapshot
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, sampleSnapshot(), got)
}

func TestGetMaxTableLabelWidth(t *testing.T) {
	assert.Equal(t, 10, getMaxTableLabelWidth(&contract.Config{Width: 40}))
	assert.Equal(t, 20, getMaxTableLabelWidth(&contract.Config{Width: 80}))
	assert.Equal(t, 50, getMaxTableLabelWidth(&contract.Config{Width: 300}))
}
