package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/huangsam/metricviz/core"
	"github.com/huangsam/metricviz/internal/contract"
	"github.com/huangsam/metricviz/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// SeriesSummary aggregates the points of one label.
type SeriesSummary struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	Last  float64 `json:"last"`
}

// Summarize computes per-label statistics in first-seen label order.
func Summarize(points []schema.MetricPoint) []SeriesSummary {
	series := core.GroupByLabel(points)
	summaries := make([]SeriesSummary, 0, len(series))
	for _, s := range series {
		sum := SeriesSummary{Label: s.Label, Count: len(s.Points), Min: math.Inf(1), Max: math.Inf(-1)}
		total := 0.0
		for _, p := range s.Points {
			sum.Min = math.Min(sum.Min, p.Value)
			sum.Max = math.Max(sum.Max, p.Value)
			total += p.Value
		}
		sum.Mean = total / float64(sum.Count)
		sum.Last = s.Points[len(s.Points)-1].Value
		summaries = append(summaries, sum)
	}
	return summaries
}

// WriteMetrics outputs the stored points, dispatching based on the output format configured.
func WriteMetrics(snapshot schema.Snapshot, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, snapshot)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsCSV(w, snapshot, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsTable(w, snapshot, cfg, fmtFloat)
		}, "Wrote table")
	}
}

func writeMetricsCSV(w io.Writer, snapshot schema.Snapshot, fmtFloat func(float64) string) error {
	header := []string{"index", "label", "value", "ts"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, p := range snapshot.Metrics {
			if err := cw.Write([]string{strconv.Itoa(i), p.Label, fmtFloat(p.Value), p.Timestamp}); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

func writeMetricsTable(w io.Writer, snapshot schema.Snapshot, cfg *contract.Config, fmtFloat func(float64) string) error {
	if snapshot.Count == 0 {
		_, err := fmt.Fprintln(w, contract.WarnColor.Sprint("No metrics recorded. Use push to add data points."))
		return err
	}

	labelWidth := getMaxTableLabelWidth(cfg)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Label", "Value", "Timestamp"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(snapshot.Metrics))
	for i, p := range snapshot.Metrics {
		data = append(data, []string{
			strconv.Itoa(i),
			contract.LabelColor.Sprint(contract.TruncateLabel(p.Label, labelWidth)),
			contract.ValueColor.Sprint(fmtFloat(p.Value)),
			p.Timestamp,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if err := writeSummaryTable(w, Summarize(snapshot.Metrics), labelWidth, fmtFloat); err != nil {
		return err
	}

	lastUpdated := "never"
	if snapshot.LastUpdated != nil {
		lastUpdated = *snapshot.LastUpdated
	}
	_, err := fmt.Fprintf(w, "Showing %d of at most %d points. Last updated: %s\n", snapshot.Count, schema.MaxPoints, lastUpdated)
	return err
}

func writeSummaryTable(w io.Writer, summaries []SeriesSummary, labelWidth int, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Label", "Count", "Min", "Max", "Mean", "Last"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		data = append(data, []string{
			contract.LabelColor.Sprint(contract.TruncateLabel(s.Label, labelWidth)),
			strconv.Itoa(s.Count),
			fmtFloat(s.Min),
			fmtFloat(s.Max),
			fmtFloat(s.Mean),
			fmtFloat(s.Last),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
