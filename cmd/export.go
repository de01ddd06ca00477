package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/metricviz/internal/parquet"
	"github.com/huangsam/metricviz/schema"
	"github.com/spf13/cobra"
)

// exportCmd writes the stored points to a Parquet file.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded metric points to Parquet",
	Long: `Write every stored point to a Parquet file for offline analysis.

Columns: index, label, value, ts, recorded_at

Examples:
  metricviz export --output-file metrics.parquet`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		defer CloseStore()

		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for export")
		}
		snapshot, err := newService().GetMetrics(rootCtx)
		if err != nil {
			return err
		}
		return exportParquet(snapshot.Metrics, cfg.OutputFile)
	},
}

func exportParquet(points []schema.MetricPoint, outputFile string) error {
	if err := parquet.WriteMetricPointsParquet(parquet.ConvertMetricPoints(points), outputFile); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote %d points to %s\n", len(points), outputFile)
	return nil
}
