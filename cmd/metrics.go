package cmd

import (
	"github.com/huangsam/metricviz/internal/outwriter"
	"github.com/huangsam/metricviz/schema"
	"github.com/spf13/cobra"
)

// metricsCmd lists the stored points.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "List recorded metric points",
	Long: `Display every stored point followed by per-label statistics.

Output formats:
  text    - Tables for humans (default)
  json    - The same payload as the get_metrics tool
  csv     - One row per point
  parquet - One row per point, requires --output-file

Examples:
  metricviz metrics
  metricviz metrics --output csv --output-file metrics.csv`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		defer CloseStore()

		snapshot, err := newService().GetMetrics(rootCtx)
		if err != nil {
			return err
		}
		if cfg.Output == schema.ParquetOut {
			return exportParquet(snapshot.Metrics, cfg.OutputFile)
		}
		return outwriter.WriteMetrics(snapshot, cfg)
	},
}
