package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/metricviz/schema"
	"github.com/spf13/cobra"
)

// defaultChartFile is used when --output-file is not given.
const defaultChartFile = "metrics.png"

// chartCmd renders the stored points to a PNG file.
var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render recorded metrics as a PNG line chart",
	Long: `Render one line per label, exactly like the get_chart tool, and write the PNG to disk.

Examples:
  metricviz chart
  metricviz chart --title "CPU" --chart-width 1200 --chart-height 600 --output-file cpu.png`,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		defer CloseStore()

		opts := schema.DefaultChartOptions()
		opts.Title, _ = cmd.Flags().GetString("title")
		opts.Width, _ = cmd.Flags().GetInt("chart-width")
		opts.Height, _ = cmd.Flags().GetInt("chart-height")

		result, err := newService().GetChart(rootCtx, opts)
		if err != nil {
			return err
		}

		switch r := result.(type) {
		case schema.ChartImage:
			outputFile := cfg.OutputFile
			if outputFile == "" {
				outputFile = defaultChartFile
			}
			if err := os.WriteFile(outputFile, r.PNG, 0o644); err != nil {
				return fmt.Errorf("failed to write chart: %w", err)
			}
			_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote %dx%d chart to %s\n", opts.Width, opts.Height, outputFile)
			return nil
		case *schema.ToolError:
			return errors.New(r.Message)
		default:
			return fmt.Errorf("unexpected chart result %T", result)
		}
	},
}
