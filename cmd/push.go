package cmd

import (
	"fmt"

	"github.com/huangsam/metricviz/core"
	"github.com/huangsam/metricviz/internal/contract"
	"github.com/spf13/cobra"
)

// pushCmd records a single value.
var pushCmd = &cobra.Command{
	Use:   "push <value>",
	Short: "Record a metric value",
	Long: `Append a value to the metrics document. Only the most recent 100 points are kept.

Examples:
  metricviz push 21.5
  metricviz push 0.73 --label cpu`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer CloseStore()

		value, err := core.ParseValue(args[0])
		if err != nil {
			return err
		}
		label, _ := cmd.Flags().GetString("label")

		result, err := newService().Push(rootCtx, value, label)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Pushed %s = %s (%d points stored)\n",
			contract.LabelColor.Sprint(result.Pushed.Label),
			contract.ValueColor.Sprintf("%.*f", cfg.Precision, result.Pushed.Value),
			result.TotalPoints)
		return err
	},
}
