package cmd

import (
	"fmt"

	"github.com/huangsam/metricviz/internal/contract"
	"github.com/spf13/cobra"
)

// clearCmd empties the metrics document.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded metric points",
	Long: `Replace the metrics document with an empty one. The key itself is kept.

A corrupt document is overwritten without being read, so clear also recovers
from unreadable state.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		defer CloseStore()

		if _, err := newService().Clear(rootCtx); err != nil {
			return err
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), contract.SuccessColor.Sprint("Metrics cleared."))
		return err
	},
}
