package cmd

import (
	"errors"
	"fmt"

	"github.com/huangsam/metricviz/internal/contract"
	"github.com/huangsam/metricviz/internal/iostate"
	"github.com/huangsam/metricviz/schema"
	"github.com/spf13/cobra"
)

// storeSetupWrapper loads configuration without opening the store.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return resolveConfig()
}

// storeCmd focused on store management.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect or remove the metrics store",
	Long: `Manage the backend holding the metrics document.

Subcommands:
  status - Show connection info and the size of the stored document
  drop   - Remove everything metricviz keeps in the backend

Examples:
  # Check Redis status
  REDIS_URL=redis://localhost:6379/0 metricviz store status

  # Remove the SQLite database file
  metricviz store drop --store-backend sqlite --yes`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display store connection details and document size",
	PreRunE: storeSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		target := iostate.DescribeTarget(cfg.StoreBackend, cfg.StoreConnect)

		store, err := iostate.OpenStore(rootCtx, cfg.StoreBackend, cfg.StoreConnect)
		if err != nil {
			contract.LogWarn("Failed to open store", err)
			iostate.PrintStoreStatus(cmd.OutOrStdout(), target, schema.StoreStatus{
				Backend: string(cfg.StoreBackend),
				Key:     cfg.StateKey,
			})
			return nil
		}
		kvStore = store
		defer CloseStore()

		status, err := kvStore.GetStatus(rootCtx, cfg.StateKey)
		if err != nil {
			return fmt.Errorf("failed to get store status: %w", err)
		}
		iostate.PrintStoreStatus(cmd.OutOrStdout(), target, status)
		return nil
	},
}

// storeDropCmd removes the store contents.
var storeDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Remove all metricviz data from the backend",
	Long: `Delete everything metricviz keeps in the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the state table
For Redis: Deletes the state key`,
	PreRunE: storeSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("refusing to drop store without --yes")
		}
		if err := iostate.DropStore(rootCtx, cfg.StoreBackend, cfg.StoreConnect, cfg.StateKey); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Store dropped (%s).\n", iostate.DescribeTarget(cfg.StoreBackend, cfg.StoreConnect))
		return err
	},
}
