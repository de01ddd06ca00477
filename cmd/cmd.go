// Package cmd defines the command-line interface for metricviz.
package cmd

import (
	"github.com/huangsam/metricviz/internal/contract"
	"github.com/huangsam/metricviz/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeDropCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("store-backend", string(schema.RedisBackend), "Store backend: redis or sqlite or mysql or postgresql or memory")
	rootCmd.PersistentFlags().String("store-connect", "", "Connection string for the store (e.g., redis://localhost:6379/0). REDIS_URL is also honored")
	rootCmd.PersistentFlags().String("state-key", schema.DefaultStateKey, "Key holding the metrics document")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-file", "", "Write JSON logs to this rotated file instead of stderr")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("transport", string(schema.StdioTransport), "MCP transport: stdio or http")
	serveCmd.Flags().String("addr", contract.DefaultAddr, "Listen address for the http transport")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Command-local flags that are not part of the shared config
	pushCmd.Flags().StringP("label", "L", schema.DefaultLabel, "Series label for the value")
	chartCmd.Flags().String("title", schema.DefaultChartTitle, "Chart title")
	chartCmd.Flags().Int("chart-width", schema.DefaultChartWidth, "Image width in pixels")
	chartCmd.Flags().Int("chart-height", schema.DefaultChartHeight, "Image height in pixels")
	storeDropCmd.Flags().Bool("yes", false, "Confirm that all stored metrics should be removed")
}
