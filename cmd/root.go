package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/huangsam/metricviz/core"
	"github.com/huangsam/metricviz/internal/chart"
	"github.com/huangsam/metricviz/internal/contract"
	"github.com/huangsam/metricviz/internal/iostate"
	"github.com/huangsam/metricviz/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations. It is canceled on SIGINT or SIGTERM.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// kvStore is the opened backend for the current command.
var kvStore contract.KVStore

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "metricviz",
	Short: "Record metric points and chart them over MCP.",
	Long: `Metricviz is an MCP tool server that records numeric metric points in a key-value store
and renders them as PNG line charts. The same operations are available from the command line.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in ENV variables and sets defaults.
func initConfig() {
	// Set environment variable prefix
	viper.SetEnvPrefix("METRICVIZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// REDIS_URL is honored for compatibility with existing deployments
	_ = viper.BindEnv("store-connect", "METRICVIZ_STORE_CONNECT", "REDIS_URL")

	// Set defaults in Viper
	viper.SetDefault("store-backend", schema.RedisBackend)
	viper.SetDefault("store-connect", "")
	viper.SetDefault("state-key", schema.DefaultStateKey)
	viper.SetDefault("transport", schema.StdioTransport)
	viper.SetDefault("addr", contract.DefaultAddr)
	viper.SetDefault("log-level", contract.DefaultLogLevel)
	viper.SetDefault("log-file", "")
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("output-file", "")
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("width", 0)
	viper.SetDefault("color", "yes")
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".metricviz") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// resolveConfig merges all config sources into cfg and installs the logger.
func resolveConfig() error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and parsing. This populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	if _, err := contract.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	color.NoColor = color.NoColor || !cfg.UseColors
	return nil
}

// sharedSetup resolves configuration and opens the store.
func sharedSetup(ctx context.Context, _ *cobra.Command, _ []string) error {
	if err := resolveConfig(); err != nil {
		return err
	}

	// 4. Open the key-value backend with the validated config
	store, err := iostate.OpenStore(ctx, cfg.StoreBackend, cfg.StoreConnect)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.StoreBackend, err)
	}
	kvStore = store

	zap.L().Debug("store opened",
		zap.String("backend", string(cfg.StoreBackend)),
		zap.String("target", iostate.DescribeTarget(cfg.StoreBackend, cfg.StoreConnect)),
		zap.String("key", cfg.StateKey))
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// newService builds the tool operations on top of the opened store.
func newService() *core.Service {
	adapter := iostate.NewStateAdapter(kvStore, cfg.StateKey)
	return core.NewService(adapter, chart.New(), core.WithLogger(zap.L()))
}

// Execute runs the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	rootCtx = ctx
	return rootCmd.ExecuteContext(ctx)
}

// CloseStore releases the opened backend, if any, and flushes logs.
func CloseStore() {
	if kvStore != nil {
		if err := kvStore.Close(); err != nil {
			contract.LogWarn("Failed to close store", err)
		}
		kvStore = nil
	}
	_ = zap.L().Sync()
}
