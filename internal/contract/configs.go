package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/huangsam/metricviz/schema"
)

// Default values for configuration.
const (
	DefaultAddr      = ":8000"
	DefaultLogLevel  = "info"
	DefaultPrecision = 2
	MaxPrecision     = 6
)

// validate is shared by every struct-level validation in the module.
var validate = validator.New()

// Validator returns the shared struct validator.
func Validator() *validator.Validate {
	return validate
}

// Config holds the runtime configuration.
// This struct is the "final, validated" config.
type Config struct {
	StoreBackend schema.StoreBackend
	StoreConnect string // Please use env var as this is plaintext
	StateKey     string

	Transport schema.Transport
	Addr      string

	LogLevel string
	LogFile  string

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	StoreBackend string `mapstructure:"store-backend"`
	StoreConnect string `mapstructure:"store-connect"`
	StateKey     string `mapstructure:"state-key"`
	Transport    string `mapstructure:"transport"`
	Addr         string `mapstructure:"addr"`
	LogLevel     string `mapstructure:"log-level"`
	LogFile      string `mapstructure:"log-file"`
	Output       string `mapstructure:"output"`
	OutputFile   string `mapstructure:"output-file"`
	Precision    int    `mapstructure:"precision"`
	Width        int    `mapstructure:"width"`
	Color        string `mapstructure:"color"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	return validateStoreConfig(cfg, input)
}

// ValidateStoreConnectionString validates the connection string for the given backend.
// A missing connection string for a networked backend is a startup-time configuration error.
func ValidateStoreConnectionString(backend schema.StoreBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.MemoryBackend:
		return nil
	case schema.RedisBackend:
		if connStr == "" {
			return MissingConfig("store-connect (or REDIS_URL) is required when using redis backend")
		}
		if !strings.HasPrefix(connStr, "redis://") && !strings.HasPrefix(connStr, "rediss://") && !strings.HasPrefix(connStr, "unix://") {
			return fmt.Errorf("redis connection string must start with redis://, rediss:// or unix://")
		}
	case schema.MySQLBackend:
		if connStr == "" {
			return MissingConfig(fmt.Sprintf("store-connect is required when using %s backend", backend))
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return MissingConfig(fmt.Sprintf("store-connect is required when using %s backend", backend))
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateStoreConfig validates the backend, its connection string and the state key.
func validateStoreConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.StoreBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be redis, sqlite, mysql, postgresql, memory", input.StoreBackend)
	}
	cfg.StoreConnect = input.StoreConnect
	if err := ValidateStoreConnectionString(cfg.StoreBackend, cfg.StoreConnect); err != nil {
		return err
	}

	cfg.StateKey = strings.TrimSpace(input.StateKey)
	if cfg.StateKey == "" {
		cfg.StateKey = schema.DefaultStateKey
	}
	if err := validate.Var(cfg.StateKey, "printascii,max=255"); err != nil {
		return fmt.Errorf("state-key must be printable ASCII of at most 255 characters (received %q)", input.StateKey)
	}
	return nil
}

// validateSimpleInputs processes and validates all non-store fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.LogFile = input.LogFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.Transport = schema.Transport(strings.ToLower(input.Transport))
	if _, ok := schema.ValidTransports[cfg.Transport]; !ok {
		return fmt.Errorf("invalid transport '%s'. must be stdio, http", input.Transport)
	}

	cfg.Addr = input.Addr
	if cfg.Transport == schema.HTTPTransport {
		if err := validate.Var(cfg.Addr, "required,hostname_port"); err != nil {
			return fmt.Errorf("invalid --addr '%s' for http transport", input.Addr)
		}
	}

	cfg.LogLevel = strings.ToLower(input.LogLevel)
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	return nil
}

// GetStateDBFilePath returns the default path to the SQLite DB file for state storage.
func GetStateDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".metricviz.db"
	}
	return filepath.Join(homeDir, ".metricviz.db")
}
