package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the CLI output.
	OutputMode string

	// StoreBackend represents the key-value backend holding the metrics document.
	StoreBackend string

	// Transport represents how the MCP server talks to its clients.
	Transport string

	// ToolErrorKind classifies a recoverable tool failure.
	ToolErrorKind string
)

// Document limits and defaults.
const (
	MaxPoints       = 100         // most recent points kept in the document
	DefaultLabel    = "default"   // label used when push omits one
	DefaultStateKey = "viz_state" // key holding the metrics document
)

// Chart defaults.
const (
	DefaultChartTitle  = "Metrics"
	DefaultChartWidth  = 800
	DefaultChartHeight = 400
	MaxChartDimension  = 4096
	MaxChartTitle      = 200
)

// Tool and resource names exposed over MCP.
const (
	ToolPush       = "push"
	ToolGetMetrics = "get_metrics"
	ToolGetChart   = "get_chart"
	ToolClear      = "clear"
	ResourceURI    = "data://metrics"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	RedisBackend      StoreBackend = "redis" // default
	SQLiteBackend     StoreBackend = "sqlite"
	MySQLBackend      StoreBackend = "mysql"
	PostgreSQLBackend StoreBackend = "postgresql"
	MemoryBackend     StoreBackend = "memory"
)

// All transports supported.
const (
	StdioTransport Transport = "stdio" // default
	HTTPTransport  Transport = "http"
)

// Kinds of recoverable tool errors.
const (
	NoDataError              ToolErrorKind = "no_data"
	RendererUnavailableError ToolErrorKind = "renderer_unavailable"
	InvalidInputError        ToolErrorKind = "invalid_input"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	CSVOut:     {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[StoreBackend]struct{}{
	RedisBackend:      {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	MemoryBackend:     {},
}

// ValidTransports lists all valid MCP transports.
var ValidTransports = map[Transport]struct{}{
	StdioTransport: {},
	HTTPTransport:  {},
}
