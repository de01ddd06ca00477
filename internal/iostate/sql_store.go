package iostate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/metricviz/internal/contract"
	"github.com/huangsam/metricviz/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// stateTable is the name of the table holding keyed documents.
const stateTable = "metricviz_state"

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// SQLStore keeps keyed values in a single table of a SQL database.
// Each write bumps a per-key version so status output can show churn.
type SQLStore struct {
	db        *sql.DB
	tableName string
	backend   schema.StoreBackend
	connStr   string
}

var _ contract.KVStore = &SQLStore{} // Compile-time check

// NewSQLStore opens the database for the backend and creates the table if needed.
func NewSQLStore(ctx context.Context, tableName string, backend schema.StoreBackend, connStr string) (*SQLStore, error) {
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}

	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetStateDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// host=localhost port=5432 user=postgres password=secret dbname=postgres
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	default:
		return nil, fmt.Errorf("unsupported SQL backend: %s. Must be sqlite, mysql, or postgresql", backend)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	if _, err := db.ExecContext(ctx, createTableQuery(tableName, backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	return &SQLStore{
		db:        db,
		tableName: tableName,
		backend:   backend,
		connStr:   connStr,
	}, nil
}

func createTableQuery(tableName string, backend schema.StoreBackend) string {
	quoted := quoteTableName(tableName, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				state_key VARCHAR(255) PRIMARY KEY,
				state_value LONGBLOB NOT NULL,
				state_version BIGINT NOT NULL,
				state_timestamp BIGINT NOT NULL
			);
		`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				state_key TEXT PRIMARY KEY,
				state_value BYTEA NOT NULL,
				state_version BIGINT NOT NULL,
				state_timestamp BIGINT NOT NULL
			);
		`, quoted)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				state_key TEXT PRIMARY KEY,
				state_value BLOB NOT NULL,
				state_version INTEGER NOT NULL,
				state_timestamp INTEGER NOT NULL
			);
		`, quoted)
	}
}

// Get retrieves the value stored under key.
func (ss *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := fmt.Sprintf(`SELECT state_value FROM %s WHERE state_key = %s`,
		quoteTableName(ss.tableName, ss.backend), ss.placeholder(1))

	var value []byte
	if err := ss.db.QueryRowContext(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contract.ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

// Set inserts or replaces the value stored under key.
func (ss *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	version, err := ss.currentVersion(ctx, key)
	if err != nil {
		return err
	}
	_, err = ss.db.ExecContext(ctx, ss.upsertQuery(), key, value, version+1, time.Now().Unix())
	return err
}

func (ss *SQLStore) currentVersion(ctx context.Context, key string) (int64, error) {
	query := fmt.Sprintf(`SELECT state_version FROM %s WHERE state_key = %s`,
		quoteTableName(ss.tableName, ss.backend), ss.placeholder(1))

	var version int64
	if err := ss.db.QueryRowContext(ctx, query, key).Scan(&version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return version, nil
}

// placeholder returns the n-th parameter placeholder for the backend.
func (ss *SQLStore) placeholder(n int) string {
	if ss.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (ss *SQLStore) upsertQuery() string {
	quoted := quoteTableName(ss.tableName, ss.backend)
	switch ss.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (state_key, state_value, state_version, state_timestamp) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE state_value = new.state_value, state_version = new.state_version, state_timestamp = new.state_timestamp`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (state_key, state_value, state_version, state_timestamp) VALUES ($1, $2, $3, $4)
			ON CONFLICT (state_key) DO UPDATE SET state_value = EXCLUDED.state_value, state_version = EXCLUDED.state_version, state_timestamp = EXCLUDED.state_timestamp`, quoted)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (state_key, state_value, state_version, state_timestamp) VALUES (?, ?, ?, ?)`, quoted)
	}
}

// GetStatus returns status information about the store and the given key.
func (ss *SQLStore) GetStatus(ctx context.Context, key string) (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(ss.backend),
		Key:       key,
		Connected: ss.db.PingContext(ctx) == nil,
	}
	if !status.Connected {
		return status, nil
	}

	query := fmt.Sprintf(`SELECT state_value, state_version, state_timestamp FROM %s WHERE state_key = %s`,
		quoteTableName(ss.tableName, ss.backend), ss.placeholder(1))

	var value []byte
	var ts int64
	err := ss.db.QueryRowContext(ctx, query, key).Scan(&value, &status.Version, &ts)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return status, nil
	case err != nil:
		return status, fmt.Errorf("failed to read key status: %w", err)
	}

	status.KeyPresent = true
	status.SizeBytes = int64(len(value))
	status.LastWriteTime = time.Unix(ts, 0)
	return status, nil
}

// Close closes the underlying DB connection.
func (ss *SQLStore) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}

// validateTableName checks if the table name is a safe SQL identifier.
func validateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name: %s (must match pattern ^[a-zA-Z_][a-zA-Z0-9_]*$)", name)
	}
	return nil
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.StoreBackend) string {
	if backend == schema.MySQLBackend {
		return fmt.Sprintf("`%s`", name)
	}
	return fmt.Sprintf("%q", name)
}

// mysqlDatabaseName extracts the database name from a MySQL DSN.
func mysqlDatabaseName(connStr string) string {
	cfg, err := mysql.ParseDSN(connStr)
	if err != nil {
		return ""
	}
	return cfg.DBName
}
