package iostate

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/metricviz/internal/contract"
	"github.com/huangsam/metricviz/schema"
	"github.com/redis/go-redis/v9"
)

// OpenStore opens the key-value backend named by backend.
func OpenStore(ctx context.Context, backend schema.StoreBackend, connStr string) (contract.KVStore, error) {
	switch backend {
	case schema.RedisBackend:
		return NewRedisStore(ctx, connStr)
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
		return NewSQLStore(ctx, stateTable, backend, connStr)
	case schema.MemoryBackend:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be redis, sqlite, mysql, postgresql, or memory", backend)
	}
}

// DropStore removes everything metricviz keeps in the backend.
// For SQLite, it deletes the database file.
// For MySQL/PostgreSQL, it drops the state table.
// For Redis, it deletes the state key.
func DropStore(ctx context.Context, backend schema.StoreBackend, connStr, key string) error {
	switch backend {
	case schema.SQLiteBackend:
		dbFilePath := connStr
		if dbFilePath == "" {
			dbFilePath = contract.GetStateDBFilePath()
		}
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return dropSQLTable(ctx, "mysql", connStr, quoteTableName(stateTable, backend))

	case schema.PostgreSQLBackend:
		return dropSQLTable(ctx, "pgx", connStr, quoteTableName(stateTable, backend))

	case schema.RedisBackend:
		opts, err := redis.ParseURL(connStr)
		if err != nil {
			return fmt.Errorf("invalid redis connection string: %w", err)
		}
		client := redis.NewClient(opts)
		defer func() { _ = client.Close() }()
		if err := client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to delete key %q: %w", key, err)
		}
		return nil

	case schema.MemoryBackend:
		return nil

	default:
		return fmt.Errorf("unsupported store backend for dropping: %s", backend)
	}
}

func dropSQLTable(ctx context.Context, driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	if _, err := db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}
	return nil
}

// DescribeTarget returns a short, password-free description of where state lives.
func DescribeTarget(backend schema.StoreBackend, connStr string) string {
	switch backend {
	case schema.SQLiteBackend:
		if connStr == "" {
			return contract.GetStateDBFilePath()
		}
		return connStr
	case schema.MySQLBackend:
		if name := mysqlDatabaseName(connStr); name != "" {
			return "database " + name
		}
		return "mysql"
	case schema.PostgreSQLBackend:
		for field := range strings.FieldsSeq(connStr) {
			if name, ok := strings.CutPrefix(field, "dbname="); ok {
				return "database " + name
			}
		}
		return "postgresql"
	case schema.RedisBackend:
		opts, err := redis.ParseURL(connStr)
		if err != nil {
			return "redis"
		}
		return fmt.Sprintf("%s db %d", opts.Addr, opts.DB)
	default:
		return string(backend)
	}
}
