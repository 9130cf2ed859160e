package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds configuration for repository implementations.
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names.
type TableNames struct {
	Users    string
	Projects string
	Tasks    string
	Comments string
}

// NewTableNames creates table names with the given prefix.
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Users:    fmt.Sprintf("%susers", prefix),
		Projects: fmt.Sprintf("%sprojects", prefix),
		Tasks:    fmt.Sprintf("%stasks", prefix),
		Comments: fmt.Sprintf("%scomments", prefix),
	}
}

// CreateConnectionPool creates a new pgx connection pool.
//
// When port 6543 is detected (a PgBouncer-style transaction pooler) the pool
// switches to QueryExecModeCacheDescribe, which uses the extended protocol
// without creating server-side prepared statements. Direct connections keep
// the default statement cache. An explicit default_query_exec_mode in the
// connection string takes precedence over this auto-detection.
//
// The dynamic table prefixes (dev_, test_, prod_) are interpolated into the
// SQL before it reaches the server, so each environment gets its own
// distinct statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for pooler compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
