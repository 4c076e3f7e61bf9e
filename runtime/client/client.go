// Package client is the runtime entry point: it binds the query compilers to
// an execution engine and exposes table handles with chainable query state
// and terminal operations.
package client

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/satishbabariya/fluentdb/query/sqlgen"
)

// Engine is the execution-engine boundary: something that can run one
// parameterized statement and stream rows back. *sql.DB and *sql.Tx both
// satisfy it. Connection pooling, retries, timeouts, and transactions belong
// to the engine, not to this package.
type Engine interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Client binds an execution engine to a SQL dialect. It owns neither the
// engine's lifecycle nor any per-query state; table handles derived from it
// are immutable snapshots.
type Client struct {
	engine  Engine
	dialect sqlgen.Dialect
	db      *sql.DB // non-nil only when this client opened the connection
}

// Open connects to the given provider ("postgres", "mysql", "sqlite") with a
// connection string and returns a client for it.
func Open(provider, dsn string) (*Client, error) {
	dialect, err := sqlgen.New(provider)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, err
	}
	return &Client{engine: db, dialect: dialect, db: db}, nil
}

// OpenFromEnv is Open with the connection string resolved from the
// DATABASE_URL environment variable, loading a .env file first when one
// exists in the working directory.
func OpenFromEnv(provider string) (*Client, error) {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	return Open(provider, dsn)
}

// NewClient wraps an existing engine, typically an already-configured
// *sql.DB or an open *sql.Tx.
func NewClient(engine Engine, dialect sqlgen.Dialect) *Client {
	return &Client{engine: engine, dialect: dialect}
}

// Connect verifies the underlying connection when this client opened it.
func (c *Client) Connect(ctx context.Context) error {
	if c.db == nil {
		return nil
	}
	return c.db.PingContext(ctx)
}

// Disconnect closes the underlying connection when this client opened it.
func (c *Client) Disconnect() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Dialect returns the dialect queries compile against.
func (c *Client) Dialect() sqlgen.Dialect { return c.dialect }

// Engine returns the execution engine.
func (c *Client) Engine() Engine { return c.engine }
