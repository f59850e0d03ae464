package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Table names
const (
	LeadsTable = "leads"
	UsersTable = "users"
)

// Client holds the database driver and the dialect its queries are built for
type Client struct {
	Driver  *entsql.Driver
	dialect string
}

// PoolConfig holds connection pool configuration
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolConfig returns the pool defaults for a server process
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 10 * time.Minute,
	}
}

// DialectFor maps a configured driver name to an ent dialect
func DialectFor(driver string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		return dialect.SQLite, nil
	case "postgres", "postgresql":
		return dialect.Postgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// NewClient opens a database with the default pool and applies migrations
func NewClient(driver, dsn string) (*Client, error) {
	return NewClientWithPool(driver, dsn, DefaultPoolConfig())
}

// NewClientWithPool opens a database with a custom pool configuration and applies migrations
func NewClientWithPool(driver, dsn string, poolCfg PoolConfig) (*Client, error) {
	name, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed opening connection to %s: %w", name, err)
	}

	// Every connection to ":memory:" gets its own database, so SQLite keeps one.
	if name == dialect.SQLite {
		poolCfg.MaxOpenConns = 1
		poolCfg.MaxIdleConns = 1
		poolCfg.ConnMaxLifetime = 0
		poolCfg.ConnMaxIdleTime = 0
	}
	db.SetMaxOpenConns(poolCfg.MaxOpenConns)
	db.SetMaxIdleConns(poolCfg.MaxIdleConns)
	db.SetConnMaxLifetime(poolCfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(poolCfg.ConnMaxIdleTime)

	log.Printf("✅ Database connection pool configured (driver: %s, max_open: %d, max_idle: %d)",
		name, poolCfg.MaxOpenConns, poolCfg.MaxIdleConns)

	client := &Client{
		Driver:  entsql.OpenDB(name, db),
		dialect: name,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed connecting to %s: %w", name, err)
	}

	if err := client.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed creating schema resources: %w", err)
	}

	log.Println("✅ Database connected and migrations applied")

	return client, nil
}

// Dialect returns the ent dialect name of the connection
func (c *Client) Dialect() string {
	return c.dialect
}

// Builder returns a SQL builder for the connection's dialect
func (c *Client) Builder() *entsql.DialectBuilder {
	return entsql.Dialect(c.dialect)
}

// DB returns the underlying database handle
func (c *Client) DB() *sql.DB {
	return c.Driver.DB()
}

// Migrate creates the tables and indexes the services need
func (c *Client) Migrate(ctx context.Context) error {
	for _, stmt := range schema(c.dialect) {
		if _, err := c.DB().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Close closes the database connection
func (c *Client) Close() error {
	return c.Driver.Close()
}

// Ping checks if the database is reachable
func (c *Client) Ping(ctx context.Context) error {
	return c.DB().PingContext(ctx)
}

// Stats returns database connection pool statistics
func (c *Client) Stats() sql.DBStats {
	return c.DB().Stats()
}
