package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kiosk404/pokedex/internal/pkg/options"
	"github.com/kiosk404/pokedex/pkg/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Dialect captures the few SQL differences between the supported engines.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

func (d Dialect) String() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

// DB is a *sql.DB that knows its dialect.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open connects using opts and verifies the connection.
func Open(ctx context.Context, opts *options.DatabaseOptions) (*DB, error) {
	driver, dialect, err := driverFor(opts.Driver)
	if err != nil {
		return nil, err
	}
	if dialect == DialectSQLite {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	sqlDB, err := sql.Open(driver, opts.DSN())
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", opts.Driver, err)
	}
	sqlDB.SetMaxIdleConns(opts.PoolSize)
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns())
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s database: %w", opts.Driver, err)
	}
	logger.Info("[DB] connected to %s database (pool=%d, overflow=%d)", opts.Driver, opts.PoolSize, opts.MaxOverflow)
	return &DB{DB: sqlDB, Dialect: dialect}, nil
}

// Wrap adopts an existing connection, e.g. an in-memory database in tests.
func Wrap(sqlDB *sql.DB, dialect Dialect) *DB {
	return &DB{DB: sqlDB, Dialect: dialect}
}

func driverFor(name string) (string, Dialect, error) {
	switch name {
	case options.DriverPostgres:
		return "pgx", DialectPostgres, nil
	case options.DriverSQLite3:
		return "sqlite3", DialectSQLite, nil
	case options.DriverSQLite:
		return "sqlite", DialectSQLite, nil
	default:
		return "", 0, fmt.Errorf("unsupported database driver %q", name)
	}
}

// Rebind rewrites '?' placeholders into the dialect's form.
func (db *DB) Rebind(query string) string {
	return Rebind(db.Dialect, query)
}

// Rebind rewrites '?' placeholders into $n for PostgreSQL.
func Rebind(d Dialect, query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
