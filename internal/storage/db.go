// Package storage opens the vault database, applies the embedded schema
// migrations and hands out the repositories bound to it.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/repositories/credentials"
	"github.com/dmitrijs2005/gophvault/internal/repositories/metadata"
	"github.com/dmitrijs2005/gophvault/internal/storage/migrations"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
)

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// DB bundles the open connection with the repositories that use it.
type DB struct {
	SQL         *sql.DB
	Dialect     dbx.Dialect
	Credentials credentials.Repository
	Metadata    metadata.Repository
}

// Close releases the underlying connection pool.
func (d *DB) Close() error {
	return d.SQL.Close()
}

// DialectFor maps a driver name to its placeholder dialect.
func DialectFor(driver string) (dbx.Dialect, error) {
	switch driver {
	case DriverSQLite:
		return dbx.SQLite, nil
	case DriverPgx, DriverPostgres:
		return dbx.Postgres, nil
	default:
		return 0, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Open connects using driver and dsn, migrates the schema to the latest
// version and returns the repositories.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}

	sqlDriver := driver
	if dialect == dbx.Postgres {
		sqlDriver = DriverPgx
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if dialect == dbx.SQLite {
		// single writer; also keeps ":memory:" databases on one connection
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := RunMigrations(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &DB{
		SQL:         db,
		Dialect:     dialect,
		Credentials: credentials.New(db, dialect),
		Metadata:    metadata.New(db, dialect),
	}, nil
}

// RunMigrations applies all pending migrations for dialect. It is a no-op
// when the schema is current.
func RunMigrations(ctx context.Context, db *sql.DB, dialect dbx.Dialect) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	goose.SetLogger(goose.NopLogger())

	gooseDialect := "sqlite3"
	if dialect == dbx.Postgres {
		gooseDialect = "postgres"
	}
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, dialect.String())
}
