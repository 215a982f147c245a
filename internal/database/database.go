package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed migrations
var migrationsFS embed.FS

// Dialect identifies the SQL engine behind a connection.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

const sqlitePragmas = "_time_format=sqlite&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

// DetectDialect picks PostgreSQL for postgres:// URLs and SQLite for
// everything else (treated as a file path).
func DetectDialect(databaseURL string) Dialect {
	lower := strings.ToLower(strings.TrimSpace(databaseURL))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// NewConnection opens and pings a database connection for the given URL.
func NewConnection(databaseURL string) (*sql.DB, error) {
	driver, dsn, err := driverAndDSN(databaseURL)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Connected to %s database", DetectDialect(databaseURL))
	return db, nil
}

func driverAndDSN(databaseURL string) (string, string, error) {
	raw := strings.TrimSpace(databaseURL)
	if raw == "" {
		return "", "", fmt.Errorf("database url is required")
	}
	if DetectDialect(raw) == DialectPostgres {
		return "postgres", raw, nil
	}

	path := strings.TrimPrefix(raw, "sqlite://")
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "", "", fmt.Errorf("sqlite path is required")
	}
	return "sqlite", filepath.Clean(path) + "?" + sqlitePragmas, nil
}

// RunMigrations applies the embedded goose migrations for the dialect.
func RunMigrations(db *sql.DB, dialect Dialect) error {
	var gooseDialect goose.Dialect
	switch dialect {
	case DialectPostgres:
		gooseDialect = goose.DialectPostgres
	case DialectSQLite:
		gooseDialect = goose.DialectSQLite3
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}

	fsys, err := fs.Sub(migrationsFS, "migrations/"+string(dialect))
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	provider, err := goose.NewProvider(gooseDialect, db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(context.Background())
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Printf("Database migrations completed (%d applied)", len(results))
	return nil
}

// Open connects to databaseURL and brings its schema up to date.
func Open(databaseURL string) (*sql.DB, Dialect, error) {
	dialect := DetectDialect(databaseURL)
	db, err := NewConnection(databaseURL)
	if err != nil {
		return nil, "", err
	}
	if err := RunMigrations(db, dialect); err != nil {
		_ = db.Close()
		return nil, "", err
	}
	return db, dialect, nil
}
