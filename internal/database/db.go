package database

import (
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"screenguess/internal/config"
)

// DB wraps the database connection with dialect support
type DB struct {
	*sql.DB
	Dialect Dialect
	logger  *zap.Logger
}

// Initialize opens a SQLite database at dbPath
func Initialize(dbPath string) (*DB, error) {
	return open(NewSQLiteDialect(), DialectConfig{Path: dbPath}, zap.NewNop())
}

// InitializeWithConfig creates and configures the database connection based on config
func InitializeWithConfig(cfg *config.Config, logger *zap.Logger) (*DB, error) {
	dialect, dialectConfig, err := dialectFor(cfg)
	if err != nil {
		return nil, err
	}
	return open(dialect, dialectConfig, logger)
}

func dialectFor(cfg *config.Config) (Dialect, DialectConfig, error) {
	switch strings.ToLower(cfg.DatabaseType) {
	case "postgres", "postgresql":
		return NewPostgresDialect(), DialectConfig{URL: cfg.DatabaseURL}, nil
	case "mysql":
		return NewMySQLDialect(), DialectConfig{URL: cfg.DatabaseURL}, nil
	case "sqlite", "sqlite3", "":
		return NewSQLiteDialect(), DialectConfig{Path: cfg.DatabasePath}, nil
	default:
		return nil, DialectConfig{}, fmt.Errorf("unsupported database type: %s", cfg.DatabaseType)
	}
}

func open(dialect Dialect, dialectConfig DialectConfig, logger *zap.Logger) (*DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open(dialect.DriverName(), dialect.DSN(dialectConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := dialect.ConfigureConnection(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure connection: %w", err)
	}

	return &DB{DB: db, Dialect: dialect, logger: logger}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// Query executes a query with automatic placeholder rewriting
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.DB.Query(db.Dialect.RewriteQuery(query), args...)
}

// QueryRow executes a query that returns a single row with automatic placeholder rewriting
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.DB.QueryRow(db.Dialect.RewriteQuery(query), args...)
}

// Exec executes a query that doesn't return rows with automatic placeholder rewriting
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.DB.Exec(db.Dialect.RewriteQuery(query), args...)
}

// ExecReturningID executes an INSERT query and returns the new row's ID.
// PostgreSQL has no LastInsertId, so a RETURNING clause is appended instead.
func (db *DB) ExecReturningID(query string, args ...interface{}) (int64, error) {
	return execReturningID(db.Dialect, db.DB.Exec, db.DB.QueryRow, query, args...)
}

type execFunc func(query string, args ...interface{}) (sql.Result, error)
type queryRowFunc func(query string, args ...interface{}) *sql.Row

func execReturningID(dialect Dialect, exec execFunc, queryRow queryRowFunc, query string, args ...interface{}) (int64, error) {
	rewritten := dialect.RewriteQuery(query)

	if dialect.SupportsLastInsertId() {
		result, err := exec(rewritten, args...)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	}

	rewritten = strings.TrimSuffix(strings.TrimSpace(rewritten), ";")
	rewritten += " RETURNING id"

	var id int64
	if err := queryRow(rewritten, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
