package database

import (
	"database/sql"
	"regexp"
	"strconv"
	"strings"
)

// Dialect defines the interface for database-specific operations
type Dialect interface {
	// DriverName returns the driver name for sql.Open
	DriverName() string

	// DSN returns the data source name for the connection
	DSN(config DialectConfig) string

	// RewriteQuery converts placeholder syntax if needed (e.g., ? to $1 for postgres)
	RewriteQuery(query string) string

	// SupportsLastInsertId returns true if the driver supports LastInsertId()
	SupportsLastInsertId() bool

	// ConfigureConnection applies any database-specific connection settings
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir returns the subdirectory name for migrations (e.g., "sqlite", "postgres")
	MigrationsSubdir() string

	// CreateMigrationsTableQuery returns the SQL to create the migrations tracking table
	CreateMigrationsTableQuery() string

	// Upsert returns an insert-or-update statement for table. Placeholders
	// follow the order of columns; keys name the conflict target.
	Upsert(table string, columns, keys []string) string
}

// DialectConfig holds configuration for database connection
type DialectConfig struct {
	// For SQLite
	Path string

	// For PostgreSQL/MySQL
	URL string
}

// placeholderRegexp matches ? placeholders not inside quotes
var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(match string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// onConflictUpsert builds the ON CONFLICT form shared by SQLite and PostgreSQL
func onConflictUpsert(table string, columns, keys []string) string {
	var updates []string
	for _, col := range columns {
		if !contains(keys, col) {
			updates = append(updates, col+" = excluded."+col)
		}
	}
	updates = append(updates, "updated_at = CURRENT_TIMESTAMP")

	return "INSERT INTO " + table + " (" + strings.Join(columns, ", ") + ") VALUES (" + placeholders(len(columns)) + ") " +
		"ON CONFLICT (" + strings.Join(keys, ", ") + ") DO UPDATE SET " + strings.Join(updates, ", ")
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
