package database

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLDialect implements Dialect for MySQL
type MySQLDialect struct{}

// NewMySQLDialect creates a new MySQL dialect
func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) DriverName() string {
	return "mysql"
}

// DSN makes sure DATETIME columns scan into time.Time
func (d *MySQLDialect) DSN(config DialectConfig) string {
	if strings.Contains(config.URL, "parseTime=") {
		return config.URL
	}
	if strings.Contains(config.URL, "?") {
		return config.URL + "&parseTime=true"
	}
	return config.URL + "?parseTime=true"
}

func (d *MySQLDialect) RewriteQuery(query string) string {
	// MySQL uses ? placeholders like SQLite, no rewrite needed
	return query
}

func (d *MySQLDialect) SupportsLastInsertId() bool {
	return true
}

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
	return nil
}

func (d *MySQLDialect) MigrationsSubdir() string {
	return "mysql"
}

func (d *MySQLDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			filename VARCHAR(255) UNIQUE NOT NULL,
			executed_at DATETIME(6) DEFAULT CURRENT_TIMESTAMP(6)
		);
	`
}

func (d *MySQLDialect) Upsert(table string, columns, keys []string) string {
	quoted := make([]string, len(columns))
	var updates []string
	for i, col := range columns {
		quoted[i] = "`" + col + "`"
		if !contains(keys, col) {
			updates = append(updates, quoted[i]+" = VALUES("+quoted[i]+")")
		}
	}
	updates = append(updates, "updated_at = CURRENT_TIMESTAMP")

	return "INSERT INTO " + table + " (" + strings.Join(quoted, ", ") + ") VALUES (" + placeholders(len(columns)) + ") " +
		"ON DUPLICATE KEY UPDATE " + strings.Join(updates, ", ")
}
