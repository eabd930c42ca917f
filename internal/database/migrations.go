package database

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// RunMigrations executes the SQL files under migrationsPath/<dialect subdir>
// that have not been recorded yet, in filename order.
func (db *DB) RunMigrations(migrationsPath string) error {
	if _, err := db.Exec(db.Dialect.CreateMigrationsTableQuery()); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	dir := filepath.Join(migrationsPath, db.Dialect.MigrationsSubdir())
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no migration files found in %s", dir)
	}

	sort.Strings(files)

	for _, file := range files {
		filename := filepath.Base(file)

		hasRun, err := db.hasMigrationRun(filename)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if hasRun {
			continue
		}

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", filename, err)
		}

		err = db.WithTx(func(tx *Tx) error {
			for _, stmt := range splitStatements(string(content)) {
				if _, err := tx.Exec(stmt); err != nil {
					return err
				}
			}
			_, err := tx.Exec("INSERT INTO migrations (filename) VALUES (?)", filename)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", filename, err)
		}

		db.logger.Info("Migration completed", zap.String("file", filename))
	}

	return nil
}

// hasMigrationRun checks if a migration has already been executed
func (db *DB) hasMigrationRun(filename string) (bool, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM migrations WHERE filename = ?", filename).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// splitStatements breaks a migration into single statements so drivers
// without multi-statement support can run it. Line comments are dropped.
func splitStatements(content string) []string {
	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var stmts []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
