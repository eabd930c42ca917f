package database

import (
	"database/sql"
)

// DBTX defines the database operations needed by repositories.
// Both *DB and *Tx satisfy it.
type DBTX interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	ExecReturningID(query string, args ...interface{}) (int64, error)
	GetDialect() Dialect
}

// Tx wraps sql.Tx with dialect-aware methods
type Tx struct {
	*sql.Tx
	dialect Dialect
}

// Begin starts a new transaction
func (db *DB) Begin() (*Tx, error) {
	tx, err := db.DB.Begin()
	if err != nil {
		return nil, err
	}
	return &Tx{Tx: tx, dialect: db.Dialect}, nil
}

// WithTx runs fn inside a transaction, rolling back when fn fails
func (db *DB) WithTx(fn func(tx *Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// GetDialect returns the database dialect
func (db *DB) GetDialect() Dialect {
	return db.Dialect
}

// Query executes a query with automatic placeholder rewriting
func (tx *Tx) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return tx.Tx.Query(tx.dialect.RewriteQuery(query), args...)
}

// QueryRow executes a query that returns a single row with automatic placeholder rewriting
func (tx *Tx) QueryRow(query string, args ...interface{}) *sql.Row {
	return tx.Tx.QueryRow(tx.dialect.RewriteQuery(query), args...)
}

// Exec executes a query that doesn't return rows with automatic placeholder rewriting
func (tx *Tx) Exec(query string, args ...interface{}) (sql.Result, error) {
	return tx.Tx.Exec(tx.dialect.RewriteQuery(query), args...)
}

// ExecReturningID executes an INSERT and returns the new row's ID
func (tx *Tx) ExecReturningID(query string, args ...interface{}) (int64, error) {
	return execReturningID(tx.dialect, tx.Tx.Exec, tx.Tx.QueryRow, query, args...)
}

// GetDialect returns the transaction's dialect
func (tx *Tx) GetDialect() Dialect {
	return tx.dialect
}
