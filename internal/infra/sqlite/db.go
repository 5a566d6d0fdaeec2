// Package sqlite is the persistence layer backing internal/domain's
// repository interfaces. It follows the teacher's DB-wrapper-plus-
// migration-list pattern: a thin struct over *sql.DB, and per-entity files
// with Upsert/Get/List methods using SQLite's ON CONFLICT clause.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection and exposes entity-specific operations.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at dsn and runs migrations.
// dsn may be a file path or ":memory:" for an in-process database.
func Open(dsn string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite only supports one writer at a time; a single connection
	// avoids "database is locked" errors under concurrent callers.
	sqlDB.SetMaxOpenConns(1)

	db := &DB{db: sqlDB}
	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error { return db.db.Close() }

// migrate runs every migration statement in order. Each statement is
// idempotent (CREATE TABLE/INDEX IF NOT EXISTS), so re-running is safe.
func (db *DB) migrate() error {
	for _, stmt := range Migrations() {
		if _, err := db.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration %q: %w", stmt, err)
		}
	}
	return nil
}

// WithTx runs fn inside a transaction, committing on success and rolling
// back on any error fn returns. Used by the multi-statement writes:
// SaveForecasts, DeleteSchedule, ReplaceShifts (apply_schedule's
// delete+insert) and ExchangeShiftEmployees (swap approval).
func (db *DB) WithTx(fn func(tx *sql.Tx) error) error {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
