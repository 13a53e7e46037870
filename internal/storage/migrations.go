package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// RunMigrations applies every embedded migration that has not been recorded
// in schema_migrations, in file-name order, one transaction per file.
func RunMigrations(db *sql.DB) error {
	sub, err := fs.Sub(migrationFS, "migrations")
	if err != nil {
		return err
	}
	return ApplyMigrations(db, sub)
}

// ApplyMigrations applies the *.sql files at the root of fsys.
func ApplyMigrations(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  name TEXT PRIMARY KEY,
  applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	for _, fname := range files {
		var exists int
		if err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE name=? LIMIT 1`, fname).Scan(&exists); err != nil && err != sql.ErrNoRows {
			return fmt.Errorf("check migration %s: %w", fname, err)
		}
		if exists == 1 {
			continue
		}

		data, err := fs.ReadFile(fsys, fname)
		if err != nil {
			return err
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(string(data)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %s failed: %w", fname, err)
		}

		if _, err := tx.Exec(`INSERT INTO schema_migrations(name) VALUES(?)`, fname); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s failed: %w", fname, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s failed: %w", fname, err)
		}
	}

	return nil
}

// AppliedMigrations lists the recorded migration names in order.
func AppliedMigrations(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT name FROM schema_migrations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
