package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// The status column is unconstrained on purpose: catalogs written by newer
// tools may carry statuses this build renders with the locked fallback.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS lessons (
		id         INTEGER PRIMARY KEY CHECK(id > 0),
		position   INTEGER NOT NULL,
		title      TEXT NOT NULL CHECK(length(trim(title)) > 0),
		status     TEXT NOT NULL DEFAULT 'locked',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_lessons_position ON lessons(position)`,
}
