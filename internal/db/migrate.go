package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent so the
// full list runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is not idempotent in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS org_maps (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS map_nodes (
		id           TEXT PRIMARY KEY,
		map_id       TEXT NOT NULL REFERENCES org_maps(id) ON DELETE CASCADE,
		parent_id    TEXT REFERENCES map_nodes(id) ON DELETE CASCADE,
		name         TEXT NOT NULL,
		kind         TEXT NOT NULL CHECK(kind IN ('branch','task')),
		order_index  INTEGER NOT NULL DEFAULT 0,
		content      TEXT,
		frequency    TEXT CHECK(frequency IS NULL OR frequency IN ('daily','weekly','monthly','other')),
		importance   INTEGER,
		effort_hours REAL,
		estimate_min REAL,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_map_nodes_map ON map_nodes(map_id)`,
	`CREATE INDEX IF NOT EXISTS idx_map_nodes_parent ON map_nodes(parent_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_map_nodes_sibling_name
		ON map_nodes(map_id, COALESCE(parent_id, ''), name)`,
}
