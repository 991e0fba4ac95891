package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports one writer at a time; keep the pool at a single
	// connection so concurrent version writers serialize in-process.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema if it doesn't exist yet.
func (db *DB) RunMigrations() error {
	migration := `
-- Projects table
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    current_version_id TEXT,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

-- Versions table: append-only, parent-linked code snapshots.
-- Code is write-once; video/thumbnail paths are the only mutable columns.
CREATE TABLE IF NOT EXISTS versions (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    code TEXT NOT NULL,
    prompt TEXT,
    provenance TEXT NOT NULL CHECK(provenance IN ('ai-generated', 'manual-edit', 'variable-tweak')),
    parent_id TEXT,
    created_at TIMESTAMP NOT NULL,
    video_path TEXT,
    thumbnail_path TEXT,
    FOREIGN KEY (project_id) REFERENCES projects(id),
    FOREIGN KEY (parent_id) REFERENCES versions(id)
);
CREATE INDEX IF NOT EXISTS idx_project_versions ON versions(project_id);
CREATE INDEX IF NOT EXISTS idx_parent_versions ON versions(parent_id);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
