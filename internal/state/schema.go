package state

import (
	"database/sql"
)

const currentSchemaVersion = 2

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS navigation_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			page TEXT NOT NULL DEFAULT 'store',
			product_handle TEXT,
			region_id TEXT,
			listing_offset INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS catalog_cache (
			key TEXT PRIMARY KEY,
			body BLOB NOT NULL,
			fetched_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_catalog_cache_fetched ON catalog_cache(fetched_at);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	if err != nil {
		return err
	}

	// Migration: add collection_id column if missing (version 2)
	_, _ = db.Exec(`ALTER TABLE navigation_state ADD COLUMN collection_id TEXT`)

	return nil
}
