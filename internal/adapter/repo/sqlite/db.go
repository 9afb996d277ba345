package sqliterepo

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS garden_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	type TEXT NOT NULL,
	day INTEGER NOT NULL,
	occurred_at INTEGER NOT NULL,
	payload TEXT NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS idx_garden_events_session ON garden_events(session_id, id);

CREATE TABLE IF NOT EXISTS garden_sessions (
	session_id TEXT PRIMARY KEY,
	species_id TEXT NOT NULL,
	status TEXT NOT NULL,
	outcome TEXT NOT NULL,
	final_day INTEGER NOT NULL DEFAULT 0,
	final_health REAL NOT NULL DEFAULT 0,
	started_at INTEGER NOT NULL,
	ended_at INTEGER
);
`

// Open opens or creates the local journal at path and makes sure the schema
// exists.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// :memory: databases live on a single connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}
