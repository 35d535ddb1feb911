package library

import "database/sql"

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS library_tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			mtime INTEGER NOT NULL DEFAULT 0,
			filesize INTEGER NOT NULL DEFAULT 0,
			artist TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			album TEXT NOT NULL DEFAULT '',
			genre TEXT NOT NULL DEFAULT '',
			comment TEXT NOT NULL DEFAULT '',
			musical_key TEXT NOT NULL DEFAULT '',
			bpm REAL,
			rating INTEGER,
			year TEXT,
			track_number TEXT,
			color INTEGER,
			missing INTEGER NOT NULL DEFAULT 0,
			added_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tracks_artist_title
			ON library_tracks(artist COLLATE NOCASE, title COLLATE NOCASE);

		CREATE TABLE IF NOT EXISTS crates (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL COLLATE NOCASE UNIQUE,
			created_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS crate_tracks (
			crate_id INTEGER NOT NULL REFERENCES crates(id) ON DELETE CASCADE,
			track_id INTEGER NOT NULL REFERENCES library_tracks(id) ON DELETE CASCADE,
			UNIQUE(crate_id, track_id)
		);

		CREATE INDEX IF NOT EXISTS idx_crate_tracks_track ON crate_tracks(track_id);
	`)
	return err
}

// initFTS creates the optional FTS5 prefix index. Failure is not fatal:
// some SQLite builds ship without FTS5, and bare-term matching falls back
// to substring scans.
func initFTS(db *sql.DB) bool {
	_, err := db.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS track_fts USING fts5(
			artist, title, album, genre, path
		)
	`)
	return err == nil
}
