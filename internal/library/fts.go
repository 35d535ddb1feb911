package library

import (
	"database/sql"
	"errors"
	"strings"

	dbutil "github.com/llehouerou/cratedig/internal/db"
)

// RebuildIndex repopulates the FTS5 prefix index from library_tracks.
// Call this after a scan completes. A no-op when FTS5 is unavailable.
func (l *Library) RebuildIndex() error {
	if !l.fts {
		return nil
	}
	return dbutil.WithTx(l.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM track_fts`); err != nil {
			return err
		}
		_, err := tx.Exec(`
			INSERT INTO track_fts (rowid, artist, title, album, genre, path)
			SELECT id, artist, title, album, genre, path FROM library_tracks
		`)
		return err
	})
}

// MatchPrefix returns the ids of tracks with an indexed word beginning
// with term in any of the free-text columns. The empty term matches
// every indexed track.
func (l *Library) MatchPrefix(term string) (map[int64]bool, error) {
	if !l.fts {
		return nil, errors.New("full-text index not available")
	}

	ids := make(map[int64]bool)
	var rows *sql.Rows
	var err error
	if term == "" {
		rows, err = l.db.Query(`SELECT rowid FROM track_fts`)
	} else {
		rows, err = l.db.Query(`SELECT rowid FROM track_fts WHERE track_fts MATCH ?`, prefixQuery(term))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// prefixQuery escapes a term for FTS5 and appends the prefix operator,
// so "dark" becomes the query "dark"* and matches Darkside but not
// aardvark.
func prefixQuery(term string) string {
	escaped := strings.ReplaceAll(term, `"`, `""`)
	return `"` + escaped + `"*`
}
