// Package library is the SQLite-backed track catalog: track records,
// crate membership, and the optional FTS5 prefix index that search
// queries run against.
package library

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver
)

// Track is one catalog record. Text attributes default to "", numeric
// attributes to their zero value; Color is -1 when unset. Year and
// TrackNumber are kept as text, matching how they come out of file tags.
type Track struct {
	ID          int64
	Path        string
	Mtime       int64
	Filesize    int64
	Artist      string
	Title       string
	Album       string
	Genre       string
	Comment     string
	Key         string // musical key
	BPM         float64
	Rating      int
	Year        string
	TrackNumber string
	Color       int
	Missing     bool // file was gone at the last scan
}

type Library struct {
	db  *sql.DB
	fts bool
}

// Open opens the catalog database at path, creating the file and schema
// as needed.
func Open(path string) (*Library, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	l, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

// New wraps an already opened database, creating the schema as needed.
func New(db *sql.DB) (*Library, error) {
	if err := initSchema(db); err != nil {
		return nil, err
	}
	return &Library{db: db, fts: initFTS(db)}, nil
}

func (l *Library) Close() error { return l.db.Close() }

// HasIndex reports whether the FTS5 prefix index is available.
func (l *Library) HasIndex() bool { return l.fts }
