package library

import (
	"database/sql"
	"time"

	dbutil "github.com/llehouerou/cratedig/internal/db"
)

const trackColumns = `id, path, mtime, filesize, artist, title, album, genre,
	comment, musical_key, bpm, rating, year, track_number, color, missing`

// AllTracks returns the full catalog ordered ascending by artist then
// title, case-insensitively, with insertion order breaking ties. Tracks
// flagged missing are included; search is indifferent to that flag.
func (l *Library) AllTracks() ([]Track, error) {
	rows, err := l.db.Query(`
		SELECT ` + trackColumns + `
		FROM library_tracks
		ORDER BY artist COLLATE NOCASE, title COLLATE NOCASE, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// TrackByPath returns the track cataloged under path, or nil if absent.
func (l *Library) TrackByPath(path string) (*Track, error) {
	row := l.db.QueryRow(`
		SELECT `+trackColumns+`
		FROM library_tracks
		WHERE path = ?
	`, path)
	t, err := scanTrack(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// TrackCount returns the total number of tracks in the catalog.
func (l *Library) TrackCount() (int, error) {
	var count int
	err := l.db.QueryRow(`SELECT COUNT(*) FROM library_tracks`).Scan(&count)
	return count, err
}

// InsertTrack adds a new track record and returns its id.
func (l *Library) InsertTrack(t *Track) (int64, error) {
	now := time.Now().Unix()
	res, err := l.db.Exec(`
		INSERT INTO library_tracks
			(path, mtime, filesize, artist, title, album, genre, comment,
			musical_key, bpm, rating, year, track_number, color, missing,
			added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.Path, t.Mtime, t.Filesize, t.Artist, t.Title, t.Album, t.Genre,
		t.Comment, t.Key, t.BPM, t.Rating, t.Year, t.TrackNumber, t.Color,
		boolToInt(t.Missing), now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpsertTrack inserts or refreshes the record for t.Path inside tx.
// On update the rating, color and added_at of the existing row survive;
// they are catalog state, not file state.
func (l *Library) UpsertTrack(tx *sql.Tx, t *Track) error {
	now := time.Now().Unix()
	_, err := tx.Exec(`
		INSERT INTO library_tracks
			(path, mtime, filesize, artist, title, album, genre, comment,
			musical_key, bpm, rating, year, track_number, color, missing,
			added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			mtime = excluded.mtime,
			filesize = excluded.filesize,
			artist = excluded.artist,
			title = excluded.title,
			album = excluded.album,
			genre = excluded.genre,
			comment = excluded.comment,
			musical_key = excluded.musical_key,
			bpm = excluded.bpm,
			year = excluded.year,
			track_number = excluded.track_number,
			missing = 0,
			updated_at = excluded.updated_at
	`, t.Path, t.Mtime, t.Filesize, t.Artist, t.Title, t.Album, t.Genre,
		t.Comment, t.Key, t.BPM, t.Rating, t.Year, t.TrackNumber, t.Color,
		now, now)
	return err
}

// SetRating stores a user rating (0 clears it).
func (l *Library) SetRating(trackID int64, rating int) error {
	_, err := l.db.Exec(`UPDATE library_tracks SET rating = ? WHERE id = ?`, rating, trackID)
	return err
}

// markMissing flags paths whose files were gone at the last scan. The
// rows are kept so ratings and crate membership survive.
func (l *Library) markMissing(tx *sql.Tx, paths []string) error {
	for _, path := range paths {
		if _, err := tx.Exec(`UPDATE library_tracks SET missing = 1 WHERE path = ?`, path); err != nil {
			return err
		}
	}
	return nil
}

// clearMissing unflags paths whose files are present again.
func (l *Library) clearMissing(tx *sql.Tx, paths []string) error {
	for _, path := range paths {
		if _, err := tx.Exec(`UPDATE library_tracks SET missing = 0 WHERE path = ? AND missing = 1`, path); err != nil {
			return err
		}
	}
	return nil
}

// existingTracks returns path -> mtime for every cataloged track.
func (l *Library) existingTracks() (map[string]int64, error) {
	rows, err := l.db.Query(`SELECT path, mtime FROM library_tracks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make(map[string]int64)
	for rows.Next() {
		var path string
		var mtime int64
		if err := rows.Scan(&path, &mtime); err != nil {
			return nil, err
		}
		existing[path] = mtime
	}
	return existing, rows.Err()
}

func scanTrack(row interface{ Scan(...any) error }) (Track, error) {
	var t Track
	var bpm sql.NullFloat64
	var rating, color sql.NullInt64
	var year, trackNum sql.NullString
	var missing int

	err := row.Scan(&t.ID, &t.Path, &t.Mtime, &t.Filesize, &t.Artist, &t.Title,
		&t.Album, &t.Genre, &t.Comment, &t.Key,
		&bpm, &rating, &year, &trackNum, &color, &missing)
	if err != nil {
		return Track{}, err
	}
	t.BPM = dbutil.NullFloat64Value(bpm)
	t.Rating = int(dbutil.NullInt64Value(rating))
	t.Year = dbutil.NullStringValue(year)
	t.TrackNumber = dbutil.NullStringValue(trackNum)
	t.Color = -1
	if color.Valid {
		t.Color = int(color.Int64)
	}
	t.Missing = missing != 0
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
