package library

import (
	"errors"
	"strings"
	"time"
)

// CrateInfo is one crate with its member count.
type CrateInfo struct {
	Name   string
	Tracks int
}

// EnsureCrate returns the id of the named crate, creating it if needed.
// Crate names are case-insensitive and unique.
func (l *Library) EnsureCrate(name string) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, errors.New("crate name is empty")
	}
	_, err := l.db.Exec(`
		INSERT INTO crates (name, created_at) VALUES (?, ?)
		ON CONFLICT(name) DO NOTHING
	`, name, time.Now().Unix())
	if err != nil {
		return 0, err
	}
	var id int64
	err = l.db.QueryRow(`SELECT id FROM crates WHERE name = ?`, name).Scan(&id)
	return id, err
}

// AssignTrack adds a track to a crate. Assigning twice is a no-op.
func (l *Library) AssignTrack(crateID, trackID int64) error {
	_, err := l.db.Exec(`
		INSERT OR IGNORE INTO crate_tracks (crate_id, track_id) VALUES (?, ?)
	`, crateID, trackID)
	return err
}

// RemoveTrack takes a track out of a crate.
func (l *Library) RemoveTrack(crateID, trackID int64) error {
	_, err := l.db.Exec(`
		DELETE FROM crate_tracks WHERE crate_id = ? AND track_id = ?
	`, crateID, trackID)
	return err
}

// Crates returns every crate with its member count, ordered by name.
func (l *Library) Crates() ([]CrateInfo, error) {
	rows, err := l.db.Query(`
		SELECT c.name, COUNT(ct.track_id)
		FROM crates c
		LEFT JOIN crate_tracks ct ON ct.crate_id = c.id
		GROUP BY c.id
		ORDER BY c.name COLLATE NOCASE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var crates []CrateInfo
	for rows.Next() {
		var c CrateInfo
		if err := rows.Scan(&c.Name, &c.Tracks); err != nil {
			return nil, err
		}
		crates = append(crates, c)
	}
	return crates, rows.Err()
}

// CratesForTrack returns the names of the crates the track belongs to,
// ordered by name. The slice is empty for tracks in no crate.
func (l *Library) CratesForTrack(trackID int64) ([]string, error) {
	rows, err := l.db.Query(`
		SELECT c.name
		FROM crate_tracks ct
		JOIN crates c ON c.id = ct.crate_id
		WHERE ct.track_id = ?
		ORDER BY c.name COLLATE NOCASE
	`, trackID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Memberships returns crate names keyed by track id, for every track
// with at least one membership. Tracks absent from the map belong to no
// crate.
func (l *Library) Memberships() (map[int64][]string, error) {
	rows, err := l.db.Query(`
		SELECT ct.track_id, c.name
		FROM crate_tracks ct
		JOIN crates c ON c.id = ct.crate_id
		ORDER BY c.name COLLATE NOCASE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make(map[int64][]string)
	for rows.Next() {
		var trackID int64
		var name string
		if err := rows.Scan(&trackID, &name); err != nil {
			return nil, err
		}
		members[trackID] = append(members[trackID], name)
	}
	return members, rows.Err()
}

// TracksWithoutCrates returns the ids of tracks with zero crate
// memberships.
func (l *Library) TracksWithoutCrates() ([]int64, error) {
	rows, err := l.db.Query(`
		SELECT id FROM library_tracks
		WHERE id NOT IN (SELECT track_id FROM crate_tracks)
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
