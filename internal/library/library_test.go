//nolint:goconst // test fixtures intentionally repeat string literals
package library

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// newTestLibrary opens an in-memory catalog with the full schema.
func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	lib, err := New(db)
	if err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return lib
}

func insertTrack(t *testing.T, lib *Library, track Track) int64 {
	t.Helper()
	if track.Color == 0 {
		track.Color = -1
	}
	id, err := lib.InsertTrack(&track)
	if err != nil {
		t.Fatalf("InsertTrack(%q) failed: %v", track.Path, err)
	}
	return id
}

func TestInsertAndTrackByPath(t *testing.T) {
	lib := newTestLibrary(t)

	id := insertTrack(t, lib, Track{
		Path:   "/music/orbital/halcyon.mp3",
		Artist: "Orbital",
		Title:  "Halcyon",
		Album:  "Orbital 2",
		Genre:  "Techno",
		BPM:    128.5,
		Rating: 5,
		Year:   "1993",
	})

	got, err := lib.TrackByPath("/music/orbital/halcyon.mp3")
	if err != nil {
		t.Fatalf("TrackByPath failed: %v", err)
	}
	if got == nil {
		t.Fatal("TrackByPath returned nil for existing track")
	}
	if got.ID != id {
		t.Errorf("ID = %d, want %d", got.ID, id)
	}
	if got.Artist != "Orbital" || got.Title != "Halcyon" {
		t.Errorf("track = %q - %q, want Orbital - Halcyon", got.Artist, got.Title)
	}
	if got.BPM != 128.5 {
		t.Errorf("BPM = %v, want 128.5", got.BPM)
	}
	if got.Rating != 5 {
		t.Errorf("Rating = %d, want 5", got.Rating)
	}
	if got.Year != "1993" {
		t.Errorf("Year = %q, want 1993", got.Year)
	}
	if got.Color != -1 {
		t.Errorf("Color = %d, want -1 for unset", got.Color)
	}

	missing, err := lib.TrackByPath("/nope.mp3")
	if err != nil {
		t.Fatalf("TrackByPath failed: %v", err)
	}
	if missing != nil {
		t.Errorf("TrackByPath for unknown path = %#v, want nil", missing)
	}
}

func TestAllTracks_Ordering(t *testing.T) {
	lib := newTestLibrary(t)

	// Inserted out of order on purpose; ties on artist+title keep
	// insertion order.
	insertTrack(t, lib, Track{Path: "/b.mp3", Artist: "beta", Title: "Two"})
	insertTrack(t, lib, Track{Path: "/a2.mp3", Artist: "Alpha", Title: "zed"})
	insertTrack(t, lib, Track{Path: "/a1.mp3", Artist: "alpha", Title: "Able"})
	insertTrack(t, lib, Track{Path: "/dup1.mp3", Artist: "Alpha", Title: "zed"})

	tracks, err := lib.AllTracks()
	if err != nil {
		t.Fatalf("AllTracks failed: %v", err)
	}

	var paths []string
	for _, tr := range tracks {
		paths = append(paths, tr.Path)
	}
	want := []string{"/a1.mp3", "/a2.mp3", "/dup1.mp3", "/b.mp3"}
	if len(paths) != len(want) {
		t.Fatalf("got %d tracks, want %d", len(paths), len(want))
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, paths[i], want[i])
		}
	}
}

func TestSetRating(t *testing.T) {
	lib := newTestLibrary(t)
	id := insertTrack(t, lib, Track{Path: "/t.mp3", Artist: "a", Title: "t"})

	if err := lib.SetRating(id, 4); err != nil {
		t.Fatalf("SetRating failed: %v", err)
	}
	got, err := lib.TrackByPath("/t.mp3")
	if err != nil {
		t.Fatalf("TrackByPath failed: %v", err)
	}
	if got.Rating != 4 {
		t.Errorf("Rating = %d, want 4", got.Rating)
	}
}

func TestTrackCount(t *testing.T) {
	lib := newTestLibrary(t)
	insertTrack(t, lib, Track{Path: "/1.mp3"})
	insertTrack(t, lib, Track{Path: "/2.mp3"})

	count, err := lib.TrackCount()
	if err != nil {
		t.Fatalf("TrackCount failed: %v", err)
	}
	if count != 2 {
		t.Errorf("TrackCount = %d, want 2", count)
	}
}
