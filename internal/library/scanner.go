package library

import (
	"database/sql"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhowden/tag"

	dbutil "github.com/llehouerou/cratedig/internal/db"
)

var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".opus": true,
	".m4a":  true,
	".wav":  true,
	".aiff": true,
}

// IsAudioFile reports whether path has a recognized audio extension.
func IsAudioFile(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// ScanStats summarizes one catalog refresh.
type ScanStats struct {
	Scanned int // audio files seen on disk
	Added   int
	Updated int
	Missing int // cataloged files that are gone from disk
}

type fileInfo struct {
	path  string
	mtime int64
	size  int64
}

// Scan refreshes the catalog from the given source directories. Files
// already cataloged with an unchanged mtime are skipped. Files that have
// disappeared from a scanned source are flagged missing rather than
// deleted, so ratings and crate membership survive a temporarily
// unmounted drive. The FTS index is rebuilt afterwards.
func (l *Library) Scan(sources []string) (ScanStats, error) {
	var stats ScanStats

	existing, err := l.existingTracks()
	if err != nil {
		return stats, err
	}

	files := discoverFiles(sources)
	stats.Scanned = len(files)

	seen := make(map[string]bool, len(files))
	var changed []fileInfo
	var unchanged []string
	for _, f := range files {
		seen[f.path] = true
		if prev, ok := existing[f.path]; ok && prev == f.mtime {
			// The upsert path resets the missing flag; files skipped
			// here need it cleared too, in case they reappeared with
			// the same mtime after an unmounted drive came back.
			unchanged = append(unchanged, f.path)
			continue
		}
		if _, ok := existing[f.path]; ok {
			stats.Updated++
		} else {
			stats.Added++
		}
		changed = append(changed, f)
	}

	var gone []string
	for path := range existing {
		if seen[path] || !underAny(path, sources) {
			continue
		}
		gone = append(gone, path)
	}
	stats.Missing = len(gone)

	err = dbutil.WithTx(l.db, func(tx *sql.Tx) error {
		for _, f := range changed {
			t := readTrack(f)
			if err := l.UpsertTrack(tx, &t); err != nil {
				return err
			}
		}
		if err := l.clearMissing(tx, unchanged); err != nil {
			return err
		}
		return l.markMissing(tx, gone)
	})
	if err != nil {
		return stats, err
	}

	return stats, l.RebuildIndex()
}

// discoverFiles walks the source directories and returns every audio
// file found. Unreadable entries are skipped, not fatal.
func discoverFiles(sources []string) []fileInfo {
	var files []fileInfo
	for _, src := range sources {
		_ = filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return nil //nolint:nilerr // keep scanning other paths
			}
			if d.IsDir() || !IsAudioFile(path) {
				return nil
			}
			info, infoErr := d.Info()
			if infoErr != nil {
				return nil //nolint:nilerr // keep scanning other files
			}
			files = append(files, fileInfo{
				path:  path,
				mtime: info.ModTime().Unix(),
				size:  info.Size(),
			})
			return nil
		})
	}
	return files
}

func underAny(path string, sources []string) bool {
	for _, src := range sources {
		if rel, err := filepath.Rel(src, path); err == nil && !strings.HasPrefix(rel, "..") {
			return true
		}
	}
	return false
}

// readTrack builds a Track from the file's tags. Tag read failures are
// not fatal: the file is cataloged under its path with the filename as
// title and whatever metadata could be read.
func readTrack(fi fileInfo) (t Track) {
	t = Track{
		Path:     fi.path,
		Mtime:    fi.mtime,
		Filesize: fi.size,
		Color:    -1,
	}
	defer func() {
		if t.Title == "" {
			t.Title = strings.TrimSuffix(filepath.Base(fi.path), filepath.Ext(fi.path))
		}
	}()

	f, err := os.Open(fi.path)
	if err != nil {
		return t
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return t
	}
	t.Artist = m.Artist()
	t.Title = m.Title()
	t.Album = m.Album()
	t.Genre = m.Genre()
	t.Comment = m.Comment()
	if y := m.Year(); y > 0 {
		t.Year = strconv.Itoa(y)
	}
	if n, _ := m.Track(); n > 0 {
		t.TrackNumber = strconv.Itoa(n)
	}
	t.Key = rawTagValue(m.Raw(), "TKEY", "INITIALKEY", "initialkey", "KEY")
	if bpm := rawTagValue(m.Raw(), "TBPM", "BPM", "bpm", "TEMPO"); bpm != "" {
		if v, err := strconv.ParseFloat(bpm, 64); err == nil {
			t.BPM = v
		}
	}
	return t
}

// rawTagValue returns the first of the given raw frames that holds a
// plain string. Key and BPM have no accessor in the tag library, so they
// come out of the raw frame map.
func rawTagValue(raw map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := raw[k].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
