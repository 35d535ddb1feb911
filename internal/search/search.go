package search

import (
	"github.com/llehouerou/cratedig/internal/library"
	"github.com/llehouerou/cratedig/internal/query"
)

// Searcher runs queries against a catalog.
type Searcher struct {
	lib      *library.Library
	useIndex bool
}

// New returns a Searcher over lib. Bare terms go through the full-text
// prefix index when the catalog has one.
func New(lib *library.Library) *Searcher {
	return &Searcher{lib: lib, useIndex: lib.HasIndex()}
}

// DisableIndex forces the case-insensitive substring fallback for bare
// terms even when the catalog has a full-text index.
func (s *Searcher) DisableIndex() {
	s.useIndex = false
}

// Search parses, compiles and evaluates one raw query string. Results
// come back ordered ascending by artist then title, case-insensitively,
// with catalog insertion order breaking ties; an empty or whitespace
// query returns every track. The only user-facing failure is a
// *query.ParseError.
func (s *Searcher) Search(raw string) ([]library.Track, error) {
	q, err := query.Parse(raw)
	if err != nil {
		return nil, err
	}

	var idx PrefixIndex
	if s.useIndex {
		idx = s.lib
	}
	pred, err := Compile(q, idx)
	if err != nil {
		return nil, err
	}

	tracks, err := s.lib.AllTracks()
	if err != nil {
		return nil, err
	}
	crates, err := s.lib.Memberships()
	if err != nil {
		return nil, err
	}

	var matched []library.Track
	for i := range tracks {
		rec := Record{Track: &tracks[i], Crates: crates[tracks[i].ID]}
		if pred(&rec) {
			matched = append(matched, tracks[i])
		}
	}
	return matched, nil
}
