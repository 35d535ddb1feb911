package search

import (
	"testing"

	"github.com/llehouerou/cratedig/internal/library"
)

func TestResolveField(t *testing.T) {
	tests := []struct {
		name string
		want Field
	}{
		{name: "artist", want: FieldArtist},
		{name: "title", want: FieldTitle},
		{name: "album", want: FieldAlbum},
		{name: "genre", want: FieldGenre},
		{name: "bpm", want: FieldBPM},
		{name: "rating", want: FieldRating},
		{name: "key", want: FieldKey},
		{name: "year", want: FieldYear},
		{name: "tracknumber", want: FieldTrackNumber},
		{name: "comment", want: FieldComment},
		{name: "color", want: FieldColor},
		{name: "file", want: FieldFile},
		{name: "crate", want: FieldCrate},
		{name: "location", want: FieldFile}, // alias
		{name: "LOCATION", want: FieldFile},
		{name: "Genre", want: FieldGenre},
		{name: "xyz", want: FieldUnknown},
		{name: "", want: FieldUnknown},
	}
	for _, tt := range tests {
		if got := ResolveField(tt.name); got != tt.want {
			t.Errorf("ResolveField(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFieldValue(t *testing.T) {
	track := &library.Track{
		Artist:      "Orbital",
		Title:       "Halcyon",
		Album:       "Orbital 2",
		Genre:       "Techno",
		Comment:     "classic",
		Key:         "8A",
		Path:        "/music/halcyon.mp3",
		BPM:         128.5,
		Rating:      5,
		Year:        "1993",
		TrackNumber: "4",
		Color:       3,
	}
	tests := []struct {
		field Field
		want  string
	}{
		{field: FieldArtist, want: "Orbital"},
		{field: FieldTitle, want: "Halcyon"},
		{field: FieldAlbum, want: "Orbital 2"},
		{field: FieldGenre, want: "Techno"},
		{field: FieldComment, want: "classic"},
		{field: FieldKey, want: "8A"},
		{field: FieldFile, want: "/music/halcyon.mp3"},
		{field: FieldBPM, want: "128.5"},
		{field: FieldRating, want: "5"},
		{field: FieldYear, want: "1993"},
		{field: FieldTrackNumber, want: "4"},
		{field: FieldColor, want: "3"},
	}
	for _, tt := range tests {
		if got := fieldValue(track, tt.field); got != tt.want {
			t.Errorf("fieldValue(%v) = %q, want %q", tt.field, got, tt.want)
		}
	}
}

func TestFieldValue_AbsentRendersEmpty(t *testing.T) {
	track := &library.Track{Color: -1}
	for _, f := range []Field{FieldBPM, FieldRating, FieldColor, FieldYear, FieldComment} {
		if got := fieldValue(track, f); got != "" {
			t.Errorf("fieldValue(%v) on zero track = %q, want empty", f, got)
		}
	}
}
