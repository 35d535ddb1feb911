// Package search compiles parsed queries into predicates and runs them
// against the track catalog.
package search

import (
	"strconv"
	"strings"

	"github.com/llehouerou/cratedig/internal/library"
)

// Field is the closed set of searchable track attributes. Anything the
// user types that does not resolve here degrades to free-text matching,
// which is deliberate: a typo'd field name is a search term, not an
// error.
type Field int

const (
	FieldUnknown Field = iota
	FieldArtist
	FieldTitle
	FieldAlbum
	FieldGenre
	FieldBPM
	FieldRating
	FieldKey
	FieldYear
	FieldTrackNumber
	FieldComment
	FieldColor
	FieldFile
	FieldCrate
)

// fieldAliases maps alternate user-facing names onto canonical ones.
// Applied before any other field logic.
var fieldAliases = map[string]string{
	"location": "file",
}

var knownFields = map[string]Field{
	"artist":      FieldArtist,
	"title":       FieldTitle,
	"album":       FieldAlbum,
	"genre":       FieldGenre,
	"bpm":         FieldBPM,
	"rating":      FieldRating,
	"key":         FieldKey,
	"year":        FieldYear,
	"tracknumber": FieldTrackNumber,
	"comment":     FieldComment,
	"color":       FieldColor,
	"file":        FieldFile,
	"crate":       FieldCrate,
}

// textFields are the attributes a bare term or degraded filter value is
// matched against.
var textFields = [...]Field{FieldArtist, FieldTitle, FieldAlbum, FieldGenre, FieldFile}

// ResolveField maps a raw field name from a query onto the closed Field
// set. Matching is case-insensitive; unknown names resolve to
// FieldUnknown rather than erroring.
func ResolveField(name string) Field {
	name = strings.ToLower(name)
	if canonical, ok := fieldAliases[name]; ok {
		name = canonical
	}
	return knownFields[name]
}

// fieldValue renders a track attribute as text. Numeric attributes
// render in decimal; absent values render empty, which is what the
// empty operator tests for.
func fieldValue(t *library.Track, f Field) string {
	switch f {
	case FieldArtist:
		return t.Artist
	case FieldTitle:
		return t.Title
	case FieldAlbum:
		return t.Album
	case FieldGenre:
		return t.Genre
	case FieldKey:
		return t.Key
	case FieldYear:
		return t.Year
	case FieldTrackNumber:
		return t.TrackNumber
	case FieldComment:
		return t.Comment
	case FieldFile:
		return t.Path
	case FieldBPM:
		if t.BPM == 0 {
			return ""
		}
		return strconv.FormatFloat(t.BPM, 'f', -1, 64)
	case FieldRating:
		if t.Rating == 0 {
			return ""
		}
		return strconv.Itoa(t.Rating)
	case FieldColor:
		if t.Color < 0 {
			return ""
		}
		return strconv.Itoa(t.Color)
	case FieldUnknown, FieldCrate:
		// Neither maps to a track column; the compiler handles both
		// before reaching here.
	}
	return ""
}
