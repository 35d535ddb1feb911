package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/llehouerou/cratedig/internal/library"
	"github.com/llehouerou/cratedig/internal/query"
)

// Record is one candidate presented to a compiled predicate: the track
// plus the names of the crates it belongs to.
type Record struct {
	Track  *library.Track
	Crates []string
}

// Predicate is a compiled query. It is pure: evaluation reads the record
// and nothing else, so a predicate can be tested without any storage
// behind it.
type Predicate func(*Record) bool

// PrefixIndex is the optional full-text collaborator. MatchPrefix
// returns the ids of tracks with an indexed word beginning with term.
type PrefixIndex interface {
	MatchPrefix(term string) (map[int64]bool, error)
}

// Compile turns a parsed query into a single predicate. Compilation
// never rejects a valid SearchQuery: unknown fields degrade to text
// matching and non-numeric comparison operands degrade to string
// ordering. The only possible error is a failed index lookup, which
// belongs to the index collaborator, not this package.
//
// When idx is non-nil, bare terms resolve through it as prefix matches;
// otherwise they are case-insensitive substring scans over the free-text
// fields. The two strategies can disagree on mid-word matches; that
// divergence is accepted.
func Compile(q *query.SearchQuery, idx PrefixIndex) (Predicate, error) {
	if len(q.Groups) == 0 {
		return matchAll, nil
	}
	groups := make([]Predicate, 0, len(q.Groups))
	for _, g := range q.Groups {
		p, err := compileGroup(g, idx)
		if err != nil {
			return nil, err
		}
		groups = append(groups, p)
	}
	return anyOf(groups), nil
}

func matchAll(*Record) bool { return true }

func compileGroup(g query.OrGroup, idx PrefixIndex) (Predicate, error) {
	if len(g.Clauses) == 0 {
		// Vacuously true, not "match nothing".
		return matchAll, nil
	}
	clauses := make([]Predicate, 0, len(g.Clauses))
	for _, c := range g.Clauses {
		p, err := compileClause(c, idx)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, p)
	}
	return allOf(clauses), nil
}

func compileClause(c query.Clause, idx PrefixIndex) (Predicate, error) {
	switch c := c.(type) {
	case query.TextTerm:
		return textPredicate(c.Value, c.Negated, idx)
	case query.FieldFilter:
		return filterPredicate(c, idx)
	}
	return nil, fmt.Errorf("unsupported clause type %T", c)
}

// textPredicate matches term against the free-text fields, through the
// prefix index when one is available.
func textPredicate(term string, negated bool, idx PrefixIndex) (Predicate, error) {
	if term == "" {
		return negate(matchAll, negated), nil
	}
	if idx != nil {
		ids, err := idx.MatchPrefix(term)
		if err != nil {
			return nil, fmt.Errorf("full-text lookup for %q: %w", term, err)
		}
		return negate(func(r *Record) bool { return ids[r.Track.ID] }, negated), nil
	}
	needle := strings.ToLower(term)
	p := func(r *Record) bool {
		for _, f := range textFields {
			if strings.Contains(strings.ToLower(fieldValue(r.Track, f)), needle) {
				return true
			}
		}
		return false
	}
	return negate(p, negated), nil
}

func filterPredicate(f query.FieldFilter, idx PrefixIndex) (Predicate, error) {
	switch field := ResolveField(f.Field); field {
	case FieldUnknown:
		// The field qualifier is dropped entirely: xyz:foo behaves
		// exactly like a bare foo.
		return textPredicate(f.Value, f.Negated, idx)
	case FieldCrate:
		return negate(cratePredicate(f), f.Negated), nil
	default:
		return negate(attrPredicate(field, f), f.Negated), nil
	}
}

// cratePredicate resolves against the crate membership relation instead
// of a track column. Every operator except empty and exact behaves as
// contains.
func cratePredicate(f query.FieldFilter) Predicate {
	switch f.Op {
	case query.OpEmpty:
		return func(r *Record) bool { return len(r.Crates) == 0 }
	case query.OpExact:
		return func(r *Record) bool {
			for _, name := range r.Crates {
				if strings.EqualFold(name, f.Value) {
					return true
				}
			}
			return false
		}
	default:
		needle := strings.ToLower(f.Value)
		return func(r *Record) bool {
			for _, name := range r.Crates {
				if strings.Contains(strings.ToLower(name), needle) {
					return true
				}
			}
			return false
		}
	}
}

func attrPredicate(field Field, f query.FieldFilter) Predicate {
	switch f.Op {
	case query.OpEmpty:
		return func(r *Record) bool { return fieldValue(r.Track, field) == "" }
	case query.OpContains:
		needle := strings.ToLower(f.Value)
		return func(r *Record) bool {
			return strings.Contains(strings.ToLower(fieldValue(r.Track, field)), needle)
		}
	case query.OpExact:
		return func(r *Record) bool {
			return strings.EqualFold(fieldValue(r.Track, field), f.Value)
		}
	case query.OpGreater, query.OpGreaterEq, query.OpLess, query.OpLessEq:
		return func(r *Record) bool {
			return compareOrdered(fieldValue(r.Track, field), f.Value, f.Op)
		}
	case query.OpRange:
		lo := f.Value
		hi := f.Value
		if f.HasEnd {
			hi = f.ValueEnd
		}
		// Inclusive on both ends; a missing end bound degenerates to a
		// one-point range, which for numbers is plain equality.
		return func(r *Record) bool {
			v := fieldValue(r.Track, field)
			return compareOrdered(v, lo, query.OpGreaterEq) &&
				compareOrdered(v, hi, query.OpLessEq)
		}
	}
	return func(*Record) bool { return false }
}

// compareOrdered compares a raw attribute text against an operand.
// Numeric comparison applies only when both sides parse as numbers;
// otherwise the raw strings are compared byte-wise. The string fallback
// is inherited behavior, kept on purpose: key:>C really does order
// musical keys lexicographically.
func compareOrdered(attr, operand string, op query.Operator) bool {
	a, errA := strconv.ParseFloat(attr, 64)
	b, errB := strconv.ParseFloat(operand, 64)
	if errA == nil && errB == nil {
		switch op {
		case query.OpGreater:
			return a > b
		case query.OpGreaterEq:
			return a >= b
		case query.OpLess:
			return a < b
		case query.OpLessEq:
			return a <= b
		}
		return false
	}
	switch op {
	case query.OpGreater:
		return attr > operand
	case query.OpGreaterEq:
		return attr >= operand
	case query.OpLess:
		return attr < operand
	case query.OpLessEq:
		return attr <= operand
	}
	return false
}

func negate(p Predicate, negated bool) Predicate {
	if !negated {
		return p
	}
	return func(r *Record) bool { return !p(r) }
}

func allOf(preds []Predicate) Predicate {
	return func(r *Record) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

func anyOf(preds []Predicate) Predicate {
	return func(r *Record) bool {
		for _, p := range preds {
			if p(r) {
				return true
			}
		}
		return false
	}
}
