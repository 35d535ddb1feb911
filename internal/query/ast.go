// Package query implements the search-query language used to filter the
// track catalog: a recursive-descent parser producing a small AST of
// OR-ed groups of AND-ed clauses.
package query

// Operator identifies how a field filter compares its value against a
// track attribute.
type Operator int

const (
	OpContains Operator = iota
	OpExact
	OpGreater
	OpGreaterEq
	OpLess
	OpLessEq
	OpRange
	OpEmpty
)

func (o Operator) String() string {
	switch o {
	case OpContains:
		return "contains"
	case OpExact:
		return "exact"
	case OpGreater:
		return ">"
	case OpGreaterEq:
		return ">="
	case OpLess:
		return "<"
	case OpLessEq:
		return "<="
	case OpRange:
		return "range"
	case OpEmpty:
		return "empty"
	}
	return "unknown"
}

// SearchQuery is the root of a parsed query. Groups are OR-ed together;
// a query with no groups matches everything.
type SearchQuery struct {
	Groups []OrGroup
}

// OrGroup is an ordered sequence of clauses that must all match. A group
// with no clauses is vacuously true.
type OrGroup struct {
	Clauses []Clause
}

// Clause is one AND-ed unit inside a group: a TextTerm or a FieldFilter.
type Clause interface {
	clause()
}

// TextTerm is a bare word or quoted phrase matched against the free-text
// fields of a track.
type TextTerm struct {
	Value   string
	Negated bool
}

// FieldFilter matches one named field with an operator. Field holds the
// raw name as typed; aliases and unknown names are resolved at compile
// time, not here.
type FieldFilter struct {
	Field    string
	Op       Operator
	Value    string
	ValueEnd string // upper range bound, only meaningful when HasEnd
	HasEnd   bool
	Negated  bool
}

func (TextTerm) clause()    {}
func (FieldFilter) clause() {}
