package query

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseError reports input the grammar cannot accept. It always carries
// the full original query string.
type ParseError struct {
	Query string
	Pos   int // byte offset of the offending input
	Msg   string
}

// Error keeps the query text verbatim so callers and error messages
// always carry the exact input, quotes included.
func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse \"%s\": %s (offset %d)", e.Query, e.Msg, e.Pos)
}

var (
	numberRe = regexp.MustCompile(`^-?[0-9]+(?:\.[0-9]+)?$`)
	rangeRe  = regexp.MustCompile(`^(-?[0-9]+(?:\.[0-9]+)?)-(-?[0-9]+(?:\.[0-9]+)?)$`)
)

// Parse turns a raw query string into a SearchQuery. It is a pure
// function of its input: the same string always yields the same tree or
// the same error. Empty or whitespace-only input parses to a query with
// no groups.
//
// Ambiguity is resolved by fixed rule priority: an identifier glued to a
// ':' always starts a field filter, a numeric filter value always goes
// through the range production, and everything else falls through to a
// contains match or a bare text term.
func Parse(input string) (*SearchQuery, error) {
	p := &parser{input: input}

	q := &SearchQuery{}
	var group OrGroup
	for {
		p.skipSpace()
		if p.eof() {
			break
		}
		if tok := p.peekToken(); tok == "|" || tok == "OR" {
			if len(group.Clauses) == 0 {
				return nil, p.errorf(p.pos, "%q separator with no search terms before it", tok)
			}
			p.pos += len(tok)
			p.skipSpace()
			if p.eof() {
				return nil, p.errorf(p.pos, "query ends after %q separator", tok)
			}
			q.Groups = append(q.Groups, group)
			group = OrGroup{}
			continue
		}
		c, err := p.parseClause()
		if err != nil {
			return nil, err
		}
		group.Clauses = append(group.Clauses, c)
	}
	if len(group.Clauses) > 0 {
		q.Groups = append(q.Groups, group)
	}
	return q, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) errorf(pos int, format string, args ...any) *ParseError {
	return &ParseError{Query: p.input, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool { return p.pos >= len(p.input) }

func (p *parser) skipSpace() {
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.input[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

// peekToken returns the maximal run of non-whitespace starting at the
// current position without consuming it. Separator tokens ("|", uppercase
// "OR") are only recognized when they stand alone like this; "or" glued
// to other characters is an ordinary word.
func (p *parser) peekToken() string {
	end := p.pos
	for end < len(p.input) {
		r, size := utf8.DecodeRuneInString(p.input[end:])
		if unicode.IsSpace(r) {
			break
		}
		end += size
	}
	return p.input[p.pos:end]
}

func (p *parser) parseClause() (Clause, error) {
	negated := false
	if p.input[p.pos] == '-' {
		// The marker binds to the clause starting immediately after it.
		if p.pos+1 >= len(p.input) || isSpaceAt(p.input, p.pos+1) {
			return nil, p.errorf(p.pos, "negation marker with nothing to negate")
		}
		negated = true
		p.pos++
	}
	if name, ok := p.peekFieldName(); ok {
		p.pos += len(name) + 1 // identifier and ':'
		return p.parseFilterValue(name, negated)
	}
	value, err := p.parseTermValue()
	if err != nil {
		return nil, err
	}
	return TextTerm{Value: value, Negated: negated}, nil
}

// peekFieldName reports an identifier immediately followed by ':' at the
// current position. This is the tie-break that makes "genre:Ambient" a
// field filter rather than a bare word containing a colon.
func (p *parser) peekFieldName() (string, bool) {
	i := p.pos
	if i >= len(p.input) || !isIdentStart(p.input[i]) {
		return "", false
	}
	for i < len(p.input) && isIdentChar(p.input[i]) {
		i++
	}
	if i < len(p.input) && p.input[i] == ':' {
		return p.input[p.pos:i], true
	}
	return "", false
}

func (p *parser) parseFilterValue(name string, negated bool) (Clause, error) {
	if p.eof() || isSpaceAt(p.input, p.pos) {
		return nil, p.errorf(p.pos, "field %q has no value", name)
	}
	f := FieldFilter{Field: name, Negated: negated}
	switch c := p.input[p.pos]; {
	case c == '"':
		s, err := p.scanQuoted()
		if err != nil {
			return nil, err
		}
		if s == "" {
			// `field:""` is the empty-value sentinel.
			f.Op = OpEmpty
		} else {
			f.Op = OpContains
			f.Value = s
		}
	case c == '=':
		p.pos++
		v, err := p.operand(name)
		if err != nil {
			return nil, err
		}
		f.Op = OpExact
		f.Value = v
	case c == '>' || c == '<':
		op := OpGreater
		if c == '<' {
			op = OpLess
		}
		p.pos++
		if !p.eof() && p.input[p.pos] == '=' {
			p.pos++
			if op == OpGreater {
				op = OpGreaterEq
			} else {
				op = OpLessEq
			}
		}
		v, err := p.operand(name)
		if err != nil {
			return nil, err
		}
		f.Op = op
		f.Value = v
	default:
		raw := p.scanBare()
		if m := rangeRe.FindStringSubmatch(raw); m != nil {
			f.Op = OpRange
			f.Value = m[1]
			f.ValueEnd = m[2]
			f.HasEnd = true
		} else if numberRe.MatchString(raw) {
			// A single number goes through the range production with no
			// end bound; the compiler evaluates it as a one-point range.
			f.Op = OpRange
			f.Value = raw
		} else {
			f.Op = OpContains
			f.Value = raw
		}
	}
	return f, nil
}

// operand consumes the value after '=' or a comparison operator. Any bare
// or quoted token is accepted; a non-numeric operand after '>' or '<' is
// not a parse error, it degrades to string ordering at compile time.
func (p *parser) operand(name string) (string, error) {
	if p.eof() || isSpaceAt(p.input, p.pos) {
		return "", p.errorf(p.pos, "field %q is missing an operand", name)
	}
	if p.input[p.pos] == '"' {
		return p.scanQuoted()
	}
	return p.scanBare(), nil
}

func (p *parser) parseTermValue() (string, error) {
	if !p.eof() && p.input[p.pos] == '"' {
		return p.scanQuoted()
	}
	return p.scanBare(), nil
}

// scanQuoted consumes a double-quoted phrase. Contents are taken
// verbatim; there is no escape processing.
func (p *parser) scanQuoted() (string, error) {
	start := p.pos
	p.pos++ // opening quote
	end := strings.IndexByte(p.input[p.pos:], '"')
	if end < 0 {
		return "", p.errorf(start, "unterminated quoted phrase")
	}
	s := p.input[p.pos : p.pos+end]
	p.pos += end + 1
	return s, nil
}

func (p *parser) scanBare() string {
	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.input[p.pos:])
		if unicode.IsSpace(r) {
			break
		}
		p.pos += size
	}
	return p.input[start:p.pos]
}

func isSpaceAt(s string, i int) bool {
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsSpace(r)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
