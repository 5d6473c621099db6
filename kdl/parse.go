package kdl

import "fmt"

// Dialect identifies a revision of the KDL grammar.
type Dialect int

const (
	// DialectCanonical is KDL 2, the current revision.
	DialectCanonical Dialect = iota
	// DialectLegacy is KDL 1.
	DialectLegacy
)

func (d Dialect) String() string {
	switch d {
	case DialectCanonical:
		return "kdl-v2"
	case DialectLegacy:
		return "kdl-v1"
	}

	return fmt.Sprintf("Dialect(%d)", int(d))
}

// Parse parses src, trying [DialectCanonical] first and [DialectLegacy] if
// that fails. If neither grammar accepts src, the canonical [*ParseError] is
// returned.
//
// Empty input (or input containing only whitespace and comments) yields an
// empty [Document].
func Parse(src []byte) (*Document, error) {
	return firstOf(string(src), parseCanonical, parseLegacy)
}

// ParseDialect parses src with a single grammar, without fallback.
func ParseDialect(src []byte, d Dialect) (*Document, error) {
	switch d {
	case DialectCanonical:
		return parseCanonical(string(src))
	case DialectLegacy:
		return parseLegacy(string(src))
	}

	return nil, fmt.Errorf("unknown dialect %v", d)
}

type grammarFunc func(src string) (*Document, error)

// firstOf returns the result of the first grammar that accepts src. When all
// of them fail, the first grammar's error is returned.
func firstOf(src string, grammars ...grammarFunc) (*Document, error) {
	var firstErr error

	for _, g := range grammars {
		doc, err := g(src)
		if err == nil {
			return doc, nil
		}

		if firstErr == nil {
			firstErr = err
		}
	}

	return nil, firstErr
}

func parseCanonical(src string) (*Document, error) {
	p := &parser{src: src, dialect: DialectCanonical}

	return p.document()
}

func parseLegacy(src string) (*Document, error) {
	p := &parser{src: src, dialect: DialectLegacy}

	return p.document()
}
