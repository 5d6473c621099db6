package kdl

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"
)

func (p *parser) eof() bool {
	return p.off >= len(p.src)
}

func (p *parser) peek() rune {
	r, _ := utf8.DecodeRuneInString(p.src[p.off:])

	return r
}

func (p *parser) next() rune {
	r, size := utf8.DecodeRuneInString(p.src[p.off:])
	p.off += size

	return r
}

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.src[p.off:], s)
}

// newlineLen returns the byte length of the newline at the current position,
// or 0 if there is none.
func (p *parser) newlineLen() int {
	if p.eof() {
		return 0
	}

	if p.hasPrefix("\r\n") {
		return 2
	}

	r, size := utf8.DecodeRuneInString(p.src[p.off:])
	if isNewlineRune(r) {
		return size
	}

	return 0
}

// skipLineSpace skips whitespace, newlines, comments, and line
// continuations.
func (p *parser) skipLineSpace() error {
	for !p.eof() {
		if n := p.newlineLen(); n > 0 {
			p.off += n
			continue
		}

		if p.hasPrefix("//") {
			p.skipLineComment()
			continue
		}

		consumed, err := p.skipNodeSpace()
		if err != nil {
			return err
		}

		if !consumed {
			return nil
		}
	}

	return nil
}

// skipNodeSpace skips whitespace, block comments, and line continuations
// within a single node. It reports whether anything was skipped.
func (p *parser) skipNodeSpace() (bool, error) {
	start := p.off

	for !p.eof() {
		switch {
		case isWhitespace(p.peek()):
			p.next()
		case p.hasPrefix("/*"):
			err := p.skipBlockComment()
			if err != nil {
				return false, err
			}
		case p.hasPrefix("\\"):
			err := p.skipEscline()
			if err != nil {
				return false, err
			}
		default:
			return p.off > start, nil
		}
	}

	return p.off > start, nil
}

// skipSlashdashSpace skips the space allowed between "/-" and the item it
// comments out. KDL 2 allows newlines there; KDL 1 only allows whitespace.
func (p *parser) skipSlashdashSpace() error {
	if p.dialect == DialectCanonical {
		return p.skipLineSpace()
	}

	_, err := p.skipNodeSpace()

	return err
}

func (p *parser) skipInlineWhitespace() {
	for !p.eof() && isWhitespace(p.peek()) {
		p.next()
	}
}

// skipLineComment skips a "//" comment and the newline that ends it.
func (p *parser) skipLineComment() {
	for !p.eof() {
		if n := p.newlineLen(); n > 0 {
			p.off += n
			return
		}

		p.next()
	}
}

// skipBlockComment skips a possibly nested "/* */" comment.
func (p *parser) skipBlockComment() error {
	start := p.off
	depth := 0

	for !p.eof() {
		switch {
		case p.hasPrefix("/*"):
			depth++
			p.off += 2
		case p.hasPrefix("*/"):
			depth--
			p.off += 2

			if depth == 0 {
				return nil
			}
		default:
			p.next()
		}
	}

	return p.errorf(start, "unterminated block comment")
}

// skipEscline skips a line continuation: a backslash, optional whitespace and
// comment, then a newline.
func (p *parser) skipEscline() error {
	start := p.off
	p.off++ // '\'

	for !p.eof() {
		if isWhitespace(p.peek()) {
			p.next()
			continue
		}

		if !p.hasPrefix("/*") {
			break
		}

		err := p.skipBlockComment()
		if err != nil {
			return err
		}
	}

	switch {
	case p.hasPrefix("//"):
		p.skipLineComment()
		return nil
	case p.newlineLen() > 0:
		p.off += p.newlineLen()
		return nil
	case p.eof() && p.dialect == DialectCanonical:
		return nil
	}

	return p.errorf(start, "line continuation must be followed by a newline")
}

// bareToken consumes and returns the longest run of identifier characters.
func (p *parser) bareToken() string {
	start := p.off

	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.off:])
		if !p.isIdentChar(r) {
			break
		}

		p.off += size
	}

	return p.src[start:p.off]
}

func (p *parser) isIdentChar(r rune) bool {
	if r <= 0x20 || r == 0x7f || r == utf8.RuneError || isWhitespace(r) || isNewlineRune(r) {
		return false
	}

	switch r {
	case '\\', '/', '(', ')', '{', '}', ';', '[', ']', '=', '"':
		return false
	case '<', '>', ',':
		return p.dialect == DialectCanonical
	case '#':
		return p.dialect == DialectLegacy
	}

	// Direction control characters are never part of an identifier.
	if (r >= 0x200e && r <= 0x200f) || (r >= 0x202a && r <= 0x202e) || (r >= 0x2066 && r <= 0x2069) {
		return false
	}

	return true
}

// atStringStart reports whether a quoted or raw string begins at the current
// position.
func (p *parser) atStringStart() bool {
	if p.hasPrefix(`"`) {
		return true
	}

	rest := p.src[p.off:]

	switch p.dialect {
	case DialectLegacy:
		if !strings.HasPrefix(rest, "r") {
			return false
		}

		rest = strings.TrimLeft(rest[1:], "#")

		return strings.HasPrefix(rest, `"`)

	case DialectCanonical:
		if !strings.HasPrefix(rest, "#") {
			return false
		}

		rest = strings.TrimLeft(rest, "#")

		return strings.HasPrefix(rest, `"`)
	}

	return false
}

func (p *parser) looksNumeric(tok string) bool {
	if tok == "" {
		return false
	}

	if isDigit(tok[0]) {
		return true
	}

	return (tok[0] == '+' || tok[0] == '-') && len(tok) > 1 && isDigit(tok[1])
}

// isDotNumber reports whether tok looks like a number with a leading dot,
// which KDL 2 forbids as an identifier.
func isDotNumber(tok string) bool {
	if tok != "" && (tok[0] == '+' || tok[0] == '-') {
		tok = tok[1:]
	}

	return len(tok) > 1 && tok[0] == '.' && isDigit(tok[1])
}

// number parses a numeric token into a normalized [Value].
func (p *parser) number(tok string, start int) (Value, error) {
	v, ok := parseNumber(tok)
	if !ok {
		return Value{}, p.errorf(start, "invalid number %q", tok)
	}

	return v, nil
}

func parseNumber(tok string) (Value, bool) {
	s := tok
	neg := false

	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}

	base := 10

	switch {
	case strings.HasPrefix(s, "0x"):
		base = 16
	case strings.HasPrefix(s, "0o"):
		base = 8
	case strings.HasPrefix(s, "0b"):
		base = 2
	}

	if base != 10 {
		digits := s[2:]
		if !validDigits(digits, base) {
			return Value{}, false
		}

		n, ok := new(big.Int).SetString(strings.ReplaceAll(digits, "_", ""), base)
		if !ok {
			return Value{}, false
		}

		if neg {
			n.Neg(n)
		}

		return Value{Kind: KindNumber, Text: n.String(), integer: true}, true
	}

	intPart, frac, exp, ok := splitDecimal(s)
	if !ok || !validDigits(intPart, 10) {
		return Value{}, false
	}

	if frac == "" && exp == "" {
		n, ok := new(big.Int).SetString(strings.ReplaceAll(intPart, "_", ""), 10)
		if !ok {
			return Value{}, false
		}

		if neg {
			n.Neg(n)
		}

		return Value{Kind: KindNumber, Text: n.String(), integer: true}, true
	}

	clean := strings.ReplaceAll(s, "_", "")

	f, err := strconv.ParseFloat(clean, 64)
	if err != nil && !isRangeError(err) {
		return Value{}, false
	}

	if neg {
		f = -f
	}

	return Value{Kind: KindNumber, Text: strconv.FormatFloat(f, 'g', -1, 64)}, true
}

// splitDecimal splits a decimal literal into its integer, fraction, and
// exponent digits, validating each part.
func splitDecimal(s string) (intPart, frac, exp string, ok bool) {
	intPart = s

	if i := strings.IndexAny(intPart, "eE"); i >= 0 {
		exp = intPart[i+1:]
		intPart = intPart[:i]

		if exp != "" && (exp[0] == '+' || exp[0] == '-') {
			exp = exp[1:]
		}

		if !validDigits(exp, 10) {
			return "", "", "", false
		}
	}

	if i := strings.IndexByte(intPart, '.'); i >= 0 {
		frac = intPart[i+1:]
		intPart = intPart[:i]

		if !validDigits(frac, 10) {
			return "", "", "", false
		}
	}

	return intPart, frac, exp, true
}

// validDigits reports whether s is a non-empty run of digits in base,
// optionally separated by underscores, starting with a digit.
func validDigits(s string, base int) bool {
	if s == "" || s[0] == '_' {
		return false
	}

	for i := range len(s) {
		c := s[i]
		if c == '_' {
			continue
		}

		var d int

		switch {
		case c >= '0' && c <= '9':
			d = int(c - '0')
		case c >= 'a' && c <= 'f':
			d = int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = int(c-'A') + 10
		default:
			return false
		}

		if d >= base {
			return false
		}
	}

	return true
}

func isRangeError(err error) bool {
	return errors.Is(err, strconv.ErrRange)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWhitespace(r rune) bool {
	switch r {
	case '\t', ' ', '\v', 0x00a0, 0x1680, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}

	return r >= 0x2000 && r <= 0x200a
}

func isNewlineRune(r rune) bool {
	switch r {
	case '\n', '\r', '\f', 0x0085, 0x2028, 0x2029:
		return true
	}

	return false
}
