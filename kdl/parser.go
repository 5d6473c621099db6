package kdl

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const bom = "\uFEFF"

// parser is a recursive-descent parser for one dialect. It is created per
// call and never reused.
type parser struct {
	src     string
	off     int
	dialect Dialect
	// pos caches the last position computed by [parser.position]. Nodes are
	// visited in source order, so lookups resume from it instead of
	// rescanning the whole input.
	pos Position
}

func (p *parser) document() (*Document, error) {
	p.off = 0
	if strings.HasPrefix(p.src, bom) {
		p.off = len(bom)
	}

	nodes, err := p.nodes(-1)
	if err != nil {
		return nil, err
	}

	return &Document{Nodes: nodes, Dialect: p.dialect}, nil
}

// nodes parses a sequence of nodes. open is the offset of the node that owns
// the children block being parsed, or -1 at the top level.
func (p *parser) nodes(open int) ([]*Node, error) {
	var out []*Node

	for {
		err := p.skipLineSpace()
		if err != nil {
			return nil, err
		}

		if p.eof() {
			if open >= 0 {
				return nil, p.errorf(open, "unterminated children block")
			}

			return out, nil
		}

		if p.hasPrefix("}") {
			if open < 0 {
				return nil, p.errorf(p.off, "unexpected '}'")
			}

			p.off++

			return out, nil
		}

		discard := false

		if p.hasPrefix("/-") {
			p.off += 2
			discard = true

			err = p.skipSlashdashSpace()
			if err != nil {
				return nil, err
			}
		}

		n, err := p.node()
		if err != nil {
			return nil, err
		}

		if !discard {
			out = append(out, n)
		}
	}
}

func (p *parser) node() (*Node, error) {
	start := p.off
	n := &Node{Pos: p.position(start)}

	if p.hasPrefix("(") {
		typ, err := p.typeAnnotation()
		if err != nil {
			return nil, err
		}

		n.Type = typ
	}

	name, err := p.nodeName()
	if err != nil {
		return nil, err
	}

	n.Name = name

	hasChildren := false

	for {
		spaced, err := p.skipNodeSpace()
		if err != nil {
			return nil, err
		}

		if p.atTerminator() {
			p.terminate()

			return n, nil
		}

		discard := false

		if p.hasPrefix("/-") {
			p.off += 2
			discard = true
			spaced = true

			err = p.skipSlashdashSpace()
			if err != nil {
				return nil, err
			}
		}

		if p.hasPrefix("{") {
			if hasChildren && !discard {
				return nil, p.errorf(p.off, "node %q has more than one children block", name)
			}

			p.off++

			children, err := p.nodes(start)
			if err != nil {
				return nil, err
			}

			if !discard {
				n.Children = children
				hasChildren = true
			}

			continue
		}

		if hasChildren {
			return nil, p.errorf(p.off, "unexpected entry after children block of node %q", name)
		}

		if !spaced {
			return nil, p.errorf(p.off, "expected whitespace before entry")
		}

		target := n
		if discard {
			target = &Node{}
		}

		err = p.entry(target)
		if err != nil {
			return nil, err
		}
	}
}

func (p *parser) nodeName() (string, error) {
	if p.atStringStart() {
		return p.stringLiteral()
	}

	start := p.off
	if p.dialect == DialectCanonical && p.hasPrefix("#") {
		return "", p.errorf(start, "keyword cannot be used as a node name")
	}

	tok := p.bareToken()
	if tok == "" {
		return "", p.unexpected()
	}

	err := p.checkIdentifier(tok, start)
	if err != nil {
		return "", err
	}

	return tok, nil
}

// entry parses one argument or property and adds it to n.
func (p *parser) entry(n *Node) error {
	if p.hasPrefix("(") {
		v, err := p.annotatedValue()
		if err != nil {
			return err
		}

		n.Args = append(n.Args, v)

		return nil
	}

	start := p.off

	if p.atStringStart() {
		s, err := p.stringLiteral()
		if err != nil {
			return err
		}

		if p.propertyFollows() {
			return p.property(n, s)
		}

		n.Args = append(n.Args, StringValue(s))

		return nil
	}

	if p.dialect == DialectCanonical && p.hasPrefix("#") {
		v, err := p.keyword()
		if err != nil {
			return err
		}

		n.Args = append(n.Args, v)

		return nil
	}

	tok := p.bareToken()
	if tok == "" {
		return p.unexpected()
	}

	if p.looksNumeric(tok) {
		v, err := p.number(tok, start)
		if err != nil {
			return err
		}

		n.Args = append(n.Args, v)

		return nil
	}

	if p.propertyFollows() {
		err := p.checkIdentifier(tok, start)
		if err != nil {
			return err
		}

		return p.property(n, tok)
	}

	v, err := p.bareValue(tok, start)
	if err != nil {
		return err
	}

	n.Args = append(n.Args, v)

	return nil
}

// propertyFollows reports whether an '=' follows the current position and,
// if so, leaves the parser positioned on it. KDL 2 allows whitespace before
// the '='; KDL 1 does not.
func (p *parser) propertyFollows() bool {
	if p.dialect == DialectLegacy {
		return p.hasPrefix("=")
	}

	save := p.off
	for !p.eof() && isWhitespace(p.peek()) {
		p.next()
	}

	if p.hasPrefix("=") {
		return true
	}

	p.off = save

	return false
}

func (p *parser) property(n *Node, key string) error {
	p.off++ // '='

	if p.dialect == DialectCanonical {
		for !p.eof() && isWhitespace(p.peek()) {
			p.next()
		}
	}

	var (
		v   Value
		err error
	)

	if p.hasPrefix("(") {
		v, err = p.annotatedValue()
	} else {
		v, err = p.value()
	}

	if err != nil {
		return err
	}

	n.setProp(key, v)

	return nil
}

func (p *parser) annotatedValue() (Value, error) {
	typ, err := p.typeAnnotation()
	if err != nil {
		return Value{}, err
	}

	v, err := p.value()
	if err != nil {
		return Value{}, err
	}

	v.Type = typ

	return v, nil
}

func (p *parser) value() (Value, error) {
	if p.atStringStart() {
		s, err := p.stringLiteral()
		if err != nil {
			return Value{}, err
		}

		return StringValue(s), nil
	}

	if p.dialect == DialectCanonical && p.hasPrefix("#") {
		return p.keyword()
	}

	start := p.off

	tok := p.bareToken()
	if tok == "" {
		return Value{}, p.unexpected()
	}

	if p.looksNumeric(tok) {
		return p.number(tok, start)
	}

	return p.bareValue(tok, start)
}

// bareValue interprets an unquoted, non-numeric token in value position.
func (p *parser) bareValue(tok string, start int) (Value, error) {
	if p.dialect == DialectLegacy {
		switch tok {
		case "true", "false":
			return BoolValue(tok == "true"), nil
		case "null":
			return NullValue(), nil
		}

		return Value{}, p.errorf(start, "bare identifier %q cannot be used as a value", tok)
	}

	err := p.checkIdentifier(tok, start)
	if err != nil {
		return Value{}, err
	}

	return StringValue(tok), nil
}

// keyword parses a KDL 2 keyword such as #true or #-inf.
func (p *parser) keyword() (Value, error) {
	start := p.off
	p.off++ // '#'

	tok := p.bareToken()
	switch tok {
	case "true", "false":
		return BoolValue(tok == "true"), nil
	case "null":
		return NullValue(), nil
	case "inf", "-inf", "nan":
		return Value{Kind: KindNumber, Text: tok}, nil
	}

	return Value{}, p.errorf(start, "unknown keyword %q", "#"+tok)
}

func (p *parser) typeAnnotation() (string, error) {
	start := p.off
	p.off++ // '('

	p.skipInlineWhitespace()

	var (
		name string
		err  error
	)

	if p.atStringStart() {
		name, err = p.stringLiteral()
		if err != nil {
			return "", err
		}
	} else {
		tokStart := p.off

		name = p.bareToken()
		if name == "" {
			return "", p.unexpected()
		}

		err = p.checkIdentifier(name, tokStart)
		if err != nil {
			return "", err
		}
	}

	p.skipInlineWhitespace()

	if !p.hasPrefix(")") {
		return "", p.errorf(start, "unterminated type annotation")
	}

	p.off++

	return name, nil
}

// checkIdentifier rejects bare tokens that are reserved or look like
// numbers.
func (p *parser) checkIdentifier(tok string, start int) error {
	if p.looksNumeric(tok) {
		return p.errorf(start, "identifier %q cannot start like a number", tok)
	}

	switch p.dialect {
	case DialectLegacy:
		switch tok {
		case "true", "false", "null":
			return p.errorf(start, "keyword %q cannot be used as an identifier", tok)
		}

	case DialectCanonical:
		switch tok {
		case "true", "false", "null", "inf", "-inf", "nan":
			return p.errorf(start, "keyword %q must be written as %q", tok, "#"+tok)
		}

		if isDotNumber(tok) {
			return p.errorf(start, "invalid number %q", tok)
		}
	}

	return nil
}

func (p *parser) atTerminator() bool {
	return p.eof() || p.newlineLen() > 0 || p.hasPrefix(";") || p.hasPrefix("}") || p.hasPrefix("//")
}

// terminate consumes a node terminator. A closing brace is left in place for
// the enclosing block.
func (p *parser) terminate() {
	switch {
	case p.hasPrefix(";"):
		p.off++
	case p.hasPrefix("//"):
		p.skipLineComment()
	default:
		p.off += p.newlineLen()
	}
}

func (p *parser) unexpected() error {
	if p.eof() {
		return p.errorf(p.off, "unexpected end of input")
	}

	return p.errorf(p.off, "unexpected character %q", p.peek())
}

func (p *parser) errorf(off int, format string, args ...any) error {
	return &ParseError{
		Dialect: p.dialect,
		Pos:     p.position(off),
		Reason:  fmt.Sprintf(format, args...),
	}
}

// position converts a byte offset into a line and column.
func (p *parser) position(off int) Position {
	pos := Position{Line: 1, Column: 1}
	if p.pos.Line > 0 && p.pos.Offset <= off {
		pos = p.pos
	}

	i := pos.Offset
	for i < off && i < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[i:])

		switch {
		case r == '\r' && strings.HasPrefix(p.src[i:], "\r\n"):
			pos.Line++
			pos.Column = 1
			size = 2
		case isNewlineRune(r):
			pos.Line++
			pos.Column = 1
		default:
			pos.Column++
		}

		i += size
	}

	// A CRLF pair can carry the scan one byte past off; that state is still
	// valid to resume from.
	pos.Offset = i
	p.pos = pos

	return Position{Offset: off, Line: pos.Line, Column: pos.Column}
}
