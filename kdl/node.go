package kdl

import (
	"math/big"
	"strconv"
	"strings"
)

// Kind identifies the type of a [Value].
type Kind int

const (
	// KindString is a quoted, raw, multi-line, or bare identifier string.
	KindString Kind = iota + 1
	// KindNumber is an integer or floating point number.
	KindNumber
	// KindBool is true or false.
	KindBool
	// KindNull is null.
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is an argument or property value.
//
// Text holds the decoded string for [KindString], a normalized decimal
// literal for [KindNumber] ("16" for 0x10, "inf", "nan"), and "true",
// "false", or "null" for the keyword kinds. Normalization makes values from
// both dialects compare equal.
type Value struct {
	// Type is the value's type annotation, e.g. "u8" for (u8)10.
	Type string
	Text string
	Kind Kind
	// integer reports whether a number has no fractional part or exponent.
	integer bool
}

// StringValue returns a string [Value].
func StringValue(s string) Value {
	return Value{Kind: KindString, Text: s}
}

// BoolValue returns a boolean [Value].
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Text: strconv.FormatBool(b)}
}

// NullValue returns a null [Value].
func NullValue() Value {
	return Value{Kind: KindNull, Text: "null"}
}

// IntValue returns an integer [Value].
func IntValue(n int64) Value {
	return Value{Kind: KindNumber, Text: strconv.FormatInt(n, 10), integer: true}
}

// String renders v as a dialect-independent token: strings are quoted and
// escaped, everything else is written as its Text.
func (v Value) String() string {
	if v.Kind == KindString {
		return Quote(v.Text)
	}

	return v.Text
}

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}

	return v.Text, true
}

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}

	return v.Text == "true", true
}

// AsInt returns the integer held by v. It fails for non-integers and for
// integers that do not fit in an int64.
func (v Value) AsInt() (int64, bool) {
	if v.Kind != KindNumber || !v.integer {
		return 0, false
	}

	n, ok := new(big.Int).SetString(v.Text, 10)
	if !ok || !n.IsInt64() {
		return 0, false
	}

	return n.Int64(), true
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// Node is one node of a parsed document.
type Node struct {
	// Props maps property names to values. When a property is repeated the
	// last occurrence wins.
	Props map[string]Value
	// Type is the node's type annotation, e.g. "tag" for (tag)node.
	Type string
	Name string
	// Args holds positional arguments in document order.
	Args []Value
	// PropOrder lists property names in the order they first appeared.
	PropOrder []string
	// Children holds child nodes in document order. It is empty for nodes
	// without a children block.
	Children []*Node
	// Pos is the position of the node's first character.
	Pos Position
}

// Prop returns the named property.
func (n *Node) Prop(name string) (Value, bool) {
	v, ok := n.Props[name]

	return v, ok
}

func (n *Node) setProp(name string, v Value) {
	if n.Props == nil {
		n.Props = make(map[string]Value)
	}

	if _, ok := n.Props[name]; !ok {
		n.PropOrder = append(n.PropOrder, name)
	}

	n.Props[name] = v
}

// Document is a parsed KDL document.
type Document struct {
	Nodes []*Node
	// Dialect is the grammar that successfully parsed the document.
	Dialect Dialect
}

// Find returns all top-level nodes with the given name, in document order.
func (d *Document) Find(name string) []*Node {
	var out []*Node

	for _, n := range d.Nodes {
		if n.Name == name {
			out = append(out, n)
		}
	}

	return out
}

// Position is a location in the source text. Line and Column are 1-based;
// Column counts runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Quote returns s as a double-quoted KDL string with backslash escapes for
// quotes, backslashes, and control characters.
func Quote(s string) string {
	var sb strings.Builder

	sb.Grow(len(s) + 2)
	sb.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if r < 0x20 || r == 0x7f {
				sb.WriteString(`\u{` + strconv.FormatInt(int64(r), 16) + `}`)
				continue
			}

			sb.WriteRune(r)
		}
	}

	sb.WriteByte('"')

	return sb.String()
}
