package niri

import (
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"go.jacobcolvin.com/fzf-keys/kdl"
	"go.jacobcolvin.com/fzf-keys/keybind"
)

// Binding properties recognized on the children of a binds block.
const (
	PropTitle           = "hotkey-overlay-title"
	PropRepeat          = "repeat"
	PropCooldown        = "cooldown-ms"
	PropAllowWhenLocked = "allow-when-locked"
	PropAllowInhibiting = "allow-inhibiting"
)

// Extract returns one [keybind.Keybind] for every qualifying child of every
// top-level "binds" node in doc, in document order. Children whose names do
// not look like key combinations are skipped.
func Extract(doc *kdl.Document, defaults keybind.Defaults) []keybind.Keybind {
	var out []keybind.Keybind

	for _, binds := range doc.Find("binds") {
		for _, n := range binds.Children {
			if !IsCombination(n.Name) {
				slog.Debug("skipping node in binds block",
					slog.String("name", n.Name),
					slog.String("pos", n.Pos.String()),
				)

				continue
			}

			out = append(out, bindFromNode(n, defaults))
		}
	}

	return out
}

// IsCombination reports whether name has the shape of a key combination:
// either "+"-separated non-empty segments, or a single name that does not
// start with a lowercase letter (such as "XF86AudioMute" or "Print").
func IsCombination(name string) bool {
	if strings.Contains(name, "+") {
		for seg := range strings.SplitSeq(name, "+") {
			if seg == "" {
				return false
			}
		}

		return true
	}

	r, _ := utf8.DecodeRuneInString(name)

	return name != "" && !unicode.IsLower(r)
}

func bindFromNode(n *kdl.Node, defaults keybind.Defaults) keybind.Keybind {
	segs := strings.Split(n.Name, "+")

	return keybind.Keybind{
		Program:         Program,
		Modifiers:       keybind.CanonicalModifiers(segs[:len(segs)-1]),
		Key:             keybind.CanonicalKey(segs[len(segs)-1]),
		Action:          FormatAction(n.Children),
		Description:     title(n),
		Repeat:          boolProp(n, PropRepeat, defaults.Repeat),
		Cooldown:        cooldown(n),
		AllowWhenLocked: boolProp(n, PropAllowWhenLocked, defaults.AllowWhenLocked),
		AllowInhibiting: boolProp(n, PropAllowInhibiting, defaults.AllowInhibiting),
	}
}

// title returns the overlay title. null hides the binding from niri's
// overlay, which is treated as no description.
func title(n *kdl.Node) string {
	v, ok := n.Prop(PropTitle)
	if !ok || v.IsNull() {
		return ""
	}

	s, ok := v.AsString()
	if !ok {
		logBadProp(n, PropTitle, v)
		return ""
	}

	return s
}

func boolProp(n *kdl.Node, name string, def bool) bool {
	v, ok := n.Prop(name)
	if !ok {
		return def
	}

	b, ok := v.AsBool()
	if !ok {
		logBadProp(n, name, v)
		return def
	}

	return b
}

func cooldown(n *kdl.Node) time.Duration {
	v, ok := n.Prop(PropCooldown)
	if !ok {
		return 0
	}

	ms, ok := v.AsInt()
	if !ok || ms < 0 {
		logBadProp(n, PropCooldown, v)
		return 0
	}

	return time.Duration(ms) * time.Millisecond
}

func logBadProp(n *kdl.Node, name string, v kdl.Value) {
	slog.Debug("ignoring invalid binding property",
		slog.String("bind", n.Name),
		slog.String("property", name),
		slog.String("value", v.String()),
		slog.String("pos", n.Pos.String()),
	)
}

// FormatAction renders action nodes as KDL-like text: each node as its
// name, arguments, and properties, terminated by ";" and separated by a
// space. Nested children are rendered inside braces. Values are written in
// a dialect-independent form, so KDL 1 and KDL 2 configs produce the same
// text.
func FormatAction(nodes []*kdl.Node) string {
	var sb strings.Builder

	writeNodes(&sb, nodes)

	return sb.String()
}

func writeNodes(sb *strings.Builder, nodes []*kdl.Node) {
	for i, n := range nodes {
		if i > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteString(n.Name)

		for _, a := range n.Args {
			sb.WriteByte(' ')
			sb.WriteString(a.String())
		}

		for _, k := range n.PropOrder {
			sb.WriteByte(' ')
			sb.WriteString(k)
			sb.WriteByte('=')
			sb.WriteString(n.Props[k].String())
		}

		if len(n.Children) > 0 {
			sb.WriteString(" { ")
			writeNodes(sb, n.Children)
			sb.WriteString(" }")
		}

		sb.WriteByte(';')
	}
}
