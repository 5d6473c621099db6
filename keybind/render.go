package keybind

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ActionSeparator separates the action from the preceding fields of a
// rendered line. The action is always the last field.
const ActionSeparator = " — "

var lineFolder = strings.NewReplacer(
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
	"\t", " ",
	"\v", " ",
	"\f", " ",
	"\u0085", " ",
	"\u2028", " ",
	"\u2029", " ",
)

// fieldEscaper keeps text from closing the bracketed description or
// introducing a second action separator.
var fieldEscaper = strings.NewReplacer(
	`\`, `\\`,
	"]", `\]`,
	ActionSeparator, " - ",
)

// separatorEscaper is applied to the program and combination, which are not
// bracketed.
var separatorEscaper = strings.NewReplacer(ActionSeparator, " - ")

// Annotations returns short labels for properties that differ from niri's
// documented defaults, in a fixed order: "no-repeat", "cooldown=<n>ms",
// "allow-locked", "no-inhibit".
func (k Keybind) Annotations() []string {
	var out []string

	if !k.Repeat {
		out = append(out, "no-repeat")
	}

	if k.Cooldown > 0 {
		out = append(out, "cooldown="+strconv.FormatInt(k.Cooldown.Milliseconds(), 10)+"ms")
	}

	if k.AllowWhenLocked {
		out = append(out, "allow-locked")
	}

	if !k.AllowInhibiting {
		out = append(out, "no-inhibit")
	}

	return out
}

// String renders k as a single unstyled line. See [Render].
func (k Keybind) String() string {
	return Render(k)
}

// Render renders k as a single line of text:
//
//	<program>: <Mod>+<Mod>+<Key> [<description>] (<annotations>) — <action>
//
// The description, annotations, and action fields are omitted when empty,
// along with their punctuation. Line breaks and tabs inside any field are
// folded to spaces, so the result never contains a newline. Inside the
// description, "\" and "]" are escaped with a backslash, and " — " becomes
// " - " in every field but the action, so the first " — " of a line always
// starts the action.
func Render(k Keybind) string {
	var r Renderer

	return r.Render(k)
}

// Renderer renders [Keybind] values as lines, optionally decorated with ANSI
// styles for consumers such as "fzf --ansi".
//
// The zero value renders plain text. Create styled instances with
// [NewRenderer].
type Renderer struct {
	program     lipgloss.Style
	combo       lipgloss.Style
	description lipgloss.Style
	annotations lipgloss.Style
	styled      bool
}

// NewRenderer creates a [Renderer] for output written to w. When styled is
// true, fields are colored with the ANSI 16-color palette regardless of
// whether w is a terminal.
func NewRenderer(w io.Writer, styled bool) *Renderer {
	if !styled {
		return &Renderer{}
	}

	lr := lipgloss.NewRenderer(w)
	lr.SetColorProfile(termenv.ANSI)

	return &Renderer{
		program:     lr.NewStyle().Foreground(lipgloss.Color("5")),
		combo:       lr.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		description: lr.NewStyle().Foreground(lipgloss.Color("2")),
		annotations: lr.NewStyle().Foreground(lipgloss.Color("3")),
		styled:      true,
	}
}

// Render renders k as a single line. See [Render] for the format.
func (r *Renderer) Render(k Keybind) string {
	var sb strings.Builder

	if k.Program != "" {
		sb.WriteString(r.style(r.program, separatorEscaper.Replace(fold(k.Program))+":"))
		sb.WriteByte(' ')
	}

	sb.WriteString(r.style(r.combo, separatorEscaper.Replace(fold(k.Combo()))))

	if k.Description != "" {
		sb.WriteByte(' ')
		sb.WriteString(r.style(r.description, "["+fieldEscaper.Replace(fold(k.Description))+"]"))
	}

	if annots := k.Annotations(); len(annots) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(r.style(r.annotations, "("+strings.Join(annots, ", ")+")"))
	}

	if k.Action != "" {
		sb.WriteString(ActionSeparator)
		sb.WriteString(fold(k.Action))
	}

	return sb.String()
}

// WriteLines writes one rendered line per binding to w, each terminated by a
// newline.
func (r *Renderer) WriteLines(w io.Writer, binds []Keybind) error {
	for _, k := range binds {
		_, err := io.WriteString(w, r.Render(k)+"\n")
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}

	return s.Render(text)
}

func fold(s string) string {
	return lineFolder.Replace(s)
}
