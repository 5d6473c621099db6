// Package stringtest provides helpers for writing multi-line test fixtures
// inline, such as KDL configs and expected fzf output.
package stringtest

import "strings"

// Input dedents a raw string literal so fixtures can be indented along with
// the surrounding test code. One leading and one trailing newline are
// removed, the common indentation of all non-blank lines is stripped, and
// whitespace-only lines become empty.
//
// Example:
//
//	src := stringtest.Input(`
//		binds {
//			Mod+T { spawn "alacritty"; }
//		}
//	`) // -> "binds {\n\tMod+T { spawn \"alacritty\"; }\n}\n"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")

	indent := ""
	found := false

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		lead := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !found || len(lead) < len(indent) {
			indent = lead
			found = true
		}
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}

		lines[i] = strings.TrimPrefix(line, indent)
	}

	return strings.Join(lines, "\n")
}

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected output one line per argument.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"niri: Mod+T — spawn \"alacritty\";",
//		"niri: Mod+Q (no-repeat) — close-window;",
//	)
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}
