package keybind

import "strings"

// Canonical modifier names.
const (
	ModMod            = "Mod"
	ModSuper          = "Super"
	ModAlt            = "Alt"
	ModCtrl           = "Ctrl"
	ModShift          = "Shift"
	ModISOLevel3Shift = "ISO_Level3_Shift"
	ModISOLevel5Shift = "ISO_Level5_Shift"
)

// modifierAliases maps lowercased modifier spellings to canonical names.
var modifierAliases = map[string]string{
	"mod":              ModMod,
	"super":            ModSuper,
	"win":              ModSuper,
	"alt":              ModAlt,
	"ctrl":             ModCtrl,
	"control":          ModCtrl,
	"shift":            ModShift,
	"iso_level3_shift": ModISOLevel3Shift,
	"mod5":             ModISOLevel3Shift,
	"iso_level5_shift": ModISOLevel5Shift,
	"mod3":             ModISOLevel5Shift,
}

// CanonicalModifier returns the canonical name for a modifier spelling.
// Unknown names are returned unchanged. CanonicalModifier is idempotent.
func CanonicalModifier(name string) string {
	if canon, ok := modifierAliases[strings.ToLower(name)]; ok {
		return canon
	}

	return name
}

// IsKnownModifier reports whether name is a canonical modifier or one of its
// aliases.
func IsKnownModifier(name string) bool {
	_, ok := modifierAliases[strings.ToLower(name)]

	return ok
}

// CanonicalModifiers canonicalizes names and removes duplicates, keeping the
// first occurrence of each canonical modifier.
func CanonicalModifiers(names []string) []string {
	out := make([]string, 0, len(names))

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		canon := CanonicalModifier(name)
		if seen[canon] {
			continue
		}

		seen[canon] = true
		out = append(out, canon)
	}

	return out
}
