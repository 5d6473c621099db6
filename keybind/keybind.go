package keybind

import (
	"slices"
	"strings"
	"time"
)

// Keybind is one modifier+key combination bound to an action in some program.
//
// Sources construct a Keybind with a single composite literal and never
// modify it afterwards. Key is always non-empty; Modifiers may be empty.
type Keybind struct {
	// Modifiers holds canonical modifier names in first-seen order, without
	// duplicates. See [CanonicalModifiers].
	Modifiers []string
	// Key is the canonical key name. See [CanonicalKey].
	Key string
	// Action is the bound action, rendered verbatim by the source.
	Action string
	// Description is an optional human-readable label. Empty means absent.
	Description string
	// Program is the originating program, set by the source.
	Program string

	// Cooldown is the minimum interval between triggers. Zero means the
	// binding is not rate limited.
	Cooldown time.Duration
	// Repeat reports whether the action repeats while the key is held.
	Repeat bool
	// AllowWhenLocked reports whether the binding fires on a locked session.
	AllowWhenLocked bool
	// AllowInhibiting reports whether keyboard-shortcut inhibitors may
	// suppress the binding.
	AllowInhibiting bool
}

// Combo returns the modifiers and key joined with "+", e.g. "Mod+Shift+Q".
func (k Keybind) Combo() string {
	if len(k.Modifiers) == 0 {
		return k.Key
	}

	parts := make([]string, 0, len(k.Modifiers)+1)
	parts = append(parts, k.Modifiers...)
	parts = append(parts, k.Key)

	return strings.Join(parts, "+")
}

// HasModifier reports whether mod (after canonicalization) is one of the
// binding's modifiers.
func (k Keybind) HasModifier(mod string) bool {
	return slices.Contains(k.Modifiers, CanonicalModifier(mod))
}

// Defaults holds the values used for binding properties that a configuration
// leaves unset.
type Defaults struct {
	Repeat          bool
	AllowWhenLocked bool
	AllowInhibiting bool
}

// NiriDefaults returns the property defaults documented by niri: bindings
// repeat, are disabled on the lock screen, and can be inhibited.
func NiriDefaults() Defaults {
	return Defaults{
		Repeat:          true,
		AllowWhenLocked: false,
		AllowInhibiting: true,
	}
}
