// Package keybind defines the canonical [Keybind] record shared by every
// discovery source, along with the alias tables that normalize modifier and
// key names and the single-line renderer used for fuzzy search.
//
// Sources build a [Keybind] in one step once all of its fields are known:
//
//	kb := keybind.Keybind{
//	    Modifiers: keybind.CanonicalModifiers([]string{"Mod", "Control"}),
//	    Key:       keybind.CanonicalKey("xf86audiomute"),
//	    Action:    `spawn "wpctl";`,
//	    Program:   "niri",
//	    Repeat:    true,
//	}
//
// Rendering produces exactly one line per record:
//
//	niri: Mod+Ctrl+XF86AudioMute — spawn "wpctl";
//
// See [Render] for the full line format.
//
// # Canonicalization
//
// [CanonicalModifier] and [CanonicalKey] use static, case-insensitive,
// exact-match tables. Names that are not in a table are returned verbatim.
package keybind
