// Package kdl parses KDL documents into a generic node tree.
//
// A KDL document is a sequence of nodes. Each node has a name, zero or more
// positional arguments, zero or more key=value properties, and an optional
// block of child nodes:
//
//	binds {
//	    Mod+T hotkey-overlay-title="Open a Terminal" { spawn "alacritty"; }
//	    Mod+Q repeat=false { close-window; }
//	}
//
// The package understands two revisions of the language. [DialectCanonical]
// is KDL 2, where keywords are written #true, #false and #null and bare
// identifiers may be used as values. [DialectLegacy] is KDL 1, where keywords
// are bare and raw strings use the r"..." form. [Parse] tries the canonical
// grammar first and retries with the legacy grammar only if that fails; when
// both fail, the canonical error is returned.
//
// The parser is purely structural: node names are never validated, and the
// tree is built fresh on every call.
package kdl
