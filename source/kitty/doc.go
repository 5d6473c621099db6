// Package kitty discovers keybindings from the kitty terminal emulator.
//
// Rather than re-implementing kitty's config parser, the source asks kitty
// itself: it runs "kitty +runpy" with a small script that loads the user's
// config, expands kitty_mod, and prints every mapping of every keyboard mode
// as JSON. The bindings reported are therefore the ones kitty actually uses,
// including defaults that were not remapped.
package kitty
