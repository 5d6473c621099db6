// Package config loads fzf-keys settings from CLI flags and an optional YAML
// file.
//
// Flags take precedence over the file, and the file over built-in defaults.
// The file is validated against a JSON Schema derived from [File] before it
// is decoded, so typos and wrong types are reported instead of ignored:
//
//	sources: [niri, kitty]
//	niri:
//	  config: ~/.config/niri/config.kdl
//	kitty:
//	  binary: /usr/bin/kitty
//	defaults:
//	  repeat: true
//	  allow-when-locked: false
//	  allow-inhibiting: true
//	color: auto
//
// Use [Schema] to print the schema for editor integration.
package config
