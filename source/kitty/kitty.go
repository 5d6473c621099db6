package kitty

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/tidwall/gjson"

	"go.jacobcolvin.com/fzf-keys/keybind"
)

// Program is the program name attached to every discovered binding.
const Program = "kitty"

// Sentinel errors.
var (
	// ErrKitty wraps every failure to run kitty or to understand its output.
	ErrKitty = errors.New("kitty")
	// ErrInvalidCombination is returned by [ParseKeyCombination].
	ErrInvalidCombination = errors.New("invalid key combination")
)

//go:embed dump_keys.py
var dumpScript string

// Runner runs a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Source reads bindings by running kitty.
//
// Create instances with [New].
type Source struct {
	run      Runner
	binary   string
	defaults keybind.Defaults
}

// Option configures a [Source].
type Option func(*Source)

// WithBinary sets the kitty executable. The default is "kitty", looked up
// in PATH.
func WithBinary(path string) Option {
	return func(s *Source) {
		if path != "" {
			s.binary = path
		}
	}
}

// WithRunner replaces the function used to run kitty.
func WithRunner(r Runner) Option {
	return func(s *Source) {
		s.run = r
	}
}

// WithDefaults sets the property values attached to every binding. kitty
// has no per-binding properties, so these are used as-is.
func WithDefaults(d keybind.Defaults) Option {
	return func(s *Source) {
		s.defaults = d
	}
}

// New creates a [Source] with the given options.
func New(opts ...Option) *Source {
	s := &Source{
		run:      execRunner,
		binary:   "kitty",
		defaults: keybind.NiriDefaults(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns [Program].
func (s *Source) Name() string {
	return Program
}

// Discover runs kitty once and decodes its mappings.
func (s *Source) Discover(ctx context.Context) ([]keybind.Keybind, error) {
	out, err := s.run(ctx, s.binary, "+runpy", dumpScript)
	if err != nil {
		return nil, fmt.Errorf("%w: run %s: %w", ErrKitty, s.binary, err)
	}

	return Decode(out, s.defaults)
}

// Decode converts the JSON printed by the dump script into bindings.
//
// The input is an array of objects with "mode", "keys" and "action" string
// fields. Entries with an unparseable key combination are skipped.
func Decode(data []byte, defaults keybind.Defaults) ([]keybind.Keybind, error) {
	data = bytes.TrimSpace(data)
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid json output", ErrKitty)
	}

	res := gjson.ParseBytes(data)
	if !res.IsArray() {
		return nil, fmt.Errorf("%w: expected a json array, got %s", ErrKitty, res.Type)
	}

	var binds []keybind.Keybind

	res.ForEach(func(_, entry gjson.Result) bool {
		keys := entry.Get("keys").String()

		mods, key, err := ParseKeyCombination(keys)
		if err != nil {
			slog.Debug("skipping kitty mapping",
				slog.String("keys", keys),
				slog.Any("error", err),
			)

			return true
		}

		binds = append(binds, keybind.Keybind{
			Program:         Program,
			Modifiers:       mods,
			Key:             key,
			Action:          entry.Get("action").String(),
			Description:     modeDescription(entry.Get("mode").String()),
			Repeat:          defaults.Repeat,
			AllowWhenLocked: defaults.AllowWhenLocked,
			AllowInhibiting: defaults.AllowInhibiting,
		})

		return true
	})

	return binds, nil
}

// modeDescription labels bindings outside kitty's default (unnamed) mode.
func modeDescription(mode string) string {
	if mode == "" {
		return ""
	}

	return "mode " + mode
}

var modifierAliases = map[string]string{
	"ctrl":      keybind.ModCtrl,
	"control":   keybind.ModCtrl,
	"shift":     keybind.ModShift,
	"alt":       keybind.ModAlt,
	"opt":       keybind.ModAlt,
	"option":    keybind.ModAlt,
	"super":     keybind.ModSuper,
	"cmd":       keybind.ModSuper,
	"command":   keybind.ModSuper,
	"kitty_mod": keybind.ModMod,
}

// ParseKeyCombination splits a kitty key combination such as "ctrl+shift+t"
// into canonical modifiers and a key.
//
// A trailing "++" means the key is "+". Multi-key sequences such as
// "ctrl+f>2" keep everything after the first chord's modifiers as the key
// ("f>2"). Unknown modifiers are preserved.
func ParseKeyCombination(combo string) ([]string, string, error) {
	chord, rest, isSeq := strings.Cut(combo, ">")

	var (
		mods []string
		key  string
	)

	if before, ok := strings.CutSuffix(chord, "++"); ok {
		key = "+"
		if before != "" {
			mods = strings.Split(before, "+")
		}
	} else {
		parts := strings.Split(chord, "+")
		mods, key = parts[:len(parts)-1], parts[len(parts)-1]
	}

	if key == "" || (isSeq && rest == "") {
		return nil, "", fmt.Errorf("%w: %q", ErrInvalidCombination, combo)
	}

	canon := make([]string, 0, len(mods))
	seen := make(map[string]bool, len(mods))

	for _, m := range mods {
		if m == "" {
			return nil, "", fmt.Errorf("%w: %q", ErrInvalidCombination, combo)
		}

		c, ok := modifierAliases[strings.ToLower(m)]
		if !ok {
			c = keybind.CanonicalModifier(m)
		}

		if seen[c] {
			continue
		}

		seen[c] = true
		canon = append(canon, c)
	}

	key = keybind.CanonicalKey(key)
	if isSeq {
		key += ">" + rest
	}

	return canon, key, nil
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}

		return nil, err
	}

	return out, nil
}
