package niri

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"go.jacobcolvin.com/fzf-keys/kdl"
	"go.jacobcolvin.com/fzf-keys/keybind"
	"go.jacobcolvin.com/fzf-keys/source"
)

// Program is the program name attached to every discovered binding.
const Program = "niri"

// Source reads bindings from a niri config file.
//
// Create instances with [New].
type Source struct {
	path     string
	defaults keybind.Defaults
}

// Option configures a [Source].
type Option func(*Source)

// WithPath sets the config file to read. An empty path keeps the default
// from [DefaultConfigPath].
func WithPath(path string) Option {
	return func(s *Source) {
		if path != "" {
			s.path = path
		}
	}
}

// WithDefaults sets the property values used when a binding does not set
// them.
func WithDefaults(d keybind.Defaults) Option {
	return func(s *Source) {
		s.defaults = d
	}
}

// New creates a [Source] reading [DefaultConfigPath] with
// [keybind.NiriDefaults], modified by opts.
func New(opts ...Option) *Source {
	s := &Source{
		path:     DefaultConfigPath(),
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

// Path returns the config file the source reads.
func (s *Source) Path() string {
	return s.path
}

// Discover reads and parses the config file and extracts its bindings.
func (s *Source) Discover(ctx context.Context) ([]keybind.Keybind, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	data, err := source.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	binds, err := Parse(data, s.defaults)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	return binds, nil
}

// Parse parses a niri config and extracts its bindings.
func Parse(src []byte, defaults keybind.Defaults) ([]keybind.Keybind, error) {
	doc, err := kdl.Parse(src)
	if err != nil {
		return nil, err
	}

	slog.Debug("parsed niri config",
		slog.String("dialect", doc.Dialect.String()),
		slog.Int("nodes", len(doc.Nodes)),
	)

	return Extract(doc, defaults), nil
}

// DefaultConfigPath returns the config file niri itself would load: the
// NIRI_CONFIG environment variable if set, otherwise config.kdl under
// $XDG_CONFIG_HOME/niri, falling back to ~/.config/niri.
func DefaultConfigPath() string {
	if p := os.Getenv("NIRI_CONFIG"); p != "" {
		return p
	}

	dir := os.Getenv("XDG_CONFIG_HOME")
	if !filepath.IsAbs(dir) {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "~"
		}

		dir = filepath.Join(home, ".config")
	}

	return filepath.Join(dir, "niri", "config.kdl")
}
