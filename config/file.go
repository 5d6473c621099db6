package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/fzf-keys/keybind"
)

// Sentinel errors. Both indicate a usage problem rather than a failing
// source.
var (
	ErrInvalidConfig = errors.New("invalid config file")
	ErrInvalidFlag   = errors.New("invalid flag")
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// File is the structure of the settings file.
type File struct {
	Sources  []string `json:"sources,omitempty"  yaml:"sources,omitempty"  jsonschema:"sources to query, in output order"`
	Niri     Niri     `json:"niri,omitzero"      yaml:"niri,omitempty"     jsonschema:"niri source settings"`
	Kitty    Kitty    `json:"kitty,omitzero"     yaml:"kitty,omitempty"    jsonschema:"kitty source settings"`
	Defaults Defaults `json:"defaults,omitzero"  yaml:"defaults,omitempty" jsonschema:"values for binding properties a config leaves unset"`
	Color    string   `json:"color,omitempty"    yaml:"color,omitempty"    jsonschema:"when to color output lines"`
}

// Niri holds settings for the niri source.
type Niri struct {
	Config string `json:"config,omitempty" yaml:"config,omitempty" jsonschema:"path to the niri config file"`
}

// Kitty holds settings for the kitty source.
type Kitty struct {
	Binary string `json:"binary,omitempty" yaml:"binary,omitempty" jsonschema:"kitty executable"`
}

// Defaults overrides [keybind.NiriDefaults]. Unset fields keep the built-in
// value.
type Defaults struct {
	Repeat          *bool `json:"repeat,omitempty"            yaml:"repeat,omitempty"            jsonschema:"whether bindings repeat while held"`
	AllowWhenLocked *bool `json:"allow-when-locked,omitempty" yaml:"allow-when-locked,omitempty" jsonschema:"whether bindings work on the lock screen"`
	AllowInhibiting *bool `json:"allow-inhibiting,omitempty"  yaml:"allow-inhibiting,omitempty"  jsonschema:"whether shortcut inhibitors can suppress bindings"`
}

// Apply returns base with every set field of d applied.
func (d Defaults) Apply(base keybind.Defaults) keybind.Defaults {
	if d.Repeat != nil {
		base.Repeat = *d.Repeat
	}

	if d.AllowWhenLocked != nil {
		base.AllowWhenLocked = *d.AllowWhenLocked
	}

	if d.AllowInhibiting != nil {
		base.AllowInhibiting = *d.AllowInhibiting
	}

	return base
}

var schemaOnce = sync.OnceValues(buildSchema)

// Schema returns the JSON Schema of [File].
func Schema() (*jsonschema.Schema, error) {
	s, err := schemaOnce()
	if err != nil {
		return nil, err
	}

	return s.CloneSchemas(), nil
}

func buildSchema() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[File](nil)
	if err != nil {
		return nil, fmt.Errorf("infer settings schema: %w", err)
	}

	s.Schema = "https://json-schema.org/draft/2020-12/schema"
	s.Title = "fzf-keys settings"

	if color, ok := s.Properties["color"]; ok {
		color.Enum = []any{ColorAuto, ColorAlways, ColorNever}
	}

	return s, nil
}

var resolvedOnce = sync.OnceValues(func() (*jsonschema.Resolved, error) {
	s, err := schemaOnce()
	if err != nil {
		return nil, err
	}

	return s.Resolve(nil)
})

// Parse validates and decodes a settings document. Empty input yields an
// empty [File].
func Parse(data []byte) (*File, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &File{}, nil
	}

	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	var instance any

	err = json.Unmarshal(jsonData, &instance)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	// A document holding only comments decodes to null.
	if instance == nil {
		return &File{}, nil
	}

	resolved, err := resolvedOnce()
	if err != nil {
		return nil, err
	}

	err = resolved.Validate(instance)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	var f File

	err = yaml.UnmarshalWithOptions(data, &f, yaml.DisallowUnknownField())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	f.Niri.Config = ExpandHome(f.Niri.Config)
	f.Kitty.Binary = ExpandHome(f.Kitty.Binary)

	return &f, nil
}

// Load reads and parses the settings file at path. A missing file is not an
// error unless required is set.
func Load(path string, required bool) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return &File{}, nil
		}

		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/fzf-keys/config.yaml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset or relative.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(ExpandHome("~"), ".config")
	}

	return filepath.Join(dir, "fzf-keys", "config.yaml")
}

// ExpandHome replaces a leading "~" path element with the user's home
// directory. Other paths are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
