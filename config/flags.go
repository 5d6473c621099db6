package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/fzf-keys/keybind"
)

// Flags holds CLI flag names, allowing callers to customize flag names while
// keeping sensible defaults via [NewConfig].
type Flags struct {
	Config     string
	Sources    string
	Kitty      string
	NiriConfig string
	Query      string
	Output     string
	Color      string
}

// Config holds CLI flag values.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.Resolve] to merge them with a
// settings [File].
type Config struct {
	// Registry lists the source names offered as sources flag completions.
	Registry   []string
	Flags      Flags
	Config     string
	NiriConfig string
	Query      string
	Output     string
	Color      string
	Sources    []string
	Kitty      bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Config:     "config",
		Sources:    "sources",
		Kitty:      "kitty",
		NiriConfig: "niri-config",
		Query:      "query",
		Output:     "output",
		Color:      "color",
	}

	return &Config{Flags: f}
}

// RegisterFlags adds flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Config, c.Flags.Config, "",
		fmt.Sprintf("settings file (default %s if it exists)", DefaultPath()))
	flags.StringSliceVarP(&c.Sources, c.Flags.Sources, "s", []string{"niri"},
		"comma-separated list of sources to query, in output order")
	flags.BoolVarP(&c.Kitty, c.Flags.Kitty, "k", false,
		"also query kitty (requires kitty in PATH)")
	flags.StringVarP(&c.NiriConfig, c.Flags.NiriConfig, "n", "",
		"path to the niri config file (default $NIRI_CONFIG or $XDG_CONFIG_HOME/niri/config.kdl)")
	flags.StringVarP(&c.Query, c.Flags.Query, "q", "",
		"only print bindings fuzzy-matching this query")
	flags.StringVarP(&c.Output, c.Flags.Output, "o", OutputText,
		fmt.Sprintf("output format, one of: %s", []string{OutputText, OutputJSON}))
	flags.StringVar(&c.Color, c.Flags.Color, ColorAuto,
		fmt.Sprintf("color output lines, one of: %s", []string{ColorAuto, ColorAlways, ColorNever}))
}

// RegisterCompletions registers shell completions for the flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	names := slices.Clone(c.Registry)
	slices.Sort(names)

	fixed := map[string][]string{
		c.Flags.Sources: names,
		c.Flags.Output:  {OutputText, OutputJSON},
		c.Flags.Color:   {ColorAuto, ColorAlways, ColorNever},
	}

	for _, flag := range []string{c.Flags.Sources, c.Flags.Output, c.Flags.Color} {
		err := cmd.RegisterFlagCompletionFunc(flag,
			cobra.FixedCompletions(fixed[flag], cobra.ShellCompDirectiveNoFileComp))
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	err := cmd.RegisterFlagCompletionFunc(c.Flags.Query,
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		})
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Query, err)
	}

	for _, flag := range []string{c.Flags.Config, c.Flags.NiriConfig} {
		regErr := cmd.MarkFlagFilename(flag, "yaml", "yml", "kdl")
		if regErr != nil {
			return fmt.Errorf("registering %s completion: %w", flag, regErr)
		}
	}

	return nil
}

// Settings is the merged configuration for one run.
type Settings struct {
	NiriConfig  string
	KittyBinary string
	Query       string
	Output      string
	Color       string
	Sources     []string
	Defaults    keybind.Defaults
}

// LoadFile loads the settings file named by the config flag, or the file
// at [DefaultPath] if the flag is unset. Only an explicitly named file is
// required to exist.
func (c *Config) LoadFile() (*File, error) {
	if c.Config != "" {
		return Load(ExpandHome(c.Config), true)
	}

	return Load(DefaultPath(), false)
}

// Resolve merges flag values with f. A flag takes precedence over the file
// only when it was set on the command line, as reported by flags.
func (c *Config) Resolve(flags *pflag.FlagSet, f *File) (*Settings, error) {
	if f == nil {
		f = &File{}
	}

	s := &Settings{
		NiriConfig:  f.Niri.Config,
		KittyBinary: f.Kitty.Binary,
		Query:       c.Query,
		Output:      strings.ToLower(c.Output),
		Color:       strings.ToLower(c.Color),
		Sources:     c.Sources,
		Defaults:    f.Defaults.Apply(keybind.NiriDefaults()),
	}

	if flags.Changed(c.Flags.NiriConfig) {
		s.NiriConfig = ExpandHome(c.NiriConfig)
	}

	if !flags.Changed(c.Flags.Sources) && len(f.Sources) > 0 {
		s.Sources = f.Sources
	}

	colorFromFile := !flags.Changed(c.Flags.Color) && f.Color != ""
	if colorFromFile {
		s.Color = strings.ToLower(f.Color)
	}

	if c.Kitty && !slices.Contains(s.Sources, "kitty") {
		s.Sources = append(slices.Clone(s.Sources), "kitty")
	}

	if !slices.Contains([]string{OutputText, OutputJSON}, s.Output) {
		return nil, fmt.Errorf("%w: --%s %q", ErrInvalidFlag, c.Flags.Output, c.Output)
	}

	if !slices.Contains([]string{ColorAuto, ColorAlways, ColorNever}, s.Color) {
		if colorFromFile {
			return nil, fmt.Errorf("%w: settings file color %q", ErrInvalidConfig, f.Color)
		}

		return nil, fmt.Errorf("%w: --%s %q", ErrInvalidFlag, c.Flags.Color, c.Color)
	}

	return s, nil
}

// Styled reports whether output should be colored, given whether stdout is
// a terminal.
func (s *Settings) Styled(isTerminal bool) bool {
	switch s.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	return isTerminal && s.Output == OutputText
}
