package log

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flag names registered by [Config.RegisterFlags].
const (
	FlagLevel  = "log-level"
	FlagFormat = "log-format"
)

// Diagnostics are quiet by default: a skipped binding or an unreadable
// source is a warning, and everything below that needs --log-level.
const (
	DefaultLevel  = LevelWarn
	DefaultFormat = FormatText
)

// Config holds the --log-level and --log-format values of the fzf-keys
// command line. Diagnostics always go to the writer given to
// [Config.NewHandler], which is stderr in the CLI; stdout carries only
// binding lines.
type Config struct {
	Level  string
	Format string
}

// NewConfig returns a [Config] set to [DefaultLevel] and [DefaultFormat].
func NewConfig() *Config {
	return &Config{
		Level:  string(DefaultLevel),
		Format: string(DefaultFormat),
	}
}

// RegisterFlags adds --log-level and --log-format to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, FlagLevel, string(DefaultLevel),
		fmt.Sprintf("minimum severity of diagnostics on stderr, one of: %s", GetAllLevelStrings()))
	flags.StringVar(&c.Format, FlagFormat, string(DefaultFormat),
		fmt.Sprintf("encoding of diagnostics on stderr, one of: %s", GetAllFormatStrings()))
}

// RegisterCompletions completes the values of both log flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	for flag, values := range map[string][]string{
		FlagLevel:  GetAllLevelStrings(),
		FlagFormat: GetAllFormatStrings(),
	} {
		err := cmd.RegisterFlagCompletionFunc(flag,
			cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
		if err != nil {
			return fmt.Errorf("register --%s completion: %w", flag, err)
		}
	}

	return nil
}

// NewHandler returns the handler for the configured level and format,
// writing to w. Errors name the offending flag and wrap
// [ErrInvalidArgument].
func (c *Config) NewHandler(w io.Writer) (slog.Handler, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: --%s: %w", ErrInvalidArgument, FlagLevel, err)
	}

	format, err := ParseFormat(c.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: --%s: %w", ErrInvalidArgument, FlagFormat, err)
	}

	return NewHandler(w, level, format), nil
}
