// Package main provides the CLI entry point for fzf-keys, a tool that lists
// the keybindings of configured programs as one line per binding, suitable
// for piping into fzf.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"go.jacobcolvin.com/fzf-keys/config"
	"go.jacobcolvin.com/fzf-keys/keybind"
	"go.jacobcolvin.com/fzf-keys/log"
	"go.jacobcolvin.com/fzf-keys/profile"
	"go.jacobcolvin.com/fzf-keys/search"
	"go.jacobcolvin.com/fzf-keys/source"
	"go.jacobcolvin.com/fzf-keys/source/kitty"
	"go.jacobcolvin.com/fzf-keys/source/niri"
	"go.jacobcolvin.com/fzf-keys/version"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

// usageError marks errors caused by invalid flags, arguments, or settings.
type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

// execute runs the CLI with args and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)

		return exitCode(err)
	}

	return exitOK
}

func exitCode(err error) int {
	var ue *usageError
	if errors.As(err, &ue) {
		return exitUsage
	}

	return exitFailed
}

// registry returns the available sources, configured from s.
func registry(s *config.Settings) source.Registry {
	return source.Registry{
		niri.Program: func() source.Source {
			return niri.New(niri.WithPath(s.NiriConfig), niri.WithDefaults(s.Defaults))
		},
		kitty.Program: func() source.Source {
			return kitty.New(kitty.WithBinary(s.KittyBinary), kitty.WithDefaults(s.Defaults))
		},
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	logCfg := log.NewConfig()
	profCfg := profile.NewConfig()
	cfg := config.NewConfig()
	cfg.Registry = registry(&config.Settings{}).Names()

	rootCmd := &cobra.Command{
		Use:   "fzf-keys [flags]",
		Short: "List keybindings for fuzzy finding",
		Long: `fzf-keys reads the keybindings of programs such as niri and kitty and prints
one line per binding, suitable for piping into fzf:

  fzf-keys --kitty | fzf --ansi`,
		Version: version.String(),
		Args: func(cmd *cobra.Command, args []string) error {
			err := cobra.NoArgs(cmd, args)
			if err != nil {
				return &usageError{err: err}
			}

			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := profCfg.Start()
			if err != nil {
				return err
			}

			runErr := run(cmd.Context(), cmd.Flags(), cfg, logCfg, stdout, stderr)

			return errors.Join(runErr, session.Stop())
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	logCfg.RegisterFlags(rootCmd.Flags())
	cfg.RegisterFlags(rootCmd.Flags())
	profCfg.RegisterFlags(rootCmd.Flags())

	for _, register := range []func(*cobra.Command) error{logCfg.RegisterCompletions, cfg.RegisterCompletions} {
		err := register(rootCmd)
		if err != nil {
			fmt.Fprintf(stderr, "register completions: %v\n", err)
		}
	}

	rootCmd.AddCommand(newSchemaCmd(stdout))

	return rootCmd
}

func newSchemaCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:           "config-schema",
		Short:         "Print the JSON Schema of the settings file",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, _ []string) error {
			schema, err := config.Schema()
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}

			_, err = stdout.Write(append(out, '\n'))
			if err != nil {
				return fmt.Errorf("write schema: %w", err)
			}

			return nil
		},
	}
}

func run(
	ctx context.Context,
	flags *pflag.FlagSet,
	cfg *config.Config,
	logCfg *log.Config,
	stdout, stderr io.Writer,
) error {
	handler, err := logCfg.NewHandler(stderr)
	if err != nil {
		return &usageError{err: err}
	}

	slog.SetDefault(slog.New(handler))

	file, err := cfg.LoadFile()
	if err != nil {
		return &usageError{err: err}
	}

	settings, err := cfg.Resolve(flags, file)
	if err != nil {
		return &usageError{err: err}
	}

	srcs, err := registry(settings).Build(settings.Sources)
	if err != nil {
		return &usageError{err: err}
	}

	slog.Debug("collecting keybindings",
		slog.Any("sources", settings.Sources),
		slog.String("output", settings.Output),
	)

	binds, collectErr := source.Collect(ctx, srcs...)

	binds = search.Filter(binds, settings.Query)

	err = write(stdout, settings, binds)
	if err != nil {
		return errors.Join(collectErr, fmt.Errorf("write output: %w", err))
	}

	return collectErr
}

// write prints binds to w in the configured output format.
func write(w io.Writer, s *config.Settings, binds []keybind.Keybind) error {
	if s.Output == config.OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)

		for _, k := range binds {
			err := enc.Encode(k)
			if err != nil {
				return err
			}
		}

		return nil
	}

	return keybind.NewRenderer(w, s.Styled(isTerminal(w))).WriteLines(w, binds)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
