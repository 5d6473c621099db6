package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"go.jacobcolvin.com/fzf-keys/keybind"
)

// ErrUnknownSource is returned by [Registry.Build] for names that are not
// registered.
var ErrUnknownSource = errors.New("unknown source")

// Source discovers the keybindings of one program.
//
// Discover must be idempotent and must not modify its input. On failure it
// returns no records; a partially read config is never reported.
type Source interface {
	// Name returns the program name used as the line prefix, e.g. "niri".
	Name() string
	Discover(ctx context.Context) ([]keybind.Keybind, error)
}

// Registry maps source names to constructors.
type Registry map[string]func() Source

// Names returns the registered names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Build constructs the named sources in order. Duplicate names are built
// once. Blank names are ignored.
func (r Registry) Build(names []string) ([]Source, error) {
	var (
		srcs []Source
		seen = make(map[string]bool, len(names))
	)

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}

		constructor, ok := r[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownSource, name,
				strings.Join(r.Names(), ", "))
		}

		seen[name] = true

		srcs = append(srcs, constructor())
	}

	return srcs, nil
}

// Error records the failure of a single source.
type Error struct {
	Err    error
	Source string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Collect runs srcs sequentially and concatenates their records in source
// order. A failing source contributes nothing and does not stop the others;
// its failure is reported as an [*Error] in the joined error result.
//
// If ctx is done before a source starts, the remaining sources are skipped
// and the context error is included in the result.
func Collect(ctx context.Context, srcs ...Source) ([]keybind.Keybind, error) {
	var (
		binds []keybind.Keybind
		errs  []error
	)

	for _, src := range srcs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		found, err := src.Discover(ctx)
		if err != nil {
			slog.Debug("source failed",
				slog.String("source", src.Name()),
				slog.Any("error", err),
			)

			errs = append(errs, &Error{Source: src.Name(), Err: err})

			continue
		}

		slog.Debug("source discovered bindings",
			slog.String("source", src.Name()),
			slog.Int("count", len(found)),
		)

		binds = append(binds, found...)
	}

	return binds, errors.Join(errs...)
}
