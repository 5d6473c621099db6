package kitty_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/fzf-keys/keybind"
	"go.jacobcolvin.com/fzf-keys/source/kitty"
)

func TestParseKeyCombination(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err   error
		input string
		key   string
		mods  []string
	}{
		"simple": {
			input: "ctrl+shift+t",
			mods:  []string{keybind.ModCtrl, keybind.ModShift},
			key:   "t",
		},
		"no modifiers": {
			input: "f1",
			mods:  []string{},
			key:   "F1",
		},
		"function key in sequence": {
			input: "ctrl+f1>2",
			mods:  []string{keybind.ModCtrl},
			key:   "F1>2",
		},
		"media key": {
			input: "super+xf86audiomute",
			mods:  []string{keybind.ModSuper},
			key:   "XF86AudioMute",
		},
		"sequence": {
			input: "ctrl+f>2",
			mods:  []string{keybind.ModCtrl},
			key:   "f>2",
		},
		"longer sequence": {
			input: "ctrl+a>ctrl+b>c",
			mods:  []string{keybind.ModCtrl},
			key:   "a>ctrl+b>c",
		},
		"plus key": {
			input: "ctrl+shift++",
			mods:  []string{keybind.ModCtrl, keybind.ModShift},
			key:   "+",
		},
		"bare plus key": {
			input: "++",
			mods:  []string{},
			key:   "+",
		},
		"kitty_mod": {
			input: "kitty_mod+c",
			mods:  []string{keybind.ModMod},
			key:   "c",
		},
		"macos aliases": {
			input: "cmd+opt+control+option+left",
			mods:  []string{keybind.ModSuper, keybind.ModAlt, keybind.ModCtrl},
			key:   "left",
		},
		"unknown modifier preserved": {
			input: "hyper+k",
			mods:  []string{"hyper"},
			key:   "k",
		},
		"empty": {
			input: "",
			err:   kitty.ErrInvalidCombination,
		},
		"missing key": {
			input: "ctrl+",
			err:   kitty.ErrInvalidCombination,
		},
		"empty modifier": {
			input: "ctrl++a",
			err:   kitty.ErrInvalidCombination,
		},
		"unfinished sequence": {
			input: "ctrl+f>",
			err:   kitty.ErrInvalidCombination,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			mods, key, err := kitty.ParseKeyCombination(tc.input)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.mods, mods)
			assert.Equal(t, tc.key, key)
		})
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile(filepath.Join("testdata", "mappings.json"))
	require.NoError(t, err)

	var (
		gotName string
		gotArgs []string
	)

	src := kitty.New(
		kitty.WithBinary("/opt/kitty/bin/kitty"),
		kitty.WithRunner(func(_ context.Context, name string, args ...string) ([]byte, error) {
			gotName, gotArgs = name, args

			return data, nil
		}),
	)

	assert.Equal(t, kitty.Program, src.Name())

	binds, err := src.Discover(t.Context())
	require.NoError(t, err)

	assert.Equal(t, "/opt/kitty/bin/kitty", gotName)
	require.Len(t, gotArgs, 2)
	assert.Equal(t, "+runpy", gotArgs[0])
	assert.Contains(t, gotArgs[1], "load_config")

	var lines []string
	for _, b := range binds {
		lines = append(lines, b.String())
	}

	assert.Equal(t, []string{
		"kitty: Ctrl+Shift+c — copy_to_clipboard",
		"kitty: Ctrl+Shift+v — paste_from_clipboard",
		"kitty: Ctrl+Shift++ — change_font_size all +2.0",
		"kitty: Ctrl+Shift+f>2 — goto_tab 2",
		"kitty: Super+Alt+left — neighboring_window left",
		"kitty: h [mode resize] — resize_window narrower",
	}, lines)
}

func TestDiscoverErrors(t *testing.T) {
	t.Parallel()

	errExec := errors.New("executable file not found in $PATH")

	tcs := map[string]struct {
		run  kitty.Runner
		want error
	}{
		"runner fails": {
			run: func(context.Context, string, ...string) ([]byte, error) {
				return nil, errExec
			},
			want: errExec,
		},
		"invalid json": {
			run: func(context.Context, string, ...string) ([]byte, error) {
				return []byte("Traceback (most recent call last):"), nil
			},
			want: kitty.ErrKitty,
		},
		"not an array": {
			run: func(context.Context, string, ...string) ([]byte, error) {
				return []byte(`{"keys": "ctrl+c"}`), nil
			},
			want: kitty.ErrKitty,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			binds, err := kitty.New(kitty.WithRunner(tc.run)).Discover(t.Context())
			require.ErrorIs(t, err, kitty.ErrKitty)
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, binds)
		})
	}
}

func TestDecodeDefaults(t *testing.T) {
	t.Parallel()

	d := keybind.Defaults{Repeat: false, AllowWhenLocked: true, AllowInhibiting: false}

	binds, err := kitty.Decode([]byte(`[{"mode":"","keys":"ctrl+t","action":"new_tab"}]`), d)
	require.NoError(t, err)
	require.Len(t, binds, 1)

	assert.False(t, binds[0].Repeat)
	assert.True(t, binds[0].AllowWhenLocked)
	assert.False(t, binds[0].AllowInhibiting)

	empty, err := kitty.Decode([]byte("[]\n"), d)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
