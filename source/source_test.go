package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/fzf-keys/keybind"
	"go.jacobcolvin.com/fzf-keys/source"
)

type fakeSource struct {
	err   error
	name  string
	binds []keybind.Keybind
	calls int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Discover(_ context.Context) ([]keybind.Keybind, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	return f.binds, nil
}

func bind(program, key string) keybind.Keybind {
	return keybind.Keybind{Program: program, Key: key, Repeat: true, AllowInhibiting: true}
}

func TestRegistryBuild(t *testing.T) {
	t.Parallel()

	reg := source.Registry{
		"niri":  func() source.Source { return &fakeSource{name: "niri"} },
		"kitty": func() source.Source { return &fakeSource{name: "kitty"} },
	}

	tcs := map[string]struct {
		err   error
		names []string
		want  []string
	}{
		"single": {
			names: []string{"niri"},
			want:  []string{"niri"},
		},
		"order preserved": {
			names: []string{"kitty", "niri"},
			want:  []string{"kitty", "niri"},
		},
		"duplicates and blanks dropped": {
			names: []string{"niri", " ", "niri", " kitty "},
			want:  []string{"niri", "kitty"},
		},
		"empty": {
			names: nil,
			want:  nil,
		},
		"unknown": {
			names: []string{"niri", "sway"},
			err:   source.ErrUnknownSource,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			srcs, err := reg.Build(tc.names)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				assert.ErrorContains(t, err, "available: kitty, niri")

				return
			}

			require.NoError(t, err)

			var got []string
			for _, s := range srcs {
				got = append(got, s.Name())
			}

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRegistryNames(t *testing.T) {
	t.Parallel()

	reg := source.Registry{
		"niri":  nil,
		"kitty": nil,
	}

	assert.Equal(t, []string{"kitty", "niri"}, reg.Names())
	assert.Empty(t, source.Registry{}.Names())
}

func TestCollect(t *testing.T) {
	t.Parallel()

	errBroken := errors.New("broken")

	t.Run("concatenates in source order", func(t *testing.T) {
		t.Parallel()

		a := &fakeSource{name: "a", binds: []keybind.Keybind{bind("a", "1"), bind("a", "2")}}
		b := &fakeSource{name: "b", binds: []keybind.Keybind{bind("b", "3")}}

		got, err := source.Collect(t.Context(), a, b)
		require.NoError(t, err)

		assert.Equal(t, []keybind.Keybind{bind("a", "1"), bind("a", "2"), bind("b", "3")}, got)
	})

	t.Run("failing source does not stop others", func(t *testing.T) {
		t.Parallel()

		a := &fakeSource{name: "a", err: errBroken}
		b := &fakeSource{name: "b", binds: []keybind.Keybind{bind("b", "3")}}

		got, err := source.Collect(t.Context(), a, b)
		require.Error(t, err)
		require.ErrorIs(t, err, errBroken)

		var serr *source.Error
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "a", serr.Source)
		assert.Equal(t, "a: broken", serr.Error())

		assert.Equal(t, []keybind.Keybind{bind("b", "3")}, got)
		assert.Equal(t, 1, b.calls)
	})

	t.Run("zero sources", func(t *testing.T) {
		t.Parallel()

		got, err := source.Collect(t.Context())
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		a := &fakeSource{name: "a", binds: []keybind.Keybind{bind("a", "1")}}

		got, err := source.Collect(ctx, a)
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, got)
		assert.Zero(t, a.calls)
	})
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	regular := filepath.Join(dir, "config.kdl")
	require.NoError(t, os.WriteFile(regular, []byte("binds {}\n"), 0o600))

	tcs := map[string]struct {
		err  error
		path string
		want string
	}{
		"regular file": {
			path: regular,
			want: "binds {}\n",
		},
		"missing file": {
			path: filepath.Join(dir, "missing.kdl"),
			err:  source.ErrNotFound,
		},
		"directory": {
			path: dir,
			err:  source.ErrNotRegular,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := source.ReadFile(tc.path)
			if tc.err != nil {
				require.ErrorIs(t, err, source.ErrIO)
				require.ErrorIs(t, err, tc.err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}
