package keybind_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/fzf-keys/keybind"
)

func TestCanonicalModifier(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"mod":              {input: "Mod", want: keybind.ModMod},
		"super":            {input: "Super", want: keybind.ModSuper},
		"win alias":        {input: "Win", want: keybind.ModSuper},
		"ctrl":             {input: "Ctrl", want: keybind.ModCtrl},
		"control alias":    {input: "Control", want: keybind.ModCtrl},
		"lowercase":        {input: "shift", want: keybind.ModShift},
		"mod5 alias":       {input: "Mod5", want: keybind.ModISOLevel3Shift},
		"mod3 alias":       {input: "Mod3", want: keybind.ModISOLevel5Shift},
		"level3 canonical": {input: "ISO_Level3_Shift", want: keybind.ModISOLevel3Shift},
		"unknown verbatim": {input: "Hyper", want: "Hyper"},
		"unknown keeps case": {
			input: "hYpEr",
			want:  "hYpEr",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := keybind.CanonicalModifier(tc.input)
			assert.Equal(t, tc.want, got)

			// Canonicalizing a canonical name is a no-op.
			assert.Equal(t, got, keybind.CanonicalModifier(got))
		})
	}
}

func TestCanonicalModifiers(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input []string
		want  []string
	}{
		"empty": {
			input: nil,
			want:  []string{},
		},
		"preserves order": {
			input: []string{"Shift", "Mod"},
			want:  []string{"Shift", "Mod"},
		},
		"collapses aliases": {
			input: []string{"Ctrl", "Alt", "Control"},
			want:  []string{"Ctrl", "Alt"},
		},
		"collapses super and win": {
			input: []string{"Win", "Super"},
			want:  []string{"Super"},
		},
		"keeps unknown": {
			input: []string{"Mod", "Hyper"},
			want:  []string{"Mod", "Hyper"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, keybind.CanonicalModifiers(tc.input))
		})
	}
}

func TestClassifyKey(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input    string
		want     string
		wantKind keybind.KeyKind
	}{
		"lower letter":      {input: "q", want: "q", wantKind: keybind.KeyAlphanumeric},
		"upper letter":      {input: "T", want: "T", wantKind: keybind.KeyAlphanumeric},
		"digit":             {input: "1", want: "1", wantKind: keybind.KeyAlphanumeric},
		"function key":      {input: "F5", want: "F5", wantKind: keybind.KeyFunction},
		"function key case": {input: "f12", want: "F12", wantKind: keybind.KeyFunction},
		"function key max":  {input: "F35", want: "F35", wantKind: keybind.KeyFunction},
		"function too big":  {input: "F36", want: "F36", wantKind: keybind.KeyLiteral},
		"function leading zero": {
			input:    "F05",
			want:     "F05",
			wantKind: keybind.KeyLiteral,
		},
		"function sign": {
			input:    "F+5",
			want:     "F+5",
			wantKind: keybind.KeyLiteral,
		},
		"xf86":            {input: "XF86AudioRaiseVolume", want: "XF86AudioRaiseVolume", wantKind: keybind.KeyExtended},
		"xf86 lowercase":  {input: "xf86audiomute", want: "XF86AudioMute", wantKind: keybind.KeyExtended},
		"xf86 unknown":    {input: "XF86Frobnicate", want: "XF86Frobnicate", wantKind: keybind.KeyLiteral},
		"mouse":           {input: "MouseMiddle", want: "MouseMiddle", wantKind: keybind.KeyMouse},
		"wheel":           {input: "WheelScrollDown", want: "WheelScrollDown", wantKind: keybind.KeyWheel},
		"wheel lowercase": {input: "wheelscrollright", want: "WheelScrollRight", wantKind: keybind.KeyWheel},
		"touchpad":        {input: "TouchpadScrollUp", want: "TouchpadScrollUp", wantKind: keybind.KeyWheel},
		"named literal":   {input: "Page_Down", want: "Page_Down", wantKind: keybind.KeyLiteral},
		"delete literal":  {input: "Delete", want: "Delete", wantKind: keybind.KeyLiteral},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, kind := keybind.ClassifyKey(tc.input)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantKind, kind)
			assert.Equal(t, tc.want, keybind.CanonicalKey(tc.input))
		})
	}
}

func TestComboRoundTrip(t *testing.T) {
	t.Parallel()

	for _, combo := range []string{
		"Mod+Shift+q",
		"Mod+Comma",
		"Ctrl+Alt+Delete",
		"Hyper+Page_Up",
		"Print",
	} {
		t.Run(combo, func(t *testing.T) {
			t.Parallel()

			parts := strings.Split(combo, "+")
			kb := keybind.Keybind{
				Modifiers: keybind.CanonicalModifiers(parts[:len(parts)-1]),
				Key:       keybind.CanonicalKey(parts[len(parts)-1]),
			}

			assert.Equal(t, combo, kb.Combo())
		})
	}
}

func TestHasModifier(t *testing.T) {
	t.Parallel()

	kb := keybind.Keybind{Modifiers: []string{keybind.ModCtrl}, Key: "c"}

	assert.True(t, kb.HasModifier("Control"))
	assert.True(t, kb.HasModifier("ctrl"))
	assert.False(t, kb.HasModifier("Shift"))
}

func TestRender(t *testing.T) {
	t.Parallel()

	defaults := keybind.NiriDefaults()

	tcs := map[string]struct {
		input keybind.Keybind
		want  string
	}{
		"description and action": {
			input: keybind.Keybind{
				Modifiers:       []string{"Mod", "Shift"},
				Key:             "T",
				Action:          `spawn "alacritty";`,
				Description:     "Open Terminal",
				Program:         "niri",
				Repeat:          defaults.Repeat,
				AllowInhibiting: defaults.AllowInhibiting,
			},
			want: `niri: Mod+Shift+T [Open Terminal] — spawn "alacritty";`,
		},
		"no description": {
			input: keybind.Keybind{
				Modifiers:       []string{"Mod"},
				Key:             "Q",
				Action:          "close-window;",
				Program:         "niri",
				Repeat:          true,
				AllowInhibiting: true,
			},
			want: "niri: Mod+Q — close-window;",
		},
		"no modifiers": {
			input: keybind.Keybind{
				Key:             "XF86AudioRaiseVolume",
				Action:          "volume-up;",
				Program:         "niri",
				Repeat:          true,
				AllowInhibiting: true,
			},
			want: "niri: XF86AudioRaiseVolume — volume-up;",
		},
		"properties": {
			input: keybind.Keybind{
				Modifiers:       []string{"Mod"},
				Key:             "WheelScrollDown",
				Action:          "focus-workspace-down;",
				Program:         "niri",
				Repeat:          false,
				Cooldown:        150 * time.Millisecond,
				AllowInhibiting: true,
			},
			want: "niri: Mod+WheelScrollDown (no-repeat, cooldown=150ms) — focus-workspace-down;",
		},
		"locked and not inhibitable": {
			input: keybind.Keybind{
				Key:             "XF86AudioMute",
				Action:          `spawn "wpctl";`,
				Description:     "Mute",
				Program:         "niri",
				Repeat:          true,
				AllowWhenLocked: true,
				AllowInhibiting: false,
			},
			want: `niri: XF86AudioMute [Mute] (allow-locked, no-inhibit) — spawn "wpctl";`,
		},
		"empty action omits separator": {
			input: keybind.Keybind{
				Modifiers:       []string{"Mod"},
				Key:             "O",
				Program:         "niri",
				Repeat:          true,
				AllowInhibiting: true,
			},
			want: "niri: Mod+O",
		},
		"no program": {
			input: keybind.Keybind{
				Key:             "F1",
				Action:          "help",
				Repeat:          true,
				AllowInhibiting: true,
			},
			want: "F1 — help",
		},
		"newlines folded": {
			input: keybind.Keybind{
				Key:             "a",
				Action:          "spawn\n\"x\";",
				Description:     "two\nlines",
				Program:         "niri",
				Repeat:          true,
				AllowInhibiting: true,
			},
			want: `niri: a [two lines] — spawn "x";`,
		},
		"unicode line separators folded": {
			input: keybind.Keybind{
				Key:             "a",
				Action:          "spawn\u2029\"x\";",
				Description:     "a\u2028b\u0085c",
				Program:         "niri",
				Repeat:          true,
				AllowInhibiting: true,
			},
			want: `niri: a [a b c] — spawn "x";`,
		},
		"description cannot forge fields": {
			input: keybind.Keybind{
				Modifiers:       []string{"Mod"},
				Key:             "T",
				Action:          `spawn "alacritty";`,
				Description:     "Open] (no-repeat) — rm -rf",
				Program:         "niri",
				Repeat:          true,
				AllowInhibiting: true,
			},
			want: `niri: Mod+T [Open\] (no-repeat) - rm -rf] — spawn "alacritty";`,
		},
		"description backslash escaped": {
			input: keybind.Keybind{
				Key:             "a",
				Action:          "x;",
				Description:     `dir\]`,
				Program:         "niri",
				Repeat:          true,
				AllowInhibiting: true,
			},
			want: `niri: a [dir\\\]] — x;`,
		},
		"separator in combination replaced": {
			input: keybind.Keybind{
				Key:             "a — b",
				Action:          "x;",
				Program:         "niri",
				Repeat:          true,
				AllowInhibiting: true,
			},
			want: "niri: a - b — x;",
		},
		"separator folded from newlines": {
			input: keybind.Keybind{
				Key:             "a",
				Action:          "x;",
				Description:     "one\n—\ntwo",
				Program:         "niri",
				Repeat:          true,
				AllowInhibiting: true,
			},
			want: "niri: a [one - two] — x;",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := keybind.Render(tc.input)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want, tc.input.String())
			assert.NotContains(t, got, "\n")

			// Only the action may follow a separator.
			if tc.input.Action != "" {
				assert.Equal(t, 1, strings.Count(got, keybind.ActionSeparator))
			}
		})
	}
}

func TestRendererWriteLines(t *testing.T) {
	t.Parallel()

	binds := []keybind.Keybind{
		{Modifiers: []string{"Mod"}, Key: "Q", Action: "close-window;", Program: "niri", Repeat: true, AllowInhibiting: true},
		{Key: "Print", Action: "screenshot;", Program: "niri", Repeat: true, AllowInhibiting: true},
	}

	t.Run("plain", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		r := keybind.NewRenderer(&buf, false)
		require.NoError(t, r.WriteLines(&buf, binds))

		assert.Equal(t, "niri: Mod+Q — close-window;\nniri: Print — screenshot;\n", buf.String())
	})

	t.Run("styled", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		r := keybind.NewRenderer(&buf, true)
		require.NoError(t, r.WriteLines(&buf, binds))

		out := buf.String()
		assert.Contains(t, out, "\x1b[")
		assert.Contains(t, out, "close-window;")
		assert.Equal(t, 2, strings.Count(out, "\n"))
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		var r keybind.Renderer
		require.NoError(t, r.WriteLines(&buf, nil))
		assert.Empty(t, buf.String())
	})
}

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	kb := keybind.Keybind{
		Key:             "WheelScrollDown",
		Action:          "focus-workspace-down;",
		Program:         "niri",
		Cooldown:        150 * time.Millisecond,
		AllowInhibiting: true,
	}

	b, err := json.Marshal(kb)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"program": "niri",
		"modifiers": [],
		"key": "WheelScrollDown",
		"key_kind": "wheel",
		"action": "focus-workspace-down;",
		"cooldown_ms": 150,
		"repeat": false,
		"allow_when_locked": false,
		"allow_inhibiting": true
	}`, string(b))
}
