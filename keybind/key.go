package keybind

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// KeyKind classifies a canonical key name.
type KeyKind int

const (
	// KeyLiteral is a key name that no table recognized. It is kept verbatim.
	KeyLiteral KeyKind = iota
	// KeyAlphanumeric is a single letter or digit.
	KeyAlphanumeric
	// KeyFunction is one of F1 through F35.
	KeyFunction
	// KeyExtended is an XF86 vendor key such as XF86AudioMute.
	KeyExtended
	// KeyMouse is a mouse button.
	KeyMouse
	// KeyWheel is a scroll wheel or touchpad scroll gesture.
	KeyWheel
)

var keyKindNames = map[KeyKind]string{
	KeyLiteral:      "literal",
	KeyAlphanumeric: "alphanumeric",
	KeyFunction:     "function",
	KeyExtended:     "extended",
	KeyMouse:        "mouse",
	KeyWheel:        "wheel",
}

func (k KeyKind) String() string {
	if s, ok := keyKindNames[k]; ok {
		return s
	}

	return "KeyKind(" + strconv.Itoa(int(k)) + ")"
}

const maxFunctionKey = 35

var mouseKeys = buildTable(
	"MouseLeft",
	"MouseRight",
	"MouseMiddle",
	"MouseBack",
	"MouseForward",
)

var wheelKeys = buildTable(
	"WheelScrollDown",
	"WheelScrollUp",
	"WheelScrollLeft",
	"WheelScrollRight",
	"TouchpadScrollDown",
	"TouchpadScrollUp",
	"TouchpadScrollLeft",
	"TouchpadScrollRight",
)

var extendedKeys = buildTable(
	"XF86AudioLowerVolume",
	"XF86AudioRaiseVolume",
	"XF86AudioMute",
	"XF86AudioMicMute",
	"XF86AudioPlay",
	"XF86AudioPause",
	"XF86AudioStop",
	"XF86AudioNext",
	"XF86AudioPrev",
	"XF86AudioRewind",
	"XF86AudioForward",
	"XF86AudioRecord",
	"XF86AudioMedia",
	"XF86MonBrightnessUp",
	"XF86MonBrightnessDown",
	"XF86KbdBrightnessUp",
	"XF86KbdBrightnessDown",
	"XF86KbdLightOnOff",
	"XF86Calculator",
	"XF86Mail",
	"XF86WWW",
	"XF86HomePage",
	"XF86Search",
	"XF86Explorer",
	"XF86Favorites",
	"XF86Tools",
	"XF86Display",
	"XF86Sleep",
	"XF86PowerOff",
	"XF86WakeUp",
	"XF86ScreenSaver",
	"XF86Eject",
	"XF86TouchpadToggle",
	"XF86TouchpadOn",
	"XF86TouchpadOff",
	"XF86WLAN",
	"XF86Bluetooth",
	"XF86RFKill",
	"XF86Launch1",
	"XF86Launch2",
	"XF86Launch3",
	"XF86Launch4",
	"XF86LaunchA",
	"XF86LaunchB",
	"XF86Copy",
	"XF86Cut",
	"XF86Paste",
	"XF86Back",
	"XF86Forward",
	"XF86Refresh",
	"XF86Reload",
	"XF86Close",
	"XF86MyComputer",
	"XF86Terminal",
	"XF86Messenger",
	"XF86Battery",
)

// CanonicalKey returns the canonical spelling of a key name. Function keys,
// XF86 keys, mouse buttons, and scroll gestures are matched
// case-insensitively; any other name is returned unchanged.
func CanonicalKey(name string) string {
	canon, _ := ClassifyKey(name)

	return canon
}

// ClassifyKey returns the canonical spelling of a key name and its kind.
func ClassifyKey(name string) (string, KeyKind) {
	if r, size := utf8.DecodeRuneInString(name); size == len(name) && size > 0 &&
		(unicode.IsLetter(r) || unicode.IsDigit(r)) {
		return name, KeyAlphanumeric
	}

	if n, ok := functionKeyNumber(name); ok {
		return "F" + strconv.Itoa(n), KeyFunction
	}

	lower := strings.ToLower(name)

	if canon, ok := extendedKeys[lower]; ok {
		return canon, KeyExtended
	}

	if canon, ok := mouseKeys[lower]; ok {
		return canon, KeyMouse
	}

	if canon, ok := wheelKeys[lower]; ok {
		return canon, KeyWheel
	}

	return name, KeyLiteral
}

func functionKeyNumber(name string) (int, bool) {
	if len(name) < 2 || len(name) > 3 || (name[0] != 'F' && name[0] != 'f') {
		return 0, false
	}

	digits := name[1:]
	if digits[0] < '1' || digits[0] > '9' || (len(digits) == 2 && (digits[1] < '0' || digits[1] > '9')) {
		return 0, false
	}

	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || n > maxFunctionKey {
		return 0, false
	}

	return n, true
}

func buildTable(names ...string) map[string]string {
	m := make(map[string]string, len(names))
	for _, name := range names {
		m[strings.ToLower(name)] = name
	}

	return m
}
