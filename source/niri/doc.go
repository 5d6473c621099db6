// Package niri discovers keybindings from the configuration file of the niri
// Wayland compositor.
//
// niri configs are KDL documents with one or more top-level "binds" blocks.
// Every child of a binds block whose name looks like a key combination
// becomes one [keybind.Keybind]:
//
//	binds {
//	    Mod+T hotkey-overlay-title="Open a Terminal: alacritty" { spawn "alacritty"; }
//	    Mod+Q repeat=false { close-window; }
//	    XF86AudioMute allow-when-locked=true { spawn "wpctl" "set-mute" "@DEFAULT_AUDIO_SINK@" "toggle"; }
//	}
//
// Configs written for either KDL revision are accepted; see [kdl.Parse].
package niri
