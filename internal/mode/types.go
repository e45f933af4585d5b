// Package mode tracks a user's light/dark/system appearance preference and
// resolves it to a renderable theme.
package mode

import "github.com/opencode-ai/thememode/internal/platform"

// Theme is a resolved, renderable appearance.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Mode is the user's stated preference. ModeSystem derives the theme from the
// platform preference.
type Mode string

const (
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
	ModeSystem Mode = "system"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeLight, ModeDark, ModeSystem}

// Sanitize folds any string into a valid Mode. Only the exact strings "light"
// and "dark" select an explicit mode; everything else means system.
func Sanitize(s string) Mode {
	switch Mode(s) {
	case ModeLight, ModeDark:
		return Mode(s)
	default:
		return ModeSystem
	}
}

// ThemeFor maps a platform preference to a theme.
func ThemeFor(prefersDark bool) Theme {
	if prefersDark {
		return ThemeDark
	}
	return ThemeLight
}

// Resolve returns the theme a mode string produces right now.
func Resolve(s string, signal platform.Signal) Theme {
	m := Sanitize(s)
	if m == ModeSystem {
		return ThemeFor(signal.PrefersDark())
	}
	return Theme(m)
}

// Next returns the mode after m in Modes, wrapping around.
func Next(m Mode) Mode {
	for i, candidate := range Modes {
		if candidate == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return Modes[0]
}
