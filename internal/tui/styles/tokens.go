// Package styles holds the light and dark palettes the TUI renders with.
package styles

import "github.com/opencode-ai/thememode/internal/mode"

// ThemeTokens defines the semantic color roles for the TUI.
type ThemeTokens struct {
	Background string
	Panel      string
	Text       string
	TextMuted  string
	Border     string
	Accent     string
	Focus      string
	Success    string
	Warning    string
	Info       string
}

// Theme bundles a palette with a name.
type Theme struct {
	Name   string
	Tokens ThemeTokens
}

// Themes lists available palettes by resolved theme.
var Themes = map[mode.Theme]Theme{
	mode.ThemeLight: LightTheme,
	mode.ThemeDark:  DarkTheme,
}

// ForTheme returns the palette for t, defaulting to the light palette.
func ForTheme(t mode.Theme) Theme {
	if theme, ok := Themes[t]; ok {
		return theme
	}
	return LightTheme
}
