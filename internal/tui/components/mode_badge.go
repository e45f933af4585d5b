// Package components provides reusable TUI components.
package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/thememode/internal/mode"
	"github.com/opencode-ai/thememode/internal/tui/styles"
)

// RenderModeBadge renders a mode with icon and color.
func RenderModeBadge(styleSet styles.Styles, m mode.Mode) string {
	icon, label, style := modeDescriptor(styleSet, m)
	return style.Render(fmt.Sprintf("%s %s", icon, label))
}

// RenderThemeBadge renders a resolved theme with icon and color.
func RenderThemeBadge(styleSet styles.Styles, t mode.Theme) string {
	if t == mode.ThemeDark {
		return styleSet.Info.Render("● Dark")
	}
	return styleSet.Warning.Render("○ Light")
}

func modeDescriptor(styleSet styles.Styles, m mode.Mode) (string, string, lipgloss.Style) {
	switch m {
	case mode.ModeLight:
		return "○", "Light", styleSet.Warning
	case mode.ModeDark:
		return "●", "Dark", styleSet.Info
	default:
		return "◐", "System", styleSet.Accent
	}
}
