package components

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/thememode/internal/mode"
	"github.com/opencode-ai/thememode/internal/tui/styles"
)

// ModeOption is one selectable entry in the picker.
type ModeOption struct {
	Key   string
	Mode  mode.Mode
	Label string
}

// ModeOptions are the picker entries in display order.
var ModeOptions = []ModeOption{
	{Key: "l", Mode: mode.ModeLight, Label: "Light"},
	{Key: "d", Mode: mode.ModeDark, Label: "Dark"},
	{Key: "s", Mode: mode.ModeSystem, Label: "System"},
}

// OptionForKey returns the option bound to key.
func OptionForKey(key string) (ModeOption, bool) {
	for _, option := range ModeOptions {
		if option.Key == key {
			return option, true
		}
	}
	return ModeOption{}, false
}

// RenderModePicker renders the options on one line, highlighting current.
// Format: "[l] Light  [d] Dark  [s] System"
func RenderModePicker(styleSet styles.Styles, current mode.Mode) string {
	parts := make([]string, 0, len(ModeOptions))
	for _, option := range ModeOptions {
		label := fmt.Sprintf("[%s] %s", option.Key, option.Label)
		if option.Mode == current {
			parts = append(parts, styleSet.Selected.Render(label))
			continue
		}
		parts = append(parts, styleSet.Muted.Render(label))
	}
	return strings.Join(parts, "  ")
}
