package components

import (
	"strings"
	"testing"

	"github.com/opencode-ai/thememode/internal/mode"
	"github.com/opencode-ai/thememode/internal/tui/styles"
)

func TestRenderModeBadge(t *testing.T) {
	styleSet := styles.StylesFor(mode.ThemeDark)

	tests := []struct {
		mode mode.Mode
		want string
	}{
		{mode.ModeLight, "Light"},
		{mode.ModeDark, "Dark"},
		{mode.ModeSystem, "System"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			result := RenderModeBadge(styleSet, tt.mode)
			if !strings.Contains(result, tt.want) {
				t.Errorf("Expected %q in badge, got: %s", tt.want, result)
			}
		})
	}
}

func TestRenderThemeBadge(t *testing.T) {
	styleSet := styles.StylesFor(mode.ThemeLight)

	if result := RenderThemeBadge(styleSet, mode.ThemeDark); !strings.Contains(result, "Dark") {
		t.Errorf("Expected Dark in badge, got: %s", result)
	}
	if result := RenderThemeBadge(styleSet, mode.ThemeLight); !strings.Contains(result, "Light") {
		t.Errorf("Expected Light in badge, got: %s", result)
	}
}

func TestRenderModePicker(t *testing.T) {
	styleSet := styles.StylesFor(mode.ThemeLight)

	result := RenderModePicker(styleSet, mode.ModeSystem)
	for _, label := range []string{"[l] Light", "[d] Dark", "[s] System"} {
		if !strings.Contains(result, label) {
			t.Errorf("Expected %q in picker, got: %s", label, result)
		}
	}
}

func TestOptionForKey(t *testing.T) {
	option, ok := OptionForKey("d")
	if !ok || option.Mode != mode.ModeDark {
		t.Errorf("OptionForKey(d) = %+v, %v", option, ok)
	}
	if _, ok := OptionForKey("x"); ok {
		t.Error("OptionForKey(x) should not match")
	}
}
