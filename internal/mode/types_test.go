package mode

import (
	"testing"

	"github.com/opencode-ai/thememode/internal/platform"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"light", ModeLight},
		{"dark", ModeDark},
		{"system", ModeSystem},
		{"", ModeSystem},
		{"banana", ModeSystem},
		{"Light", ModeSystem},
		{"DARK", ModeSystem},
		{" dark", ModeSystem},
		{"light\n", ModeSystem},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestResolve(t *testing.T) {
	dark := platform.NewStatic(true)
	light := platform.NewStatic(false)

	assert.Equal(t, ThemeLight, Resolve("light", dark))
	assert.Equal(t, ThemeDark, Resolve("dark", light))
	assert.Equal(t, ThemeDark, Resolve("system", dark))
	assert.Equal(t, ThemeLight, Resolve("whatever", light))
}

func TestNext(t *testing.T) {
	assert.Equal(t, ModeDark, Next(ModeLight))
	assert.Equal(t, ModeSystem, Next(ModeDark))
	assert.Equal(t, ModeLight, Next(ModeSystem))
	assert.Equal(t, ModeLight, Next(Mode("bogus")))
}
