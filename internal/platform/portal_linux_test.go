//go:build linux

package platform

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
)

func TestColorSchemeDark(t *testing.T) {
	tests := []struct {
		name  string
		value dbus.Variant
		want  bool
	}{
		{"prefer dark", dbus.MakeVariant(uint32(1)), true},
		{"prefer light", dbus.MakeVariant(uint32(2)), false},
		{"no preference", dbus.MakeVariant(uint32(0)), false},
		{"nested variant", dbus.MakeVariant(dbus.MakeVariant(uint32(1))), true},
		{"wrong type", dbus.MakeVariant("dark"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, colorSchemeDark(tt.value))
		})
	}
}

func TestSettingChange(t *testing.T) {
	signal := &dbus.Signal{
		Name: signalSettingChanged,
		Body: []interface{}{appearanceNamespace, colorSchemeKey, dbus.MakeVariant(uint32(1))},
	}
	dark, ok := settingChange(signal)
	assert.True(t, ok)
	assert.True(t, dark)

	other := &dbus.Signal{
		Name: signalSettingChanged,
		Body: []interface{}{"org.gnome.desktop.interface", "gtk-theme", dbus.MakeVariant("Adwaita")},
	}
	_, ok = settingChange(other)
	assert.False(t, ok)

	_, ok = settingChange(nil)
	assert.False(t, ok)

	_, ok = settingChange(&dbus.Signal{Name: signalSettingChanged, Body: []interface{}{appearanceNamespace}})
	assert.False(t, ok)
}
