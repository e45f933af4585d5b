//go:build windows

package platform

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sys/windows/registry"
)

const personalizeKey = `SOFTWARE\Microsoft\Windows\CurrentVersion\Themes\Personalize`

// NewRegistry returns a Signal that polls the AppsUseLightTheme registry value.
func NewRegistry(interval time.Duration, logger zerolog.Logger) *Poller {
	return NewPoller(SignalRegistry, func() (bool, error) {
		useLight, err := readAppsUseLightTheme()
		if err != nil {
			return false, err
		}
		return useLight == 0, nil
	}, interval, logger)
}

func readAppsUseLightTheme() (uint64, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, personalizeKey, registry.QUERY_VALUE)
	if err != nil { // older versions of Windows do not have this key
		return 0, fmt.Errorf("open personalize key: %w", err)
	}
	defer k.Close()

	useLight, _, err := k.GetIntegerValue("AppsUseLightTheme")
	if err != nil {
		return 0, fmt.Errorf("read AppsUseLightTheme: %w", err)
	}
	return useLight, nil
}
