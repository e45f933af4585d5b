//go:build darwin

package platform

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultsTimeout = 2 * time.Second

// NewDefaults returns a Signal that polls the global AppleInterfaceStyle default.
func NewDefaults(interval time.Duration, logger zerolog.Logger) *Poller {
	return NewPoller(SignalDefaults, readInterfaceStyle, interval, logger)
}

func readInterfaceStyle() (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultsTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").Output()
	if err != nil {
		// The key is absent in light mode and defaults exits non-zero.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, err
	}
	return strings.TrimSpace(string(output)) == "Dark", nil
}
