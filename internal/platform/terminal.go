package platform

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// NewTerminal returns a Signal backed by the terminal's background color.
// The renderer samples the background once per process, so in practice the
// value changes only when the process restarts.
func NewTerminal(interval time.Duration, logger zerolog.Logger) *Poller {
	return NewPoller(SignalTerminal, func() (bool, error) {
		return lipgloss.HasDarkBackground(), nil
	}, interval, logger)
}
