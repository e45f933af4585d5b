package mode

import (
	"sync"

	"github.com/opencode-ai/thememode/internal/platform"
	"github.com/rs/zerolog"
)

// Manager holds the current mode and theme and notifies watchers of both.
//
// Handlers run synchronously on the goroutine that caused the change: the
// caller of SetMode, or the platform signal's delivery goroutine while the
// mode is ModeSystem. Handlers are invoked outside the manager's lock and may
// call back into it.
type Manager struct {
	signal platform.Signal
	logger zerolog.Logger

	mu    sync.Mutex
	mode  Mode
	theme Theme

	// generation is bumped by every SetMode and by Close. Theme writes and
	// platform events stamped with an older generation are dropped.
	generation uint64
	// resolved is the newest generation the resolver has acted on.
	resolved       uint64
	cancelPlatform func()

	modeWatchers  watchers[Mode]
	themeWatchers watchers[Theme]
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for transition records.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// New creates a Manager from a raw initial mode string and drives the first
// resolution against signal.
func New(initial string, signal platform.Signal, opts ...Option) *Manager {
	m := &Manager{
		signal: signal,
		logger: zerolog.Nop(),
		mode:   ModeLight,
		theme:  Resolve(initial, signal),
	}
	for _, opt := range opts {
		opt(m)
	}

	// The resolver is always the first mode watcher, so theme watchers hear
	// about a change before the remaining mode watchers do.
	m.modeWatchers.add(m.resolve)
	m.SetMode(string(Sanitize(initial)))

	return m
}

// Mode returns the current mode.
func (m *Manager) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Theme returns the current theme.
func (m *Manager) Theme() Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.theme
}

// SetMode sanitizes requested, stores it, and notifies every mode watcher in
// registration order. Watchers are notified even when the mode is unchanged.
func (m *Manager) SetMode(requested string) {
	next := Sanitize(requested)

	m.mu.Lock()
	previous := m.mode
	m.mode = next
	m.generation++
	m.mu.Unlock()

	m.logger.Debug().
		Str("requested", requested).
		Str("previous", string(previous)).
		Str("mode", string(next)).
		Msg("mode set")

	m.modeWatchers.notify(next)
}

// WatchMode calls fn with the current mode, then registers it for every
// subsequent SetMode. The returned function unregisters fn.
func (m *Manager) WatchMode(fn func(Mode)) (unsubscribe func()) {
	fn(m.Mode())
	return m.modeWatchers.add(fn)
}

// WatchTheme calls fn with the current theme, then registers it for every
// subsequent theme assignment. The returned function unregisters fn.
func (m *Manager) WatchTheme(fn func(Theme)) (unsubscribe func()) {
	fn(m.Theme())
	return m.themeWatchers.add(fn)
}

// Close releases the platform subscription, if any. A later SetMode with
// ModeSystem subscribes again.
func (m *Manager) Close() {
	m.mu.Lock()
	m.generation++
	m.resolved = m.generation
	cancel := m.cancelPlatform
	m.cancelPlatform = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// resolve keeps the theme consistent with the mode. It owns the platform
// subscription: at most one is active, and it is replaced on every call.
// A call for a SetMode that has since been superseded does nothing, so the
// newest mode always wins regardless of which goroutine resolves first.
func (m *Manager) resolve(next Mode) {
	m.mu.Lock()
	if m.mode != next || m.resolved == m.generation {
		m.mu.Unlock()
		m.logger.Debug().Str("mode", string(next)).Msg("skipped superseded resolution")
		return
	}
	generation := m.generation
	m.resolved = generation
	previous := m.cancelPlatform
	m.cancelPlatform = nil
	m.mu.Unlock()

	if previous != nil {
		previous()
	}

	if next != ModeSystem {
		m.setTheme(generation, Theme(next))
		return
	}

	cancel := m.signal.Subscribe(func(prefersDark bool) {
		m.platformChanged(generation, prefersDark)
	})

	m.mu.Lock()
	if m.generation != generation {
		// A newer SetMode already replaced this subscription.
		m.mu.Unlock()
		cancel()
		return
	}
	m.cancelPlatform = cancel
	m.mu.Unlock()

	m.setTheme(generation, ThemeFor(m.signal.PrefersDark()))
}

func (m *Manager) platformChanged(generation uint64, prefersDark bool) {
	m.logger.Debug().Bool("prefers_dark", prefersDark).Msg("platform preference changed")
	if !m.setTheme(generation, ThemeFor(prefersDark)) {
		m.logger.Debug().Bool("prefers_dark", prefersDark).Msg("dropped stale platform event")
	}
}

// setTheme stores t and notifies every theme watcher, even when t is
// unchanged. It reports false without storing or notifying when generation
// is no longer current.
func (m *Manager) setTheme(generation uint64, t Theme) bool {
	m.mu.Lock()
	if m.generation != generation {
		m.mu.Unlock()
		return false
	}
	m.theme = t
	m.mu.Unlock()

	m.themeWatchers.notify(t)
	return true
}
