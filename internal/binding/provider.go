// Package binding adapts a mode.Manager to UI code that keeps its own copy of
// the current mode and theme.
package binding

import (
	"sync"

	"github.com/opencode-ai/thememode/internal/mode"
)

// State is the UI-side view of the manager.
type State struct {
	Mode  mode.Mode
	Theme mode.Theme
}

// Context is what a provider exposes to the components below it.
type Context struct {
	Mode    mode.Mode
	Theme   mode.Theme
	SetMode func(mode.Mode)
}

// Provider keeps a State synchronized with a Manager.
type Provider struct {
	manager *mode.Manager

	mu    sync.Mutex
	state State
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithPlaceholder sets the mode reported while no manager is available. The
// theme reported alongside it is always light.
func WithPlaceholder(placeholder string) ProviderOption {
	return func(p *Provider) {
		p.state.Mode = mode.Sanitize(placeholder)
	}
}

// NewProvider binds to manager. A nil manager yields a provider that reports
// its placeholder state and ignores SetMode.
func NewProvider(manager *mode.Manager, opts ...ProviderOption) *Provider {
	p := &Provider{
		manager: manager,
		state: State{
			Mode:  mode.ModeSystem,
			Theme: mode.ThemeLight,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	if manager != nil {
		p.state = State{Mode: manager.Mode(), Theme: manager.Theme()}
	}
	return p
}

// State returns the provider's current copy of the manager state.
func (p *Provider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// SetMode forwards to the manager. It does nothing without one.
func (p *Provider) SetMode(m mode.Mode) {
	if p.manager == nil {
		return
	}
	p.manager.SetMode(string(m))
}

// Context returns the value handed to descendant components.
func (p *Provider) Context() Context {
	state := p.State()
	return Context{
		Mode:    state.Mode,
		Theme:   state.Theme,
		SetMode: p.SetMode,
	}
}

// Start subscribes to the manager and calls onChange with the full state after
// every mode or theme notification, including the initial replays. The
// returned stop function unsubscribes and is safe to call more than once.
func (p *Provider) Start(onChange func(State)) (stop func()) {
	if p.manager == nil {
		onChange(p.State())
		return func() {}
	}

	p.mu.Lock()
	p.state = State{Mode: p.manager.Mode(), Theme: p.manager.Theme()}
	p.mu.Unlock()

	unwatchMode := p.manager.WatchMode(func(m mode.Mode) {
		onChange(p.update(func(s *State) { s.Mode = m }))
	})
	unwatchTheme := p.manager.WatchTheme(func(t mode.Theme) {
		onChange(p.update(func(s *State) { s.Theme = t }))
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			unwatchMode()
			unwatchTheme()
		})
	}
}

func (p *Provider) update(apply func(*State)) State {
	p.mu.Lock()
	defer p.mu.Unlock()
	apply(&p.state)
	return p.state
}
