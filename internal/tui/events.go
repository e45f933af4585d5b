package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opencode-ai/thememode/internal/binding"
	"github.com/opencode-ai/thememode/internal/mode"
)

// StateChangeMsg carries the provider state after a mode or theme notification.
type StateChangeMsg struct {
	State binding.State
}

// stateBridge forwards provider notifications into a running program.
type stateBridge struct {
	provider *binding.Provider

	mu      sync.Mutex
	program *tea.Program
	stop    func()
}

func newStateBridge(provider *binding.Provider) *stateBridge {
	return &stateBridge{provider: provider}
}

func (b *stateBridge) attach(program *tea.Program) {
	b.mu.Lock()
	b.program = program
	b.mu.Unlock()
}

// subscribe returns a command that starts the provider. Notifications are
// delivered with program.Send, so it must run off the event loop.
func (b *stateBridge) subscribe() tea.Cmd {
	return func() tea.Msg {
		b.mu.Lock()
		program := b.program
		b.mu.Unlock()
		if program == nil {
			return nil
		}

		stop := b.provider.Start(func(state binding.State) {
			program.Send(StateChangeMsg{State: state})
		})

		b.mu.Lock()
		b.stop = stop
		b.mu.Unlock()
		return nil
	}
}

// unsubscribe stops the provider if it was started.
func (b *stateBridge) unsubscribe() {
	b.mu.Lock()
	stop := b.stop
	b.stop = nil
	b.mu.Unlock()

	if stop != nil {
		stop()
	}
}

// setModeCmd forwards a mode change outside the event loop; the resulting
// notifications come back as StateChangeMsg.
func setModeCmd(setMode func(mode.Mode), m mode.Mode) tea.Cmd {
	return func() tea.Msg {
		setMode(m)
		return nil
	}
}
