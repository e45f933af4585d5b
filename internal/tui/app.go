// Package tui implements the thememode terminal user interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opencode-ai/thememode/internal/binding"
	"github.com/opencode-ai/thememode/internal/mode"
	"github.com/opencode-ai/thememode/internal/tui/components"
	"github.com/opencode-ai/thememode/internal/tui/styles"
)

// Config configures the TUI.
type Config struct {
	// Provider supplies mode and theme state. Required.
	Provider *binding.Provider

	// Source names the platform preference source, for display.
	Source string
}

// Run launches the TUI program and blocks until it exits.
func Run(cfg Config) error {
	if cfg.Provider == nil {
		return fmt.Errorf("provider is required")
	}

	bridge := newStateBridge(cfg.Provider)
	program := tea.NewProgram(newModel(cfg, bridge), tea.WithAltScreen())
	bridge.attach(program)
	defer bridge.unsubscribe()

	_, err := program.Run()
	return err
}

type model struct {
	width       int
	height      int
	styles      styles.Styles
	appearance  binding.Context
	bridge      *stateBridge
	source      string
	lastChanged time.Time
}

const (
	minWidth  = 40
	minHeight = 10
)

func newModel(cfg Config, bridge *stateBridge) model {
	appearance := cfg.Provider.Context()
	return model{
		styles:     styles.StylesFor(appearance.Theme),
		appearance: appearance,
		bridge:     bridge,
		source:     cfg.Source,
	}
}

func (m model) Init() tea.Cmd {
	if m.bridge == nil {
		return nil
	}
	return m.bridge.subscribe()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if option, ok := components.OptionForKey(key); ok {
			return m, setModeCmd(m.appearance.SetMode, option.Mode)
		}
		switch key {
		case "tab":
			return m, setModeCmd(m.appearance.SetMode, mode.Next(m.appearance.Mode))
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StateChangeMsg:
		if msg.State.Theme != m.appearance.Theme {
			m.styles = styles.StylesFor(msg.State.Theme)
		}
		m.appearance.Mode = msg.State.Mode
		m.appearance.Theme = msg.State.Theme
		m.lastChanged = time.Now()
	}
	return m, nil
}

func (m model) View() string {
	if m.width > 0 && m.height > 0 {
		if m.width < minWidth || m.height < minHeight {
			return fmt.Sprintf("%s\n", strings.Join(m.smallViewLines(), "\n"))
		}
	}

	lines := []string{
		m.styles.Title.Render("Appearance"),
		"",
		fmt.Sprintf("%s %s", m.styles.Muted.Render("Mode: "), components.RenderModeBadge(m.styles, m.appearance.Mode)),
		fmt.Sprintf("%s %s", m.styles.Muted.Render("Theme:"), components.RenderThemeBadge(m.styles, m.appearance.Theme)),
	}
	if m.source != "" {
		lines = append(lines, m.styles.Muted.Render(fmt.Sprintf("System preference from %s", m.source)))
	}

	lines = append(lines, "", components.RenderModePicker(m.styles, m.appearance.Mode))
	lines = append(lines, "", m.styles.Muted.Render(m.lastChangedLine()))
	lines = append(lines, "", m.styles.Muted.Render("Shortcuts: l light | d dark | s system | tab cycle | q quit"))

	return fmt.Sprintf("%s\n", m.styles.Panel.Render(strings.Join(lines, "\n")))
}

func (m model) smallViewLines() []string {
	message := fmt.Sprintf("Terminal too small (%dx%d).", m.width, m.height)
	hint := fmt.Sprintf("Resize to at least %dx%d.", minWidth, minHeight)

	return []string{
		m.styles.Warning.Render(message),
		m.styles.Muted.Render(hint),
		m.styles.Muted.Render("Press q to quit."),
	}
}

func (m model) lastChangedLine() string {
	if m.lastChanged.IsZero() {
		return "Last change: --"
	}
	return fmt.Sprintf("Last change: %s", m.lastChanged.Format("15:04:05"))
}
