//go:build linux

package platform

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"
)

const (
	portalDest           = "org.freedesktop.portal.Desktop"
	portalObj            = "/org/freedesktop/portal/desktop"
	portalInterface      = "org.freedesktop.portal.Settings"
	portalRead           = portalInterface + ".Read"
	signalSettingChanged = portalInterface + ".SettingChanged"

	appearanceNamespace = "org.freedesktop.appearance"
	colorSchemeKey      = "color-scheme"

	// color-scheme values: 0 no preference, 1 prefer dark, 2 prefer light.
	colorSchemePreferDark uint32 = 1
)

// Portal is a Signal backed by the XDG desktop portal's appearance settings
// on the session bus.
type Portal struct {
	logger zerolog.Logger
	conn   *dbus.Conn
	signal chan *dbus.Signal
	done   chan struct{}

	mu        sync.Mutex
	dark      bool
	listeners listeners
	closeOnce sync.Once
}

// NewPortal connects to the session bus, reads the current color scheme and
// starts listening for SettingChanged signals.
func NewPortal(logger zerolog.Logger) (*Portal, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("could not connect to dbus: %w", err)
	}

	p := &Portal{
		logger: logger.With().Str("signal", SignalPortal).Logger(),
		conn:   conn,
		signal: make(chan *dbus.Signal, 10),
		done:   make(chan struct{}),
	}

	dark, err := p.read()
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.dark = dark

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(portalObj),
		dbus.WithMatchInterface(portalInterface),
		dbus.WithMatchMember("SettingChanged"),
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("couldn't register to listen to signals in dbus: %w", err)
	}
	conn.Signal(p.signal)

	go p.listen()
	return p, nil
}

func (p *Portal) read() (bool, error) {
	var value dbus.Variant
	obj := p.conn.Object(portalDest, portalObj)
	if err := obj.Call(portalRead, 0, appearanceNamespace, colorSchemeKey).Store(&value); err != nil {
		return false, fmt.Errorf("read %s.%s: %w", appearanceNamespace, colorSchemeKey, err)
	}
	return colorSchemeDark(value), nil
}

// colorSchemeDark unwraps the (possibly nested) variant returned by the portal.
func colorSchemeDark(value dbus.Variant) bool {
	v := value.Value()
	for {
		inner, ok := v.(dbus.Variant)
		if !ok {
			break
		}
		v = inner.Value()
	}
	scheme, ok := v.(uint32)
	return ok && scheme == colorSchemePreferDark
}

// settingChange extracts the new preference from a SettingChanged signal.
// ok is false for signals about other settings.
func settingChange(signal *dbus.Signal) (dark bool, ok bool) {
	if signal == nil || signal.Name != signalSettingChanged || len(signal.Body) < 3 {
		return false, false
	}
	namespace, _ := signal.Body[0].(string)
	key, _ := signal.Body[1].(string)
	if namespace != appearanceNamespace || key != colorSchemeKey {
		return false, false
	}
	value, isVariant := signal.Body[2].(dbus.Variant)
	if !isVariant {
		return false, false
	}
	return colorSchemeDark(value), true
}

func (p *Portal) listen() {
	for {
		select {
		case signal := <-p.signal:
			dark, ok := settingChange(signal)
			if !ok {
				continue
			}

			p.mu.Lock()
			changed := p.dark != dark
			p.dark = dark
			p.mu.Unlock()

			if changed {
				p.logger.Debug().Bool("prefers_dark", dark).Msg("color scheme changed")
				p.listeners.emit(dark)
			}
		case <-p.done:
			return
		}
	}
}

// PrefersDark implements Signal.
func (p *Portal) PrefersDark() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dark
}

// Subscribe implements Signal.
func (p *Portal) Subscribe(fn func(bool)) func() {
	id := p.listeners.add(fn)
	var once sync.Once
	return func() {
		once.Do(func() {
			p.listeners.remove(id)
		})
	}
}

// Close stops listening and releases the bus connection.
func (p *Portal) Close() error {
	var err error
	p.closeOnce.Do(func() {
		close(p.done)
		p.conn.RemoveSignal(p.signal)
		_ = p.conn.RemoveMatchSignal(
			dbus.WithMatchObjectPath(portalObj),
			dbus.WithMatchInterface(portalInterface),
			dbus.WithMatchMember("SettingChanged"),
		)
		err = p.conn.Close()
	})
	return err
}
