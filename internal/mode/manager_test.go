package mode

import (
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/opencode-ai/thememode/internal/platform"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder[T any] struct {
	got []T
}

func (r *recorder[T]) record(v T) {
	r.got = append(r.got, v)
}

func TestNewSystemFollowsPlatform(t *testing.T) {
	signal := platform.NewStatic(true)
	m := New("system", signal)

	assert.Equal(t, ModeSystem, m.Mode())
	assert.Equal(t, ThemeDark, m.Theme())
	assert.Equal(t, 1, signal.Subscribers())
}

func TestNewSanitizesInitialMode(t *testing.T) {
	signal := platform.NewStatic(false)
	m := New("banana", signal)

	assert.Equal(t, ModeSystem, m.Mode())
	assert.Equal(t, ThemeLight, m.Theme())
}

func TestNewExplicitModeIgnoresPlatform(t *testing.T) {
	signal := platform.NewStatic(true)
	m := New("light", signal)

	assert.Equal(t, ModeLight, m.Mode())
	assert.Equal(t, ThemeLight, m.Theme())
	assert.Equal(t, 0, signal.Subscribers())
}

func TestPlatformChangesWhileSystem(t *testing.T) {
	signal := platform.NewStatic(false)
	m := New("dark", signal)

	themes := &recorder[Theme]{}
	m.WatchTheme(themes.record)

	m.SetMode("light")
	m.SetMode("system")
	require.Equal(t, []Theme{ThemeDark, ThemeLight, ThemeLight}, themes.got)

	signal.Set(true)
	assert.Equal(t, []Theme{ThemeDark, ThemeLight, ThemeLight, ThemeDark}, themes.got)
	assert.Equal(t, ThemeDark, m.Theme())

	signal.Set(false)
	assert.Equal(t, []Theme{ThemeDark, ThemeLight, ThemeLight, ThemeDark, ThemeLight}, themes.got)
	assert.Equal(t, ThemeLight, m.Theme())
}

func TestRepeatedSystemKeepsSingleSubscription(t *testing.T) {
	signal := platform.NewStatic(false)
	m := New("system", signal)

	m.SetMode("system")
	m.SetMode("system")
	m.SetMode("system")
	require.Equal(t, 1, signal.Subscribers())

	themes := &recorder[Theme]{}
	m.WatchTheme(themes.record)
	themes.got = nil

	signal.Set(true)
	assert.Equal(t, []Theme{ThemeDark}, themes.got)
}

func TestExplicitModeDropsPlatformSubscription(t *testing.T) {
	signal := platform.NewStatic(false)
	m := New("system", signal)
	require.Equal(t, 1, signal.Subscribers())

	m.SetMode("dark")
	assert.Equal(t, 0, signal.Subscribers())

	themes := &recorder[Theme]{}
	m.WatchTheme(themes.record)
	themes.got = nil

	signal.Set(true)
	signal.Set(false)
	assert.Empty(t, themes.got)
	assert.Equal(t, ThemeDark, m.Theme())
}

func TestWatchModeReplaysAndUnsubscribes(t *testing.T) {
	m := New("dark", platform.NewStatic(false))

	modes := &recorder[Mode]{}
	unsubscribe := m.WatchMode(modes.record)
	require.Equal(t, []Mode{ModeDark}, modes.got)

	m.SetMode("light")
	require.Equal(t, []Mode{ModeDark, ModeLight}, modes.got)

	unsubscribe()
	unsubscribe()
	m.SetMode("system")
	assert.Equal(t, []Mode{ModeDark, ModeLight}, modes.got)
}

func TestWatchThemeReplaysAndUnsubscribes(t *testing.T) {
	signal := platform.NewStatic(true)
	m := New("system", signal)

	themes := &recorder[Theme]{}
	unsubscribe := m.WatchTheme(themes.record)
	require.Equal(t, []Theme{ThemeDark}, themes.got)

	unsubscribe()
	signal.Set(false)
	m.SetMode("dark")
	assert.Equal(t, []Theme{ThemeDark}, themes.got)
}

func TestSetModeNotifiesWithoutDeduplication(t *testing.T) {
	m := New("system", platform.NewStatic(false))

	modes := &recorder[Mode]{}
	themes := &recorder[Theme]{}
	m.WatchMode(modes.record)
	m.WatchTheme(themes.record)
	modes.got, themes.got = nil, nil

	m.SetMode("light")
	m.SetMode("light")

	assert.Equal(t, []Mode{ModeLight, ModeLight}, modes.got)
	assert.Equal(t, []Theme{ThemeLight, ThemeLight}, themes.got)
}

func TestSetModeSanitizes(t *testing.T) {
	m := New("light", platform.NewStatic(true))

	m.SetMode("Dark")
	assert.Equal(t, ModeSystem, m.Mode())
	assert.Equal(t, ThemeDark, m.Theme())
}

func TestNotificationOrder(t *testing.T) {
	m := New("light", platform.NewStatic(false))

	var calls []string
	m.WatchMode(func(md Mode) { calls = append(calls, "mode1:"+string(md)) })
	m.WatchTheme(func(th Theme) { calls = append(calls, "theme:"+string(th)) })
	m.WatchMode(func(md Mode) { calls = append(calls, "mode2:"+string(md)) })
	calls = nil

	m.SetMode("dark")

	// Theme watchers run from the resolver, which precedes every external mode watcher.
	assert.Equal(t, []string{"theme:dark", "mode1:dark", "mode2:dark"}, calls)
}

func TestWatcherAddedDuringNotificationMissesThatPass(t *testing.T) {
	m := New("light", platform.NewStatic(false))

	late := &recorder[Mode]{}
	armed := false
	m.WatchMode(func(Mode) {
		if armed {
			armed = false
			m.WatchMode(late.record)
		}
	})

	armed = true
	m.SetMode("dark")
	// Only the replay on registration, not the pass that registered it.
	require.Equal(t, []Mode{ModeDark}, late.got)

	m.SetMode("light")
	assert.Equal(t, []Mode{ModeDark, ModeLight}, late.got)
}

func TestHandlerMayCallBackIntoManager(t *testing.T) {
	m := New("light", platform.NewStatic(false))

	m.WatchTheme(func(th Theme) {
		if th == ThemeDark {
			m.SetMode("light")
		}
	})

	m.SetMode("dark")
	assert.Equal(t, ModeLight, m.Mode())
	assert.Equal(t, ThemeLight, m.Theme())
}

func TestCloseReleasesPlatformSubscription(t *testing.T) {
	signal := platform.NewStatic(false)
	m := New("system", signal)
	require.Equal(t, 1, signal.Subscribers())

	m.Close()
	assert.Equal(t, 0, signal.Subscribers())

	signal.Set(true)
	assert.Equal(t, ThemeLight, m.Theme())

	m.SetMode("system")
	assert.Equal(t, 1, signal.Subscribers())
	assert.Equal(t, ThemeDark, m.Theme())
}

func TestStalePlatformEventIsDropped(t *testing.T) {
	signal := platform.NewStatic(false)
	m := New("system", signal)

	m.mu.Lock()
	stale := m.generation
	m.mu.Unlock()

	m.SetMode("system")
	m.platformChanged(stale, true)

	assert.Equal(t, ThemeLight, m.Theme())
}

// interleave returns a logger that runs fn once, the first time msg is
// logged after arm is called. Log calls sit between the manager's state
// updates, so this replays a second goroutine landing in that gap.
func interleave(msg string, fn func()) (zerolog.Logger, func()) {
	armed := false
	hook := zerolog.HookFunc(func(e *zerolog.Event, level zerolog.Level, got string) {
		if armed && got == msg {
			armed = false
			fn()
		}
	})
	logger := zerolog.New(io.Discard).Level(zerolog.DebugLevel).Hook(hook)
	return logger, func() { armed = true }
}

func TestSetModeDuringPlatformEventWins(t *testing.T) {
	signal := platform.NewStatic(false)

	var m *Manager
	logger, arm := interleave("platform preference changed", func() {
		m.SetMode("light")
	})
	m = New("system", signal, WithLogger(logger))

	themes := &recorder[Theme]{}
	m.WatchTheme(themes.record)

	arm()
	signal.Set(true)

	assert.Equal(t, ModeLight, m.Mode())
	assert.Equal(t, ThemeLight, m.Theme())
	assert.Equal(t, []Theme{ThemeLight, ThemeLight}, themes.got)
	assert.Equal(t, 0, signal.Subscribers())
}

func TestSupersededSetModeDoesNotResolve(t *testing.T) {
	signal := platform.NewStatic(true)

	var m *Manager
	logger, arm := interleave("mode set", func() {
		m.SetMode("light")
	})
	m = New("dark", signal, WithLogger(logger))

	themes := &recorder[Theme]{}
	m.WatchTheme(themes.record)

	// The second SetMode stores and resolves light before the first one's
	// resolver runs for system.
	arm()
	m.SetMode("system")

	assert.Equal(t, ModeLight, m.Mode())
	assert.Equal(t, ThemeLight, m.Theme())
	assert.Equal(t, []Theme{ThemeDark, ThemeLight}, themes.got)
	assert.Equal(t, 0, signal.Subscribers())

	signal.Set(false)
	signal.Set(true)
	assert.Equal(t, ThemeLight, m.Theme())
}

func TestSameModeRaceKeepsSingleSubscription(t *testing.T) {
	signal := platform.NewStatic(false)

	var m *Manager
	logger, arm := interleave("mode set", func() {
		m.SetMode("system")
	})
	m = New("light", signal, WithLogger(logger))

	arm()
	m.SetMode("system")

	assert.Equal(t, ModeSystem, m.Mode())
	assert.Equal(t, 1, signal.Subscribers())

	signal.Set(true)
	assert.Equal(t, ThemeDark, m.Theme())
}

func TestSystemModeRecoversFromFailedFirstSample(t *testing.T) {
	var dark, fail atomic.Bool
	fail.Store(true)
	detect := func() (bool, error) {
		if fail.Load() {
			return false, errors.New("no answer")
		}
		return dark.Load(), nil
	}

	poller := platform.NewPoller("flaky", detect, 5*time.Millisecond, zerolog.Nop())
	defer poller.Close()

	m := New("system", poller)
	defer m.Close()
	require.Equal(t, ThemeLight, m.Theme())

	dark.Store(true)
	fail.Store(false)
	require.Eventually(t, func() bool { return m.Theme() == ThemeDark }, time.Second, time.Millisecond)
	assert.Equal(t, ModeSystem, m.Mode())
}
