package platform

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Signal names accepted by Open.
const (
	SignalAuto     = "auto"
	SignalPortal   = "portal"
	SignalRegistry = "registry"
	SignalDefaults = "defaults"
	SignalTerminal = "terminal"
	SignalStatic   = "static"
)

// SignalNames lists every name Open accepts.
var SignalNames = []string{
	SignalAuto,
	SignalPortal,
	SignalRegistry,
	SignalDefaults,
	SignalTerminal,
	SignalStatic,
}

// Platform errors.
var (
	ErrUnsupported   = errors.New("signal not supported on this platform")
	ErrUnknownSignal = errors.New("unknown signal")
)

// Options select and tune a Signal.
type Options struct {
	// Name is one of SignalNames. Empty means SignalAuto.
	Name string

	// StaticDark is the preference reported by the static signal.
	StaticDark bool

	// PollInterval applies to polling signals.
	PollInterval time.Duration

	Logger zerolog.Logger
}

// Opened is a Signal plus the name of the source that actually backs it.
type Opened struct {
	Signal
	io.Closer

	Source string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the Signal named by opts. SignalAuto tries the OS-native source
// and falls back to the terminal background when it cannot be opened.
func Open(opts Options) (*Opened, error) {
	name := opts.Name
	if name == "" {
		name = SignalAuto
	}

	switch name {
	case SignalStatic:
		return &Opened{Signal: NewStatic(opts.StaticDark), Closer: nopCloser{}, Source: SignalStatic}, nil
	case SignalTerminal:
		p := NewTerminal(opts.PollInterval, opts.Logger)
		return &Opened{Signal: p, Closer: p, Source: SignalTerminal}, nil
	case SignalAuto:
		if nativeSignal != "" {
			opened, err := openNative(nativeSignal, opts)
			if err == nil {
				return opened, nil
			}
			opts.Logger.Warn().Err(err).Str("signal", nativeSignal).Msg("native preference source unavailable, using terminal background")
		}
		p := NewTerminal(opts.PollInterval, opts.Logger)
		return &Opened{Signal: p, Closer: p, Source: SignalTerminal}, nil
	case SignalPortal, SignalRegistry, SignalDefaults:
		return openNative(name, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSignal, name)
	}
}
