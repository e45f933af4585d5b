//go:build windows

package platform

import "fmt"

const nativeSignal = SignalRegistry

func openNative(name string, opts Options) (*Opened, error) {
	if name != SignalRegistry {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
	if _, err := readAppsUseLightTheme(); err != nil {
		return nil, err
	}
	p := NewRegistry(opts.PollInterval, opts.Logger)
	return &Opened{Signal: p, Closer: p, Source: SignalRegistry}, nil
}
