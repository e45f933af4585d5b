//go:build !linux && !windows && !darwin

package platform

import "fmt"

const nativeSignal = ""

func openNative(name string, _ Options) (*Opened, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
}
