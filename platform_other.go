//go:build !windows && !linux && !darwin

package screengrab

import "fmt"

// Stubs for platforms without a capture backend.

func platformEnumerate() ([]Monitor, error) {
	return nil, fmt.Errorf("screen capture not supported on this platform: %w", ErrPlatformUnavailable)
}

func platformGrab(Monitor) (*Frame, error) {
	return nil, fmt.Errorf("screen capture not supported on this platform: %w", ErrPlatformUnavailable)
}
