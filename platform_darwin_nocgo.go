//go:build darwin && !cgo

package screengrab

import "fmt"

// Capture on macOS requires the CoreGraphics and AppKit frameworks via cgo.

func platformEnumerate() ([]Monitor, error) {
	return nil, fmt.Errorf("built without cgo: %w", ErrPlatformUnavailable)
}

func platformGrab(Monitor) (*Frame, error) {
	return nil, fmt.Errorf("built without cgo: %w", ErrPlatformUnavailable)
}
