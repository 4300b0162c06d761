package screengrab

import "fmt"

// ErrPlatformUnavailable is returned when the display platform cannot be
// reached: no graphics session, a refused display-server connection, or an
// operating system without a capture backend.
var ErrPlatformUnavailable = fmt.Errorf("display platform unavailable")

// ErrInvalidIndex is returned when a monitor index falls outside the cached
// monitor list.
var ErrInvalidIndex = fmt.Errorf("monitor index out of range")

// ErrMonitorGone is returned when a cached monitor is no longer connected.
var ErrMonitorGone = fmt.Errorf("monitor no longer connected")

// ErrCaptureFailed is returned when the platform rejects or fails a capture.
var ErrCaptureFailed = fmt.Errorf("screen capture failed")

// ErrConversionFailed is returned when raw pixel data cannot be brought into
// the canonical RGBA layout.
var ErrConversionFailed = fmt.Errorf("pixel format conversion failed")
