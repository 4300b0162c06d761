// Package screengrab captures single screenshots of individual monitors and
// returns them in one canonical pixel format: 8-bit RGBA, four bytes per
// pixel, rows top to bottom with no padding. All capture goes through a
// Session, which caches the monitor list so index-based lookups stay stable
// between explicit refreshes.
package screengrab

import (
	"fmt"
	"sync"
)

// Session is the façade over monitor enumeration and frame capture. The
// cached monitor list is filled by the first MonitorCount call and replaced
// wholesale by Refresh; it is never mutated in place, so descriptors read by
// one caller stay valid while another refreshes. All methods are safe for
// concurrent use: operations are serialized by an internal lock and the
// session never spawns goroutines of its own.
type Session struct {
	mu         sync.Mutex
	monitors   []Monitor
	enumerated bool

	// Platform seams, replaced in tests.
	enumerate func() ([]Monitor, error)
	grab      func(Monitor) (*Frame, error)
}

// NewSession returns a session backed by the native display platform.
func NewSession() *Session {
	return &Session{
		enumerate: platformEnumerate,
		grab:      platformGrab,
	}
}

// Refresh re-enumerates the attached monitors and atomically replaces the
// cached list, returning the new monitor count. On failure the previous
// cache is kept, the error is recorded in the process-wide error slot, and
// the returned count is 0.
func (s *Session) Refresh() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refreshLocked(); err != nil {
		return 0, err
	}
	return len(s.monitors), nil
}

func (s *Session) refreshLocked() error {
	list, err := s.enumerate()
	if err != nil {
		setLastError(err)
		return err
	}
	for i := range list {
		list[i].Index = i
	}
	s.monitors = list
	s.enumerated = true
	return nil
}

// MonitorCount returns the number of cached monitors. The first successful
// call performs the initial enumeration; afterwards the count only changes
// through Refresh. A reachable platform with no attached displays yields 0
// without recording an error; an enumeration failure records the error,
// leaves the session unenumerated, and yields 0.
func (s *Session) MonitorCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enumerated {
		if err := s.refreshLocked(); err != nil {
			return 0
		}
	}
	return len(s.monitors)
}

// Monitors returns a copy of the cached monitor list.
func (s *Session) Monitors() []Monitor {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Monitor, len(s.monitors))
	copy(out, s.monitors)
	return out
}

// Monitor returns the cached descriptor at index. It never enumerates: an
// index outside the cache fails with ErrInvalidIndex even if displays were
// attached since the last refresh.
func (s *Session) Monitor(index int) (Monitor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.monitors) {
		err := fmt.Errorf("monitor %d of %d: %w", index, len(s.monitors), ErrInvalidIndex)
		setLastError(err)
		return Monitor{}, err
	}
	return s.monitors[index], nil
}

// Capture grabs one frame of the monitor at index in canonical RGBA form.
// The index is checked against the cache before any platform call is made.
// The returned frame holds a pooled buffer; hand it back via Release.
func (s *Session) Capture(index int) (*Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.monitors) {
		err := fmt.Errorf("monitor %d of %d: %w", index, len(s.monitors), ErrInvalidIndex)
		setLastError(err)
		return nil, err
	}

	frame, err := s.grab(s.monitors[index])
	if err != nil {
		setLastError(err)
		return nil, err
	}
	if err := frame.Validate(); err != nil {
		putPixelBuf(frame.Pixels)
		setLastError(err)
		return nil, err
	}
	return frame, nil
}

// Release returns a frame's pixel buffer to the internal pool and clears the
// frame. Releasing nil, an empty frame, or an already-released frame is a
// no-op.
func (s *Session) Release(f *Frame) {
	if f == nil || len(f.Pixels) == 0 {
		return
	}
	putPixelBuf(f.Pixels)
	f.Pixels = nil
	f.Width = 0
	f.Height = 0
}

// LastError returns the most recent failure recorded in the process-wide
// error slot. Reading does not clear it.
func (s *Session) LastError() error {
	return LastError()
}

// ClearLastError resets the process-wide error slot.
func (s *Session) ClearLastError() {
	ClearLastError()
}
