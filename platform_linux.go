//go:build linux

package screengrab

import (
	"fmt"
	"log/slog"
	"os"

	mshm "github.com/gen2brain/shm"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/shm"
	"github.com/jezek/xgb/xproto"
)

// platformEnumerate connects to the X server and walks the connected RandR
// outputs. A missing DISPLAY is treated as a headless system: no monitors,
// no error. A refused connection is a platform failure. Servers without the
// RandR extension report the root screen as a single monitor.
func platformEnumerate() ([]Monitor, error) {
	if os.Getenv("DISPLAY") == "" {
		return nil, nil
	}

	c, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %v: %w", err, ErrPlatformUnavailable)
	}
	defer c.Close()

	screen := xproto.Setup(c).DefaultScreen(c)

	if err := randr.Init(c); err != nil {
		slog.Warn("RandR unavailable, reporting root screen only", "error", err)
		return []Monitor{{
			Name:      "X11 root",
			Width:     int(screen.WidthInPixels),
			Height:    int(screen.HeightInPixels),
			IsPrimary: true,
		}}, nil
	}

	res, err := randr.GetScreenResources(c, screen.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("RandR screen resources: %v: %w", err, ErrPlatformUnavailable)
	}

	var primary randr.Output
	if rep, err := randr.GetOutputPrimary(c, screen.Root).Reply(); err == nil {
		primary = rep.Output
	}

	var monitors []Monitor
	for _, output := range res.Outputs {
		oi, err := randr.GetOutputInfo(c, output, res.ConfigTimestamp).Reply()
		if err != nil || oi.Connection != randr.ConnectionConnected || oi.Crtc == 0 {
			continue
		}
		ci, err := randr.GetCrtcInfo(c, oi.Crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		monitors = append(monitors, Monitor{
			PlatformID: uint32(output),
			Name:       string(oi.Name),
			X:          int(ci.X),
			Y:          int(ci.Y),
			Width:      int(ci.Width),
			Height:     int(ci.Height),
			IsPrimary:  output == primary,
		})
	}
	return monitors, nil
}

// platformGrab captures the monitor's rectangle of the root window, through
// MIT-SHM when the server supports it and a plain GetImage otherwise.
func platformGrab(m Monitor) (*Frame, error) {
	c, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %v: %w", err, ErrPlatformUnavailable)
	}
	defer c.Close()

	setup := xproto.Setup(c)
	screen := setup.DefaultScreen(c)

	// Re-resolve the output first: a cached descriptor may point at a
	// display that was unplugged since the last refresh. PlatformID 0 is
	// the RandR-less root fallback, which has nothing to re-resolve.
	if m.PlatformID != 0 {
		if err := randr.Init(c); err == nil {
			oi, err := randr.GetOutputInfo(c, randr.Output(m.PlatformID), 0).Reply()
			if err != nil || oi.Connection != randr.ConnectionConnected {
				return nil, fmt.Errorf("output %d (%s): %w", m.PlatformID, m.Name, ErrMonitorGone)
			}
		}
	}

	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("monitor %q has no area: %w", m.Name, ErrCaptureFailed)
	}
	if setup.ImageByteOrder != xproto.ImageOrderLSBFirst {
		return nil, fmt.Errorf("big-endian X server pixel order: %w", ErrConversionFailed)
	}

	data, depth, err := fetchImage(c, screen, m)
	if err != nil {
		return nil, err
	}
	if depth != 24 && depth != 32 {
		return nil, fmt.Errorf("unsupported root depth %d: %w", depth, ErrConversionFailed)
	}

	pixels, err := normalizeRGBA(data, m.Width, m.Height, m.Width*4, orderBGRA, false)
	if err != nil {
		return nil, err
	}
	return &Frame{Pixels: pixels, Width: m.Width, Height: m.Height}, nil
}

// fetchImage reads the raw 32-bit ZPixmap bytes for the monitor rectangle.
func fetchImage(c *xgb.Conn, screen *xproto.ScreenInfo, m Monitor) ([]byte, byte, error) {
	drawable := xproto.Drawable(screen.Root)
	x, y := int16(m.X), int16(m.Y)
	w, h := uint16(m.Width), uint16(m.Height)

	if err := shm.Init(c); err == nil {
		data, depth, err := fetchImageSHM(c, drawable, x, y, w, h)
		if err == nil {
			return data, depth, nil
		}
		slog.Debug("MIT-SHM capture failed, falling back to GetImage", "error", err)
	}

	reply, err := xproto.GetImage(c, xproto.ImageFormatZPixmap, drawable,
		x, y, w, h, 0xffffffff).Reply()
	if err != nil {
		return nil, 0, fmt.Errorf("X GetImage: %v: %w", err, ErrCaptureFailed)
	}
	return reply.Data, reply.Depth, nil
}

// fetchImageSHM transfers the rectangle through a SysV shared memory segment
// instead of the X socket, which matters for full-screen grabs.
func fetchImageSHM(c *xgb.Conn, drawable xproto.Drawable, x, y int16, w, h uint16) ([]byte, byte, error) {
	size := int(w) * int(h) * 4

	shmID, err := mshm.Get(mshm.IPC_PRIVATE, size, mshm.IPC_CREAT|0777)
	if err != nil {
		return nil, 0, fmt.Errorf("shmget: %w", err)
	}
	seg, err := shm.NewSegId(c)
	if err != nil {
		mshm.Rm(shmID)
		return nil, 0, fmt.Errorf("shm segment id: %w", err)
	}
	data, err := mshm.At(shmID, 0, 0)
	if err != nil {
		mshm.Rm(shmID)
		return nil, 0, fmt.Errorf("shmat: %w", err)
	}
	// Mark for removal now so the segment dies with the process even if a
	// detach below is skipped.
	mshm.Rm(shmID)
	defer mshm.Dt(data)

	shm.Attach(c, seg, uint32(shmID), false)
	defer shm.Detach(c, seg)

	reply, err := shm.GetImage(c, drawable, x, y, w, h, 0xffffffff,
		byte(xproto.ImageFormatZPixmap), seg, 0).Reply()
	if err != nil {
		return nil, 0, fmt.Errorf("shm GetImage: %w", err)
	}

	out := make([]byte, size)
	copy(out, data)
	return out, reply.Depth, nil
}
