//go:build windows

package screengrab

import (
	"fmt"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")

	procEnumDisplayMonitors  = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW      = user32.NewProc("GetMonitorInfoW")
	procEnumDisplaySettingsW = user32.NewProc("EnumDisplaySettingsW")
	procSetProcessDPIAware   = user32.NewProc("SetProcessDPIAware")
	procCreateDIBSection     = gdi32.NewProc("CreateDIBSection")
)

const (
	srcCopy             = 0x00CC0020
	captureBlt          = 0x40000000
	dibRGBColors        = 0
	enumCurrentSettings = 0xFFFFFFFF
)

// monitorInfoEx is MONITORINFOEXW: MONITORINFO plus the GDI device name.
type monitorInfoEx struct {
	win.MONITORINFO
	DeviceName [win.CCHDEVICENAME]uint16
}

// devMode is a trimmed DEVMODEW with only the fields read here.
type devMode struct {
	_            [68]byte
	DmSize       uint16
	_            [6]byte
	DmPosition   win.POINT
	_            [86]byte
	DmPelsWidth  uint32
	DmPelsHeight uint32
	_            [40]byte
}

func init() {
	// Capture at physical resolution on DPI-scaled systems.
	if procSetProcessDPIAware.Find() == nil {
		procSetProcessDPIAware.Call()
	}
}

type enumContext struct {
	monitors []Monitor
}

// enumCallback is registered once; NewCallback slots are a finite
// process-wide resource.
var enumCallback = windows.NewCallback(appendMonitorProc)

func appendMonitorProc(hMonitor win.HMONITOR, hdc win.HDC, rect *win.RECT, lparam uintptr) uintptr {
	ctx := (*enumContext)(unsafe.Pointer(lparam))

	var info monitorInfoEx
	info.CbSize = uint32(unsafe.Sizeof(info))
	ret, _, _ := procGetMonitorInfoW.Call(uintptr(hMonitor), uintptr(unsafe.Pointer(&info)))
	if ret == 0 {
		return 1 // skip this display, keep enumerating
	}

	m := Monitor{
		PlatformID: uint32(hMonitor),
		Name:       windows.UTF16ToString(info.DeviceName[:]),
		X:          int(info.RcMonitor.Left),
		Y:          int(info.RcMonitor.Top),
		Width:      int(info.RcMonitor.Right - info.RcMonitor.Left),
		Height:     int(info.RcMonitor.Bottom - info.RcMonitor.Top),
		IsPrimary:  info.DwFlags&win.MONITORINFOF_PRIMARY != 0,
	}

	// EnumDisplaySettings reports the mode's physical pixels; the monitor
	// rect can be DPI-virtualized depending on process awareness.
	var dm devMode
	dm.DmSize = uint16(unsafe.Sizeof(dm))
	ret, _, _ = procEnumDisplaySettingsW.Call(
		uintptr(unsafe.Pointer(&info.DeviceName[0])),
		enumCurrentSettings,
		uintptr(unsafe.Pointer(&dm)),
	)
	if ret != 0 && dm.DmPelsWidth > 0 && dm.DmPelsHeight > 0 {
		m.X = int(dm.DmPosition.X)
		m.Y = int(dm.DmPosition.Y)
		m.Width = int(dm.DmPelsWidth)
		m.Height = int(dm.DmPelsHeight)
	}

	ctx.monitors = append(ctx.monitors, m)
	return 1
}

// platformEnumerate walks the attached displays with EnumDisplayMonitors.
// A desktop with no monitors attached yields an empty list without error.
func platformEnumerate() ([]Monitor, error) {
	var ctx enumContext
	ret, _, _ := procEnumDisplayMonitors.Call(0, 0, enumCallback, uintptr(unsafe.Pointer(&ctx)))
	if ret == 0 {
		return nil, fmt.Errorf("EnumDisplayMonitors failed (code %d): %w", win.GetLastError(), ErrPlatformUnavailable)
	}
	return ctx.monitors, nil
}

// platformGrab captures the monitor's rectangle of the virtual desktop
// through a GDI DIB-section blit and converts the top-down BGRA rows to
// canonical RGBA.
func platformGrab(m Monitor) (*Frame, error) {
	// A stale HMONITOR is the one detectable "monitor gone" signal GDI
	// gives us before touching the desktop.
	var info win.MONITORINFO
	info.CbSize = uint32(unsafe.Sizeof(info))
	if !win.GetMonitorInfo(win.HMONITOR(uintptr(m.PlatformID)), &info) {
		return nil, fmt.Errorf("monitor %q (id %#x): %w", m.Name, m.PlatformID, ErrMonitorGone)
	}

	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("monitor %q has no area: %w", m.Name, ErrCaptureFailed)
	}

	screenDC := win.GetDC(0)
	if screenDC == 0 {
		return nil, fmt.Errorf("GetDC failed (code %d): %w", win.GetLastError(), ErrPlatformUnavailable)
	}
	defer win.ReleaseDC(0, screenDC)

	memDC := win.CreateCompatibleDC(screenDC)
	if memDC == 0 {
		return nil, fmt.Errorf("CreateCompatibleDC failed (code %d): %w", win.GetLastError(), ErrCaptureFailed)
	}
	defer win.DeleteDC(memDC)

	bi := win.BITMAPINFO{
		BmiHeader: win.BITMAPINFOHEADER{
			BiSize:        uint32(unsafe.Sizeof(win.BITMAPINFOHEADER{})),
			BiWidth:       int32(m.Width),
			BiHeight:      -int32(m.Height), // negative = top-down rows
			BiPlanes:      1,
			BiBitCount:    32,
			BiCompression: win.BI_RGB,
		},
	}

	var bits unsafe.Pointer
	ret, _, _ := procCreateDIBSection.Call(
		uintptr(memDC),
		uintptr(unsafe.Pointer(&bi)),
		dibRGBColors,
		uintptr(unsafe.Pointer(&bits)),
		0,
		0,
	)
	hBitmap := win.HBITMAP(ret)
	if hBitmap == 0 || bits == nil {
		return nil, fmt.Errorf("CreateDIBSection failed (code %d): %w", win.GetLastError(), ErrCaptureFailed)
	}
	defer win.DeleteObject(win.HGDIOBJ(hBitmap))

	old := win.SelectObject(memDC, win.HGDIOBJ(hBitmap))
	if old == 0 {
		return nil, fmt.Errorf("SelectObject failed (code %d): %w", win.GetLastError(), ErrCaptureFailed)
	}
	defer win.SelectObject(memDC, old)

	// CAPTUREBLT includes layered windows but is rejected during secure
	// desktop transitions; retry with plain SRCCOPY before giving up.
	if !win.BitBlt(memDC, 0, 0, int32(m.Width), int32(m.Height),
		screenDC, int32(m.X), int32(m.Y), srcCopy|captureBlt) {
		if !win.BitBlt(memDC, 0, 0, int32(m.Width), int32(m.Height),
			screenDC, int32(m.X), int32(m.Y), srcCopy) {
			return nil, fmt.Errorf("BitBlt failed (code %d): %w", win.GetLastError(), ErrCaptureFailed)
		}
	}

	bgra := unsafe.Slice((*byte)(bits), m.Width*m.Height*4)
	pixels, err := normalizeRGBA(bgra, m.Width, m.Height, m.Width*4, orderBGRA, false)
	if err != nil {
		return nil, err
	}
	return &Frame{Pixels: pixels, Width: m.Width, Height: m.Height}, nil
}
