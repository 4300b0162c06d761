package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/outframe/screengrab"
	"github.com/shirou/gopsutil/v3/host"
)

// doctor reports everything relevant to "why does capture not work here":
// host details, graphics session hints, an enumeration probe, and the
// recorded last error.
func doctor() {
	loadConfig()

	fmt.Printf("screengrab v%s on %s/%s\n\n", version, runtime.GOOS, runtime.GOARCH)

	if info, err := host.Info(); err == nil {
		fmt.Printf("Host:       %s\n", info.Hostname)
		fmt.Printf("OS:         %s %s (%s)\n", info.Platform, info.PlatformVersion, info.KernelVersion)
	} else {
		fmt.Printf("Host:       unavailable (%v)\n", err)
	}

	if runtime.GOOS == "linux" {
		fmt.Printf("DISPLAY:         %s\n", orUnset(os.Getenv("DISPLAY")))
		fmt.Printf("WAYLAND_DISPLAY: %s\n", orUnset(os.Getenv("WAYLAND_DISPLAY")))
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") != "" {
			fmt.Println("Note: capture needs an X server; pure Wayland sessions require XWayland.")
		}
	}

	fmt.Println()
	session := screengrab.NewSession()
	count := session.MonitorCount()
	fmt.Printf("Monitors:   %d\n", count)
	for _, m := range session.Monitors() {
		primary := ""
		if m.IsPrimary {
			primary = " primary"
		}
		fmt.Printf("  [%d] %s %dx%d at %d,%d%s\n", m.Index, m.Name, m.Width, m.Height, m.X, m.Y, primary)
	}

	if err := session.LastError(); err != nil {
		fmt.Printf("Last error: %v\n", err)
	} else {
		fmt.Println("Last error: none")
	}
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
