package screengrab

// Monitor describes a connected display output. It is a snapshot taken at
// enumeration time: geometry and connection state are only as fresh as the
// refresh that produced it. PlatformID is the OS-native display identifier
// (HMONITOR value on Windows, RandR output XID on X11, CGDirectDisplayID on
// macOS) and is only meaningful within the session that enumerated it.
type Monitor struct {
	Index      int    `json:"index"`
	PlatformID uint32 `json:"platformId"`
	Name       string `json:"name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	IsPrimary  bool   `json:"isPrimary"`
}
