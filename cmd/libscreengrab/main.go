// Command libscreengrab builds the C shared library form of the capture
// core. Build it with:
//
//	go build -buildmode=c-shared -o libscreengrab.so ./cmd/libscreengrab
//
// Every returned string and image buffer is owned by the caller and must
// be released with screengrab_free_string or screengrab_free_image.
package main

/*
#include <stdint.h>
#include <stddef.h>
#include <stdlib.h>

// A single captured frame. data points to width*height*4 bytes of RGBA
// with no row padding, top row first, alpha forced opaque. data is NULL
// and all fields zero when the capture failed.
typedef struct screengrab_image {
	uint8_t  *data;
	size_t    len;
	uint32_t  width;
	uint32_t  height;
} screengrab_image;
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/outframe/screengrab"
)

var (
	sessionOnce sync.Once
	session     *screengrab.Session
)

// getSession lazily builds the process-wide session. The first monitor
// query enumerates displays; later calls reuse the cached list until
// screengrab_refresh_monitors is called.
func getSession() *screengrab.Session {
	sessionOnce.Do(func() {
		session = screengrab.NewSession()
	})
	return session
}

//export screengrab_monitor_count
func screengrab_monitor_count() C.size_t {
	return C.size_t(getSession().MonitorCount())
}

//export screengrab_refresh_monitors
func screengrab_refresh_monitors() C.int {
	count, err := getSession().Refresh()
	if err != nil {
		return -1
	}
	return C.int(count)
}

//export screengrab_monitor_name
func screengrab_monitor_name(index C.size_t) *C.char {
	m, err := getSession().Monitor(int(index))
	if err != nil {
		return nil
	}
	return C.CString(m.Name)
}

//export screengrab_monitor_id
func screengrab_monitor_id(index C.size_t) C.uint32_t {
	m, err := getSession().Monitor(int(index))
	if err != nil {
		return 0
	}
	return C.uint32_t(m.PlatformID)
}

//export screengrab_monitor_width
func screengrab_monitor_width(index C.size_t) C.uint32_t {
	m, err := getSession().Monitor(int(index))
	if err != nil {
		return 0
	}
	return C.uint32_t(m.Width)
}

//export screengrab_monitor_height
func screengrab_monitor_height(index C.size_t) C.uint32_t {
	m, err := getSession().Monitor(int(index))
	if err != nil {
		return 0
	}
	return C.uint32_t(m.Height)
}

//export screengrab_capture_image
func screengrab_capture_image(index C.size_t) C.screengrab_image {
	var out C.screengrab_image

	s := getSession()
	frame, err := s.Capture(int(index))
	if err != nil {
		return out
	}

	// Copy into C-owned memory so the pooled Go buffer can be reused.
	out.data = (*C.uint8_t)(C.CBytes(frame.Pixels))
	out.len = C.size_t(len(frame.Pixels))
	out.width = C.uint32_t(frame.Width)
	out.height = C.uint32_t(frame.Height)
	s.Release(frame)
	return out
}

//export screengrab_last_error_message
func screengrab_last_error_message() *C.char {
	err := getSession().LastError()
	if err == nil {
		return nil
	}
	return C.CString(err.Error())
}

//export screengrab_free_string
func screengrab_free_string(p *C.char) {
	if p != nil {
		C.free(unsafe.Pointer(p))
	}
}

//export screengrab_free_image
func screengrab_free_image(img C.screengrab_image) {
	if img.data != nil {
		C.free(unsafe.Pointer(img.data))
	}
}

func main() {}
