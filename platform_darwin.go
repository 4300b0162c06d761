//go:build darwin && cgo

package screengrab

/*
#cgo CFLAGS: -x objective-c -fobjc-arc
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework AppKit

#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <AppKit/AppKit.h>
#include <stdint.h>
#include <stdlib.h>
#include <string.h>
#include <stdio.h>

#define SG_MAX_DISPLAYS 16

typedef struct {
    uint32_t displayID;
    int32_t  x;
    int32_t  y;
    int32_t  width;
    int32_t  height;
    int      isMain;
    char     name[128];
} DisplayDesc;

typedef struct {
    void* data;
    int   width;
    int   height;
    int   bytesPerRow;
    int   error;
} GrabResult;

// listDisplays fills out with the active displays and returns the count,
// or -1 if the display list cannot be read.
int listDisplays(DisplayDesc* out, int max) {
    CGDirectDisplayID ids[SG_MAX_DISPLAYS];
    uint32_t count = 0;
    if (CGGetActiveDisplayList((uint32_t)max, ids, &count) != kCGErrorSuccess) {
        return -1;
    }

    CGDirectDisplayID mainID = CGMainDisplayID();
    for (uint32_t i = 0; i < count; i++) {
        DisplayDesc* d = &out[i];
        memset(d, 0, sizeof(*d));
        d->displayID = ids[i];
        d->isMain = (ids[i] == mainID) ? 1 : 0;

        CGRect bounds = CGDisplayBounds(ids[i]);
        d->x = (int32_t)bounds.origin.x;
        d->y = (int32_t)bounds.origin.y;

        // CGDisplayBounds is in points; the current display mode carries the
        // native pixel size, which is what a capture of this display yields.
        d->width = (int32_t)CGDisplayPixelsWide(ids[i]);
        d->height = (int32_t)CGDisplayPixelsHigh(ids[i]);
        CGDisplayModeRef mode = CGDisplayCopyDisplayMode(ids[i]);
        if (mode != NULL) {
            d->width = (int32_t)CGDisplayModeGetPixelWidth(mode);
            d->height = (int32_t)CGDisplayModeGetPixelHeight(mode);
            CGDisplayModeRelease(mode);
        }

        snprintf(d->name, sizeof(d->name), "Display %u", ids[i]);
        for (NSScreen* screen in [NSScreen screens]) {
            NSNumber* num = screen.deviceDescription[@"NSScreenNumber"];
            if (num && [num unsignedIntValue] == ids[i]) {
                if (@available(macOS 10.15, *)) {
                    const char* ln = [[screen localizedName] UTF8String];
                    if (ln != NULL) {
                        strlcpy(d->name, ln, sizeof(d->name));
                    }
                }
                break;
            }
        }
    }
    return (int)count;
}

// grabDisplay captures one display and converts it to tightly packed RGBA.
// Error codes: 2 display gone, 3 capture failed, 4 out of memory, 5 bitmap
// context failed.
GrabResult grabDisplay(uint32_t displayID) {
    GrabResult r = {0};

    if (!CGDisplayIsActive(displayID)) {
        r.error = 2;
        return r;
    }

    CGImageRef image = CGDisplayCreateImage(displayID);
    if (image == NULL) {
        r.error = 3;
        return r;
    }

    r.width = (int)CGImageGetWidth(image);
    r.height = (int)CGImageGetHeight(image);
    r.bytesPerRow = r.width * 4;

    size_t size = (size_t)r.bytesPerRow * (size_t)r.height;
    r.data = malloc(size);
    if (r.data == NULL) {
        CGImageRelease(image);
        r.error = 4;
        return r;
    }

    CGColorSpaceRef colorSpace = CGColorSpaceCreateDeviceRGB();
    CGContextRef ctx = CGBitmapContextCreate(
        r.data,
        r.width,
        r.height,
        8,
        r.bytesPerRow,
        colorSpace,
        kCGImageAlphaPremultipliedLast | kCGBitmapByteOrder32Big  // RGBA
    );
    if (ctx == NULL) {
        free(r.data);
        r.data = NULL;
        CGColorSpaceRelease(colorSpace);
        CGImageRelease(image);
        r.error = 5;
        return r;
    }

    CGContextDrawImage(ctx, CGRectMake(0, 0, r.width, r.height), image);

    CGContextRelease(ctx);
    CGColorSpaceRelease(colorSpace);
    CGImageRelease(image);
    return r;
}

// freeGrabData frees the pixel buffer of a GrabResult.
void freeGrabData(void* data) {
    if (data != NULL) {
        free(data);
    }
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

const maxDisplays = 16 // keep in sync with SG_MAX_DISPLAYS

// platformEnumerate lists the active CoreGraphics displays with native pixel
// geometry and, on 10.15+, the user-visible screen name.
func platformEnumerate() ([]Monitor, error) {
	var descs [maxDisplays]C.DisplayDesc
	n := int(C.listDisplays(&descs[0], C.int(maxDisplays)))
	if n < 0 {
		return nil, fmt.Errorf("CGGetActiveDisplayList failed: %w", ErrPlatformUnavailable)
	}

	monitors := make([]Monitor, 0, n)
	for i := 0; i < n; i++ {
		d := &descs[i]
		monitors = append(monitors, Monitor{
			PlatformID: uint32(d.displayID),
			Name:       C.GoString(&d.name[0]),
			X:          int(d.x),
			Y:          int(d.y),
			Width:      int(d.width),
			Height:     int(d.height),
			IsPrimary:  d.isMain != 0,
		})
	}
	return monitors, nil
}

// platformGrab captures one display via CGDisplayCreateImage. The bitmap
// context already draws RGBA; normalizeRGBA still runs to strip padding and
// copy the pixels out of the C heap.
func platformGrab(m Monitor) (*Frame, error) {
	r := C.grabDisplay(C.uint32_t(m.PlatformID))
	if r.error != 0 {
		return nil, translateGrabError(int(r.error), m)
	}
	if r.data == nil {
		return nil, fmt.Errorf("no image data for display %d: %w", m.PlatformID, ErrCaptureFailed)
	}
	defer C.freeGrabData(r.data)

	width := int(r.width)
	height := int(r.height)
	stride := int(r.bytesPerRow)

	src := unsafe.Slice((*byte)(r.data), stride*height)
	pixels, err := normalizeRGBA(src, width, height, stride, orderRGBA, false)
	if err != nil {
		return nil, err
	}
	return &Frame{Pixels: pixels, Width: width, Height: height}, nil
}

// translateGrabError converts C error codes to Go errors.
func translateGrabError(code int, m Monitor) error {
	switch code {
	case 2:
		return fmt.Errorf("display %d (%s): %w", m.PlatformID, m.Name, ErrMonitorGone)
	case 3:
		return fmt.Errorf("CGDisplayCreateImage failed for display %d, missing screen recording permission?: %w",
			m.PlatformID, ErrCaptureFailed)
	case 4:
		return fmt.Errorf("pixel buffer allocation failed: %w", ErrCaptureFailed)
	case 5:
		return fmt.Errorf("bitmap context creation failed: %w", ErrConversionFailed)
	default:
		return fmt.Errorf("capture error %d: %w", code, ErrCaptureFailed)
	}
}
