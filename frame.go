package screengrab

import (
	"fmt"
	"image"
)

// Frame is one captured screenshot in canonical form: 8-bit RGBA, four bytes
// per pixel, rows ordered top to bottom with no padding between them. Alpha
// is always fully opaque.
//
// Frames returned by Session.Capture hold pooled buffers; hand them back
// with Session.Release once the pixels are no longer needed.
type Frame struct {
	Pixels []byte
	Width  int
	Height int
}

// Validate checks that the frame has area and that the pixel buffer matches
// the declared dimensions. A zero-dimension frame is a failed capture, never
// an empty-but-valid result.
func (f *Frame) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("frame has no area (%dx%d): %w", f.Width, f.Height, ErrConversionFailed)
	}
	if want := f.Width * f.Height * 4; len(f.Pixels) != want {
		return fmt.Errorf("pixel buffer is %d bytes, want %d for %dx%d: %w",
			len(f.Pixels), want, f.Width, f.Height, ErrConversionFailed)
	}
	return nil
}

// RGBA wraps the frame in an *image.RGBA without copying. The image shares
// the frame's buffer and must not be used after the frame is released.
func (f *Frame) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    f.Pixels,
		Stride: f.Width * 4,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}
