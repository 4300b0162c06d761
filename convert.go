package screengrab

import "fmt"

// pixelOrder identifies the channel order of 32-bit source pixels.
type pixelOrder int

const (
	orderBGRA pixelOrder = iota // GDI DIB sections, X11 ZPixmap on little-endian servers
	orderRGBA                   // CoreGraphics bitmap context output
)

// normalizeRGBA copies src into the canonical frame layout: RGBA channel
// order, four bytes per pixel, rows top to bottom with no padding, alpha
// forced opaque. Source rows are stride bytes apart and hold width 32-bit
// pixels each; bottomUp reverses the row order. The destination is always a
// fresh pooled buffer, even when src is already canonical, so the caller may
// release src's backing memory as soon as this returns.
func normalizeRGBA(src []byte, width, height, stride int, order pixelOrder, bottomUp bool) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d: %w", width, height, ErrConversionFailed)
	}
	if stride < width*4 {
		return nil, fmt.Errorf("stride %d shorter than a row of %d pixels: %w", stride, width, ErrConversionFailed)
	}
	if need := (height-1)*stride + width*4; len(src) < need {
		return nil, fmt.Errorf("source buffer is %d bytes, need %d: %w", len(src), need, ErrConversionFailed)
	}

	dst := getPixelBuf(width * height * 4)
	for y := 0; y < height; y++ {
		srcOff := y * stride
		if bottomUp {
			srcOff = (height - 1 - y) * stride
		}
		row := src[srcOff : srcOff+width*4]
		out := dst[y*width*4 : (y+1)*width*4]

		switch order {
		case orderBGRA:
			for x := 0; x < width; x++ {
				pi := x * 4
				out[pi] = row[pi+2]
				out[pi+1] = row[pi+1]
				out[pi+2] = row[pi]
				out[pi+3] = 0xFF
			}
		default:
			for x := 0; x < width; x++ {
				pi := x * 4
				out[pi] = row[pi]
				out[pi+1] = row[pi+1]
				out[pi+2] = row[pi+2]
				out[pi+3] = 0xFF
			}
		}
	}
	return dst, nil
}
