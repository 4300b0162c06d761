// Package encode serializes captured frames to on-disk image formats. It
// operates on already-captured pixels only; capture itself lives in the
// root package.
package encode

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
)

// Format identifies an output encoding.
type Format string

const (
	PNG Format = "png"
	PPM Format = "ppm"
	Raw Format = "raw"
)

// Parse maps a user-supplied format name to a Format.
func Parse(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return PNG, nil
	case "ppm":
		return PPM, nil
	case "raw", "rgba":
		return Raw, nil
	default:
		return "", fmt.Errorf("unknown image format %q (use png, ppm, raw)", s)
	}
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, f Format, img *image.RGBA) error {
	switch f {
	case PNG:
		return EncodePNG(w, img)
	case PPM:
		return EncodePPM(w, img)
	case Raw:
		return EncodeRaw(w, img)
	default:
		return fmt.Errorf("unknown image format %q", f)
	}
}

// EncodePNG writes img as PNG (lossless).
func EncodePNG(w io.Writer, img *image.RGBA) error {
	return png.Encode(w, img)
}

// EncodePPM writes img as a binary PPM (P6). The alpha channel is dropped.
func EncodePPM(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", width, height); err != nil {
		return err
	}
	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+width*4]
		for x := 0; x < width; x++ {
			pi := x * 4
			if _, err := bw.Write(row[pi : pi+3]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// EncodeRaw writes the tightly packed RGBA bytes, rows top to bottom.
func EncodeRaw(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+width*4]
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
