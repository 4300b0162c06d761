package screengrab

import (
	"errors"
	"testing"
)

func TestFrameValidate(t *testing.T) {
	f := &Frame{Pixels: make([]byte, 2*3*4), Width: 2, Height: 3}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestFrameValidateZeroAreaFails(t *testing.T) {
	f := &Frame{}
	if err := f.Validate(); !errors.Is(err, ErrConversionFailed) {
		t.Fatalf("Validate() on zero frame = %v, want ErrConversionFailed", err)
	}
}

func TestFrameValidateLengthMismatch(t *testing.T) {
	f := &Frame{Pixels: make([]byte, 10), Width: 2, Height: 2}
	if err := f.Validate(); !errors.Is(err, ErrConversionFailed) {
		t.Fatalf("Validate() = %v, want ErrConversionFailed", err)
	}
}

func TestFrameValidateNegativeDimensions(t *testing.T) {
	f := &Frame{Pixels: nil, Width: -1, Height: 2}
	if err := f.Validate(); !errors.Is(err, ErrConversionFailed) {
		t.Fatalf("Validate() = %v, want ErrConversionFailed", err)
	}
}

func TestFrameRGBASharesPixels(t *testing.T) {
	f := &Frame{Pixels: make([]byte, 2*2*4), Width: 2, Height: 2}

	img := f.RGBA()
	if got := img.Bounds(); got.Dx() != 2 || got.Dy() != 2 {
		t.Fatalf("Bounds() = %v, want 2x2", got)
	}
	if img.Stride != 8 {
		t.Fatalf("Stride = %d, want 8", img.Stride)
	}

	img.Pix[0] = 0xAB
	if f.Pixels[0] != 0xAB {
		t.Fatal("RGBA() copied the pixel buffer, want shared memory")
	}
}
