package encode

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

// testImage2x2 returns a 2x2 RGBA image:
// (0,0)=red, (1,0)=green, (0,1)=blue, (1,1)=white
func testImage2x2() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	copy(img.Pix, []byte{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 255, 255, 255, 255,
	})
	return img
}

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", PNG, false},
		{"PNG", PNG, false},
		{" ppm ", PPM, false},
		{"raw", Raw, false},
		{"rgba", Raw, false},
		{"jpeg", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("Parse(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEncodePPM2x2(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePPM(&buf, testImage2x2()); err != nil {
		t.Fatalf("EncodePPM: %v", err)
	}

	want := append([]byte("P6\n2 2\n255\n"),
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 255, 255, 255,
	)
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("ppm output = %v, want %v", buf.Bytes(), want)
	}
}

func TestEncodeRaw2x2(t *testing.T) {
	img := testImage2x2()

	var buf bytes.Buffer
	if err := EncodeRaw(&buf, img); err != nil {
		t.Fatalf("EncodeRaw: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), img.Pix) {
		t.Fatalf("raw output = %v, want %v", buf.Bytes(), img.Pix)
	}
}

func TestEncodePNGDecodesBack(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, PNG, testImage2x2()); err != nil {
		t.Fatalf("Encode png: %v", err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("decoded bounds = %v, want 2x2", b)
	}
	r, g, b, a := decoded.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 || a>>8 != 255 {
		t.Fatalf("pixel (0,0) = %d,%d,%d,%d, want opaque red", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Format("bmp"), testImage2x2()); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
