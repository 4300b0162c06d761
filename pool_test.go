package screengrab

import "testing"

func TestGetPixelBufSizesBuffer(t *testing.T) {
	buf := getPixelBuf(64)
	if len(buf) != 64 {
		t.Fatalf("len = %d, want 64", len(buf))
	}
	putPixelBuf(buf)
}

func TestGetPixelBufDiscardsStaleEntries(t *testing.T) {
	old := getPixelBuf(8)
	putPixelBuf(old)

	// Switching sizes must never hand back an 8-byte buffer.
	buf := getPixelBuf(24)
	if len(buf) != 24 {
		t.Fatalf("len = %d, want 24", len(buf))
	}
	putPixelBuf(buf)
}

func TestPutPixelBufDropsMismatchedSizes(t *testing.T) {
	getPixelBuf(32) // pin the live size

	putPixelBuf(make([]byte, 16))
	buf := getPixelBuf(32)
	if len(buf) != 32 {
		t.Fatalf("len = %d, want 32", len(buf))
	}
	putPixelBuf(buf)
}

func TestPutPixelBufIgnoresEmpty(t *testing.T) {
	putPixelBuf(nil)
	putPixelBuf([]byte{})
}
