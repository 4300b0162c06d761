package screengrab

import (
	"errors"
	"fmt"
	"testing"
)

func TestLastErrorOverwrites(t *testing.T) {
	ClearLastError()

	setLastError(fmt.Errorf("first: %w", ErrCaptureFailed))
	setLastError(fmt.Errorf("second: %w", ErrInvalidIndex))

	if err := LastError(); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("LastError() = %v, want the most recent failure", err)
	}
}

func TestLastErrorPersistsAcrossReads(t *testing.T) {
	ClearLastError()
	setLastError(ErrCaptureFailed)

	if err := LastError(); !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("first read = %v, want ErrCaptureFailed", err)
	}
	// Reading is non-destructive.
	if err := LastError(); !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("second read = %v, want ErrCaptureFailed", err)
	}
}

func TestClearLastError(t *testing.T) {
	setLastError(ErrCaptureFailed)
	ClearLastError()
	if err := LastError(); err != nil {
		t.Fatalf("LastError() after clear = %v, want nil", err)
	}
}

func TestSetLastErrorIgnoresNil(t *testing.T) {
	ClearLastError()
	setLastError(ErrMonitorGone)
	setLastError(nil)

	if err := LastError(); !errors.Is(err, ErrMonitorGone) {
		t.Fatalf("LastError() = %v, want ErrMonitorGone (nil must not clear)", err)
	}
}
