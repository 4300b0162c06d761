package config

import (
	"fmt"
	"strings"
	"testing"
)

func TestValidateTieredUnknownFormatIsFatal(t *testing.T) {
	cfg := Default()
	cfg.Format = "jpeg2000"
	result := cfg.ValidateTiered()
	if !result.HasFatals() {
		t.Fatal("unknown format should be fatal")
	}
	found := false
	for _, err := range result.Fatals {
		if strings.Contains(err.Error(), "jpeg2000") {
			found = true
		}
	}
	if !found {
		t.Fatal("expected format validation error in fatals")
	}
}

func TestValidateTieredControlCharsInOutputDirIsFatal(t *testing.T) {
	cfg := Default()
	cfg.OutputDir = "shots\x00dir"
	result := cfg.ValidateTiered()
	if !result.HasFatals() {
		t.Fatal("control chars in output_dir should be fatal")
	}
}

func TestValidateTieredNegativeMonitorClampingIsWarning(t *testing.T) {
	cfg := Default()
	cfg.Monitor = -3
	result := cfg.ValidateTiered()

	if result.HasFatals() {
		t.Fatalf("clamped monitor should be warning, not fatal: %v", result.Fatals)
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected warning for clamped monitor")
	}
	if cfg.Monitor != 0 {
		t.Fatalf("Monitor = %d, want 0 (clamped)", cfg.Monitor)
	}
}

func TestValidateTieredUnknownLogLevelIsWarning(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "verbose"
	result := cfg.ValidateTiered()
	if result.HasFatals() {
		t.Fatal("unknown log level should not be fatal")
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected warning for unknown log level")
	}
}

func TestValidateTieredInvalidLogFormatIsWarning(t *testing.T) {
	cfg := Default()
	cfg.LogFormat = "xml"
	result := cfg.ValidateTiered()
	if result.HasFatals() {
		t.Fatal("invalid log format should not be fatal")
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected warning for invalid log format")
	}
}

func TestHasFatals(t *testing.T) {
	r := ValidationResult{}
	if r.HasFatals() {
		t.Fatal("HasFatals() on empty result should be false")
	}
	r.Fatals = append(r.Fatals, fmt.Errorf("test error"))
	if !r.HasFatals() {
		t.Fatal("HasFatals() should be true with a fatal error")
	}
}

func TestAllErrorsReturnsBoth(t *testing.T) {
	cfg := Default()
	cfg.Format = "bmp"      // fatal
	cfg.LogLevel = "chatty" // warning
	result := cfg.ValidateTiered()

	all := result.AllErrors()
	if len(all) < 2 {
		t.Fatalf("AllErrors() returned %d errors, expected at least 2 (fatals + warnings)", len(all))
	}
}

func TestValidConfigHasNoErrors(t *testing.T) {
	cfg := Default()
	result := cfg.ValidateTiered()
	if result.HasFatals() {
		t.Fatalf("default config has fatals: %v", result.Fatals)
	}
	if len(result.Warnings) > 0 {
		t.Fatalf("default config has warnings: %v", result.Warnings)
	}
}
