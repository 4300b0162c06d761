package config

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"
)

var validFormats = map[string]bool{
	"png": true,
	"ppm": true,
	"raw": true,
}

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// ValidationResult separates errors that must stop startup from ones that
// are auto-corrected or merely logged.
type ValidationResult struct {
	Fatals   []error
	Warnings []error
}

func (r *ValidationResult) HasFatals() bool {
	return len(r.Fatals) > 0
}

func (r *ValidationResult) AllErrors() []error {
	all := make([]error, 0, len(r.Fatals)+len(r.Warnings))
	all = append(all, r.Fatals...)
	all = append(all, r.Warnings...)
	return all
}

// ValidateTiered checks the config. Values that would break a capture run
// (an unknown output format) are fatal; dangerous values with an obvious
// safe correction are clamped and reported as warnings. Warnings are also
// logged.
func (c *Config) ValidateTiered() ValidationResult {
	var result ValidationResult

	if c.Format != "" && !validFormats[strings.ToLower(c.Format)] {
		result.Fatals = append(result.Fatals,
			fmt.Errorf("format %q is not valid (use png, ppm, raw)", c.Format))
	}

	if c.OutputDir != "" {
		for _, r := range c.OutputDir {
			if unicode.IsControl(r) {
				result.Fatals = append(result.Fatals,
					fmt.Errorf("output_dir contains control characters"))
				break
			}
		}
	}

	if c.Monitor < 0 {
		result.Warnings = append(result.Warnings,
			fmt.Errorf("monitor %d is negative, clamping to 0", c.Monitor))
		c.Monitor = 0
	}

	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		result.Warnings = append(result.Warnings,
			fmt.Errorf("log_level %q is not valid (use debug, info, warn, error)", c.LogLevel))
	}

	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		result.Warnings = append(result.Warnings,
			fmt.Errorf("log_format %q is not valid (use text or json)", c.LogFormat))
	}

	for _, err := range result.Warnings {
		slog.Warn("config validation", "error", err)
	}

	return result
}
