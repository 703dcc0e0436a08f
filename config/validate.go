package config

import (
	"fmt"
	"os"
	"strings"

	"assetkit/internal/logger"
	"assetkit/report"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errors []string

	// The manifest is optional here; commands that need one check for it.
	if c.Manifest != "" {
		if _, err := os.Stat(c.Manifest); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("manifest does not exist: %s", c.Manifest))
		}
	}

	if err := c.Log.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("log config: %v", err))
	}

	if !report.IsValidFormat(c.Output.Format) {
		errors = append(errors, fmt.Sprintf("invalid output format '%s', must be one of: %s",
			c.Output.Format, strings.Join(report.FormatValues(), ", ")))
	}

	if c.Probe.Timeout < 0 {
		errors = append(errors, "probe timeout cannot be negative (use 0 for none)")
	}
	if c.Probe.Workers < 1 {
		errors = append(errors, fmt.Sprintf("probe workers must be at least 1, got %d", c.Probe.Workers))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// Validate checks if logger configuration is valid
func (lc *LogConfig) Validate() error {
	var errors []string

	valid := false
	for _, l := range logger.LevelValues() {
		if strings.EqualFold(lc.Level, l) {
			valid = true
			break
		}
	}
	if !valid {
		errors = append(errors, fmt.Sprintf("level must be one of: %s", strings.Join(logger.LevelValues(), ", ")))
	}

	if !IsValidLogFormat(lc.Format) {
		errors = append(errors, fmt.Sprintf("format must be one of: %s", strings.Join(LogFormatValues(), ", ")))
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, ", "))
	}

	return nil
}

// RequireManifest returns the manifest path or an error naming how to set it.
func (c *Config) RequireManifest() (string, error) {
	if c.Manifest == "" {
		return "", fmt.Errorf("no manifest configured (use --manifest or set manifest in the config file)")
	}
	return c.Manifest, nil
}
