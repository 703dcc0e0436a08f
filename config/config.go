// Package config loads assetkit settings with priority
// CLI flags > config file > defaults.
package config

import "time"

// Config holds all assetkit configuration options
type Config struct {
	// Manifest is the asset manifest the inspection commands read.
	Manifest string `yaml:"manifest"`

	Log    LogConfig    `yaml:"log"`
	Output OutputConfig `yaml:"output"`
	Probe  ProbeConfig  `yaml:"probe"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// OutputConfig holds report settings
type OutputConfig struct {
	Format string `yaml:"format"` // text, json or yaml
}

// ProbeConfig controls the optional detail probes run by inspect
type ProbeConfig struct {
	Photos      bool          `yaml:"photos"`       // read EXIF from still images
	Videos      bool          `yaml:"videos"`       // run ffprobe on video resources
	FFprobePath string        `yaml:"ffprobe_path"` // empty = ffprobe from PATH
	Timeout     time.Duration `yaml:"timeout"`      // per ffprobe run, 0 = none
	Workers     int           `yaml:"workers"`      // concurrent tasks per resource type
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Manifest: "",

		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},

		Output: OutputConfig{
			Format: "text",
		},

		// Probes read resource content, so they stay off unless asked for.
		Probe: ProbeConfig{
			Photos:      false,
			Videos:      false,
			FFprobePath: "",
			Timeout:     30 * time.Second,
			Workers:     4,
		},
	}
}

// LogFormatValues returns valid log formats
func LogFormatValues() []string {
	return []string{"text", "json"}
}

// IsValidLogFormat checks if format is a valid log format
func IsValidLogFormat(format string) bool {
	for _, valid := range LogFormatValues() {
		if format == valid {
			return true
		}
	}
	return false
}
