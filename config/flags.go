package config

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Flag names shared by RegisterFlags and MergeFromFlags.
const (
	FlagConfig       = "config"
	FlagManifest     = "manifest"
	FlagLogLevel     = "log-level"
	FlagLogFormat    = "log-format"
	FlagFormat       = "format"
	FlagProbe        = "probe"
	FlagProbePhotos  = "probe-photos"
	FlagProbeVideos  = "probe-videos"
	FlagFFprobe      = "ffprobe"
	FlagProbeTimeout = "probe-timeout"
	FlagProbeWorkers = "probe-workers"
)

// RegisterFlags defines every configuration flag on fs. Defaults shown in
// help come from DefaultConfig; only flags the user sets are merged.
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()

	fs.String(FlagConfig, "", "Path to config file (default: search standard locations)")
	fs.StringP(FlagManifest, "m", d.Manifest, "Asset manifest (YAML)")
	fs.String(FlagLogLevel, d.Log.Level, "Log level: debug, info, warn, error")
	fs.String(FlagLogFormat, d.Log.Format, "Log format: text, json")
	fs.StringP(FlagFormat, "f", d.Output.Format, "Output format: text, json, yaml")
	fs.Bool(FlagProbe, false, "Enable both photo and video probes")
	fs.Bool(FlagProbePhotos, d.Probe.Photos, "Read EXIF details from still images")
	fs.Bool(FlagProbeVideos, d.Probe.Videos, "Run ffprobe on video resources")
	fs.String(FlagFFprobe, d.Probe.FFprobePath, "ffprobe binary (default: ffprobe from PATH)")
	fs.Duration(FlagProbeTimeout, d.Probe.Timeout, "Timeout for each ffprobe run (0 = none)")
	fs.Int(FlagProbeWorkers, d.Probe.Workers, "Concurrent probe tasks per resource type")
}

// MergeFromFlags overwrites config values with flags that were explicitly set.
func (c *Config) MergeFromFlags(fs *pflag.FlagSet) error {
	var err error
	changed := func(name string) bool {
		f := fs.Lookup(name)
		return f != nil && f.Changed && err == nil
	}

	if changed(FlagManifest) {
		c.Manifest, err = fs.GetString(FlagManifest)
	}
	if changed(FlagLogLevel) {
		c.Log.Level, err = fs.GetString(FlagLogLevel)
	}
	if changed(FlagLogFormat) {
		c.Log.Format, err = fs.GetString(FlagLogFormat)
	}
	if changed(FlagFormat) {
		c.Output.Format, err = fs.GetString(FlagFormat)
	}
	if changed(FlagProbe) {
		var all bool
		if all, err = fs.GetBool(FlagProbe); all {
			c.Probe.Photos = true
			c.Probe.Videos = true
		}
	}
	if changed(FlagProbePhotos) {
		c.Probe.Photos, err = fs.GetBool(FlagProbePhotos)
	}
	if changed(FlagProbeVideos) {
		c.Probe.Videos, err = fs.GetBool(FlagProbeVideos)
	}
	if changed(FlagFFprobe) {
		c.Probe.FFprobePath, err = fs.GetString(FlagFFprobe)
	}
	if changed(FlagProbeTimeout) {
		c.Probe.Timeout, err = fs.GetDuration(FlagProbeTimeout)
	}
	if changed(FlagProbeWorkers) {
		c.Probe.Workers, err = fs.GetInt(FlagProbeWorkers)
	}

	if err != nil {
		return fmt.Errorf("failed to read flags: %w", err)
	}
	return nil
}

// PrintConfig writes the effective configuration as YAML.
func (c *Config) PrintConfig(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}
