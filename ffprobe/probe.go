// Package ffprobe extracts duration and stream details from video resources
// using the ffprobe command-line tool.
package ffprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// DefaultBinary is looked up in PATH when no binary is configured.
const DefaultBinary = "ffprobe"

// Stream represents a media stream (audio, video, data, etc.)
type Stream struct {
	Index         int    `json:"index"`
	CodecName     string `json:"codec_name"`
	CodecType     string `json:"codec_type"`
	CodecLongName string `json:"codec_long_name"`
	Width         int    `json:"width,omitempty"`
	Height        int    `json:"height,omitempty"`
	SampleRate    string `json:"sample_rate,omitempty"`
	Channels      int    `json:"channels,omitempty"`
	Duration      string `json:"duration,omitempty"`
}

// Format represents the container format information.
type Format struct {
	Filename       string `json:"filename"`
	FormatName     string `json:"format_name"`
	FormatLongName string `json:"format_long_name"`
	Duration       string `json:"duration"`
	Size           string `json:"size"`
	BitRate        string `json:"bit_rate"`
}

// ProbeResult holds the metadata ffprobe reports for one file.
type ProbeResult struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// GetDuration returns the container duration in seconds.
func (pr *ProbeResult) GetDuration() (float64, error) {
	if pr.Format.Duration == "" {
		return 0, fmt.Errorf("duration not available in format metadata")
	}

	duration, err := strconv.ParseFloat(pr.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration '%s': %w", pr.Format.Duration, err)
	}

	return duration, nil
}

// GetVideoStreams returns all video streams.
func (pr *ProbeResult) GetVideoStreams() []Stream {
	return pr.streamsOfType("video")
}

// GetAudioStreams returns all audio streams.
func (pr *ProbeResult) GetAudioStreams() []Stream {
	return pr.streamsOfType("audio")
}

func (pr *ProbeResult) streamsOfType(codecType string) []Stream {
	var out []Stream
	for _, stream := range pr.Streams {
		if stream.CodecType == codecType {
			out = append(out, stream)
		}
	}
	return out
}

// Dimensions returns the frame size of the first video stream.
func (pr *ProbeResult) Dimensions() (width, height int, ok bool) {
	for _, s := range pr.GetVideoStreams() {
		if s.Width > 0 && s.Height > 0 {
			return s.Width, s.Height, true
		}
	}
	return 0, 0, false
}

// Prober runs a specific ffprobe binary with an optional per-call timeout.
type Prober struct {
	Binary  string
	Timeout time.Duration
}

// New returns a Prober. An empty binary means DefaultBinary.
func New(binary string, timeout time.Duration) *Prober {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Prober{Binary: binary, Timeout: timeout}
}

// Probe analyzes a media file with the default binary and no timeout.
func Probe(ctx context.Context, sourcePath string) (*ProbeResult, error) {
	return New("", 0).Probe(ctx, sourcePath)
}

// Probe analyzes a media file.
//
// Example:
//
//	result, err := ffprobe.New("", 10*time.Second).Probe(ctx, "/library/IMG_0001.MOV")
//	if err != nil {
//	    return err
//	}
//	seconds, _ := result.GetDuration()
func (p *Prober) Probe(ctx context.Context, sourcePath string) (*ProbeResult, error) {
	if sourcePath == "" {
		return nil, fmt.Errorf("source path cannot be empty")
	}
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	// -v quiet: suppress verbose output
	// -print_format json: machine readable output
	// -show_streams / -show_format: stream and container details
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-show_format",
		sourcePath,
	}

	cmd := exec.CommandContext(ctx, p.Binary, args...)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	return ParseOutput(output)
}

// ParseOutput decodes ffprobe's JSON output.
func ParseOutput(output []byte) (*ProbeResult, error) {
	var result ProbeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe JSON output: %w", err)
	}
	return &result, nil
}
