// Package report turns asset query answers into a stable, printable record.
package report

import (
	"fmt"
	"strings"

	"assetkit/asset"
	"assetkit/ffprobe"
	"assetkit/internal/timeutil"
	"assetkit/photo"
)

// AssetReport is the per-asset record printed by the CLI. Every field is
// derived from asset queries; nothing reads platform data directly.
type AssetReport struct {
	ID             string   `json:"id" yaml:"id"`
	Title          string   `json:"title" yaml:"title"`
	Kind           string   `json:"kind" yaml:"kind"`
	LivePhoto      bool     `json:"live_photo" yaml:"live_photo"`
	Subtype        int      `json:"subtype" yaml:"subtype"`
	SubtypeFlags   []string `json:"subtype_flags,omitempty" yaml:"subtype_flags,omitempty"`
	MimeType       string   `json:"mime_type,omitempty" yaml:"mime_type,omitempty"`
	Adjusted       bool     `json:"adjusted" yaml:"adjusted"`
	AdjustmentUTI  string   `json:"adjustment_uti,omitempty" yaml:"adjustment_uti,omitempty"`
	PairedVideoUTI string   `json:"paired_video_uti,omitempty" yaml:"paired_video_uti,omitempty"`
	Resources      int      `json:"resources" yaml:"resources"`

	Photo *photo.Details `json:"photo,omitempty" yaml:"photo,omitempty"`
	Video *VideoDetails  `json:"video,omitempty" yaml:"video,omitempty"`
}

// VideoDetails summarizes an ffprobe run over one of the asset's video
// resources.
type VideoDetails struct {
	Source   string  `json:"source" yaml:"source"` // resource kind that was probed
	Seconds  float64 `json:"seconds" yaml:"seconds"`
	Length   string  `json:"length" yaml:"length"`
	Codec    string  `json:"codec,omitempty" yaml:"codec,omitempty"`
	Width    int     `json:"width,omitempty" yaml:"width,omitempty"`
	Height   int     `json:"height,omitempty" yaml:"height,omitempty"`
	HasAudio bool    `json:"has_audio" yaml:"has_audio"`
}

// New builds the report for a.
func New(a *asset.Asset) AssetReport {
	subtype := a.UnwrappedSubtype()
	r := AssetReport{
		ID:           a.LocalID,
		Title:        a.Title(),
		Kind:         a.MediaKind.String(),
		LivePhoto:    a.IsLivePhoto(),
		Subtype:      subtype,
		SubtypeFlags: asset.Subtype(subtype).Names(),
		Adjusted:     a.IsAdjust(),
		Resources:    len(a.Resources),
	}
	if mime, ok := a.MimeType(); ok {
		r.MimeType = mime
	}
	if res, ok := a.AdjustResource(); ok {
		r.AdjustmentUTI = res.UTI
	}
	if res, ok := a.LivePhotoResource(); ok {
		r.PairedVideoUTI = res.UTI
	}
	return r
}

// NewVideoDetails summarizes a probe of the resource of the given kind.
func NewVideoDetails(source asset.ResourceKind, pr *ffprobe.ProbeResult) *VideoDetails {
	d := &VideoDetails{
		Source:   source.String(),
		HasAudio: len(pr.GetAudioStreams()) > 0,
	}
	if seconds, err := pr.GetDuration(); err == nil {
		d.Seconds = seconds
	}
	d.Length = timeutil.FormatSeconds(d.Seconds)
	if streams := pr.GetVideoStreams(); len(streams) > 0 {
		d.Codec = streams[0].CodecName
	}
	if w, h, ok := pr.Dimensions(); ok {
		d.Width, d.Height = w, h
	}
	return d
}

// KindValues returns valid kind names.
func KindValues() []string {
	return []string{"unknown", "image", "video", "audio"}
}

// IsValidKind checks if kind is valid
func IsValidKind(kind string) bool {
	for _, valid := range KindValues() {
		if kind == valid {
			return true
		}
	}
	return false
}

// Validate checks that the report is internally consistent.
//
// Returns an error if:
//   - ID is empty
//   - Kind is not one of KindValues
//   - LivePhoto is set on a non-image
//   - AdjustmentUTI is set on an unadjusted asset
//   - a Photo section is attached to a non-image
func (r *AssetReport) Validate() error {
	var errors []string

	if strings.TrimSpace(r.ID) == "" {
		errors = append(errors, "id cannot be empty")
	}
	if !IsValidKind(r.Kind) {
		errors = append(errors, fmt.Sprintf("invalid kind '%s', must be one of: %s",
			r.Kind, strings.Join(KindValues(), ", ")))
	}
	if r.LivePhoto && r.Kind != "image" {
		errors = append(errors, "live photo must be an image")
	}
	if !r.Adjusted && r.AdjustmentUTI != "" {
		errors = append(errors, "adjustment_uti set on an unadjusted asset")
	}
	if r.Photo != nil && r.Kind != "image" {
		errors = append(errors, "photo details on a non-image")
	}

	if len(errors) > 0 {
		return fmt.Errorf("invalid report: %s", strings.Join(errors, ", "))
	}
	return nil
}
