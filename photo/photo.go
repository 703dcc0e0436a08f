// Package photo extracts EXIF details from still-image resources.
package photo

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// Orientation is the EXIF orientation tag (1-8). 0 means undefined and is
// treated as normal.
type Orientation int

const (
	OrientationUndefined Orientation = iota
	OrientationNormal
	OrientationMirror
	OrientationNormal180
	OrientationMirror180
	OrientationMirror270
	OrientationNormal270
	OrientationMirror90
	OrientationNormal90
)

// Rotated reports whether width and height are swapped on display.
func (o Orientation) Rotated() bool {
	switch o {
	case OrientationMirror270, OrientationNormal270, OrientationMirror90, OrientationNormal90:
		return true
	}
	return false
}

// some cameras write this placeholder instead of leaving the date out
var exifDateBug = time.Date(2002, 12, 8, 12, 0, 0, 0, time.UTC)

// Details is what the report shows for a photo.
type Details struct {
	CapturedAt  *time.Time  `json:"captured_at,omitempty" yaml:"captured_at,omitempty"`
	Device      string      `json:"device,omitempty" yaml:"device,omitempty"`
	Orientation Orientation `json:"orientation" yaml:"orientation"`
	Width       int         `json:"width,omitempty" yaml:"width,omitempty"`
	Height      int         `json:"height,omitempty" yaml:"height,omitempty"`
	Latitude    *float64    `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude   *float64    `json:"longitude,omitempty" yaml:"longitude,omitempty"`
}

// ReadDetails decodes EXIF from r (JPEG, TIFF or a raw EXIF block). Missing
// EXIF is an error; missing individual tags are not.
func ReadDetails(r io.Reader) (*Details, error) {
	x, err := exif.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exif: %w", err)
	}

	d := &Details{Orientation: OrientationNormal}

	if t, err := x.DateTime(); err == nil && !t.IsZero() && !t.Equal(exifDateBug) {
		t = t.UTC().Truncate(time.Second)
		d.CapturedAt = &t
	}

	d.Device = strings.TrimSpace(strings.Join(nonEmpty(stringTag(x, exif.Make), stringTag(x, exif.Model)), " "))

	if v, ok := intTag(x, exif.Orientation); ok && v >= 1 && v <= 8 {
		d.Orientation = Orientation(v)
	}
	if w, ok := intTag(x, exif.PixelXDimension); ok {
		d.Width = w
	}
	if h, ok := intTag(x, exif.PixelYDimension); ok {
		d.Height = h
	}
	if d.Orientation.Rotated() {
		d.Width, d.Height = d.Height, d.Width
	}

	if lat, lon, err := x.LatLong(); err == nil {
		d.Latitude, d.Longitude = &lat, &lon
	}
	return d, nil
}

func stringTag(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil || tag.Format() != tiff.StringVal {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimRight(strings.TrimSpace(s), "\x00")
}

func intTag(x *exif.Exif, name exif.FieldName) (int, bool) {
	tag, err := x.Get(name)
	if err != nil || tag.Format() != tiff.IntVal {
		return 0, false
	}
	v, err := tag.Int(0)
	if err != nil {
		return 0, false
	}
	return v, true
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
