// Package asset answers type, title, MIME and edited-content questions about
// photo library assets.
//
// An Asset is a read-only snapshot supplied by the host (the layer that talks
// to the platform library). Every query is a pure read over that snapshot;
// absence is reported as a false ok value or a nil payload, never as an error.
// The only asynchronous operations are the data loads in load.go.
package asset

import (
	"context"

	"assetkit/uti"
)

// Loader reads the full content of one resource. It is supplied by the host
// and may block; the asset package only ever calls it off the caller's
// goroutine.
type Loader interface {
	Load(ctx context.Context) ([]byte, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) ([]byte, error)

func (f LoaderFunc) Load(ctx context.Context) ([]byte, error) { return f(ctx) }

// Resource is one content facet of an asset.
type Resource struct {
	Kind             ResourceKind
	UTI              string
	OriginalFilename string
	Loader           Loader // nil when the host cannot read this resource
}

// Asset is a single media library entry.
type Asset struct {
	LocalID   string
	MediaKind MediaKind
	Subtype   SubtypeFields
	Filename  string
	Resources []Resource
}

func (a *Asset) IsImage() bool { return a.MediaKind == MediaKindImage }
func (a *Asset) IsVideo() bool { return a.MediaKind == MediaKindVideo }
func (a *Asset) IsAudio() bool { return a.MediaKind == MediaKindAudio }

func (a *Asset) IsImageOrVideo() bool { return a.IsImage() || a.IsVideo() }

// UnwrappedSubtype returns the subtype bitmask normalized across API
// generations.
func (a *Asset) UnwrappedSubtype() int { return a.Subtype.Unwrap() }

// IsLivePhoto requires both the live flag and the image kind.
func (a *Asset) IsLivePhoto() bool {
	return a.IsImage() && Subtype(a.UnwrappedSubtype()).Has(SubtypePhotoLive)
}

// PrimaryResource returns the first full-size image or video resource. For a
// Live Photo that is the still image, not the paired video.
func (a *Asset) PrimaryResource() (Resource, bool) {
	return a.firstResource(func(k ResourceKind) bool { return k.isPrimary() })
}

// Title returns the primary resource's original filename, falling back to
// the asset's filename, then to "".
func (a *Asset) Title() string {
	if r, ok := a.PrimaryResource(); ok && r.OriginalFilename != "" {
		return r.OriginalFilename
	}
	return a.Filename
}

// MimeType maps the primary resource's type identifier to a MIME type. It
// reports false when there is no primary resource or the identifier is
// unknown.
func (a *Asset) MimeType() (string, bool) {
	r, ok := a.PrimaryResource()
	if !ok {
		return "", false
	}
	return uti.MIMEType(r.UTI)
}

// IsAdjust reports whether the asset carries edit (adjustment) data.
func (a *Asset) IsAdjust() bool {
	_, ok := a.AdjustResource()
	return ok
}

// AdjustResource returns the first adjustment-data resource.
func (a *Asset) AdjustResource() (Resource, bool) {
	return a.firstResource(func(k ResourceKind) bool { return k == ResourceKindAdjustmentData })
}

// LivePhotoResource returns the paired video of a Live Photo. Any asset
// without one, Live Photo or not, reports false.
func (a *Asset) LivePhotoResource() (Resource, bool) {
	return a.firstResource(func(k ResourceKind) bool { return k == ResourceKindPairedVideo })
}

func (a *Asset) firstResource(match func(ResourceKind) bool) (Resource, bool) {
	for _, r := range a.Resources {
		if match(r.Kind) {
			return r, true
		}
	}
	return Resource{}, false
}
