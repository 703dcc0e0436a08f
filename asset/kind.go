package asset

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMediaKind    = errors.New("unknown media kind")
	ErrUnknownResourceKind = errors.New("unknown resource kind")
)

// MediaKind is the coarse type of an asset. The zero value is unknown.
type MediaKind uint8

const (
	MediaKindUnknown MediaKind = iota
	MediaKindImage
	MediaKindVideo
	MediaKindAudio
)

func (k MediaKind) String() string {
	switch k {
	case MediaKindImage:
		return "image"
	case MediaKindVideo:
		return "video"
	case MediaKindAudio:
		return "audio"
	default:
		return "unknown"
	}
}

func (k MediaKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *MediaKind) UnmarshalText(b []byte) error {
	v, err := ParseMediaKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ParseMediaKind accepts the String form. The empty string is unknown.
func ParseMediaKind(s string) (MediaKind, error) {
	switch s {
	case "image":
		return MediaKindImage, nil
	case "video":
		return MediaKindVideo, nil
	case "audio":
		return MediaKindAudio, nil
	case "unknown", "":
		return MediaKindUnknown, nil
	default:
		return MediaKindUnknown, fmt.Errorf("%w: %q", ErrUnknownMediaKind, s)
	}
}

// ResourceKind is the role a resource plays for its asset.
type ResourceKind uint8

const (
	ResourceKindOther ResourceKind = iota
	ResourceKindFullSizeImage
	ResourceKindFullSizeVideo
	ResourceKindAdjustmentData
	ResourceKindPairedVideo // video half of a Live Photo
	ResourceKindAudio
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceKindFullSizeImage:
		return "photo"
	case ResourceKindFullSizeVideo:
		return "video"
	case ResourceKindAdjustmentData:
		return "adjustment-data"
	case ResourceKindPairedVideo:
		return "paired-video"
	case ResourceKindAudio:
		return "audio"
	default:
		return "other"
	}
}

func (k ResourceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ResourceKind) UnmarshalText(b []byte) error {
	v, err := ParseResourceKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ParseResourceKind accepts the String form.
func ParseResourceKind(s string) (ResourceKind, error) {
	switch s {
	case "photo":
		return ResourceKindFullSizeImage, nil
	case "video":
		return ResourceKindFullSizeVideo, nil
	case "adjustment-data":
		return ResourceKindAdjustmentData, nil
	case "paired-video":
		return ResourceKindPairedVideo, nil
	case "audio":
		return ResourceKindAudio, nil
	case "other":
		return ResourceKindOther, nil
	default:
		return ResourceKindOther, fmt.Errorf("%w: %q", ErrUnknownResourceKind, s)
	}
}

// ResourceKindFromPlatform folds the platform's numeric resource types onto
// ResourceKind. Original and rendered variants share a kind; everything the
// core has no rule for becomes ResourceKindOther.
func ResourceKindFromPlatform(code int) ResourceKind {
	switch code {
	case 1, 5: // photo, fullSizePhoto
		return ResourceKindFullSizeImage
	case 2, 6: // video, fullSizeVideo
		return ResourceKindFullSizeVideo
	case 3:
		return ResourceKindAudio
	case 7:
		return ResourceKindAdjustmentData
	case 9, 10: // pairedVideo, fullSizePairedVideo
		return ResourceKindPairedVideo
	default:
		return ResourceKindOther
	}
}

// isPrimary reports whether resources of this kind carry the asset's main
// content.
func (k ResourceKind) isPrimary() bool {
	return k == ResourceKindFullSizeImage || k == ResourceKindFullSizeVideo
}
