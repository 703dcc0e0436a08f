package asset

// Subtype is the bitmask of asset subtype flags.
type Subtype uint32

const (
	SubtypePhotoPanorama    Subtype = 1 << 0
	SubtypePhotoHDR         Subtype = 1 << 1
	SubtypePhotoScreenshot  Subtype = 1 << 2
	SubtypePhotoLive        Subtype = 1 << 3
	SubtypePhotoDepthEffect Subtype = 1 << 4

	SubtypeVideoStreamed      Subtype = 1 << 16
	SubtypeVideoHighFrameRate Subtype = 1 << 17
	SubtypeVideoTimelapse     Subtype = 1 << 18
)

var subtypeNames = []struct {
	flag Subtype
	name string
}{
	{SubtypePhotoPanorama, "panorama"},
	{SubtypePhotoHDR, "hdr"},
	{SubtypePhotoScreenshot, "screenshot"},
	{SubtypePhotoLive, "live"},
	{SubtypePhotoDepthEffect, "depth-effect"},
	{SubtypeVideoStreamed, "streamed"},
	{SubtypeVideoHighFrameRate, "high-frame-rate"},
	{SubtypeVideoTimelapse, "timelapse"},
}

// Has reports whether every bit of flag is set.
func (s Subtype) Has(flag Subtype) bool {
	return flag != 0 && s&flag == flag
}

// Names lists the known flags set in s, lowest bit first. Unknown bits are
// not reported.
func (s Subtype) Names() []string {
	var names []string
	for _, n := range subtypeNames {
		if s.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	return names
}

// SubtypeFields holds the subtype as exposed by the two generations of the
// platform API. Older releases populate Legacy, newer ones Current; either
// may be absent.
type SubtypeFields struct {
	Legacy  *int `yaml:"legacy,omitempty" json:"legacy,omitempty"`
	Current *int `yaml:"current,omitempty" json:"current,omitempty"`
}

// Unwrap returns the normalized subtype value. Current supersedes Legacy;
// 0 means neither is populated.
func (f SubtypeFields) Unwrap() int {
	switch {
	case f.Current != nil:
		return *f.Current
	case f.Legacy != nil:
		return *f.Legacy
	default:
		return 0
	}
}

// CurrentSubtype builds SubtypeFields with only the current field set.
func CurrentSubtype(v Subtype) SubtypeFields {
	n := int(v)
	return SubtypeFields{Current: &n}
}

// LegacySubtype builds SubtypeFields with only the legacy field set.
func LegacySubtype(v Subtype) SubtypeFields {
	n := int(v)
	return SubtypeFields{Legacy: &n}
}
