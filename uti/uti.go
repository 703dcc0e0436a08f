// Package uti maps uniform type identifiers (the content-type tags a photo
// library attaches to asset resources, e.g. "public.heic") to MIME types.
//
// The table covers the image, video and audio formats a camera roll holds
// in practice. Hosts that meet other identifiers can extend it with Register.
package uti

import (
	"sort"
	"strings"
	"sync"
)

// Common identifiers.
const (
	JPEG        = "public.jpeg"
	HEIC        = "public.heic"
	HEIF        = "public.heif"
	PNG         = "public.png"
	TIFF        = "public.tiff"
	GIF         = "com.compuserve.gif"
	WebP        = "org.webmproject.webp"
	QuickTime   = "com.apple.quicktime-movie"
	MPEG4       = "public.mpeg-4"
	M4V         = "com.apple.m4v-video"
	MP3         = "public.mp3"
	M4A         = "com.apple.m4a-audio"
	AdjustPlist = "com.apple.property-list"
)

type entry struct {
	id   string
	mime string
}

// Order matters for FromMIME: the first identifier listed for a MIME type
// is the one returned.
var builtin = []entry{
	{JPEG, "image/jpeg"},
	{HEIC, "image/heic"},
	{HEIF, "image/heif"},
	{PNG, "image/png"},
	{TIFF, "image/tiff"},
	{GIF, "image/gif"},
	{WebP, "image/webp"},
	{"com.microsoft.bmp", "image/bmp"},
	{"public.avif", "image/avif"},
	{"com.adobe.raw-image", "image/x-adobe-dng"},
	{"com.canon.cr2-raw-image", "image/x-canon-cr2"},
	{"com.nikon.raw-image", "image/x-nikon-nef"},
	{"com.sony.arw-raw-image", "image/x-sony-arw"},
	{QuickTime, "video/quicktime"},
	{MPEG4, "video/mp4"},
	{M4V, "video/x-m4v"},
	{"public.avi", "video/x-msvideo"},
	{"public.3gpp", "video/3gpp"},
	{"public.mpeg", "video/mpeg"},
	{MP3, "audio/mpeg"},
	{M4A, "audio/mp4"},
	{"public.mpeg-4-audio", "audio/mp4"},
	{"com.microsoft.waveform-audio", "audio/wav"},
	{"public.aiff-audio", "audio/aiff"},
	{"public.aifc-audio", "audio/aiff"},
	{"com.apple.coreaudio-format", "audio/x-caf"},
	{"org.xiph.flac", "audio/flac"},
	{AdjustPlist, "application/x-plist"},
	{"com.apple.xml-property-list", "application/x-plist"},
}

var (
	mu     sync.RWMutex
	toMIME = map[string]string{}
	fromMT = map[string]string{}
)

func init() {
	for _, e := range builtin {
		register(e.id, e.mime)
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func register(id, mime string) {
	id, mime = normalize(id), normalize(mime)
	prev, had := toMIME[id]
	toMIME[id] = mime

	// A remapped identifier must not stay the reverse answer for its old MIME.
	if had && prev != mime && fromMT[prev] == id {
		delete(fromMT, prev)
		if alt, ok := preferredFor(prev); ok {
			fromMT[prev] = alt
		}
	}
	if _, ok := fromMT[mime]; !ok {
		fromMT[mime] = id
	}
}

// preferredFor picks the identifier FromMIME should answer for mime: the
// first builtin still mapped to it, else the lowest registered one.
func preferredFor(mime string) (string, bool) {
	for _, e := range builtin {
		if toMIME[e.id] == mime {
			return e.id, true
		}
	}
	var ids []string
	for id, m := range toMIME {
		if m == mime {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return "", false
	}
	sort.Strings(ids)
	return ids[0], true
}

// Register adds or replaces the MIME mapping for an identifier. Empty
// arguments are ignored. Replacing a mapping also moves the reverse
// FromMIME answer: the old MIME falls back to another identifier mapped to
// it, or to none.
func Register(id, mime string) {
	if normalize(id) == "" || normalize(mime) == "" {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	register(id, mime)
}

// MIMEType returns the MIME type for a uniform type identifier. Lookup is
// case-insensitive. Unknown identifiers (including dynamic "dyn." ones)
// report false.
func MIMEType(id string) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()
	m, ok := toMIME[normalize(id)]
	return m, ok
}

// FromMIME returns the preferred identifier for a MIME type. Parameters
// such as "; charset=" are ignored.
func FromMIME(mime string) (string, bool) {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	mu.RLock()
	defer mu.RUnlock()
	id, ok := fromMT[normalize(mime)]
	return id, ok
}

func hasTopLevel(id, top string) bool {
	m, ok := MIMEType(id)
	return ok && strings.HasPrefix(m, top+"/")
}

// IsImage reports whether the identifier maps to an image/* MIME type.
func IsImage(id string) bool { return hasTopLevel(id, "image") }

// IsVideo reports whether the identifier maps to a video/* MIME type.
func IsVideo(id string) bool { return hasTopLevel(id, "video") }

// IsAudio reports whether the identifier maps to an audio/* MIME type.
func IsAudio(id string) bool { return hasTopLevel(id, "audio") }
