// Package manifest builds asset snapshots from a YAML description of a
// library export: one entry per asset, each listing its resources and the
// files that hold them.
//
//	assets:
//	  - id: 9F1C...
//	    media_kind: image
//	    subtype: {current: 8}
//	    filename: IMG_0001.HEIC
//	    resources:
//	      - kind: photo
//	        uti: public.heic
//	        original_filename: IMG_0001.HEIC
//	        path: originals/IMG_0001.HEIC
//	      - platform_type: 9
//	        path: originals/IMG_0001.MOV
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/zRedShift/mimemagic"
	"gopkg.in/yaml.v3"

	"assetkit/asset"
	"assetkit/uti"
)

var ErrAssetNotFound = errors.New("asset not found")

// Document is the on-disk form of a manifest.
type Document struct {
	// UTIs registers extra identifier -> MIME pairs before assets are built.
	// They go into the process-wide uti registry and stay there for every
	// later Parse and MIME lookup.
	UTIs   map[string]string `yaml:"utis,omitempty"`
	Assets []AssetEntry      `yaml:"assets"`
}

type AssetEntry struct {
	ID        string              `yaml:"id,omitempty"`
	MediaKind string              `yaml:"media_kind"`
	Subtype   asset.SubtypeFields `yaml:"subtype,omitempty"`
	Filename  string              `yaml:"filename,omitempty"`
	Resources []ResourceEntry     `yaml:"resources,omitempty"`
}

// ResourceEntry names its role either by Kind text or by the platform's
// numeric PlatformType; Kind wins when both are set.
type ResourceEntry struct {
	Kind             string `yaml:"kind,omitempty"`
	PlatformType     *int   `yaml:"platform_type,omitempty"`
	UTI              string `yaml:"uti,omitempty"`
	OriginalFilename string `yaml:"original_filename,omitempty"`
	Path             string `yaml:"path,omitempty"`
}

// Manifest is a loaded, ordered set of assets.
type Manifest struct {
	assets []*asset.Asset
	byID   map[string]*asset.Asset
}

// Load reads and parses a manifest file. Resource paths are relative to the
// file's directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse builds a Manifest from YAML. baseDir anchors relative resource
// paths. Resources keep OriginalFilename empty unless the entry names one;
// the name on disk is not taken as the original.
//
// Entries under utis: are passed to uti.Register and so outlive the
// returned Manifest.
func Parse(data []byte, baseDir string) (*Manifest, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	for id, mime := range doc.UTIs {
		uti.Register(id, mime)
	}

	m := &Manifest{byID: make(map[string]*asset.Asset, len(doc.Assets))}
	for i, entry := range doc.Assets {
		a, err := entry.build(baseDir)
		if err != nil {
			return nil, fmt.Errorf("asset %d (%s): %w", i, entry.label(), err)
		}
		if _, dup := m.byID[a.LocalID]; dup {
			return nil, fmt.Errorf("asset %d: duplicate id %q", i, a.LocalID)
		}
		m.assets = append(m.assets, a)
		m.byID[a.LocalID] = a
	}
	return m, nil
}

// Assets returns the assets in manifest order.
func (m *Manifest) Assets() []*asset.Asset {
	return m.assets
}

// Find looks an asset up by id.
func (m *Manifest) Find(id string) (*asset.Asset, bool) {
	a, ok := m.byID[id]
	return a, ok
}

// Get is Find with an error for the CLI.
func (m *Manifest) Get(id string) (*asset.Asset, error) {
	if a, ok := m.Find(id); ok {
		return a, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, id)
}

func (e AssetEntry) label() string {
	if e.ID != "" {
		return e.ID
	}
	if e.Filename != "" {
		return e.Filename
	}
	return "unnamed"
}

func (e AssetEntry) build(baseDir string) (*asset.Asset, error) {
	kind, err := asset.ParseMediaKind(strings.ToLower(strings.TrimSpace(e.MediaKind)))
	if err != nil {
		return nil, err
	}

	id := strings.TrimSpace(e.ID)
	if id == "" {
		id = uuid.NewString()
	}

	a := &asset.Asset{
		LocalID:   id,
		MediaKind: kind,
		Subtype:   e.Subtype,
		Filename:  e.Filename,
	}
	for j, re := range e.Resources {
		r, err := re.build(baseDir)
		if err != nil {
			return nil, fmt.Errorf("resource %d: %w", j, err)
		}
		a.Resources = append(a.Resources, r)
	}
	if strings.TrimSpace(e.MediaKind) == "" {
		a.MediaKind = inferMediaKind(a)
	}
	return a, nil
}

// inferMediaKind derives a kind from the primary resource's identifier for
// entries that leave media_kind out.
func inferMediaKind(a *asset.Asset) asset.MediaKind {
	r, ok := a.PrimaryResource()
	if !ok {
		for _, res := range a.Resources {
			if res.Kind == asset.ResourceKindAudio {
				r, ok = res, true
				break
			}
		}
	}
	if !ok {
		return asset.MediaKindUnknown
	}

	switch {
	case uti.IsImage(r.UTI):
		return asset.MediaKindImage
	case uti.IsVideo(r.UTI):
		return asset.MediaKindVideo
	case uti.IsAudio(r.UTI):
		return asset.MediaKindAudio
	default:
		return asset.MediaKindUnknown
	}
}

func (e ResourceEntry) build(baseDir string) (asset.Resource, error) {
	r := asset.Resource{
		UTI:              strings.TrimSpace(e.UTI),
		OriginalFilename: e.OriginalFilename,
	}

	switch {
	case e.Kind != "":
		k, err := asset.ParseResourceKind(strings.ToLower(strings.TrimSpace(e.Kind)))
		if err != nil {
			return asset.Resource{}, err
		}
		r.Kind = k
	case e.PlatformType != nil:
		r.Kind = asset.ResourceKindFromPlatform(*e.PlatformType)
	default:
		r.Kind = asset.ResourceKindOther
	}

	if e.Path == "" {
		return r, nil
	}

	path := e.Path
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	r.Loader = FileLoader(path)
	if r.UTI == "" {
		r.UTI = sniffUTI(path)
	}
	return r, nil
}

// sniffUTI derives an identifier from file content. Unreadable or
// unrecognised files yield "".
func sniffUTI(path string) string {
	mt, err := mimemagic.MatchFilePath(path)
	if err != nil {
		return ""
	}
	id, ok := uti.FromMIME(mt.MediaType())
	if !ok {
		return ""
	}
	return id
}
