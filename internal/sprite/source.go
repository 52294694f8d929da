// Package sprite slices spritesheets into uniform frames and plays them back
// as animations. It never touches pixels; image sizes come from a SizeSource.
package sprite

import (
	_ "embed"
	"fmt"
	"image"
	_ "image/png" // register PNG header decoding
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/sprites.yaml
var defaultManifestYAML []byte

// Size describes a spritesheet. Pad is the gutter between frames of a padded
// sheet; zero for sheets whose frames are packed edge to edge.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Pad    int `yaml:"pad,omitempty"`
}

// SizeSource is the asset collaborator: it knows the pixel size of a sheet.
type SizeSource interface {
	SpriteSize(key string) (Size, bool)
}

// Manifest is a static table of sheet sizes keyed by sprite key.
type Manifest map[string]Size

// SpriteSize implements SizeSource.
func (m Manifest) SpriteSize(key string) (Size, bool) {
	s, ok := m[key]
	return s, ok
}

// ParseManifest decodes a YAML manifest of the form `sprites: {key: {width, height}}`.
func ParseManifest(data []byte) (Manifest, error) {
	var f struct {
		Sprites Manifest `yaml:"sprites"`
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("sprite: parse manifest: %w", err)
	}
	if f.Sprites == nil {
		f.Sprites = Manifest{}
	}
	return f.Sprites, nil
}

// LoadManifest reads a manifest file.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sprite: read manifest %s: %w", path, err)
	}
	return ParseManifest(data)
}

// DefaultManifest returns the built-in manifest describing the shipped sheets.
func DefaultManifest() Manifest {
	m, err := ParseManifest(defaultManifestYAML)
	if err != nil {
		return Manifest{}
	}
	return m
}

// DirSource reads sheet sizes from PNG headers under Root (Root/<key>.png).
// Pads are not encoded in images, so they are taken from Pads when present.
type DirSource struct {
	Root string
	Pads map[string]int
}

// SpriteSize implements SizeSource.
func (d DirSource) SpriteSize(key string) (Size, bool) {
	f, err := os.Open(filepath.Join(d.Root, key+".png"))
	if err != nil {
		return Size{}, false
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Size{}, false
	}
	return Size{Width: cfg.Width, Height: cfg.Height, Pad: d.Pads[key]}, true
}

// Chain asks each source in turn; the first hit wins.
type Chain []SizeSource

// SpriteSize implements SizeSource.
func (c Chain) SpriteSize(key string) (Size, bool) {
	for _, src := range c {
		if src == nil {
			continue
		}
		if s, ok := src.SpriteSize(key); ok {
			return s, true
		}
	}
	return Size{}, false
}
