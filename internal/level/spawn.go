package level

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Anchor names a viewport edge a spawn x can be pinned to.
type Anchor string

const (
	AnchorNone  Anchor = ""
	AnchorLeft  Anchor = "left"
	AnchorRight Anchor = "right"
)

// SpawnX is either a fixed world x or a viewport edge anchor.
type SpawnX struct {
	Value  float64
	Anchor Anchor
}

// At returns a numeric spawn x.
func At(x float64) SpawnX {
	return SpawnX{Value: x}
}

// Edge returns an anchored spawn x.
func Edge(a Anchor) SpawnX {
	return SpawnX{Anchor: a}
}

// IsAnchor reports whether x follows the viewport.
func (s SpawnX) IsAnchor() bool {
	return s.Anchor != AnchorNone
}

// Resolve returns the world x for an entity of width entityW, given the
// current viewport span and an inset from its edges.
func (s SpawnX) Resolve(viewLeft, viewRight, margin, entityW float64) float64 {
	switch s.Anchor {
	case AnchorLeft:
		return viewLeft + margin
	case AnchorRight:
		return viewRight - margin - entityW
	default:
		return s.Value
	}
}

func (s SpawnX) String() string {
	if s.IsAnchor() {
		return string(s.Anchor)
	}
	return strconv.FormatFloat(s.Value, 'f', -1, 64)
}

// UnmarshalYAML accepts a number or one of the anchor names.
func (s *SpawnX) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: spawn x must be a number or left/right", node.Line)
	}
	if v, err := strconv.ParseFloat(node.Value, 64); err == nil {
		*s = At(v)
		return nil
	}
	// Unknown names are kept so validation can report them with context.
	*s = Edge(Anchor(node.Value))
	return nil
}

// MarshalYAML writes anchors as names and numbers as numbers.
func (s SpawnX) MarshalYAML() (interface{}, error) {
	if s.IsAnchor() {
		return string(s.Anchor), nil
	}
	return s.Value, nil
}

// SpawnPoint is a candidate enemy spawn location.
type SpawnPoint struct {
	X SpawnX  `yaml:"x"`
	Y float64 `yaml:"y"`
}
