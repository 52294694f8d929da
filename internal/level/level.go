// Package level holds the static level data model, its YAML loader and
// load-time validation. Levels are immutable once loaded.
package level

// PlatformKind distinguishes static geometry from platforms that oscillate.
type PlatformKind string

const (
	KindStatic PlatformKind = "static"
	KindMoving PlatformKind = "moving"
)

// Axis is the direction a moving platform travels along.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// Level describes one stage of the run.
type Level struct {
	ID          string        `yaml:"id"`
	DisplayName string        `yaml:"name"`
	Order       int           `yaml:"order,omitempty"`
	Width       float64       `yaml:"width"`
	Background  string        `yaml:"background"`
	SpawnPoints []SpawnPoint  `yaml:"spawn_points"`
	Platforms   []PlatformDef `yaml:"platforms"`
	Enemies     EnemyConfig   `yaml:"enemies"`

	FilePath string `yaml:"-"`
}

// PlatformDef is a rectangle of solid ground. For moving platforms X/Y is the
// anchor; the platform travels Range pixels along Axis at Speed px/s and back.
type PlatformDef struct {
	X      float64      `yaml:"x"`
	Y      float64      `yaml:"y"`
	Width  float64      `yaml:"width"`
	Height float64      `yaml:"height"`
	Kind   PlatformKind `yaml:"type"`
	Tile   string       `yaml:"tile,omitempty"`
	Axis   Axis         `yaml:"axis,omitempty"`
	Range  float64      `yaml:"range,omitempty"`
	Speed  float64      `yaml:"speed,omitempty"`
}

// Moving reports whether the platform oscillates.
func (p PlatformDef) Moving() bool {
	return p.Kind == KindMoving
}

// Extent returns the horizontal span the platform can ever cover.
func (p PlatformDef) Extent() (left, right float64) {
	left, right = p.X, p.X+p.Width
	if p.Moving() && p.Axis == AxisX {
		right += p.Range
	}
	return left, right
}

// EnemyConfig is the per-level spawn and aggression tuning.
type EnemyConfig struct {
	SpawnInterval float64  `yaml:"spawn_interval"` // seconds between spawns
	MaxEnemies    int      `yaml:"max_enemies"`    // cap on simultaneously active enemies
	Aggression    float64  `yaml:"aggression"`     // 0..1
	Budget        int      `yaml:"budget,omitempty"`
	Types         []string `yaml:"types,omitempty"`
}

// Normalize fills optional fields that were left out: platform kind,
// enemy budget and enemy types. The loader calls it for every parsed level;
// levels built in code should call it too.
func (l *Level) Normalize() {
	for i := range l.Platforms {
		if l.Platforms[i].Kind == "" {
			l.Platforms[i].Kind = KindStatic
		}
	}
	if l.Enemies.Budget <= 0 && l.Enemies.MaxEnemies > 0 {
		l.Enemies.Budget = 3 * l.Enemies.MaxEnemies
	}
	if len(l.Enemies.Types) == 0 {
		l.Enemies.Types = []string{"basic"}
	}
}

// Clone returns a deep copy so adjusted levels never alias loaded data.
func (l Level) Clone() Level {
	out := l
	out.SpawnPoints = append([]SpawnPoint(nil), l.SpawnPoints...)
	out.Platforms = append([]PlatformDef(nil), l.Platforms...)
	out.Enemies.Types = append([]string(nil), l.Enemies.Types...)
	return out
}
