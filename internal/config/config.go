// Package config provides YAML-based game tuning and difficulty presets.
package config

// GameConfig contains all tunable parameters of the simulation.
type GameConfig struct {
	Display    DisplayConfig              `yaml:"display"`
	Physics    PhysicsConfig              `yaml:"physics"`
	Player     PlayerConfig               `yaml:"player"`
	Characters map[string]CharacterConfig `yaml:"characters"`
	Enemies    map[string]EnemyTypeConfig `yaml:"enemies"`
	Spawn      SpawnConfig                `yaml:"spawn"`
	Score      ScoreConfig                `yaml:"score"`
	Animation  AnimationConfig            `yaml:"animation"`
}

// DisplayConfig describes the logical viewport the world is simulated against.
type DisplayConfig struct {
	ViewportWidth  int `yaml:"viewport_width"`
	ViewportHeight int `yaml:"viewport_height"`
	TickRate       int `yaml:"tick_rate"`
}

// PhysicsConfig defines world physics in pixels and seconds.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`        // px/s^2
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // px/s
	DeathPlaneY  float64 `yaml:"death_plane_y"`  // bodies whose top passes this y are lost
}

// PlayerConfig defines the player character.
type PlayerConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	StartX          float64 `yaml:"start_x"`
	StartY          float64 `yaml:"start_y"`
	Speed           float64 `yaml:"speed"`
	JumpForce       float64 `yaml:"jump_force"`
	MaxHealth       int     `yaml:"max_health"`
	AttackDamage    int     `yaml:"attack_damage"`
	AttackDuration  float64 `yaml:"attack_duration"`
	AttackCooldown  float64 `yaml:"attack_cooldown"`
	ComboWindow     float64 `yaml:"combo_window"` // seconds after a swing in which the next swing chains
	AttackReach     float64 `yaml:"attack_reach"`
	AttackHeight    float64 `yaml:"attack_height"`
	Invulnerability float64 `yaml:"invulnerability"` // seconds of immunity after taking a hit
}

// EnemyTypeConfig is one row of the enemy stat table. All enemy kinds share
// one state machine; only these numbers differ.
type EnemyTypeConfig struct {
	Sprite          string  `yaml:"sprite"` // animation table key
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Health          int     `yaml:"health"`
	Speed           float64 `yaml:"speed"`
	ChaseMultiplier float64 `yaml:"chase_multiplier"`
	Damage          int     `yaml:"damage"`
	Points          int     `yaml:"points"`
	AggressionMult  float64 `yaml:"aggression_multiplier"`
	DetectRange     float64 `yaml:"detect_range"`
	AttackRange     float64 `yaml:"attack_range"`
	AttackCooldown  float64 `yaml:"attack_cooldown"`
	HurtDuration    float64 `yaml:"hurt_duration"`
	PatrolRange     float64 `yaml:"patrol_range"`
}

// SpawnConfig tunes spawn point selection.
type SpawnConfig struct {
	SafeDistance float64 `yaml:"safe_distance"` // minimum horizontal gap to the player
	EdgeMargin   float64 `yaml:"edge_margin"`   // inset applied to left/right anchors
}

// ScoreConfig defines scoring and score code plausibility limits.
type ScoreConfig struct {
	LevelClearBonus   int    `yaml:"level_clear_bonus"`
	EarliestTimestamp int64  `yaml:"earliest_timestamp"` // epoch seconds
	FutureSkew        int64  `yaml:"future_skew"`        // seconds a timestamp may lie ahead of now
	ChecksumSeed      uint32 `yaml:"checksum_seed"`
}

// ClipConfig maps an animation state onto a spritesheet.
type ClipConfig struct {
	Sprite string  `yaml:"sprite"`
	Frames int     `yaml:"frames"`
	FPS    float64 `yaml:"fps"`
	Loop   bool    `yaml:"loop"`
}

// AnimationConfig holds clip tables keyed by actor ("player", enemy sprite keys).
type AnimationConfig struct {
	Actors map[string]map[string]ClipConfig `yaml:"actors"`
}

// Clips returns the clip table for an actor. Enemy sprite keys without a
// table of their own share the "basic" table.
func (c GameConfig) Clips(actor string) map[string]ClipConfig {
	if clips, ok := c.Animation.Actors[actor]; ok {
		return clips
	}
	return c.Animation.Actors["basic"]
}

// MaxPointsPerKill returns the highest point value of any enemy type.
func (c GameConfig) MaxPointsPerKill() int {
	best := 0
	for _, e := range c.Enemies {
		if e.Points > best {
			best = e.Points
		}
	}
	return best
}

// StepSeconds returns the fixed simulation step.
func (c GameConfig) StepSeconds() float64 {
	if c.Display.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.Display.TickRate)
}
