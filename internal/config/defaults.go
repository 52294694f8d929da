package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the built-in configuration. It is used when the
// embedded YAML cannot be parsed and as the base that partial YAML files
// are merged over.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Display: DisplayConfig{
			ViewportWidth:  1280,
			ViewportHeight: 720,
			TickRate:       60,
		},
		Physics: PhysicsConfig{
			Gravity:      1500,
			MaxFallSpeed: 800,
			DeathPlaneY:  900,
		},
		Player: PlayerConfig{
			Width:           50,
			Height:          80,
			StartX:          100,
			StartY:          560,
			Speed:           300,
			JumpForce:       600,
			MaxHealth:       100,
			AttackDamage:    20,
			AttackDuration:  0.3,
			AttackCooldown:  0.15,
			ComboWindow:     0.5,
			AttackReach:     60,
			AttackHeight:    40,
			Invulnerability: 0.8,
		},
		Characters: map[string]CharacterConfig{
			"hero":  {Name: "Hero Skunk", MaxHealth: 100, Speed: 300, JumpForce: 600, AttackDamage: 20},
			"ninja": {Name: "Ninja Skunk", MaxHealth: 80, Speed: 400, JumpForce: 700, AttackDamage: 15},
			"tank":  {Name: "Tank Skunk", MaxHealth: 150, Speed: 200, JumpForce: 500, AttackDamage: 30},
			"mage":  {Name: "Mage Skunk", MaxHealth: 70, Speed: 250, JumpForce: 550, AttackDamage: 25},
		},
		Enemies: map[string]EnemyTypeConfig{
			"basic": {
				Sprite:          "basic",
				Width:           50,
				Height:          70,
				Health:          50,
				Speed:           150,
				ChaseMultiplier: 1.2,
				Damage:          10,
				Points:          100,
				AggressionMult:  1.0,
				DetectRange:     300,
				AttackRange:     60,
				AttackCooldown:  1.5,
				HurtDuration:    0.25,
				PatrolRange:     200,
			},
			"heavy": {
				Sprite:          "heavy",
				Width:           70,
				Height:          90,
				Health:          120,
				Speed:           90,
				ChaseMultiplier: 1.1,
				Damage:          25,
				Points:          250,
				AggressionMult:  0.8,
				DetectRange:     260,
				AttackRange:     80,
				AttackCooldown:  2.2,
				HurtDuration:    0.15,
				PatrolRange:     150,
			},
			"swift": {
				Sprite:          "swift",
				Width:           40,
				Height:          60,
				Health:          30,
				Speed:           220,
				ChaseMultiplier: 1.4,
				Damage:          8,
				Points:          150,
				AggressionMult:  1.3,
				DetectRange:     360,
				AttackRange:     50,
				AttackCooldown:  1.0,
				HurtDuration:    0.3,
				PatrolRange:     260,
			},
		},
		Spawn: SpawnConfig{
			SafeDistance: 150,
			EdgeMargin:   20,
		},
		Score: ScoreConfig{
			LevelClearBonus:   500,
			EarliestTimestamp: 1704067200, // 2024-01-01T00:00:00Z
			FutureSkew:        86400,
			ChecksumSeed:      0x5C0A7ED5,
		},
		Animation: AnimationConfig{
			Actors: map[string]map[string]ClipConfig{
				"player": {
					"idle":    {Sprite: "ninja_idle", Frames: 4, FPS: 8, Loop: true},
					"walk":    {Sprite: "ninja_walk", Frames: 6, FPS: 12, Loop: true},
					"jump":    {Sprite: "ninja_jump", Frames: 4, FPS: 10, Loop: false},
					"fall":    {Sprite: "ninja_fall", Frames: 2, FPS: 8, Loop: true},
					"attack1": {Sprite: "ninja_attack1", Frames: 4, FPS: 16, Loop: false},
					"attack2": {Sprite: "ninja_attack2", Frames: 4, FPS: 16, Loop: false},
					"attack3": {Sprite: "ninja_attack3", Frames: 6, FPS: 18, Loop: false},
					"hit":     {Sprite: "ninja_hurt", Frames: 2, FPS: 10, Loop: false},
					"death":   {Sprite: "ninja_death", Frames: 6, FPS: 8, Loop: false},
				},
				"basic": {
					"idle":   {Sprite: "basic_idle", Frames: 4, FPS: 6, Loop: true},
					"walk":   {Sprite: "basic_walk", Frames: 4, FPS: 8, Loop: true},
					"attack": {Sprite: "basic_attack", Frames: 4, FPS: 10, Loop: false},
					"hit":    {Sprite: "basic_hurt", Frames: 2, FPS: 10, Loop: false},
					"death":  {Sprite: "basic_death", Frames: 4, FPS: 8, Loop: false},
				},
			},
		},
	}
}
