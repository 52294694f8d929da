package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// DifficultyScale holds the multipliers a preset applies to level enemy configs.
type DifficultyScale struct {
	Aggression    float64 // multiplies EnemyConfig.Aggression (result clamped to [0,1])
	SpawnInterval float64 // multiplies EnemyConfig.SpawnInterval
}

// ParseDifficulty maps a flag value onto a preset. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ScaleFor returns the multipliers for a preset.
func ScaleFor(preset DifficultyPreset) DifficultyScale {
	switch preset {
	case DifficultyEasy:
		return DifficultyScale{Aggression: 0.7, SpawnInterval: 1.3}
	case DifficultyHard:
		return DifficultyScale{Aggression: 1.25, SpawnInterval: 0.8}
	default:
		return DifficultyScale{Aggression: 1.0, SpawnInterval: 1.0}
	}
}
