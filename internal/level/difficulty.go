package level

import (
	"github.com/vovakirdan/skunk-squad/internal/config"
	"github.com/vovakirdan/skunk-squad/internal/core"
)

// ApplyDifficulty returns copies of levels with the preset's multipliers
// applied to aggression (clamped to [0,1]) and spawn interval.
func ApplyDifficulty(levels []Level, preset config.DifficultyPreset) []Level {
	scale := config.ScaleFor(preset)
	out := make([]Level, len(levels))
	for i, l := range levels {
		c := l.Clone()
		c.Enemies.Aggression = core.ClampF(c.Enemies.Aggression*scale.Aggression, 0, 1)
		c.Enemies.SpawnInterval *= scale.SpawnInterval
		out[i] = c
	}
	return out
}
