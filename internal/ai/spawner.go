package ai

import (
	"math"

	"github.com/vovakirdan/skunk-squad/internal/config"
	"github.com/vovakirdan/skunk-squad/internal/level"
	"github.com/vovakirdan/skunk-squad/internal/telemetry"
)

// Viewport is the horizontal span of the level currently on screen.
type Viewport struct {
	Left, Right float64
}

// SpawnRequest asks the caller to create one enemy.
type SpawnRequest struct {
	Kind  string
	Stats config.EnemyTypeConfig
	X, Y  float64
	Point int // index of the spawn point used
}

// Spawner feeds enemies into a level on a timer.
//
// Time accumulates only while fewer than MaxEnemies are active and the level
// budget has enemies left. Spawn points are tried in turn starting after the
// last one used; points too close to the player are skipped, and when every
// point is too close the spawn waits for the next tick.
type Spawner struct {
	cfg       level.EnemyConfig
	points    []level.SpawnPoint
	width     float64
	spawnCfg  config.SpawnConfig
	types     map[string]config.EnemyTypeConfig
	counters  *telemetry.Counters
	timer     float64
	nextPoint int
	nextType  int
	spawned   int
}

// NewSpawner creates a spawner for a level.
func NewSpawner(l level.Level, sc config.SpawnConfig, types map[string]config.EnemyTypeConfig, counters *telemetry.Counters) *Spawner {
	l = l.Clone()
	l.Normalize()
	return &Spawner{
		cfg:      l.Enemies,
		points:   l.SpawnPoints,
		width:    l.Width,
		spawnCfg: sc,
		types:    types,
		counters: counters,
	}
}

// Timer returns the accumulated time toward the next spawn.
func (s *Spawner) Timer() float64 {
	return s.timer
}

// Spawned returns how many enemies have been spawned so far.
func (s *Spawner) Spawned() int {
	return s.spawned
}

// Exhausted reports whether the level budget has been spent.
func (s *Spawner) Exhausted() bool {
	return s.spawned >= s.cfg.Budget
}

// Update advances the spawn timer. It returns at most one request per call,
// and never one that would take active past MaxEnemies.
func (s *Spawner) Update(dt float64, active int, playerCenterX float64, view Viewport) (SpawnRequest, bool) {
	if active >= s.cfg.MaxEnemies || s.Exhausted() || len(s.points) == 0 {
		return SpawnRequest{}, false
	}
	if dt > 0 {
		s.timer += dt
	}
	if s.timer < s.cfg.SpawnInterval {
		return SpawnRequest{}, false
	}

	kind := "basic"
	if len(s.cfg.Types) > 0 {
		kind = s.cfg.Types[s.nextType%len(s.cfg.Types)]
	}
	stats, ok := s.types[kind]
	if !ok {
		kind = "basic"
		stats = s.types[kind]
	}

	for k := 0; k < len(s.points); k++ {
		idx := (s.nextPoint + k) % len(s.points)
		sp := s.points[idx]
		x := sp.X.Resolve(view.Left, view.Right, s.spawnCfg.EdgeMargin, stats.Width)
		x = math.Max(0, math.Min(x, s.width-stats.Width))

		if math.Abs(x+stats.Width/2-playerCenterX) < s.spawnCfg.SafeDistance {
			continue
		}

		s.timer = 0
		s.nextPoint = idx + 1
		s.nextType++
		s.spawned++
		return SpawnRequest{Kind: kind, Stats: stats, X: x, Y: sp.Y, Point: idx}, true
	}

	s.counters.Inc(telemetry.SpawnDeferred)
	return SpawnRequest{}, false
}
