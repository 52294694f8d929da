package sim

import (
	"github.com/vovakirdan/skunk-squad/internal/ai"
	"github.com/vovakirdan/skunk-squad/internal/core"
)

// Snapshot is a read-only view of the simulation for renderers. It holds
// only copies; changing it does not affect the game.
type Snapshot struct {
	State      State
	Tick       int64
	LevelIndex int
	LevelCount int
	LevelID    string
	LevelName  string
	Background string
	LevelWidth float64
	CameraX    float64
	SpawnTimer float64
	Spawned    int
	Budget     int

	Score     int64
	Kills     int
	Character string // display name of the played character

	Player    PlayerView
	Enemies   []EnemyView
	Platforms []PlatformView
}

// PlayerView is the player part of a Snapshot.
type PlayerView struct {
	Box          core.Box
	VX, VY       float64
	Health       int
	MaxHealth    int
	FacingRight  bool
	Grounded     bool
	Attacking    bool
	Hitbox       core.Box
	Combo        int
	Invulnerable bool
	Dying        bool
	Anim         string
	Frame        int
	Sprite       string
	Source       core.Rect
}

// EnemyView is one enemy in a Snapshot.
type EnemyView struct {
	ID          int
	Kind        string
	Box         core.Box
	VX, VY      float64
	State       ai.State
	Health      int
	MaxHealth   int
	FacingRight bool
	Anim        string
	Frame       int
	Sprite      string
	Source      core.Rect
}

// PlatformView is one platform in a Snapshot.
type PlatformView struct {
	Box    core.Box
	Moving bool
	Tile   string
}

// Snapshot copies the current state.
func (g *Game) Snapshot() Snapshot {
	l := g.Level()
	p := g.player
	s := Snapshot{
		State:      g.machine.State(),
		Tick:       g.tick,
		LevelIndex: g.levelIdx,
		LevelCount: len(g.levels),
		LevelID:    l.ID,
		LevelName:  l.DisplayName,
		Background: l.Background,
		LevelWidth: l.Width,
		CameraX:    g.cameraX,
		Character:  g.cfg.CharacterName(g.opts.Character),
		SpawnTimer: g.spawner.Timer(),
		Spawned:    g.spawner.Spawned(),
		Budget:     l.Enemies.Budget,
		Score:      g.score,
		Kills:      g.kills,
		Player: PlayerView{
			Box:          p.Body.Box(),
			VX:           p.Body.VX,
			VY:           p.Body.VY,
			Health:       p.Health,
			MaxHealth:    p.MaxHealth,
			FacingRight:  p.FacingRight,
			Grounded:     p.Body.Grounded,
			Attacking:    p.Attacking(),
			Hitbox:       p.Hitbox(),
			Combo:        p.Combo(),
			Invulnerable: p.Invulnerable(),
			Dying:        p.Dying(),
		},
	}
	if p.Anim != nil {
		d := p.Anim.Current()
		s.Player.Anim = p.Anim.State()
		s.Player.Frame = d.Current()
		s.Player.Sprite = d.Key
		s.Player.Source = d.CurrentFrame()
	}

	for _, e := range g.enemies {
		v := EnemyView{
			ID:          e.ID,
			Kind:        e.Kind,
			Box:         e.Body.Box(),
			VX:          e.Body.VX,
			VY:          e.Body.VY,
			State:       e.State,
			Health:      e.Health,
			MaxHealth:   e.Stats.Health,
			FacingRight: e.FacingRight,
		}
		if e.Anim != nil {
			d := e.Anim.Current()
			v.Anim = e.Anim.State()
			v.Frame = d.Current()
			v.Sprite = d.Key
			v.Source = d.CurrentFrame()
		}
		s.Enemies = append(s.Enemies, v)
	}

	for _, pl := range g.world.Platforms {
		s.Platforms = append(s.Platforms, PlatformView{
			Box:    pl.Box,
			Moving: pl.Def.Moving(),
			Tile:   pl.Def.Tile,
		})
	}
	return s
}
