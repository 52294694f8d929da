package sim

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/skunk-squad/internal/ai"
	"github.com/vovakirdan/skunk-squad/internal/config"
	"github.com/vovakirdan/skunk-squad/internal/core"
	"github.com/vovakirdan/skunk-squad/internal/level"
	"github.com/vovakirdan/skunk-squad/internal/physics"
	"github.com/vovakirdan/skunk-squad/internal/scorecode"
	"github.com/vovakirdan/skunk-squad/internal/sprite"
	"github.com/vovakirdan/skunk-squad/internal/telemetry"
)

// playerActor is the animation table key of the player.
const playerActor = "player"

// Options are optional collaborators of a Game.
type Options struct {
	Counters  *telemetry.Counters // nil disables diagnostics
	Seed      uint32              // run seed, recorded in score codes
	Now       func() time.Time    // timestamp source for results; nil means time.Now
	Character string              // roster key; empty means config.DefaultCharacter
}

// Game is one simulation context. It owns every entity; hosts read it
// through Snapshot and DrainEvents and drive it with Frame, Post and
// SetVisible, all from one goroutine.
type Game struct {
	cfg      config.GameConfig
	levels   []level.Level
	engine   *sprite.Engine
	counters *telemetry.Counters
	opts     Options

	machine Machine
	clock   *Clock
	brain   *ai.Brain

	levelIdx int
	world    *physics.World
	lc       *ai.LevelContext
	spawner  *ai.Spawner
	player   *Player
	enemies  []*ai.Enemy
	nextID   int
	cameraX  float64

	score int64
	kills int
	tick  int64

	left   bool
	right  bool
	jump   bool
	attack bool

	events []Event
	result *scorecode.Record
}

// New creates a game in MENU. Levels are played in the given order; each
// level's enemy types must exist in cfg.Enemies. The character chosen in
// opts replaces the player stats for every run of this game.
func New(cfg config.GameConfig, levels []level.Level, engine *sprite.Engine, opts Options) (*Game, error) {
	if len(levels) == 0 {
		return nil, errors.New("sim: no levels")
	}
	if engine == nil {
		engine = sprite.NewEngine(nil, opts.Counters)
	}
	if _, ok := cfg.Enemies["basic"]; !ok {
		return nil, errors.New("sim: enemy type \"basic\" is not configured")
	}
	normalized := make([]level.Level, len(levels))
	for i, l := range levels {
		normalized[i] = l.Clone()
		normalized[i].Normalize()
	}
	levels = normalized
	pc, err := cfg.PlayerFor(opts.Character)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	cfg.Player = pc
	for _, l := range levels {
		for _, kind := range l.Enemies.Types {
			if _, ok := cfg.Enemies[kind]; !ok {
				return nil, fmt.Errorf("sim: level %s: unknown enemy type %q", l.ID, kind)
			}
		}
	}

	g := &Game{
		cfg:      cfg,
		levels:   levels,
		engine:   engine,
		counters: opts.Counters,
		opts:     opts,
		clock:    NewClock(cfg.Display.TickRate),
		brain:    ai.NewBrain(opts.Counters),
	}
	g.player = NewPlayer(cfg.Player, g.animator(playerActor))
	g.loadLevel(0)
	return g, nil
}

// State returns the current state.
func (g *Game) State() State {
	return g.machine.State()
}

// Counters returns the diagnostic counters, possibly nil.
func (g *Game) Counters() *telemetry.Counters {
	return g.counters
}

// Post delivers an input intent. Movement holds for the frame it is posted
// in; jump and attack are consumed by the next tick. Action intents outside
// PLAYING are dropped. State intents apply immediately and return
// ErrInvalidTransition when not allowed.
func (g *Game) Post(intent core.Intent) error {
	switch intent {
	case core.IntentMoveLeft, core.IntentMoveRight, core.IntentJump, core.IntentAttack:
		if g.machine.State() != StatePlaying {
			return nil
		}
	}

	switch intent {
	case core.IntentMoveLeft:
		g.left = true
	case core.IntentMoveRight:
		g.right = true
	case core.IntentJump:
		g.jump = true
	case core.IntentAttack:
		g.attack = true
	case core.IntentStart:
		if err := g.machine.Start(); err != nil {
			return err
		}
		g.newRun()
		g.emit(EventSound, SoundMenuSelect)
	case core.IntentPause:
		if g.machine.State() == StatePaused {
			if err := g.machine.Resume(); err != nil {
				return err
			}
		} else if err := g.machine.Pause(); err != nil {
			return err
		}
		g.clearInput()
		g.emit(EventSound, SoundPause)
	case core.IntentRestart:
		if err := g.machine.Restart(); err != nil {
			return err
		}
		g.player = NewPlayer(g.cfg.Player, g.animator(playerActor))
		g.loadLevel(0)
		g.emit(EventSound, SoundMenuSelect)
	}
	return nil
}

// SetVisible reports host visibility; see Machine.SetVisible.
func (g *Game) SetVisible(visible bool) {
	if g.machine.SetVisible(visible) {
		g.clearInput()
	}
}

// clearInput drops pending actions so none survive a pause.
func (g *Game) clearInput() {
	g.left, g.right, g.jump, g.attack = false, false, false, false
}

// Frame is the host's per-frame callback. In PLAYING it runs every fixed
// step that rawDelta makes due; in MENU and GAME_OVER it only animates the
// idle player; in PAUSED nothing advances.
func (g *Game) Frame(rawDelta float64) {
	switch g.machine.State() {
	case StatePlaying:
		n := g.clock.Advance(rawDelta)
		step := g.clock.Step()
		for i := 0; i < n && g.machine.State() == StatePlaying; i++ {
			g.step(step)
		}
		if n > 0 {
			g.left, g.right = false, false
		}
	case StateMenu, StateGameOver:
		if rawDelta > 0 && !math.IsInf(rawDelta, 0) {
			g.player.Anim.Advance(math.Min(rawDelta, maxStepsPerFrame*g.clock.Step()))
		}
		g.clearInput()
	}
}

// Result returns the final record of the last run once GAME_OVER is reached.
func (g *Game) Result() (scorecode.Record, bool) {
	if g.result == nil {
		return scorecode.Record{}, false
	}
	return *g.result, true
}

// DrainEvents returns and clears pending events.
func (g *Game) DrainEvents() []Event {
	ev := g.events
	g.events = nil
	return ev
}

// Level returns the active level.
func (g *Game) Level() level.Level {
	return g.levels[g.levelIdx]
}

func (g *Game) emit(kind EventKind, name string) {
	g.events = append(g.events, Event{Kind: kind, Name: name, Tick: g.tick})
}

func (g *Game) animator(actor string) *sprite.Animator {
	return sprite.NewAnimator(g.engine, sprite.ClipsFromConfig(g.cfg.Clips(actor)))
}

// newRun resets score and player and loads the first level.
func (g *Game) newRun() {
	g.score, g.kills, g.tick = 0, 0, 0
	g.result = nil
	g.left, g.right, g.jump, g.attack = false, false, false, false
	g.clock.Reset()
	g.player = NewPlayer(g.cfg.Player, g.animator(playerActor))
	g.loadLevel(0)
}

// loadLevel builds the runtime world for level i and places the player at
// the level start.
func (g *Game) loadLevel(i int) {
	l := g.levels[i]
	g.levelIdx = i
	g.world = physics.NewWorld(l, g.cfg.Physics)
	g.lc = &ai.LevelContext{Width: l.Width, World: g.world}
	g.spawner = ai.NewSpawner(l, g.cfg.Spawn, g.cfg.Enemies, g.counters)
	g.enemies = nil
	g.player.Place(g.cfg.Player.StartX, g.cfg.Player.StartY)
	g.updateCamera()
	g.emit(EventLevel, l.ID)
	g.emit(EventMusic, MusicFor(l.Background))
}

// step runs one atomic tick: physics, then AI and combat, then animation.
func (g *Game) step(dt float64) {
	g.tick++
	p := g.player

	// Physics
	g.world.AdvancePlatforms(dt)
	dir := 0
	if g.left {
		dir--
	}
	if g.right {
		dir++
	}
	for _, s := range p.control(dir, g.jump, g.attack, dt) {
		g.emit(EventSound, s)
	}
	g.jump, g.attack = false, false

	c := g.world.Step(&p.Body, dt)
	if c.Landed && p.Alive() {
		g.emit(EventSound, SoundLand)
	}
	if c.Fell && p.Alive() {
		p.fall()
		g.emit(EventSound, SoundPlayerHit)
	}
	for _, e := range g.enemies {
		if e.Removed {
			continue
		}
		if ec := g.world.Step(&e.Body, dt); ec.Fell {
			g.brain.Kill(e)
		}
	}
	g.updateCamera()

	// AI
	g.spawn(dt)
	ctx := ai.Context{
		Level:      g.lc,
		Player:     ai.Target{Box: p.Body.Box(), Alive: p.Alive()},
		Aggression: g.Level().Enemies.Aggression,
	}
	for _, e := range g.enemies {
		if e.Removed {
			continue
		}
		if dmg := g.brain.Update(e, ctx, dt); dmg > 0 && p.hurt(dmg) {
			g.emit(EventSound, SoundPlayerHit)
		}
	}
	g.resolveSwing()

	// Animation
	p.advanceAnim(dt)
	live := g.enemies[:0]
	for _, e := range g.enemies {
		e.AdvanceAnim(dt)
		if !e.Removed {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(g.enemies); i++ {
		g.enemies[i] = nil
	}
	g.enemies = live

	g.checkEnd()
}

// spawn asks the spawner for at most one enemy.
func (g *Game) spawn(dt float64) {
	active := 0
	for _, e := range g.enemies {
		if e.Alive() {
			active++
		}
	}
	vw := float64(g.cfg.Display.ViewportWidth)
	view := ai.Viewport{Left: g.cameraX, Right: g.cameraX + vw}
	req, ok := g.spawner.Update(dt, active, g.player.Body.Box().CenterX(), view)
	if !ok {
		return
	}
	g.nextID++
	e := ai.NewEnemy(g.nextID, req.Kind, req.Stats, req.X, req.Y, g.animator(req.Stats.Sprite))
	g.enemies = append(g.enemies, e)
}

// resolveSwing applies the player's current swing to every enemy it covers,
// once per swing.
func (g *Game) resolveSwing() {
	p := g.player
	if !p.Attacking() || p.swingHit || !p.Alive() {
		return
	}
	p.swingHit = true
	hb := p.Hitbox()
	dmg := p.SwingDamage()
	for _, e := range g.enemies {
		if !e.Alive() || !hb.Intersects(e.Body.Box()) {
			continue
		}
		if g.brain.Damage(e, dmg) {
			g.score += int64(e.Stats.Points)
			g.kills++
			g.emit(EventSound, SoundEnemyDeath)
		} else {
			g.emit(EventSound, SoundEnemyHit)
		}
	}
}

// checkEnd resolves the player's death and level completion.
func (g *Game) checkEnd() {
	p := g.player
	if p.deathResolved() {
		g.finish(g.levelIdx + 1)
		return
	}
	if !p.Alive() || !g.spawner.Exhausted() || len(g.enemies) > 0 {
		return
	}
	if p.Body.Box().Right() < g.world.Width-1 {
		return
	}

	g.score += int64(g.cfg.Score.LevelClearBonus)
	if g.levelIdx+1 >= len(g.levels) {
		g.finish(len(g.levels))
		return
	}
	g.loadLevel(g.levelIdx + 1)
}

// finish ends the run and records its result.
func (g *Game) finish(levelReached int) {
	if err := g.machine.PlayerDeathResolved(); err != nil {
		return
	}
	now := time.Now
	if g.opts.Now != nil {
		now = g.opts.Now
	}
	g.result = &scorecode.Record{
		Score:        g.score,
		LevelReached: levelReached,
		Kills:        g.kills,
		Timestamp:    now().Unix(),
		ChecksumSeed: g.opts.Seed,
	}
	g.emit(EventSound, SoundGameOver)
}

// updateCamera keeps the player centered within the level bounds.
func (g *Game) updateCamera() {
	vw := float64(g.cfg.Display.ViewportWidth)
	maxX := math.Max(0, g.world.Width-vw)
	g.cameraX = core.ClampF(g.player.Body.Box().CenterX()-vw/2, 0, maxX)
}
