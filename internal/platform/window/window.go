// Package window runs the game in a desktop window through Ebitengine.
package window

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/skunk-squad/internal/ai"
	"github.com/vovakirdan/skunk-squad/internal/core"
	"github.com/vovakirdan/skunk-squad/internal/scorecode"
	"github.com/vovakirdan/skunk-squad/internal/sim"
)

// Options configures a window host.
type Options struct {
	Title    string
	Width    int // logical viewport in world pixels
	Height   int
	Scale    float64
	TickRate int

	// Importer admits finished runs. Nil means results are only shown.
	Importer *scorecode.Importer
	Codec    scorecode.Codec
	// SpriteDir holds <key>.png sheets. Empty draws flat rectangles.
	SpriteDir string
	Logger    *log.Logger
}

// Host implements ebiten.Game around one sim.Game.
type Host struct {
	game     *sim.Game
	opts     Options
	art      *Art
	last     time.Time
	code     string
	recorded bool
	quit     bool
}

// NewHost creates a host for game.
func NewHost(game *sim.Game, opts Options) *Host {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Title == "" {
		opts.Title = "Skunk Squad"
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr)
	}
	return &Host{game: game, opts: opts, art: NewArt(opts.SpriteDir)}
}

// keyBinding maps a set of keys to one intent.
type keyBinding struct {
	intent core.Intent
	keys   []ebiten.Key
}

var (
	heldKeys = []keyBinding{
		{core.IntentMoveLeft, []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}},
		{core.IntentMoveRight, []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}},
	}
	pressKeys = []keyBinding{
		{core.IntentJump, []ebiten.Key{ebiten.KeySpace, ebiten.KeyW, ebiten.KeyArrowUp}},
		{core.IntentAttack, []ebiten.Key{ebiten.KeyX, ebiten.KeyJ}},
		{core.IntentPause, []ebiten.Key{ebiten.KeyP, ebiten.KeyEscape}},
		{core.IntentStart, []ebiten.Key{ebiten.KeyEnter}},
		{core.IntentRestart, []ebiten.Key{ebiten.KeyR}},
	}
)

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// Update feeds input and elapsed wall-clock time to the game.
func (h *Host) Update() error {
	if h.quit || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	now := time.Now()
	dt := 1 / float64(h.opts.TickRate)
	if !h.last.IsZero() {
		dt = now.Sub(h.last).Seconds()
	}
	h.last = now

	h.game.SetVisible(ebiten.IsFocused())

	for _, b := range heldKeys {
		if anyPressed(b.keys) {
			h.game.Post(b.intent)
		}
	}
	for _, b := range pressKeys {
		if !anyJustPressed(b.keys) {
			continue
		}
		if err := h.game.Post(b.intent); err != nil {
			h.opts.Logger.Debug("intent ignored", "intent", b.intent, "state", h.game.State(), "error", err)
		}
	}

	h.game.Frame(dt)
	for _, ev := range h.game.DrainEvents() {
		h.opts.Logger.Debug("event", "kind", ev.Kind, "name", ev.Name, "tick", ev.Tick)
	}

	switch h.game.State() {
	case sim.StateGameOver:
		if !h.recorded {
			h.record()
			h.recorded = true
		}
	case sim.StatePlaying:
		h.recorded = false
		h.code = ""
	}
	return nil
}

func (h *Host) record() {
	r, ok := h.game.Result()
	if !ok {
		return
	}
	codec := h.opts.Codec
	if h.opts.Importer != nil {
		codec = h.opts.Importer.Codec
	}
	code, err := codec.Encode(r)
	if err != nil {
		h.opts.Logger.Error("cannot encode result", "error", err)
		return
	}
	h.code = code
	if h.opts.Importer == nil || h.opts.Importer.Sink == nil {
		return
	}
	if _, err := h.opts.Importer.Import(context.Background(), code); err != nil {
		h.opts.Logger.Warn("result not admitted", "code", code, "error", err)
		return
	}
	h.opts.Logger.Info("run recorded", "score", r.Score, "level", r.LevelReached, "kills", r.Kills)
}

// Code returns the score code of the last finished run.
func (h *Host) Code() string {
	return h.code
}

var (
	backgrounds = map[string]color.RGBA{
		"bg_forest": {R: 24, G: 48, B: 32, A: 255},
		"bg_city":   {R: 28, G: 30, B: 48, A: 255},
		"bg_dojo":   {R: 56, G: 36, B: 28, A: 255},
	}
	defaultBackground = color.RGBA{R: 20, G: 20, B: 28, A: 255}

	platformColor = color.RGBA{R: 90, G: 140, B: 70, A: 255}
	movingColor   = color.RGBA{R: 70, G: 150, B: 170, A: 255}
	playerColor   = color.RGBA{R: 120, G: 230, B: 120, A: 255}
	blinkColor    = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	hitboxColor   = color.RGBA{R: 250, G: 220, B: 60, A: 140}
	deadColor     = color.RGBA{R: 110, G: 110, B: 110, A: 255}
	hurtColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	shadeColor    = color.RGBA{A: 160}

	enemyColors = map[string]color.RGBA{
		"basic": {R: 210, G: 60, B: 60, A: 255},
		"heavy": {R: 170, G: 70, B: 190, A: 255},
		"swift": {R: 240, G: 150, B: 40, A: 255},
	}
)

// Draw renders the current snapshot.
func (h *Host) Draw(screen *ebiten.Image) {
	snap := h.game.Snapshot()

	bg, ok := backgrounds[snap.Background]
	if !ok {
		bg = defaultBackground
	}
	screen.Fill(bg)

	cam := snap.CameraX
	for _, pl := range snap.Platforms {
		c := platformColor
		if pl.Moving {
			c = movingColor
		}
		fillBox(screen, pl.Box, cam, c)
	}

	for _, e := range snap.Enemies {
		c, ok := enemyColors[e.Kind]
		if !ok {
			c = enemyColors["basic"]
		}
		switch e.State {
		case ai.StateDead:
			c = deadColor
		case ai.StateHurt:
			c = hurtColor
		}
		if !h.drawSprite(screen, e.Sprite, e.Source, e.Box, cam, e.FacingRight) {
			fillBox(screen, e.Box, cam, c)
		}
	}

	p := snap.Player
	if !h.drawSprite(screen, p.Sprite, p.Source, p.Box, cam, p.FacingRight) {
		c := playerColor
		switch {
		case p.Dying:
			c = deadColor
		case p.Invulnerable && snap.Tick/6%2 == 0:
			c = blinkColor
		}
		fillBox(screen, p.Box, cam, c)
	}
	if p.Attacking {
		fillBox(screen, p.Hitbox, cam, hitboxColor)
	}

	h.drawHUD(screen, snap)
}

// drawSprite draws a sheet frame scaled into box. It reports false when no
// sheet is available.
func (h *Host) drawSprite(screen *ebiten.Image, key string, src core.Rect, box core.Box, cam float64, facingRight bool) bool {
	img := h.art.Frame(key, src)
	if img == nil {
		return false
	}
	b := img.Bounds()
	sx := box.W / float64(b.Dx())
	sy := box.H / float64(b.Dy())

	op := &ebiten.DrawImageOptions{}
	if !facingRight {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(b.Dx()), 0)
	}
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(box.X-cam, box.Y)
	screen.DrawImage(img, op)
	return true
}

func fillBox(screen *ebiten.Image, b core.Box, cam float64, c color.Color) {
	vector.DrawFilledRect(screen, float32(b.X-cam), float32(b.Y), float32(b.W), float32(b.H), c, false)
}

func (h *Host) drawHUD(screen *ebiten.Image, snap sim.Snapshot) {
	p := snap.Player

	const barW, barH = 200, 12
	frac := 0.0
	if p.MaxHealth > 0 {
		frac = core.ClampF(float64(p.Health)/float64(p.MaxHealth), 0, 1)
	}
	vector.DrawFilledRect(screen, 16, 16, barW, barH, deadColor, false)
	vector.DrawFilledRect(screen, 16, 16, float32(barW*frac), barH, enemyColors["basic"], false)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("HP %d/%d", max(p.Health, 0), p.MaxHealth), 16, 32)
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("%s (%d/%d)", snap.LevelName, snap.LevelIndex+1, snap.LevelCount),
		h.opts.Width/2-80, 16)
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("SCORE %06d  KO %d", snap.Score, snap.Kills),
		h.opts.Width-180, 16)

	var lines []string
	switch snap.State {
	case sim.StateMenu:
		lines = []string{"SKUNK SQUAD", "Playing as " + snap.Character, "", "ENTER start", "ARROWS move  SPACE jump  X attack", "P pause  Q quit"}
	case sim.StatePaused:
		lines = []string{"PAUSED", "", "P resume"}
	case sim.StateGameOver:
		lines = []string{"GAME OVER", "", fmt.Sprintf("Score %d  Kills %d", snap.Score, snap.Kills)}
		if h.code != "" {
			lines = append(lines, "Code "+scorecode.Format(h.code))
		}
		lines = append(lines, "", "R menu  Q quit")
	}
	if len(lines) == 0 {
		return
	}

	const lineH = 16
	boxW, boxH := 360, len(lines)*lineH+32
	x0, y0 := (h.opts.Width-boxW)/2, (h.opts.Height-boxH)/2
	vector.DrawFilledRect(screen, float32(x0), float32(y0), float32(boxW), float32(boxH), shadeColor, false)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, x0+16, y0+16+i*lineH)
	}
}

// Layout returns the logical viewport.
func (h *Host) Layout(_, _ int) (int, int) {
	return h.opts.Width, h.opts.Height
}

// Run opens the window and blocks until it is closed. It returns the score
// code of the last finished run, if any.
func Run(game *sim.Game, opts Options) (string, error) {
	h := NewHost(game, opts)

	ebiten.SetWindowTitle(h.opts.Title)
	ebiten.SetWindowSize(int(float64(h.opts.Width)*h.opts.Scale), int(float64(h.opts.Height)*h.opts.Scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(h.opts.TickRate)
	// Keep updating while unfocused so focus loss pauses the run.
	ebiten.SetRunnableOnUnfocused(true)

	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		return h.code, fmt.Errorf("window: %w", err)
	}
	return h.code, nil
}
