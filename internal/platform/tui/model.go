package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skunk-squad/internal/core"
	"github.com/vovakirdan/skunk-squad/internal/scorecode"
	"github.com/vovakirdan/skunk-squad/internal/sim"
)

// Host carries what a terminal session needs besides its game.
type Host struct {
	// Importer admits finished runs to the leaderboard. Nil means results
	// are only shown, not stored.
	Importer *scorecode.Importer
	// Codec encodes results when there is no importer.
	Codec  scorecode.Codec
	Logger *log.Logger
	// ViewW and ViewH are the logical viewport in world pixels.
	ViewW, ViewH float64
}

func (h Host) codec() scorecode.Codec {
	if h.Importer != nil {
		return h.Importer.Codec
	}
	return h.Codec
}

// Model is the Bubble Tea model running one game.
type Model struct {
	game     *sim.Game
	host     Host
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     *KeyMapper
	held     *HoldTracker
	last     time.Time
	code     string // score code of the finished run
	recorded bool   // result handled for the current GAME_OVER
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *sim.Game, host Host, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if host.Logger == nil {
		host.Logger = log.New(os.Stderr)
	}
	if host.ViewW <= 0 || host.ViewH <= 0 {
		host.ViewW, host.ViewH = 1280, 720
	}
	return Model{
		game:   game,
		host:   host,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		keys:   NewKeyMapper(),
		held:   &HoldTracker{},
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.FocusMsg:
		m.game.SetVisible(true)
		return m, nil

	case tea.BlurMsg:
		m.held.Release()
		m.game.SetVisible(false)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	intent, quit := m.keys.MapKey(msg)
	if quit {
		m.quitting = true
		return m, tea.Quit
	}

	switch intent {
	case core.IntentNone:
	case core.IntentMoveLeft, core.IntentMoveRight:
		m.held.Press(intent, time.Now())
	default:
		if err := m.game.Post(intent); err != nil {
			m.host.Logger.Debug("intent ignored", "intent", intent, "state", m.game.State(), "error", err)
		}
	}
	return m, nil
}

// handleTick feeds the wall-clock time since the previous tick to the game.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := 1 / float64(m.config.TickRate)
	if !m.last.IsZero() {
		dt = now.Sub(m.last).Seconds()
	}
	m.last = now

	if dir := m.held.Held(now); dir != core.IntentNone {
		m.game.Post(dir)
	}
	m.game.Frame(dt)

	for _, ev := range m.game.DrainEvents() {
		m.host.Logger.Debug("event", "kind", ev.Kind, "name", ev.Name, "tick", ev.Tick)
	}

	switch m.game.State() {
	case sim.StateGameOver:
		if !m.recorded {
			m.recordResult()
			m.recorded = true
		}
	case sim.StatePlaying:
		m.recorded = false
		m.code = ""
	}

	return m, tickCmd(m.config.TickRate)
}

// recordResult encodes the finished run and admits it to the leaderboard.
func (m *Model) recordResult() {
	r, ok := m.game.Result()
	if !ok {
		return
	}
	code, err := m.host.codec().Encode(r)
	if err != nil {
		m.host.Logger.Error("cannot encode result", "error", err)
		return
	}
	m.code = code

	if m.host.Importer == nil || m.host.Importer.Sink == nil {
		return
	}
	if _, err := m.host.Importer.Import(context.Background(), code); err != nil {
		m.host.Logger.Warn("result not admitted", "code", code, "error", err)
		return
	}
	m.host.Logger.Info("run recorded", "score", r.Score, "level", r.LevelReached, "kills", r.Kills)
}

// Code returns the score code of the last finished run.
func (m Model) Code() string {
	return m.code
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".skunk", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("skunk_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

func (m Model) draw() {
	DrawSnapshot(m.screen, m.game.Snapshot(), m.host.ViewW, m.host.ViewH, m.code)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game *sim.Game, host Host, cfg core.RuntimeConfig) (string, error) {
	model := NewModel(game, host, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)

	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if fm, ok := final.(Model); ok {
		return fm.Code(), nil
	}
	return "", nil
}
