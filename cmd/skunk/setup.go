package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skunk-squad/internal/config"
	"github.com/vovakirdan/skunk-squad/internal/level"
	"github.com/vovakirdan/skunk-squad/internal/scorecode"
	"github.com/vovakirdan/skunk-squad/internal/sim"
	"github.com/vovakirdan/skunk-squad/internal/sprite"
	"github.com/vovakirdan/skunk-squad/internal/storage"
	"github.com/vovakirdan/skunk-squad/internal/telemetry"
)

// app bundles what every command derives from the global flags.
type app struct {
	cfg      config.GameConfig
	levels   []level.Level
	logger   *log.Logger
	counters *telemetry.Counters
	engine   *sprite.Engine
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	logger.SetLevel(lvl)
	return logger, nil
}

// openLogFile opens ~/.skunk/skunk.log for appending.
func openLogFile() (*os.File, error) {
	path, err := storage.ExpandPath("~/.skunk/skunk.log")
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// loadApp loads config and levels, applies the difficulty preset, and
// builds the sprite engine.
func loadApp(logger *log.Logger) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return nil, err
	}
	if _, err := cfg.PlayerFor(flagCharacter); err != nil {
		return nil, fmt.Errorf("invalid --character: %w", err)
	}

	levels, err := level.Load(flagLevels, float64(cfg.Display.ViewportWidth))
	if levels == nil {
		return nil, err
	}
	if err != nil {
		logger.Warn("some levels were rejected", "error", err)
	}
	levels = level.ApplyDifficulty(levels, preset)

	counters := telemetry.NewCounters(telemetry.LogReporter{Logger: logger})

	var sizes sprite.SizeSource = sprite.DefaultManifest()
	if flagSprites != "" {
		sizes = sprite.Chain{sprite.DirSource{Root: flagSprites}, sizes}
	}

	logger.Debug("loaded", "levels", len(levels), "difficulty", preset, "character", cfg.CharacterName(flagCharacter))
	return &app{
		cfg:      cfg,
		levels:   levels,
		logger:   logger,
		counters: counters,
		engine:   sprite.NewEngine(sizes, counters),
	}, nil
}

// runSeed returns the --seed value, or one derived from the clock.
func runSeed() uint32 {
	if flagSeed != 0 {
		return uint32(flagSeed)
	}
	return uint32(time.Now().UnixNano())
}

// newGame creates a game in MENU.
func (a *app) newGame(seed uint32) (*sim.Game, error) {
	return sim.New(a.cfg, a.levels, a.engine, sim.Options{
		Counters:  a.counters,
		Seed:      seed,
		Character: flagCharacter,
	})
}

// codec returns the score codec of this configuration.
func (a *app) codec() scorecode.Codec {
	return scorecode.Codec{Seed: a.cfg.Score.ChecksumSeed}
}

// importer returns an importer bound to store. A nil store yields an
// importer that verifies but cannot admit.
func (a *app) importer(store *storage.Store) *scorecode.Importer {
	im := &scorecode.Importer{
		Codec:  a.codec(),
		Limits: scorecode.LimitsFor(a.cfg, a.levels),
	}
	if store != nil {
		im.Sink = store
	}
	return im
}

// openStore opens the --db leaderboard.
func openStore() (*storage.Store, error) {
	return storage.Open(flagDBPath)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
