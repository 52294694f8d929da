package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skunk-squad/internal/core"
	"github.com/vovakirdan/skunk-squad/internal/platform/tui"
	"github.com/vovakirdan/skunk-squad/internal/scorecode"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a run in the terminal.

Controls:
  Left/Right, A/D  - Move
  Space/Up/W       - Jump
  X/J              - Attack (three hits chain into a combo)
  P/Esc            - Pause
  Enter            - Start
  R                - Back to menu (after game over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Logs are written to ~/.skunk/skunk.log while the game is on screen.

Examples:
  skunk play
  skunk play --difficulty easy
  skunk play --character ninja
  skunk play --levels ./my-levels --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	logFile, err := openLogFile()
	if err != nil {
		fail("cannot open log file: %v", err)
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, "skunk")
	if err != nil {
		fail("%v", err)
	}

	a, err := loadApp(logger)
	if err != nil {
		fail("%v", err)
	}

	seed := runSeed()
	game, err := a.newGame(seed)
	if err != nil {
		fail("creating game: %v", err)
	}

	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = int64(seed)
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}

	// Open score storage
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - results are still shown as codes
		store = nil
	}

	host := tui.Host{
		Importer: a.importer(store),
		Codec:    a.codec(),
		Logger:   logger,
		ViewW:    float64(a.cfg.Display.ViewportWidth),
		ViewH:    float64(a.cfg.Display.ViewportHeight),
	}

	code, runErr := tui.Run(game, host, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
	if code != "" {
		fmt.Printf("Last run code: %s\n", scorecode.Format(code))
	}
}
