package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skunk-squad/internal/platform/window"
	"github.com/vovakirdan/skunk-squad/internal/scorecode"
)

var flagScale float64

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Start a run in a desktop window.

Controls are the same as in the terminal. Spritesheets are read from
--sprites when given; otherwise actors are drawn as colored boxes.

Examples:
  skunk window
  skunk window --scale 0.5
  skunk window --sprites ./assets/sprites`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window size relative to the 1280x720 viewport")
}

func runWindow(_ *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr, "skunk")
	if err != nil {
		fail("%v", err)
	}

	a, err := loadApp(logger)
	if err != nil {
		fail("%v", err)
	}

	game, err := a.newGame(runSeed())
	if err != nil {
		fail("creating game: %v", err)
	}

	store, err := openStore()
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}

	code, runErr := window.Run(game, window.Options{
		Width:     a.cfg.Display.ViewportWidth,
		Height:    a.cfg.Display.ViewportHeight,
		Scale:     flagScale,
		TickRate:  flagFPS,
		Importer:  a.importer(store),
		Codec:     a.codec(),
		SpriteDir: flagSprites,
		Logger:    logger,
	})

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
