package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skunk-squad/internal/config"
	"github.com/vovakirdan/skunk-squad/internal/level"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List, validate and watch level files",
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the levels a run plays, in order",
	Args:  cobra.NoArgs,
	Run:   runLevelsList,
}

var levelsValidateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check level files and report every problem",
	Long: `Validate the level files in dir (default: --levels, or the built-in
levels). Exits non-zero when any level is rejected.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLevelsValidate,
}

var levelsWatchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Re-validate level files whenever they change",
	Args:  cobra.ExactArgs(1),
	Run:   runLevelsWatch,
}

func init() {
	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsValidateCmd)
	levelsCmd.AddCommand(levelsWatchCmd)
}

// viewportWidth returns the configured viewport width levels are checked
// against.
func viewportWidth() float64 {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using default config\n", err)
		cfg = config.DefaultGameConfig()
	}
	return float64(cfg.Display.ViewportWidth)
}

func runLevelsList(_ *cobra.Command, _ []string) {
	levels, err := level.Load(flagLevels, viewportWidth())
	if levels == nil {
		fail("%v", err)
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("  %-3s  %-*s  %-6s  %-6s  %s\n", "#", maxIDLen, "ID", "Width", "Budget", "Name")
	fmt.Printf("  %-3s  %-*s  %-6s  %-6s  %s\n", "-", maxIDLen, "--", "-----", "------", "----")
	for i, l := range levels {
		fmt.Printf("  %-3d  %-*s  %-6.0f  %-6d  %s\n", i+1, maxIDLen, l.ID, l.Width, l.Enemies.Budget, l.DisplayName)
	}

	if err != nil {
		fmt.Println()
		fmt.Println("Some levels were rejected; run 'skunk levels validate' for details.")
	}
}

func runLevelsValidate(_ *cobra.Command, args []string) {
	dir := flagLevels
	if len(args) == 1 {
		dir = args[0]
	}
	if !validateDir(dir, viewportWidth()) {
		os.Exit(1)
	}
}

// validateDir prints every problem in dir and reports whether all levels
// passed.
func validateDir(dir string, width float64) bool {
	var (
		all     []level.Level
		loadErr error
	)
	if dir == "" {
		all, loadErr = level.LoadDefault()
	} else {
		all, loadErr = level.NewLoader(dir).LoadAll()
	}
	if loadErr != nil {
		fmt.Fprintf(os.Stderr, "  load: %v\n", loadErr)
	}

	err := level.ValidateSet(all, width)
	if err != nil {
		for _, e := range flatten(err) {
			fmt.Fprintf(os.Stderr, "  %v\n", e)
		}
	}

	ok := loadErr == nil && err == nil && len(all) > 0
	switch {
	case len(all) == 0:
		fmt.Println("No levels found.")
	case ok:
		fmt.Printf("%d levels OK\n", len(all))
	default:
		fmt.Printf("%d levels checked, problems found\n", len(all))
	}
	return ok
}

// flatten unwraps joined errors into their leaves.
func flatten(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}

func runLevelsWatch(_ *cobra.Command, args []string) {
	dir := args[0]
	width := viewportWidth()

	w, err := level.NewWatcher(dir)
	if err != nil {
		fail("watching %s: %v", dir, err)
	}
	defer w.Close()

	validateDir(dir, width)
	fmt.Printf("Watching %s (Ctrl+C to stop)\n", dir)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			fmt.Printf("\n%s changed\n", path)
			validateDir(dir, width)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		case <-done:
			return
		}
	}
}
