// skunk is a side-scrolling beat-'em-up platformer that runs in the
// terminal, in a desktop window, or over SSH.
//
// Usage:
//
//	skunk play                  - Play in the terminal
//	skunk window                - Play in a desktop window
//	skunk serve                 - Start SSH server for remote play
//	skunk scores                - Show the leaderboard
//	skunk code <cmd>            - Export, import and verify score codes
//	skunk levels <cmd>          - List, validate and watch level files
//
// Global flags:
//
//	--fps <rate>          - Set host frame rate (default: 60)
//	--seed <value>        - Set run seed (0 = derived from time)
//	--db <path>           - Set database path (default: ~/.skunk/scores.db)
//	--config <path>       - Custom game config YAML
//	--levels <dir>        - Directory of level YAML files
//	--sprites <dir>       - Directory of <key>.png spritesheets
//	--difficulty <preset> - easy, normal or hard
//	--character <key>     - hero, ninja, tank or mage
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevels     string
	flagSprites    string
	flagDifficulty string
	flagCharacter  string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skunk",
	Short: "Skunk Squad - a beat-'em-up platformer",
	Long: `Skunk Squad is a side-scrolling beat-'em-up platformer. Fight through
the stages, chain three-hit combos, and share your score as a code.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View the leaderboard
  code     - Export, import and verify score codes
  levels   - List, validate and watch level files

Examples:
  skunk play
  skunk play --difficulty hard
  skunk window --scale 0.75
  skunk serve --ssh :2222
  skunk scores --board
  skunk code import ABCD-EFGH-...`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Host frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Run seed (0 = derived from time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skunk/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of level YAML files (default: built-in levels)")
	rootCmd.PersistentFlags().StringVar(&flagSprites, "sprites", "", "Directory of <key>.png spritesheets")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagCharacter, "character", "", "Playable skunk: hero, ninja, tank, mage (default: hero)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(codeCmd)
	rootCmd.AddCommand(levelsCmd)
}
