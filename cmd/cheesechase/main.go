// cheesechase is a terminal arcade game: steer the mouse, dodge the cat and
// grab cheese to spend on speed boosts.
//
// Usage:
//
//	cheesechase               - Play (same as "cheesechase play")
//	cheesechase play          - Play in this terminal
//	cheesechase scores        - Show recorded runs
//	cheesechase serve         - Start SSH server for remote play
//	cheesechase config        - Print the default tuning YAML
//	cheesechase reset-best    - Forget the best score
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path|url>       - SQLite path or postgres:// URL (default: ~/.cheesechase/chase.db)
//	--config <path>       - Tuning YAML
//	--difficulty <name>   - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Log destination
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cheese-chase/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDB         string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cheesechase",
	Short: "Cheese Chase - a mouse, a cat and some cheese in your terminal",
	Long: `Cheese Chase is a terminal arcade game. You are the mouse: run from the
cat for as long as you can. Every second survived is worth 100 points.
Cheese appears around the field; each piece you grab can be spent on a
short speed boost, but the more cheese you carry the slower the cat gets.

Available commands:
  play        - Play in this terminal (default)
  scores      - Show recorded runs
  serve       - Start SSH server for remote play
  config      - Print the default tuning YAML
  reset-best  - Forget the best score

Examples:
  cheesechase
  cheesechase play --difficulty hard
  cheesechase scores --recent
  cheesechase serve --ssh :2222
  cheesechase --db postgres://chase@localhost/chase scores`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", storage.DefaultPath, "SQLite database path or postgres:// URL")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default: ~/.cheesechase/chase.log when playing, stderr otherwise)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(resetBestCmd)
}

// openStore opens the --db store. When it cannot be opened the game goes on
// without persistence and the failure is logged.
func openStore(cmd *cobra.Command, logger *log.Logger) storage.Store {
	store, err := storage.Open(cmd.Context(), flagDB)
	if err != nil {
		logger.Warn("could not open database, playing without saved scores", "db", flagDB, "error", err)
		return nil
	}
	return store
}

// mustOpenStore is openStore for commands that are useless without one.
func mustOpenStore(cmd *cobra.Command) (storage.Store, error) {
	store, err := storage.Open(cmd.Context(), flagDB)
	if err != nil {
		return nil, fmt.Errorf("cannot open database %s: %w", flagDB, err)
	}
	return store, nil
}
