package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cheese-chase/internal/config"
	"github.com/vovakirdan/cheese-chase/internal/games/chase"
	"github.com/vovakirdan/cheese-chase/internal/platform/tui"
	"github.com/vovakirdan/cheese-chase/internal/storage"
)

var (
	flagLimit       int
	flagRecent      bool
	flagInteractive bool
	flagClearRuns   bool
	flagRunID       string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded runs",
	Long: `Display the best runs recorded in the database, or the latest ones
with --recent. Use -i for the interactive scoreboard, or --id to show one
run in full, including the seed it was played with.

Examples:
  cheesechase scores
  cheesechase scores --recent --limit 20
  cheesechase scores -i
  cheesechase scores --id 3f2a9c1e-...
  cheesechase --db postgres://chase@localhost/chase scores`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

var resetBestCmd = &cobra.Command{
	Use:   "reset-best",
	Short: "Forget the best score",
	Long: `Delete the stored best score. With --runs the run history is cleared too.

Examples:
  cheesechase reset-best
  cheesechase reset-best --runs`,
	Args: cobra.NoArgs,
	RunE: runResetBest,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the interactive scoreboard")
	scoresCmd.Flags().StringVar(&flagRunID, "id", "", "Show a single run by its ID")
	resetBestCmd.Flags().BoolVar(&flagClearRuns, "runs", false, "Also delete the run history")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := mustOpenStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	ctx := cmd.Context()
	if flagRunID != "" {
		return showRun(cmd, store, flagRunID)
	}

	var runs []storage.Run
	title := "Top runs"
	if flagRecent {
		title = "Recent runs"
		runs, err = store.RecentRuns(ctx, flagLimit)
	} else {
		runs, err = store.TopRuns(ctx, flagLimit)
	}
	if err != nil {
		return fmt.Errorf("cannot retrieve runs: %w", err)
	}

	fmt.Printf("Cheese Chase - %s\n\n", title)

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'cheesechase' and get caught to record the first one!")
		return nil
	}

	fmt.Printf("  %-4s  %-7s  %-6s  %-7s  %-6s  %-12s  %-16s  %s\n", "Rank", "Score", "Cheese", "Time", "Level", "Player", "Date", "ID")
	fmt.Printf("  %-4s  %-7s  %-6s  %-7s  %-6s  %-12s  %-16s  %s\n", "----", "-----", "------", "----", "-----", "------", "----", "--")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-7d  %-6d  %-7s  %-6s  %-12s  %-16s  %s\n",
			i+1, r.Score, r.Cheese, fmt.Sprintf("%.1fs", r.Elapsed), orDash(r.Difficulty),
			orDash(r.Player), r.CreatedAt.Local().Format("2006-01-02 15:04"), r.ID)
	}

	st, err := store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("cannot retrieve stats: %w", err)
	}
	fmt.Println()
	fmt.Printf("%d runs, high score %d, average %.0f, %d cheese, %s survived in total\n",
		st.Runs, st.HighScore, st.AvgScore, st.TotalCheese,
		time.Duration(st.TotalSeconds*float64(time.Second)).Round(time.Second))

	cfg, _, err := loadTuning()
	if err != nil {
		return err
	}
	if raw, ok, err := store.Get(ctx, cfg.Scoring.BestKey); err == nil && ok {
		fmt.Printf("Best: %d\n", chase.ParseBest(raw))
	}
	return nil
}

// showRun prints every recorded field of one run.
func showRun(cmd *cobra.Command, store storage.Store, id string) error {
	r, err := store.RunByID(cmd.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no run with id %q", id)
	}
	if err != nil {
		return fmt.Errorf("cannot retrieve run: %w", err)
	}

	fmt.Printf("Run %s\n\n", r.ID)
	fmt.Printf("  Player:     %s\n", orDash(r.Player))
	fmt.Printf("  Score:      %d\n", r.Score)
	fmt.Printf("  Cheese:     %d\n", r.Cheese)
	fmt.Printf("  Boosts:     %d\n", r.Boosts)
	fmt.Printf("  Survived:   %.1fs\n", r.Elapsed)
	fmt.Printf("  Difficulty: %s\n", orDash(r.Difficulty))
	fmt.Printf("  Seed:       %d\n", r.Seed)
	fmt.Printf("  Played:     %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Println()
	fmt.Printf("Replay the same cheese: cheesechase --seed %d\n", r.Seed)
	return nil
}

func runResetBest(cmd *cobra.Command, _ []string) error {
	store, err := mustOpenStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	cfg, err := config.LoadChase(flagConfig)
	if err != nil {
		return err
	}
	if err := store.Delete(cmd.Context(), cfg.Scoring.BestKey); err != nil {
		return err
	}
	fmt.Println("Best score cleared.")

	if flagClearRuns {
		if err := store.ClearRuns(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Run history cleared.")
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
