package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cheese-chase/internal/audio"
	"github.com/vovakirdan/cheese-chase/internal/audio/speaker"
	"github.com/vovakirdan/cheese-chase/internal/core"
	"github.com/vovakirdan/cheese-chase/internal/platform/tui"
)

var (
	flagMute   bool
	flagVolume float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Arrows/WASD        - Move
  Shift+move, E, X   - Boost (spends one cheese)
  Space/Enter        - Start
  R                  - Play again after being caught
  P/Esc              - Pause
  Tab                - Scores
  M                  - Mute
  Ctrl+S             - Save a text screenshot
  Q/Ctrl+C           - Quit

Difficulty options:
  easy   - The cat speeds up slowly
  normal - The classic ramp
  hard   - The cat starts faster and speeds up quicker
  fixed  - The cat never speeds up

Examples:
  cheesechase play
  cheesechase play --difficulty hard
  cheesechase play --seed 42 --mute
  cheesechase play --config ./my-chase.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound off")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound volume from 0 to 1")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, preset, err := loadTuning()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store := openStore(cmd, logger)
	if store != nil {
		defer store.Close()
	}

	var sink audio.Sink
	if !flagMute {
		device, devErr := speaker.Open(audio.SampleRate)
		if devErr != nil {
			logger.Warn("sound disabled", "error", devErr)
		} else {
			defer device.Close()
			sink = device
		}
	}
	sound := audio.NewPlayer(sink, flagVolume, logger)
	sound.SetMuted(flagMute)

	logger.Info("starting game", "difficulty", preset, "seed", flagSeed, "db", flagDB)

	err = tui.Run(tui.Options{
		Chase: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:      store,
		Sound:      sound,
		Logger:     logger,
		Player:     localUser(),
		Difficulty: string(preset),
	})
	if err != nil {
		return fmt.Errorf("game error: %w", err)
	}
	return nil
}

func localUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
