package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/cheese-chase/internal/config"
)

var flagEffective bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the tuning YAML",
	Long: `Print the default tuning file. Save it as
~/.cheesechase/configs/chase.yaml or ./configs/chase.yaml and edit it, or
pass it with --config. A file only needs the keys it changes.

With --effective, prints the configuration the game would actually use after
the config search and the --difficulty preset.

Examples:
  cheesechase config > ~/.cheesechase/configs/chase.yaml
  cheesechase config --effective --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagEffective, "effective", false, "Print the resolved configuration instead of the defaults")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if !flagEffective {
		_, err := os.Stdout.Write(config.GetDefaultYAML())
		return err
	}

	cfg, preset, err := loadTuning()
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	fmt.Printf("# difficulty: %s\n", preset)
	_, err = os.Stdout.Write(out)
	return err
}

// loadTuning resolves --config and --difficulty into the tuning to play with.
// Without --difficulty the file's own difficulty section is kept.
func loadTuning() (config.ChaseConfig, config.DifficultyPreset, error) {
	cfg, err := config.LoadChase(flagConfig)
	if err != nil {
		return cfg, "", err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, "", err
	}
	if flagDifficulty != "" {
		config.ApplyChasePreset(&cfg, preset)
	}
	return cfg, preset, nil
}
