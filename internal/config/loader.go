package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "chase.yaml"

// LoadChase loads the chase configuration.
// Search order: customPath -> ~/.cheesechase/configs/chase.yaml ->
// ./configs/chase.yaml -> embedded default -> DefaultChaseConfig.
// Files are decoded over the defaults, so a file only needs the keys it changes.
// Only an explicit customPath can fail; broken files found by the search are skipped.
func LoadChase(customPath string) (ChaseConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultChaseConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decodeChase(data)
		if err != nil {
			return DefaultChaseConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decodeChase(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := decodeChase(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := decodeChase(defaultChaseYAML); err == nil {
		return cfg, nil
	}
	return DefaultChaseConfig(), nil
}

func decodeChase(data []byte) (ChaseConfig, error) {
	cfg := DefaultChaseConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c ChaseConfig) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world: size must be positive, got %vx%v", c.World.Width, c.World.Height))
	}
	if c.Timing.MaxDelta <= 0 {
		errs = append(errs, errors.New("timing: max_delta must be positive"))
	}
	if c.Player.Radius <= 0 || 2*c.Player.Radius > minF(c.World.Width, c.World.Height) {
		errs = append(errs, fmt.Errorf("player: radius %v does not fit the world", c.Player.Radius))
	}
	if c.Pursuer.Radius <= 0 {
		errs = append(errs, errors.New("pursuer: radius must be positive"))
	}
	if 2*c.Items.SpawnPadding >= minF(c.World.Width, c.World.Height) {
		errs = append(errs, fmt.Errorf("items: spawn_padding %v leaves no room to spawn", c.Items.SpawnPadding))
	}
	if c.Items.SpawnIntervalMin < 0 || c.Items.SpawnIntervalSpan < 0 {
		errs = append(errs, errors.New("items: spawn intervals must not be negative"))
	}
	if c.Trail.MaxPoints < 0 {
		errs = append(errs, errors.New("trail: max_points must not be negative"))
	}
	if c.Difficulty.Penalty.Max < 0 || c.Difficulty.Penalty.Max > 1 {
		errs = append(errs, fmt.Errorf("difficulty: penalty max %v outside [0, 1]", c.Difficulty.Penalty.Max))
	}
	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cheesechase", "configs", filename)
}

// ApplyChasePreset modifies the config based on a difficulty preset.
func ApplyChasePreset(cfg *ChaseConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	cfg.Difficulty.Progression.RampSeconds = RampForPreset(preset)
	if cfg.Difficulty.Progression.Type == "" || cfg.Difficulty.Progression.Type == "none" {
		cfg.Difficulty.Progression.Type = "time"
	}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
