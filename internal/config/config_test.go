package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	cfg, err := decodeChase(GetDefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, DefaultChaseConfig(), cfg)
}

func TestDefaultConfigValidates(t *testing.T) {
	assert.NoError(t, DefaultChaseConfig().Validate())
}

func TestValidateRejectsBrokenWorld(t *testing.T) {
	cfg := DefaultChaseConfig()
	cfg.World.Width = 50
	cfg.Timing.MaxDelta = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spawn_padding")
	assert.Contains(t, err.Error(), "max_delta")
}

func TestLoadChaseSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded defaults.
	cfg, err := LoadChase("")
	require.NoError(t, err)
	assert.Equal(t, DefaultChaseConfig(), cfg)

	// Local ./configs wins over embedded.
	require.NoError(t, os.MkdirAll(filepath.Join(work, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(work, "configs", ConfigFile), []byte("player:\n  speed: 300\n"), 0o600))
	cfg, err = LoadChase("")
	require.NoError(t, err)
	assert.Equal(t, 300.0, cfg.Player.Speed)
	assert.Equal(t, 16.0, cfg.Player.Radius, "unset keys keep defaults")

	// User directory wins over local.
	userDir := filepath.Join(home, ".cheesechase", "configs")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, ConfigFile), []byte("player:\n  speed: 250\n"), 0o600))
	cfg, err = LoadChase("")
	require.NoError(t, err)
	assert.Equal(t, 250.0, cfg.Player.Speed)

	// Explicit path wins over everything.
	custom := filepath.Join(work, "custom.yaml")
	require.NoError(t, os.WriteFile(custom, []byte("pursuer:\n  base_speed: 99\n"), 0o600))
	cfg, err = LoadChase(custom)
	require.NoError(t, err)
	assert.Equal(t, 99.0, cfg.Pursuer.BaseSpeed)
	assert.Equal(t, 220.0, cfg.Player.Speed)
}

func TestLoadChaseSkipsBrokenSearchFiles(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	userDir := filepath.Join(home, ".cheesechase", "configs")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, ConfigFile), []byte("player: [not, a, map"), 0o600))

	cfg, err := LoadChase("")
	require.NoError(t, err)
	assert.Equal(t, DefaultChaseConfig(), cfg)
}

func TestLoadChaseCustomPathErrors(t *testing.T) {
	_, err := LoadChase(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("world:\n  width: -1\n"), 0o600))
	_, err = LoadChase(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePreset(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestApplyChasePreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		ramp    float64
		initial float64
	}{
		{DifficultyEasy, true, 90, 0},
		{DifficultyNormal, true, 60, 0},
		{DifficultyHard, true, 40, 0.15},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultChaseConfig()
			ApplyChasePreset(&cfg, tc.preset)
			assert.Equal(t, tc.enabled, cfg.Difficulty.Enabled)
			assert.Equal(t, tc.ramp, cfg.Difficulty.Progression.RampSeconds)
			assert.Equal(t, tc.initial, cfg.Difficulty.InitialLevel)
		})
	}

	cfg := DefaultChaseConfig()
	ApplyChasePreset(&cfg, DifficultyFixed)
	assert.False(t, cfg.Difficulty.Enabled)
	assert.Equal(t, 1.0, NewDifficultyManager(cfg.Difficulty).SpeedFactor(600))
}

func TestNormalPresetMatchesClassicFormula(t *testing.T) {
	cfg := DefaultChaseConfig()
	ApplyChasePreset(&cfg, DifficultyNormal)
	dm := NewDifficultyManager(cfg.Difficulty)

	for _, elapsed := range []float64{0, 1.5, 30, 60, 240} {
		for _, cheese := range []int{0, 1, 5, 10, 25} {
			want := 140 * (1 + elapsed/60) * (1 - math.Min(float64(cheese)*0.04, 0.4))
			assert.InDelta(t, want, dm.Speed(140, elapsed, cheese), 1e-9, "elapsed=%v cheese=%d", elapsed, cheese)
		}
	}
}

func TestSpeedFactorMonotonic(t *testing.T) {
	dm := NewDifficultyManager(DefaultChaseConfig().Difficulty)

	prev := dm.SpeedFactor(0)
	for e := 0.5; e < 600; e += 0.5 {
		f := dm.SpeedFactor(e)
		require.GreaterOrEqual(t, f, prev, "elapsed=%v", e)
		prev = f
	}
	assert.Equal(t, 1.0, dm.SpeedFactor(-5), "negative elapsed behaves like zero")
}

func TestResourcePenaltyBounds(t *testing.T) {
	dm := NewDifficultyManager(DefaultChaseConfig().Difficulty)

	prev := dm.ResourcePenalty(0)
	assert.Equal(t, 1.0, prev)
	for c := 1; c <= 50; c++ {
		p := dm.ResourcePenalty(c)
		require.LessOrEqual(t, p, prev, "cheese=%d", c)
		require.GreaterOrEqual(t, p, 0.6-1e-12, "cheese=%d", c)
		require.LessOrEqual(t, p, 1.0)
		prev = p
	}
	assert.InDelta(t, 0.6, dm.ResourcePenalty(10), 1e-12)
	assert.Equal(t, 1.0, dm.ResourcePenalty(-3))
}
