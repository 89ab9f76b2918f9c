package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cheese-chase/internal/audio"
	"github.com/vovakirdan/cheese-chase/internal/config"
	"github.com/vovakirdan/cheese-chase/internal/core"
	"github.com/vovakirdan/cheese-chase/internal/games/chase"
	"github.com/vovakirdan/cheese-chase/internal/storage"
)

// fakeClock is a settable time source for the model.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) time.Time {
	c.t = c.t.Add(d)
	return c.t
}

type countingSink struct{ n int }

func (s *countingSink) Play(beep.Streamer) { s.n++ }

func newTestModel(t *testing.T, store storage.Store) (Model, *fakeClock) {
	t.Helper()
	cfg := config.DefaultChaseConfig()
	// keep random cheese out of the way
	cfg.Items.FirstSpawnDelay = 100

	m := NewModel(Options{
		Chase:         cfg,
		Runtime:       core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7},
		Store:         store,
		Player:        "tester",
		Difficulty:    "normal",
		ScreenshotDir: t.TempDir(),
	})
	clk := &fakeClock{t: time.Unix(5000, 0)}
	m.now = clk.now
	return m, clk
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return mm, cmd
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	m, _ = send(t, m, msg)
	return m
}

func tick(t *testing.T, m Model, at time.Time) Model {
	t.Helper()
	m, cmd := send(t, m, TickMsg(at))
	assert.NotNil(t, cmd, "ticks must keep scheduling")
	return m
}

func openStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	s, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "chase.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestModelStartsIdle(t *testing.T) {
	m, clk := newTestModel(t, nil)
	assert.NotNil(t, m.Init())

	m = tick(t, m, clk.advance(time.Second))
	assert.Equal(t, chase.StateIdle, m.session.State)
	assert.Zero(t, m.session.Elapsed)
	assert.Contains(t, m.View(), chase.StartPrompt)
}

func TestModelSpaceStartsAndMoves(t *testing.T) {
	m, clk := newTestModel(t, nil)

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, chase.StateRunning, m.session.State)

	startX := m.session.Player.Pos.X
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = tick(t, m, clk.advance(20*time.Millisecond))

	assert.InDelta(t, 0.02, m.session.Elapsed, 1e-9)
	assert.InDelta(t, startX+220*0.02, m.session.Player.Pos.X, 1e-9)
	assert.Equal(t, 2, m.session.FloorScore())
}

func TestModelClampsLongFrames(t *testing.T) {
	m, clk := newTestModel(t, nil)
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})

	m = tick(t, m, clk.advance(2*time.Second))
	assert.InDelta(t, config.DefaultChaseConfig().Timing.MaxDelta, m.session.Elapsed, 1e-9)
}

func TestModelPauseFreezesAndResumesWithoutJump(t *testing.T) {
	m, clk := newTestModel(t, nil)
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = tick(t, m, clk.advance(20*time.Millisecond))
	before := m.session.Elapsed

	m = press(t, m, runeKey("p"))
	require.True(t, m.paused)
	m = tick(t, m, clk.advance(500*time.Millisecond))
	m = tick(t, m, clk.advance(500*time.Millisecond))
	assert.Equal(t, before, m.session.Elapsed)
	assert.Contains(t, m.View(), "Paused")

	m = press(t, m, runeKey("p"))
	require.False(t, m.paused)
	m = tick(t, m, clk.advance(10*time.Millisecond))
	assert.InDelta(t, before+0.01, m.session.Elapsed, 1e-9)
}

func TestModelPauseIgnoredWhenIdle(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, runeKey("p"))
	assert.False(t, m.paused)
}

func TestModelRecordsRunOnce(t *testing.T) {
	store := openStore(t)
	m, clk := newTestModel(t, store)
	ctx := context.Background()

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = tick(t, m, clk.advance(30*time.Millisecond))
	m.session.Pursuer.Pos = m.session.Player.Pos
	m = tick(t, m, clk.advance(30*time.Millisecond))
	require.Equal(t, chase.StateEnded, m.session.State)
	assert.Contains(t, m.View(), "The cat caught the mouse! Score: 6")

	m = tick(t, m, clk.advance(30*time.Millisecond))

	runs, err := store.TopRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 6, runs[0].Score)
	assert.Equal(t, "tester", runs[0].Player)
	assert.Equal(t, "normal", runs[0].Difficulty)
	assert.Equal(t, int64(7), runs[0].Seed)

	best, ok, err := store.Get(ctx, "tj-best-score")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "6", best)

	// r starts over and the next capture is recorded too
	m = press(t, m, runeKey("r"))
	require.Equal(t, chase.StateRunning, m.session.State)
	m = tick(t, m, clk.advance(30*time.Millisecond))
	m.session.Pursuer.Pos = m.session.Player.Pos
	m = tick(t, m, clk.advance(30*time.Millisecond))
	require.Equal(t, chase.StateEnded, m.session.State)

	runs, err = store.RecentRuns(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestModelsSharingAStoreNeverLowerBest(t *testing.T) {
	store := openStore(t)
	a, clkA := newTestModel(t, store)
	b, clkB := newTestModel(t, store)

	catch := func(m Model, clk *fakeClock, score float64) Model {
		m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
		m.session.Score = score
		m.session.Pursuer.Pos = m.session.Player.Pos
		m = tick(t, m, clk.advance(30*time.Millisecond))
		require.Equal(t, chase.StateEnded, m.session.State)
		return m
	}

	a = catch(a, clkA, 100.5)
	b = catch(b, clkB, 80.5)

	best, ok, err := store.Get(context.Background(), "tj-best-score")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "103", best)
	assert.Equal(t, 103, b.session.Best())
	assert.Equal(t, 103, a.session.Best())
}

func TestModelPlaysCues(t *testing.T) {
	sink := &countingSink{}
	m, clk := newTestModel(t, nil)
	m.opts.Sound = audio.NewPlayer(sink, 1, nil)

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = tick(t, m, clk.advance(30*time.Millisecond))
	m.session.Pursuer.Pos = m.session.Player.Pos
	m = tick(t, m, clk.advance(30*time.Millisecond))

	// capture with a new best plays the fanfare only
	assert.Equal(t, 1, sink.n)

	m = press(t, m, runeKey("m"))
	assert.True(t, m.opts.Sound.Muted())
}

func TestModelScoreboardToggle(t *testing.T) {
	m, clk := newTestModel(t, openStore(t))
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.NotNil(t, m.scores)
	assert.Contains(t, m.View(), "TOP RUNS")

	// the game does not advance behind the scoreboard
	m = tick(t, m, clk.advance(20*time.Millisecond))
	assert.Zero(t, m.session.Elapsed)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.scores)
	assert.Equal(t, chase.StateRunning, m.session.State)
}

func TestModelScreenshot(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(m.opts.ScreenshotDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "chase_"))

	data, err := os.ReadFile(filepath.Join(m.opts.ScreenshotDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), chase.StartPrompt)
	assert.Contains(t, m.View(), "saved chase_")
}

func TestModelResize(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	lines := strings.Split(m.View(), "\n")
	assert.Len(t, lines, 40)
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, cmd := send(t, m, runeKey("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}
