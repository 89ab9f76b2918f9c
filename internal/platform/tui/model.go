package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cheese-chase/internal/audio"
	"github.com/vovakirdan/cheese-chase/internal/config"
	"github.com/vovakirdan/cheese-chase/internal/core"
	"github.com/vovakirdan/cheese-chase/internal/games/chase"
	"github.com/vovakirdan/cheese-chase/internal/storage"
)

// statusTTL is how long a footer message stays up.
const statusTTL = 2 * time.Second

// Options configures a game model.
type Options struct {
	Chase      config.ChaseConfig
	Runtime    core.RuntimeConfig
	Store      storage.Store // nil plays without persistence
	Sound      *audio.Player // nil plays silently
	Logger     *log.Logger
	Player     string // recorded with each run
	Difficulty string
	// ScreenshotDir defaults to ~/.cheesechase/screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model driving one chase session.
type Model struct {
	opts     Options
	session  *chase.Session
	clock    *chase.Clock
	held     *HeldKeys
	keys     KeyMap
	help     help.Model
	screen   *core.Screen
	scores   *ScoreboardModel // non-nil while the scoreboard is open
	logger   *log.Logger
	now      func() time.Time
	width    int
	height   int
	paused   bool
	runSaved bool // whether the current run has been recorded
	quitting bool
	status   string
	statusAt time.Time
}

// NewModel creates the model and its idle session.
func NewModel(opts Options) Model {
	opts.Runtime = opts.Runtime.WithDefaults(time.Now())
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var best chase.BestStore
	if opts.Store != nil {
		best = opts.Store
	}
	session := chase.NewSession(chase.Options{
		Config: opts.Chase,
		Seed:   opts.Runtime.Seed,
		Store:  best,
		Logger: logger,
	})

	in := opts.Chase.Input
	h := help.New()
	h.Width = opts.Runtime.ScreenW

	return Model{
		opts:    opts,
		session: session,
		clock:   chase.NewClock(opts.Chase.Timing.MaxDelta),
		held: NewHeldKeys(
			time.Duration(in.HoldMs)*time.Millisecond,
			time.Duration(in.BoostLatchMs)*time.Millisecond,
		),
		keys:   DefaultKeyMap(),
		help:   h,
		screen: core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH-1),
		logger: logger,
		now:    time.Now,
		width:  opts.Runtime.ScreenW,
		height: opts.Runtime.ScreenH,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.scores != nil {
			return m.updateScores(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.now()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot(now)
		return m, nil

	case key.Matches(msg, m.keys.Scores):
		sb := NewScoreboardModel(m.opts.Store, m.width, m.height)
		m.scores = &sb
		m.held.Clear()
		return m, nil

	case key.Matches(msg, m.keys.Mute):
		if m.opts.Sound != nil {
			muted := !m.opts.Sound.Muted()
			m.opts.Sound.SetMuted(muted)
			if muted {
				m.setStatus("sound off", now)
			} else {
				m.setStatus("sound on", now)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		if m.session.State == chase.StateRunning {
			m.paused = !m.paused
			m.held.Clear()
			if !m.paused {
				m.clock.Reset(now)
			}
			m.logger.Debug("pause toggled", "paused", m.paused, "state", m.session.Snapshot())
		}
		return m, nil

	case key.Matches(msg, m.keys.Start), key.Matches(msg, m.keys.Restart):
		if m.session.State != chase.StateRunning {
			m.startRun(now)
		}
		return m, nil
	}

	if m.paused || m.session.State != chase.StateRunning {
		return m, nil
	}
	for _, a := range m.keys.HeldActions(msg) {
		m.held.Press(a, now)
	}
	return m, nil
}

// updateScores forwards keys to the open scoreboard.
func (m Model) updateScores(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		return m, cmd
	}
	if sb.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if sb.IsGoingBack() {
		m.scores = nil
		m.clock.Reset(m.now())
		return m, cmd
	}
	m.scores = &sb
	return m, cmd
}

// startRun begins a new run from the prompt or after a capture.
func (m *Model) startRun(now time.Time) {
	m.session.Start()
	m.clock.Reset(now)
	m.held.Clear()
	m.paused = false
	m.runSaved = false
	m.logger.Info("run started", "best", m.session.Best())
}

// handleResize processes window resize events. The world is in fixed
// units, so a resize only changes the scale it is drawn at.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height-1)
	m.help.Width = msg.Width
	if m.scores != nil {
		m.scores.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

// handleTick advances the simulation by one frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.status != "" && now.Sub(m.statusAt) > statusTTL {
		m.status = ""
	}

	// Keep the clock current while nothing moves so the next real frame
	// does not see the whole pause as its delta.
	if m.paused || m.scores != nil || m.session.State != chase.StateRunning {
		m.clock.Reset(now)
		return m, tickCmd(m.opts.Runtime.TickRate)
	}

	dt := m.clock.Tick(now)
	events := m.session.Advance(m.held.Frame(now), dt)
	m.handleEvents(events, now)

	return m, tickCmd(m.opts.Runtime.TickRate)
}

// handleEvents plays sounds and records the run when it ends.
func (m *Model) handleEvents(events []chase.Event, now time.Time) {
	if len(events) == 0 {
		return
	}
	if m.opts.Sound != nil {
		m.opts.Sound.Handle(events)
	}
	for _, ev := range events {
		switch ev.Kind {
		case chase.EventCaptured:
			m.recordRun()
		case chase.EventNewBest:
			m.setStatus(fmt.Sprintf("New best: %d!", ev.Score), now)
		case chase.EventItemCollected, chase.EventBoostActivated:
			m.logger.Debug(ev.Kind.String(), "cheese", ev.Cheese, "score", ev.Score)
		}
	}
}

// recordRun saves the finished run to the history, once per run.
func (m *Model) recordRun() {
	if m.runSaved {
		return
	}
	m.runSaved = true
	if m.opts.Store == nil || m.session.FloorScore() <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	run, err := m.opts.Store.SaveRun(ctx, storage.Run{
		Player:     m.opts.Player,
		Score:      m.session.FloorScore(),
		Cheese:     m.session.Stats.Collected,
		Boosts:     m.session.Stats.BoostsUsed,
		Elapsed:    m.session.Elapsed,
		Difficulty: m.opts.Difficulty,
		Seed:       m.opts.Runtime.Seed,
	})
	if err != nil {
		// The game goes on without history.
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.logger.Info("run saved", "id", run.ID, "score", run.Score)
}

func (m *Model) setStatus(text string, now time.Time) {
	m.status = text
	m.statusAt = now
}

// screenshotDir resolves where screenshots go.
func (m Model) screenshotDir() (string, error) {
	if m.opts.ScreenshotDir != "" {
		return m.opts.ScreenshotDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cheesechase", "screenshots"), nil
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot(now time.Time) {
	m.draw()

	dir, err := m.screenshotDir()
	if err == nil {
		err = os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	path := filepath.Join(dir, fmt.Sprintf("chase_%s.txt", now.Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.setStatus("saved "+filepath.Base(path), now)
}

// draw renders the session and any pause box into the screen buffer.
func (m Model) draw() {
	m.session.Render(m.screen)
	if m.paused {
		chase.DrawMessage(m.screen, "Paused", "Press P to resume")
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scores != nil {
		return m.scores.View()
	}

	m.draw()
	return RenderScreen(m.screen) + "\n" + footer(m.status, m.help.View(m.keys), m.width)
}

// Run starts the Bubble Tea program with a new model.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
