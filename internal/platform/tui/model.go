package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dapper-duck/internal/config"
	"github.com/vovakirdan/dapper-duck/internal/core"
	"github.com/vovakirdan/dapper-duck/internal/games/duck"
	"github.com/vovakirdan/dapper-duck/internal/storage"
	"github.com/vovakirdan/dapper-duck/internal/telemetry"
)

// toastLife is how long an achievement notice replaces the help bar.
const toastLife = 4 * time.Second

// Options configure a play session.
type Options struct {
	Duck    config.DuckConfig
	Runtime core.RuntimeConfig
	// Store and Recorder are optional. Without them runs are not saved.
	Store    *storage.Store
	Recorder *telemetry.Recorder
}

// Model is the Bubble Tea model hosting one Dapper Duck game.
type Model struct {
	game   *duck.Game
	screen *core.Screen
	store  *storage.Store
	rec    *telemetry.Recorder
	config core.RuntimeConfig
	keys   KeyMap
	help   help.Model

	hold        time.Duration
	lastTick    time.Time
	thrustUntil time.Time

	best       int
	toast      string
	toastUntil time.Time

	board      ScoreboardModel
	showScores bool
	quitting   bool
}

// NewModel creates a model with a game waiting in the menu.
func NewModel(opts Options) (Model, error) {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	game, err := duck.New(opts.Duck, duck.NewRand(cfg.Seed))
	if err != nil {
		return Model{}, err
	}

	m := Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(0, cfg.ScreenH-1)),
		store:  opts.Store,
		rec:    opts.Recorder,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		hold:   time.Duration(opts.Duck.Input.HoldWindowMS) * time.Millisecond,
	}
	if m.store != nil {
		//nolint:errcheck // A missing best score only hides the footer value
		m.best, _ = m.store.HighScore()
	}
	return m, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(0, msg.Height-1))
		m.help.Width = msg.Width
		if m.showScores {
			board, _ := m.board.Update(msg)
			m.board = board.(ScoreboardModel)
		}
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case scoresClosedMsg:
		m.showScores = false
		return m, nil

	case tea.KeyMsg:
		if m.showScores {
			board, cmd := m.board.Update(msg)
			m.board = board.(ScoreboardModel)
			if m.board.IsQuitting() {
				m.quitting = true
			}
			return m, cmd
		}
		return m.handleKey(msg, time.Now())
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot(now)
		return m, nil
	}

	phase := m.game.Phase()
	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.game.ToMenu()
		m.pump(now)
		m.quitting = true
		return m, tea.Quit

	case core.ActionFlap:
		switch phase {
		case duck.PhaseMenu:
			m.start(now)
		case duck.PhasePlay:
			m.game.PressFlap(now)
		}

	case core.ActionThrust:
		if phase == duck.PhasePlay {
			m.thrustUntil = now.Add(m.hold)
		}

	case core.ActionStart:
		m.start(now)

	case core.ActionBack:
		if phase != duck.PhaseMenu {
			m.game.ToMenu()
			m.pump(now)
		}

	case core.ActionScores:
		if phase == duck.PhaseMenu {
			m.board = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
			m.board.embedded = true
			m.showScores = true
		}
	}
	return m, nil
}

// start leaves the menu or retries after game over.
func (m *Model) start(now time.Time) {
	var err error
	switch m.game.Phase() {
	case duck.PhaseMenu:
		err = m.game.Start()
	case duck.PhaseOver:
		err = m.game.Retry()
	default:
		return
	}
	if errors.Is(err, duck.ErrInvalidTransition) {
		return
	}
	m.thrustUntil = time.Time{}
	m.pump(now)
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	var dt float64
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now

	m.game.SetThrust(now.Before(m.thrustUntil))
	m.game.Update(dt)
	m.pump(now)

	return m, tickCmd(m.config.TickRate)
}

// pump forwards drained events to the recorder and picks up unlocks.
func (m *Model) pump(now time.Time) {
	events := m.game.DrainEvents()
	for _, e := range events {
		if ended, ok := e.(duck.SessionEnded); ok && ended.Score > m.best {
			m.best = ended.Score
		}
	}
	if m.rec == nil {
		return
	}
	m.rec.TrackAll(events)
	for _, a := range m.rec.Unlocked() {
		m.toast = "★ Achievement unlocked: " + a.Name
		m.toastUntil = now.Add(toastLife)
	}
}

func (m *Model) saveScreenshot(now time.Time) {
	duck.Render(m.game.Snapshot(), m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".duck", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	path := filepath.Join(dir, fmt.Sprintf("duck_%s.txt", now.Format("20060102_150405")))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showScores {
		return m.board.View()
	}

	duck.Render(m.game.Snapshot(), m.screen)
	return RenderScreen(m.screen) + "\n" + m.footer()
}

func (m Model) footer() string {
	if m.toast != "" && m.lastTick.Before(m.toastUntil) {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")).Render(m.toast)
	}
	best := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Render(fmt.Sprintf("BEST %d  ", m.best))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return best + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
