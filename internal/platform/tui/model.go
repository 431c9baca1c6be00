package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/malformed/internal/core"
	"github.com/vovakirdan/malformed/internal/registry"
	"github.com/vovakirdan/malformed/internal/storage"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       PlayKeyMap
	help       help.Model
	input      core.InputFrame
	hold       holdTracker
	gameState  core.GameState
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
// store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:  store,
		logger: logger,
		config: cfg,
		keys:   DefaultPlayKeyMap(),
		help:   h,
		input:  core.NewInputFrame(),
		hold:   newHoldTracker(),
	}
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey records key presses into the input frame of the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			return m, tea.Quit
		}
	case core.ActionJump:
		m.hold.press(&m.input, key.Matches(msg, m.keys.HighJump))
	case core.ActionCut:
		m.hold.cut(&m.input)
	case core.ActionPause, core.ActionRestart:
		m.input.Press(action)
	}
	return m, nil
}

// handleTick steps the game once with the edges collected since the last tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.hold.tick(m.config.Dt(), &m.input)

	result := m.game.Step(m.input)
	m.gameState = result.State
	if result.Died {
		m.saveRun(result.State)
	}

	m.input.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun stores a finished run. Failures are logged and otherwise ignored.
func (m Model) saveRun(st core.GameState) {
	m.logger.Info("run finished", "game", m.game.ID(), "score", st.Score, "cause", st.Cause)
	if m.store == nil {
		return
	}
	_, err := m.store.SaveRun(storage.Run{
		GameID:   m.game.ID(),
		Score:    st.Score,
		Bytes:    st.Bytes,
		Distance: st.Distance,
		Cause:    st.Cause,
		Seed:     m.config.Seed,
	})
	if err != nil {
		m.logger.Warn("could not save run", "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".malformed", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game until the user quits or goes back to the menu.
// It reports whether the menu was requested.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
