package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/malformed/internal/core"
	"github.com/vovakirdan/malformed/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// recordingGame keeps every input frame it is stepped with.
type recordingGame struct {
	frames []core.InputFrame
	dieAt  int
	state  core.GameState
}

func (g *recordingGame) ID() string               { return "recording" }
func (g *recordingGame) Title() string            { return "Recording" }
func (g *recordingGame) Reset(core.RuntimeConfig) { g.frames = nil }
func (g *recordingGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "frame") }
func (g *recordingGame) State() core.GameState    { return g.state }
func (g *recordingGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	died := len(g.frames) == g.dieAt
	if died {
		g.state = core.GameState{Score: 12, Bytes: 2, Distance: 300, GameOver: true, Cause: "fell"}
	}
	return core.StepResult{State: g.state, Died: died}
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 5}
}

// keyEvents returns the event times of a key held for length seconds:
// one press, then auto-repeats from delay on at rate per second.
func keyEvents(delay, rate, length float64) []float64 {
	events := []float64{0}
	for at := delay; at < length; at += 1 / rate {
		events = append(events, at)
	}
	return events
}

// replayHold feeds key events to a tracker at 60 ticks per second and
// returns the times of the press and release edges it emits. A release
// is timed at the end of the tick that emitted it.
func replayHold(events []float64, full bool, until float64) (presses, releases []float64) {
	const dt = 1.0 / 60
	h := newHoldTracker()
	next := 0
	for i := 0; float64(i)*dt < until; i++ {
		now := float64(i) * dt
		f := core.NewInputFrame()
		for next < len(events) && events[next] <= now {
			h.press(&f, full)
			next++
		}
		h.tick(dt, &f)
		if f.Pressed(core.ActionJump) {
			presses = append(presses, now)
		}
		if f.Released(core.ActionJump) {
			releases = append(releases, now+dt)
		}
	}
	return presses, releases
}

func TestHoldTracker(t *testing.T) {
	const jumpWindow = 0.3

	tests := []struct {
		name       string
		events     []float64
		full       bool
		presses    int
		releaseMin float64 // first release edge at or after
		releaseMax float64 // first release edge before
	}{
		{
			name:       "tap is a short hop",
			events:     []float64{0},
			presses:    1,
			releaseMin: TapRelease,
			releaseMax: jumpWindow,
		},
		{
			name:       "held key through the repeat delay is one jump",
			events:     keyEvents(0.5, 30, 1),
			presses:    1,
			releaseMin: TapRelease,
			releaseMax: jumpWindow,
		},
		{
			name:       "fast repeat keeps the jump held",
			events:     keyEvents(0.1, 30, 1),
			presses:    1,
			releaseMin: 1,
			releaseMax: 1 + RepeatGap + 0.05,
		},
		{
			name:       "high jump tap is a full jump",
			events:     []float64{0},
			full:       true,
			presses:    1,
			releaseMin: jumpWindow,
			releaseMax: RepeatDelay + 0.05,
		},
		{
			name:       "high jump held through the repeat delay",
			events:     keyEvents(0.5, 30, 1),
			full:       true,
			presses:    1,
			releaseMin: 1,
			releaseMax: 1 + RepeatGap + 0.05,
		},
		{
			name:       "separate taps are separate jumps",
			events:     []float64{0, 1.5},
			presses:    2,
			releaseMin: TapRelease,
			releaseMax: jumpWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			presses, releases := replayHold(tt.events, tt.full, 3)
			if len(presses) != tt.presses {
				t.Fatalf("press edges at %v, expected %d", presses, tt.presses)
			}
			if len(releases) != tt.presses {
				t.Fatalf("release edges at %v, expected %d", releases, tt.presses)
			}
			if r := releases[0]; r < tt.releaseMin-1e-9 || r >= tt.releaseMax {
				t.Errorf("first release at %.3fs, expected within [%.2f, %.2f)", r, tt.releaseMin, tt.releaseMax)
			}
		})
	}
}

func TestHoldTrackerCut(t *testing.T) {
	h := newHoldTracker()

	f := core.NewInputFrame()
	h.press(&f, true)
	h.cut(&f)
	if !f.Pressed(core.ActionJump) || !f.Released(core.ActionJump) {
		t.Fatal("press then cut should carry both edges")
	}

	f = core.NewInputFrame()
	h.cut(&f)
	if f.Released(core.ActionJump) {
		t.Error("a second cut must not release again")
	}

	h.press(&f, false)
	if !f.Pressed(core.ActionJump) {
		t.Error("a press after a cut starts a new hold")
	}
}

func TestPlayKeyMap(t *testing.T) {
	keys := DefaultPlayKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{runeKey('w'), core.ActionJump},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump},
		{runeKey('W'), core.ActionJump},
		{tea.KeyMsg{Type: tea.KeyShiftUp}, core.ActionJump},
		{runeKey('s'), core.ActionCut},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionCut},
		{runeKey('p'), core.ActionPause},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{runeKey('r'), core.ActionRestart},
		{runeKey('b'), core.ActionBack},
		{runeKey('q'), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey('x'), core.ActionNone},
	}
	for _, tt := range tests {
		if got := keys.Action(tt.msg); got != tt.want {
			t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestModelFeedsEdgesToGame(t *testing.T) {
	g := &recordingGame{}
	m := NewModel(g, nil, testConfig(), nil)
	m.Init()

	step := func(msg tea.Msg) {
		next, _ := m.Update(msg)
		m = next.(Model)
	}

	step(runeKey('w'))
	step(TickMsg{})
	step(runeKey('w')) // auto-repeat
	step(TickMsg{})
	step(runeKey('s'))
	step(TickMsg{})

	if len(g.frames) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(g.frames))
	}
	if !g.frames[0].Pressed(core.ActionJump) {
		t.Error("first tick should carry the jump press")
	}
	if g.frames[1].Pressed(core.ActionJump) || g.frames[1].Released(core.ActionJump) {
		t.Error("auto-repeat should not produce edges")
	}
	if !g.frames[2].Released(core.ActionJump) {
		t.Error("cut should release the jump")
	}
}

func TestModelJumpKeys(t *testing.T) {
	tests := []struct {
		name    string
		key     tea.KeyMsg
		release bool // a release edge reaches the game inside the jump window
	}{
		{"tap", runeKey('w'), true},
		{"high jump", runeKey('W'), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &recordingGame{}
			m := NewModel(g, nil, testConfig(), nil)

			next, _ := m.Update(tt.key)
			for i := 0; i < 17; i++ { // 0.28s at 60 ticks per second
				next, _ = next.Update(TickMsg{})
			}

			presses, released := 0, false
			for _, f := range g.frames {
				if f.Pressed(core.ActionJump) {
					presses++
				}
				released = released || f.Released(core.ActionJump)
			}
			if presses != 1 {
				t.Errorf("expected one press edge, got %d", presses)
			}
			if released != tt.release {
				t.Errorf("release inside the jump window = %v, expected %v", released, tt.release)
			}
		})
	}
}

func TestModelSavesRunOnDeath(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &recordingGame{dieAt: 2}
	m := NewModel(g, store, testConfig(), nil)
	m.Init()
	for i := 0; i < 4; i++ {
		next, _ := m.Update(TickMsg{})
		m = next.(Model)
	}

	runs, err := store.RecentRuns("recording", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected exactly one saved run, got %d", len(runs))
	}
	if r := runs[0]; r.Score != 12 || r.Bytes != 2 || r.Cause != "fell" || r.Seed != 5 {
		t.Errorf("saved run = %+v", r)
	}
}

func TestModelBackOnlyWhenStopped(t *testing.T) {
	g := &recordingGame{}
	m := NewModel(g, nil, testConfig(), nil)

	next, _ := m.Update(runeKey('b'))
	if next.(Model).BackToMenu() {
		t.Error("back should be ignored while running")
	}

	g.state.GameOver = true
	next, _ = m.Update(TickMsg{})
	next, cmd := next.Update(runeKey('b'))
	if !next.(Model).BackToMenu() || cmd == nil {
		t.Error("back should leave a finished game")
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(&recordingGame{}, nil, testConfig(), nil)
	view := m.View()
	if !strings.Contains(view, "frame") || !strings.Contains(view, "jump") {
		t.Errorf("view should show the game and the help bar, got %q", view)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.DrawTextColored(0, 1, "xyz", core.ColorCyan)

	out := RenderScreen(s)
	for _, want := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output lacks %q", want)
		}
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 lines, got %q", out)
	}
}

func TestSessionSwitchesScreens(t *testing.T) {
	var m tea.Model = NewSessionModel(nil, testConfig(), nil)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.(SessionModel).current != screenScores {
		t.Fatal("tab should open the scoreboard")
	}
	m, _ = m.Update(runeKey('b'))
	if m.(SessionModel).current != screenMenu {
		t.Fatal("back should return to the menu")
	}
	_, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Error("q in the menu should quit")
	}
}
