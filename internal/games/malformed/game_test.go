package malformed

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/malformed/internal/components"
	"github.com/vovakirdan/malformed/internal/config"
	"github.com/vovakirdan/malformed/internal/core"
	"github.com/vovakirdan/malformed/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func newTestGame(t *testing.T, kind config.ResourceKind, cfg config.RunnerConfig) *Game {
	t.Helper()
	g := New(kind)
	g.UseConfig(cfg)
	g.Reset(testRuntime(7))
	return g
}

func press(a core.Action) core.InputFrame {
	f := core.NewInputFrame()
	f.Press(a)
	return f
}

func TestVariantsRegistered(t *testing.T) {
	tests := []struct {
		id    string
		title string
	}{
		{StaminaID, "Malformed"},
		{MemoryID, "Malformed: Memory Leak"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			g, err := registry.Create(tt.id)
			if err != nil {
				t.Fatalf("Create(%q): %v", tt.id, err)
			}
			if g.ID() != tt.id || g.Title() != tt.title {
				t.Errorf("got %q/%q, expected %q/%q", g.ID(), g.Title(), tt.id, tt.title)
			}
		})
	}
}

func TestMemoryVariantConfig(t *testing.T) {
	g := newTestGame(t, config.ResourceMemory, config.DefaultRunnerConfig())
	cfg := g.Config()
	if cfg.Resource.Kind != config.ResourceMemory {
		t.Errorf("kind = %q, expected memory", cfg.Resource.Kind)
	}
	if cfg.Resource.DrainInterval <= 0 || cfg.Resource.PassiveDrain <= 0 {
		t.Errorf("memory variant should drain passively, got %+v", cfg.Resource)
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() (core.GameState, string) {
		g := newTestGame(t, config.ResourceStamina, config.DefaultRunnerConfig())
		scr := core.NewScreen(80, 24)
		for i := 0; i < 600; i++ {
			in := core.NewInputFrame()
			if i%45 == 0 {
				in.Press(core.ActionJump)
			}
			if i%45 == 10 {
				in.Release(core.ActionJump)
			}
			g.Step(in)
		}
		g.Render(scr)
		return g.State(), scr.String()
	}

	s1, out1 := run()
	s2, out2 := run()
	if s1 != s2 {
		t.Errorf("states differ: %+v vs %+v", s1, s2)
	}
	if out1 != out2 {
		t.Error("rendered frames differ for the same seed and inputs")
	}
}

func TestRenderHUD(t *testing.T) {
	tests := []struct {
		kind  config.ResourceKind
		gauge string
	}{
		{config.ResourceStamina, "STAMINA"},
		{config.ResourceMemory, "MEMORY"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			g := newTestGame(t, tt.kind, config.DefaultRunnerConfig())
			g.Step(core.NewInputFrame())

			scr := core.NewScreen(80, 24)
			g.Render(scr)
			hud := scr.Row(0)
			for _, want := range []string{"SCORE", "BYTES", "SPD", tt.gauge} {
				if !strings.Contains(hud, want) {
					t.Errorf("HUD %q lacks %q", hud, want)
				}
			}
		})
	}
}

func TestBuildingColor(t *testing.T) {
	tests := []struct {
		class components.HeightClass
		want  core.Color
	}{
		{components.HeightLow, core.ColorBlue},
		{components.HeightMid, core.ColorMagenta},
		{components.HeightHigh, core.ColorCyan},
	}
	seen := map[core.Color]bool{}
	for _, tt := range tests {
		if got := buildingColor(tt.class); got != tt.want {
			t.Errorf("buildingColor(%d) = %v, expected %v", tt.class, got, tt.want)
		}
		seen[buildingColor(tt.class)] = true
	}
	if len(seen) != len(tests) {
		t.Error("each height class should get its own shade")
	}
}

func TestDialogShownWhileWalking(t *testing.T) {
	g := newTestGame(t, config.ResourceStamina, config.DefaultRunnerConfig())
	g.Step(core.NewInputFrame())

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.Row(23), monologue[0].text) {
		t.Errorf("bottom row %q should carry the first line", scr.Row(23))
	}
}

func TestPauseOverlay(t *testing.T) {
	g := newTestGame(t, config.ResourceStamina, config.DefaultRunnerConfig())
	g.Step(core.NewInputFrame())
	res := g.Step(press(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected paused state")
	}

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.String(), "PAUSED") {
		t.Error("paused overlay not drawn")
	}
}

func TestDeathAndReboot(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Player.SpawnY = cfg.World.DeathY + 10
	g := newTestGame(t, config.ResourceStamina, cfg)

	died := false
	for i := 0; i < 120 && !died; i++ {
		died = g.Step(core.NewInputFrame()).Died
	}
	if !died {
		t.Fatal("player spawned above the death line should die")
	}
	if st := g.State(); !st.GameOver || st.Cause != "fell" {
		t.Errorf("state after death = %+v", st)
	}

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.String(), "SYSTEM FAILURE") {
		t.Error("death overlay not drawn")
	}

	// Restart is ignored during the cooldown.
	if g.Step(press(core.ActionRestart)).Revived {
		t.Fatal("restart accepted before the cooldown")
	}
	for i := 0; i < 60; i++ {
		g.Step(core.NewInputFrame())
	}

	scr.Clear()
	g.Render(scr)
	if !strings.Contains(scr.String(), "Press R to reboot") {
		t.Error("reboot prompt should appear after the cooldown")
	}
	if !g.Step(press(core.ActionRestart)).Revived {
		t.Error("restart after the cooldown should revive the player")
	}
}

func TestStepWithoutReset(t *testing.T) {
	g := New(config.ResourceStamina)
	g.UseConfig(config.DefaultRunnerConfig())
	res := g.Step(core.NewInputFrame())
	if res.State.GameOver {
		t.Error("fresh game should be alive")
	}
}

func TestInvalidOverrideFallsBack(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Terrain.MinSegments = 8
	cfg.Terrain.MaxSegments = 2
	g := newTestGame(t, config.ResourceStamina, cfg)

	def := config.DefaultRunnerConfig().Terrain
	if got := g.Config().Terrain; got.MinSegments != def.MinSegments || got.MaxSegments != def.MaxSegments {
		t.Fatalf("segments = [%d, %d], expected the defaults [%d, %d]",
			got.MinSegments, got.MaxSegments, def.MinSegments, def.MaxSegments)
	}
	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.State().GameOver {
		t.Error("fallback run should still be alive")
	}
}

func TestResolveConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
	})

	path := filepath.Join(t.TempDir(), "runner.yaml")
	if err := os.WriteFile(path, []byte("terrain:\n  min_spacing: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	if _, err := ResolveConfig(config.ResourceStamina); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}

	// A rejected file falls back to the defaults instead of failing the run.
	g := New(config.ResourceStamina)
	g.Reset(testRuntime(1))
	if g.Config().Terrain.MinSpacing != config.DefaultRunnerConfig().Terrain.MinSpacing {
		t.Error("Reset should fall back to the defaults")
	}

	SetConfigPath("")
	SetDifficultyPreset("fixed")
	cfg, err := ResolveConfig(config.ResourceMemory)
	if err != nil {
		t.Fatalf("ResolveConfig: %v", err)
	}
	if cfg.Player.InitAccelerationX != 0 || cfg.Resource.Kind != config.ResourceMemory {
		t.Errorf("variant and preset not applied: %+v", cfg.Player)
	}
}
