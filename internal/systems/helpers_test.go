package systems

import (
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/malformed/internal/config"
	"github.com/vovakirdan/malformed/internal/core"
	"github.com/vovakirdan/malformed/internal/ecs"
	"github.com/vovakirdan/malformed/internal/physics"
)

const testDt = 1.0 / 60

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func newTestEnv(t *testing.T) *Env {
	t.Helper()
	cfg := config.DefaultRunnerConfig()
	w := ecs.NewWorld()
	return &Env{
		World:   w,
		Physics: physics.New(w, cfg.World.Gravity, ecs.TagGround),
		Config:  cfg,
		Screen:  testRuntime(),
		Rand:    rand.New(rand.NewSource(1)),
		Log:     log.New(io.Discard),
	}
}

func runningCtx() Context {
	return Context{Dt: testDt, Life: Alive, Movement: Running, Assets: AssetsReady}
}

func frame(pressed ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range pressed {
		f.Press(a)
	}
	return f
}

func released(a core.Action) core.InputFrame {
	f := core.NewInputFrame()
	f.Release(a)
	return f
}
