// Package malformed implements the rooftop runner as an arcade game.
// The simulation lives in internal/systems; this package loads its
// configuration, adapts it to the platform's Game interface and draws it.
package malformed

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/malformed/internal/config"
	"github.com/vovakirdan/malformed/internal/core"
	"github.com/vovakirdan/malformed/internal/registry"
	"github.com/vovakirdan/malformed/internal/systems"
)

// Registered ids of the two gauge variants.
const (
	StaminaID = "malformed"
	MemoryID  = "malformed_memory"
)

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back
// to the config file as-is.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetLogger routes game and simulation events to l.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game adapts a runner simulation to registry.Game.
type Game struct {
	id    string
	title string
	kind  config.ResourceKind

	runtime  core.RuntimeConfig
	cfg      config.RunnerConfig
	override *config.RunnerConfig
	sim      *systems.Simulation
	dialog   dialog
	frame    int // animation counter, advances on unpaused ticks
}

// New creates a game for the given gauge variant.
func New(kind config.ResourceKind) *Game {
	g := &Game{id: StaminaID, title: "Malformed", kind: kind}
	if kind == config.ResourceMemory {
		g.id = MemoryID
		g.title = "Malformed: Memory Leak"
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// UseConfig makes Reset use cfg instead of loading from disk.
// The variant and preset are still applied on top, and an override that
// fails validation falls back to the defaults.
func (g *Game) UseConfig(cfg config.RunnerConfig) {
	g.override = &cfg
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()
	g.sim = systems.NewSimulation(g.cfg, runtime, systems.WithLogger(logger))
	g.dialog = newDialog()
	g.frame = 0
}

func (g *Game) loadConfig() config.RunnerConfig {
	var (
		cfg config.RunnerConfig
		err error
	)
	if g.override != nil {
		cfg = *g.override
		tune(&cfg, g.kind)
		if err = cfg.Validate(); err != nil {
			logger.Warn("config override rejected, using defaults", "err", err)
		}
	} else if cfg, err = ResolveConfig(g.kind); err != nil {
		logger.Warn("config rejected, using defaults", "path", configPath, "err", err)
	}
	if err != nil {
		cfg = config.DefaultRunnerConfig()
		tune(&cfg, g.kind)
	}
	return cfg
}

// ResolveConfig loads the configuration the next Reset will use for the
// given variant, with the variant and difficulty preset applied, and
// validates the result.
func ResolveConfig(kind config.ResourceKind) (config.RunnerConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	tune(&cfg, kind)
	return cfg, cfg.Validate()
}

func tune(cfg *config.RunnerConfig, kind config.ResourceKind) {
	config.ApplyVariant(cfg, kind)
	if difficultyPreset != "" {
		config.ApplyPreset(cfg, difficultyPreset)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.sim == nil {
		g.Reset(core.DefaultConfig())
	}

	before := g.sim.Context().Life
	ctx := g.sim.Step(in)

	if !ctx.Paused {
		g.frame++
		if ctx.Life == systems.Alive && ctx.Movement == systems.Walking {
			g.dialog.advance(ctx.Dt)
		}
	}

	return core.StepResult{
		State:   g.State(),
		Died:    before == systems.Alive && ctx.Life == systems.Dead,
		Revived: before == systems.Dead && ctx.Life == systems.Alive,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{}
	}
	ctx := g.sim.Context()
	stats := g.sim.Stats()
	return core.GameState{
		Score:    stats.Score,
		GameOver: ctx.Life == systems.Dead,
		Paused:   ctx.Paused,
		Bytes:    stats.Bytes,
		Distance: stats.Distance,
		Cause:    stats.Cause,
	}
}

// Config returns the configuration of the current run.
func (g *Game) Config() config.RunnerConfig {
	return g.cfg
}

// Register both variants with the registry
func init() {
	registry.Register(StaminaID, func() registry.Game {
		return New(config.ResourceStamina)
	})
	registry.Register(MemoryID, func() registry.Game {
		return New(config.ResourceMemory)
	})
}
