// Package registry maps game ids to factories. Runner variants register
// themselves from init(), so the CLI and the TUI discover them without
// importing each variant by name.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/malformed/internal/core"
)

// Game is what the platform drives: a fixed-step simulation that draws
// into a character screen. Implementations never touch the terminal.
type Game interface {
	// ID is the stable identifier used on the command line and in the score store.
	ID() string

	// Title is the display name.
	Title() string

	// Reset builds a fresh run for the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the input edges seen since the last tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst, which the platform clears beforehand.
	Render(dst *core.Screen)

	// State reports score and phase for the HUD and the score store.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a game instance.
type Factory func() Game

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

type entry struct {
	title   string
	factory Factory
}

// Register adds a factory under id.
// It panics on a duplicate id, which can only be a programming error.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{title: f().Title(), factory: f}
}

// List returns every registered game sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		out = append(out, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(out, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
