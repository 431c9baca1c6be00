package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/malformed/internal/core"
	"github.com/vovakirdan/malformed/internal/games/malformed"
	"github.com/vovakirdan/malformed/internal/platform/tui"
	"github.com/vovakirdan/malformed/internal/registry"
	"github.com/vovakirdan/malformed/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start a run of the given variant (default: --variant, i.e. stamina).

Variants:
  stamina  - Jumping drains stamina, standing on a roof restores it
  memory   - Memory also leaks over time; run out and the system crashes

Controls:
  Space/W/Up  - Jump (hold for a full jump)
  S/Down      - Cut the jump short
  P/Esc       - Pause
  R           - Reboot after a crash
  B           - Back (while paused or crashed)
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Lower top speed, tighter gaps
  normal - Config as-is
  hard   - Higher top speed, faster acceleration
  fixed  - No acceleration after the warm-up

Examples:
  malformed play
  malformed play memory
  malformed play --difficulty hard
  malformed play --config ./my-runner.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	name := flagVariant
	if len(args) == 1 {
		name = args[0]
	}
	gameID, kind, err := resolveGameID(name)
	if err != nil {
		return err
	}

	// Refuse to start on a broken config rather than silently using defaults.
	if _, err := malformed.ResolveConfig(kind); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger, closeLog := fileLogger()
	defer closeLog()
	malformed.SetLogger(logger)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	_, err = tui.Run(game, store, terminalConfig(), logger)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// terminalConfig builds the runtime config from the terminal size and
// the global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
