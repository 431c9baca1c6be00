package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/malformed/internal/games/malformed"
	"github.com/vovakirdan/malformed/internal/platform/tui"
	"github.com/vovakirdan/malformed/internal/registry"
	"github.com/vovakirdan/malformed/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play, Tab for the scoreboard.
Press B while paused or crashed to come back to the menu.

Examples:
  malformed menu
  malformed menu --fps 30
  malformed menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
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

	cfg := terminalConfig()
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		game, err := registry.Create(result.GameID)
		if err != nil {
			logger.Error("cannot start game", "err", err)
			continue
		}

		// A fixed --seed replays the same run every time.
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		backToMenu, err := tui.Run(game, store, cfg, logger)
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !backToMenu {
			return nil
		}
	}
}
