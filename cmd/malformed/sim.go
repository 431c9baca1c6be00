package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/malformed/internal/core"
	"github.com/vovakirdan/malformed/internal/games/malformed"
	"github.com/vovakirdan/malformed/internal/registry"
	"github.com/vovakirdan/malformed/internal/storage"
)

var (
	flagTicks     int
	flagJumpEvery int
	flagJumpHold  int
	flagReboot    bool
	flagSave      bool
	flagFrame     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the simulation headless",
	Long: `Run the runner without a terminal UI, driven by a fixed input script,
and print a summary. The same seed and flags always give the same result,
which makes this handy for tuning configs.

Examples:
  malformed sim --ticks 3600
  malformed sim --seed 7 --jump-every 40 --jump-hold 12 --reboot
  malformed sim --variant memory --frame`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	f := simCmd.Flags()
	f.IntVar(&flagTicks, "ticks", 3600, "Number of ticks to simulate")
	f.IntVar(&flagJumpEvery, "jump-every", 0, "Press jump every N ticks (0 = never)")
	f.IntVar(&flagJumpHold, "jump-hold", 18, "Release jump N ticks after each press")
	f.BoolVar(&flagReboot, "reboot", false, "Reboot as soon as possible after every crash")
	f.BoolVar(&flagSave, "save", false, "Save finished runs to the scores database")
	f.BoolVar(&flagFrame, "frame", false, "Print the last frame")
}

type simSummary struct {
	deaths    int
	bestScore int
	bytes     int
	distance  float64
}

func runSim(cmd *cobra.Command, _ []string) error {
	if flagTicks <= 0 {
		return fmt.Errorf("--ticks must be positive, got %d", flagTicks)
	}
	gameID, kind, err := resolveGameID(flagVariant)
	if err != nil {
		return err
	}
	if _, err := malformed.ResolveConfig(kind); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := newLogger(os.Stderr)
	malformed.SetLogger(logger)

	var store *storage.Store
	if flagSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening scores database: %w", err)
		}
		defer store.Close()
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	rc := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: flagSeed}
	game.Reset(rc)

	var sum simSummary
	state := game.State()
	for tick := 0; tick < flagTicks; tick++ {
		in := core.NewInputFrame()
		if flagJumpEvery > 0 {
			switch tick % flagJumpEvery {
			case 0:
				in.Press(core.ActionJump)
			case flagJumpHold:
				in.Release(core.ActionJump)
			}
		}
		if flagReboot && state.GameOver {
			in.Press(core.ActionRestart)
		}

		res := game.Step(in)
		state = res.State
		if !res.Died {
			continue
		}

		sum.deaths++
		sum.bestScore = max(sum.bestScore, state.Score)
		sum.bytes += state.Bytes
		sum.distance += state.Distance
		logger.Debug("run ended", "tick", tick, "score", state.Score, "cause", state.Cause)
		if store != nil {
			run := storage.Run{
				GameID:   gameID,
				Score:    state.Score,
				Bytes:    state.Bytes,
				Distance: state.Distance,
				Cause:    state.Cause,
				Seed:     rc.Seed,
			}
			if _, err := store.SaveRun(run); err != nil {
				logger.Warn("could not save run", "err", err)
			}
		}
	}
	if !state.GameOver {
		sum.bestScore = max(sum.bestScore, state.Score)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "variant:   %s\n", gameID)
	fmt.Fprintf(out, "seed:      %d\n", rc.Seed)
	fmt.Fprintf(out, "ticks:     %d (%.1fs)\n", flagTicks, float64(flagTicks)*rc.Dt())
	fmt.Fprintf(out, "crashes:   %d\n", sum.deaths)
	fmt.Fprintf(out, "best:      %d\n", sum.bestScore)
	fmt.Fprintf(out, "final:     score=%d bytes=%d distance=%.0f alive=%t\n",
		state.Score, state.Bytes, state.Distance, !state.GameOver)
	if sum.deaths > 0 {
		fmt.Fprintf(out, "finished:  bytes=%d distance=%.0f\n", sum.bytes, sum.distance)
	}

	if flagFrame {
		scr := core.NewScreen(rc.ScreenW, rc.ScreenH)
		game.Render(scr)
		fmt.Fprintln(out)
		fmt.Fprintln(out, scr.String())
	}
	return nil
}
