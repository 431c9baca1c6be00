// malformed is a rooftop auto-runner for the terminal.
//
// Usage:
//
//	malformed list               - List the game variants
//	malformed play [variant]     - Play a variant (stamina or memory)
//	malformed menu               - Pick a variant interactively
//	malformed scores [variant]   - Show high scores and recent runs
//	malformed serve              - Start SSH server for remote play
//	malformed sim                - Run the simulation headless
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.malformed/scores.db)
//	--config <path>       - Use a custom runner config YAML
//	--difficulty <name>   - Apply a difficulty preset
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/malformed/internal/config"
	"github.com/vovakirdan/malformed/internal/games/malformed"
	"github.com/vovakirdan/malformed/internal/registry"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagVariant    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "malformed",
	Short: "Malformed - a rooftop runner in your terminal",
	Long: `Malformed is an endless rooftop runner. Your computer is broken,
the parts shop is across town and the only way there is over the roofs.

Available commands:
  list     - Show the game variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  scores   - View high scores and recent runs
  serve    - Start SSH server for remote play
  sim      - Run the simulation without a terminal UI

Examples:
  malformed play
  malformed play memory --difficulty hard
  malformed menu
  malformed sim --seed 42 --ticks 3600 --jump-every 45
  malformed serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.malformed/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagVariant, "variant", "stamina", "Gauge variant: stamina or memory")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

// setup validates the global flags and hands them to the game package.
func setup(cmd *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	if _, err := log.ParseLevel(flagLogLevel); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}

	malformed.SetConfigPath(flagConfig)
	malformed.SetDifficultyPreset(flagDifficulty)
	malformed.SetLogger(newLogger(os.Stderr))
	return nil
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "malformed",
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// fileLogger returns a logger for use while the TUI owns the terminal.
// It writes to ~/.malformed/malformed.log, or nowhere when that fails.
func fileLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	path := filepath.Join(home, ".malformed", "malformed.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

// resolveGameID maps a variant name or a game id to a registered game id.
func resolveGameID(name string) (string, config.ResourceKind, error) {
	var (
		id   string
		kind config.ResourceKind
	)
	switch name {
	case "", string(config.ResourceStamina), malformed.StaminaID:
		id, kind = malformed.StaminaID, config.ResourceStamina
	case string(config.ResourceMemory), malformed.MemoryID:
		id, kind = malformed.MemoryID, config.ResourceMemory
	}
	if id == "" || !registry.Exists(id) {
		return "", "", fmt.Errorf("unknown variant %q (run 'malformed list')", name)
	}
	return id, kind, nil
}
