// duck is a terminal side-scroller: keep the duck airborne, dodge the FUD,
// eat the snacks.
//
// Usage:
//
//	duck play     - Play in this terminal
//	duck scores   - Show the leaderboard
//	duck stats    - Show lifetime stats and achievements
//	duck serve    - Start SSH server for remote play
//	duck sim      - Run headless games with an autopilot
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.duck/scores.db)
//	--config <path>       - Tuning YAML overriding the built-in defaults
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dapper-duck/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "duck",
	Short: "Dapper Duck - a flappy side-scroller for your terminal",
	Long: `Dapper Duck keeps a duck airborne between two dead zones while FUD
drifts in from the right. Snacks score points, power-ups shield, slow time,
double points or pull snacks in.

Available commands:
  play     - Play in this terminal
  scores   - Show the leaderboard
  stats    - Lifetime stats and achievements
  serve    - Start SSH server for remote play
  sim      - Headless autopilot runs for balancing

Examples:
  duck play
  duck play --difficulty hard
  duck scores
  duck serve --ssh :2222
  duck sim --runs 20 --seed 42`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.duck/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

// loadConfig resolves the tuning file and applies --difficulty.
func loadConfig() (config.DuckConfig, error) {
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return config.DuckConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	cfg, err := config.LoadDuck(flagConfig)
	if err != nil {
		return config.DuckConfig{}, err
	}
	config.ApplyDuckPreset(&cfg, preset)
	return cfg, cfg.Validate()
}

// newLogger returns a stderr logger at the --log-level threshold.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}
