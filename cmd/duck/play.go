package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dapper-duck/internal/core"
	"github.com/vovakirdan/dapper-duck/internal/platform/tui"
	"github.com/vovakirdan/dapper-duck/internal/storage"
	"github.com/vovakirdan/dapper-duck/internal/telemetry"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Dapper Duck",
	Long: `Start the game in this terminal.

Controls:
  Space/W/Up  - Flap
  K           - Glide (hold)
  Enter       - Start / retry
  Esc         - Back to menu
  Tab         - Leaderboard (from the menu)
  Ctrl+S      - Save a text screenshot
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Slower ramp, no insanity spikes
  normal - Default ramp from zero
  hard   - Start at 35% difficulty with a faster ramp
  fixed  - No progression, stays at the config's initial level

Examples:
  duck play
  duck play --difficulty hard
  duck play --config ./my-duck.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	duckCfg, err := loadConfig()
	if err != nil {
		return err
	}

	runtime := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}
	runtime.TickRate = flagFPS
	runtime.Seed = flagSeed

	opts := tui.Options{Duck: duckCfg, Runtime: runtime}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage - game still works
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()

		logger, closeLog := playLogger()
		defer closeLog()

		rec := telemetry.NewRecorder(store, telemetry.Options{Logger: logger})
		// Stop must run before the store closes
		defer rec.Stop()

		opts.Store = store
		opts.Recorder = rec
	}

	return tui.Run(opts)
}

// playLogger writes to ~/.duck/duck.log so log lines never land on the
// alternate screen.
func playLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".duck")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "duck.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "duck"})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger, func() { f.Close() }
}
