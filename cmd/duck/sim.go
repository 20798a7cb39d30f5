package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dapper-duck/internal/games/duck"
	"github.com/vovakirdan/dapper-duck/internal/storage"
	"github.com/vovakirdan/dapper-duck/internal/telemetry"
)

var (
	flagSimRuns    int
	flagSimSeconds float64
	flagSimRecord  bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless games with an autopilot",
	Long: `Play games without a terminal using a simple autopilot, at a fixed
frame step of 1/--fps seconds. Useful for balancing a tuning file.

Runs that outlast --seconds are abandoned. With --log-level debug every
game event is logged.

Examples:
  duck sim
  duck sim --runs 50 --seed 42
  duck sim --config ./tuning.yaml --difficulty hard
  duck sim --record --db ./sim.db`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 5, "Number of runs")
	simCmd.Flags().Float64Var(&flagSimSeconds, "seconds", 300, "Abandon runs after this many simulated seconds")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Persist runs to the database")
}

type simResult struct {
	seed  int64
	ended duck.SessionEnded
}

func runSim(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger("duck-sim")

	fps := flagFPS
	if fps <= 0 {
		fps = 60
	}
	dt := 1.0 / float64(fps)
	step := time.Second / time.Duration(fps)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var rec *telemetry.Recorder
	if flagSimRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		// Runs produce events far faster than real play
		rec = telemetry.NewRecorder(store, telemetry.Options{Remote: "sim", Buffer: 1 << 16, Logger: logger})
		defer rec.Stop()
	}

	pilot := duck.DefaultPilot()
	results := make([]simResult, 0, flagSimRuns)

	for run := 0; run < flagSimRuns; run++ {
		runSeed := seed + int64(run)
		g, err := duck.New(cfg, duck.NewRand(runSeed))
		if err != nil {
			return err
		}
		if err := g.Start(); err != nil {
			return err
		}

		clock := time.Unix(0, 0)
		for g.Phase() == duck.PhasePlay {
			if g.Survival() >= flagSimSeconds {
				g.ToMenu()
				break
			}
			clock = clock.Add(step)
			if pilot.Decide(g.Snapshot()) {
				g.PressFlap(clock)
			}
			g.Update(dt)

			for _, e := range g.DrainEvents() {
				if ended, ok := e.(duck.SessionEnded); ok {
					results = append(results, simResult{seed: runSeed, ended: ended})
				}
				logger.Debug(telemetry.Name(e), "run", run+1, "t", fmt.Sprintf("%.2f", g.Survival()), "event", fmt.Sprintf("%+v", e))
				if rec != nil {
					rec.Track(e)
				}
			}
		}

		// ToMenu above queues the abandoned session
		for _, e := range g.DrainEvents() {
			if ended, ok := e.(duck.SessionEnded); ok {
				results = append(results, simResult{seed: runSeed, ended: ended})
			}
			if rec != nil {
				rec.Track(e)
			}
		}
	}

	printSimSummary(results)
	if rec != nil && rec.Dropped() > 0 {
		logger.Warn("telemetry events dropped", "count", rec.Dropped())
	}
	return nil
}

func printSimSummary(results []simResult) {
	fmt.Printf("  %-4s  %-20s  %-7s  %-8s  %-6s  %-6s  %-4s  %s\n",
		"Run", "Seed", "Score", "Time", "Snacks", "Dodged", "PUs", "Ended")
	var totalScore, best int
	var totalTime float64
	for i, r := range results {
		e := r.ended
		fmt.Printf("  %-4d  %-20d  %-7d  %-8s  %-6d  %-6d  %-4d  %s\n",
			i+1, r.seed, e.Score, fmt.Sprintf("%.1fs", e.Survival),
			e.Stats.Snacks, e.Stats.Dodged, e.Stats.Powerups, e.Reason)
		totalScore += e.Score
		totalTime += e.Survival
		best = max(best, e.Score)
	}
	if len(results) == 0 {
		return
	}
	n := float64(len(results))
	fmt.Println()
	fmt.Printf("Average score %.0f, average time %.1fs, best %d\n", float64(totalScore)/n, totalTime/n, best)
}
