package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/dapper-duck/internal/storage"
	"github.com/vovakirdan/dapper-duck/internal/telemetry"
)

var flagStatsEvents string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime stats and achievements",
	Long: `Display totals over every recorded run and the achievements unlocked so far.

With --events, print the recorded event log of one run instead.

Examples:
  duck stats
  duck stats --events 3f1c2b9e-...`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&flagStatsEvents, "events", "", "Session ID whose event log to print")
}

func runStats(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagStatsEvents != "" {
		return printEvents(store, flagStatsEvents)
	}

	st, err := store.Lifetime()
	if err != nil {
		return err
	}

	fmt.Println("Dapper Duck - Lifetime")
	fmt.Println()
	if st.GamesPlayed == 0 {
		fmt.Println("No runs recorded yet.")
	} else {
		fmt.Printf("  Runs          %d\n", st.GamesPlayed)
		fmt.Printf("  Best score    %d\n", st.BestScore)
		fmt.Printf("  Average       %.0f\n", st.AvgScore)
		fmt.Printf("  Snacks eaten  %d\n", st.TotalSnacks)
		fmt.Printf("  FUD dodged    %d\n", st.TotalDodged)
		fmt.Printf("  Power-ups     %d\n", st.TotalPowerups)
		fmt.Printf("  Airtime       %s\n", (time.Duration(st.PlayTime) * time.Second).String())
		fmt.Printf("  Longest run   %.1fs\n", st.LongestRun)
		fmt.Printf("  Last played   %s\n", st.LastPlayed.Format("2006-01-02 15:04"))
	}

	unlocked, err := store.Achievements()
	if err != nil {
		return err
	}
	when := make(map[string]time.Time, len(unlocked))
	for _, a := range unlocked {
		when[a.ID] = a.UnlockedAt
	}

	fmt.Println()
	fmt.Println("Achievements")
	fmt.Println()
	for _, def := range telemetry.Achievements {
		if at, ok := when[def.ID]; ok {
			fmt.Printf("  [x] %-16s %s (%s)\n", def.Name, def.Description, at.Format("2006-01-02"))
		} else {
			fmt.Printf("  [ ] %-16s %s\n", def.Name, def.Description)
		}
	}
	return nil
}

func printEvents(store *storage.Store, sessionID string) error {
	events, err := store.SessionEvents(sessionID)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Printf("No events recorded for session %s.\n", sessionID)
		return nil
	}

	start := events[0].At
	for _, e := range events {
		fields := map[string]any{}
		if len(e.Payload) > 0 {
			if err := msgpack.Unmarshal(e.Payload, &fields); err != nil {
				return fmt.Errorf("decoding %s event: %w", e.Name, err)
			}
		}
		fmt.Printf("  +%6.2fs  %-18s %s\n", e.At.Sub(start).Seconds(), e.Name, formatFields(fields))
	}
	return nil
}

func formatFields(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, fields[k])
	}
	return strings.Join(parts, " ")
}
