package duck

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/dapper-duck/internal/core"
)

// autopilot flaps whenever the flyer sinks below the middle of the band.
func autopilot(g *Game, now time.Time) {
	if _, cy := g.flyer.Center(); cy > 330 {
		g.PressFlap(now)
	}
}

func countEvents[T Event](events []Event) int {
	n := 0
	for _, e := range events {
		if _, ok := e.(T); ok {
			n++
		}
	}
	return n
}

func findEvent[T Event](events []Event) (T, bool) {
	for _, e := range events {
		if v, ok := e.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func disableAll(g *Game) {
	g.SetReady(FamilyHazards, false)
	g.SetReady(FamilySnacks, false)
	g.SetReady(FamilyPowerups, false)
}

func TestNewStartsInMenu(t *testing.T) {
	g := newTestGame(t, constRand(0.5))

	if g.Phase() != PhaseMenu {
		t.Errorf("Phase() = %v, expected menu", g.Phase())
	}

	before := g.Snapshot()
	for i := 0; i < 30; i++ {
		g.Update(0.016)
	}
	after := g.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Error("Update in menu should not change state")
	}
	if len(g.DrainEvents()) != 0 {
		t.Error("Update in menu should not emit events")
	}
}

func TestStateTransitions(t *testing.T) {
	g := newTestGame(t, constRand(0.5))

	if err := g.Retry(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Retry from menu = %v, expected ErrInvalidTransition", err)
	}
	if err := g.Start(); err != nil {
		t.Fatalf("Start from menu error: %v", err)
	}
	if g.Phase() != PhasePlay {
		t.Fatalf("Phase() = %v, expected play", g.Phase())
	}
	if ev, ok := findEvent[SessionStarted](g.DrainEvents()); !ok || ev.Session != 1 {
		t.Errorf("expected SessionStarted{1}, got %+v (found=%v)", ev, ok)
	}
	if err := g.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Start from play = %v, expected ErrInvalidTransition", err)
	}

	// Fall out of the band
	disableAll(g)
	for i := 0; i < 300 && g.Phase() == PhasePlay; i++ {
		g.Update(0.016)
	}
	if g.Phase() != PhaseOver {
		t.Fatalf("Phase() = %v, expected over after falling", g.Phase())
	}
	if g.Reason() != EndFell {
		t.Errorf("Reason() = %v, expected %v", g.Reason(), EndFell)
	}

	for i := 0; i < 10; i++ {
		g.Update(0.016)
	}
	events := g.DrainEvents()
	if n := countEvents[SessionEnded](events); n != 1 {
		t.Errorf("SessionEnded emitted %d times, expected once", n)
	}

	if err := g.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Start from over = %v, expected ErrInvalidTransition", err)
	}
	if err := g.Retry(); err != nil {
		t.Fatalf("Retry from over error: %v", err)
	}
	if g.Survival() != 0 || g.Score() != 0 || g.Reason() != EndNone {
		t.Errorf("Retry did not reset: survival=%v score=%d reason=%v", g.Survival(), g.Score(), g.Reason())
	}
	if ev, ok := findEvent[SessionStarted](g.DrainEvents()); !ok || ev.Session != 2 {
		t.Errorf("expected SessionStarted{2}, got %+v", ev)
	}
}

func TestToMenuEndsRunningSession(t *testing.T) {
	g := startedGame(t, constRand(0.5))
	g.Update(0.016)

	g.ToMenu()

	if g.Phase() != PhaseMenu {
		t.Fatalf("Phase() = %v, expected menu", g.Phase())
	}
	ev, ok := findEvent[SessionEnded](g.DrainEvents())
	if !ok || ev.Reason != EndAbandoned {
		t.Errorf("expected SessionEnded with EndAbandoned, got %+v", ev)
	}
	if err := g.Start(); err != nil {
		t.Errorf("Start after ToMenu error: %v", err)
	}
}

func TestRetryResetsEverything(t *testing.T) {
	fresh := startedGame(t, constRand(0.5)).Snapshot()

	g := startedGame(t, constRand(0.5))
	for i := 0; i < 20; i++ {
		g.Update(0.016)
	}
	g.hazards.hazards = append(g.hazards.hazards, Hazard{Box: core.Box{X: 400, Y: 200, W: 56, H: 56}})
	g.penalties.hazards = append(g.penalties.hazards, Hazard{Box: core.Box{X: 450, Y: 400, W: 56, H: 56}})
	g.snacks.snacks = append(g.snacks.snacks, Snack{Box: core.Box{X: 300, Y: 250, W: 44, H: 44}, T: 1.3, Tier: 2, Points: 150})
	g.powerups.live = &Powerup{Box: core.Box{X: 350, Y: 300, W: 40, H: 40}, Type: PowerupSlowMotion}
	g.effects.Activate(PowerupMagnet, 10)
	g.effects.Activate(PowerupDoubleScore, 10)
	g.popups = append(g.popups, Popup{X: 100, Y: 100, Text: "+100"})
	g.insanity.active, g.insanity.duration, g.insanity.lastStart = true, 30, 0.2
	g.score.Add(500)
	g.stats = SessionStats{Snacks: 3, Dodged: 2, Powerups: 1}
	g.SetThrust(true)

	// Put a hazard on the flyer to end the run
	g.hazards.hazards = append(g.hazards.hazards, Hazard{Box: g.flyer.Box})
	g.Update(0.016)
	if g.Phase() != PhaseOver {
		t.Fatalf("Phase() = %v, expected over", g.Phase())
	}
	if err := g.Retry(); err != nil {
		t.Fatalf("Retry() error: %v", err)
	}
	got := g.Snapshot()

	checks := []struct {
		name      string
		got, want any
	}{
		{"hazards", got.Hazards, fresh.Hazards},
		{"snacks", got.Snacks, fresh.Snacks},
		{"powerup", got.Powerup, fresh.Powerup},
		{"effects", got.Effects, fresh.Effects},
		{"popups", got.Popups, fresh.Popups},
		{"flyer", got.Flyer, fresh.Flyer},
		{"progress", got.Progress, fresh.Progress},
		{"insanity", got.Insanity, fresh.Insanity},
		{"stats", got.Stats, fresh.Stats},
		{"score", got.Score, fresh.Score},
		{"survival", got.Survival, fresh.Survival},
	}
	for _, c := range checks {
		if !reflect.DeepEqual(c.got, c.want) {
			t.Errorf("%s after retry = %+v, expected %+v", c.name, c.got, c.want)
		}
	}
	if g.thrust {
		t.Error("retry should release thrust")
	}
	if !reflect.DeepEqual(got, fresh) {
		t.Errorf("snapshot after retry differs from a fresh start:\n got %+v\nwant %+v", got, fresh)
	}
}

func TestFlapCooldownRunsOutsidePlay(t *testing.T) {
	g := startedGame(t, constRand(0.5))
	disableAll(g)

	g.PressFlap(epoch)
	g.Update(0.016)
	if g.flyer.Cooldown() <= 0 {
		t.Fatal("flap should start the cooldown")
	}

	g.ToMenu()
	for i := 0; i < 10; i++ {
		g.Update(0.016)
	}
	if cd := g.flyer.Cooldown(); cd != 0 {
		t.Errorf("Cooldown() = %v in menu, expected it to run out", cd)
	}
}

func TestFlyTooHigh(t *testing.T) {
	g := startedGame(t, constRand(0.5))
	disableAll(g)

	now := epoch
	for i := 0; i < 300 && g.Phase() == PhasePlay; i++ {
		now = now.Add(16 * millis)
		g.PressFlap(now)
		g.Update(0.016)
	}
	if g.Reason() != EndTooHigh {
		t.Errorf("Reason() = %v, expected %v", g.Reason(), EndTooHigh)
	}
}

func TestUpdateClampsDT(t *testing.T) {
	g := startedGame(t, constRand(0.5))
	disableAll(g)

	g.Update(1.0)
	if math.Abs(g.Survival()-0.05) > 1e-12 {
		t.Errorf("Survival() = %v, expected dt clamped to 0.05", g.Survival())
	}

	g.Update(-1)
	g.Update(math.NaN())
	g.Update(0)
	if math.Abs(g.Survival()-0.05) > 1e-12 {
		t.Errorf("Survival() = %v, invalid dt should be ignored", g.Survival())
	}
}

func TestPressFlapDebounce(t *testing.T) {
	g := newTestGame(t, constRand(0.5))
	if g.PressFlap(epoch) {
		t.Error("flap in menu should be ignored")
	}

	if err := g.Start(); err != nil {
		t.Fatal(err)
	}
	disableAll(g)

	if !g.PressFlap(epoch) {
		t.Error("first flap should be accepted")
	}
	if g.PressFlap(epoch.Add(10 * millis)) {
		t.Error("flap inside debounce window should be dropped")
	}
	if !g.PressFlap(epoch.Add(60 * millis)) {
		t.Error("flap after debounce window should be accepted")
	}

	g.Update(0.016)
	if g.flyer.VY >= 0 {
		t.Errorf("VY = %v, expected the queued flap to apply", g.flyer.VY)
	}
}

func TestStandardHazardEndsSession(t *testing.T) {
	g := startedGame(t, constRand(0.5))
	g.score.Add(300)
	g.hazards.hazards = append(g.hazards.hazards, Hazard{Box: core.Box{X: 82, Y: 290, W: 56, H: 56}})

	g.Update(0.016)

	if g.Phase() != PhaseOver || g.Reason() != EndHazard {
		t.Fatalf("phase=%v reason=%v, expected over by hazard", g.Phase(), g.Reason())
	}
	if g.Score() != 300 {
		t.Errorf("Score() = %d, standard hits keep the score", g.Score())
	}
	ev, ok := findEvent[SessionEnded](g.DrainEvents())
	if !ok || ev.Score != 300 || ev.Reason != EndHazard {
		t.Errorf("SessionEnded = %+v, expected score 300 by hazard", ev)
	}
}

func TestPenaltyHazardResetsScore(t *testing.T) {
	g := startedGame(t, constRand(0.5))
	g.score.Add(300)
	g.penalties.hazards = append(g.penalties.hazards,
		Hazard{Box: core.Box{X: 82, Y: 290, W: 56, H: 56}, Variant: HazardPenalty})

	g.Update(0.016)

	if g.Reason() != EndPenalty {
		t.Fatalf("Reason() = %v, expected %v", g.Reason(), EndPenalty)
	}
	if g.Score() != 0 {
		t.Errorf("Score() = %d, expected 0 after penalty", g.Score())
	}

	events := g.DrainEvents()
	reset, ok := findEvent[ScoreReset](events)
	if !ok || reset.Previous != 300 {
		t.Errorf("ScoreReset = %+v, expected previous 300", reset)
	}
	ended, _ := findEvent[SessionEnded](events)
	if ended.Score != 0 {
		t.Errorf("SessionEnded.Score = %d, expected 0", ended.Score)
	}
}

func TestStandardHazardCheckedFirst(t *testing.T) {
	g := startedGame(t, constRand(0.5))
	g.score.Add(300)
	box := core.Box{X: 82, Y: 290, W: 56, H: 56}
	g.hazards.hazards = append(g.hazards.hazards, Hazard{Box: box})
	g.penalties.hazards = append(g.penalties.hazards, Hazard{Box: box, Variant: HazardPenalty})

	g.Update(0.016)

	if g.Reason() != EndHazard || g.Score() != 300 {
		t.Errorf("reason=%v score=%d, expected standard hit with score kept", g.Reason(), g.Score())
	}
}

func TestShieldIgnoresHazards(t *testing.T) {
	g := startedGame(t, constRand(0.5))
	g.effects.Activate(PowerupShield, 10)
	g.hazards.hazards = append(g.hazards.hazards, Hazard{Box: core.Box{X: 82, Y: 290, W: 56, H: 56}})

	g.Update(0.016)

	if g.Phase() != PhasePlay {
		t.Errorf("Phase() = %v, shield should ignore the hit", g.Phase())
	}
}

func TestDoubleScoreSnack(t *testing.T) {
	g := startedGame(t, constRand(0.5))
	g.effects.Activate(PowerupDoubleScore, 10)
	g.snacks.snacks = append(g.snacks.snacks, Snack{Box: core.Box{X: 85, Y: 295, W: 44, H: 44}, Tier: 1, Points: 100})

	g.Update(0.016)

	if g.Score() != 200 {
		t.Errorf("Score() = %d, expected 200 with double score", g.Score())
	}
	ev, ok := findEvent[RewardCollected](g.DrainEvents())
	if !ok || ev.Points != 200 || ev.Total != 200 || !ev.Doubled || ev.Tier != 1 {
		t.Errorf("RewardCollected = %+v", ev)
	}
	snap := g.Snapshot()
	if len(snap.Popups) != 1 || snap.Popups[0].Text != "+200" {
		t.Errorf("Popups = %+v, expected one +200", snap.Popups)
	}
	if snap.Stats.Snacks != 1 {
		t.Errorf("Stats.Snacks = %d, expected 1", snap.Stats.Snacks)
	}
}

func TestOneSnackPerFrame(t *testing.T) {
	g := startedGame(t, constRand(0.5))
	g.snacks.snacks = append(g.snacks.snacks,
		Snack{Box: core.Box{X: 85, Y: 295, W: 44, H: 44}, Points: 50},
		Snack{Box: core.Box{X: 88, Y: 296, W: 44, H: 44}, Points: 50},
	)

	g.Update(0.016)

	if g.Score() != 50 {
		t.Errorf("Score() = %d, expected a single snack credited", g.Score())
	}
}

func TestPowerupCollection(t *testing.T) {
	g := startedGame(t, constRand(0.5))
	g.powerups.live = &Powerup{Box: core.Box{X: 90, Y: 300, W: 40, H: 40}, Type: PowerupMagnet}

	g.Update(0.016)

	if !g.effects.Has(PowerupMagnet) {
		t.Fatal("expected magnet effect active")
	}
	ev, ok := findEvent[PowerupCollected](g.DrainEvents())
	if !ok || ev.Type != PowerupMagnet || ev.Duration != 10 || ev.Refreshed {
		t.Errorf("PowerupCollected = %+v", ev)
	}
	if g.Snapshot().Stats.Powerups != 1 {
		t.Error("expected power-up counted")
	}
}

func TestEffectExpiryEvent(t *testing.T) {
	g := startedGame(t, constRand(0.5))
	disableAll(g)
	g.effects.Activate(PowerupSlowMotion, 0.03)

	g.Update(0.016)
	if n := countEvents[PowerupExpired](g.DrainEvents()); n != 0 {
		t.Fatalf("effect expired early")
	}
	g.Update(0.016)
	ev, ok := findEvent[PowerupExpired](g.DrainEvents())
	if !ok || ev.Type != PowerupSlowMotion {
		t.Errorf("PowerupExpired = %+v, found=%v", ev, ok)
	}
}

func TestDodgedHazardEvent(t *testing.T) {
	g := startedGame(t, constRand(0.5))
	g.hazards.hazards = append(g.hazards.hazards, Hazard{Box: core.Box{X: -50, Y: 300, W: 56, H: 56}})

	g.Update(0.05)

	ev, ok := findEvent[HazardDodged](g.DrainEvents())
	if !ok || ev.Variant != HazardStandard || ev.Total != 1 {
		t.Errorf("HazardDodged = %+v, found=%v", ev, ok)
	}
	if g.Snapshot().Stats.Dodged != 1 {
		t.Error("expected dodge counted in stats")
	}
}

func TestReadinessGate(t *testing.T) {
	g := startedGame(t, NewRand(5))
	disableAll(g)

	for i := 0; i < 30; i++ {
		g.Update(0.016)
	}
	snap := g.Snapshot()
	if len(snap.Hazards) != 0 || len(snap.Snacks) != 0 || snap.Powerup != nil {
		t.Fatalf("expected nothing spawned while not ready, got %d hazards %d snacks", len(snap.Hazards), len(snap.Snacks))
	}
	if snap.Survival == 0 {
		t.Error("simulation time should still advance")
	}

	g.SetReady(FamilyHazards, true)
	g.SetReady(FamilySnacks, true)
	g.Update(0.016)
	snap = g.Snapshot()
	if len(snap.Hazards) == 0 || len(snap.Snacks) == 0 {
		t.Errorf("expected spawns once ready, got %d hazards %d snacks", len(snap.Hazards), len(snap.Snacks))
	}
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	g := startedGame(t, constRand(0.5))
	g.Update(0.016)

	snap := g.Snapshot()
	if len(snap.Hazards) == 0 {
		t.Fatal("expected a hazard to inspect")
	}
	snap.Hazards[0].X = -999
	if g.hazards.Hazards()[0].X == -999 {
		t.Error("snapshot aliases live hazards")
	}
}

func TestDeterministicWithSameSeed(t *testing.T) {
	a := startedGame(t, NewRand(42))
	b := startedGame(t, NewRand(42))

	now := epoch
	for i := 0; i < 1500; i++ {
		now = now.Add(16 * millis)
		autopilot(a, now)
		autopilot(b, now)
		a.Update(0.016)
		b.Update(0.016)

		if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
			t.Fatalf("frame %d: snapshots diverged", i)
		}
		if !reflect.DeepEqual(a.DrainEvents(), b.DrainEvents()) {
			t.Fatalf("frame %d: events diverged", i)
		}
	}
}

func TestLongRunInvariants(t *testing.T) {
	for seed := int64(1); seed <= 4; seed++ {
		g := startedGame(t, NewRand(seed))
		now := epoch
		started, ended := 1, 0

		for i := 0; i < 20000; i++ {
			now = now.Add(16 * millis)
			if g.Phase() == PhaseOver {
				if err := g.Retry(); err != nil {
					t.Fatal(err)
				}
			}
			autopilot(g, now)
			g.Update(0.016)

			for _, e := range g.DrainEvents() {
				switch e.(type) {
				case SessionStarted:
					started++
				case SessionEnded:
					ended++
				}
			}

			if g.Score() < 0 {
				t.Fatalf("seed %d frame %d: negative score", seed, i)
			}
			if n := len(g.hazards.Hazards()); n > 5 {
				t.Fatalf("seed %d frame %d: %d standard hazards", seed, i, n)
			}
			if n := len(g.penalties.Hazards()); n > 2 {
				t.Fatalf("seed %d frame %d: %d penalty hazards", seed, i, n)
			}
			if n := len(g.snacks.Snacks()); n > 6 {
				t.Fatalf("seed %d frame %d: %d snacks", seed, i, n)
			}
			if !core.Finite(g.flyer.X, g.flyer.Y, g.flyer.VY, g.flyer.Rot) {
				t.Fatalf("seed %d frame %d: flyer not finite", seed, i)
			}
			if g.Phase() == PhasePlay {
				top, bottom := g.cfg.World.TopDeadZone, g.cfg.World.Height-g.cfg.World.BottomDeadZone
				if g.flyer.Y < top || g.flyer.Bottom() > bottom {
					t.Fatalf("seed %d frame %d: flyer outside band while playing", seed, i)
				}
			}
		}

		open := 0
		if g.Phase() == PhasePlay {
			open = 1
		}
		if started != ended+open {
			t.Errorf("seed %d: %d starts, %d ends", seed, started, ended)
		}
	}
}
