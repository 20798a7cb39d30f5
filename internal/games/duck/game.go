// Package duck implements the Dapper Duck simulation: a flyer dodging a
// stream of hazards while collecting snacks and timed power-ups.
//
// The package is pure and single-threaded. The host calls Update once per
// frame, feeds input through PressFlap and SetThrust, and drains events.
package duck

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/dapper-duck/internal/config"
)

// Phase is the top-level game state.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlay
	PhaseOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlay:
		return "play"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Family groups entities whose visual assets load together.
type Family int

const (
	FamilyHazards Family = iota
	FamilySnacks
	FamilyPowerups
	familyCount
)

// ErrInvalidTransition is returned by Start and Retry from the wrong phase.
var ErrInvalidTransition = errors.New("duck: invalid state transition")

// Game owns one simulation context.
type Game struct {
	cfg   config.DuckConfig
	curve *config.Curve
	rng   Rand

	phase    Phase
	reason   EndReason
	session  int
	survival float64

	flyer     Flyer
	hazards   *HazardSpawner
	penalties *HazardSpawner
	snacks    *SnackSpawner
	powerups  *PowerupSpawner
	effects   Effects
	insanity  *Insanity
	score     ScoreLedger
	stats     SessionStats
	popups    []Popup

	debounce    *Debouncer
	pendingFlap bool
	thrust      bool
	ready       [familyCount]bool

	events []Event
}

// New validates the tuning and creates a game in the menu.
func New(cfg config.DuckConfig, rng Rand) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRand(time.Now().UnixNano())
	}
	powerups, err := NewPowerupSpawner(cfg)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:       cfg,
		curve:     config.NewCurve(cfg),
		rng:       rng,
		phase:     PhaseMenu,
		flyer:     NewFlyer(cfg.Flyer, cfg.World),
		hazards:   NewHazardSpawner(HazardStandard, cfg),
		penalties: NewHazardSpawner(HazardPenalty, cfg),
		snacks:    NewSnackSpawner(cfg),
		powerups:  powerups,
		insanity:  NewInsanity(cfg.Insanity),
		debounce:  NewDebouncer(time.Duration(cfg.Input.DebounceMS) * time.Millisecond),
	}
	for i := range g.ready {
		g.ready[i] = true
	}
	return g, nil
}

// Config returns the tuning the game was built with.
func (g *Game) Config() config.DuckConfig {
	return g.cfg
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Score returns the current session score.
func (g *Game) Score() int {
	return g.score.Value()
}

// Reason returns why the last session ended, or EndNone.
func (g *Game) Reason() EndReason {
	return g.reason
}

// Survival returns seconds alive in the current or last session.
func (g *Game) Survival() float64 {
	return g.survival
}

// Start begins the first session from the menu.
func (g *Game) Start() error {
	if g.phase != PhaseMenu {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, g.phase)
	}
	g.reset()
	return nil
}

// Retry begins a new session after game over.
func (g *Game) Retry() error {
	if g.phase != PhaseOver {
		return fmt.Errorf("%w: retry from %s", ErrInvalidTransition, g.phase)
	}
	g.reset()
	return nil
}

// ToMenu abandons the current state and returns to the menu.
// A running session is ended first so its result is still reported.
func (g *Game) ToMenu() {
	if g.phase == PhasePlay {
		g.end(EndAbandoned)
	}
	g.phase = PhaseMenu
}

// PressFlap records a flap request. Presses inside the debounce window and
// presses outside PLAY are dropped. The flap is applied on the next Update.
func (g *Game) PressFlap(at time.Time) bool {
	if g.phase != PhasePlay {
		return false
	}
	if !g.debounce.Allow(at) {
		return false
	}
	g.pendingFlap = true
	return true
}

// SetThrust sets whether the glide thrust is held.
func (g *Game) SetThrust(held bool) {
	g.thrust = held
}

// SetReady gates spawning, motion and collision of one entity family.
func (g *Game) SetReady(f Family, ready bool) {
	if f < 0 || f >= familyCount {
		return
	}
	g.ready[f] = ready
}

// DrainEvents returns and clears the queued events.
func (g *Game) DrainEvents() []Event {
	out := g.events
	g.events = nil
	return out
}

func (g *Game) emit(e Event) {
	g.events = append(g.events, e)
}

func (g *Game) reset() {
	g.flyer.Reset(g.cfg.World)
	g.hazards.Reset()
	g.penalties.Reset()
	g.snacks.Reset()
	g.powerups.Reset()
	g.effects.Clear()
	g.insanity.Reset()
	g.score.ResetToZero()
	g.stats = SessionStats{}
	g.popups = g.popups[:0]
	g.survival = 0
	g.reason = EndNone
	g.pendingFlap = false
	g.thrust = false

	g.session++
	g.phase = PhasePlay
	g.emit(SessionStarted{Session: g.session})
}

func (g *Game) end(reason EndReason) {
	if g.phase != PhasePlay {
		return
	}
	g.phase = PhaseOver
	g.reason = reason
	g.pendingFlap = false
	g.emit(SessionEnded{
		Session:  g.session,
		Reason:   reason,
		Score:    g.score.Value(),
		Survival: g.survival,
		Stats:    g.stats,
	})
}

// Update advances the simulation by dt seconds. dt is clamped to the
// configured maximum; non-positive or NaN dt is ignored. Outside PLAY it
// does nothing.
func (g *Game) Update(dt float64) {
	if math.IsNaN(dt) || dt <= 0 {
		return
	}
	dt = math.Min(dt, g.cfg.World.MaxFrameDT)
	g.flyer.TickCooldown(dt)
	if g.phase != PhasePlay {
		g.pendingFlap = false
		return
	}

	g.survival += dt
	tn := g.curve.At(g.survival)

	started, ended := g.insanity.Update(dt, g.survival, tn.Progress, g.rng)
	if started {
		g.emit(InsanityStarted{Duration: g.insanity.Duration()})
	}
	if ended {
		g.emit(InsanityEnded{})
	}

	if g.pendingFlap {
		g.flyer.TryFlap()
		g.pendingFlap = false
	}
	g.flyer.Integrate(dt, g.thrust)
	if reason := g.flyer.Bounds(g.cfg.World); reason != EndNone {
		g.end(reason)
		return
	}

	for _, t := range g.effects.Tick(dt) {
		g.emit(PowerupExpired{Type: t})
	}

	mods := g.insanity.Modifiers()

	if g.ready[FamilyHazards] {
		slow := 1.0
		if g.effects.Has(PowerupSlowMotion) {
			slow = g.cfg.Powerups.SlowMotionFactor
		}
		g.recordDodges(HazardStandard, g.hazards.Update(dt, tn, mods, slow, g.rng))
		g.recordDodges(HazardPenalty, g.penalties.Update(dt, tn, mods, slow, g.rng))

		if g.checkHazards() {
			return
		}
	}

	if g.ready[FamilySnacks] {
		g.snacks.Update(dt, tn, mods, g.magnet(), g.rng)
		g.collectSnack()
	}

	if g.ready[FamilyPowerups] {
		g.powerups.Update(dt, g.rng)
		g.collectPowerup()
	}

	g.agePopups(dt)
}

func (g *Game) recordDodges(v HazardVariant, n int) {
	for i := 0; i < n; i++ {
		g.stats.Dodged++
		g.emit(HazardDodged{Variant: v, Total: g.stats.Dodged})
	}
}

// checkHazards ends the session on the first hit. Standard hazards are
// checked before penalty hazards.
func (g *Game) checkHazards() bool {
	if g.effects.Has(PowerupShield) {
		return false
	}
	scale := g.cfg.Flyer.HitboxScale

	if _, hit := g.hazards.Collide(g.flyer.Box, scale); hit {
		g.end(EndHazard)
		return true
	}
	if _, hit := g.penalties.Collide(g.flyer.Box, scale); hit {
		prev := g.score.Value()
		g.score.ResetToZero()
		g.emit(ScoreReset{Previous: prev})
		g.end(EndPenalty)
		return true
	}
	return false
}

func (g *Game) magnet() *Pull {
	if !g.effects.Has(PowerupMagnet) {
		return nil
	}
	cx, cy := g.flyer.Center()
	return &Pull{
		X:        cx,
		Y:        cy,
		Radius:   g.cfg.Powerups.MagnetRadius,
		Strength: g.cfg.Powerups.MagnetStrength,
	}
}

func (g *Game) collectSnack() {
	sn, ok := g.snacks.CollectOne(g.flyer.Box, g.cfg.Flyer.HitboxScale)
	if !ok {
		return
	}

	points := sn.Points
	doubled := g.effects.Has(PowerupDoubleScore)
	if doubled {
		points *= g.cfg.Powerups.ScoreMultiplier
	}
	g.score.Add(points)
	g.stats.Snacks++

	g.popups = append(g.popups, Popup{
		X:       sn.X + sn.W*0.2,
		Y:       sn.Y,
		Text:    fmt.Sprintf("+%d", points),
		Doubled: doubled,
	})
	g.emit(RewardCollected{
		Tier:    sn.Tier,
		Points:  points,
		Total:   g.score.Value(),
		Doubled: doubled,
	})
}

func (g *Game) collectPowerup() {
	p, ok := g.powerups.Collect(g.flyer.Box, g.cfg.Flyer.HitboxScale, g.rng)
	if !ok {
		return
	}
	duration := g.cfg.Powerups.Duration
	refreshed := g.effects.Activate(p.Type, duration)
	g.stats.Powerups++
	g.emit(PowerupCollected{Type: p.Type, Duration: duration, Refreshed: refreshed})
}

func (g *Game) agePopups(dt float64) {
	kept := g.popups[:0]
	for _, p := range g.popups {
		p.Age += dt
		if p.Age < popupLife {
			kept = append(kept, p)
		}
	}
	g.popups = kept
}
