package duck

import "github.com/vovakirdan/dapper-duck/internal/config"

// SessionStats are the per-run counters reported at session end.
type SessionStats struct {
	Snacks   int
	Dodged   int
	Powerups int
}

// Popup is a short-lived "+N" label over a collected snack.
type Popup struct {
	X, Y    float64
	Text    string
	Age     float64
	Doubled bool
}

// popupLife is how long a popup stays on screen, in seconds.
const popupLife = 0.7

// SnackView is a snack with its display offset resolved.
type SnackView struct {
	Snack
	Bob float64
}

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	Phase    Phase
	Reason   EndReason
	Score    int
	Survival float64
	Progress float64
	Stats    SessionStats

	Flyer    Flyer
	Shielded bool
	Hazards  []Hazard
	Snacks   []SnackView
	Powerup  *Powerup
	Effects  []ActiveEffect
	Popups   []Popup

	Insanity          bool
	InsanityRemaining float64

	World config.WorldConfig
}

// Snapshot copies the current state. It does not alias internal slices.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:    g.phase,
		Reason:   g.reason,
		Score:    g.score.Value(),
		Survival: g.survival,
		Progress: g.curve.Progress(g.survival),
		Stats:    g.stats,
		Flyer:    g.flyer,
		Shielded: g.effects.Has(PowerupShield),
		Effects:  g.effects.List(),
		Popups:   append([]Popup(nil), g.popups...),
		Insanity: g.insanity.Active(),
		World:    g.cfg.World,
	}
	snap.InsanityRemaining = g.insanity.Remaining()

	snap.Hazards = make([]Hazard, 0, len(g.hazards.Hazards())+len(g.penalties.Hazards()))
	snap.Hazards = append(snap.Hazards, g.hazards.Hazards()...)
	snap.Hazards = append(snap.Hazards, g.penalties.Hazards()...)

	snacks := g.snacks.Snacks()
	snap.Snacks = make([]SnackView, len(snacks))
	for i, s := range snacks {
		snap.Snacks[i] = SnackView{Snack: s, Bob: s.BobOffset(g.cfg.Snacks)}
	}

	if p, ok := g.powerups.Live(); ok {
		snap.Powerup = &p
	}
	return snap
}
