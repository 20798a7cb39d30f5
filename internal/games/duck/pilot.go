package duck

import "github.com/vovakirdan/dapper-duck/internal/core"

// Pilot is a simple controller for headless runs. It holds the flyer near
// the middle of the band and climbs over or dives under the closest hazard
// ahead.
type Pilot struct {
	// Lookahead is how far past the flyer hazards are considered.
	Lookahead float64
}

// DefaultPilot returns a pilot tuned for the default world.
func DefaultPilot() Pilot {
	return Pilot{Lookahead: 160}
}

// Decide reports whether to press flap this frame.
func (p Pilot) Decide(snap Snapshot) bool {
	if snap.Phase != PhasePlay {
		return false
	}

	f := snap.Flyer
	_, cy := f.Center()
	top := snap.World.TopDeadZone + f.H
	bottom := snap.World.Height - snap.World.BottomDeadZone - f.H
	target := (top + bottom) / 2

	if h, ok := p.threat(snap); ok && !snap.Shielded {
		_, hy := h.Center()
		clearance := (h.H + f.H) * 0.75
		above, below := hy-clearance, hy+clearance
		// Take whichever side is reachable and closer
		if (cy < hy && above > top) || below > bottom {
			target = above
		} else {
			target = below
		}
		target = core.ClampF(target, top, bottom)
	}

	return cy > target && f.VY > -150
}

func (p Pilot) threat(snap Snapshot) (Hazard, bool) {
	f := snap.Flyer
	var best Hazard
	found := false
	for _, h := range snap.Hazards {
		if h.Right() < f.X || h.X > f.Right()+p.Lookahead {
			continue
		}
		if !found || h.X < best.X {
			best, found = h, true
		}
	}
	return best, found
}
