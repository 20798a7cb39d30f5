package duck

import (
	"math"

	"github.com/vovakirdan/dapper-duck/internal/config"
	"github.com/vovakirdan/dapper-duck/internal/core"
)

// HazardVariant distinguishes ordinary hazards from score-resetting ones.
type HazardVariant int

const (
	HazardStandard HazardVariant = iota
	HazardPenalty
)

// String returns the variant name used in logs and telemetry.
func (v HazardVariant) String() string {
	switch v {
	case HazardStandard:
		return "fud"
	case HazardPenalty:
		return "zero_score_fud"
	default:
		return "unknown"
	}
}

// Hazard is a single obstacle moving right to left.
type Hazard struct {
	core.Box
	VY      float64
	Variant HazardVariant
	Look    int // visual variant, chosen at spawn
}

// HazardSpawner owns the live hazards of one variant.
type HazardSpawner struct {
	variant HazardVariant
	cfg     config.HazardConfig
	penalty config.PenaltyConfig
	world   config.WorldConfig
	hazards []Hazard
	timer   float64
	dodged  int
}

// NewHazardSpawner creates an empty spawner for the given variant.
func NewHazardSpawner(variant HazardVariant, cfg config.DuckConfig) *HazardSpawner {
	return &HazardSpawner{
		variant: variant,
		cfg:     cfg.Hazards,
		penalty: cfg.Penalty,
		world:   cfg.World,
		hazards: make([]Hazard, 0, cfg.Hazards.MaxCountEnd+cfg.Insanity.CapBonus),
	}
}

// Reset clears all hazards and the spawn timer.
func (s *HazardSpawner) Reset() {
	s.hazards = s.hazards[:0]
	s.timer = 0
	s.dodged = 0
}

// Hazards returns the live hazards. The slice must not be modified.
func (s *HazardSpawner) Hazards() []Hazard {
	return s.hazards
}

// Dodged returns how many hazards left the screen this session.
func (s *HazardSpawner) Dodged() int {
	return s.dodged
}

// limits returns the spawn interval, live cap and speed for this frame.
func (s *HazardSpawner) limits(tn config.Tuning, mods Modifiers) (interval float64, maxCount int, speed float64) {
	interval, maxCount, speed = tn.HazardInterval, tn.HazardMaxCount, tn.HazardSpeed
	if mods.Active {
		interval *= mods.SpawnScale
		maxCount = min(mods.CapMax, maxCount+mods.CapBonus)
		speed *= mods.SpeedScale
	}
	if s.variant == HazardPenalty {
		interval *= s.penalty.IntervalScale
		maxCount = tn.PenaltyMaxCount
	}
	return interval, maxCount, speed
}

// Update spawns and moves hazards. slow scales both speed and dt for the
// hazards only (1 when slow motion is off). It returns how many hazards
// left the screen this frame.
func (s *HazardSpawner) Update(dt float64, tn config.Tuning, mods Modifiers, slow float64, rng Rand) int {
	interval, maxCount, speed := s.limits(tn, mods)

	s.timer -= dt
	if s.timer <= 0 && len(s.hazards) < maxCount {
		s.spawn(tn.Progress, rng)
		lo, hi := s.cfg.TimerJitterMin, s.cfg.TimerJitterMax
		if s.variant == HazardPenalty {
			lo, hi = s.penalty.TimerJitterMin, s.penalty.TimerJitterMax
		}
		s.timer = interval * uniform(rng, lo, hi)
	}

	effSpeed := speed * slow
	effDT := dt * slow
	top, bottom := s.world.TopDeadZone, s.world.Height-s.world.BottomDeadZone

	for i := range s.hazards {
		h := &s.hazards[i]
		h.X -= effSpeed * effDT
		h.Y += h.VY * effDT

		if s.variant == HazardPenalty {
			// Penalty hazards bounce off the dead zones
			if h.Y < top {
				h.Y = top
				h.VY = math.Abs(h.VY)
			} else if h.Bottom() > bottom {
				h.Y = bottom - h.H
				h.VY = -math.Abs(h.VY)
			}
			continue
		}

		if h.Y < top+s.cfg.EdgePadding {
			h.Y = top + s.cfg.EdgePadding
		}
		if h.Bottom() > bottom-s.cfg.EdgePadding {
			h.Y = bottom - s.cfg.EdgePadding - h.H
		}
	}

	// Remove off-screen hazards
	kept := s.hazards[:0]
	gone := 0
	for _, h := range s.hazards {
		if h.Right() <= 0 {
			gone++
			continue
		}
		kept = append(kept, h)
	}
	s.hazards = kept
	s.dodged += gone
	return gone
}

// spawn adds a hazard just past the right edge.
func (s *HazardSpawner) spawn(progress float64, rng Rand) {
	look := 0
	if s.cfg.Looks > 1 {
		look = rng.Intn(s.cfg.Looks)
	}

	drift := s.cfg.DriftLow
	if progress > s.cfg.DriftThreshold {
		drift = s.cfg.DriftHigh
	}
	vy := uniform(rng, -drift, drift)

	scale := 1.0
	if progress > s.cfg.SizeJitterThreshold {
		scale = uniform(rng, s.cfg.SizeJitterMin, s.cfg.SizeJitterMax)
	}

	margin := math.Max(s.world.TopDeadZone, s.world.BottomDeadZone) + s.cfg.SpawnMargin
	band := math.Max(0, s.world.Height-margin*2-s.cfg.Size)
	size := s.cfg.Size * scale

	s.hazards = append(s.hazards, Hazard{
		Box: core.Box{
			X: s.world.Width + s.world.SpawnOffset,
			Y: rng.Float64()*band + margin,
			W: size,
			H: size,
		},
		VY:      vy,
		Variant: s.variant,
		Look:    look,
	})
}

// Collide returns the first live hazard whose hitbox overlaps the target.
func (s *HazardSpawner) Collide(target core.Box, targetScale float64) (Hazard, bool) {
	for _, h := range s.hazards {
		if core.Overlaps(target, targetScale, h.Box, s.cfg.HitboxScale) {
			return h, true
		}
	}
	return Hazard{}, false
}
