package duck

import (
	"math"

	"github.com/vovakirdan/dapper-duck/internal/config"
	"github.com/vovakirdan/dapper-duck/internal/core"
)

// magnetEpsilon is the distance below which the magnet stops pulling.
const magnetEpsilon = 1e-6

// Snack is a collectible reward.
type Snack struct {
	core.Box
	T      float64 // seconds since spawn, drives the bob
	Tier   int
	Points int
}

// BobOffset returns the vertical display offset. It never affects collision.
func (s Snack) BobOffset(cfg config.SnackConfig) float64 {
	return math.Sin(s.T*math.Pi*2*cfg.BobFrequency) * cfg.BobAmplitude
}

// Pull describes the magnet effect for one frame.
type Pull struct {
	X, Y     float64 // point snacks are pulled toward
	Radius   float64
	Strength float64
}

// PickTier rolls a weighted index from the table.
// It falls back to the first tier if rounding leaves the roll unassigned.
func PickTier(r Rand, tiers []config.SnackTier) int {
	total := 0.0
	for _, t := range tiers {
		total += t.Weight
	}

	roll := r.Float64() * total
	for i, t := range tiers {
		if roll < t.Weight {
			return i
		}
		roll -= t.Weight
	}
	return 0
}

// SnackSpawner owns the live snacks.
type SnackSpawner struct {
	cfg    config.SnackConfig
	world  config.WorldConfig
	snacks []Snack
	timer  float64
}

// NewSnackSpawner creates an empty spawner.
func NewSnackSpawner(cfg config.DuckConfig) *SnackSpawner {
	return &SnackSpawner{
		cfg:    cfg.Snacks,
		world:  cfg.World,
		snacks: make([]Snack, 0, cfg.Insanity.SnackCapMax),
	}
}

// Reset clears all snacks and the respawn timer.
func (s *SnackSpawner) Reset() {
	s.snacks = s.snacks[:0]
	s.timer = 0
}

// Snacks returns the live snacks. The slice must not be modified.
func (s *SnackSpawner) Snacks() []Snack {
	return s.snacks
}

// Update spawns, moves and culls snacks. pull is nil when the magnet is off.
func (s *SnackSpawner) Update(dt float64, tn config.Tuning, mods Modifiers, pull *Pull, rng Rand) {
	s.timer -= dt
	if s.timer <= 0 {
		maxCount := tn.SnackMaxCount
		if mods.Active {
			maxCount = min(mods.SnackCapMax, maxCount+mods.SnackCapBonus)
		}
		// At the cap the timer stays expired and is retried next frame
		if len(s.snacks) < maxCount {
			s.spawn(rng)
			respawn := uniform(rng, s.cfg.RespawnMin, s.cfg.RespawnMax) * tn.SnackRespawnScale
			if mods.Active {
				respawn *= mods.SnackRespawnScale
			}
			s.timer = respawn
		}
	}

	for i := range s.snacks {
		sn := &s.snacks[i]
		sn.T += dt
		sn.X -= tn.SnackSpeed * dt

		if pull != nil {
			cx, cy := sn.Center()
			dx, dy := pull.X-cx, pull.Y-cy
			dist := math.Hypot(dx, dy)
			if dist < pull.Radius && dist > magnetEpsilon {
				strength := (pull.Radius - dist) / pull.Radius * pull.Strength
				sn.X += dx / dist * strength * dt
				sn.Y += dy / dist * strength * dt
			}
		}
	}

	kept := s.snacks[:0]
	for _, sn := range s.snacks {
		if sn.Right() > 0 {
			kept = append(kept, sn)
		}
	}
	s.snacks = kept
}

func (s *SnackSpawner) spawn(rng Rand) {
	margin := math.Max(s.world.TopDeadZone, s.world.BottomDeadZone) + s.cfg.SpawnMargin
	band := math.Max(0, s.world.Height-margin*2-s.cfg.Size)
	y := rng.Float64()*band + margin
	tier := PickTier(rng, s.cfg.Tiers)

	s.snacks = append(s.snacks, Snack{
		Box: core.Box{
			X: s.world.Width + s.world.SpawnOffset,
			Y: y,
			W: s.cfg.Size,
			H: s.cfg.Size,
		},
		Tier:   tier,
		Points: s.cfg.Tiers[tier].Points,
	})
}

// CollectOne removes and returns at most one snack touching the target.
func (s *SnackSpawner) CollectOne(target core.Box, targetScale float64) (Snack, bool) {
	for i := len(s.snacks) - 1; i >= 0; i-- {
		sn := s.snacks[i]
		if core.Overlaps(target, targetScale, sn.Box, s.cfg.HitboxScale) {
			s.snacks = append(s.snacks[:i], s.snacks[i+1:]...)
			return sn, true
		}
	}
	return Snack{}, false
}
