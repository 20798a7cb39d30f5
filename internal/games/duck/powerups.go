package duck

import (
	"fmt"
	"math"

	"github.com/vovakirdan/dapper-duck/internal/config"
	"github.com/vovakirdan/dapper-duck/internal/core"
)

// PowerupType identifies a timed effect.
type PowerupType int

const (
	PowerupShield PowerupType = iota
	PowerupDoubleScore
	PowerupSlowMotion
	PowerupMagnet
)

// String returns a human-readable name for the power-up.
func (t PowerupType) String() string {
	switch t {
	case PowerupShield:
		return "Shield"
	case PowerupDoubleScore:
		return "Double Score"
	case PowerupSlowMotion:
		return "Slow Motion"
	case PowerupMagnet:
		return "Snack Magnet"
	default:
		return "Unknown"
	}
}

// Key returns the name used in config files and telemetry.
func (t PowerupType) Key() string {
	switch t {
	case PowerupShield:
		return config.PowerupShield
	case PowerupDoubleScore:
		return config.PowerupDoubleScore
	case PowerupSlowMotion:
		return config.PowerupSlowMotion
	case PowerupMagnet:
		return config.PowerupMagnet
	default:
		return "unknown"
	}
}

// Glyph returns the character drawn for the pickup.
func (t PowerupType) Glyph() rune {
	switch t {
	case PowerupShield:
		return 'S'
	case PowerupDoubleScore:
		return '2'
	case PowerupSlowMotion:
		return '~'
	case PowerupMagnet:
		return 'M'
	default:
		return '?'
	}
}

// ParsePowerupType converts a config name to a PowerupType.
func ParsePowerupType(name string) (PowerupType, error) {
	switch name {
	case config.PowerupShield:
		return PowerupShield, nil
	case config.PowerupDoubleScore:
		return PowerupDoubleScore, nil
	case config.PowerupSlowMotion:
		return PowerupSlowMotion, nil
	case config.PowerupMagnet:
		return PowerupMagnet, nil
	default:
		return 0, fmt.Errorf("duck: unknown powerup type %q", name)
	}
}

// Powerup is the single live pickup.
type Powerup struct {
	core.Box
	Type PowerupType
	T    float64
}

// ActiveEffect is a running timed effect.
type ActiveEffect struct {
	Type      PowerupType
	Remaining float64
}

// Effects tracks running effects, at most one per type.
type Effects struct {
	active []ActiveEffect
}

// Activate starts an effect or refreshes it to the full duration.
// Returns true when an existing effect was refreshed.
func (e *Effects) Activate(t PowerupType, duration float64) bool {
	for i := range e.active {
		if e.active[i].Type == t {
			e.active[i].Remaining = duration
			return true
		}
	}
	e.active = append(e.active, ActiveEffect{Type: t, Remaining: duration})
	return false
}

// Has reports whether an effect is running.
func (e *Effects) Has(t PowerupType) bool {
	for _, a := range e.active {
		if a.Type == t {
			return true
		}
	}
	return false
}

// Remaining returns the seconds left on an effect, or 0.
func (e *Effects) Remaining(t PowerupType) float64 {
	for _, a := range e.active {
		if a.Type == t {
			return a.Remaining
		}
	}
	return 0
}

// Tick counts effects down and returns the ones that ran out.
func (e *Effects) Tick(dt float64) []PowerupType {
	var expired []PowerupType
	kept := e.active[:0]
	for _, a := range e.active {
		a.Remaining -= dt
		if a.Remaining <= 0 {
			expired = append(expired, a.Type)
			continue
		}
		kept = append(kept, a)
	}
	e.active = kept
	return expired
}

// Clear drops every effect.
func (e *Effects) Clear() {
	e.active = e.active[:0]
}

// List returns a copy of the running effects in activation order.
func (e *Effects) List() []ActiveEffect {
	out := make([]ActiveEffect, len(e.active))
	copy(out, e.active)
	return out
}

// PowerupSpawner rolls for and moves the single live pickup.
type PowerupSpawner struct {
	cfg   config.PowerupConfig
	world config.WorldConfig
	types []PowerupType
	live  *Powerup
	timer float64
}

// NewPowerupSpawner creates a spawner over the configured types.
func NewPowerupSpawner(cfg config.DuckConfig) (*PowerupSpawner, error) {
	types := make([]PowerupType, 0, len(cfg.Powerups.Types))
	for _, name := range cfg.Powerups.Types {
		t, err := ParsePowerupType(name)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return &PowerupSpawner{
		cfg:   cfg.Powerups,
		world: cfg.World,
		types: types,
	}, nil
}

// Reset clears the live pickup and the spawn timer.
func (s *PowerupSpawner) Reset() {
	s.live = nil
	s.timer = 0
}

// Live returns the live pickup, if any.
func (s *PowerupSpawner) Live() (Powerup, bool) {
	if s.live == nil {
		return Powerup{}, false
	}
	return *s.live, true
}

// Update rolls for a spawn while nothing is live, otherwise moves the pickup.
func (s *PowerupSpawner) Update(dt float64, rng Rand) {
	if s.live == nil {
		s.timer -= dt
		if s.timer <= 0 {
			s.trySpawn(rng)
			s.resetTimer(rng)
		}
		return
	}

	s.live.T += dt
	s.live.X -= s.cfg.Speed * dt
	if s.live.Right() <= 0 {
		s.live = nil
		s.resetTimer(rng)
	}
}

func (s *PowerupSpawner) trySpawn(rng Rand) {
	if len(s.types) == 0 {
		return
	}
	if rng.Float64() >= s.cfg.SpawnChance {
		return
	}
	t := s.types[rng.Intn(len(s.types))]

	margin := math.Max(s.world.TopDeadZone, s.world.BottomDeadZone) + s.cfg.SpawnMargin
	band := math.Max(0, s.world.Height-margin*2-s.cfg.Size)
	s.live = &Powerup{
		Box: core.Box{
			X: s.world.Width + s.world.SpawnOffset,
			Y: rng.Float64()*band + margin,
			W: s.cfg.Size,
			H: s.cfg.Size,
		},
		Type: t,
	}
}

func (s *PowerupSpawner) resetTimer(rng Rand) {
	s.timer = uniform(rng, s.cfg.RespawnMin, s.cfg.RespawnMax)
}

// Collect takes the live pickup if it touches the target.
func (s *PowerupSpawner) Collect(target core.Box, targetScale float64, rng Rand) (Powerup, bool) {
	if s.live == nil {
		return Powerup{}, false
	}
	if !core.Overlaps(target, targetScale, s.live.Box, s.cfg.HitboxScale) {
		return Powerup{}, false
	}
	p := *s.live
	s.live = nil
	s.resetTimer(rng)
	return p, true
}
