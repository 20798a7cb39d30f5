package duck

import (
	"math"

	"github.com/vovakirdan/dapper-duck/internal/config"
	"github.com/vovakirdan/dapper-duck/internal/core"
)

// EndReason says why a session ended.
type EndReason int

const (
	EndNone EndReason = iota
	EndTooHigh
	EndFell
	EndHazard
	EndPenalty
	EndAbandoned
)

// String returns the message shown on the game over screen.
func (r EndReason) String() string {
	switch r {
	case EndTooHigh:
		return "You flew too high!"
	case EndFell:
		return "You fell!"
	case EndHazard:
		return "Hit by FUD!"
	case EndPenalty:
		return "Hit by Zero-Score FUD! Score reset to 0!"
	case EndAbandoned:
		return "Run abandoned"
	default:
		return ""
	}
}

// Flyer is the player-controlled body.
type Flyer struct {
	core.Box
	VY  float64
	Rot float64

	flapTimer float64
	cfg       config.FlyerConfig
}

// NewFlyer creates a flyer at its start position.
func NewFlyer(cfg config.FlyerConfig, world config.WorldConfig) Flyer {
	f := Flyer{cfg: cfg}
	f.Reset(world)
	return f
}

// Reset puts the flyer back at the start position at rest.
func (f *Flyer) Reset(world config.WorldConfig) {
	size := math.Round(f.cfg.Size)
	f.Box = core.Box{X: f.cfg.StartX, Y: world.Height * f.cfg.StartYRatio, W: size, H: size}
	f.VY = 0
	f.Rot = 0
	f.flapTimer = 0
}

// Cooldown returns the seconds left before another flap is accepted.
func (f *Flyer) Cooldown() float64 {
	return f.flapTimer
}

// TryFlap applies the flap impulse unless the cooldown is running.
func (f *Flyer) TryFlap() bool {
	if f.flapTimer > 0 {
		return false
	}
	f.VY = math.Max(f.VY+f.cfg.FlapImpulse, f.cfg.MaxUpSpeed)
	f.flapTimer = f.cfg.FlapCooldown
	return true
}

// Integrate advances the flyer by dt seconds.
func (f *Flyer) Integrate(dt float64, thrust bool) {
	f.VY += f.cfg.Gravity * dt
	if thrust {
		f.VY += f.cfg.GlideThrust * dt
	}
	f.VY *= math.Pow(f.cfg.Drag, dt)
	f.VY = core.ClampF(f.VY, f.cfg.MaxUpSpeed, f.cfg.MaxFallSpeed)

	f.Y += f.VY * dt

	// Tilt eases toward a target derived from vertical speed
	target := core.ClampF(core.MapRange(f.VY, -600, 900, -0.55, 0.95), -0.8, 1.0)
	ease := 1 - math.Exp(-dt*f.cfg.RotEase)
	f.Rot += (target - f.Rot) * ease
}

// TickCooldown counts the flap cooldown down. It runs every frame in any
// phase, independent of Integrate.
func (f *Flyer) TickCooldown(dt float64) {
	f.flapTimer = math.Max(0, f.flapTimer-dt)
}

// Bounds reports whether the flyer has left the playable band.
func (f *Flyer) Bounds(world config.WorldConfig) EndReason {
	if f.Y < world.TopDeadZone {
		return EndTooHigh
	}
	if f.Bottom() > world.Height-world.BottomDeadZone {
		return EndFell
	}
	return EndNone
}
