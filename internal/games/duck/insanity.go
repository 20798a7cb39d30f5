package duck

import "github.com/vovakirdan/dapper-duck/internal/config"

// Modifiers are the spawn adjustments in force for one frame.
// The zero value changes nothing.
type Modifiers struct {
	Active            bool
	SpawnScale        float64
	CapBonus          int
	CapMax            int
	SpeedScale        float64
	SnackCapBonus     int
	SnackCapMax       int
	SnackRespawnScale float64
}

// Insanity drives the rare, short spikes in hazard pressure.
type Insanity struct {
	cfg       config.InsanityConfig
	active    bool
	elapsed   float64
	duration  float64
	lastStart float64
}

// NewInsanity creates an idle controller.
func NewInsanity(cfg config.InsanityConfig) *Insanity {
	return &Insanity{cfg: cfg}
}

// Reset returns the controller to idle with no recorded episodes.
func (in *Insanity) Reset() {
	in.active = false
	in.elapsed = 0
	in.duration = 0
	in.lastStart = 0
}

// Active reports whether an episode is running.
func (in *Insanity) Active() bool {
	return in.active
}

// Remaining returns the seconds left in the current episode.
func (in *Insanity) Remaining() float64 {
	if !in.active {
		return 0
	}
	return in.duration - in.elapsed
}

// Update advances a running episode or rolls for a new one.
// survival is seconds alive, progress the current difficulty.
func (in *Insanity) Update(dt, survival, progress float64, rng Rand) (started, ended bool) {
	if in.active {
		in.elapsed += dt
		if in.elapsed >= in.duration {
			in.active = false
			in.elapsed = 0
			return false, true
		}
		return false, false
	}

	if !in.cfg.Enabled || survival <= in.cfg.MinSurvival {
		return false, false
	}
	if survival-in.lastStart <= in.cfg.Cooldown {
		return false, false
	}

	chance := min(in.cfg.ChanceCap, progress*in.cfg.ChancePerLevel)
	if rng.Float64() >= chance*dt {
		return false, false
	}

	in.active = true
	in.elapsed = 0
	in.duration = uniform(rng, in.cfg.DurationMin, in.cfg.DurationMax)
	in.lastStart = survival
	return true, false
}

// Duration returns the length of the current or last episode.
func (in *Insanity) Duration() float64 {
	return in.duration
}

// Modifiers returns the adjustments to apply this frame.
func (in *Insanity) Modifiers() Modifiers {
	if !in.active {
		return Modifiers{}
	}
	return Modifiers{
		Active:            true,
		SpawnScale:        in.cfg.SpawnScale,
		CapBonus:          in.cfg.CapBonus,
		CapMax:            in.cfg.CapMax,
		SpeedScale:        in.cfg.SpeedScale,
		SnackCapBonus:     in.cfg.SnackCapBonus,
		SnackCapMax:       in.cfg.SnackCapMax,
		SnackRespawnScale: in.cfg.SnackRespawnScale,
	}
}
