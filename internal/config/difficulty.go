package config

import "math"

// Tuning is the set of spawn parameters derived from one difficulty reading.
// It is recomputed every frame and never stored.
type Tuning struct {
	Progress float64

	HazardMaxCount  int
	HazardInterval  float64
	HazardSpeed     float64
	PenaltyMaxCount int

	SnackMaxCount     int
	SnackSpeed        float64
	SnackRespawnScale float64
}

// Curve maps survival time to difficulty progress and derived tuning.
type Curve struct {
	cfg DuckConfig
}

// NewCurve creates a difficulty curve over the given tuning.
func NewCurve(cfg DuckConfig) *Curve {
	return &Curve{cfg: cfg}
}

// IsEnabled returns whether difficulty progression is active.
func (c *Curve) IsEnabled() bool {
	return c.cfg.Difficulty.Enabled
}

// Progress returns the difficulty progress (0.0 to 1.0) after t seconds alive.
// It is non-decreasing in t; with initial_level 0 it starts at exactly 0.
func (c *Curve) Progress(t float64) float64 {
	d := c.cfg.Difficulty
	initial := clampF(d.InitialLevel, 0.0, 1.0)
	if !d.Enabled || math.IsNaN(t) || t <= 0 {
		return initial
	}

	ramp := d.RampSeconds
	if ramp <= 0 {
		ramp = 1 // Prevent division by zero
	}
	raw := clampF(math.Pow(t/ramp, d.Exponent), 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return initial + raw*(1.0-initial)
}

// At returns the tuning for t seconds of survival.
func (c *Curve) At(t float64) Tuning {
	return c.ForProgress(c.Progress(t))
}

// ForProgress derives tuning from an explicit progress value.
func (c *Curve) ForProgress(p float64) Tuning {
	p = clampF(p, 0.0, 1.0)
	h, s := c.cfg.Hazards, c.cfg.Snacks

	snackMax := int(math.Floor(Lerp(float64(s.MaxCountStart), float64(s.MaxCountEnd), p)))
	if snackMax > s.MaxCountEnd {
		snackMax = s.MaxCountEnd
	}

	penaltyMax := 0
	if c.cfg.Penalty.Enabled {
		penaltyMax = min(c.cfg.Penalty.MaxCount, int(math.Floor(p*float64(c.cfg.Penalty.MaxCount))))
	}

	return Tuning{
		Progress:          p,
		HazardMaxCount:    int(math.Round(Lerp(float64(h.MaxCountStart), float64(h.MaxCountEnd), p))),
		HazardInterval:    Lerp(h.IntervalStart, h.IntervalEnd, p),
		HazardSpeed:       Lerp(h.SpeedStart, h.SpeedEnd, p),
		PenaltyMaxCount:   penaltyMax,
		SnackMaxCount:     snackMax,
		SnackSpeed:        Lerp(s.SpeedStart, s.SpeedEnd, p),
		SnackRespawnScale: 1.0 - p*s.RespawnSpeedup,
	}
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
