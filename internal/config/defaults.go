package config

import (
	_ "embed"
)

//go:embed defaults/duck.yaml
var defaultDuckYAML []byte

// DefaultDuckConfig returns the built-in tuning. It mirrors defaults/duck.yaml
// and is used when the embedded file cannot be parsed.
func DefaultDuckConfig() DuckConfig {
	return DuckConfig{
		World: WorldConfig{
			Width:          540,
			Height:         640,
			TopDeadZone:    100,
			BottomDeadZone: 100,
			SpawnOffset:    40,
			MaxFrameDT:     0.05,
		},
		Flyer: FlyerConfig{
			StartX:       80,
			StartYRatio:  0.45,
			Size:         58,
			HitboxScale:  0.35,
			Gravity:      1100,
			Drag:         0.88,
			FlapImpulse:  -520,
			MaxUpSpeed:   -560,
			MaxFallSpeed: 820,
			GlideThrust:  -140,
			FlapCooldown: 0.08,
			RotEase:      20,
		},
		Hazards: HazardConfig{
			Size:                56,
			HitboxScale:         0.48,
			SpeedStart:          180,
			SpeedEnd:            650,
			IntervalStart:       2.0,
			IntervalEnd:         0.25,
			MaxCountStart:       1,
			MaxCountEnd:         5,
			SpawnMargin:         30,
			EdgePadding:         8,
			DriftLow:            10,
			DriftHigh:           40,
			DriftThreshold:      0.5,
			SizeJitterThreshold: 0.7,
			SizeJitterMin:       0.8,
			SizeJitterMax:       1.2,
			TimerJitterMin:      0.3,
			TimerJitterMax:      1.7,
			Looks:               4,
		},
		Penalty: PenaltyConfig{
			Enabled:        true,
			IntervalScale:  3,
			MaxCount:       2,
			TimerJitterMin: 0.5,
			TimerJitterMax: 2.0,
		},
		Snacks: SnackConfig{
			Size:           44,
			HitboxScale:    0.70,
			SpeedStart:     160,
			SpeedEnd:       220,
			RespawnMin:     1.0,
			RespawnMax:     2.2,
			RespawnSpeedup: 0.4,
			MaxCountStart:  1,
			MaxCountEnd:    4,
			SpawnMargin:    24,
			BobAmplitude:   6,
			BobFrequency:   3.2,
			Tiers: []SnackTier{
				{Name: "crumb", Weight: 6, Points: 50},
				{Name: "cookie", Weight: 3, Points: 100},
				{Name: "donut", Weight: 1.5, Points: 150},
				{Name: "golden", Weight: 0.5, Points: 300},
			},
		},
		Powerups: PowerupConfig{
			Size:             40,
			HitboxScale:      0.8,
			Speed:            140,
			SpawnChance:      0.4,
			RespawnMin:       8,
			RespawnMax:       20,
			SpawnMargin:      20,
			Duration:         10,
			Types:            append([]string(nil), KnownPowerups...),
			MagnetRadius:     100,
			MagnetStrength:   200,
			SlowMotionFactor: 0.3,
			ScoreMultiplier:  2,
		},
		Insanity: InsanityConfig{
			Enabled:           true,
			MinSurvival:       60,
			Cooldown:          45,
			ChanceCap:         0.005,
			ChancePerLevel:    0.003,
			DurationMin:       3,
			DurationMax:       7,
			SpawnScale:        0.3,
			CapBonus:          2,
			CapMax:            5,
			SpeedScale:        1.5,
			SnackCapBonus:     2,
			SnackCapMax:       6,
			SnackRespawnScale: 0.4,
		},
		Input: InputConfig{
			DebounceMS:   50,
			HoldWindowMS: 150,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			RampSeconds:  90,
			Exponent:     1.2,
		},
	}
}

// DefaultYAML returns the embedded default tuning file.
func DefaultYAML() []byte {
	return defaultDuckYAML
}
