// Package config provides YAML-based tuning for the duck simulation and the
// difficulty curve derived from it.
package config

// DuckConfig contains every tuning number the simulation reads.
// Distances are in virtual units, times in seconds, speeds in units/second.
type DuckConfig struct {
	World      WorldConfig      `yaml:"world"`
	Flyer      FlyerConfig      `yaml:"flyer"`
	Hazards    HazardConfig     `yaml:"hazards"`
	Penalty    PenaltyConfig    `yaml:"penalty"`
	Snacks     SnackConfig      `yaml:"snacks"`
	Powerups   PowerupConfig    `yaml:"powerups"`
	Insanity   InsanityConfig   `yaml:"insanity"`
	Input      InputConfig      `yaml:"input"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig defines the virtual playfield.
type WorldConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	TopDeadZone    float64 `yaml:"top_dead_zone"`
	BottomDeadZone float64 `yaml:"bottom_dead_zone"`
	SpawnOffset    float64 `yaml:"spawn_offset"` // entities appear this far past the right edge
	MaxFrameDT     float64 `yaml:"max_frame_dt"`
}

// FlyerConfig defines the player body and its integrator.
type FlyerConfig struct {
	StartX       float64 `yaml:"start_x"`
	StartYRatio  float64 `yaml:"start_y_ratio"`
	Size         float64 `yaml:"size"`
	HitboxScale  float64 `yaml:"hitbox_scale"`
	Gravity      float64 `yaml:"gravity"`
	Drag         float64 `yaml:"drag"` // per-second damping factor, applied as drag^dt
	FlapImpulse  float64 `yaml:"flap_impulse"`
	MaxUpSpeed   float64 `yaml:"max_up_speed"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	GlideThrust  float64 `yaml:"glide_thrust"`
	FlapCooldown float64 `yaml:"flap_cooldown"`
	RotEase      float64 `yaml:"rot_ease"`
}

// HazardConfig defines the standard hazard stream.
type HazardConfig struct {
	Size                float64 `yaml:"size"`
	HitboxScale         float64 `yaml:"hitbox_scale"`
	SpeedStart          float64 `yaml:"speed_start"`
	SpeedEnd            float64 `yaml:"speed_end"`
	IntervalStart       float64 `yaml:"interval_start"`
	IntervalEnd         float64 `yaml:"interval_end"`
	MaxCountStart       int     `yaml:"max_count_start"`
	MaxCountEnd         int     `yaml:"max_count_end"`
	SpawnMargin         float64 `yaml:"spawn_margin"`  // added to the larger dead zone
	EdgePadding         float64 `yaml:"edge_padding"`  // standard hazards stay this far inside the band
	DriftLow            float64 `yaml:"drift_low"`
	DriftHigh           float64 `yaml:"drift_high"`
	DriftThreshold      float64 `yaml:"drift_threshold"`
	SizeJitterThreshold float64 `yaml:"size_jitter_threshold"`
	SizeJitterMin       float64 `yaml:"size_jitter_min"`
	SizeJitterMax       float64 `yaml:"size_jitter_max"`
	TimerJitterMin      float64 `yaml:"timer_jitter_min"`
	TimerJitterMax      float64 `yaml:"timer_jitter_max"`
	Looks               int     `yaml:"looks"`
}

// PenaltyConfig defines the rarer score-resetting hazard variant.
type PenaltyConfig struct {
	Enabled        bool    `yaml:"enabled"`
	IntervalScale  float64 `yaml:"interval_scale"`
	MaxCount       int     `yaml:"max_count"`
	TimerJitterMin float64 `yaml:"timer_jitter_min"`
	TimerJitterMax float64 `yaml:"timer_jitter_max"`
}

// SnackTier is one row of the reward rarity table.
type SnackTier struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
	Points int     `yaml:"points"`
}

// SnackConfig defines the reward stream.
type SnackConfig struct {
	Size           float64     `yaml:"size"`
	HitboxScale    float64     `yaml:"hitbox_scale"`
	SpeedStart     float64     `yaml:"speed_start"`
	SpeedEnd       float64     `yaml:"speed_end"`
	RespawnMin     float64     `yaml:"respawn_min"`
	RespawnMax     float64     `yaml:"respawn_max"`
	RespawnSpeedup float64     `yaml:"respawn_speedup"` // respawn window shrinks by this fraction at full difficulty
	MaxCountStart  int         `yaml:"max_count_start"`
	MaxCountEnd    int         `yaml:"max_count_end"`
	SpawnMargin    float64     `yaml:"spawn_margin"`
	BobAmplitude   float64     `yaml:"bob_amplitude"`
	BobFrequency   float64     `yaml:"bob_frequency"`
	Tiers          []SnackTier `yaml:"tiers"`
}

// PowerupConfig defines timed pickups and their effects.
type PowerupConfig struct {
	Size             float64  `yaml:"size"`
	HitboxScale      float64  `yaml:"hitbox_scale"`
	Speed            float64  `yaml:"speed"`
	SpawnChance      float64  `yaml:"spawn_chance"`
	RespawnMin       float64  `yaml:"respawn_min"`
	RespawnMax       float64  `yaml:"respawn_max"`
	SpawnMargin      float64  `yaml:"spawn_margin"`
	Duration         float64  `yaml:"duration"`
	Types            []string `yaml:"types"`
	MagnetRadius     float64  `yaml:"magnet_radius"`
	MagnetStrength   float64  `yaml:"magnet_strength"`
	SlowMotionFactor float64  `yaml:"slow_motion_factor"`
	ScoreMultiplier  int      `yaml:"score_multiplier"`
}

// InsanityConfig defines the rare hazard spike.
type InsanityConfig struct {
	Enabled           bool    `yaml:"enabled"`
	MinSurvival       float64 `yaml:"min_survival"`
	Cooldown          float64 `yaml:"cooldown"`
	ChanceCap         float64 `yaml:"chance_cap"`
	ChancePerLevel    float64 `yaml:"chance_per_level"`
	DurationMin       float64 `yaml:"duration_min"`
	DurationMax       float64 `yaml:"duration_max"`
	SpawnScale        float64 `yaml:"spawn_scale"`
	CapBonus          int     `yaml:"cap_bonus"`
	CapMax            int     `yaml:"cap_max"`
	SpeedScale        float64 `yaml:"speed_scale"`
	SnackCapBonus     int     `yaml:"snack_cap_bonus"`
	SnackCapMax       int     `yaml:"snack_cap_max"`
	SnackRespawnScale float64 `yaml:"snack_respawn_scale"`
}

// InputConfig defines how raw key events become simulation input.
type InputConfig struct {
	DebounceMS   int `yaml:"debounce_ms"`
	HoldWindowMS int `yaml:"hold_window_ms"` // thrust stays held this long after the last key repeat
}

// DifficultyConfig defines how pressure ramps with survival time.
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`
	InitialLevel float64 `yaml:"initial_level"` // 0.0 = gentle start, 1.0 = full pressure
	RampSeconds  float64 `yaml:"ramp_seconds"`
	Exponent     float64 `yaml:"exponent"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyHard:
		return 0.35
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ParsePreset validates a preset name. The empty string means "keep the file".
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// Power-up type names accepted in PowerupConfig.Types.
const (
	PowerupShield      = "shield"
	PowerupDoubleScore = "double_score"
	PowerupSlowMotion  = "slow_motion"
	PowerupMagnet      = "magnet"
)

// KnownPowerups lists every power-up type name in display order.
var KnownPowerups = []string{PowerupShield, PowerupDoubleScore, PowerupSlowMotion, PowerupMagnet}
