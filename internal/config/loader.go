package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

const configFile = "duck.yaml"

// LoadDuck loads the simulation tuning and validates it.
// Search order: customPath -> ~/.duck/configs/duck.yaml -> ./configs/duck.yaml -> embedded default.
// Files are overlaid on the defaults, so a partial file only changes what it names.
func LoadDuck(customPath string) (DuckConfig, error) {
	cfg, err := loadDuck(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadDuck(customPath string) (DuckConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultDuckConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultDuckYAML)
	if err != nil {
		return DefaultDuckConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse overlays YAML data on DefaultDuckConfig.
func Parse(data []byte) (DuckConfig, error) {
	cfg := DefaultDuckConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultDuckConfig(), err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".duck", "configs", filename)
}

// ApplyDuckPreset modifies the config based on a difficulty preset.
// An empty preset leaves the loaded file untouched.
func ApplyDuckPreset(cfg *DuckConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.RampSeconds *= 1.5
		cfg.Insanity.Enabled = false
	case DifficultyHard:
		cfg.Difficulty.RampSeconds *= 0.75
	}
}

// Validate rejects tuning the simulation cannot run with.
func (c DuckConfig) Validate() error {
	w := c.World
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("config: world size must be positive, got %gx%g", w.Width, w.Height)
	}
	if w.TopDeadZone < 0 || w.BottomDeadZone < 0 || w.TopDeadZone+w.BottomDeadZone >= w.Height {
		return fmt.Errorf("config: dead zones %g/%g leave no playable band", w.TopDeadZone, w.BottomDeadZone)
	}
	if w.MaxFrameDT <= 0 {
		return fmt.Errorf("config: max_frame_dt must be positive")
	}

	f := c.Flyer
	if f.Drag <= 0 || f.Drag > 1 {
		return fmt.Errorf("config: flyer drag must be in (0,1], got %g", f.Drag)
	}
	if f.MaxUpSpeed > 0 || f.MaxFallSpeed < 0 {
		return fmt.Errorf("config: flyer speed limits %g/%g have the wrong sign", f.MaxUpSpeed, f.MaxFallSpeed)
	}
	if f.FlapCooldown < 0 {
		return fmt.Errorf("config: flap_cooldown must not be negative")
	}

	sizes := []struct {
		name  string
		size  float64
		scale float64
	}{
		{"flyer", f.Size, f.HitboxScale},
		{"hazards", c.Hazards.Size, c.Hazards.HitboxScale},
		{"snacks", c.Snacks.Size, c.Snacks.HitboxScale},
		{"powerups", c.Powerups.Size, c.Powerups.HitboxScale},
	}
	for _, s := range sizes {
		if s.size <= 0 {
			return fmt.Errorf("config: %s size must be positive, got %g", s.name, s.size)
		}
		if s.scale <= 0 || s.scale > 1 {
			return fmt.Errorf("config: %s hitbox_scale must be in (0,1], got %g", s.name, s.scale)
		}
	}

	h := c.Hazards
	if h.IntervalStart <= 0 || h.IntervalEnd <= 0 {
		return fmt.Errorf("config: hazard spawn intervals must be positive")
	}
	if h.IntervalStart < h.IntervalEnd {
		return fmt.Errorf("config: hazard interval must shrink with difficulty, got %g..%g", h.IntervalStart, h.IntervalEnd)
	}
	if h.SpeedStart <= 0 || h.SpeedEnd < h.SpeedStart {
		return fmt.Errorf("config: hazard speed %g..%g is invalid", h.SpeedStart, h.SpeedEnd)
	}
	if h.MaxCountStart < 0 || h.MaxCountEnd < h.MaxCountStart {
		return fmt.Errorf("config: hazard max count %d..%d is invalid", h.MaxCountStart, h.MaxCountEnd)
	}

	// Penalty hazards are the rarer variant: slower to spawn and fewer alive.
	if pen := c.Penalty; pen.Enabled {
		if pen.IntervalScale <= 1 {
			return fmt.Errorf("config: penalty interval_scale must be above 1, got %g", pen.IntervalScale)
		}
		if pen.MaxCount < 0 || pen.MaxCount >= h.MaxCountEnd {
			return fmt.Errorf("config: penalty max_count %d must be below the hazard cap %d", pen.MaxCount, h.MaxCountEnd)
		}
	}
	if err := checkWindow("hazard timer jitter", h.TimerJitterMin, h.TimerJitterMax); err != nil {
		return err
	}
	if err := checkWindow("hazard size jitter", h.SizeJitterMin, h.SizeJitterMax); err != nil {
		return err
	}
	if err := checkWindow("penalty timer jitter", c.Penalty.TimerJitterMin, c.Penalty.TimerJitterMax); err != nil {
		return err
	}

	s := c.Snacks
	if err := checkWindow("snack respawn", s.RespawnMin, s.RespawnMax); err != nil {
		return err
	}
	if s.SpeedStart <= 0 || s.SpeedEnd < s.SpeedStart {
		return fmt.Errorf("config: snack speed %g..%g is invalid", s.SpeedStart, s.SpeedEnd)
	}
	if s.MaxCountStart < 0 || s.MaxCountEnd < s.MaxCountStart {
		return fmt.Errorf("config: snack max count %d..%d is invalid", s.MaxCountStart, s.MaxCountEnd)
	}
	if len(s.Tiers) == 0 {
		return fmt.Errorf("config: snack table is empty")
	}
	for i, tier := range s.Tiers {
		if tier.Weight <= 0 {
			return fmt.Errorf("config: snack tier %d (%s) weight must be positive, got %g", i, tier.Name, tier.Weight)
		}
		if tier.Points < 0 {
			return fmt.Errorf("config: snack tier %d (%s) points must not be negative", i, tier.Name)
		}
	}

	p := c.Powerups
	if err := checkWindow("powerup respawn", p.RespawnMin, p.RespawnMax); err != nil {
		return err
	}
	if p.Duration <= 0 {
		return fmt.Errorf("config: powerup duration must be positive")
	}
	for _, name := range p.Types {
		if !slices.Contains(KnownPowerups, name) {
			return fmt.Errorf("config: unknown powerup type %q", name)
		}
	}

	in := c.Insanity
	if err := checkWindow("insanity duration", in.DurationMin, in.DurationMax); err != nil {
		return err
	}
	if in.SpawnScale <= 0 || in.SpeedScale <= 0 || in.SnackRespawnScale <= 0 {
		return fmt.Errorf("config: insanity scales must be positive, got spawn %g speed %g snack respawn %g",
			in.SpawnScale, in.SpeedScale, in.SnackRespawnScale)
	}

	d := c.Difficulty
	if d.RampSeconds <= 0 || d.Exponent <= 0 {
		return fmt.Errorf("config: difficulty ramp_seconds and exponent must be positive")
	}
	if d.InitialLevel < 0 || d.InitialLevel > 1 {
		return fmt.Errorf("config: difficulty initial_level must be in [0,1], got %g", d.InitialLevel)
	}
	return nil
}

func checkWindow(name string, lo, hi float64) error {
	if lo < 0 || hi < lo {
		return fmt.Errorf("config: %s window %g..%g is invalid", name, lo, hi)
	}
	return nil
}
