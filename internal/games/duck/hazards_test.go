package duck

import (
	"math"
	"testing"

	"github.com/vovakirdan/dapper-duck/internal/config"
	"github.com/vovakirdan/dapper-duck/internal/core"
)

func TestHazardSpawnsAtRightEdge(t *testing.T) {
	cfg := config.DefaultDuckConfig()
	s := NewHazardSpawner(HazardStandard, cfg)
	tn := config.NewCurve(cfg).At(0)

	s.Update(0.016, tn, Modifiers{}, 1, constRand(0.5))

	hs := s.Hazards()
	if len(hs) != 1 {
		t.Fatalf("expected 1 hazard after first frame, got %d", len(hs))
	}
	h := hs[0]
	if math.Abs(h.X-(580-180*0.016)) > 1e-9 {
		t.Errorf("X = %v, expected spawn at 580 moved one frame", h.X)
	}
	if h.Y != 292 {
		t.Errorf("Y = %v, expected 292 (middle of spawn band)", h.Y)
	}
	if h.W != 56 || h.H != 56 {
		t.Errorf("size = %vx%v, expected 56x56 at low difficulty", h.W, h.H)
	}
	if h.VY != 0 {
		t.Errorf("VY = %v, expected 0 from a mid roll", h.VY)
	}
}

func TestHazardCountRespectsCap(t *testing.T) {
	cfg := config.DefaultDuckConfig()
	curve := config.NewCurve(cfg)
	s := NewHazardSpawner(HazardStandard, cfg)
	rng := NewRand(3)

	elapsed := 0.0
	for i := 0; i < 8000; i++ {
		elapsed += 0.016
		tn := curve.At(elapsed)
		s.Update(0.016, tn, Modifiers{}, 1, rng)
		if len(s.Hazards()) > tn.HazardMaxCount {
			t.Fatalf("frame %d: %d hazards, cap %d", i, len(s.Hazards()), tn.HazardMaxCount)
		}
	}
}

func TestHazardInsanityRaisesCap(t *testing.T) {
	cfg := config.DefaultDuckConfig()
	s := NewHazardSpawner(HazardStandard, cfg)
	tn := config.Tuning{HazardMaxCount: 1, HazardInterval: 0.01, HazardSpeed: 1}
	mods := NewInsanity(cfg.Insanity)
	mods.active = true

	for i := 0; i < 10; i++ {
		s.Update(0.016, tn, mods.Modifiers(), 1, constRand(0.5))
	}
	if got := len(s.Hazards()); got != 3 {
		t.Errorf("live hazards = %d, expected cap 1+2 during insanity", got)
	}
}

func TestPenaltyCapFollowsDifficulty(t *testing.T) {
	cfg := config.DefaultDuckConfig()
	curve := config.NewCurve(cfg)

	s := NewHazardSpawner(HazardPenalty, cfg)
	for i := 0; i < 200; i++ {
		s.Update(0.016, curve.At(0), Modifiers{}, 1, constRand(0.5))
	}
	if len(s.Hazards()) != 0 {
		t.Errorf("penalty hazards at difficulty 0 = %d, expected none", len(s.Hazards()))
	}

	s.Reset()
	s.Update(0.016, curve.At(1000), Modifiers{}, 1, constRand(0.5))
	if len(s.Hazards()) != 1 || s.Hazards()[0].Variant != HazardPenalty {
		t.Errorf("expected one penalty hazard at full difficulty, got %+v", s.Hazards())
	}
}

func TestHazardDodgedWhenOffScreen(t *testing.T) {
	cfg := config.DefaultDuckConfig()
	s := NewHazardSpawner(HazardStandard, cfg)
	s.hazards = append(s.hazards, Hazard{Box: core.Box{X: -50, Y: 300, W: 56, H: 56}})
	tn := config.Tuning{HazardMaxCount: 0, HazardInterval: 1, HazardSpeed: 180}

	gone := s.Update(0.05, tn, Modifiers{}, 1, constRand(0.5))

	if gone != 1 {
		t.Errorf("Update returned %d dodged, expected 1", gone)
	}
	if s.Dodged() != 1 {
		t.Errorf("Dodged() = %d, expected 1", s.Dodged())
	}
	if len(s.Hazards()) != 0 {
		t.Errorf("expected off-screen hazard removed, %d left", len(s.Hazards()))
	}
}

func TestPenaltyHazardBounces(t *testing.T) {
	cfg := config.DefaultDuckConfig()
	tn := config.Tuning{HazardSpeed: 0, HazardInterval: 1}

	s := NewHazardSpawner(HazardPenalty, cfg)
	s.hazards = append(s.hazards, Hazard{Box: core.Box{X: 300, Y: 101, W: 56, H: 56}, VY: -40, Variant: HazardPenalty})
	s.Update(0.05, tn, Modifiers{}, 1, constRand(0.5))
	h := s.Hazards()[0]
	if h.Y != 100 || h.VY != 40 {
		t.Errorf("top bounce: Y=%v VY=%v, expected Y=100 VY=40", h.Y, h.VY)
	}

	s.Reset()
	s.hazards = append(s.hazards, Hazard{Box: core.Box{X: 300, Y: 483, W: 56, H: 56}, VY: 40, Variant: HazardPenalty})
	s.Update(0.05, tn, Modifiers{}, 1, constRand(0.5))
	h = s.Hazards()[0]
	if h.Y != 484 || h.VY != -40 {
		t.Errorf("bottom bounce: Y=%v VY=%v, expected Y=484 VY=-40", h.Y, h.VY)
	}
}

func TestStandardHazardClampsInsideBand(t *testing.T) {
	cfg := config.DefaultDuckConfig()
	tn := config.Tuning{HazardSpeed: 0, HazardInterval: 1}

	s := NewHazardSpawner(HazardStandard, cfg)
	s.hazards = append(s.hazards, Hazard{Box: core.Box{X: 300, Y: 105, W: 56, H: 56}, VY: -200})
	s.Update(0.05, tn, Modifiers{}, 1, constRand(0.5))

	h := s.Hazards()[0]
	if h.Y != 108 {
		t.Errorf("Y = %v, expected clamp to 108", h.Y)
	}
	if h.VY != -200 {
		t.Errorf("VY = %v, standard hazards keep their drift", h.VY)
	}
}

func TestHazardsStayInBandAtHighDifficulty(t *testing.T) {
	cfg := config.DefaultDuckConfig()
	curve := config.NewCurve(cfg)
	s := NewHazardSpawner(HazardStandard, cfg)
	rng := NewRand(11)

	for i := 0; i < 3000; i++ {
		s.Update(0.016, curve.At(200), Modifiers{}, 1, rng)
		for _, h := range s.Hazards() {
			if h.Y < 108-1e-9 || h.Bottom() > 532+1e-9 {
				t.Fatalf("frame %d: hazard %+v left the band", i, h.Box)
			}
			if h.W < 56*0.8-1e-9 || h.W > 56*1.2+1e-9 {
				t.Fatalf("frame %d: hazard size %v outside jitter range", i, h.W)
			}
		}
	}
}

func TestSlowMotionScalesSpeedAndTime(t *testing.T) {
	cfg := config.DefaultDuckConfig()
	tn := config.Tuning{HazardSpeed: 200, HazardInterval: 1}

	normal := NewHazardSpawner(HazardStandard, cfg)
	slow := NewHazardSpawner(HazardStandard, cfg)
	start := Hazard{Box: core.Box{X: 300, Y: 300, W: 56, H: 56}}
	normal.hazards = append(normal.hazards, start)
	slow.hazards = append(slow.hazards, start)

	normal.Update(0.05, tn, Modifiers{}, 1, constRand(0.5))
	slow.Update(0.05, tn, Modifiers{}, 0.3, constRand(0.5))

	dn := 300 - normal.Hazards()[0].X
	ds := 300 - slow.Hazards()[0].X
	if math.Abs(dn-10) > 1e-9 {
		t.Errorf("normal travel = %v, expected 10", dn)
	}
	if math.Abs(ds-dn*0.3*0.3) > 1e-9 {
		t.Errorf("slow travel = %v, expected %v", ds, dn*0.09)
	}
}

func TestHazardCollide(t *testing.T) {
	cfg := config.DefaultDuckConfig()
	s := NewHazardSpawner(HazardStandard, cfg)
	flyer := core.Box{X: 80, Y: 288, W: 58, H: 58}

	s.hazards = append(s.hazards, Hazard{Box: core.Box{X: 400, Y: 288, W: 56, H: 56}})
	if _, hit := s.Collide(flyer, 0.35); hit {
		t.Error("distant hazard should not collide")
	}

	s.hazards = append(s.hazards, Hazard{Box: core.Box{X: 82, Y: 290, W: 56, H: 56}})
	if _, hit := s.Collide(flyer, 0.35); !hit {
		t.Error("overlapping hazard should collide")
	}
}

func TestHazardVariantString(t *testing.T) {
	if HazardStandard.String() != "fud" || HazardPenalty.String() != "zero_score_fud" {
		t.Errorf("unexpected variant names %q %q", HazardStandard, HazardPenalty)
	}
}
