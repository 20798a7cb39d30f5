package duck

import (
	"testing"

	"github.com/vovakirdan/dapper-duck/internal/config"
)

func newTestFlyer() Flyer {
	cfg := config.DefaultDuckConfig()
	return NewFlyer(cfg.Flyer, cfg.World)
}

func TestFlyerReset(t *testing.T) {
	f := newTestFlyer()

	if f.X != 80 {
		t.Errorf("X = %v, expected 80", f.X)
	}
	if f.Y != 640*0.45 {
		t.Errorf("Y = %v, expected %v", f.Y, 640*0.45)
	}
	if f.W != 58 || f.H != 58 {
		t.Errorf("size = %vx%v, expected 58x58", f.W, f.H)
	}
	if f.VY != 0 || f.Rot != 0 || f.Cooldown() != 0 {
		t.Errorf("expected flyer at rest, got vy=%v rot=%v cooldown=%v", f.VY, f.Rot, f.Cooldown())
	}
}

func TestFlyerGravity(t *testing.T) {
	f := newTestFlyer()
	startY := f.Y

	f.Integrate(0.016, false)

	if f.VY <= 0 {
		t.Errorf("VY = %v, expected gravity to pull down", f.VY)
	}
	if f.Y <= startY {
		t.Errorf("Y = %v, expected to move down from %v", f.Y, startY)
	}
}

func TestFlyerThrustSlowsFall(t *testing.T) {
	plain := newTestFlyer()
	glide := newTestFlyer()

	for i := 0; i < 20; i++ {
		plain.Integrate(0.016, false)
		glide.Integrate(0.016, true)
	}
	if glide.VY >= plain.VY {
		t.Errorf("thrust VY = %v, expected less than %v", glide.VY, plain.VY)
	}
}

func TestFlyerSpeedLimits(t *testing.T) {
	cfg := config.DefaultDuckConfig().Flyer
	f := newTestFlyer()

	for i := 0; i < 500; i++ {
		f.Integrate(0.05, false)
		if f.VY > cfg.MaxFallSpeed || f.VY < cfg.MaxUpSpeed {
			t.Fatalf("VY = %v escaped [%v, %v]", f.VY, cfg.MaxUpSpeed, cfg.MaxFallSpeed)
		}
	}

	f.VY = -500
	f.TryFlap()
	if f.VY != cfg.MaxUpSpeed {
		t.Errorf("VY after flap = %v, expected clamp to %v", f.VY, cfg.MaxUpSpeed)
	}
}

func TestFlapCooldown(t *testing.T) {
	f := newTestFlyer()

	if !f.TryFlap() {
		t.Fatal("first flap should be accepted")
	}
	if f.VY != -520 {
		t.Errorf("VY = %v, expected -520", f.VY)
	}
	if f.TryFlap() {
		t.Error("flap during cooldown should be ignored")
	}

	f.Integrate(0.05, false)
	if f.Cooldown() != 0.08 {
		t.Errorf("Cooldown = %v, Integrate should not touch it", f.Cooldown())
	}

	f.TickCooldown(0.05)
	if f.TryFlap() {
		t.Error("flap with 0.03s cooldown left should be ignored")
	}

	f.TickCooldown(0.05)
	if f.Cooldown() != 0 {
		t.Errorf("Cooldown = %v, expected floor at 0", f.Cooldown())
	}
	if !f.TryFlap() {
		t.Error("flap after cooldown should be accepted")
	}
}

func TestFlyerRotationEases(t *testing.T) {
	f := newTestFlyer()
	f.VY = 800

	f.Integrate(0.016, false)
	first := f.Rot
	if first <= 0 {
		t.Fatalf("Rot = %v, expected positive tilt while falling", first)
	}

	for i := 0; i < 200; i++ {
		f.Integrate(0.016, false)
		if f.Rot < -0.8 || f.Rot > 1.0 {
			t.Fatalf("Rot = %v escaped [-0.8, 1.0]", f.Rot)
		}
	}
	if f.Rot <= first {
		t.Errorf("Rot = %v, expected to keep easing past %v", f.Rot, first)
	}
}

func TestFlyerBounds(t *testing.T) {
	world := config.DefaultDuckConfig().World

	tests := []struct {
		name     string
		y        float64
		expected EndReason
	}{
		{"inside band", 300, EndNone},
		{"at top edge", 100, EndNone},
		{"above top", 99.9, EndTooHigh},
		{"bottom touches edge", 540 - 58, EndNone},
		{"below bottom", 540 - 57, EndFell},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newTestFlyer()
			f.Y = tc.y
			if got := f.Bounds(world); got != tc.expected {
				t.Errorf("Bounds() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestEndReasonMessages(t *testing.T) {
	if EndFell.String() != "You fell!" {
		t.Errorf("EndFell = %q", EndFell.String())
	}
	if EndTooHigh.String() != "You flew too high!" {
		t.Errorf("EndTooHigh = %q", EndTooHigh.String())
	}
	if EndHazard.String() != "Hit by FUD!" {
		t.Errorf("EndHazard = %q", EndHazard.String())
	}
}
