package duck

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/dapper-duck/internal/core"
)

// snackGlyphs are indexed by tier; tiers past the end reuse the last glyph.
var snackGlyphs = []struct {
	glyph rune
	color core.Color
}{
	{'o', core.ColorYellow},
	{'●', core.ColorOrange},
	{'◆', core.ColorBrightYellow},
	{'★', core.ColorBrightYellow},
}

// viewport maps virtual units to screen cells. Row 0 is the HUD.
type viewport struct {
	sx, sy float64
	top    int
}

func newViewport(snap Snapshot, dst *core.Screen) viewport {
	return viewport{
		sx:  float64(dst.Width()) / snap.World.Width,
		sy:  float64(dst.Height()-1) / snap.World.Height,
		top: 1,
	}
}

func (v viewport) rect(b core.Box) core.Rect {
	x0 := int(math.Floor(b.X * v.sx))
	y0 := int(math.Floor(b.Y*v.sy)) + v.top
	x1 := int(math.Floor(b.Right() * v.sx))
	y1 := int(math.Floor(b.Bottom()*v.sy)) + v.top
	return core.NewRect(x0, y0, core.Max(1, x1-x0), core.Max(1, y1-y0))
}

func (v viewport) row(y float64) int {
	return int(math.Floor(y*v.sy)) + v.top
}

// Render draws a snapshot onto the screen, replacing its contents.
func Render(snap Snapshot, dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() < 2 || snap.World.Width <= 0 || snap.World.Height <= 0 {
		return
	}
	v := newViewport(snap, dst)

	// Dead zone edges
	dst.DrawHLine(0, v.row(snap.World.TopDeadZone)-1, dst.Width(), '─', core.ColorGray)
	dst.DrawHLine(0, v.row(snap.World.Height-snap.World.BottomDeadZone), dst.Width(), '─', core.ColorGray)

	if snap.Phase == PhaseMenu {
		drawMenu(dst)
		return
	}

	for _, h := range snap.Hazards {
		drawHazard(dst, v, h)
	}
	for _, s := range snap.Snacks {
		drawSnack(dst, v, s)
	}
	if snap.Powerup != nil {
		r := v.rect(snap.Powerup.Box)
		dst.DrawRect(r, '▓', core.ColorCyan)
		cx, cy := r.X+r.W/2, r.Y+r.H/2
		dst.SetColored(cx, cy, snap.Powerup.Type.Glyph(), core.ColorBrightCyan)
	}
	drawFlyer(dst, v, snap)

	for _, p := range snap.Popups {
		color := core.ColorWhite
		if p.Doubled {
			color = core.ColorBrightYellow
		}
		lift := p.Age / popupLife * 28
		dst.DrawText(int(p.X*v.sx), v.row(p.Y-lift), p.Text, color)
	}

	drawHUD(dst, snap)

	if snap.Phase == PhaseOver {
		drawGameOver(dst, snap)
	}
}

func drawHazard(dst *core.Screen, v viewport, h Hazard) {
	r := v.rect(h.Box)
	if h.Variant == HazardPenalty {
		dst.DrawRect(r, '▒', core.ColorMagenta)
		dst.SetColored(r.X+r.W/2, r.Y+r.H/2, '0', core.ColorBrightRed)
		return
	}
	fills := []rune{'▒', '▓', '░', '#'}
	dst.DrawRect(r, fills[h.Look%len(fills)], core.ColorRed)
	dst.SetColored(r.X+r.W/2, r.Y+r.H/2, '$', core.ColorBrightRed)
}

func drawSnack(dst *core.Screen, v viewport, s SnackView) {
	g := snackGlyphs[core.Clamp(s.Tier, 0, len(snackGlyphs)-1)]
	box := s.Box
	box.Y += s.Bob
	dst.DrawRect(v.rect(box), g.glyph, g.color)
}

func drawFlyer(dst *core.Screen, v viewport, snap Snapshot) {
	f := snap.Flyer
	r := v.rect(f.Box)
	color := core.ColorBrightYellow
	if snap.Shielded {
		color = core.ColorBrightCyan
	}
	dst.DrawRect(r, '█', color)

	// Beak follows the tilt
	beakY := r.Y + r.H/2
	switch {
	case f.Rot < -0.3:
		beakY = r.Y
	case f.Rot > 0.3:
		beakY = r.Bottom() - 1
	}
	dst.SetColored(r.Right(), beakY, '>', core.ColorOrange)
}

func drawHUD(dst *core.Screen, snap Snapshot) {
	left := fmt.Sprintf(" SCORE %d   %.1fs   LVL %d%%", snap.Score, snap.Survival, int(snap.Progress*100))
	dst.DrawText(0, 0, left, core.ColorWhite)

	var parts []string
	for _, e := range snap.Effects {
		parts = append(parts, fmt.Sprintf("[%c %ds]", e.Type.Glyph(), int(math.Ceil(e.Remaining))))
	}
	right := strings.Join(parts, " ")
	if right != "" {
		dst.DrawText(dst.Width()-len([]rune(right))-1, 0, right, core.ColorCyan)
	}

	if snap.Insanity {
		dst.DrawTextCentered(1, fmt.Sprintf("!! INSANITY %.1fs !!", snap.InsanityRemaining), core.ColorBrightRed)
	}
}

func drawMenu(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-3, "D A P P E R   D U C K", core.ColorBrightYellow)
	dst.DrawTextCentered(mid-1, "Dodge the FUD. Eat the snacks.", core.ColorWhite)
	dst.DrawTextCentered(mid+1, "SPACE or ENTER to start", core.ColorCyan)
	dst.DrawTextCentered(mid+2, "TAB leaderboard   Q quit", core.ColorGray)
}

func drawGameOver(dst *core.Screen, snap Snapshot) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-2, "GAME OVER", core.ColorBrightRed)
	dst.DrawTextCentered(mid-1, snap.Reason.String(), core.ColorWhite)
	dst.DrawTextCentered(mid+1, fmt.Sprintf("Score %d   Survived %.1fs", snap.Score, snap.Survival), core.ColorBrightYellow)
	dst.DrawTextCentered(mid+2, fmt.Sprintf("Snacks %d   Dodged %d   Power-ups %d",
		snap.Stats.Snacks, snap.Stats.Dodged, snap.Stats.Powerups), core.ColorGray)
	dst.DrawTextCentered(mid+4, "ENTER to retry   ESC menu", core.ColorCyan)
}
