// Package core provides the geometry, collision and screen primitives shared by
// the simulation and the terminal front-end. It has no external dependencies
// (especially no Bubble Tea) to keep game logic pure and testable.
package core

import "math"

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is an axis-aligned box in virtual simulation units. X, Y is the top-left corner.
type Box struct {
	X, Y float64
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Center returns the center point of the box.
func (b Box) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Hitbox shrinks the box symmetrically about its center.
// Scales outside (0, 1] are clamped into that range.
func (b Box) Hitbox(scale float64) Box {
	if math.IsNaN(scale) || scale > 1 {
		scale = 1
	}
	if scale <= 0 {
		scale = math.SmallestNonzeroFloat64
	}
	cx, cy := b.Center()
	w, h := b.W*scale, b.H*scale
	return Box{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Overlaps reports whether the shrunken hitboxes of a and b intersect.
// The intersection must have positive area; boxes that only touch along an
// edge or at a corner do not overlap.
// The result is symmetric: Overlaps(a, sa, b, sb) == Overlaps(b, sb, a, sa).
func Overlaps(a Box, scaleA float64, b Box, scaleB float64) bool {
	ha := a.Hitbox(scaleA)
	hb := b.Hitbox(scaleB)
	return !(ha.Right() <= hb.X ||
		ha.X >= hb.Right() ||
		ha.Bottom() <= hb.Y ||
		ha.Y >= hb.Bottom())
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// MapRange linearly maps v from [inLo, inHi] to [outLo, outHi] without clamping.
func MapRange(v, inLo, inHi, outLo, outHi float64) float64 {
	if inHi == inLo {
		return outLo
	}
	return outLo + (v-inLo)/(inHi-inLo)*(outHi-outLo)
}

// Finite reports whether every value is neither NaN nor infinite.
func Finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
