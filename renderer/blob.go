// Package renderer draws blobs with raylib from plain values.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Blob styling constants, in world units unless noted.
const (
	borderWidth    = 2.0
	wedgeReach     = 7.0         // wedge extends this far past the body
	wedgeHalfAngle = math.Pi / 8 // radians
	innerRatio     = 0.2         // inner circle radius / body radius
	shadeFactor    = 0.7
)

var (
	ColorBackground      = rl.Color{R: 24, G: 24, B: 28, A: 255}
	ColorWorld           = rl.Color{R: 20, G: 40, B: 200, A: 255}
	ColorWedge           = rl.White
	ColorWedgeActive     = Darker(rl.White)
	ColorPredatorInner   = rl.Color{R: 100, G: 0, B: 0, A: 255}
	ColorPredatorSpecial = rl.Color{R: 220, G: 0, B: 0, A: 255}
)

// BlobStyle is everything DrawBlob needs, already in screen space.
type BlobStyle struct {
	X, Y     float32 // screen center
	Radius   float32 // screen radius
	Scale    float32 // screen pixels per world unit
	Angle    float64 // heading in radians, counter-clockwise on screen
	Fill     rl.Color
	Prey     bool
	Attacked bool // attacked during the last tick
	Special  bool // the special action fired during the last tick

	Wedge      bool // draw the heading wedge
	InnerState bool // draw the inner action circle
}

// DrawBlob draws the heading wedge, a border ring that brightens when the
// blob was attacked, the body and the inner action circle.
func DrawBlob(s BlobStyle) {
	center := rl.Vector2{X: s.X, Y: s.Y}

	if s.Wedge {
		wedge := ColorWedge
		if !s.Prey && s.Special {
			wedge = ColorWedgeActive
		}
		// raylib sector angles run clockwise on screen.
		deg := float32(s.Angle * 180 / math.Pi)
		half := float32(wedgeHalfAngle * 180 / math.Pi)
		rl.DrawCircleSector(center, s.Radius+wedgeReach*s.Scale, -deg-half, -deg+half, 12, wedge)
	}

	border := Darker(s.Fill)
	if s.Attacked {
		border = Brighter(s.Fill)
	}
	rl.DrawCircleV(center, s.Radius, border)
	rl.DrawCircleV(center, max(s.Radius-borderWidth*s.Scale, 1), s.Fill)

	if s.InnerState {
		rl.DrawCircleV(center, s.Radius*innerRatio, innerColor(s))
	}
}

func innerColor(s BlobStyle) rl.Color {
	switch {
	case s.Prey:
		return Brighter(s.Fill)
	case s.Special:
		return ColorPredatorSpecial
	default:
		return ColorPredatorInner
	}
}

// DrawWorldArea fills the spawn area on the background colour.
func DrawWorldArea(x, y, width, height float32) {
	rl.ClearBackground(ColorBackground)
	rl.DrawRectangleV(rl.Vector2{X: x, Y: y}, rl.Vector2{X: width, Y: height}, ColorWorld)
}

// DrawRangeRing outlines a circle, used for action ranges.
func DrawRangeRing(x, y, radius float32, color rl.Color) {
	rl.DrawCircleLinesV(rl.Vector2{X: x, Y: y}, radius, color)
}

// DrawLink draws a thin line between two screen points.
func DrawLink(x1, y1, x2, y2 float32, color rl.Color) {
	rl.DrawLineEx(rl.Vector2{X: x1, Y: y1}, rl.Vector2{X: x2, Y: y2}, 1.5, color)
}

// Darker scales each channel down by 0.7.
func Darker(c rl.Color) rl.Color {
	return rl.Color{
		R: uint8(float64(c.R) * shadeFactor),
		G: uint8(float64(c.G) * shadeFactor),
		B: uint8(float64(c.B) * shadeFactor),
		A: c.A,
	}
}

// Brighter scales each channel up by 1/0.7, lifting black to a dim grey
// so it can brighten at all.
func Brighter(c rl.Color) rl.Color {
	const floor = 3 // int(1/(1-0.7))
	ch := func(v uint8) uint8 {
		if v > 0 && v < floor {
			v = floor
		}
		return uint8(math.Min(float64(v)/shadeFactor, 255))
	}
	if c.R == 0 && c.G == 0 && c.B == 0 {
		return rl.Color{R: floor, G: floor, B: floor, A: c.A}
	}
	return rl.Color{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: c.A}
}

// HeatColor maps a [0, 1] ratio from red through yellow to green.
func HeatColor(ratio float64) rl.Color {
	ratio = math.Max(0, math.Min(1, ratio))
	if ratio < 0.5 {
		return rl.Color{R: 220, G: uint8(440 * ratio), B: 40, A: 255}
	}
	return rl.Color{R: uint8(440 * (1 - ratio)), G: 220, B: 40, A: 255}
}
