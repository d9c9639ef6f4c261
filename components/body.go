// Package components holds the physical state shared by simulation systems.
package components

import "math"

// Collider reports whether a body overlaps anything else in the world.
type Collider interface {
	Colliding(b *Body) bool
}

// Body is the physical pose of a blob: location, heading, size and a
// per-blob movement multiplier. Read-only methods work on copies.
type Body struct {
	x, y   float64
	angle  float64 // radians
	radius float64
	speed  float64 // movement multiplier
}

// NewBody returns a body at the origin with a unit speed multiplier.
func NewBody() *Body {
	return &Body{speed: 1}
}

func (b Body) X() float64      { return b.x }
func (b Body) Y() float64      { return b.y }
func (b Body) Angle() float64  { return b.angle }
func (b Body) Radius() float64 { return b.radius }
func (b Body) Speed() float64  { return b.speed }

// SquaredDistance returns the squared center distance to (x, y).
func (b Body) SquaredDistance(x, y float64) float64 {
	dx := b.x - x
	dy := b.y - y
	return dx*dx + dy*dy
}

// Distance returns the center distance to (x, y).
func (b Body) Distance(x, y float64) float64 {
	return math.Sqrt(b.SquaredDistance(x, y))
}

// WithinRange reports whether other lies within r of b, radii included:
// d² - ((ra+rb)² + r²) <= 0.
func (b Body) WithinRange(other *Body, r float64) bool {
	radii := b.radius + other.radius
	return b.SquaredDistance(other.x, other.y)-(radii*radii+r*r) <= 0
}

// Colliding reports whether the two bodies touch or overlap.
func (b Body) Colliding(other *Body) bool {
	return b.WithinRange(other, 0)
}

// Turn adds delta radians to the heading.
func (b *Body) Turn(delta float64) { b.angle += delta }

func (b *Body) SetAngle(a float64)       { b.angle = a }
func (b *Body) SetLocation(x, y float64) { b.x, b.y = x, y }
func (b *Body) SetSpeed(s float64)       { b.speed = s }

// Reset places the body and sets its size and heading. The speed
// multiplier is kept.
func (b *Body) Reset(x, y, radius, angle float64) {
	b.x, b.y = x, y
	b.radius = radius
	b.angle = angle
}

// Advance returns the displacement of moving distance along the heading.
// Screen coordinates: y grows downward, so positive angles point up.
func (b *Body) Advance(distance float64) (dx, dy float64) {
	d := distance * b.speed
	return math.Cos(b.angle) * d, -math.Sin(b.angle) * d
}

// MoveForward moves along the heading one axis at a time. Each axis step is
// undone if it leaves the body colliding, so a blocked body can still slide
// along the free axis.
func (b *Body) MoveForward(distance float64, c Collider) {
	dx, dy := b.Advance(distance)

	b.x += dx
	if c.Colliding(b) {
		b.x -= dx
	}

	b.y += dy
	if c.Colliding(b) {
		b.y -= dy
	}
}
