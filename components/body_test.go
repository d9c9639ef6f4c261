package components

import (
	"math"
	"testing"
)

func bodyAt(x, y, r float64) *Body {
	b := NewBody()
	b.Reset(x, y, r, 0)
	return b
}

// wall collides with a fixed set of bodies.
type wall []*Body

func (w wall) Colliding(b *Body) bool {
	for _, o := range w {
		if o != b && b.Colliding(o) {
			return true
		}
	}
	return false
}

func TestWithinRange(t *testing.T) {
	tests := []struct {
		name   string
		a, b   *Body
		r      float64
		expect bool
	}{
		{"overlapping", bodyAt(0, 0, 5), bodyAt(6, 0, 5), 0, true},
		{"touching", bodyAt(0, 0, 5), bodyAt(10, 0, 5), 0, true},
		{"apart", bodyAt(0, 0, 5), bodyAt(11, 0, 5), 0, false},
		{"apart but in range", bodyAt(0, 0, 5), bodyAt(11, 0, 5), 7, true},
		// range adds in quadrature: 10² + 7² = 149 < 15²
		{"range is not additive", bodyAt(0, 0, 5), bodyAt(15, 0, 5), 7, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.WithinRange(tc.b, tc.r); got != tc.expect {
				t.Errorf("WithinRange = %v, want %v", got, tc.expect)
			}
		})
	}
}

func TestCollidingSymmetric(t *testing.T) {
	pairs := [][2]*Body{
		{bodyAt(0, 0, 8), bodyAt(10, 10, 9)},
		{bodyAt(0, 0, 8), bodyAt(30, 0, 9)},
		{bodyAt(-5, 3, 12), bodyAt(7, -2, 1)},
		{bodyAt(100, 100, 8), bodyAt(100, 117, 9)},
	}
	for i, p := range pairs {
		if p[0].Colliding(p[1]) != p[1].Colliding(p[0]) {
			t.Errorf("pair %d: collision is not symmetric", i)
		}
	}
}

func TestDistance(t *testing.T) {
	b := bodyAt(0, 0, 1)
	if got := b.SquaredDistance(3, 4); got != 25 {
		t.Errorf("SquaredDistance = %v, want 25", got)
	}
	if got := b.Distance(3, 4); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestAdvance(t *testing.T) {
	b := bodyAt(0, 0, 1)
	b.SetSpeed(2)

	dx, dy := b.Advance(0.3)
	if math.Abs(dx-0.6) > 1e-12 || dy != 0 {
		t.Errorf("heading 0: got (%v, %v), want (0.6, 0)", dx, dy)
	}

	b.SetAngle(math.Pi / 2)
	dx, dy = b.Advance(1)
	if math.Abs(dx) > 1e-12 || math.Abs(dy+2) > 1e-12 {
		t.Errorf("heading pi/2: got (%v, %v), want (0, -2)", dx, dy)
	}
}

func TestMoveForwardFree(t *testing.T) {
	b := bodyAt(0, 0, 5)
	b.SetAngle(math.Pi / 4)
	b.MoveForward(1, wall{})

	want := math.Sqrt2 / 2
	if math.Abs(b.X()-want) > 1e-12 || math.Abs(b.Y()+want) > 1e-12 {
		t.Errorf("position = (%v, %v), want (%v, %v)", b.X(), b.Y(), want, -want)
	}
}

func TestMoveForwardSlidesAlongBlocker(t *testing.T) {
	// Blocker directly to the right, exactly touching distance away.
	blocker := bodyAt(10.5, 0, 5)
	b := bodyAt(0, 0, 5)
	b.SetAngle(-math.Pi / 4) // right and down
	w := wall{blocker}

	b.MoveForward(1, w)

	if b.X() != 0 {
		t.Errorf("x should be reverted, got %v", b.X())
	}
	if b.Y() <= 0 {
		t.Errorf("y should advance downward, got %v", b.Y())
	}
	if w.Colliding(b) {
		t.Error("body ended colliding")
	}
}

func TestResetKeepsSpeed(t *testing.T) {
	b := NewBody()
	b.SetSpeed(0.5)
	b.Reset(1, 2, 3, 4)
	if b.X() != 1 || b.Y() != 2 || b.Radius() != 3 || b.Angle() != 4 {
		t.Errorf("Reset stored (%v,%v,%v,%v)", b.X(), b.Y(), b.Radius(), b.Angle())
	}
	if b.Speed() != 0.5 {
		t.Errorf("Speed = %v, want 0.5", b.Speed())
	}
	b.Turn(0.1)
	if math.Abs(b.Angle()-4.1) > 1e-12 {
		t.Errorf("Turn: angle = %v", b.Angle())
	}
}

func copyOf(b *Body) Body { return *b }

func TestQueriesOnCopy(t *testing.T) {
	b := bodyAt(3, 4, 1)
	b.SetSpeed(2)

	if copyOf(b).Speed() != 2 || copyOf(b).Radius() != 1 {
		t.Errorf("copy lost speed or radius")
	}
	if d := copyOf(b).Distance(0, 0); d != 5 {
		t.Errorf("Distance on copy = %v, want 5", d)
	}
	if !copyOf(b).Colliding(bodyAt(4, 4, 1)) {
		t.Error("copy should collide with an overlapping body")
	}
}
