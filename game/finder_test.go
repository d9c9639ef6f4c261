package game

import "testing"

func TestNearestFilters(t *testing.T) {
	w := newTestWorld(t, smallConfig(2, 1), 1)
	prey, kin := w.Species(0).Blob(0), w.Species(0).Blob(1)
	pred := w.Species(1).Blob(0)

	place(prey, 100, 100)
	place(kin, 400, 100)
	place(pred, 100, 300)

	finder := w.Finder()
	if got := finder.ClosestFriend(prey); got != kin {
		t.Error("ClosestFriend did not return the only kin")
	}
	if got := finder.ClosestFoe(prey); got != pred {
		t.Error("ClosestFoe did not return the predator")
	}
	if got := finder.Nearest(prey, Any); got != pred {
		t.Error("Nearest(Any) should prefer the closer predator")
	}
	if got := finder.ClosestFriend(pred); got != nil {
		t.Error("a lone predator has no friend")
	}
}

func TestNearestUsesRadii(t *testing.T) {
	w := newTestWorld(t, smallConfig(3, 0), 2)
	sp := w.Species(0)
	self, a, b := sp.Blob(0), sp.Blob(1), sp.Blob(2)

	self.body.Reset(300, 300, 10, 0)
	a.body.Reset(325, 300, 5, 0) // 25² - 15² = 400
	b.body.Reset(300, 325, 5, 0) // same score
	if got := w.Finder().ClosestFriend(self); got != a {
		t.Error("tie must go to the first blob in live order")
	}

	// Farther center, larger body: 30.5² - 30² = 30.25.
	b.body.Reset(300, 330.5, 20, 0)
	if got := w.Finder().ClosestFriend(self); got != b {
		t.Error("score must subtract the squared radii sum")
	}
}

func TestNearestSkipsDead(t *testing.T) {
	w := newTestWorld(t, smallConfig(2, 1), 3)
	pred := w.Species(1).Blob(0)
	pred.SetEnergy(0)
	if err := w.Step(); err != nil {
		t.Fatal(err)
	}
	if got := w.Finder().ClosestFoe(w.Species(0).Blob(0)); got != nil {
		t.Error("dead predator still found as a foe")
	}
}

func TestAt(t *testing.T) {
	w := newTestWorld(t, smallConfig(1, 1), 4)
	prey := w.Species(0).Blob(0)
	pred := w.Species(1).Blob(0)
	place(prey, 100, 100)
	place(pred, 500, 400)

	finder := w.Finder()
	if got := finder.At(100+prey.body.Radius()/2, 100); got != prey {
		t.Error("At missed the prey")
	}
	if got := finder.At(500, 400); got != pred {
		t.Error("At missed the predator")
	}
	if got := finder.At(300, 250); got != nil {
		t.Error("At found a blob in empty space")
	}
}

func TestCollidingWith(t *testing.T) {
	w := newTestWorld(t, smallConfig(2, 0), 5)
	a, b := w.Species(0).Blob(0), w.Species(0).Blob(1)
	place(a, 200, 200)
	besides(a, b, 10)

	if w.Finder().CollidingWith(a.body) == b {
		t.Error("blobs with a gap reported colliding")
	}
	besides(a, b, -10)
	if w.Finder().CollidingWith(a.body) != b {
		t.Error("overlapping blobs not reported")
	}
	if !w.Finder().Colliding(b.body) {
		t.Error("Colliding disagrees with CollidingWith")
	}
}
