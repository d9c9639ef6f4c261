package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/smoothlife/config"
)

// smallConfig returns the defaults with the given prey and predator counts.
func smallConfig(prey, predators int) *config.Config {
	cfg := config.Default()
	cfg.Species[0].Initial = prey
	cfg.Species[1].Initial = predators
	return cfg
}

func newTestWorld(t testing.TB, cfg *config.Config, seed int64) *World {
	t.Helper()
	w, err := NewWorld(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatal(err)
	}
	return w
}

// place moves b so the centers are at (x, y).
func place(b *Blob, x, y float64) { b.body.SetLocation(x, y) }

// besides puts b to the right of anchor, with a gap chosen so their
// squared center distance is the squared radii sum plus extra.
func besides(anchor, b *Blob, extra float64) {
	radii := anchor.body.Radius() + b.body.Radius()
	d := math.Sqrt(radii*radii + extra)
	place(b, anchor.body.X()+d, anchor.body.Y())
}
