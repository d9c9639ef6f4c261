package game

import (
	"math"

	"github.com/pthm-cable/smoothlife/components"
)

// Filter restricts a Nearest query by species.
type Filter uint8

const (
	Any   Filter = iota // every species
	Same                // the querying blob's species
	Other               // every species except the querying blob's
)

// Finder answers proximity and collision queries over the live blobs of
// every species. Enumeration is species order, then live order, so ties
// go to the first blob encountered.
type Finder struct {
	world *World
}

// CollidingWith returns the first live blob whose body collides with body,
// skipping body itself, or nil.
func (f *Finder) CollidingWith(body *components.Body) *Blob {
	for _, sp := range f.world.species {
		for _, b := range sp.live {
			if b.body == body {
				continue
			}
			if body.Colliding(b.body) {
				return b
			}
		}
	}
	return nil
}

// Colliding reports whether body collides with any live blob.
func (f *Finder) Colliding(body *components.Body) bool {
	return f.CollidingWith(body) != nil
}

// Nearest returns the live blob, other than blob, with the smallest
// squared center distance minus squared radii sum, or nil.
func (f *Finder) Nearest(blob *Blob, filter Filter) *Blob {
	var closest *Blob
	closestDist := math.MaxFloat64

	for _, sp := range f.world.species {
		if filter == Same && sp.id != blob.speciesID {
			continue
		}
		if filter == Other && sp.id == blob.speciesID {
			continue
		}

		for _, b := range sp.live {
			if b == blob {
				continue
			}
			radii := b.body.Radius() + blob.body.Radius()
			d := blob.body.SquaredDistance(b.body.X(), b.body.Y()) - radii*radii
			if d < closestDist {
				closestDist = d
				closest = b
			}
		}
	}
	return closest
}

// ClosestFriend returns the nearest live blob of the same species.
func (f *Finder) ClosestFriend(blob *Blob) *Blob { return f.Nearest(blob, Same) }

// ClosestFoe returns the nearest live blob of another species.
func (f *Finder) ClosestFoe(blob *Blob) *Blob { return f.Nearest(blob, Other) }

// At returns the first live blob whose body contains (x, y), or nil.
func (f *Finder) At(x, y float64) *Blob {
	for _, sp := range f.world.species {
		for _, b := range sp.live {
			r := b.body.Radius()
			if b.body.SquaredDistance(x, y) <= r*r {
				return b
			}
		}
	}
	return nil
}
