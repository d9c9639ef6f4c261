package game

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/smoothlife/neural"
)

// ErrNoSpawnLocation means no collision-free spot was found within the
// configured number of attempts.
var ErrNoSpawnLocation = errors.New("no collision-free spawn location")

// Spawner creates and recycles the blobs of one species.
type Spawner struct {
	pool      *neural.GenePool
	evolver   *neural.Evolver
	spec      blobSpec
	width     float64
	height    float64
	geneRange float64
	attempts  int
}

// Create builds a blob with a random genome registered in the pool and
// places it at a free spot.
func (s *Spawner) Create() (*Blob, error) {
	g, err := neural.NewRandomGenome(s.spec.rng, s.pool.BrainWeightCount(), s.geneRange)
	if err != nil {
		return nil, err
	}
	slot, err := neural.NewGenomeSlot(s.pool, g)
	if err != nil {
		return nil, err
	}

	b, err := newBlob(s.spec, slot)
	if err != nil {
		return nil, err
	}
	if err := s.ResetLocation(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Respawn breeds a new genome from the pool and rebirths b with it at a
// free spot. The spot is searched with the child's radius. On failure b's
// body is left as it was.
func (s *Spawner) Respawn(b *Blob) error {
	child, err := s.evolver.Breed(s.pool)
	if err != nil {
		return err
	}

	prev := *b.body
	b.body.Reset(prev.X(), prev.Y(), child.Radius(), prev.Angle())
	x, y, err := s.spawnLocation(b)
	if err != nil {
		// b stays dead with the body it died with.
		*b.body = prev
		return err
	}
	return b.Reset(x, y, child)
}

// ResetLocation moves b to a random free spot.
func (s *Spawner) ResetLocation(b *Blob) error {
	x, y, err := s.spawnLocation(b)
	if err != nil {
		return err
	}
	b.body.SetLocation(x, y)
	return nil
}

// spawnLocation tries random points until b's body collides with no live blob.
// The body is left at the last point tried.
func (s *Spawner) spawnLocation(b *Blob) (x, y float64, err error) {
	for i := 0; i < s.attempts; i++ {
		x = s.spec.rng.Float64() * s.width
		y = s.spec.rng.Float64() * s.height
		b.body.SetLocation(x, y)
		if !s.spec.finder.Colliding(b.body) {
			return x, y, nil
		}
	}
	return 0, 0, fmt.Errorf("%w after %d attempts (species %d)", ErrNoSpawnLocation, s.attempts, s.spec.speciesID)
}
