package game

import (
	"fmt"
	"slices"

	"github.com/pthm-cable/smoothlife/neural"
)

// Stats counts lifecycle events of one species since world creation.
type Stats struct {
	Deaths   int
	Rebirths int
	Attacks  int
	Helps    int
}

// Species owns the blobs of one group. Every blob is in exactly one of the
// live and dead lists; dead blobs are reborn first in, first out.
type Species struct {
	id     int64
	prey   bool
	layout []int

	live []*Blob
	dead []*Blob

	spawner       *Spawner
	ticksPerSpawn int
	lastSpawn     int

	stats Stats
}

// populate creates n blobs. Each is live before the next is placed so
// initial spawns never overlap.
func (s *Species) populate(n int) error {
	for i := 0; i < n; i++ {
		b, err := s.spawner.Create()
		if err != nil {
			return fmt.Errorf("species %d: creating blob %d: %w", s.id, i, err)
		}
		s.live = append(s.live, b)
	}
	return nil
}

func (s *Species) ID() int64      { return s.id }
func (s *Species) Prey() bool     { return s.prey }
func (s *Species) LiveCount() int { return len(s.live) }
func (s *Species) DeadCount() int { return len(s.dead) }
func (s *Species) Stats() Stats   { return s.stats }

// Blob returns the i-th live blob.
func (s *Species) Blob(i int) *Blob { return s.live[i] }

// AllBlobs returns live blobs followed by dead ones.
func (s *Species) AllBlobs() []*Blob {
	all := make([]*Blob, 0, len(s.live)+len(s.dead))
	all = append(all, s.live...)
	return append(all, s.dead...)
}

// Layout returns a copy of the species' neuron layout.
func (s *Species) Layout() []int { return slices.Clone(s.layout) }

// SummedFitness sums the fitness of every gene pool member, reborn lineages included.
func (s *Species) SummedFitness() float64 { return s.spawner.pool.SummedFitness() }

// AverageFitness divides the pool's summed fitness by the live count. The
// two counts differ, so this is a trend indicator rather than a per-blob mean.
func (s *Species) AverageFitness() float64 {
	return s.SummedFitness() / float64(len(s.live))
}

// PoolCount returns the gene pool size.
func (s *Species) PoolCount() int { return s.spawner.pool.Count() }

// CloneGenePool deep-copies the gene pool.
func (s *Species) CloneGenePool() *neural.GenePool { return s.spawner.pool.Clone() }

// markDead is phase one of a tick: clear attack flags, move blobs without
// energy to the dead queue, and rebirth one dead blob each ticksPerSpawn ticks.
func (s *Species) markDead() error {
	kept := s.live[:0]
	for _, b := range s.live {
		b.wasAttacked = false
		if b.energy <= 0 {
			s.dead = append(s.dead, b)
			s.stats.Deaths++
			continue
		}
		kept = append(kept, b)
	}
	clear(s.live[len(kept):])
	s.live = kept

	var err error
	if s.lastSpawn == s.ticksPerSpawn {
		s.lastSpawn = 0
		err = s.respawn()
	}
	// The countdown advances even when the rebirth failed.
	s.lastSpawn++
	return err
}

// respawn rebirths the oldest dead blob, if any.
func (s *Species) respawn() error {
	if len(s.dead) == 0 {
		return nil
	}

	b := s.dead[0]
	if err := s.spawner.Respawn(b); err != nil {
		return fmt.Errorf("species %d: respawn: %w", s.id, err)
	}
	s.dead = slices.Delete(s.dead, 0, 1)
	s.live = append(s.live, b)
	s.stats.Rebirths++
	return nil
}

// updateBlobs is phase two of a tick: every live blob acts.
func (s *Species) updateBlobs() error {
	for _, b := range s.live {
		if err := b.Update(); err != nil {
			return err
		}
	}
	return nil
}
