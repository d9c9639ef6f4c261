package neural

// GenomeSlot binds one blob to one gene pool entry. The blob's active genome
// lives in the slot; the pool keeps the genome it displaced last so the
// lineage stays breedable after the blob is reborn.
type GenomeSlot struct {
	pool    *GenePool
	key     Key
	current *Genome
}

// NewGenomeSlot registers g in pool and makes it the slot's current genome.
func NewGenomeSlot(pool *GenePool, g *Genome) (*GenomeSlot, error) {
	key, err := pool.Register(g)
	if err != nil {
		return nil, err
	}
	return &GenomeSlot{pool: pool, key: key, current: g}, nil
}

// Key returns the slot's pool key.
func (s *GenomeSlot) Key() Key { return s.key }

// Current returns the active genome.
func (s *GenomeSlot) Current() *Genome { return s.current }

// Swap pushes the current genome into the pool under the slot's key and
// adopts next as current.
func (s *GenomeSlot) Swap(next *Genome) error {
	if err := s.pool.Replace(s.key, s.current); err != nil {
		return err
	}
	s.current = next
	return nil
}

// PoolGenome returns a clone of what the pool holds under the slot's key.
func (s *GenomeSlot) PoolGenome() (*Genome, error) {
	g, err := s.pool.Get(s.key)
	if err != nil {
		return nil, err
	}
	return g.Clone(), nil
}

// SetPoolFitness overwrites the fitness recorded for the pool's genome.
func (s *GenomeSlot) SetPoolFitness(f float64) error {
	g, err := s.pool.Get(s.key)
	if err != nil {
		return err
	}
	return g.SetFitness(f)
}
