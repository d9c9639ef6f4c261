package neural

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrUnknownKey          = errors.New("key is not a member of this gene pool")
	ErrWeightCountMismatch = errors.New("genome brain weight count does not match gene pool")
	ErrEmptyPool           = errors.New("gene pool is empty")
)

// poolIDs hands out pool identities so keys from one pool never resolve in another.
var poolIDs atomic.Uint64

// Key identifies one gene pool entry. It is a generation-checked handle:
// the ECS entity gives index and generation, pool pins it to its owner.
// The zero Key is never valid.
type Key struct {
	pool   uint64
	entity ecs.Entity
}

// entry is the ECS component holding a pool member.
type entry struct {
	genome *Genome
}

// GenePool stores the genomes of one species. Entries live in an ECS arena and
// are addressed by Key; enumeration follows registration order.
type GenePool struct {
	id           uint64
	brainWeights int

	world   *ecs.World
	entries *ecs.Map1[entry]
	order   []ecs.Entity
}

// NewGenePool creates an empty pool whose genomes all carry brainWeights brain genes.
func NewGenePool(brainWeights int) *GenePool {
	world := ecs.NewWorld()
	return &GenePool{
		id:           poolIDs.Add(1),
		brainWeights: brainWeights,
		world:        world,
		entries:      ecs.NewMap1[entry](world),
	}
}

// BrainWeightCount returns the brain gene count shared by all members.
func (p *GenePool) BrainWeightCount() int { return p.brainWeights }

// Count returns the number of members.
func (p *GenePool) Count() int { return len(p.order) }

// Register adds a genome and returns its new key.
func (p *GenePool) Register(g *Genome) (Key, error) {
	if g.BrainWeightCount() != p.brainWeights {
		return Key{}, fmt.Errorf("%w: got %d, want %d", ErrWeightCountMismatch, g.BrainWeightCount(), p.brainWeights)
	}
	e := p.entries.NewEntity(&entry{genome: g})
	p.order = append(p.order, e)
	return Key{pool: p.id, entity: e}, nil
}

// Contains reports whether key resolves to a live entry of this pool.
func (p *GenePool) Contains(key Key) bool {
	return key.pool == p.id && p.world.Alive(key.entity)
}

// Get returns the genome stored under key. The result is shared with the pool.
func (p *GenePool) Get(key Key) (*Genome, error) {
	if !p.Contains(key) {
		return nil, ErrUnknownKey
	}
	return p.entries.Get(key.entity).genome, nil
}

// Replace stores g under key, keeping the key's identity.
func (p *GenePool) Replace(key Key, g *Genome) error {
	if g == nil {
		return errors.New("gene pool: nil genome")
	}
	if !p.Contains(key) {
		return ErrUnknownKey
	}
	if g.BrainWeightCount() != p.brainWeights {
		return fmt.Errorf("%w: got %d, want %d", ErrWeightCountMismatch, g.BrainWeightCount(), p.brainWeights)
	}
	p.entries.Get(key.entity).genome = g
	return nil
}

// At returns the i-th member in registration order.
func (p *GenePool) At(i int) *Genome {
	return p.entries.Get(p.order[i]).genome
}

// SummedFitness returns the sum of every member's fitness.
func (p *GenePool) SummedFitness() float64 {
	fit := make([]float64, len(p.order))
	for i := range p.order {
		fit[i] = p.At(i).Fitness()
	}
	return floats.Sum(fit)
}

// Clone deep-copies every member genome into a new pool. Keys of the original
// pool do not resolve in the clone.
func (p *GenePool) Clone() *GenePool {
	out := NewGenePool(p.brainWeights)
	for i := range p.order {
		e := out.entries.NewEntity(&entry{genome: p.At(i).Clone()})
		out.order = append(out.order, e)
	}
	return out
}
