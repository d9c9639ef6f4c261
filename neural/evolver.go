package neural

import (
	"errors"
	"fmt"
)

// ErrMixedGenomeLengths means two pool members disagree on gene count,
// which only happens when a pool is corrupted.
var ErrMixedGenomeLengths = errors.New("gene pool has mixed genome lengths")

// Params holds the genetic algorithm rates.
type Params struct {
	MutationRate  float64 // Per-gene mutation probability
	MutationStep  float64 // Magnitude added or subtracted by a mutation
	CrossoverRate float64 // Probability that a child mixes both parents
}

// DefaultParams returns the classic rates.
func DefaultParams() Params {
	return Params{MutationRate: 0.1, MutationStep: 0.1, CrossoverRate: 0.7}
}

// Evolver breeds new genomes from a gene pool by roulette selection,
// single-split crossover and step mutation.
type Evolver struct {
	rng    Rand
	params Params
}

// NewEvolver creates an evolver drawing from rng.
func NewEvolver(rng Rand, params Params) *Evolver {
	return &Evolver{rng: rng, params: params}
}

// Params returns the evolver's rates.
func (e *Evolver) Params() Params { return e.params }

// Breed selects two parents from pool and returns their mutated child
// with the default fitness.
func (e *Evolver) Breed(pool *GenePool) (*Genome, error) {
	total := pool.SummedFitness()
	a, err := e.Select(pool, total)
	if err != nil {
		return nil, err
	}
	b, err := e.Select(pool, total)
	if err != nil {
		return nil, err
	}

	child, err := e.Crossover(a.genes, b.genes)
	if err != nil {
		return nil, err
	}
	e.Mutate(child)
	return &Genome{genes: child, fitness: 1}, nil
}

// Select picks a member with probability proportional to its fitness.
// When the draw is never reached (zero or rounding-short totals) the last
// member is returned.
func (e *Evolver) Select(pool *GenePool, totalFitness float64) (*Genome, error) {
	n := pool.Count()
	if n == 0 {
		return nil, ErrEmptyPool
	}

	target := e.rng.Float64() * totalFitness
	summed := 0.0
	for i := 0; i < n; i++ {
		g := pool.At(i)
		summed += g.Fitness()
		if summed >= target {
			return g, nil
		}
	}
	return pool.At(n - 1), nil
}

// Crossover returns a new gene vector. With probability 1-CrossoverRate it is a
// copy of a; otherwise a random split index is drawn and a coin decides whether
// b supplies [split, len) or [0, split].
func (e *Evolver) Crossover(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrMixedGenomeLengths, len(a), len(b))
	}

	child := append([]float64(nil), a...)
	if e.rng.Float64() >= e.params.CrossoverRate {
		return child, nil
	}

	split := e.rng.Intn(len(child))
	start, end := split, len(child)
	if e.rng.Float64() >= 0.5 {
		start, end = 0, split+1
	}
	copy(child[start:end], b[start:end])
	return child, nil
}

// Mutate nudges each gene by ±MutationStep with probability MutationRate.
func (e *Evolver) Mutate(genes []float64) {
	for i := range genes {
		if e.rng.Float64() < e.params.MutationRate {
			if e.rng.Float64() < 0.5 {
				genes[i] -= e.params.MutationStep
			} else {
				genes[i] += e.params.MutationStep
			}
		}
	}
}
