package neural

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// PhenotypeGenes is the number of leading genes that encode body traits
// (radius, red, green, blue). The brain weights follow them.
const PhenotypeGenes = 4

var (
	ErrInvalidRange    = errors.New("gene range must not be negative")
	ErrGenomeTooShort  = errors.New("genome too short")
	ErrNegativeFitness = errors.New("fitness must not be negative")
)

// Rand is the random source used by the genetic code. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Genome is a fixed-length gene vector plus a fitness score.
type Genome struct {
	genes   []float64
	fitness float64
}

// NewGenome creates a genome from a copy of genes with the default fitness of 1.
func NewGenome(genes []float64) (*Genome, error) {
	if len(genes) <= PhenotypeGenes {
		return nil, fmt.Errorf("%w: %d genes, need more than %d", ErrGenomeTooShort, len(genes), PhenotypeGenes)
	}
	return &Genome{genes: append([]float64(nil), genes...), fitness: 1}, nil
}

// NewRandomGenome creates a genome for a brain with brainWeights weights.
// Every gene is uniform in [-geneRange/2, geneRange/2).
func NewRandomGenome(rng Rand, brainWeights int, geneRange float64) (*Genome, error) {
	if geneRange < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, geneRange)
	}
	if brainWeights < 1 {
		return nil, fmt.Errorf("%w: %d brain weights", ErrGenomeTooShort, brainWeights)
	}
	genes := make([]float64, PhenotypeGenes+brainWeights)
	for i := range genes {
		genes[i] = rng.Float64()*geneRange - geneRange/2
	}
	return &Genome{genes: genes, fitness: 1}, nil
}

// Len returns the total gene count.
func (g *Genome) Len() int { return len(g.genes) }

// BrainWeightCount returns the number of genes reserved for brain weights.
func (g *Genome) BrainWeightCount() int { return len(g.genes) - PhenotypeGenes }

// Genes returns a copy of all genes.
func (g *Genome) Genes() []float64 { return append([]float64(nil), g.genes...) }

// BrainGenes returns a copy of the brain weight genes.
func (g *Genome) BrainGenes() []float64 {
	return append([]float64(nil), g.genes[PhenotypeGenes:]...)
}

// Fitness returns the genome's fitness.
func (g *Genome) Fitness() float64 { return g.fitness }

// SetFitness sets the fitness. Negative values are rejected.
func (g *Genome) SetFitness(f float64) error {
	if f < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeFitness, f)
	}
	g.fitness = f
	return nil
}

// Clone returns a deep copy, fitness included.
func (g *Genome) Clone() *Genome {
	return &Genome{genes: g.Genes(), fitness: g.fitness}
}

// Radius returns the body radius encoded by gene 0, in [8, 18).
func (g *Genome) Radius() float64 {
	return float64(normalizeRange(g.genes[0], 10) + 8)
}

// Color returns the body colour encoded by genes 1-3.
func (g *Genome) Color() color.RGBA {
	return color.RGBA{
		R: uint8(normalizeRange(g.genes[1], 120)),
		G: uint8(normalizeRange(g.genes[2], 200)),
		B: uint8(normalizeRange(g.genes[3], 220) + 35),
		A: 255,
	}
}

// normalizeRange folds a gene into [0, r).
func normalizeRange(gene float64, r int) int {
	fr := float64(r)
	return int(math.Abs(math.Mod(gene*fr, fr)))
}
