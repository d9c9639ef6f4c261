package main

import (
	"fmt"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/smoothlife/config"
	"github.com/pthm-cable/smoothlife/game"
)

// FitnessEvaluator runs headless worlds and scores a parameter vector.
type FitnessEvaluator struct {
	params     *ParamVector
	ticks      int
	seeds      []int64
	baseConfig *config.Config
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, ticks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		ticks:      ticks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	score float64
	err   error
}

// Evaluate returns the negative mean pool fitness over all seeds (lower is
// better). Pool fitness is the age a lineage reached before its last
// rebirth, so this rewards parameters that breed longer-lived blobs.
func (fe *FitnessEvaluator) Evaluate(x []float64) (float64, error) {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			score, err := fe.runSimulation(cfg, s)
			results[idx] = seedResult{score: score, err: err}
		}(i, seed)
	}
	wg.Wait()

	scores := make([]float64, 0, len(results))
	for i, r := range results {
		if r.err != nil {
			return 0, fmt.Errorf("seed %d: %w", fe.seeds[i], r.err)
		}
		scores = append(scores, r.score)
	}
	return -floats.Sum(scores) / float64(len(scores)), nil
}

// runSimulation steps one world and returns its mean pool fitness across
// species.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) (float64, error) {
	w, err := game.NewWorld(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return 0, err
	}
	for w.Ticks() < fe.ticks {
		if err := w.Step(); err != nil {
			return 0, err
		}
	}
	return meanPoolFitness(w), nil
}

// meanPoolFitness averages each species' summed fitness per pool entry.
func meanPoolFitness(w *game.World) float64 {
	if w.SpeciesCount() == 0 {
		return 0
	}
	var total float64
	for i := 0; i < w.SpeciesCount(); i++ {
		sp := w.Species(i)
		if sp.PoolCount() > 0 {
			total += sp.SummedFitness() / float64(sp.PoolCount())
		}
	}
	return total / float64(w.SpeciesCount())
}
