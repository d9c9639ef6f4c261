// Package game runs the blob world: species, blobs, spatial queries, the
// two-phase tick, snapshots and the interactive driver.
package game

import (
	"fmt"

	"github.com/pthm-cable/smoothlife/config"
	"github.com/pthm-cable/smoothlife/neural"
	"github.com/pthm-cable/smoothlife/systems"
	"github.com/pthm-cable/smoothlife/telemetry"
)

// World owns every species and the finder shared by their blobs.
// The width and height bound spawn placement only; movement is unclamped.
type World struct {
	width, height float64
	species       []*Species
	finder        *Finder
	ticks         int
}

// NewWorld builds a world from cfg and populates every species. All
// randomness is drawn from rng.
func NewWorld(cfg *config.Config, rng neural.Rand) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w := &World{
		width:  float64(cfg.World.Width),
		height: float64(cfg.World.Height),
	}
	w.finder = &Finder{world: w}

	params := neural.Params{
		MutationRate:  cfg.Evolution.MutationRate,
		MutationStep:  cfg.Evolution.MutationStep,
		CrossoverRate: cfg.Evolution.CrossoverRate,
	}
	sensing := systems.Sensing{
		RangeScale: cfg.Sensors.RangeScale,
		Threshold:  cfg.Sensors.ActionThreshold,
	}

	for _, sc := range cfg.Species {
		acts, err := parseActivations(sc.Activations)
		if err != nil {
			return nil, fmt.Errorf("species %d: %w", sc.ID, err)
		}

		sp := &Species{
			id:            sc.ID,
			prey:          sc.Prey,
			layout:        append([]int(nil), sc.Layout...),
			ticksPerSpawn: cfg.Population.TicksPerSpawn,
		}
		sp.spawner = &Spawner{
			pool:      neural.NewGenePool(neural.WeightCount(sc.Layout)),
			evolver:   neural.NewEvolver(rng, params),
			width:     w.width,
			height:    w.height,
			geneRange: cfg.Evolution.GeneRange,
			attempts:  cfg.Population.SpawnAttempts,
			spec: blobSpec{
				layout:      sp.layout,
				activations: acts,
				speciesID:   sc.ID,
				prey:        sc.Prey,
				finder:      w.finder,
				rng:         rng,
				cfg:         cfg.Blob,
				sensing:     sensing,
				stats:       &sp.stats,
			},
		}

		// The species joins the world first so its own blobs are
		// visible to the spawner's collision checks.
		w.species = append(w.species, sp)
		if err := sp.populate(sc.Initial); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func parseActivations(names []string) ([]neural.Activation, error) {
	acts := make([]neural.Activation, 0, len(names))
	for _, n := range names {
		a, err := neural.ParseActivation(n)
		if err != nil {
			return nil, err
		}
		acts = append(acts, a)
	}
	return acts, nil
}

// Step advances the world one tick: every species marks its dead and
// rebirths, then every live blob acts. The first error aborts the tick.
func (w *World) Step() error { return w.StepTimed(nil) }

// StepTimed is Step with a hook called as each phase starts, named by the
// telemetry phase constants.
func (w *World) StepTimed(onPhase func(phase string)) error {
	if onPhase == nil {
		onPhase = func(string) {}
	}

	onPhase(telemetry.PhaseMarkDead)
	if err := w.markDeadPhase(); err != nil {
		return err
	}
	onPhase(telemetry.PhaseAct)
	if err := w.actPhase(); err != nil {
		return err
	}
	w.ticks++
	return nil
}

func (w *World) markDeadPhase() error {
	for _, sp := range w.species {
		if err := sp.markDead(); err != nil {
			return err
		}
	}
	return nil
}

func (w *World) actPhase() error {
	for _, sp := range w.species {
		if err := sp.updateBlobs(); err != nil {
			return err
		}
	}
	return nil
}

// Ticks returns the number of completed steps.
func (w *World) Ticks() int { return w.ticks }

func (w *World) Width() float64  { return w.width }
func (w *World) Height() float64 { return w.height }

// SpeciesCount returns the number of species.
func (w *World) SpeciesCount() int { return len(w.species) }

// Species returns the i-th species in configuration order.
func (w *World) Species(i int) *Species { return w.species[i] }

// Finder returns the world's spatial query helper.
func (w *World) Finder() *Finder { return w.finder }

// NewDefaultWorld builds the stock two-species world from the embedded defaults.
func NewDefaultWorld(rng neural.Rand) (*World, error) {
	return NewWorld(config.Default(), rng)
}
