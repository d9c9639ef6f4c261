package game

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/smoothlife/config"
	"github.com/pthm-cable/smoothlife/neural"
	"github.com/pthm-cable/smoothlife/telemetry"
)

// ErrBlobCountMismatch means a rebuilt species does not have one blob per
// snapshot record.
var ErrBlobCountMismatch = errors.New("blob count does not match snapshot")

// SerializeWorld captures w as a snapshot document stamped with tick.
// Each species lists its live blobs first, then its dead ones.
func SerializeWorld(w *World, tick int) (*telemetry.Snapshot, error) {
	snap := &telemetry.Snapshot{
		Name:    telemetry.SnapshotName,
		Version: telemetry.SnapshotVersion,
		Tick:    tick,
		WorldInfo: telemetry.WorldInfo{
			WorldWidth:  int(w.width),
			WorldHeight: int(w.height),
		},
	}

	for _, sp := range w.species {
		blobs := sp.AllBlobs()
		snap.WorldInfo.Species = append(snap.WorldInfo.Species, telemetry.SpeciesInfo{
			SpecieID:      sp.id,
			IsPrey:        sp.prey,
			InitBlobCount: len(blobs),
			NeuronLayout:  telemetry.IntList(sp.Layout()),
		})

		state := telemetry.SpeciesState{Blobs: make([]telemetry.BlobRecord, 0, len(blobs))}
		for _, b := range blobs {
			old, err := b.PoolGenome()
			if err != nil {
				return nil, fmt.Errorf("species %d: %w", sp.id, err)
			}
			state.Blobs = append(state.Blobs, telemetry.BlobRecord{
				Chromo:    genomeRecord(b.slot.Current()),
				OldChromo: genomeRecord(old),
				X:         b.body.X(),
				Y:         b.body.Y(),
				Angle:     b.body.Angle(),
				Energy:    b.energy,
				Age:       b.age,
			})
		}
		snap.WorldState.Species = append(snap.WorldState.Species, state)
	}
	return snap, nil
}

func genomeRecord(g *neural.Genome) telemetry.GenomeRecord {
	return telemetry.GenomeRecord{Fitness: g.Fitness(), Genes: g.Genes()}
}

// NewWorldFromSnapshot rebuilds a world from snap. The world size and
// species come from the snapshot; everything else comes from base.
// Each blob is reset twice: first with its old genome, which seeds the
// pool entry, then with its recorded pose, metabolism and active genome.
func NewWorldFromSnapshot(snap *telemetry.Snapshot, base *config.Config, rng neural.Rand) (*World, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	cfg := base.Clone()
	cfg.World.Width = snap.WorldInfo.WorldWidth
	cfg.World.Height = snap.WorldInfo.WorldHeight
	cfg.Species = make([]config.SpeciesConfig, len(snap.WorldInfo.Species))
	for i, info := range snap.WorldInfo.Species {
		cfg.Species[i] = config.SpeciesConfig{
			ID:          info.SpecieID,
			Prey:        info.IsPrey,
			Initial:     info.InitBlobCount,
			Layout:      append([]int(nil), info.NeuronLayout...),
			Activations: baseActivations(base, info),
		}
	}

	w, err := NewWorld(cfg, rng)
	if err != nil {
		return nil, fmt.Errorf("rebuilding world: %w", err)
	}

	for i, sp := range w.species {
		records := snap.WorldState.Species[i].Blobs
		blobs := sp.AllBlobs()
		if len(blobs) != len(records) {
			return nil, fmt.Errorf("%w: species %d has %d blobs, snapshot %d",
				ErrBlobCountMismatch, sp.id, len(blobs), len(records))
		}

		weights := neural.WeightCount(sp.layout)
		for j, rec := range records {
			if err := restoreBlob(blobs[j], rec, weights); err != nil {
				return nil, fmt.Errorf("species %d blob %d: %w", sp.id, j, err)
			}
		}
	}

	w.ticks = snap.Tick
	return w, nil
}

// baseActivations reuses the activations base configures for the same
// species id when they fit the snapshot's layout.
func baseActivations(base *config.Config, info telemetry.SpeciesInfo) []string {
	idx, ok := base.Derived.SpeciesIndex[info.SpecieID]
	if !ok {
		return nil
	}
	acts := base.Species[idx].Activations
	if len(acts) != len(info.NeuronLayout)-1 {
		return nil
	}
	return append([]string(nil), acts...)
}

func restoreBlob(b *Blob, rec telemetry.BlobRecord, weights int) error {
	old, err := genomeFromRecord(rec.OldChromo, weights)
	if err != nil {
		return fmt.Errorf("oldChromo: %w", err)
	}
	current, err := genomeFromRecord(rec.Chromo, weights)
	if err != nil {
		return fmt.Errorf("chromo: %w", err)
	}

	if err := b.Reset(rec.X, rec.Y, old); err != nil {
		return err
	}
	if err := b.ResetFull(rec.X, rec.Y, rec.Angle, rec.Energy, rec.Age, current); err != nil {
		return err
	}
	// The second reset scored the old genome with the interim age.
	return b.slot.SetPoolFitness(rec.OldChromo.Fitness)
}

func genomeFromRecord(rec telemetry.GenomeRecord, weights int) (*neural.Genome, error) {
	g, err := neural.NewGenome(rec.Genes)
	if err != nil {
		return nil, err
	}
	if g.BrainWeightCount() != weights {
		return nil, fmt.Errorf("%w: %d brain genes, layout needs %d",
			telemetry.ErrBadSnapshot, g.BrainWeightCount(), weights)
	}
	if err := g.SetFitness(rec.Fitness); err != nil {
		return nil, err
	}
	return g, nil
}
