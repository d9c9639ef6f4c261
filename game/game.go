package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/smoothlife/config"
	"github.com/pthm-cable/smoothlife/telemetry"
)

// Options configures a Game beyond the simulation config.
type Options struct {
	Seed           int64
	LogStats       bool   // log every telemetry window and perf summary
	SnapshotDir    string // periodic JSON snapshots (empty = off)
	OutputDir      string // CSV telemetry and config copy (empty = off)
	ArchivePath    string // SQLite snapshot archive (empty = off)
	StepsPerUpdate int

	// RestorePath loads the world from a snapshot file. When RestoreLatest
	// is set instead, the newest archived snapshot is used if there is one.
	RestorePath   string
	RestoreLatest bool
}

// Game drives a World: it steps it, times the phases, flushes telemetry
// windows, logs fitness reports and writes snapshots. It never draws.
type Game struct {
	cfg   *config.Config
	world *World
	seed  int64

	stepsPerUpdate int
	logStats       bool
	snapshotDir    string

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	archive   *telemetry.Archive
}

// NewGame builds the world, either fresh from cfg or restored from a
// snapshot, and opens the configured outputs.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	g := &Game{
		cfg:            cfg,
		seed:           opts.Seed,
		stepsPerUpdate: max(opts.StepsPerUpdate, 1),
		logStats:       opts.LogStats,
		snapshotDir:    opts.SnapshotDir,
		collector:      telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
	}

	ctx := context.Background()
	if opts.ArchivePath != "" {
		archive, err := telemetry.OpenArchive(ctx, opts.ArchivePath)
		if err != nil {
			return nil, err
		}
		g.archive = archive
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	snap, err := g.restoreSource(ctx, opts)
	if err != nil {
		g.Unload()
		return nil, err
	}
	if snap != nil {
		g.world, err = NewWorldFromSnapshot(snap, cfg, rng)
	} else {
		g.world, err = NewWorld(cfg, rng)
	}
	if err != nil {
		g.Unload()
		return nil, err
	}
	g.collector.Restart(g.world.Ticks())

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		g.Unload()
		return nil, err
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	slog.Info("world ready",
		"seed", opts.Seed,
		"tick", g.world.Ticks(),
		"species", g.world.SpeciesCount(),
		"restored", snap != nil,
	)
	return g, nil
}

// restoreSource returns the snapshot to rebuild from, or nil for a fresh world.
func (g *Game) restoreSource(ctx context.Context, opts Options) (*telemetry.Snapshot, error) {
	switch {
	case opts.RestorePath != "":
		snap, err := telemetry.LoadSnapshot(opts.RestorePath)
		if err != nil {
			return nil, fmt.Errorf("restoring %s: %w", opts.RestorePath, err)
		}
		return snap, nil
	case opts.RestoreLatest && g.archive != nil:
		snap, ok, err := g.archive.Latest(ctx)
		if err != nil {
			return nil, fmt.Errorf("restoring from archive: %w", err)
		}
		if !ok {
			slog.Info("archive is empty, starting fresh", "path", g.archive.Path())
			return nil, nil
		}
		return snap, nil
	}
	return nil, nil
}

// UpdateHeadless advances the configured number of steps.
func (g *Game) UpdateHeadless() error {
	return g.Advance(g.stepsPerUpdate)
}

// Advance runs n ticks and stops at the first error.
func (g *Game) Advance(n int) error {
	for i := 0; i < n; i++ {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) step() error {
	g.perf.StartTick()
	if err := g.world.StepTimed(g.perf.StartPhase); err != nil {
		return fmt.Errorf("tick %d: %w", g.world.Ticks(), err)
	}

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	tick := g.world.Ticks()
	g.flushTelemetry(tick)
	if every := g.cfg.Telemetry.FitnessReportEvery; every > 0 && tick%every == 0 {
		g.reportFitness(tick)
	}
	if every := g.cfg.Telemetry.SnapshotEvery; every > 0 && tick%every == 0 {
		if err := g.SaveSnapshot(); err != nil {
			slog.Error("failed to save snapshot", "tick", tick, "error", err)
		}
	}
	g.perf.EndTick()
	return nil
}

// reportFitness logs every species' average fitness. The average is left
// out while a species has no live blobs, since it is not a number then.
func (g *Game) reportFitness(tick int) {
	for i := 0; i < g.world.SpeciesCount(); i++ {
		sp := g.world.Species(i)
		attrs := []any{
			"tick", tick,
			"species", sp.ID(),
			"prey", sp.Prey(),
			"live", sp.LiveCount(),
			"summed_fitness", sp.SummedFitness(),
		}
		if sp.LiveCount() > 0 {
			attrs = append(attrs, "average_fitness", sp.AverageFitness())
		}
		slog.Info("fitness report", attrs...)
	}
}

// SaveSnapshot writes the current world to the snapshot directory and the
// archive, whichever are configured.
func (g *Game) SaveSnapshot() error {
	if g.snapshotDir == "" && g.archive == nil {
		return nil
	}

	snap, err := SerializeWorld(g.world, g.world.Ticks())
	if err != nil {
		return err
	}

	var errs []error
	if g.snapshotDir != "" {
		path, err := telemetry.SaveSnapshot(snap, g.snapshotDir)
		if err != nil {
			errs = append(errs, err)
		} else {
			slog.Info("snapshot saved", "path", path, "tick", snap.Tick)
		}
	}
	if g.archive != nil {
		if err := g.archive.Save(context.Background(), snap); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordFrame marks a rendered frame for the FPS readout.
func (g *Game) RecordFrame() { g.perf.RecordFrame() }

// PerfStats returns the rolling tick timings.
func (g *Game) PerfStats() telemetry.PerfStats { return g.perf.Stats() }

// Tick returns the number of completed world steps.
func (g *Game) Tick() int { return g.world.Ticks() }

// World returns the simulated world.
func (g *Game) World() *World { return g.world }

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config { return g.cfg }

// Seed returns the RNG seed.
func (g *Game) Seed() int64 { return g.seed }

func (g *Game) StepsPerUpdate() int { return g.stepsPerUpdate }

// Unload closes the telemetry outputs and the archive.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	if g.archive != nil {
		if err := g.archive.Close(); err != nil {
			slog.Error("failed to close archive", "error", err)
		}
	}
}
