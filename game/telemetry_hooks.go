package game

import (
	"log/slog"

	"github.com/pthm-cable/smoothlife/telemetry"
)

// flushTelemetry closes the stats window when it is due.
func (g *Game) flushTelemetry(tick int) {
	if !g.collector.ShouldFlush(tick) {
		return
	}

	rows := g.collector.Flush(tick, g.sampleSpecies())
	perfStats := g.perf.Stats()

	if g.logStats {
		for _, row := range rows {
			row.LogStats()
		}
		perfStats.LogStats()
	}

	if err := g.output.WriteTelemetry(rows); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.output.WritePerf(perfStats, tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// sampleSpecies collects the per-species state the collector needs.
func (g *Game) sampleSpecies() []telemetry.SpeciesSample {
	samples := make([]telemetry.SpeciesSample, 0, len(g.world.species))
	for _, sp := range g.world.species {
		s := telemetry.SpeciesSample{
			ID:            sp.id,
			Prey:          sp.prey,
			Live:          len(sp.live),
			Dead:          len(sp.dead),
			Deaths:        sp.stats.Deaths,
			Rebirths:      sp.stats.Rebirths,
			Attacks:       sp.stats.Attacks,
			Helps:         sp.stats.Helps,
			Energies:      make([]float64, 0, len(sp.live)),
			Ages:          make([]float64, 0, len(sp.live)),
			SummedFitness: sp.SummedFitness(),
			AvgFitness:    sp.AverageFitness(),
			PoolSize:      sp.PoolCount(),
		}
		for _, b := range sp.live {
			s.Energies = append(s.Energies, b.energy)
			s.Ages = append(s.Ages, float64(b.age))
		}
		samples = append(samples, s)
	}
	return samples
}
