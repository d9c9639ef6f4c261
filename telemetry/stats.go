package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds one species' aggregated statistics for a stats window.
type WindowStats struct {
	WindowStartTick int    `csv:"-"`
	WindowEndTick   int    `csv:"window_end"`
	Species         int64  `csv:"species"`
	Role            string `csv:"role"`

	// Population at window end
	Live int `csv:"live"`
	Dead int `csv:"dead"`

	// Events during the window
	Deaths   int `csv:"deaths"`
	Rebirths int `csv:"rebirths"`
	Attacks  int `csv:"attacks"`
	Helps    int `csv:"helps"`

	// Live blob energy at window end
	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	// Live blob age at window end
	AgeMean float64 `csv:"age_mean"`
	AgeStd  float64 `csv:"age_std"`

	// Gene pool
	SummedFitness float64 `csv:"summed_fitness"`
	AvgFitness    float64 `csv:"avg_fitness"` // summed pool fitness / live count
	PoolSize      int     `csv:"pool_size"`
}

// Percentile returns the p-th percentile of a sorted slice with linear
// interpolation between ranks. p is clamped to [0, 1]; an empty slice gives 0.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return 0
	case p <= 0:
		return sorted[0]
	case p >= 1:
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	if lo+1 >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}

// ComputeEnergyStats returns the mean and the 10th, 50th and 90th percentiles.
func ComputeEnergyStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	mean = stat.Mean(values, nil)

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return mean, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// ComputeAgeStats returns the mean and sample standard deviation. Fewer
// than two values give a zero deviation.
func ComputeAgeStats(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", s.WindowEndTick),
		slog.Int64("species", s.Species),
		slog.String("role", s.Role),
		slog.Int("live", s.Live),
		slog.Int("dead", s.Dead),
		slog.Int("deaths", s.Deaths),
		slog.Int("rebirths", s.Rebirths),
		slog.Int("attacks", s.Attacks),
		slog.Int("helps", s.Helps),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("age_mean", s.AgeMean),
		slog.Float64("avg_fitness", s.AvgFitness),
		slog.Int("pool_size", s.PoolSize),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"species", s.Species,
		"role", s.Role,
		"live", s.Live,
		"dead", s.Dead,
		"deaths", s.Deaths,
		"rebirths", s.Rebirths,
		"attacks", s.Attacks,
		"helps", s.Helps,
		"energy_mean", s.EnergyMean,
		"energy_p10", s.EnergyP10,
		"energy_p50", s.EnergyP50,
		"energy_p90", s.EnergyP90,
		"age_mean", s.AgeMean,
		"age_std", s.AgeStd,
		"summed_fitness", s.SummedFitness,
		"avg_fitness", s.AvgFitness,
		"pool_size", s.PoolSize,
	)
}
