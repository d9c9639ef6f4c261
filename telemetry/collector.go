package telemetry

// SpeciesSample is the state of one species at a flush. Event counts are
// cumulative since world creation; the collector turns them into window deltas.
type SpeciesSample struct {
	ID   int64
	Prey bool
	Live int
	Dead int

	Deaths   int
	Rebirths int
	Attacks  int
	Helps    int

	Energies []float64 // live blobs only
	Ages     []float64 // live blobs only

	SummedFitness float64
	AvgFitness    float64
	PoolSize      int
}

type eventCounts struct {
	deaths, rebirths, attacks, helps int
}

// Collector cuts the run into fixed windows of ticks and produces one
// WindowStats row per species per window.
type Collector struct {
	windowTicks     int
	windowStartTick int
	last            map[int64]eventCounts
}

// NewCollector creates a collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: windowTicks,
		last:        make(map[int64]eventCounts),
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces the window rows and starts the next window at currentTick.
func (c *Collector) Flush(currentTick int, samples []SpeciesSample) []WindowStats {
	rows := make([]WindowStats, 0, len(samples))
	for _, s := range samples {
		prev := c.last[s.ID]

		role := "predator"
		if s.Prey {
			role = "prey"
		}

		mean, p10, p50, p90 := ComputeEnergyStats(s.Energies)
		ageMean, ageStd := ComputeAgeStats(s.Ages)

		rows = append(rows, WindowStats{
			WindowStartTick: c.windowStartTick,
			WindowEndTick:   currentTick,
			Species:         s.ID,
			Role:            role,
			Live:            s.Live,
			Dead:            s.Dead,
			Deaths:          s.Deaths - prev.deaths,
			Rebirths:        s.Rebirths - prev.rebirths,
			Attacks:         s.Attacks - prev.attacks,
			Helps:           s.Helps - prev.helps,
			EnergyMean:      mean,
			EnergyP10:       p10,
			EnergyP50:       p50,
			EnergyP90:       p90,
			AgeMean:         ageMean,
			AgeStd:          ageStd,
			SummedFitness:   s.SummedFitness,
			AvgFitness:      s.AvgFitness,
			PoolSize:        s.PoolSize,
		})

		c.last[s.ID] = eventCounts{
			deaths:   s.Deaths,
			rebirths: s.Rebirths,
			attacks:  s.Attacks,
			helps:    s.Helps,
		}
	}

	c.windowStartTick = currentTick
	return rows
}

// Restart starts a fresh window at tick, keeping the event baselines.
// Used after a world is restored from a snapshot.
func (c *Collector) Restart(tick int) {
	c.windowStartTick = tick
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int {
	return c.windowTicks
}
