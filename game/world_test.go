package game

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/smoothlife/config"
)

func TestNewDefaultWorld(t *testing.T) {
	w, err := NewDefaultWorld(rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if w.SpeciesCount() != 2 {
		t.Fatalf("SpeciesCount = %d, want 2", w.SpeciesCount())
	}
	if w.Width() != 800 || w.Height() != 600 {
		t.Errorf("size = %vx%v, want 800x600", w.Width(), w.Height())
	}

	for i := 0; i < w.SpeciesCount(); i++ {
		sp := w.Species(i)
		if sp.LiveCount() != 20 || sp.DeadCount() != 0 {
			t.Errorf("species %d: live %d dead %d", sp.ID(), sp.LiveCount(), sp.DeadCount())
		}
		if sp.PoolCount() != 20 {
			t.Errorf("species %d: pool %d, want 20", sp.ID(), sp.PoolCount())
		}
		if sp.SummedFitness() != 0 {
			t.Errorf("species %d: fresh pool fitness %v", sp.ID(), sp.SummedFitness())
		}
	}
	if !w.Species(0).Prey() || w.Species(1).Prey() {
		t.Error("species 0 must be prey and species 1 predators")
	}
}

func TestInitialSpawnsDoNotOverlap(t *testing.T) {
	w := newTestWorld(t, smallConfig(30, 30), 7)
	for i := 0; i < w.SpeciesCount(); i++ {
		sp := w.Species(i)
		for j := 0; j < sp.LiveCount(); j++ {
			b := sp.Blob(j)
			if other := w.Finder().CollidingWith(b.body); other != nil {
				t.Fatalf("species %d blob %d overlaps a blob of species %d", sp.ID(), j, other.SpeciesID())
			}
			x, y := b.body.X(), b.body.Y()
			if x < 0 || x >= w.Width() || y < 0 || y >= w.Height() {
				t.Errorf("spawned outside the world at (%v, %v)", x, y)
			}
		}
	}
}

func TestSpawnGivesUp(t *testing.T) {
	cfg := smallConfig(0, 0)
	cfg.World.Width = 10
	cfg.World.Height = 10
	cfg.Species[0].Initial = 5
	cfg.Population.SpawnAttempts = 3

	_, err := NewWorld(cfg, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrNoSpawnLocation) {
		t.Fatalf("expected ErrNoSpawnLocation, got %v", err)
	}
}

func TestNewWorldRejectsInvalidConfig(t *testing.T) {
	cfg := smallConfig(1, 1)
	cfg.Population.TicksPerSpawn = 0
	if _, err := NewWorld(cfg, rand.New(rand.NewSource(1))); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestStepCountsTicksAndAges(t *testing.T) {
	w := newTestWorld(t, smallConfig(3, 0), 2)
	for i := 0; i < 5; i++ {
		if err := w.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if w.Ticks() != 5 {
		t.Errorf("Ticks = %d, want 5", w.Ticks())
	}

	b := w.Species(0).Blob(0)
	if b.Age() != 6 {
		t.Errorf("Age = %d, want 6 (born at 1)", b.Age())
	}
	// Without predators prey can only earn the living cost back.
	if e := b.Energy(); e > 1000 || e < 995 {
		t.Errorf("Energy = %v, want within [995, 1000]", e)
	}
}

func TestStepTimedReportsPhases(t *testing.T) {
	w := newTestWorld(t, smallConfig(1, 1), 3)
	var phases []string
	if err := w.StepTimed(func(p string) { phases = append(phases, p) }); err != nil {
		t.Fatal(err)
	}
	if len(phases) != 2 || phases[0] != "mark_dead" || phases[1] != "act" {
		t.Errorf("phases = %v", phases)
	}
}

func TestDeadBlobIsRebornFromPool(t *testing.T) {
	cfg := smallConfig(3, 0)
	cfg.Species = cfg.Species[:1]
	cfg.Population.TicksPerSpawn = 2
	w := newTestWorld(t, cfg, 4)
	sp := w.Species(0)

	victim := sp.Blob(1)
	victim.SetEnergy(0)
	deathAge := victim.Age()
	pose := victim.Body()

	if err := w.Step(); err != nil {
		t.Fatal(err)
	}
	if sp.LiveCount() != 2 || sp.DeadCount() != 1 {
		t.Fatalf("after death: live %d dead %d", sp.LiveCount(), sp.DeadCount())
	}
	if victim.Alive() {
		t.Error("dead blob reports alive")
	}

	// A blob marked dead in phase one does not act in phase two.
	if victim.Age() != deathAge {
		t.Errorf("dead blob aged %d -> %d", deathAge, victim.Age())
	}
	if victim.Energy() != 0 {
		t.Errorf("dead blob paid living cost: energy %v", victim.Energy())
	}
	if after := victim.Body(); after != pose {
		t.Errorf("dead blob moved: (%v,%v,%v) -> (%v,%v,%v)",
			pose.X(), pose.Y(), pose.Angle(), after.X(), after.Y(), after.Angle())
	}
	if len(victim.Actions()) != 0 {
		t.Errorf("dead blob acted: %v", victim.Actions())
	}

	// Rebirth fires when the spawn counter reaches ticks_per_spawn.
	for sp.DeadCount() > 0 {
		if err := w.Step(); err != nil {
			t.Fatal(err)
		}
		if w.Ticks() > 10 {
			t.Fatal("dead blob was never reborn")
		}
	}

	if sp.LiveCount() != 3 || sp.PoolCount() != 3 {
		t.Errorf("after rebirth: live %d pool %d", sp.LiveCount(), sp.PoolCount())
	}
	if sp.Blob(2) != victim {
		t.Error("reborn blob must join the end of the live list")
	}
	if victim.Energy() != cfg.Blob.InitialEnergy-cfg.Blob.LivingCost && victim.Energy() != cfg.Blob.InitialEnergy {
		t.Errorf("reborn energy = %v", victim.Energy())
	}
	if victim.Age() != 2 {
		t.Errorf("reborn age after one update = %d, want 2", victim.Age())
	}
	if got := sp.Stats(); got.Deaths != 1 || got.Rebirths != 1 {
		t.Errorf("stats = %+v", got)
	}
	if sp.SummedFitness() < float64(deathAge) {
		t.Errorf("pool fitness %v does not include the death age %d", sp.SummedFitness(), deathAge)
	}
}

func TestFailedRespawnKeepsBlobDead(t *testing.T) {
	cfg := smallConfig(3, 0)
	cfg.Species = cfg.Species[:1]
	cfg.Population.TicksPerSpawn = 2
	w := newTestWorld(t, cfg, 8)
	sp := w.Species(0)

	victim := sp.Blob(0)
	victim.SetEnergy(0)
	for i := 0; i < 2; i++ {
		if err := w.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if sp.DeadCount() != 1 || sp.lastSpawn != 2 {
		t.Fatalf("dead %d lastSpawn %d before the rebirth tick", sp.DeadCount(), sp.lastSpawn)
	}

	sp.spawner.attempts = 0
	pose := victim.Body()
	if err := w.Step(); !errors.Is(err, ErrNoSpawnLocation) {
		t.Fatalf("expected ErrNoSpawnLocation, got %v", err)
	}
	if sp.DeadCount() != 1 || sp.LiveCount() != 2 {
		t.Errorf("failed rebirth: live %d dead %d", sp.LiveCount(), sp.DeadCount())
	}
	if after := victim.Body(); after != pose {
		t.Errorf("failed rebirth changed the body: %+v -> %+v", pose, after)
	}
	if sp.lastSpawn != 1 {
		t.Errorf("lastSpawn = %d after a failed rebirth, want 1", sp.lastSpawn)
	}

	// The next attempt comes a full period later.
	sp.spawner.attempts = cfg.Population.SpawnAttempts
	for i := 0; i < 2; i++ {
		if err := w.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if sp.DeadCount() != 0 || sp.LiveCount() != 3 {
		t.Errorf("after retry: live %d dead %d", sp.LiveCount(), sp.DeadCount())
	}
}

func TestAverageFitnessIsLiteral(t *testing.T) {
	cfg := smallConfig(2, 0)
	cfg.Species = cfg.Species[:1]
	w := newTestWorld(t, cfg, 5)
	sp := w.Species(0)

	for i := 0; i < sp.LiveCount(); i++ {
		sp.Blob(i).SetEnergy(0)
	}
	if err := w.Step(); err != nil {
		t.Fatal(err)
	}
	if sp.LiveCount() != 0 {
		t.Fatalf("live = %d, want 0", sp.LiveCount())
	}
	if avg := sp.AverageFitness(); !math.IsNaN(avg) && !math.IsInf(avg, 1) {
		t.Errorf("AverageFitness with no live blobs = %v, want NaN or +Inf", avg)
	}
}

func TestLongRun(t *testing.T) {
	if testing.Short() {
		t.Skip("100000 ticks")
	}
	w, err := NewDefaultWorld(rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	for w.Ticks() < 100000 {
		if err := w.Step(); err != nil {
			t.Fatalf("tick %d: %v", w.Ticks(), err)
		}
	}

	for i := 0; i < w.SpeciesCount(); i++ {
		sp := w.Species(i)
		f := sp.SummedFitness()
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			t.Errorf("species %d summed fitness = %v", sp.ID(), f)
		}
		if sp.LiveCount()+sp.DeadCount() != 20 {
			t.Errorf("species %d lost blobs: %d live + %d dead", sp.ID(), sp.LiveCount(), sp.DeadCount())
		}
		if sp.PoolCount() != 20 {
			t.Errorf("species %d pool size %d", sp.ID(), sp.PoolCount())
		}
	}
}

func BenchmarkStep(b *testing.B) {
	w := newTestWorld(b, config.Default(), 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := w.Step(); err != nil {
			b.Fatal(err)
		}
	}
}
