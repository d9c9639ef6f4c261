package neural

import (
	"errors"
	"testing"
)

func mustGenome(t *testing.T, genes ...float64) *Genome {
	t.Helper()
	g, err := NewGenome(genes)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestGenePoolRegisterAndGet(t *testing.T) {
	pool := NewGenePool(2)
	g1 := mustGenome(t, 0, 0, 0, 0, 1, 1)
	g2 := mustGenome(t, 0, 0, 0, 0, 2, 2)

	k1, err := pool.Register(g1)
	if err != nil {
		t.Fatal(err)
	}
	k2, _ := pool.Register(g2)

	if pool.Count() != 2 {
		t.Fatalf("Count = %d, want 2", pool.Count())
	}
	if got, _ := pool.Get(k1); got != g1 {
		t.Error("k1 resolved to the wrong genome")
	}
	if got, _ := pool.Get(k2); got != g2 {
		t.Error("k2 resolved to the wrong genome")
	}
	if pool.At(0) != g1 || pool.At(1) != g2 {
		t.Error("enumeration does not follow registration order")
	}
}

func TestGenePoolWeightMismatch(t *testing.T) {
	pool := NewGenePool(2)
	if _, err := pool.Register(mustGenome(t, 0, 0, 0, 0, 1)); !errors.Is(err, ErrWeightCountMismatch) {
		t.Errorf("Register: expected ErrWeightCountMismatch, got %v", err)
	}

	k, _ := pool.Register(mustGenome(t, 0, 0, 0, 0, 1, 1))
	if err := pool.Replace(k, mustGenome(t, 0, 0, 0, 0, 1, 1, 1)); !errors.Is(err, ErrWeightCountMismatch) {
		t.Errorf("Replace: expected ErrWeightCountMismatch, got %v", err)
	}
}

func TestGenePoolUnknownKey(t *testing.T) {
	a := NewGenePool(1)
	b := NewGenePool(1)
	ka, _ := a.Register(mustGenome(t, 0, 0, 0, 0, 1))
	b.Register(mustGenome(t, 0, 0, 0, 0, 2))

	if _, err := b.Get(ka); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("foreign key: expected ErrUnknownKey, got %v", err)
	}
	if err := b.Replace(ka, mustGenome(t, 0, 0, 0, 0, 3)); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("foreign replace: expected ErrUnknownKey, got %v", err)
	}
	if _, err := a.Get(Key{}); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("zero key: expected ErrUnknownKey, got %v", err)
	}
	if b.Contains(ka) {
		t.Error("pool b claims a key from pool a")
	}
}

func TestGenePoolReplaceKeepsKey(t *testing.T) {
	pool := NewGenePool(1)
	k, _ := pool.Register(mustGenome(t, 0, 0, 0, 0, 1))
	next := mustGenome(t, 0, 0, 0, 0, 9)

	if err := pool.Replace(k, next); err != nil {
		t.Fatal(err)
	}
	if got, _ := pool.Get(k); got != next {
		t.Error("Replace did not store the new genome")
	}
	if pool.Count() != 1 {
		t.Errorf("Count = %d after replace, want 1", pool.Count())
	}
	if err := pool.Replace(k, nil); err == nil {
		t.Error("expected error replacing with nil")
	}
}

func TestGenePoolSummedFitness(t *testing.T) {
	pool := NewGenePool(1)
	if pool.SummedFitness() != 0 {
		t.Error("empty pool must sum to 0")
	}
	for _, f := range []float64{1, 2.5, 0} {
		g := mustGenome(t, 0, 0, 0, 0, 1)
		g.SetFitness(f)
		pool.Register(g)
	}
	if got := pool.SummedFitness(); got != 3.5 {
		t.Errorf("SummedFitness = %v, want 3.5", got)
	}
}

func TestGenePoolClone(t *testing.T) {
	pool := NewGenePool(1)
	k, _ := pool.Register(mustGenome(t, 0, 0, 0, 0, 1))
	pool.Register(mustGenome(t, 0, 0, 0, 0, 2))

	clone := pool.Clone()
	if clone.Count() != 2 {
		t.Fatalf("clone Count = %d, want 2", clone.Count())
	}
	if clone.At(0) == pool.At(0) {
		t.Error("clone shares genome pointers")
	}
	if !equalGenes(clone.At(1).Genes(), pool.At(1).Genes()) {
		t.Error("clone genes differ")
	}

	clone.At(0).SetFitness(50)
	if pool.At(0).Fitness() == 50 {
		t.Error("clone mutation leaked into original")
	}
	if clone.Contains(k) {
		t.Error("original key resolves in the clone")
	}
}

func TestGenomeSlotSwap(t *testing.T) {
	pool := NewGenePool(1)
	first := mustGenome(t, 0, 0, 0, 0, 1)
	slot, err := NewGenomeSlot(pool, first)
	if err != nil {
		t.Fatal(err)
	}
	if slot.Current() != first {
		t.Fatal("slot must start on the registered genome")
	}

	first.SetFitness(42)
	second := mustGenome(t, 0, 0, 0, 0, 2)
	if err := slot.Swap(second); err != nil {
		t.Fatal(err)
	}

	if slot.Current() != second {
		t.Error("Current is not the swapped-in genome")
	}
	stored, _ := pool.Get(slot.Key())
	if stored != first {
		t.Error("pool must hold the displaced genome")
	}
	if stored.Fitness() != 42 {
		t.Errorf("pool genome fitness = %v, want 42", stored.Fitness())
	}

	pg, err := slot.PoolGenome()
	if err != nil {
		t.Fatal(err)
	}
	if pg == first {
		t.Error("PoolGenome must return a clone")
	}
	if pg.Fitness() != 42 || pg.Genes()[4] != 1 {
		t.Errorf("PoolGenome = %v fitness %v", pg.Genes(), pg.Fitness())
	}
}

func TestGenomeSlotSetPoolFitness(t *testing.T) {
	pool := NewGenePool(1)
	slot, err := NewGenomeSlot(pool, mustGenome(t, 0, 0, 0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if err := slot.Swap(mustGenome(t, 0, 0, 0, 0, 2)); err != nil {
		t.Fatal(err)
	}

	if err := slot.SetPoolFitness(17); err != nil {
		t.Fatal(err)
	}
	if got := pool.SummedFitness(); got != 17 {
		t.Errorf("SummedFitness = %v, want 17", got)
	}
	if slot.Current().Fitness() == 17 {
		t.Error("SetPoolFitness touched the current genome")
	}
	if err := slot.SetPoolFitness(-1); !errors.Is(err, ErrNegativeFitness) {
		t.Errorf("expected ErrNegativeFitness, got %v", err)
	}
}
