package neural

import (
	"errors"
	"math/rand"
	"testing"
)

// scriptedRand replays fixed draws. Once a script runs out it returns the
// fallback values, which are chosen so nothing further mutates.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (s *scriptedRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.99
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedRand) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func equalGenes(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCrossoverRateZeroCopiesParentA(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{6, 7, 8, 9, 10}
	e := NewEvolver(&scriptedRand{floats: []float64{0}}, Params{CrossoverRate: 0})

	child, err := e.Crossover(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !equalGenes(child, a) {
		t.Errorf("child = %v, want copy of A %v", child, a)
	}
	child[0] = 99
	if a[0] == 99 {
		t.Error("child shares storage with parent A")
	}
}

func TestCrossoverBranches(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{6, 7, 8, 9, 10}

	tests := []struct {
		name  string
		split int
		coin  float64
		want  []float64
	}{
		{"split zero tail is all of B", 0, 0.1, []float64{6, 7, 8, 9, 10}},
		{"tail from B", 3, 0.1, []float64{1, 2, 3, 9, 10}},
		{"head from B", 2, 0.9, []float64{6, 7, 8, 4, 5}},
		{"head at last index is all of B", 4, 0.9, []float64{6, 7, 8, 9, 10}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rng := &scriptedRand{floats: []float64{0, tc.coin}, ints: []int{tc.split}}
			e := NewEvolver(rng, Params{CrossoverRate: 1})
			child, err := e.Crossover(a, b)
			if err != nil {
				t.Fatal(err)
			}
			if !equalGenes(child, tc.want) {
				t.Errorf("child = %v, want %v", child, tc.want)
			}
		})
	}
}

func TestCrossoverMixedLengths(t *testing.T) {
	e := NewEvolver(rand.New(rand.NewSource(1)), DefaultParams())
	_, err := e.Crossover([]float64{1, 2, 3, 4, 5}, []float64{1, 2, 3, 4, 5, 6})
	if !errors.Is(err, ErrMixedGenomeLengths) {
		t.Errorf("expected ErrMixedGenomeLengths, got %v", err)
	}
}

func TestMutate(t *testing.T) {
	// gene 0: mutate, minus; gene 1: mutate, plus; gene 2: skip
	rng := &scriptedRand{floats: []float64{0, 0.2, 0, 0.7, 0.5}}
	e := NewEvolver(rng, Params{MutationRate: 0.1, MutationStep: 0.25})

	genes := []float64{1, 1, 1}
	e.Mutate(genes)

	want := []float64{0.75, 1.25, 1}
	if !equalGenes(genes, want) {
		t.Errorf("genes = %v, want %v", genes, want)
	}
}

func TestMutateRateZero(t *testing.T) {
	e := NewEvolver(&scriptedRand{floats: []float64{0, 0, 0}}, Params{MutationRate: 0, MutationStep: 1})
	genes := []float64{1, 2, 3}
	e.Mutate(genes)
	if !equalGenes(genes, []float64{1, 2, 3}) {
		t.Errorf("rate 0 changed genes: %v", genes)
	}
}

func poolWithFitness(t *testing.T, fitness ...float64) *GenePool {
	t.Helper()
	pool := NewGenePool(1)
	for i, f := range fitness {
		g, err := NewGenome([]float64{float64(i), 0, 0, 0, 0})
		if err != nil {
			t.Fatal(err)
		}
		if err := g.SetFitness(f); err != nil {
			t.Fatal(err)
		}
		if _, err := pool.Register(g); err != nil {
			t.Fatal(err)
		}
	}
	return pool
}

func TestSelectProportional(t *testing.T) {
	pool := poolWithFitness(t, 1, 3)

	tests := []struct {
		draw float64
		want int
	}{
		{0.0, 0},
		{0.2, 0},  // target 0.8
		{0.25, 0}, // target 1.0, summed >= target
		{0.3, 1},  // target 1.2
		{0.99, 1},
	}
	for _, tc := range tests {
		e := NewEvolver(&scriptedRand{floats: []float64{tc.draw}}, DefaultParams())
		g, err := e.Select(pool, pool.SummedFitness())
		if err != nil {
			t.Fatal(err)
		}
		if g != pool.At(tc.want) {
			t.Errorf("draw %v selected member %v, want %d", tc.draw, g.Genes()[0], tc.want)
		}
	}
}

func TestSelectZeroFitness(t *testing.T) {
	pool := poolWithFitness(t, 0, 0, 0)
	e := NewEvolver(&scriptedRand{floats: []float64{0.7}}, DefaultParams())

	g, err := e.Select(pool, pool.SummedFitness())
	if err != nil {
		t.Fatalf("zero-fitness pool must still select: %v", err)
	}
	// With a zero total the first cumulative sum already reaches the target.
	if g != pool.At(0) {
		t.Errorf("selected %v, want the first member", g.Genes())
	}
}

func TestSelectFallsBackToLast(t *testing.T) {
	pool := poolWithFitness(t, 1, 1, 1)
	e := NewEvolver(&scriptedRand{floats: []float64{0.99}}, DefaultParams())

	// An overstated total pushes the target past every member.
	g, err := e.Select(pool, 100)
	if err != nil {
		t.Fatal(err)
	}
	if g != pool.At(2) {
		t.Error("expected the last member as fallback")
	}
}

func TestSelectEmptyPool(t *testing.T) {
	e := NewEvolver(rand.New(rand.NewSource(1)), DefaultParams())
	if _, err := e.Select(NewGenePool(1), 0); !errors.Is(err, ErrEmptyPool) {
		t.Errorf("expected ErrEmptyPool, got %v", err)
	}
	if _, err := e.Breed(NewGenePool(1)); !errors.Is(err, ErrEmptyPool) {
		t.Errorf("Breed: expected ErrEmptyPool, got %v", err)
	}
}

func TestBreedPreservesLength(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pool := NewGenePool(684)
	for i := 0; i < 10; i++ {
		g, err := NewRandomGenome(rng, 684, 2)
		if err != nil {
			t.Fatal(err)
		}
		g.SetFitness(float64(i))
		if _, err := pool.Register(g); err != nil {
			t.Fatal(err)
		}
	}

	e := NewEvolver(rng, DefaultParams())
	for i := 0; i < 200; i++ {
		child, err := e.Breed(pool)
		if err != nil {
			t.Fatal(err)
		}
		if child.Len() != 688 {
			t.Fatalf("child length %d, want 688", child.Len())
		}
		if child.Fitness() != 1 {
			t.Fatalf("child fitness %v, want 1", child.Fitness())
		}
	}
}
