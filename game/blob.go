package game

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"github.com/pthm-cable/smoothlife/components"
	"github.com/pthm-cable/smoothlife/config"
	"github.com/pthm-cable/smoothlife/neural"
	"github.com/pthm-cable/smoothlife/systems"
)

// Blob is one simulated organism. A dead blob is never destroyed; its
// species recycles it through Reset with a freshly bred genome.
type Blob struct {
	body  *components.Body
	brain *neural.Brain
	slot  *neural.GenomeSlot

	speciesID int64
	prey      bool

	finder  *Finder
	rng     neural.Rand
	cfg     config.BlobConfig
	sensing systems.Sensing
	stats   *Stats

	energy      float64
	age         int
	wasAttacked bool
	actions     []systems.Action
}

// blobSpec carries what every blob of a species shares.
type blobSpec struct {
	layout      []int
	activations []neural.Activation
	speciesID   int64
	prey        bool
	finder      *Finder
	rng         neural.Rand
	cfg         config.BlobConfig
	sensing     systems.Sensing
	stats       *Stats
}

// newBlob builds a blob bound to slot. The slot's genome is pushed to the
// pool with the blob's starting fitness and a clone becomes the active genome.
func newBlob(spec blobSpec, slot *neural.GenomeSlot) (*Blob, error) {
	brain, err := neural.NewBrain(spec.layout, spec.activations...)
	if err != nil {
		return nil, err
	}
	if err := systems.CheckBrain(brain); err != nil {
		return nil, err
	}

	b := &Blob{
		body:      components.NewBody(),
		brain:     brain,
		slot:      slot,
		speciesID: spec.speciesID,
		prey:      spec.prey,
		finder:    spec.finder,
		rng:       spec.rng,
		cfg:       spec.cfg,
		sensing:   spec.sensing,
		stats:     spec.stats,
		actions:   make([]systems.Action, 0, systems.OutputCount),
	}
	if spec.prey {
		b.body.SetSpeed(spec.cfg.PreySpeed)
	} else {
		b.body.SetSpeed(spec.cfg.PredatorSpeed)
	}

	if err := b.Reset(0, 0, slot.Current().Clone()); err != nil {
		return nil, err
	}
	return b, nil
}

// Body returns a copy of the blob's body.
func (b *Blob) Body() components.Body { return *b.body }

func (b *Blob) Energy() float64   { return b.energy }
func (b *Blob) Age() int          { return b.age }
func (b *Blob) Prey() bool        { return b.prey }
func (b *Blob) SpeciesID() int64  { return b.speciesID }
func (b *Blob) WasAttacked() bool { return b.wasAttacked }

// Alive reports whether the blob still has energy.
func (b *Blob) Alive() bool { return b.energy > 0 }

// Color returns the colour encoded by the active genome.
func (b *Blob) Color() color.RGBA { return b.slot.Current().Color() }

// Actions returns the actions chosen in the last update.
func (b *Blob) Actions() []systems.Action { return slices.Clone(b.actions) }

// HasAction reports whether a fired in the last update.
func (b *Blob) HasAction(a systems.Action) bool { return slices.Contains(b.actions, a) }

// CurrentGenome returns a clone of the active genome.
func (b *Blob) CurrentGenome() *neural.Genome { return b.slot.Current().Clone() }

// PoolGenome returns a clone of the genome the pool holds for this blob,
// the one displaced by the last reset.
func (b *Blob) PoolGenome() (*neural.Genome, error) { return b.slot.PoolGenome() }

// SetEnergy overrides the blob's energy.
func (b *Blob) SetEnergy(e float64) { b.energy = e }

// Reset rebirths the blob at (x, y) with a random heading, full energy and
// age 1.
func (b *Blob) Reset(x, y float64, g *neural.Genome) error {
	angle := b.rng.Float64() * 2 * math.Pi
	return b.ResetFull(x, y, angle, b.cfg.InitialEnergy, 1, g)
}

// ResetFull scores the outgoing genome with the blob's age, pushes it to the
// pool and adopts g with the given pose and metabolic state.
func (b *Blob) ResetFull(x, y, angle, energy float64, age int, g *neural.Genome) error {
	if err := b.slot.Current().SetFitness(float64(b.age)); err != nil {
		return err
	}

	b.age = age
	b.energy = energy

	if err := b.slot.Swap(g); err != nil {
		return err
	}

	b.actions = b.actions[:0]
	if err := b.brain.SetWeights(g.BrainGenes()); err != nil {
		return err
	}
	b.body.Reset(x, y, g.Radius(), angle)
	return nil
}

// Update runs one tick: age, metabolism, then sense and act.
func (b *Blob) Update() error {
	b.age++
	b.energy -= b.cfg.LivingCost
	return b.performActions()
}

func (b *Blob) performActions() error {
	b.actions = b.actions[:0]

	friend := b.finder.ClosestFriend(b)
	foe := b.finder.ClosestFoe(b)

	actions, err := systems.Stimulate(b.brain, b.actions, b.body, bodyOf(friend), bodyOf(foe), b.sensing)
	if err != nil {
		return fmt.Errorf("species %d: %w", b.speciesID, err)
	}
	b.actions = actions

	for _, a := range b.actions {
		switch a {
		case systems.TurnLeft:
			b.body.Turn(b.cfg.TurnStep)
		case systems.TurnRight:
			b.body.Turn(-b.cfg.TurnStep)
		case systems.MoveForward:
			b.body.MoveForward(b.cfg.MoveStep, b.finder)
		case systems.Special:
			if b.prey {
				b.groupHelp()
			} else {
				b.attack()
			}
		}
	}
	return nil
}

// attack drains the nearest foe in range and feeds the attacker.
func (b *Blob) attack() {
	victim := b.finder.ClosestFoe(b)
	if victim == nil || !b.body.WithinRange(victim.body, b.cfg.AttackRange) {
		return
	}
	victim.wasAttacked = true
	victim.energy -= b.cfg.AttackDamage
	b.energy += b.cfg.AttackDamage * b.cfg.AttackPayoff
	b.stats.Attacks++
}

// groupHelp refunds this tick's living cost when a friend is close.
func (b *Blob) groupHelp() {
	friend := b.finder.ClosestFriend(b)
	if friend == nil || !b.body.WithinRange(friend.body, b.cfg.GroupRange) {
		return
	}
	b.energy += b.cfg.LivingCost
	b.stats.Helps++
}

func bodyOf(b *Blob) *components.Body {
	if b == nil {
		return nil
	}
	return b.body
}

// Probe is a read-only view of what the blob senses and thinks right now.
type Probe struct {
	Layout  []int
	Weights []float64
	Layers  [][]float64 // input vector first, output vector last
}

// Probe senses the current neighbors and traces the brain without acting.
func (b *Blob) Probe() (Probe, error) {
	var in [systems.InputCount]float64
	systems.EncodeInputs(in[:], b.body, bodyOf(b.finder.ClosestFriend(b)), bodyOf(b.finder.ClosestFoe(b)), b.sensing.RangeScale)

	layers, err := b.brain.Trace(in[:])
	if err != nil {
		return Probe{}, err
	}
	return Probe{
		Layout:  b.brain.Layout(),
		Weights: b.brain.Weights(),
		Layers:  layers,
	}, nil
}
