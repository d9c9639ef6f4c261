// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Species    []SpeciesConfig  `yaml:"species"`
	Blob       BlobConfig       `yaml:"blob"`
	Sensors    SensorsConfig    `yaml:"sensors"`
	Evolution  EvolutionConfig  `yaml:"evolution"`
	Population PopulationConfig `yaml:"population"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions.
// The bounds are only used for spawn placement; movement is unclamped.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SpeciesConfig describes one group of blobs.
type SpeciesConfig struct {
	ID          int64    `yaml:"id"`
	Prey        bool     `yaml:"prey"`
	Initial     int      `yaml:"initial"`     // Blobs spawned at world creation
	Layout      []int    `yaml:"layout"`      // Neurons per layer, input first, output last
	Activations []string `yaml:"activations"` // One per weighted layer; empty = threshold everywhere
}

// BlobConfig holds per-blob metabolism and action constants.
type BlobConfig struct {
	InitialEnergy float64 `yaml:"initial_energy"`
	LivingCost    float64 `yaml:"living_cost"`   // Energy drained every tick
	MoveStep      float64 `yaml:"move_step"`     // Distance per move action before the speed multiplier
	TurnStep      float64 `yaml:"turn_step"`     // Radians per turn action
	AttackDamage  float64 `yaml:"attack_damage"` // Energy removed from the victim
	AttackPayoff  float64 `yaml:"attack_payoff"` // Share of the damage gained by the attacker
	AttackRange   float64 `yaml:"attack_range"`
	GroupRange    float64 `yaml:"group_range"`
	PreySpeed     float64 `yaml:"prey_speed"`
	PredatorSpeed float64 `yaml:"predator_speed"`
}

// SensorsConfig holds brain input/output scaling.
type SensorsConfig struct {
	RangeScale      float64 `yaml:"range_scale"`      // Distance divisor for the neighbour distance input
	ActionThreshold float64 `yaml:"action_threshold"` // Output above this fires the action
}

// EvolutionConfig holds genetic algorithm parameters.
type EvolutionConfig struct {
	MutationRate  float64 `yaml:"mutation_rate"`
	MutationStep  float64 `yaml:"mutation_step"`
	CrossoverRate float64 `yaml:"crossover_rate"`
	GeneRange     float64 `yaml:"gene_range"` // Random genes are uniform in [-range/2, range/2)
}

// PopulationConfig holds rebirth parameters.
type PopulationConfig struct {
	TicksPerSpawn int `yaml:"ticks_per_spawn"`
	SpawnAttempts int `yaml:"spawn_attempts"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow        int `yaml:"stats_window"`         // Ticks per stats window
	FitnessReportEvery int `yaml:"fitness_report_every"` // Ticks between fitness log lines (0 = off)
	SnapshotEvery      int `yaml:"snapshot_every"`       // Ticks between snapshots (0 = off)
	PerfWindow         int `yaml:"perf_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW       float64       // World.Width as float64
	WorldH       float64       // World.Height as float64
	TotalInitial int           // Sum of all species' initial counts
	SpeciesIndex map[int64]int // species id -> index in Species
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Species = make([]SpeciesConfig, len(c.Species))
	for i, sp := range c.Species {
		sp.Layout = append([]int(nil), sp.Layout...)
		sp.Activations = append([]string(nil), sp.Activations...)
		out.Species[i] = sp
	}
	out.computeDerived()
	return &out
}

// Validate checks the configuration for values the simulation cannot run with.
func (c *Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("%w: world size %dx%d", ErrInvalidConfig, c.World.Width, c.World.Height)
	}
	if len(c.Species) == 0 {
		return fmt.Errorf("%w: no species configured", ErrInvalidConfig)
	}

	seen := make(map[int64]bool, len(c.Species))
	for _, sp := range c.Species {
		if seen[sp.ID] {
			return fmt.Errorf("%w: duplicate species id %d", ErrInvalidConfig, sp.ID)
		}
		seen[sp.ID] = true

		if sp.Initial < 0 {
			return fmt.Errorf("%w: species %d has negative initial count", ErrInvalidConfig, sp.ID)
		}
		if len(sp.Layout) < 2 {
			return fmt.Errorf("%w: species %d layout needs at least 2 layers", ErrInvalidConfig, sp.ID)
		}
		for _, n := range sp.Layout {
			if n < 1 {
				return fmt.Errorf("%w: species %d layout %v has a layer below 1", ErrInvalidConfig, sp.ID, sp.Layout)
			}
		}
		if len(sp.Activations) > 0 && len(sp.Activations) != len(sp.Layout)-1 {
			return fmt.Errorf("%w: species %d has %d activations for %d layers",
				ErrInvalidConfig, sp.ID, len(sp.Activations), len(sp.Layout)-1)
		}
		for _, a := range sp.Activations {
			if a != "threshold" && a != "sigmoid" {
				return fmt.Errorf("%w: species %d unknown activation %q", ErrInvalidConfig, sp.ID, a)
			}
		}
	}

	ev := c.Evolution
	if ev.GeneRange < 0 {
		return fmt.Errorf("%w: gene_range %v", ErrInvalidConfig, ev.GeneRange)
	}
	for name, rate := range map[string]float64{
		"mutation_rate":  ev.MutationRate,
		"crossover_rate": ev.CrossoverRate,
	} {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("%w: %s %v outside [0,1]", ErrInvalidConfig, name, rate)
		}
	}

	if c.Population.TicksPerSpawn <= 0 {
		return fmt.Errorf("%w: ticks_per_spawn must be positive", ErrInvalidConfig)
	}
	if c.Population.SpawnAttempts <= 0 {
		return fmt.Errorf("%w: spawn_attempts must be positive", ErrInvalidConfig)
	}
	if c.Sensors.RangeScale <= 0 {
		return fmt.Errorf("%w: range_scale must be positive", ErrInvalidConfig)
	}

	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.WorldW = float64(c.World.Width)
	c.Derived.WorldH = float64(c.World.Height)

	c.Derived.TotalInitial = 0
	c.Derived.SpeciesIndex = make(map[int64]int, len(c.Species))
	for i, sp := range c.Species {
		c.Derived.TotalInitial += sp.Initial
		c.Derived.SpeciesIndex[sp.ID] = i
	}

	// Screen defaults to the world size
	if c.Screen.Width == 0 {
		c.Screen.Width = c.World.Width
	}
	if c.Screen.Height == 0 {
		c.Screen.Height = c.World.Height
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
