// Package scenario describes one optimization run over a catalog
// objective. The same schema serves YAML scenario files for the CLI and
// JSON request bodies for the service.
package scenario

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/copyleftdev/VORTX/internal/optimization"
	"github.com/copyleftdev/VORTX/internal/optimization/objectives"
	"github.com/copyleftdev/VORTX/internal/optimization/swarm"
)

// Scenario selects a benchmark objective and overrides the solver
// defaults. Pointer fields distinguish "absent" from an explicit zero.
type Scenario struct {
	Objective string `yaml:"objective" json:"objective"`

	Dim        int      `yaml:"dim" json:"dim"`
	LowerBound *float64 `yaml:"lower_bound" json:"lower_bound,omitempty"`
	UpperBound *float64 `yaml:"upper_bound" json:"upper_bound,omitempty"`

	Goal      *float64 `yaml:"goal" json:"goal,omitempty"`
	SwarmSize int      `yaml:"swarm_size" json:"swarm_size,omitempty"`
	MaxSteps  int      `yaml:"max_steps" json:"max_steps,omitempty"`

	Cognitive  *float64 `yaml:"cognitive" json:"cognitive,omitempty"`
	Social     *float64 `yaml:"social" json:"social,omitempty"`
	InertiaMax *float64 `yaml:"inertia_max" json:"inertia_max,omitempty"`
	InertiaMin *float64 `yaml:"inertia_min" json:"inertia_min,omitempty"`

	Topology string `yaml:"topology" json:"topology,omitempty"`
	Inertia  string `yaml:"inertia" json:"inertia,omitempty"`
	Boundary string `yaml:"boundary" json:"boundary,omitempty"`

	NeighborhoodSize int `yaml:"neighborhood_size" json:"neighborhood_size,omitempty"`
	ReportEvery      int `yaml:"report_every" json:"report_every,omitempty"`

	// Seed fixes the random source for reproducible runs; absent means
	// a fresh time-based seed.
	Seed *int64 `yaml:"seed" json:"seed,omitempty"`
}

// DefaultDim is used when a scenario does not specify a dimension.
const DefaultDim = 30

// Load reads a YAML scenario file. Unknown fields are rejected.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, optimization.WrapError(err, optimization.KindConfig, "scenario.Load", "read scenario file")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		return nil, optimization.WrapError(err, optimization.KindConfig, "scenario.Load", "parse scenario file")
	}
	return &sc, nil
}

// Build resolves the scenario into a solver configuration and the
// selected benchmark. Bounds default to the benchmark's conventional
// domain; everything else defaults per swarm.DefaultConfig.
func (sc *Scenario) Build() (swarm.Config, objectives.Benchmark, error) {
	const op = "scenario.Build"

	bench, ok := objectives.ByName(sc.Objective)
	if !ok {
		return swarm.Config{}, objectives.Benchmark{}, optimization.NewErrorf(
			optimization.KindConfig, op, "unknown objective %q", sc.Objective)
	}

	dim := sc.Dim
	if dim == 0 {
		dim = DefaultDim
	}
	if dim < bench.MinDim {
		return swarm.Config{}, objectives.Benchmark{}, optimization.NewErrorf(
			optimization.KindConfig, op, "objective %q requires dim >= %d, got %d", bench.Name, bench.MinDim, dim)
	}

	lo, hi := bench.Lower, bench.Upper
	if sc.LowerBound != nil {
		lo = *sc.LowerBound
	}
	if sc.UpperBound != nil {
		hi = *sc.UpperBound
	}

	cfg, err := swarm.DefaultConfig(dim, lo, hi)
	if err != nil {
		return swarm.Config{}, objectives.Benchmark{}, err
	}

	if sc.Goal != nil {
		cfg.Goal = *sc.Goal
	}
	if sc.SwarmSize != 0 {
		cfg.SwarmSize = sc.SwarmSize
	}
	if sc.MaxSteps != 0 {
		cfg.MaxSteps = sc.MaxSteps
	}
	if sc.Cognitive != nil {
		cfg.Cognitive = *sc.Cognitive
	}
	if sc.Social != nil {
		cfg.Social = *sc.Social
	}
	if sc.InertiaMax != nil {
		cfg.InertiaMax = *sc.InertiaMax
	}
	if sc.InertiaMin != nil {
		cfg.InertiaMin = *sc.InertiaMin
	}
	if sc.NeighborhoodSize != 0 {
		cfg.NeighborhoodSize = sc.NeighborhoodSize
	}
	if sc.ReportEvery != 0 {
		cfg.ReportEvery = sc.ReportEvery
	}

	if sc.Topology != "" {
		cfg.Topology, err = swarm.ParseTopology(sc.Topology)
		if err != nil {
			return swarm.Config{}, objectives.Benchmark{}, err
		}
	}
	if sc.Inertia != "" {
		cfg.Inertia, err = swarm.ParseInertia(sc.Inertia)
		if err != nil {
			return swarm.Config{}, objectives.Benchmark{}, err
		}
	}
	if sc.Boundary != "" {
		cfg.Boundary, err = swarm.ParseBoundary(sc.Boundary)
		if err != nil {
			return swarm.Config{}, objectives.Benchmark{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return swarm.Config{}, objectives.Benchmark{}, err
	}
	return cfg, bench, nil
}

// Options returns the solver options implied by the scenario.
func (sc *Scenario) Options() []swarm.Option {
	var opts []swarm.Option
	if sc.Seed != nil {
		opts = append(opts, swarm.WithSeed(*sc.Seed))
	}
	return opts
}
