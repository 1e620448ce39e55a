package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/VORTX/internal/optimization"
	"github.com/copyleftdev/VORTX/internal/optimization/swarm"
)

func writeScenario(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeScenario(t, `
objective: rastrigin
dim: 10
goal: 1e-6
swarm_size: 40
max_steps: 5000
topology: random
neighborhood_size: 4
seed: 99
`)

	sc, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "rastrigin", sc.Objective)
	assert.Equal(t, 10, sc.Dim)
	require.NotNil(t, sc.Goal)
	assert.Equal(t, 1e-6, *sc.Goal)
	assert.Equal(t, 40, sc.SwarmSize)
	assert.Equal(t, 5000, sc.MaxSteps)
	assert.Equal(t, "random", sc.Topology)
	assert.Equal(t, 4, sc.NeighborhoodSize)
	require.NotNil(t, sc.Seed)
	assert.Equal(t, int64(99), *sc.Seed)
	assert.Nil(t, sc.Cognitive)
	assert.Nil(t, sc.LowerBound)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeScenario(t, `
objective: sphere
particles: 40
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, optimization.KindConfig, optimization.KindOf(err))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, optimization.KindConfig, optimization.KindOf(err))
}

func TestBuildDefaults(t *testing.T) {
	sc := &Scenario{Objective: "sphere"}

	cfg, bench, err := sc.Build()
	require.NoError(t, err)

	assert.Equal(t, "sphere", bench.Name)
	assert.Equal(t, DefaultDim, cfg.Dim)
	assert.Equal(t, swarm.SuggestedSwarmSize(DefaultDim), cfg.SwarmSize)
	for d := 0; d < cfg.Dim; d++ {
		assert.Equal(t, -100.0, cfg.LowerBound[d])
		assert.Equal(t, 100.0, cfg.UpperBound[d])
	}
	assert.Equal(t, swarm.DefaultGoal, cfg.Goal)
	assert.Equal(t, swarm.DefaultMaxSteps, cfg.MaxSteps)
	assert.Equal(t, swarm.TopologyRing, cfg.Topology)
	assert.Equal(t, swarm.InertiaLinear, cfg.Inertia)
	assert.Equal(t, swarm.BoundaryClamp, cfg.Boundary)
}

func TestBuildOverrides(t *testing.T) {
	goal := 1e-9
	lo, hi := -3.0, 3.0
	cog := 2.0
	sc := &Scenario{
		Objective:        "ackley",
		Dim:              8,
		LowerBound:       &lo,
		UpperBound:       &hi,
		Goal:             &goal,
		SwarmSize:        50,
		MaxSteps:         1234,
		Cognitive:        &cog,
		Topology:         "global",
		Inertia:          "constant",
		Boundary:         "periodic",
		NeighborhoodSize: 7,
		ReportEvery:      10,
	}

	cfg, bench, err := sc.Build()
	require.NoError(t, err)

	assert.Equal(t, "ackley", bench.Name)
	assert.Equal(t, 8, cfg.Dim)
	assert.Equal(t, -3.0, cfg.LowerBound[0])
	assert.Equal(t, 3.0, cfg.UpperBound[7])
	assert.Equal(t, 1e-9, cfg.Goal)
	assert.Equal(t, 50, cfg.SwarmSize)
	assert.Equal(t, 1234, cfg.MaxSteps)
	assert.Equal(t, 2.0, cfg.Cognitive)
	assert.Equal(t, swarm.TopologyGlobal, cfg.Topology)
	assert.Equal(t, swarm.InertiaConstant, cfg.Inertia)
	assert.Equal(t, swarm.BoundaryPeriodic, cfg.Boundary)
	assert.Equal(t, 7, cfg.NeighborhoodSize)
	assert.Equal(t, 10, cfg.ReportEvery)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		sc   Scenario
	}{
		{name: "unknown objective", sc: Scenario{Objective: "schwefel"}},
		{name: "dim below minimum", sc: Scenario{Objective: "rosenbrock", Dim: 1}},
		{name: "bad topology", sc: Scenario{Objective: "sphere", Topology: "mesh"}},
		{name: "bad inertia", sc: Scenario{Objective: "sphere", Inertia: "exponential"}},
		{name: "bad boundary", sc: Scenario{Objective: "sphere", Boundary: "bounce"}},
		{name: "oversized swarm", sc: Scenario{Objective: "sphere", SwarmSize: swarm.MaxSwarmSize + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.sc.Build()
			require.Error(t, err)
			assert.NotEqual(t, optimization.KindUnknown, optimization.KindOf(err))
		})
	}
}

func TestOptions(t *testing.T) {
	sc := &Scenario{Objective: "sphere"}
	assert.Empty(t, sc.Options())

	seed := int64(7)
	sc.Seed = &seed
	assert.Len(t, sc.Options(), 1)
}
