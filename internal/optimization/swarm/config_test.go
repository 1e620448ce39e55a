package swarm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/VORTX/internal/optimization"
)

func TestSuggestedSwarmSize(t *testing.T) {
	tests := []struct {
		name string
		dim  int
		want int
	}{
		{name: "one dimension", dim: 1, want: 12},
		{name: "thirty dimensions", dim: 30, want: 21},
		{name: "hundred dimensions", dim: 100, want: 30},
		{name: "capped at maximum", dim: 10000, want: MaxSwarmSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestedSwarmSize(tt.dim))
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig(30, -100, 100)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Dim)
	assert.Len(t, cfg.LowerBound, 30)
	assert.Len(t, cfg.UpperBound, 30)
	for d := 0; d < cfg.Dim; d++ {
		assert.Equal(t, -100.0, cfg.LowerBound[d])
		assert.Equal(t, 100.0, cfg.UpperBound[d])
	}

	assert.Equal(t, 21, cfg.SwarmSize)
	assert.Equal(t, DefaultGoal, cfg.Goal)
	assert.Equal(t, DefaultMaxSteps, cfg.MaxSteps)
	assert.Equal(t, DefaultCognitive, cfg.Cognitive)
	assert.Equal(t, DefaultSocial, cfg.Social)
	assert.Equal(t, DefaultInertia, cfg.InertiaMax)
	assert.Equal(t, DefaultInertiaMin, cfg.InertiaMin)
	assert.Equal(t, BoundaryClamp, cfg.Boundary)
	assert.Equal(t, TopologyRing, cfg.Topology)
	assert.Equal(t, DefaultNeighborhoodSize, cfg.NeighborhoodSize)
	assert.Equal(t, InertiaLinear, cfg.Inertia)
}

func TestDefaultConfigRejectsBadDimension(t *testing.T) {
	_, err := DefaultConfig(0, -1, 1)
	require.Error(t, err)
	assert.Equal(t, optimization.KindConfig, optimization.KindOf(err))
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		cfg, err := DefaultConfig(2, -1, 1)
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name     string
		mutate   func(*Config)
		wantKind optimization.Kind
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:     "zero dimension",
			mutate:   func(c *Config) { c.Dim = 0 },
			wantKind: optimization.KindConfig,
		},
		{
			name:     "bounds length mismatch",
			mutate:   func(c *Config) { c.LowerBound = c.LowerBound[:1] },
			wantKind: optimization.KindConfig,
		},
		{
			name:     "inverted bounds",
			mutate:   func(c *Config) { c.LowerBound[1] = 2 },
			wantKind: optimization.KindConfig,
		},
		{
			name: "periodic with zero range",
			mutate: func(c *Config) {
				c.Boundary = BoundaryPeriodic
				c.LowerBound[0] = 1
				c.UpperBound[0] = 1
			},
			wantKind: optimization.KindConfig,
		},
		{
			name: "clamp allows zero range",
			mutate: func(c *Config) {
				c.LowerBound[0] = 1
				c.UpperBound[0] = 1
			},
		},
		{
			name:     "zero swarm size",
			mutate:   func(c *Config) { c.SwarmSize = 0 },
			wantKind: optimization.KindConfig,
		},
		{
			name:     "swarm size above cap",
			mutate:   func(c *Config) { c.SwarmSize = MaxSwarmSize + 1 },
			wantKind: optimization.KindResource,
		},
		{
			name:     "negative max steps",
			mutate:   func(c *Config) { c.MaxSteps = -1 },
			wantKind: optimization.KindConfig,
		},
		{
			name:     "zero cognitive coefficient",
			mutate:   func(c *Config) { c.Cognitive = 0 },
			wantKind: optimization.KindConfig,
		},
		{
			name:     "zero social coefficient",
			mutate:   func(c *Config) { c.Social = 0 },
			wantKind: optimization.KindConfig,
		},
		{
			name: "random topology without neighborhood",
			mutate: func(c *Config) {
				c.Topology = TopologyRandom
				c.NeighborhoodSize = 0
			},
			wantKind: optimization.KindConfig,
		},
		{
			name:     "negative report interval",
			mutate:   func(c *Config) { c.ReportEvery = -1 },
			wantKind: optimization.KindConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantKind == optimization.KindUnknown {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, optimization.KindOf(err))
		})
	}
}

func TestParseKinds(t *testing.T) {
	topo, err := ParseTopology("Ring")
	require.NoError(t, err)
	assert.Equal(t, TopologyRing, topo)

	_, err = ParseTopology("mesh")
	require.Error(t, err)
	assert.Equal(t, optimization.KindConfig, optimization.KindOf(err))

	inertia, err := ParseInertia("LINEAR")
	require.NoError(t, err)
	assert.Equal(t, InertiaLinear, inertia)

	_, err = ParseInertia("exponential")
	require.Error(t, err)

	boundary, err := ParseBoundary("periodic")
	require.NoError(t, err)
	assert.Equal(t, BoundaryPeriodic, boundary)

	_, err = ParseBoundary("bounce")
	require.Error(t, err)
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "global", TopologyGlobal.String())
	assert.Equal(t, "ring", TopologyRing.String())
	assert.Equal(t, "random", TopologyRandom.String())
	assert.Equal(t, "constant", InertiaConstant.String())
	assert.Equal(t, "linear", InertiaLinear.String())
	assert.Equal(t, "clamp", BoundaryClamp.String())
	assert.Equal(t, "periodic", BoundaryPeriodic.String())
}
