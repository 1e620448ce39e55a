// Package swarm implements Particle Swarm Optimization over a bounded
// real-valued domain. The optimizer minimizes a scalar objective without
// gradients by moving a population of particles under cognitive and
// social attraction, with pluggable neighborhood topologies, inertia
// schedules, and boundary policies.
package swarm

import (
	"fmt"
	"math"
	"strings"

	"github.com/copyleftdev/VORTX/internal/optimization"
)

// MaxSwarmSize is the safety cap on the number of particles, bounding
// the O(size^2) informant graph and the particle matrices.
const MaxSwarmSize = 100

// DefaultInertia is the constant inertia weight from Clerc's
// constriction analysis.
const DefaultInertia = 0.7298

// Classic defaults applied by DefaultConfig.
const (
	DefaultGoal             = 1e-5
	DefaultMaxSteps         = 100000
	DefaultCognitive        = 1.496
	DefaultSocial           = 1.496
	DefaultInertiaMin       = 0.3
	DefaultNeighborhoodSize = 5
)

// Topology selects the information-sharing scheme between particles.
type Topology int

const (
	// TopologyGlobal attracts every particle toward the swarm-wide best.
	TopologyGlobal Topology = iota
	// TopologyRing connects each particle to itself and its two circular
	// neighbors; the graph is static for the whole run.
	TopologyRing
	// TopologyRandom rewires each particle to itself plus a handful of
	// random targets whenever the previous step brought no improvement.
	TopologyRandom
)

func (t Topology) String() string {
	switch t {
	case TopologyGlobal:
		return "global"
	case TopologyRing:
		return "ring"
	case TopologyRandom:
		return "random"
	default:
		return fmt.Sprintf("Topology(%d)", int(t))
	}
}

// ParseTopology converts a case-insensitive name to a Topology.
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(s) {
	case "global":
		return TopologyGlobal, nil
	case "ring":
		return TopologyRing, nil
	case "random":
		return TopologyRandom, nil
	default:
		return 0, optimization.NewErrorf(optimization.KindConfig, "swarm.ParseTopology",
			"unknown topology %q (want global, ring or random)", s)
	}
}

// Inertia selects the inertia-weight schedule.
type Inertia int

const (
	// InertiaConstant keeps the weight fixed at InertiaMax.
	InertiaConstant Inertia = iota
	// InertiaLinear decays the weight from InertiaMax to InertiaMin over
	// the first three quarters of the step budget, then holds InertiaMin.
	InertiaLinear
)

func (i Inertia) String() string {
	switch i {
	case InertiaConstant:
		return "constant"
	case InertiaLinear:
		return "linear"
	default:
		return fmt.Sprintf("Inertia(%d)", int(i))
	}
}

// ParseInertia converts a case-insensitive name to an Inertia.
func ParseInertia(s string) (Inertia, error) {
	switch strings.ToLower(s) {
	case "constant":
		return InertiaConstant, nil
	case "linear":
		return InertiaLinear, nil
	default:
		return 0, optimization.NewErrorf(optimization.KindConfig, "swarm.ParseInertia",
			"unknown inertia schedule %q (want constant or linear)", s)
	}
}

// Boundary selects how coordinates leaving the box are handled.
type Boundary int

const (
	// BoundaryClamp truncates to the violated bound and zeroes the
	// velocity on that dimension.
	BoundaryClamp Boundary = iota
	// BoundaryPeriodic wraps the overshoot around to the opposite bound
	// and zeroes the velocity on that dimension.
	BoundaryPeriodic
)

func (b Boundary) String() string {
	switch b {
	case BoundaryClamp:
		return "clamp"
	case BoundaryPeriodic:
		return "periodic"
	default:
		return fmt.Sprintf("Boundary(%d)", int(b))
	}
}

// ParseBoundary converts a case-insensitive name to a Boundary.
func ParseBoundary(s string) (Boundary, error) {
	switch strings.ToLower(s) {
	case "clamp":
		return BoundaryClamp, nil
	case "periodic":
		return BoundaryPeriodic, nil
	default:
		return 0, optimization.NewErrorf(optimization.KindConfig, "swarm.ParseBoundary",
			"unknown boundary policy %q (want clamp or periodic)", s)
	}
}

// Config holds the immutable parameters of one optimization run. The
// optimizer never writes back into it; iteration state stays solver-local.
type Config struct {
	// Dim is the number of decision variables.
	Dim int

	// LowerBound and UpperBound define the feasible box, one entry per
	// dimension.
	LowerBound []float64
	UpperBound []float64

	// Goal is the error threshold for early termination.
	Goal float64

	// SwarmSize is the number of particles, at most MaxSwarmSize.
	SwarmSize int

	// MaxSteps bounds the number of update steps.
	MaxSteps int

	// Cognitive and Social scale the attraction toward a particle's own
	// best and its best informant, respectively.
	Cognitive float64
	Social    float64

	// InertiaMax is the constant weight for InertiaConstant and the
	// starting weight for InertiaLinear; InertiaMin is the floor the
	// linear schedule decays to.
	InertiaMax float64
	InertiaMin float64

	Boundary Boundary
	Topology Topology

	// NeighborhoodSize is the number of random informant edges drawn per
	// particle by TopologyRandom.
	NeighborhoodSize int

	Inertia Inertia

	// ReportEvery is the observer interval in steps; zero disables
	// progress reporting. It has no effect on the trajectory.
	ReportEvery int
}

// SuggestedSwarmSize returns the classic population heuristic
// min(MaxSwarmSize, round(10 + 2*sqrt(dim))).
func SuggestedSwarmSize(dim int) int {
	size := int(math.Round(10 + 2*math.Sqrt(float64(dim))))
	if size > MaxSwarmSize {
		return MaxSwarmSize
	}
	return size
}

// DefaultConfig builds a validated Config for dim dimensions with the
// scalar bounds lo and hi broadcast to every dimension and the classic
// parameter defaults.
func DefaultConfig(dim int, lo, hi float64) (Config, error) {
	if dim <= 0 {
		return Config{}, optimization.NewErrorf(optimization.KindConfig, "swarm.DefaultConfig",
			"dimension must be positive, got %d", dim)
	}

	lower := make([]float64, dim)
	upper := make([]float64, dim)
	for d := 0; d < dim; d++ {
		lower[d] = lo
		upper[d] = hi
	}

	cfg := Config{
		Dim:              dim,
		LowerBound:       lower,
		UpperBound:       upper,
		Goal:             DefaultGoal,
		SwarmSize:        SuggestedSwarmSize(dim),
		MaxSteps:         DefaultMaxSteps,
		Cognitive:        DefaultCognitive,
		Social:           DefaultSocial,
		InertiaMax:       DefaultInertia,
		InertiaMin:       DefaultInertiaMin,
		Boundary:         BoundaryClamp,
		Topology:         TopologyRing,
		NeighborhoodSize: DefaultNeighborhoodSize,
		Inertia:          InertiaLinear,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate fails fast on parameters the solver cannot run with. It is
// called before any swarm state is allocated.
func (c Config) Validate() error {
	const op = "swarm.Config.Validate"

	if c.Dim <= 0 {
		return optimization.NewErrorf(optimization.KindConfig, op,
			"dimension must be positive, got %d", c.Dim)
	}
	if len(c.LowerBound) != c.Dim || len(c.UpperBound) != c.Dim {
		return optimization.NewErrorf(optimization.KindConfig, op,
			"bounds must have one entry per dimension: got %d lower, %d upper for dim %d",
			len(c.LowerBound), len(c.UpperBound), c.Dim)
	}
	for d := 0; d < c.Dim; d++ {
		if c.LowerBound[d] > c.UpperBound[d] {
			return optimization.NewErrorf(optimization.KindConfig, op,
				"inverted bounds on dimension %d: [%g, %g]", d, c.LowerBound[d], c.UpperBound[d])
		}
		// Periodic wrapping divides by the range, so it must be nonzero.
		if c.Boundary == BoundaryPeriodic && c.LowerBound[d] == c.UpperBound[d] {
			return optimization.NewErrorf(optimization.KindConfig, op,
				"periodic boundary requires a nonzero range on dimension %d", d)
		}
	}
	if c.SwarmSize <= 0 {
		return optimization.NewErrorf(optimization.KindConfig, op,
			"swarm size must be positive, got %d", c.SwarmSize)
	}
	if c.SwarmSize > MaxSwarmSize {
		return optimization.NewErrorf(optimization.KindResource, op,
			"swarm size %d exceeds the cap of %d", c.SwarmSize, MaxSwarmSize)
	}
	if c.MaxSteps < 0 {
		return optimization.NewErrorf(optimization.KindConfig, op,
			"max steps must be non-negative, got %d", c.MaxSteps)
	}
	if c.Cognitive <= 0 || c.Social <= 0 {
		return optimization.NewErrorf(optimization.KindConfig, op,
			"cognitive and social coefficients must be positive, got %g and %g", c.Cognitive, c.Social)
	}
	if c.Topology == TopologyRandom && c.NeighborhoodSize <= 0 {
		return optimization.NewErrorf(optimization.KindConfig, op,
			"random topology requires a positive neighborhood size, got %d", c.NeighborhoodSize)
	}
	if c.ReportEvery < 0 {
		return optimization.NewErrorf(optimization.KindConfig, op,
			"report interval must be non-negative, got %d", c.ReportEvery)
	}
	return nil
}
