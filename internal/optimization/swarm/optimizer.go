package swarm

import (
	"context"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/copyleftdev/VORTX/internal/optimization"
)

// Observer receives periodic progress reports during a run. It is called
// every Config.ReportEvery steps with the step index, the step budget,
// the current inertia weight and the best error so far. Observers must
// not mutate anything the solver owns; they cannot affect the trajectory.
type Observer func(step, maxSteps int, inertia, bestError float64)

// Optimizer implements Particle Swarm Optimization. Strategies are
// selected once at construction; each Optimize call builds a fresh swarm
// state. An Optimizer is not safe for concurrent Optimize calls.
type Optimizer struct {
	cfg       Config
	objective optimization.ObjectiveFunction

	rng      *rand.Rand
	logger   *zap.Logger
	observer Observer

	topology topology
	schedule schedule
	boundary boundaryFunc

	// st is the swarm state of the most recent Optimize call.
	st *state

	best        *optimization.Solution
	evaluations int
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithRand injects the random source used for initialization and the
// stochastic update coefficients. Injecting a fixed-seed source makes
// runs fully reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(o *Optimizer) { o.rng = rng }
}

// WithSeed is shorthand for WithRand with a fixed-seed source.
func WithSeed(seed int64) Option {
	return func(o *Optimizer) { o.rng = rand.New(rand.NewSource(seed)) }
}

// WithLogger attaches a logger for run lifecycle events.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Optimizer) { o.logger = logger }
}

// WithObserver attaches a progress observer.
func WithObserver(fn Observer) Option {
	return func(o *Optimizer) { o.observer = fn }
}

// New creates an Optimizer for the given configuration and objective.
// The configuration is validated before any swarm state is allocated.
func New(cfg Config, objective optimization.ObjectiveFunction, opts ...Option) (*Optimizer, error) {
	if objective == nil {
		return nil, optimization.NewError(optimization.KindConfig, "swarm.New", "objective function is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &Optimizer{
		cfg:       cfg,
		objective: objective,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	switch cfg.Topology {
	case TopologyGlobal:
		o.topology = globalTopology{}
	case TopologyRing:
		o.topology = newRingTopology(cfg.SwarmSize)
	case TopologyRandom:
		o.topology = newRandomTopology(cfg.SwarmSize, cfg.NeighborhoodSize, o.rng)
	default:
		return nil, optimization.NewErrorf(optimization.KindConfig, "swarm.New", "unknown topology %d", cfg.Topology)
	}

	switch cfg.Inertia {
	case InertiaConstant:
		o.schedule = constantInertia(cfg.InertiaMax)
	case InertiaLinear:
		o.schedule = newLinearInertia(cfg.InertiaMax, cfg.InertiaMin, cfg.MaxSteps)
	default:
		return nil, optimization.NewErrorf(optimization.KindConfig, "swarm.New", "unknown inertia schedule %d", cfg.Inertia)
	}

	switch cfg.Boundary {
	case BoundaryClamp:
		o.boundary = clampBounds
	case BoundaryPeriodic:
		o.boundary = periodicBounds
	default:
		return nil, optimization.NewErrorf(optimization.KindConfig, "swarm.New", "unknown boundary policy %d", cfg.Boundary)
	}

	return o, nil
}

// BestSolution returns the best solution found by the last Optimize
// call, or nil before the first completed run.
func (o *Optimizer) BestSolution() *optimization.Solution {
	return o.best
}

// Optimize runs the swarm until the goal is reached, the step budget is
// exhausted, or the context is cancelled. The context is checked once
// per step boundary.
func (o *Optimizer) Optimize(ctx context.Context) (*optimization.Result, error) {
	cfg := o.cfg
	st := newState(cfg.SwarmSize, cfg.Dim)
	o.st = st
	o.evaluations = 0

	result := &optimization.Result{
		Best: optimization.Solution{
			Position: make([]float64, cfg.Dim),
			Value:    math.Inf(1),
		},
	}

	if err := o.seedSwarm(st, result); err != nil {
		return nil, err
	}
	o.logger.Debug("swarm initialized",
		zap.Int("particles", cfg.SwarmSize),
		zap.Int("dim", cfg.Dim),
		zap.Stringer("topology", cfg.Topology),
		zap.Float64("best_error", result.Best.Value),
	)

	// improved tracks whether the immediately preceding step improved
	// the global best. Starting false makes the random topology wire
	// itself before the first step.
	improved := false

	step := 0
	for {
		if result.Best.Value <= cfg.Goal {
			result.GoalReached = true
			o.logger.Info("goal reached",
				zap.Int("step", step),
				zap.Float64("best_error", result.Best.Value),
			)
			break
		}
		if step >= cfg.MaxSteps {
			o.logger.Info("step budget exhausted",
				zap.Int("steps", step),
				zap.Float64("best_error", result.Best.Value),
			)
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		w := o.schedule.weight(step)

		// Informant positions come from the personal-best snapshot as it
		// stands before this step's updates.
		o.topology.gather(st, result.Best.Position, improved)
		improved = false

		for i := 0; i < st.size; i++ {
			pos := st.row(st.pos, i)
			vel := st.row(st.vel, i)
			pbest := st.row(st.pbestPos, i)
			inf := st.row(st.informant, i)

			for d := 0; d < st.dim; d++ {
				// One fresh draw per particle per dimension.
				rho1 := cfg.Cognitive * o.rng.Float64()
				rho2 := cfg.Social * o.rng.Float64()

				vel[d] = w*vel[d] + rho1*(pbest[d]-pos[d]) + rho2*(inf[d]-pos[d])
				pos[d] += vel[d]
				pos[d], vel[d] = o.boundary(pos[d], vel[d], cfg.LowerBound[d], cfg.UpperBound[d])
			}

			fit, err := o.evaluate(pos)
			if err != nil {
				return nil, err
			}
			st.fit[i] = fit

			if fit < st.pbestFit[i] {
				st.pbestFit[i] = fit
				copy(pbest, pos)
			}

			// The global best updates mid-sweep: later particles in this
			// step already see it on the next gather.
			if fit < result.Best.Value {
				improved = true
				result.Best.Value = fit
				copy(result.Best.Position, pos)
				result.History = append(result.History, optimization.Improvement{Step: step, Value: fit})
			}
		}

		if o.observer != nil && cfg.ReportEvery > 0 && step%cfg.ReportEvery == 0 {
			o.observer(step, cfg.MaxSteps, w, result.Best.Value)
		}
		step++
	}

	result.Steps = step
	result.Evaluations = o.evaluations
	o.best = &optimization.Solution{
		Position: append([]float64(nil), result.Best.Position...),
		Value:    result.Best.Value,
	}
	return result, nil
}

// seedSwarm initializes positions, velocities and personal bests, and
// records the initial global best. Each coordinate takes two independent
// uniforms a, b in its bounds: position a, velocity (a-b)/2.
func (o *Optimizer) seedSwarm(st *state, result *optimization.Result) error {
	cfg := o.cfg
	for i := 0; i < st.size; i++ {
		pos := st.row(st.pos, i)
		vel := st.row(st.vel, i)
		pbest := st.row(st.pbestPos, i)

		for d := 0; d < st.dim; d++ {
			lo, hi := cfg.LowerBound[d], cfg.UpperBound[d]
			a := lo + (hi-lo)*o.rng.Float64()
			b := lo + (hi-lo)*o.rng.Float64()
			pos[d] = a
			pbest[d] = a
			vel[d] = (a - b) / 2
		}

		fit, err := o.evaluate(pos)
		if err != nil {
			return err
		}
		st.fit[i] = fit
		st.pbestFit[i] = fit
	}

	best := floats.MinIdx(st.fit)
	result.Best.Value = st.fit[best]
	copy(result.Best.Position, st.row(st.pos, best))
	return nil
}

// evaluate calls the objective and sanitizes non-finite fitnesses to
// +Inf so they can never improve a best or poison comparisons.
func (o *Optimizer) evaluate(x []float64) (float64, error) {
	v, err := o.objective(x)
	if err != nil {
		return 0, optimization.WrapError(err, optimization.KindEvaluation, "swarm.Optimize", "objective function failed")
	}
	o.evaluations++
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return math.Inf(1), nil
	}
	return v, nil
}
