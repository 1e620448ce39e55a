package swarm

// schedule yields the inertia weight for a given step index.
type schedule interface {
	weight(step int) float64
}

// constantInertia returns the same weight for every step.
type constantInertia float64

func (w constantInertia) weight(int) float64 { return float64(w) }

// linearInertia decays from max to min over the first three quarters of
// the step budget, then holds min.
type linearInertia struct {
	max, min   float64
	decayStage int
}

func newLinearInertia(max, min float64, maxSteps int) linearInertia {
	return linearInertia{
		max:        max,
		min:        min,
		decayStage: 3 * maxSteps / 4,
	}
}

func (l linearInertia) weight(step int) float64 {
	// decayStage is 0 for budgets under 4 steps; return the floor
	// instead of dividing by zero.
	if l.decayStage <= 0 || step > l.decayStage {
		return l.min
	}
	return l.min + (l.max-l.min)*float64(l.decayStage-step)/float64(l.decayStage)
}
