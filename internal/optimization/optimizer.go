package optimization

import (
	"context"
)

// Optimizer defines the interface for optimization algorithms
type Optimizer interface {
	// Optimize runs the optimization process until the goal is reached,
	// the step budget is exhausted, or the context is cancelled
	Optimize(ctx context.Context) (*Result, error)

	// BestSolution returns the best solution found so far
	BestSolution() *Solution
}

// ObjectiveFunction defines the function to be optimized.
// It receives a position vector and returns a scalar fitness where lower
// is better. The function must not mutate or retain the vector.
type ObjectiveFunction func([]float64) (float64, error)

// Solution represents a solution in the optimization space
type Solution struct {
	Position []float64
	Value    float64
}

// Improvement records a strict improvement of the global best.
type Improvement struct {
	Step  int
	Value float64
}

// Result contains the result of an optimization run
type Result struct {
	// Best solution found across the whole run
	Best Solution

	// Steps actually consumed
	Steps int

	// Evaluations is the total number of objective function calls
	Evaluations int

	// GoalReached reports whether the run terminated because the best
	// error dropped to the configured goal, as opposed to exhausting
	// the step budget
	GoalReached bool

	// History holds every strict improvement of the global best during
	// stepping, in step order. Values are non-increasing.
	History []Improvement
}
