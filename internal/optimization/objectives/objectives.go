// Package objectives provides the catalog of classic benchmark functions
// used by the CLI and the optimization service. They are ordinary
// ObjectiveFunctions; nothing in the solver depends on this package.
package objectives

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/copyleftdev/VORTX/internal/optimization"
)

// Benchmark couples a test function with its conventional search domain.
// All functions here have their global minimum value at 0.
type Benchmark struct {
	Name string
	Eval optimization.ObjectiveFunction

	// Lower and Upper are the conventional scalar bounds, broadcast to
	// every dimension.
	Lower, Upper float64

	// MinDim is the smallest dimension the function is defined for.
	MinDim int
}

// Sphere is the sum of squares; unimodal, minimum at the origin.
func Sphere(x []float64) (float64, error) {
	return floats.Dot(x, x), nil
}

// Rosenbrock is the classic narrow-valley function, minimum at (1,...,1).
func Rosenbrock(x []float64) (float64, error) {
	if len(x) < 2 {
		return 0, optimization.NewError(optimization.KindEvaluation, "objectives.Rosenbrock",
			"requires at least 2 dimensions")
	}
	s := 0.0
	for i := 0; i < len(x)-1; i++ {
		a := x[i+1] - x[i]*x[i]
		b := 1 - x[i]
		s += 100*a*a + b*b
	}
	return s, nil
}

// Griewank has many regularly distributed local minima.
func Griewank(x []float64) (float64, error) {
	sum, prod := 0.0, 1.0
	for i, v := range x {
		sum += v * v
		prod *= math.Cos(v / math.Sqrt(float64(i+1)))
	}
	return sum/4000 - prod + 1, nil
}

// Rastrigin is highly multimodal with a large number of local minima.
func Rastrigin(x []float64) (float64, error) {
	s := 10 * float64(len(x))
	for _, v := range x {
		s += v*v - 10*math.Cos(2*math.Pi*v)
	}
	return s, nil
}

// Ackley combines an exponential well with a cosine modulation.
func Ackley(x []float64) (float64, error) {
	const a, b, c = 20.0, 0.2, 2 * math.Pi
	n := float64(len(x))
	s1, s2 := 0.0, 0.0
	for _, v := range x {
		s1 += v * v
		s2 += math.Cos(c * v)
	}
	return -a*math.Exp(-b*math.Sqrt(s1/n)) - math.Exp(s2/n) + a + math.E, nil
}

var catalog = map[string]Benchmark{
	"sphere":     {Name: "sphere", Eval: Sphere, Lower: -100, Upper: 100, MinDim: 1},
	"rosenbrock": {Name: "rosenbrock", Eval: Rosenbrock, Lower: -2.048, Upper: 2.048, MinDim: 2},
	"griewank":   {Name: "griewank", Eval: Griewank, Lower: -600, Upper: 600, MinDim: 1},
	"rastrigin":  {Name: "rastrigin", Eval: Rastrigin, Lower: -5.12, Upper: 5.12, MinDim: 1},
	"ackley":     {Name: "ackley", Eval: Ackley, Lower: -32, Upper: 32, MinDim: 1},
}

// ByName looks up a benchmark by case-insensitive name.
func ByName(name string) (Benchmark, bool) {
	b, ok := catalog[strings.ToLower(name)]
	return b, ok
}

// Names returns the catalog names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
