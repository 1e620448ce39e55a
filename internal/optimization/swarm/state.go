package swarm

// state holds the mutable particle matrices for one run. All matrices
// are contiguous row-major float64 storage with one row of dim values
// per particle, so a particle's vectors are plain subslices and index
// identity is stable for topology addressing.
type state struct {
	size int
	dim  int

	// pos and vel are the current positions and velocities.
	pos []float64
	vel []float64

	// pbestPos and pbestFit track each particle's best-ever position and
	// its fitness. informant is per-step scratch holding the best
	// informant position for each particle.
	pbestPos  []float64
	informant []float64

	fit      []float64
	pbestFit []float64
}

func newState(size, dim int) *state {
	return &state{
		size:      size,
		dim:       dim,
		pos:       make([]float64, size*dim),
		vel:       make([]float64, size*dim),
		pbestPos:  make([]float64, size*dim),
		informant: make([]float64, size*dim),
		fit:       make([]float64, size),
		pbestFit:  make([]float64, size),
	}
}

// row returns particle i's slice of the given matrix.
func (s *state) row(m []float64, i int) []float64 {
	return m[i*s.dim : (i+1)*s.dim]
}
