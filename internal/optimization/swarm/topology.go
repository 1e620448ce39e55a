package swarm

import (
	"math/rand"
)

// informantGraph is a dense directed adjacency over particle indices.
// edges[i*size+j] reports whether particle i informs particle j, i.e.
// i's personal best is consulted when picking j's informant.
type informantGraph struct {
	size  int
	edges []bool
}

func newInformantGraph(size int) *informantGraph {
	return &informantGraph{
		size:  size,
		edges: make([]bool, size*size),
	}
}

func (g *informantGraph) informs(i, j int) bool {
	return g.edges[i*g.size+j]
}

// informers returns the indices informing particle j, ascending.
func (g *informantGraph) informers(j int) []int {
	var out []int
	for i := 0; i < g.size; i++ {
		if g.informs(i, j) {
			out = append(out, i)
		}
	}
	return out
}

// ring wires each particle to itself and its two circular neighbors.
func (g *informantGraph) ring() {
	clear(g.edges)
	for i := 0; i < g.size; i++ {
		g.edges[i*g.size+i] = true
		g.edges[i*g.size+(i+1)%g.size] = true
		g.edges[i*g.size+(i+g.size-1)%g.size] = true
	}
}

// randomize rewires the graph: every particle informs itself plus
// neighbors uniform-random targets. Targets may repeat or hit self.
func (g *informantGraph) randomize(rng *rand.Rand, neighbors int) {
	clear(g.edges)
	for i := 0; i < g.size; i++ {
		g.edges[i*g.size+i] = true
		for k := 0; k < neighbors; k++ {
			g.edges[i*g.size+rng.Intn(g.size)] = true
		}
	}
}

// gatherBest fills st.informant with, for each particle, the
// personal-best position of its fittest informer. Indices are scanned
// ascending and replaced only on strictly smaller fitness, so the
// lowest index wins equal-fitness ties.
func (g *informantGraph) gatherBest(st *state) {
	for j := 0; j < g.size; j++ {
		best := -1
		for i := 0; i < g.size; i++ {
			if i != j && !g.informs(i, j) {
				continue
			}
			if best < 0 || st.pbestFit[i] < st.pbestFit[best] {
				best = i
			}
		}
		copy(st.row(st.informant, j), st.row(st.pbestPos, best))
	}
}

// topology produces, once per step, each particle's informant position
// from the personal-best snapshot taken before the step.
type topology interface {
	// gather refreshes st.informant. best is the current global best
	// position; improved reports whether the previous step improved it.
	gather(st *state, best []float64, improved bool)
}

// globalTopology points every particle at the swarm-wide best. No graph
// is materialized.
type globalTopology struct{}

func (globalTopology) gather(st *state, best []float64, improved bool) {
	for i := 0; i < st.size; i++ {
		copy(st.row(st.informant, i), best)
	}
}

// ringTopology uses a static circular graph built once per run.
type ringTopology struct {
	graph *informantGraph
}

func newRingTopology(size int) *ringTopology {
	g := newInformantGraph(size)
	g.ring()
	return &ringTopology{graph: g}
}

func (t *ringTopology) gather(st *state, best []float64, improved bool) {
	t.graph.gatherBest(st)
}

// randomTopology rewires its graph whenever the preceding step brought
// no improvement of the global best, including before the first step.
type randomTopology struct {
	graph     *informantGraph
	neighbors int
	rng       *rand.Rand
}

func newRandomTopology(size, neighbors int, rng *rand.Rand) *randomTopology {
	// The graph is built lazily on the first gather, which always runs
	// with improved=false.
	return &randomTopology{
		graph:     newInformantGraph(size),
		neighbors: neighbors,
		rng:       rng,
	}
}

func (t *randomTopology) gather(st *state, best []float64, improved bool) {
	if !improved {
		t.graph.randomize(t.rng, t.neighbors)
	}
	t.graph.gatherBest(st)
}
