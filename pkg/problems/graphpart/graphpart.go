// Package graphpart implements two-way graph partitioning: split the
// vertices of a graph into equal halves minimizing the number of edges that
// cross the cut. This is the benchmark the annealing formulation of Johnson
// et al. was evaluated on; it exposes only the local-search capabilities.
package graphpart

import (
	"context"
	"math/rand"

	"github.com/cmaclell/py-search/pkg/search"
)

// Graph is an undirected graph over vertices 0..N-1.
type Graph struct {
	N     int
	edges [][]bool
}

type edgePair struct{ u, v int }

// NewGraph returns an empty graph over n vertices. n must be even for a
// balanced partition to exist.
func NewGraph(n int) *Graph {
	edges := make([][]bool, n)
	for i := range edges {
		edges[i] = make([]bool, n)
	}
	return &Graph{N: n, edges: edges}
}

// AddEdge connects u and v.
func (g *Graph) AddEdge(u, v int) {
	if u == v {
		return
	}
	g.edges[u][v] = true
	g.edges[v][u] = true
}

// HasEdge reports whether u and v are connected.
func (g *Graph) HasEdge(u, v int) bool { return g.edges[u][v] }

// RandomGraph returns a graph over n vertices where each edge exists
// independently with probability prob.
func RandomGraph(n int, prob float64, rng *rand.Rand) *Graph {
	g := NewGraph(n)
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if rng.Float64() < prob {
				g.AddEdge(u, v)
			}
		}
	}
	return g
}

// Partition assigns each vertex to side false or side true. Valid partitions
// hold exactly half the vertices on each side.
type Partition struct {
	Side []bool
}

// Key implements search.State.
func (p Partition) Key() string {
	buf := make([]byte, len(p.Side))
	for i, s := range p.Side {
		if s {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

func (p Partition) withSwap(u, v int) Partition {
	side := make([]bool, len(p.Side))
	copy(side, p.Side)
	side[u], side[v] = side[v], side[u]
	return Partition{Side: side}
}

// Balanced returns the partition putting vertices 0..n/2-1 on one side.
func Balanced(n int) Partition {
	side := make([]bool, n)
	for i := n / 2; i < n; i++ {
		side[i] = true
	}
	return Partition{Side: side}
}

// RandomPartition returns a uniformly random balanced partition.
func RandomPartition(n int, rng *rand.Rand) Partition {
	p := Balanced(n)
	perm := rng.Perm(n)
	side := make([]bool, n)
	for i, v := range perm {
		side[v] = p.Side[i]
	}
	return Partition{Side: side}
}

// CutSize counts edges crossing the partition.
func (g *Graph) CutSize(p Partition) int {
	cut := 0
	for u := 0; u < g.N; u++ {
		for v := u + 1; v < g.N; v++ {
			if g.edges[u][v] && p.Side[u] != p.Side[v] {
				cut++
			}
		}
	}
	return cut
}

// Problem minimizes the cut size over balanced partitions. Neighbors swap
// one vertex from each side, so balance is preserved by construction.
type Problem struct {
	graph   *Graph
	initial *search.Node
}

// New returns the partitioning problem starting from the given partition.
func New(g *Graph, start Partition) *Problem {
	return &Problem{graph: g, initial: search.NewRoot(start, 0, nil)}
}

func (p *Problem) Initial() *search.Node { return p.initial }

func (p *Problem) crossPairs(part Partition) []edgePair {
	var pairs []edgePair
	for u := 0; u < p.graph.N; u++ {
		if part.Side[u] {
			continue
		}
		for v := 0; v < p.graph.N; v++ {
			if part.Side[v] {
				pairs = append(pairs, edgePair{u, v})
			}
		}
	}
	return pairs
}

func (p *Problem) Successors(_ context.Context, n *search.Node) ([]*search.Node, error) {
	part := n.State.(Partition)
	pairs := p.crossPairs(part)
	successors := make([]*search.Node, 0, len(pairs))
	for _, pair := range pairs {
		successors = append(successors, n.Child(part.withSwap(pair.u, pair.v), [2]int{pair.u, pair.v}, 0))
	}
	return successors, nil
}

func (p *Problem) IsGoal(context.Context, *search.Node) (bool, error) {
	return false, nil
}

func (p *Problem) Value(n *search.Node) (float64, error) {
	return float64(p.graph.CutSize(n.State.(Partition))), nil
}

func (p *Problem) RandomSuccessor(_ context.Context, rng *rand.Rand, n *search.Node) (*search.Node, error) {
	part := n.State.(Partition)
	pairs := p.crossPairs(part)
	pair := pairs[rng.Intn(len(pairs))]
	return n.Child(part.withSwap(pair.u, pair.v), [2]int{pair.u, pair.v}, 0), nil
}

func (p *Problem) RandomNode(_ context.Context, rng *rand.Rand) (*search.Node, error) {
	return search.NewRoot(RandomPartition(p.graph.N, rng), 0, nil), nil
}
