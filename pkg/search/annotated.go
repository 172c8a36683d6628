package search

import (
	"context"
	"math/rand"
)

// Stats counts problem-contract calls during a single run. The comparison
// harness reads these after the run; they are plain fields rather than
// shared global counters so runs stay composable and testable in isolation.
type Stats struct {
	// NodesExpanded is the number of successor requests (full expansions
	// and random-neighbor draws).
	NodesExpanded int
	// NodesGenerated is the total number of successor nodes produced.
	NodesGenerated int
	// GoalTests is the number of IsGoal calls.
	GoalTests int
	// NodesEvaluated is the number of evaluation-function computations.
	NodesEvaluated int
}

// Annotated wraps a Problem and counts contract calls. It advertises every
// capability and defers the capability check to the wrapped problem, so use
// the AsHeuristic/AsSampler/AsEvaluator probes rather than type assertions.
type Annotated struct {
	problem Problem
	stats   Stats
}

// Annotate wraps p for statistics collection. The wrapper is not safe for
// concurrent use; wrap once per run.
func Annotate(p Problem) *Annotated {
	return &Annotated{problem: p}
}

// Stats returns the counters accumulated so far.
func (a *Annotated) Stats() Stats { return a.stats }

func (a *Annotated) Initial() *Node { return a.problem.Initial() }

func (a *Annotated) Successors(ctx context.Context, n *Node) ([]*Node, error) {
	a.stats.NodesExpanded++
	successors, err := a.problem.Successors(ctx, n)
	a.stats.NodesGenerated += len(successors)
	return successors, err
}

func (a *Annotated) IsGoal(ctx context.Context, n *Node) (bool, error) {
	a.stats.GoalTests++
	return a.problem.IsGoal(ctx, n)
}

func (a *Annotated) Estimate(n *Node) (float64, error) {
	h, ok := a.problem.(Heuristic)
	if !ok {
		return 0, &CapabilityError{Strategy: "heuristic evaluation", Capability: "Heuristic"}
	}
	return h.Estimate(n)
}

func (a *Annotated) Value(n *Node) (float64, error) {
	a.stats.NodesEvaluated++
	return ValueOf(a.problem, n)
}

func (a *Annotated) RandomSuccessor(ctx context.Context, rng *rand.Rand, n *Node) (*Node, error) {
	s, ok := a.problem.(Sampler)
	if !ok {
		return nil, &CapabilityError{Strategy: "random successor", Capability: "Sampler"}
	}
	a.stats.NodesExpanded++
	succ, err := s.RandomSuccessor(ctx, rng, n)
	if succ != nil {
		a.stats.NodesGenerated++
	}
	return succ, err
}

func (a *Annotated) RandomNode(ctx context.Context, rng *rand.Rand) (*Node, error) {
	s, ok := a.problem.(Sampler)
	if !ok {
		return nil, &CapabilityError{Strategy: "random restart", Capability: "Sampler"}
	}
	return s.RandomNode(ctx, rng)
}
