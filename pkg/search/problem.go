package search

import (
	"context"
	"math/rand"
)

// Problem is the contract every traversal strategy operates over. Concrete
// problems implement it plus whichever optional capabilities (Heuristic,
// Sampler, Evaluator) the strategies they intend to run require. Strategies
// declare the capabilities they need and fail fast when one is absent.
//
// A Problem is read-only for the duration of a search: strategies only call
// its methods and never mutate it, so one instance may back several runs.
type Problem interface {
	// Initial returns the root node the search starts from.
	Initial() *Node

	// Successors returns the children of n. Order is significant: it is the
	// deterministic tie-break for depth-first and breadth-first expansion.
	// Each child's PathCost must be n.PathCost plus a non-negative step cost.
	Successors(ctx context.Context, n *Node) ([]*Node, error)

	// IsGoal reports whether n satisfies the goal. It is called once per
	// candidate and may be expensive.
	IsGoal(ctx context.Context, n *Node) (bool, error)
}

// Heuristic is the capability informed strategies require: an estimate of
// the remaining cost from a node to the nearest goal. Estimates must be
// non-negative; admissible (never overestimating) estimates make best-first
// search optimal.
type Heuristic interface {
	Problem
	Estimate(n *Node) (float64, error)
}

// Sampler is the capability local-search strategies require: drawing random
// neighbors and random restart states. The rand source is threaded through
// explicitly so runs are reproducible.
type Sampler interface {
	Problem
	RandomSuccessor(ctx context.Context, rng *rand.Rand, n *Node) (*Node, error)
	RandomNode(ctx context.Context, rng *rand.Rand) (*Node, error)
}

// Evaluator optionally overrides the value minimized by informed and
// optimization strategies. Without it, ValueOf falls back to PathCost plus
// the heuristic estimate when one exists, or plain PathCost otherwise.
type Evaluator interface {
	Problem
	Value(n *Node) (float64, error)
}

// ValueOf resolves the evaluation function f(n) for p: the Evaluator value
// when implemented, otherwise PathCost plus the heuristic estimate, otherwise
// PathCost alone. A negative estimate is a contract violation.
func ValueOf(p Problem, n *Node) (float64, error) {
	if a, ok := p.(*Annotated); ok {
		return a.Value(n)
	}
	if e, ok := p.(Evaluator); ok {
		return e.Value(n)
	}
	if h, ok := p.(Heuristic); ok {
		est, err := h.Estimate(n)
		if err != nil {
			return 0, err
		}
		if est < 0 {
			return 0, &ContractError{Reason: "negative heuristic estimate", Node: n}
		}
		return n.PathCost + est, nil
	}
	return n.PathCost, nil
}

// AsHeuristic reports the Heuristic capability of p, looking through
// statistics wrappers so contract-call counting is preserved.
func AsHeuristic(p Problem) (Heuristic, bool) {
	if a, ok := p.(*Annotated); ok {
		if _, ok := AsHeuristic(a.problem); ok {
			return a, true
		}
		return nil, false
	}
	h, ok := p.(Heuristic)
	return h, ok
}

// AsSampler reports the Sampler capability of p, looking through statistics
// wrappers.
func AsSampler(p Problem) (Sampler, bool) {
	if a, ok := p.(*Annotated); ok {
		if _, ok := AsSampler(a.problem); ok {
			return a, true
		}
		return nil, false
	}
	s, ok := p.(Sampler)
	return s, ok
}

// AsEvaluator reports the Evaluator capability of p, looking through
// statistics wrappers.
func AsEvaluator(p Problem) (Evaluator, bool) {
	if a, ok := p.(*Annotated); ok {
		if _, ok := AsEvaluator(a.problem); ok {
			return a, true
		}
		return nil, false
	}
	e, ok := p.(Evaluator)
	return e, ok
}
