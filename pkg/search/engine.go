package search

import (
	"context"
	"errors"
)

// Solutions is a pull iterator over goal nodes. Expansion work happens
// incrementally as results are consumed, so a caller that only wants the
// first solution never pays for full exploration. Next returns ErrExhausted
// once the space is fully explored, ErrBudgetExceeded when a configured
// bound cut the exploration short, and propagates problem-level errors
// unmodified. Cancelling the context ends the run at the next pull.
type Solutions interface {
	Next(ctx context.Context) (*Node, error)
}

// First returns the first solution of s.
func First(ctx context.Context, s Solutions) (*Node, error) {
	return s.Next(ctx)
}

// Collect drains s into a slice, stopping after max solutions when max > 0.
// Normal termination (ErrExhausted, ErrBudgetExceeded) is not an error;
// anything else is returned as one.
func Collect(ctx context.Context, s Solutions, max int) ([]*Node, error) {
	var nodes []*Node
	for max <= 0 || len(nodes) < max {
		n, err := s.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrExhausted) || errors.Is(err, ErrBudgetExceeded) {
				return nodes, nil
			}
			return nodes, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// Fail returns a Solutions whose Next always reports err. Strategies use it
// to fail fast on missing capabilities.
func Fail(err error) Solutions {
	return failSolutions{err: err}
}

type failSolutions struct{ err error }

func (f failSolutions) Next(context.Context) (*Node, error) { return nil, f.err }

// TraverseOption configures the generic traversal loop.
type TraverseOption func(*traversal)

// WithDepthLimit stops expanding nodes at the given depth. Nodes cut off by
// the limit count toward ErrBudgetExceeded.
func WithDepthLimit(limit int) TraverseOption {
	return func(t *traversal) { t.depthLimit = limit }
}

// WithTreeSearch disables the visited set, allowing duplicate states to be
// re-expanded. Graph search (deduplication keyed by State.Key, re-admitting
// a state only at strictly lower cost) is the default.
func WithTreeSearch() TraverseOption {
	return func(t *traversal) { t.closed = nil }
}

// Traverse drives the frontier-based search loop shared by the uninformed
// and informed strategies: pop a node, test it against the goal, expand it
// through the fringe. The fringe ordering decides the strategy.
func Traverse(p Problem, fringe Fringe, opts ...TraverseOption) Solutions {
	t := &traversal{
		problem:    p,
		fringe:     fringe,
		closed:     map[string]float64{},
		depthLimit: -1,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type traversal struct {
	problem    Problem
	fringe     Fringe
	closed     map[string]float64 // nil for tree search
	depthLimit int                // -1 for unbounded

	started   bool
	truncated bool
	done      bool
	err       error
}

func (t *traversal) fail(err error) (*Node, error) {
	t.done = true
	t.err = err
	return nil, err
}

func (t *traversal) Next(ctx context.Context) (*Node, error) {
	if t.done {
		return nil, t.err
	}
	if !t.started {
		t.started = true
		initial := t.problem.Initial()
		if initial == nil || initial.State == nil {
			return t.fail(&ContractError{Reason: "nil initial node"})
		}
		if err := t.fringe.Push(initial); err != nil {
			return t.fail(err)
		}
		if t.closed != nil {
			t.closed[initial.State.Key()] = initial.PathCost
		}
	}

	for t.fringe.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return t.fail(err)
		}
		node, _ := t.fringe.Pop()

		goal, err := t.problem.IsGoal(ctx, node)
		if err != nil {
			return t.fail(err)
		}
		if goal {
			return node, nil
		}
		if t.depthLimit >= 0 && node.Depth >= t.depthLimit {
			t.truncated = true
			continue
		}

		successors, err := t.problem.Successors(ctx, node)
		if err != nil {
			return t.fail(err)
		}
		for _, s := range successors {
			if s == nil || s.State == nil {
				return t.fail(&ContractError{Reason: "nil successor", Node: node})
			}
			if s.PathCost < node.PathCost {
				return t.fail(&ContractError{Reason: "negative step cost", Node: s})
			}
			if t.closed != nil {
				key := s.State.Key()
				if best, seen := t.closed[key]; seen && s.PathCost >= best {
					continue
				}
				t.closed[key] = s.PathCost
			}
			if err := t.fringe.Push(s); err != nil {
				return t.fail(err)
			}
		}
	}

	if pr, ok := t.fringe.(pruner); ok && pr.Pruned() {
		t.truncated = true
	}
	if t.truncated {
		return t.fail(ErrBudgetExceeded)
	}
	return t.fail(ErrExhausted)
}
