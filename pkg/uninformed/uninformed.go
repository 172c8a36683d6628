// Package uninformed implements the traversal strategies that use no cost or
// heuristic information: depth-first search, breadth-first search, and
// iterative deepening.
package uninformed

import (
	"context"
	"errors"

	"github.com/cmaclell/py-search/pkg/search"
)

type options struct {
	depthLimit   int
	tree         bool
	initialDepth int
	depthInc     int
	maxDepth     int
}

// Option configures an uninformed strategy.
type Option func(*options)

// WithDepthLimit bounds the search tree depth. Nodes beyond the limit are
// never expanded and count toward ErrBudgetExceeded.
func WithDepthLimit(limit int) Option {
	return func(o *options) { o.depthLimit = limit }
}

// WithTreeSearch disables the visited set, allowing duplicate states.
func WithTreeSearch() Option {
	return func(o *options) { o.tree = true }
}

// WithInitialDepth sets the starting bound for iterative deepening.
func WithInitialDepth(depth int) Option {
	return func(o *options) { o.initialDepth = depth }
}

// WithDepthIncrement sets how much iterative deepening raises the bound
// after an unsuccessful pass.
func WithDepthIncrement(inc int) Option {
	return func(o *options) { o.depthInc = inc }
}

// WithMaxDepth caps the bound iterative deepening will try. Exceeding it
// ends the run with ErrBudgetExceeded.
func WithMaxDepth(max int) Option {
	return func(o *options) { o.maxDepth = max }
}

func buildOptions(opts []Option) options {
	o := options{depthLimit: -1, depthInc: 1, maxDepth: -1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) traverseOpts() []search.TraverseOption {
	var topts []search.TraverseOption
	if o.depthLimit >= 0 {
		topts = append(topts, search.WithDepthLimit(o.depthLimit))
	}
	if o.tree {
		topts = append(topts, search.WithTreeSearch())
	}
	return topts
}

// DepthFirst explores the deepest frontier node first, using a LIFO fringe.
// Successor order decides tie-breaking: the last successor returned is the
// first one expanded.
func DepthFirst(p search.Problem, opts ...Option) search.Solutions {
	o := buildOptions(opts)
	return search.Traverse(p, search.NewLIFOQueue(), o.traverseOpts()...)
}

// BreadthFirst explores the shallowest frontier node first, using a FIFO
// fringe. For unit step costs the first solution found is at minimum depth.
func BreadthFirst(p search.Problem, opts ...Option) search.Solutions {
	o := buildOptions(opts)
	return search.Traverse(p, search.NewFIFOQueue(), o.traverseOpts()...)
}

// IterativeDeepening repeats depth-limited depth-first search with a growing
// depth bound, trading repeated work for breadth-first memory behavior. The
// run ends with ErrExhausted once a pass completes without the bound cutting
// any node, or with ErrBudgetExceeded when the maximum depth is reached.
func IterativeDeepening(p search.Problem, opts ...Option) search.Solutions {
	o := buildOptions(opts)
	if o.depthInc <= 0 {
		o.depthInc = 1
	}
	d := &deepening{problem: p, opts: o, limit: o.initialDepth}
	d.current = d.pass()
	return d
}

type deepening struct {
	problem search.Problem
	opts    options
	limit   int
	current search.Solutions
	done    bool
	err     error
}

func (d *deepening) pass() search.Solutions {
	passOpts := d.opts
	passOpts.depthLimit = d.limit
	return search.Traverse(d.problem, search.NewLIFOQueue(), passOpts.traverseOpts()...)
}

func (d *deepening) fail(err error) (*search.Node, error) {
	d.done = true
	d.err = err
	return nil, err
}

func (d *deepening) Next(ctx context.Context) (*search.Node, error) {
	if d.done {
		return nil, d.err
	}
	for {
		node, err := d.current.Next(ctx)
		if err == nil {
			return node, nil
		}
		if !errors.Is(err, search.ErrBudgetExceeded) {
			// ErrExhausted means the bound cut nothing: the space is finite
			// and fully explored, so deepening further cannot help.
			return d.fail(err)
		}
		d.limit += d.opts.depthInc
		if d.opts.maxDepth >= 0 && d.limit > d.opts.maxDepth {
			return d.fail(search.ErrBudgetExceeded)
		}
		d.current = d.pass()
	}
}
