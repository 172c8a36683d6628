// Package informed implements the strategies guided by an evaluation
// function f(n) = path cost + heuristic estimate: best-first search (A*),
// beam search, widening beam search, and iterative-deepening best-first
// search (IDA*).
package informed

import (
	"context"
	"errors"
	"math"

	"github.com/cmaclell/py-search/pkg/search"
)

type options struct {
	costLimit    float64
	tree         bool
	initialWidth int
	maxWidth     int
	widthFactor  int
	maxCostLimit float64
	hasInitial   bool
	initialCost  float64
}

// Option configures an informed strategy.
type Option func(*options)

// WithCostLimit prunes nodes whose evaluation value exceeds limit. Pruned
// nodes count toward ErrBudgetExceeded.
func WithCostLimit(limit float64) Option {
	return func(o *options) { o.costLimit = limit }
}

// WithTreeSearch disables the visited set, allowing duplicate states.
func WithTreeSearch() Option {
	return func(o *options) { o.tree = true }
}

// WithInitialWidth sets the starting width for widening beam search.
func WithInitialWidth(width int) Option {
	return func(o *options) { o.initialWidth = width }
}

// WithMaxWidth caps the width widening beam search will try.
func WithMaxWidth(width int) Option {
	return func(o *options) { o.maxWidth = width }
}

// WithWidthFactor sets the multiplier applied to the beam width after an
// unsuccessful widening pass. Defaults to doubling.
func WithWidthFactor(factor int) Option {
	return func(o *options) { o.widthFactor = factor }
}

// WithInitialCostLimit sets the starting f-value threshold for
// iterative-deepening best-first search. Without it the threshold starts at
// the initial node's f-value.
func WithInitialCostLimit(limit float64) Option {
	return func(o *options) { o.hasInitial = true; o.initialCost = limit }
}

// WithMaxCostLimit caps the threshold iterative-deepening best-first search
// will raise to.
func WithMaxCostLimit(limit float64) Option {
	return func(o *options) { o.maxCostLimit = limit }
}

func buildOptions(opts []Option) options {
	o := options{
		costLimit:    math.Inf(1),
		initialWidth: 1,
		maxWidth:     1024,
		widthFactor:  2,
		maxCostLimit: math.Inf(1),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// valueFunc resolves the evaluation function, failing fast when the problem
// carries neither an Evaluator nor a Heuristic: such problems support only
// uninformed and optimization strategies.
func valueFunc(strategy string, p search.Problem) (func(*search.Node) (float64, error), error) {
	_, hasEval := search.AsEvaluator(p)
	_, hasHeur := search.AsHeuristic(p)
	if !hasEval && !hasHeur {
		return nil, &search.CapabilityError{Strategy: strategy, Capability: "Evaluator or Heuristic"}
	}
	return func(n *search.Node) (float64, error) {
		return search.ValueOf(p, n)
	}, nil
}

func (o options) traverseOpts() []search.TraverseOption {
	if o.tree {
		return []search.TraverseOption{search.WithTreeSearch()}
	}
	return nil
}

// BestFirst expands the frontier node with the lowest f-value first. With an
// admissible heuristic and non-negative step costs the first solution
// returned has minimal path cost (A*). A cost limit trades completeness for
// bounded exploration.
func BestFirst(p search.Problem, opts ...Option) search.Solutions {
	o := buildOptions(opts)
	value, err := valueFunc("best-first search", p)
	if err != nil {
		return search.Fail(err)
	}
	pq := search.NewPriorityQueue(value, search.WithCostLimit(o.costLimit))
	return search.Traverse(p, pq, o.traverseOpts()...)
}

// Beam is best-first search with the frontier capped at width nodes; the
// worst nodes beyond the cap are pruned irrevocably, bounding memory at the
// price of completeness. A width of zero or less means unbounded, which
// degenerates to plain best-first search.
func Beam(p search.Problem, width int, opts ...Option) search.Solutions {
	o := buildOptions(opts)
	value, err := valueFunc("beam search", p)
	if err != nil {
		return search.Fail(err)
	}
	pqOpts := []search.PQOption{search.WithCostLimit(o.costLimit)}
	if width > 0 {
		pqOpts = append(pqOpts, search.WithMaxLength(width))
	}
	pq := search.NewPriorityQueue(value, pqOpts...)
	return search.Traverse(p, pq, o.traverseOpts()...)
}

// WideningBeam repeats beam search with a growing width after each
// unsuccessful pass, trading time for completeness. The width grows by the
// configured factor (default doubling) up to the maximum width.
func WideningBeam(p search.Problem, opts ...Option) search.Solutions {
	o := buildOptions(opts)
	if o.widthFactor < 2 {
		o.widthFactor = 2
	}
	if o.initialWidth < 1 {
		o.initialWidth = 1
	}
	w := &widening{problem: p, opts: o, width: o.initialWidth}
	w.current = beamWithWidth(p, w.width, o)
	return w
}

type widening struct {
	problem search.Problem
	opts    options
	width   int
	current search.Solutions
	done    bool
	err     error
}

func (w *widening) fail(err error) (*search.Node, error) {
	w.done = true
	w.err = err
	return nil, err
}

func (w *widening) Next(ctx context.Context) (*search.Node, error) {
	if w.done {
		return nil, w.err
	}
	for {
		node, err := w.current.Next(ctx)
		if err == nil {
			return node, nil
		}
		if !errors.Is(err, search.ErrBudgetExceeded) {
			return w.fail(err)
		}
		w.width *= w.opts.widthFactor
		if w.width > w.opts.maxWidth {
			return w.fail(search.ErrBudgetExceeded)
		}
		w.current = beamWithWidth(w.problem, w.width, w.opts)
	}
}

func beamWithWidth(p search.Problem, width int, o options) search.Solutions {
	value, err := valueFunc("beam search", p)
	if err != nil {
		return search.Fail(err)
	}
	pq := search.NewPriorityQueue(value,
		search.WithCostLimit(o.costLimit),
		search.WithMaxLength(width))
	return search.Traverse(p, pq, o.traverseOpts()...)
}

// IterativeDeepeningBestFirst bounds exploration by an f-value threshold
// instead of a depth, raising the threshold to the minimum pruned f-value
// after each unsuccessful pass (IDA*). With an admissible heuristic it finds
// the optimal solution using far less memory than best-first search.
func IterativeDeepeningBestFirst(p search.Problem, opts ...Option) search.Solutions {
	o := buildOptions(opts)
	value, err := valueFunc("iterative-deepening best-first search", p)
	if err != nil {
		return search.Fail(err)
	}
	return &idaStar{problem: p, opts: o, value: value}
}

type idaStar struct {
	problem search.Problem
	opts    options
	value   func(*search.Node) (float64, error)

	started bool
	limit   float64
	pq      *search.PriorityQueue
	current search.Solutions
	done    bool
	err     error
}

func (it *idaStar) fail(err error) (*search.Node, error) {
	it.done = true
	it.err = err
	return nil, err
}

func (it *idaStar) pass() {
	it.pq = search.NewPriorityQueue(it.value, search.WithCostLimit(it.limit))
	it.current = search.Traverse(it.problem, it.pq, it.opts.traverseOpts()...)
}

func (it *idaStar) Next(ctx context.Context) (*search.Node, error) {
	if it.done {
		return nil, it.err
	}
	if !it.started {
		it.started = true
		if it.opts.hasInitial {
			it.limit = it.opts.initialCost
		} else {
			v, err := it.value(it.problem.Initial())
			if err != nil {
				return it.fail(err)
			}
			it.limit = v
		}
		it.pass()
	}
	for {
		node, err := it.current.Next(ctx)
		if err == nil {
			return node, nil
		}
		if !errors.Is(err, search.ErrBudgetExceeded) {
			return it.fail(err)
		}
		next := it.pq.MinPruned()
		if math.IsInf(next, 1) || next <= it.limit {
			return it.fail(search.ErrBudgetExceeded)
		}
		if next > it.opts.maxCostLimit {
			return it.fail(search.ErrBudgetExceeded)
		}
		it.limit = next
		it.pass()
	}
}
