// Package bench runs a set of problems against a set of strategies and
// reports per-run statistics. It is a consumer of the engine's public
// strategy interface: each run wraps the problem for counting, times the
// strategy to its first result, and records the counters in an isolated
// Result value.
package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/cmaclell/py-search/pkg/search"
)

// Instance names a problem for reporting.
type Instance struct {
	Name    string
	Problem search.Problem
}

// Strategy names a search strategy and adapts it to a uniform "solve to the
// first result" call.
type Strategy struct {
	Name  string
	Solve func(ctx context.Context, p search.Problem) (*search.Node, error)
}

// FirstSolution adapts a Solutions-producing strategy to the Strategy.Solve
// shape.
func FirstSolution(f func(p search.Problem) search.Solutions) func(context.Context, search.Problem) (*search.Node, error) {
	return func(ctx context.Context, p search.Problem) (*search.Node, error) {
		return search.First(ctx, f(p))
	}
}

// Status classifies how a run ended.
type Status string

const (
	// StatusSolved means the strategy returned a result.
	StatusSolved Status = "solved"
	// StatusExhausted means the space was fully explored with no solution.
	StatusExhausted Status = "exhausted"
	// StatusBudget means a configured bound ended the run first.
	StatusBudget Status = "budget"
	// StatusError means the run failed.
	StatusError Status = "error"
)

// Result holds everything recorded about one problem/strategy pairing.
type Result struct {
	RunID    uuid.UUID
	Problem  string
	Strategy string
	Status   Status
	Cost     float64
	Depth    int
	Stats    search.Stats
	Elapsed  time.Duration
	Err      error
}

type options struct {
	parallel int
	logger   logrus.FieldLogger
}

// Option configures a comparison.
type Option func(*options)

// WithParallelism runs up to n pairings concurrently. Every run still owns
// its own frontier, visited set and counters; the problems themselves must
// be read-only, which the Problem contract already requires.
func WithParallelism(n int) Option {
	return func(o *options) { o.parallel = n }
}

// WithLogger logs each run as it completes.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) { o.logger = logger }
}

// Compare runs every strategy against every problem and returns one Result
// per pairing, in (problem, strategy) order. Run failures are recorded on
// their Result and also aggregated into the returned error.
func Compare(ctx context.Context, instances []Instance, strategies []Strategy, opts ...Option) ([]Result, error) {
	o := options{parallel: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.parallel < 1 {
		o.parallel = 1
	}

	type pairing struct {
		idx      int
		instance Instance
		strategy Strategy
	}
	var pairings []pairing
	for _, inst := range instances {
		for _, strat := range strategies {
			pairings = append(pairings, pairing{idx: len(pairings), instance: inst, strategy: strat})
		}
	}

	// A failed run records its error on the Result instead of cancelling
	// sibling runs, so the group carries no context.
	var g errgroup.Group
	g.SetLimit(o.parallel)

	results := make([]Result, len(pairings))
	for _, pr := range pairings {
		pr := pr
		g.Go(func() error {
			results[pr.idx] = run(ctx, pr.instance, pr.strategy)
			if o.logger != nil {
				logRun(o.logger, results[pr.idx])
			}
			return nil
		})
	}
	_ = g.Wait()

	var errs *multierror.Error
	for i := range results {
		if results[i].Status == StatusError {
			errs = multierror.Append(errs, fmt.Errorf("%s/%s: %w",
				results[i].Problem, results[i].Strategy, results[i].Err))
		}
	}
	return results, errs.ErrorOrNil()
}

func run(ctx context.Context, inst Instance, strat Strategy) Result {
	res := Result{
		RunID:    uuid.New(),
		Problem:  inst.Name,
		Strategy: strat.Name,
	}

	annotated := search.Annotate(inst.Problem)
	start := time.Now()
	sol, err := strat.Solve(ctx, annotated)
	res.Elapsed = time.Since(start)
	res.Stats = annotated.Stats()

	switch {
	case err == nil && sol != nil:
		res.Status = StatusSolved
		res.Depth = sol.Depth
		if cost, verr := search.ValueOf(inst.Problem, sol); verr == nil {
			res.Cost = cost
		} else {
			res.Status = StatusError
			res.Err = verr
		}
	case errors.Is(err, search.ErrExhausted):
		res.Status = StatusExhausted
	case errors.Is(err, search.ErrBudgetExceeded):
		res.Status = StatusBudget
	default:
		res.Status = StatusError
		res.Err = err
	}
	return res
}

func logRun(logger logrus.FieldLogger, res Result) {
	entry := logger.WithFields(logrus.Fields{
		"run_id":   res.RunID,
		"problem":  res.Problem,
		"strategy": res.Strategy,
		"status":   res.Status,
		"elapsed":  res.Elapsed,
		"expanded": res.Stats.NodesExpanded,
	})
	if res.Err != nil {
		entry.WithError(res.Err).Error("run failed")
		return
	}
	entry.Info("run finished")
}

// Render writes results as a text table.
func Render(w io.Writer, results []Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		"Problem", "Strategy", "Status", "Goal Tests", "Expanded",
		"Generated", "Evaluated", "Cost", "Elapsed",
	})
	for _, res := range results {
		cost := "-"
		if res.Status == StatusSolved {
			cost = fmt.Sprintf("%.3f", res.Cost)
		}
		table.Append([]string{
			res.Problem,
			res.Strategy,
			string(res.Status),
			fmt.Sprintf("%d", res.Stats.GoalTests),
			fmt.Sprintf("%d", res.Stats.NodesExpanded),
			fmt.Sprintf("%d", res.Stats.NodesGenerated),
			fmt.Sprintf("%d", res.Stats.NodesEvaluated),
			cost,
			res.Elapsed.String(),
		})
	}
	table.Render()
}
