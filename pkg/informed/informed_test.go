package informed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmaclell/py-search/pkg/search"
)

type city string

func (c city) Key() string { return string(c) }

type edge struct {
	to   city
	cost float64
}

// routeProblem is a small directed route-finding map with a consistent
// heuristic. The optimal route S -> A -> B -> G costs 6; the direct hop
// A -> G is a trap for greedy expansion.
type routeProblem struct {
	edges     map[city][]edge
	estimates map[city]float64
	goal      city
}

func newRouteProblem() *routeProblem {
	return &routeProblem{
		edges: map[city][]edge{
			"S": {{"A", 1}, {"B", 4}},
			"A": {{"B", 2}, {"G", 12}},
			"B": {{"G", 3}},
		},
		estimates: map[city]float64{"S": 6, "A": 5, "B": 3, "G": 0},
		goal:      "G",
	}
}

func (p *routeProblem) Initial() *search.Node { return search.NewRoot(city("S"), 0, nil) }

func (p *routeProblem) Successors(_ context.Context, n *search.Node) ([]*search.Node, error) {
	var successors []*search.Node
	for _, e := range p.edges[n.State.(city)] {
		successors = append(successors, n.Child(e.to, string(e.to), e.cost))
	}
	return successors, nil
}

func (p *routeProblem) IsGoal(_ context.Context, n *search.Node) (bool, error) {
	return n.State.(city) == p.goal, nil
}

func (p *routeProblem) Estimate(n *search.Node) (float64, error) {
	return p.estimates[n.State.(city)], nil
}

// plainProblem strips the heuristic, for capability failure tests. The map
// is held in a named field so the Estimate method is not promoted.
type plainProblem struct{ inner *routeProblem }

func (p plainProblem) Initial() *search.Node { return p.inner.Initial() }

func (p plainProblem) Successors(ctx context.Context, n *search.Node) ([]*search.Node, error) {
	return p.inner.Successors(ctx, n)
}

func (p plainProblem) IsGoal(ctx context.Context, n *search.Node) (bool, error) {
	return p.inner.IsGoal(ctx, n)
}

func TestBestFirst(t *testing.T) {
	ctx := context.Background()

	t.Run("FindsCheapestRoute", func(t *testing.T) {
		n, err := search.First(ctx, BestFirst(newRouteProblem()))
		require.NoError(t, err)
		assert.Equal(t, city("G"), n.State)
		assert.Equal(t, 6.0, n.PathCost)
		assert.Equal(t, []any{"A", "B", "G"}, n.Path())
	})

	t.Run("CostLimitBelowOptimumReportsBudget", func(t *testing.T) {
		_, err := search.First(ctx, BestFirst(newRouteProblem(), WithCostLimit(5)))
		assert.ErrorIs(t, err, search.ErrBudgetExceeded)
	})

	t.Run("RequiresEvaluationCapability", func(t *testing.T) {
		var cerr *search.CapabilityError
		_, err := search.First(ctx, BestFirst(plainProblem{newRouteProblem()}))
		assert.ErrorAs(t, err, &cerr)
	})
}

func TestBeam(t *testing.T) {
	ctx := context.Background()

	t.Run("UnboundedWidthMatchesBestFirst", func(t *testing.T) {
		n, err := search.First(ctx, Beam(newRouteProblem(), 0))
		require.NoError(t, err)
		assert.Equal(t, 6.0, n.PathCost)
	})

	t.Run("NarrowBeamStillSolvesSmallMap", func(t *testing.T) {
		n, err := search.First(ctx, Beam(newRouteProblem(), 1))
		require.NoError(t, err)
		assert.Equal(t, city("G"), n.State)
		assert.Equal(t, 6.0, n.PathCost)
	})
}

func TestWideningBeam(t *testing.T) {
	ctx := context.Background()

	t.Run("FindsRoute", func(t *testing.T) {
		n, err := search.First(ctx, WideningBeam(newRouteProblem()))
		require.NoError(t, err)
		assert.Equal(t, 6.0, n.PathCost)
	})

	t.Run("MaxWidthReportsBudget", func(t *testing.T) {
		// A map whose only goal is priced over the cost limit never
		// succeeds, however wide the beam.
		_, err := search.First(ctx, WideningBeam(newRouteProblem(),
			WithCostLimit(5), WithMaxWidth(4)))
		assert.ErrorIs(t, err, search.ErrBudgetExceeded)
	})
}

func TestIterativeDeepeningBestFirst(t *testing.T) {
	ctx := context.Background()

	t.Run("MatchesBestFirstCost", func(t *testing.T) {
		n, err := search.First(ctx, IterativeDeepeningBestFirst(newRouteProblem()))
		require.NoError(t, err)
		assert.Equal(t, city("G"), n.State)
		assert.Equal(t, 6.0, n.PathCost)
	})

	t.Run("MaxCostLimitReportsBudget", func(t *testing.T) {
		// The cheapest route costs 6, so the threshold can never be
		// raised high enough.
		_, err := search.First(ctx, IterativeDeepeningBestFirst(newRouteProblem(),
			WithInitialCostLimit(3), WithMaxCostLimit(5)))
		assert.ErrorIs(t, err, search.ErrBudgetExceeded)
	})

	t.Run("RequiresEvaluationCapability", func(t *testing.T) {
		var cerr *search.CapabilityError
		_, err := search.First(ctx, IterativeDeepeningBestFirst(plainProblem{newRouteProblem()}))
		assert.ErrorAs(t, err, &cerr)
	})
}
