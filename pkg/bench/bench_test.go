package bench

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmaclell/py-search/pkg/problems/nqueens"
	"github.com/cmaclell/py-search/pkg/search"
	"github.com/cmaclell/py-search/pkg/uninformed"
)

func queensInstances() []Instance {
	return []Instance{
		{Name: "queens-4", Problem: nqueens.New(4)},
		{Name: "queens-5", Problem: nqueens.New(5)},
	}
}

func breadthFirst() Strategy {
	return Strategy{
		Name:  "breadth-first",
		Solve: FirstSolution(func(p search.Problem) search.Solutions { return uninformed.BreadthFirst(p) }),
	}
}

func depthFirst() Strategy {
	return Strategy{
		Name:  "depth-first",
		Solve: FirstSolution(func(p search.Problem) search.Solutions { return uninformed.DepthFirst(p) }),
	}
}

func TestCompare(t *testing.T) {
	ctx := context.Background()

	t.Run("OneResultPerPairingInOrder", func(t *testing.T) {
		results, err := Compare(ctx, queensInstances(), []Strategy{breadthFirst(), depthFirst()})
		require.NoError(t, err)
		require.Len(t, results, 4)

		assert.Equal(t, "queens-4", results[0].Problem)
		assert.Equal(t, "breadth-first", results[0].Strategy)
		assert.Equal(t, "queens-4", results[1].Problem)
		assert.Equal(t, "depth-first", results[1].Strategy)
		assert.Equal(t, "queens-5", results[2].Problem)

		for _, res := range results {
			assert.Equal(t, StatusSolved, res.Status)
			assert.Greater(t, res.Stats.GoalTests, 0)
			assert.Greater(t, res.Stats.NodesExpanded, 0)
			assert.NotZero(t, res.RunID)
		}
	})

	t.Run("SolvedRunsRecordCostAndDepth", func(t *testing.T) {
		results, err := Compare(ctx, queensInstances()[:1], []Strategy{breadthFirst()})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, 4.0, results[0].Cost)
		assert.Equal(t, 4, results[0].Depth)
	})

	t.Run("ParallelMatchesSequential", func(t *testing.T) {
		strategies := []Strategy{breadthFirst(), depthFirst()}
		sequential, err := Compare(ctx, queensInstances(), strategies)
		require.NoError(t, err)
		parallel, err := Compare(ctx, queensInstances(), strategies, WithParallelism(4))
		require.NoError(t, err)

		require.Len(t, parallel, len(sequential))
		for i := range sequential {
			assert.Equal(t, sequential[i].Problem, parallel[i].Problem)
			assert.Equal(t, sequential[i].Strategy, parallel[i].Strategy)
			assert.Equal(t, sequential[i].Status, parallel[i].Status)
			assert.Equal(t, sequential[i].Stats, parallel[i].Stats)
		}
	})

	t.Run("ClassifiesExhaustedAndBudget", func(t *testing.T) {
		unsolvable := []Instance{{Name: "queens-3", Problem: nqueens.New(3)}}
		truncated := Strategy{
			Name: "shallow",
			Solve: FirstSolution(func(p search.Problem) search.Solutions {
				return uninformed.DepthFirst(p, uninformed.WithDepthLimit(1))
			}),
		}

		results, err := Compare(ctx, unsolvable, []Strategy{depthFirst(), truncated})
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, StatusExhausted, results[0].Status)
		assert.Equal(t, StatusBudget, results[1].Status)
	})

	t.Run("FailedRunsAreRecordedAndAggregated", func(t *testing.T) {
		boom := errors.New("boom")
		failing := Strategy{
			Name: "failing",
			Solve: func(context.Context, search.Problem) (*search.Node, error) {
				return nil, boom
			},
		}

		results, err := Compare(ctx, queensInstances()[:1], []Strategy{failing, breadthFirst()})
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		require.Len(t, results, 2)
		assert.Equal(t, StatusError, results[0].Status)
		assert.ErrorIs(t, results[0].Err, boom)
		// The sibling run is unaffected.
		assert.Equal(t, StatusSolved, results[1].Status)
	})

	t.Run("LogsEveryRun", func(t *testing.T) {
		logger, hook := logtest.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)

		_, err := Compare(ctx, queensInstances()[:1], []Strategy{breadthFirst()},
			WithLogger(logger))
		require.NoError(t, err)
		require.Len(t, hook.Entries, 1)
		assert.Equal(t, "run finished", hook.LastEntry().Message)
		assert.Equal(t, "queens-4", hook.LastEntry().Data["problem"])
	})
}

func TestRender(t *testing.T) {
	results := []Result{
		{
			Problem:  "queens-4",
			Strategy: "breadth-first",
			Status:   StatusSolved,
			Cost:     4,
			Stats:    search.Stats{GoalTests: 10, NodesExpanded: 9, NodesGenerated: 20},
		},
		{
			Problem:  "queens-3",
			Strategy: "depth-first",
			Status:   StatusExhausted,
		},
	}

	var buf bytes.Buffer
	Render(&buf, results)
	out := buf.String()

	assert.Contains(t, out, "queens-4")
	assert.Contains(t, out, "breadth-first")
	assert.Contains(t, out, "solved")
	assert.Contains(t, out, "4.000")
	// Unsolved runs render no cost.
	assert.Contains(t, out, "exhausted")
}
