package search

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotated(t *testing.T) {
	ctx := context.Background()

	t.Run("CountsContractCalls", func(t *testing.T) {
		a := Annotate(&lineProblem{max: 2})
		root := a.Initial()

		goal, err := a.IsGoal(ctx, root)
		require.NoError(t, err)
		assert.False(t, goal)

		successors, err := a.Successors(ctx, root)
		require.NoError(t, err)
		require.Len(t, successors, 2)

		_, err = a.Value(root)
		require.NoError(t, err)

		stats := a.Stats()
		assert.Equal(t, 1, stats.GoalTests)
		assert.Equal(t, 1, stats.NodesExpanded)
		assert.Equal(t, 2, stats.NodesGenerated)
		assert.Equal(t, 1, stats.NodesEvaluated)
	})

	t.Run("CountsRandomDraws", func(t *testing.T) {
		a := Annotate(&samplerProblem{})
		rng := rand.New(rand.NewSource(1))

		s, err := a.RandomSuccessor(ctx, rng, a.Initial())
		require.NoError(t, err)
		require.NotNil(t, s)

		stats := a.Stats()
		assert.Equal(t, 1, stats.NodesExpanded)
		assert.Equal(t, 1, stats.NodesGenerated)
	})

	t.Run("MissingCapabilityFails", func(t *testing.T) {
		a := Annotate(&lineProblem{max: 2})
		rng := rand.New(rand.NewSource(1))

		var cerr *CapabilityError
		_, err := a.Estimate(a.Initial())
		assert.ErrorAs(t, err, &cerr)
		_, err = a.RandomSuccessor(ctx, rng, a.Initial())
		assert.ErrorAs(t, err, &cerr)
		_, err = a.RandomNode(ctx, rng)
		assert.ErrorAs(t, err, &cerr)
	})

	t.Run("ValueDelegatesToWrappedProblem", func(t *testing.T) {
		a := Annotate(&evaluatorProblem{value: 9})
		v, err := a.Value(NewRoot(intState(0), 3, nil))
		require.NoError(t, err)
		assert.Equal(t, 9.0, v)
	})
}
