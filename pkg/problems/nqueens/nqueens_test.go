package nqueens

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmaclell/py-search/pkg/informed"
	"github.com/cmaclell/py-search/pkg/optimization"
	"github.com/cmaclell/py-search/pkg/search"
	"github.com/cmaclell/py-search/pkg/uninformed"
)

func TestBoard(t *testing.T) {
	t.Run("EmptyBoardHasNoConflicts", func(t *testing.T) {
		b := NewBoard(4)
		assert.Equal(t, 0, b.Conflicts())
		assert.False(t, b.Complete())
	})

	t.Run("CountsColumnAndDiagonalConflicts", func(t *testing.T) {
		// Same column.
		assert.Equal(t, 1, Board{N: 2, Rows: []int{0, 0}}.Conflicts())
		// Both diagonals.
		assert.Equal(t, 1, Board{N: 2, Rows: []int{0, 1}}.Conflicts())
		assert.Equal(t, 1, Board{N: 2, Rows: []int{1, 0}}.Conflicts())
		// A known 4x4 solution.
		assert.Equal(t, 0, Board{N: 4, Rows: []int{1, 3, 0, 2}}.Conflicts())
	})

	t.Run("RandomIsAPermutation", func(t *testing.T) {
		b := Random(8, rand.New(rand.NewSource(1)))
		seen := make(map[int]bool)
		for _, c := range b.Rows {
			assert.False(t, seen[c])
			seen[c] = true
		}
		assert.True(t, b.Complete())
	})

	t.Run("KeyDistinguishesBoards", func(t *testing.T) {
		a := Board{N: 2, Rows: []int{0, 1}}
		b := Board{N: 2, Rows: []int{1, 0}}
		assert.NotEqual(t, a.Key(), b.Key())
	})
}

func TestPlacement(t *testing.T) {
	ctx := context.Background()

	t.Run("FourQueensHasExactlyTwoSolutions", func(t *testing.T) {
		nodes, err := search.Collect(ctx, uninformed.DepthFirst(New(4)), 0)
		require.NoError(t, err)
		require.Len(t, nodes, 2)
		for _, n := range nodes {
			board := n.State.(Board)
			assert.True(t, board.Complete())
			assert.Equal(t, 0, board.Conflicts())
		}
	})

	t.Run("EveryTraversalStrategySolvesFourQueens", func(t *testing.T) {
		strategies := map[string]func() search.Solutions{
			"depth-first":   func() search.Solutions { return uninformed.DepthFirst(New(4)) },
			"breadth-first": func() search.Solutions { return uninformed.BreadthFirst(New(4)) },
			"best-first":    func() search.Solutions { return informed.BestFirst(New(4)) },
		}
		for name, build := range strategies {
			n, err := search.First(ctx, build())
			require.NoError(t, err, name)
			board := n.State.(Board)
			assert.True(t, board.Complete(), name)
			assert.Equal(t, 0, board.Conflicts(), name)
		}
	})

	t.Run("ThreeQueensIsUnsolvable", func(t *testing.T) {
		_, err := search.First(ctx, uninformed.BreadthFirst(New(3)))
		assert.ErrorIs(t, err, search.ErrExhausted)
	})

	t.Run("BestFirstPlacesOneQueenPerRow", func(t *testing.T) {
		n, err := search.First(ctx, informed.BestFirst(New(6)))
		require.NoError(t, err)
		board := n.State.(Board)
		assert.Equal(t, 0, board.Conflicts())
		assert.Equal(t, 6.0, n.PathCost)
		assert.Equal(t, 6, n.Depth)
	})

	t.Run("EstimateCountsEmptyRows", func(t *testing.T) {
		p := New(4)
		est, err := p.Estimate(p.Initial())
		require.NoError(t, err)
		assert.Equal(t, 4.0, est)
	})
}

func TestLocal(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(4))

	t.Run("HillClimbingNeverWorsensConflicts", func(t *testing.T) {
		start := Random(8, rng)
		p := NewLocal(start)
		n, err := optimization.HillClimbing(ctx, p)
		require.NoError(t, err)
		assert.LessOrEqual(t, n.State.(Board).Conflicts(), start.Conflicts())
	})

	t.Run("AnnealingNeverWorsensConflicts", func(t *testing.T) {
		start := Random(8, rng)
		p := NewLocal(start)
		n, err := optimization.SimulatedAnnealing(ctx, p, optimization.WithSeed(9))
		require.NoError(t, err)
		assert.LessOrEqual(t, n.State.(Board).Conflicts(), start.Conflicts())
	})

	t.Run("SolvedBoardIsGoal", func(t *testing.T) {
		p := NewLocal(Board{N: 4, Rows: []int{1, 3, 0, 2}})
		goal, err := p.IsGoal(ctx, p.Initial())
		require.NoError(t, err)
		assert.True(t, goal)
	})

	t.Run("SwapNeighborsStayPermutations", func(t *testing.T) {
		p := NewLocal(Random(5, rng))
		successors, err := p.Successors(ctx, p.Initial())
		require.NoError(t, err)
		assert.Len(t, successors, 10)
		for _, s := range successors {
			board := s.State.(Board)
			seen := make(map[int]bool)
			for _, c := range board.Rows {
				assert.False(t, seen[c])
				seen[c] = true
			}
		}
	})

	t.Run("RandomSuccessorSwapsTwoRows", func(t *testing.T) {
		start := Random(6, rng)
		p := NewLocal(start)
		n, err := p.RandomSuccessor(ctx, rng, p.Initial())
		require.NoError(t, err)
		diff := 0
		for i, c := range n.State.(Board).Rows {
			if c != start.Rows[i] {
				diff++
			}
		}
		assert.Equal(t, 2, diff)
	})
}
