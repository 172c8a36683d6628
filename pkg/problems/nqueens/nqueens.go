// Package nqueens provides two formulations of the N-Queens puzzle: a
// constructive problem that places one queen per row for the traversal
// strategies, and a complete-permutation problem whose neighborhood is pair
// swaps for the local-search strategies.
package nqueens

import (
	"context"
	"math/rand"
	"strconv"
	"strings"

	"github.com/cmaclell/py-search/pkg/search"
)

// Board is an N-Queens configuration. Rows[i] holds the column of the queen
// in row i, or -1 while the row is still empty. Column conflicts and
// diagonal conflicts are possible; row conflicts are ruled out by the
// representation.
type Board struct {
	N    int
	Rows []int
}

// NewBoard returns an empty n by n board.
func NewBoard(n int) Board {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = -1
	}
	return Board{N: n, Rows: rows}
}

// Random returns a board with one queen per row and per column, drawn as a
// uniform random permutation.
func Random(n int, rng *rand.Rand) Board {
	b := Board{N: n, Rows: rng.Perm(n)}
	return b
}

// Key implements search.State.
func (b Board) Key() string {
	var sb strings.Builder
	for i, c := range b.Rows {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(c))
	}
	return sb.String()
}

// Conflicts counts attacking queen pairs.
func (b Board) Conflicts() int {
	conflicts := 0
	for r1 := 0; r1 < b.N; r1++ {
		c1 := b.Rows[r1]
		if c1 < 0 {
			continue
		}
		for r2 := r1 + 1; r2 < b.N; r2++ {
			c2 := b.Rows[r2]
			if c2 < 0 {
				continue
			}
			if c1 == c2 || r2-r1 == c2-c1 || r2-r1 == c1-c2 {
				conflicts++
			}
		}
	}
	return conflicts
}

// Complete reports whether every row holds a queen.
func (b Board) Complete() bool {
	for _, c := range b.Rows {
		if c < 0 {
			return false
		}
	}
	return true
}

func (b Board) withQueen(row, col int) Board {
	rows := make([]int, b.N)
	copy(rows, b.Rows)
	rows[row] = col
	return Board{N: b.N, Rows: rows}
}

func (b Board) withSwap(r1, r2 int) Board {
	rows := make([]int, b.N)
	copy(rows, b.Rows)
	rows[r1], rows[r2] = rows[r2], rows[r1]
	return Board{N: b.N, Rows: rows}
}

// Placement is the constructive formulation: starting from an empty board,
// each step places a queen in the first empty row at any column that
// conflicts with nothing placed so far. Step cost is 1 and the heuristic is
// the number of rows still empty, which is admissible for unit costs.
type Placement struct {
	initial *search.Node
}

// New returns the constructive problem for an n by n board.
func New(n int) *Placement {
	return &Placement{initial: search.NewRoot(NewBoard(n), 0, nil)}
}

func (p *Placement) Initial() *search.Node { return p.initial }

func (p *Placement) Successors(_ context.Context, n *search.Node) ([]*search.Node, error) {
	board := n.State.(Board)
	row := -1
	for i, c := range board.Rows {
		if c < 0 {
			row = i
			break
		}
	}
	if row < 0 {
		return nil, nil
	}
	var successors []*search.Node
	for col := 0; col < board.N; col++ {
		next := board.withQueen(row, col)
		if next.Conflicts() > 0 {
			continue
		}
		successors = append(successors, n.Child(next, [2]int{row, col}, 1))
	}
	return successors, nil
}

func (p *Placement) IsGoal(_ context.Context, n *search.Node) (bool, error) {
	board := n.State.(Board)
	return board.Complete() && board.Conflicts() == 0, nil
}

func (p *Placement) Estimate(n *search.Node) (float64, error) {
	board := n.State.(Board)
	empty := 0
	for _, c := range board.Rows {
		if c < 0 {
			empty++
		}
	}
	return float64(empty), nil
}

// Local is the local-search formulation: states are complete permutations,
// the value minimized is the conflict count, and neighbors swap the columns
// of two rows (preserving the permutation property).
type Local struct {
	initial *search.Node
}

// NewLocal returns the local-search problem starting from the given
// complete board.
func NewLocal(board Board) *Local {
	return &Local{initial: search.NewRoot(board, 0, nil)}
}

func (p *Local) Initial() *search.Node { return p.initial }

func (p *Local) Successors(_ context.Context, n *search.Node) ([]*search.Node, error) {
	board := n.State.(Board)
	var successors []*search.Node
	for r1 := 0; r1 < board.N; r1++ {
		for r2 := r1 + 1; r2 < board.N; r2++ {
			successors = append(successors, n.Child(board.withSwap(r1, r2), [2]int{r1, r2}, 0))
		}
	}
	return successors, nil
}

func (p *Local) IsGoal(_ context.Context, n *search.Node) (bool, error) {
	return n.State.(Board).Conflicts() == 0, nil
}

func (p *Local) Value(n *search.Node) (float64, error) {
	return float64(n.State.(Board).Conflicts()), nil
}

func (p *Local) RandomSuccessor(_ context.Context, rng *rand.Rand, n *search.Node) (*search.Node, error) {
	board := n.State.(Board)
	r1 := rng.Intn(board.N)
	r2 := rng.Intn(board.N - 1)
	if r2 >= r1 {
		r2++
	}
	return n.Child(board.withSwap(r1, r2), [2]int{r1, r2}, 0), nil
}

func (p *Local) RandomNode(_ context.Context, rng *rand.Rand) (*search.Node, error) {
	board := p.initial.State.(Board)
	return search.NewRoot(Random(board.N, rng), 0, nil), nil
}
