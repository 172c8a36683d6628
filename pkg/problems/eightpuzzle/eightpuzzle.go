// Package eightpuzzle implements the classic 3x3 sliding-tile puzzle with
// the Manhattan-distance and misplaced-tile heuristics.
package eightpuzzle

import (
	"context"
	"math/rand"

	"github.com/cmaclell/py-search/pkg/search"
)

// Action names the direction a tile slides into the blank.
type Action string

const (
	// Up slides the tile below the blank upward.
	Up Action = "up"
	// Down slides the tile above the blank downward.
	Down Action = "down"
	// Left slides the tile right of the blank leftward.
	Left Action = "left"
	// Right slides the tile left of the blank rightward.
	Right Action = "right"
)

// Puzzle is a board layout in row-major order; 0 is the blank.
type Puzzle [9]int

// Goal returns the solved layout with the blank in the top-left corner.
func Goal() Puzzle {
	return Puzzle{0, 1, 2, 3, 4, 5, 6, 7, 8}
}

// Key implements search.State.
func (p Puzzle) Key() string {
	buf := make([]byte, 9)
	for i, v := range p {
		buf[i] = byte('0' + v)
	}
	return string(buf)
}

func (p Puzzle) blank() int {
	for i, v := range p {
		if v == 0 {
			return i
		}
	}
	return -1
}

// Legal returns the applicable actions in a fixed order.
func (p Puzzle) Legal() []Action {
	z := p.blank()
	var actions []Action
	if z < 6 {
		actions = append(actions, Up)
	}
	if z%3 < 2 {
		actions = append(actions, Left)
	}
	if z%3 > 0 {
		actions = append(actions, Right)
	}
	if z > 2 {
		actions = append(actions, Down)
	}
	return actions
}

// Apply returns the layout after sliding a tile per the action. Applying an
// illegal action returns the layout unchanged.
func (p Puzzle) Apply(a Action) Puzzle {
	z := p.blank()
	next := p
	switch a {
	case Up:
		if z < 6 {
			next[z], next[z+3] = next[z+3], 0
		}
	case Left:
		if z%3 < 2 {
			next[z], next[z+1] = next[z+1], 0
		}
	case Right:
		if z%3 > 0 {
			next[z], next[z-1] = next[z-1], 0
		}
	case Down:
		if z > 2 {
			next[z], next[z-3] = next[z-3], 0
		}
	}
	return next
}

// Scramble applies moves random legal actions to the goal layout, so the
// result is always solvable within that many moves.
func Scramble(rng *rand.Rand, moves int) Puzzle {
	p := Goal()
	for i := 0; i < moves; i++ {
		legal := p.Legal()
		p = p.Apply(legal[rng.Intn(len(legal))])
	}
	return p
}

// Manhattan sums each tile's row plus column distance from its goal
// position, ignoring the blank. It is admissible and consistent.
func (p Puzzle) Manhattan() int {
	total := 0
	for i, v := range p {
		if v == 0 {
			continue
		}
		dr := i/3 - v/3
		if dr < 0 {
			dr = -dr
		}
		dc := i%3 - v%3
		if dc < 0 {
			dc = -dc
		}
		total += dr + dc
	}
	return total
}

// Misplaced counts tiles out of position, ignoring the blank. Admissible but
// weaker than Manhattan.
func (p Puzzle) Misplaced() int {
	count := 0
	for i, v := range p {
		if v != 0 && v != i {
			count++
		}
	}
	return count
}

// Problem searches from a start layout to the goal with unit step costs and
// the Manhattan heuristic.
type Problem struct {
	initial   *search.Node
	heuristic func(Puzzle) int
}

// ProblemOption configures the puzzle problem.
type ProblemOption func(*Problem)

// WithMisplacedTiles swaps the heuristic for the misplaced-tile count.
func WithMisplacedTiles() ProblemOption {
	return func(p *Problem) { p.heuristic = Puzzle.Misplaced }
}

// New returns the search problem for the given start layout.
func New(start Puzzle, opts ...ProblemOption) *Problem {
	p := &Problem{
		initial:   search.NewRoot(start, 0, nil),
		heuristic: Puzzle.Manhattan,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Problem) Initial() *search.Node { return p.initial }

func (p *Problem) Successors(_ context.Context, n *search.Node) ([]*search.Node, error) {
	puzzle := n.State.(Puzzle)
	legal := puzzle.Legal()
	successors := make([]*search.Node, 0, len(legal))
	for _, a := range legal {
		successors = append(successors, n.Child(puzzle.Apply(a), a, 1))
	}
	return successors, nil
}

func (p *Problem) IsGoal(_ context.Context, n *search.Node) (bool, error) {
	return n.State.(Puzzle) == Goal(), nil
}

func (p *Problem) Estimate(n *search.Node) (float64, error) {
	return float64(p.heuristic(n.State.(Puzzle))), nil
}
