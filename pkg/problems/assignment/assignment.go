// Package assignment implements the linear assignment problem: match n
// agents to n tasks minimizing the summed cost. The tree formulation assigns
// agents one at a time with an admissible lower-bound heuristic, which is
// what branch and bound wants; the local formulation swaps task pairs over
// complete assignments for the local-search strategies.
package assignment

import (
	"context"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/cmaclell/py-search/pkg/search"
)

// Assignment maps agent index to task index, -1 while unassigned.
type Assignment struct {
	Tasks []int
}

// Key implements search.State.
func (a Assignment) Key() string {
	var sb strings.Builder
	for i, t := range a.Tasks {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(t))
	}
	return sb.String()
}

// Complete reports whether every agent holds a task.
func (a Assignment) Complete() bool {
	for _, t := range a.Tasks {
		if t < 0 {
			return false
		}
	}
	return true
}

func (a Assignment) with(agent, task int) Assignment {
	tasks := make([]int, len(a.Tasks))
	copy(tasks, a.Tasks)
	tasks[agent] = task
	return Assignment{Tasks: tasks}
}

func (a Assignment) withSwap(i, j int) Assignment {
	tasks := make([]int, len(a.Tasks))
	copy(tasks, a.Tasks)
	tasks[i], tasks[j] = tasks[j], tasks[i]
	return Assignment{Tasks: tasks}
}

// RandomMatrix returns an n by n cost matrix with entries drawn uniformly
// from [0, 1). Costs are kept non-negative so step costs satisfy the engine
// contract.
func RandomMatrix(n int, rng *rand.Rand) [][]float64 {
	costs := make([][]float64, n)
	for i := range costs {
		costs[i] = make([]float64, n)
		for j := range costs[i] {
			costs[i][j] = rng.Float64()
		}
	}
	return costs
}

// Cost sums the matrix entries selected by a complete assignment.
func Cost(a Assignment, costs [][]float64) float64 {
	total := 0.0
	for agent, task := range a.Tasks {
		total += costs[agent][task]
	}
	return total
}

// Problem is the tree formulation: each step assigns the first free agent to
// one of the remaining tasks, at the matrix cost. The heuristic sums, for
// each free agent, the cheapest remaining task, which never overestimates.
type Problem struct {
	costs   [][]float64
	initial *search.Node
}

// New returns the tree problem for the given square cost matrix.
func New(costs [][]float64) *Problem {
	empty := Assignment{Tasks: make([]int, len(costs))}
	for i := range empty.Tasks {
		empty.Tasks[i] = -1
	}
	return &Problem{costs: costs, initial: search.NewRoot(empty, 0, nil)}
}

func (p *Problem) Initial() *search.Node { return p.initial }

func (p *Problem) free(a Assignment) (int, []int) {
	agent := -1
	taken := make([]bool, len(p.costs))
	for i, t := range a.Tasks {
		if t < 0 {
			if agent < 0 {
				agent = i
			}
		} else {
			taken[t] = true
		}
	}
	var tasks []int
	for t, used := range taken {
		if !used {
			tasks = append(tasks, t)
		}
	}
	return agent, tasks
}

func (p *Problem) Successors(_ context.Context, n *search.Node) ([]*search.Node, error) {
	a := n.State.(Assignment)
	agent, tasks := p.free(a)
	if agent < 0 {
		return nil, nil
	}
	successors := make([]*search.Node, 0, len(tasks))
	for _, t := range tasks {
		successors = append(successors, n.Child(a.with(agent, t), [2]int{agent, t}, p.costs[agent][t]))
	}
	return successors, nil
}

func (p *Problem) IsGoal(_ context.Context, n *search.Node) (bool, error) {
	return n.State.(Assignment).Complete(), nil
}

func (p *Problem) Estimate(n *search.Node) (float64, error) {
	a := n.State.(Assignment)
	taken := make([]bool, len(p.costs))
	for _, t := range a.Tasks {
		if t >= 0 {
			taken[t] = true
		}
	}
	total := 0.0
	for agent, t := range a.Tasks {
		if t >= 0 {
			continue
		}
		min := math.Inf(1)
		for task, used := range taken {
			if !used && p.costs[agent][task] < min {
				min = p.costs[agent][task]
			}
		}
		if !math.IsInf(min, 1) {
			total += min
		}
	}
	return total, nil
}

// Local is the local-search formulation over complete assignments with a
// pair-swap neighborhood. The value minimized is the total assignment cost.
type Local struct {
	costs   [][]float64
	initial *search.Node
}

// NewLocal returns the local problem starting from the given complete
// assignment.
func NewLocal(costs [][]float64, start Assignment) *Local {
	return &Local{costs: costs, initial: search.NewRoot(start, 0, nil)}
}

// RandomAssignment returns a uniformly random complete assignment.
func RandomAssignment(n int, rng *rand.Rand) Assignment {
	return Assignment{Tasks: rng.Perm(n)}
}

func (p *Local) Initial() *search.Node { return p.initial }

func (p *Local) Successors(_ context.Context, n *search.Node) ([]*search.Node, error) {
	a := n.State.(Assignment)
	size := len(a.Tasks)
	var successors []*search.Node
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			successors = append(successors, n.Child(a.withSwap(i, j), [2]int{i, j}, 0))
		}
	}
	return successors, nil
}

func (p *Local) IsGoal(context.Context, *search.Node) (bool, error) {
	// Pure optimization: there is no goal state, only better and worse ones.
	return false, nil
}

func (p *Local) Value(n *search.Node) (float64, error) {
	return Cost(n.State.(Assignment), p.costs), nil
}

func (p *Local) RandomSuccessor(_ context.Context, rng *rand.Rand, n *search.Node) (*search.Node, error) {
	a := n.State.(Assignment)
	size := len(a.Tasks)
	i := rng.Intn(size)
	j := rng.Intn(size - 1)
	if j >= i {
		j++
	}
	return n.Child(a.withSwap(i, j), [2]int{i, j}, 0), nil
}

func (p *Local) RandomNode(_ context.Context, rng *rand.Rand) (*search.Node, error) {
	return search.NewRoot(RandomAssignment(len(p.costs), rng), 0, nil), nil
}
