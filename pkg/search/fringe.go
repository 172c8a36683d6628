package search

import (
	"math"
	"sort"
)

// Fringe is a transient container of nodes awaiting expansion. The concrete
// ordering (LIFO, FIFO, priority) is what distinguishes depth-first,
// breadth-first and best-first traversal. A fringe is created fresh per
// search call and discarded when the run ends.
type Fringe interface {
	// Push adds one node. A priority fringe may decline to add a node that
	// violates its cost limit; evaluation failures are returned.
	Push(n *Node) error
	// Pop removes and returns the next node to expand.
	Pop() (*Node, bool)
	// Len returns the number of stored nodes.
	Len() int
}

// Extend pushes nodes in order, stopping at the first error.
func Extend(f Fringe, nodes []*Node) error {
	for _, n := range nodes {
		if err := f.Push(n); err != nil {
			return err
		}
	}
	return nil
}

// pruner is implemented by fringes that can drop nodes because of a bound.
// The traversal loop uses it to distinguish an exhausted space from a
// bounded one.
type pruner interface {
	Pruned() bool
}

// LIFOQueue pops the most recently pushed node first, giving depth-first
// expansion order.
type LIFOQueue struct {
	nodes []*Node
}

// NewLIFOQueue returns an empty stack fringe.
func NewLIFOQueue() *LIFOQueue { return &LIFOQueue{} }

func (q *LIFOQueue) Push(n *Node) error {
	q.nodes = append(q.nodes, n)
	return nil
}

func (q *LIFOQueue) Pop() (*Node, bool) {
	if len(q.nodes) == 0 {
		return nil, false
	}
	n := q.nodes[len(q.nodes)-1]
	q.nodes = q.nodes[:len(q.nodes)-1]
	return n, true
}

func (q *LIFOQueue) Len() int { return len(q.nodes) }

// FIFOQueue pops the least recently pushed node first, giving breadth-first
// expansion order.
type FIFOQueue struct {
	nodes []*Node
	head  int
}

// NewFIFOQueue returns an empty queue fringe.
func NewFIFOQueue() *FIFOQueue { return &FIFOQueue{} }

func (q *FIFOQueue) Push(n *Node) error {
	q.nodes = append(q.nodes, n)
	return nil
}

func (q *FIFOQueue) Pop() (*Node, bool) {
	if q.head >= len(q.nodes) {
		return nil, false
	}
	n := q.nodes[q.head]
	q.nodes[q.head] = nil
	q.head++
	if q.head == len(q.nodes) {
		q.nodes = q.nodes[:0]
		q.head = 0
	}
	return n, true
}

func (q *FIFOQueue) Len() int { return len(q.nodes) - q.head }

type pqEntry struct {
	value float64
	seq   int
	node  *Node
}

// PriorityQueue pops the node with the lowest value first. Ties are broken
// by insertion order, so runs are reproducible for a given problem and
// tie-break rule. A cost limit rejects nodes whose value exceeds it and a
// maximum length evicts the worst nodes, which is how beam search bounds
// its frontier.
type PriorityQueue struct {
	value     func(*Node) (float64, error)
	costLimit float64
	maxLength int

	entries   []pqEntry
	seq       int
	pruned    bool
	minPruned float64
}

// PQOption configures a PriorityQueue.
type PQOption func(*PriorityQueue)

// WithCostLimit rejects nodes whose value exceeds limit.
func WithCostLimit(limit float64) PQOption {
	return func(pq *PriorityQueue) { pq.costLimit = limit }
}

// WithMaxLength keeps at most n nodes, evicting the worst on overflow.
// Zero means unbounded.
func WithMaxLength(n int) PQOption {
	return func(pq *PriorityQueue) { pq.maxLength = n }
}

// NewPriorityQueue returns a fringe ordered by the given value function,
// lowest first.
func NewPriorityQueue(value func(*Node) (float64, error), opts ...PQOption) *PriorityQueue {
	pq := &PriorityQueue{
		value:     value,
		costLimit: math.Inf(1),
		minPruned: math.Inf(1),
	}
	for _, opt := range opts {
		opt(pq)
	}
	return pq
}

func (pq *PriorityQueue) markPruned(value float64) {
	pq.pruned = true
	if value < pq.minPruned {
		pq.minPruned = value
	}
}

func (pq *PriorityQueue) Push(n *Node) error {
	v, err := pq.value(n)
	if err != nil {
		return err
	}
	if v > pq.costLimit {
		pq.markPruned(v)
		return nil
	}

	e := pqEntry{value: v, seq: pq.seq, node: n}
	pq.seq++
	// Insert after any equal values so equal-valued nodes pop in insertion
	// order.
	i := sort.Search(len(pq.entries), func(i int) bool {
		return pq.entries[i].value > v
	})
	pq.entries = append(pq.entries, pqEntry{})
	copy(pq.entries[i+1:], pq.entries[i:])
	pq.entries[i] = e

	if pq.maxLength > 0 && len(pq.entries) > pq.maxLength {
		worst := pq.entries[len(pq.entries)-1]
		pq.entries = pq.entries[:len(pq.entries)-1]
		pq.markPruned(worst.value)
	}
	return nil
}

func (pq *PriorityQueue) Pop() (*Node, bool) {
	if len(pq.entries) == 0 {
		return nil, false
	}
	n := pq.entries[0].node
	pq.entries = pq.entries[1:]
	return n, true
}

// Peek returns the best node without removing it.
func (pq *PriorityQueue) Peek() (*Node, bool) {
	if len(pq.entries) == 0 {
		return nil, false
	}
	return pq.entries[0].node, true
}

// PeekValue returns the value of the best node.
func (pq *PriorityQueue) PeekValue() (float64, bool) {
	if len(pq.entries) == 0 {
		return 0, false
	}
	return pq.entries[0].value, true
}

// UpdateCostLimit lowers the cost limit and evicts nodes that violate it.
// Branch and bound uses this to shrink the frontier when the incumbent
// solution improves.
func (pq *PriorityQueue) UpdateCostLimit(limit float64) {
	pq.costLimit = limit
	i := sort.Search(len(pq.entries), func(i int) bool {
		return pq.entries[i].value > limit
	})
	for _, e := range pq.entries[i:] {
		pq.markPruned(e.value)
	}
	pq.entries = pq.entries[:i]
}

// Clear empties the queue without touching the pruned bookkeeping.
func (pq *PriorityQueue) Clear() {
	pq.entries = pq.entries[:0]
}

func (pq *PriorityQueue) Len() int { return len(pq.entries) }

// Pruned reports whether any node was rejected or evicted because of the
// cost limit or maximum length.
func (pq *PriorityQueue) Pruned() bool { return pq.pruned }

// MinPruned returns the smallest value among pruned nodes, +Inf when nothing
// was pruned. Iterative-deepening best-first search raises its threshold to
// this value between rounds.
func (pq *PriorityQueue) MinPruned() float64 { return pq.minPruned }
