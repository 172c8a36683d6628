// Package search contains the core abstractions shared by every strategy:
// the Problem capability contract, the Node path wrapper, the fringe data
// structures that order expansion, and the generic traversal loop that
// produces solutions as a pull iterator.
package search

// State is one problem-defined configuration. Key must return a stable
// identifier that is equal for equal configurations; the engine uses it for
// visited-set membership and never inspects the state otherwise.
type State interface {
	Key() string
}

// Node wraps a state together with the path that reached it. A Node is
// immutable once created; successor generation always builds new instances.
// Multiple children may share a parent, so the nodes of one run form a tree
// rooted at the initial node.
type Node struct {
	// State is the wrapped configuration.
	State State
	// Parent is the node this one was generated from, nil for the root.
	Parent *Node
	// Action is the problem-defined operator that produced State from the
	// parent's state, nil for the root.
	Action any
	// PathCost is the cumulative cost from the root to this node.
	PathCost float64
	// Depth is the distance from the root (root = 0).
	Depth int
	// Extra carries problem-specific auxiliary data through the search
	// unchanged, typically precomputed tables that should not be rebuilt
	// at every expansion.
	Extra any
}

// NewRoot returns a depth-zero node with no parent.
func NewRoot(state State, cost float64, extra any) *Node {
	return &Node{State: state, PathCost: cost, Extra: extra}
}

// Child returns a successor of n reached by action at the given step cost.
// The child inherits the parent's Extra payload.
func (n *Node) Child(state State, action any, stepCost float64) *Node {
	return n.ChildWithExtra(state, action, stepCost, n.Extra)
}

// ChildWithExtra is Child with a replacement Extra payload.
func (n *Node) ChildWithExtra(state State, action any, stepCost float64, extra any) *Node {
	return &Node{
		State:    state,
		Parent:   n,
		Action:   action,
		PathCost: n.PathCost + stepCost,
		Depth:    n.Depth + 1,
		Extra:    extra,
	}
}

// Path returns the actions applied from the root to reach n, in order.
// Replaying them from the initial state reproduces n.State.
func (n *Node) Path() []any {
	var actions []any
	for cur := n; cur.Parent != nil; cur = cur.Parent {
		actions = append(actions, cur.Action)
	}
	for i, j := 0, len(actions)-1; i < j; i, j = i+1, j-1 {
		actions[i], actions[j] = actions[j], actions[i]
	}
	return actions
}
