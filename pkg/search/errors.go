package search

import (
	"errors"
	"fmt"
)

// ErrExhausted is returned by Solutions.Next once the frontier has emptied
// without any configured bound cutting a node: every reachable state was
// considered and no further solutions exist.
var ErrExhausted = errors.New("search space exhausted")

// ErrBudgetExceeded is returned by Solutions.Next when a configured limit
// (depth bound, cost limit, beam width, iteration cap) pruned at least one
// node before the frontier emptied, so unexplored states may remain.
var ErrBudgetExceeded = errors.New("search budget exceeded")

// ContractError reports malformed data returned by a Problem implementation,
// such as a negative step cost or a negative heuristic estimate. It is a
// programmer error in the problem definition and aborts the run immediately.
type ContractError struct {
	Reason string
	Node   *Node
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("problem contract violation: %s", e.Reason)
}

// CapabilityError reports that a strategy was given a problem lacking a
// capability it requires, e.g. simulated annealing over a problem with no
// RandomSuccessor.
type CapabilityError struct {
	Strategy   string
	Capability string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s requires a problem implementing %s", e.Strategy, e.Capability)
}
