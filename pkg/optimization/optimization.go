// Package optimization implements the local-search strategies. Instead of
// traversing toward a goal state they minimize the problem's evaluation
// value over a single current state (or a small beam of them) and return the
// best node seen, which is not necessarily the last one visited.
package optimization

import (
	"context"
	"math"
	"math/rand"

	"github.com/cmaclell/py-search/pkg/search"
)

const defaultSeed = 1

type options struct {
	costLimit   float64
	restarts    int
	tree        bool
	beamWidth   int
	initialTemp float64
	tempLength  int
	schedule    Schedule
	minAccept   float64
	maxIter     int
	rng         *rand.Rand
}

// Option configures an optimization strategy.
type Option func(*options)

// WithCostLimit ends the run as soon as a node with value at or below limit
// is found. It is a "good enough" threshold, so it defaults to -Inf.
func WithCostLimit(limit float64) Option {
	return func(o *options) { o.costLimit = limit }
}

// WithRandomRestarts makes hill climbing restart n additional times from
// random states, keeping the best result across restarts. Requires the
// Sampler capability.
func WithRandomRestarts(n int) Option {
	return func(o *options) { o.restarts = n }
}

// WithTreeSearch disables the visited set kept by hill climbing and local
// beam search. The visited set is what keeps those strategies from cycling
// on plateaus, so disable it only for spaces without equal-valued loops.
func WithTreeSearch() Option {
	return func(o *options) { o.tree = true }
}

// WithInitialTemp sets the starting temperature for simulated annealing.
// Zero never accepts a worsening move, which makes annealing a pure greedy
// walk ("greedy annealing").
func WithInitialTemp(t float64) Option {
	return func(o *options) { o.initialTemp = t }
}

// WithTempLength sets how many random neighbors simulated annealing draws at
// each temperature stage. Without it the neighborhood size of the initial
// state is used.
func WithTempLength(n int) Option {
	return func(o *options) { o.tempLength = n }
}

// WithSchedule sets the cooling schedule for simulated annealing.
func WithSchedule(s Schedule) Option {
	return func(o *options) { o.schedule = s }
}

// WithMinAccept sets the acceptance fraction below which a temperature stage
// counts as frozen. Annealing stops after five consecutive frozen stages
// with no improvement to the best state.
func WithMinAccept(frac float64) Option {
	return func(o *options) { o.minAccept = frac }
}

// WithMaxIterations caps the number of neighbor evaluations.
func WithMaxIterations(n int) Option {
	return func(o *options) { o.maxIter = n }
}

// WithSeed seeds the strategy's private random stream, making the run
// reproducible. The default seed is fixed, so two identical calls produce
// identical runs.
func WithSeed(seed int64) Option {
	return func(o *options) { o.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand supplies the random stream directly.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

func buildOptions(opts []Option) options {
	o := options{
		costLimit:   math.Inf(-1),
		beamWidth:   1,
		initialTemp: 1.0,
		schedule:    Geometric(0.95),
		minAccept:   0.02,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(defaultSeed))
	}
	return o
}

// HillClimbing repeatedly moves to the best neighbor of the current state,
// walking plateaus but never worsening, and stops at a local optimum. With
// random restarts it repeats from random states and returns the best node
// found across all climbs.
func HillClimbing(ctx context.Context, p search.Problem, opts ...Option) (*search.Node, error) {
	o := buildOptions(opts)

	var sampler search.Sampler
	if o.restarts > 0 {
		s, ok := search.AsSampler(p)
		if !ok {
			return nil, &search.CapabilityError{Strategy: "hill climbing with restarts", Capability: "Sampler"}
		}
		sampler = s
	}

	best := p.Initial()
	bestValue, err := search.ValueOf(p, best)
	if err != nil {
		return nil, err
	}
	if bestValue <= o.costLimit {
		return best, nil
	}

	var closed map[string]bool
	if !o.tree {
		closed = map[string]bool{best.State.Key(): true}
	}

	current, currentValue := best, bestValue
	for restarts := o.restarts; restarts >= 0; restarts-- {
		improved := true
		for improved {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			improved = false
			successors, err := p.Successors(ctx, current)
			if err != nil {
				return nil, err
			}
			for _, s := range successors {
				if closed != nil {
					key := s.State.Key()
					if closed[key] {
						continue
					}
					closed[key] = true
				}
				v, err := search.ValueOf(p, s)
				if err != nil {
					return nil, err
				}
				if v <= bestValue {
					best, bestValue = s, v
					if bestValue <= o.costLimit {
						return best, nil
					}
				}
				if v <= currentValue {
					current, currentValue = s, v
					improved = true
				}
			}
		}

		if restarts > 0 {
			restart, err := sampler.RandomNode(ctx, o.rng)
			if err != nil {
				return nil, err
			}
			if closed != nil {
				// Re-draw already-visited restarts, but give up after a
				// bounded number of attempts on small spaces.
				for attempts := 0; closed[restart.State.Key()] && attempts < 100; attempts++ {
					if restart, err = sampler.RandomNode(ctx, o.rng); err != nil {
						return nil, err
					}
				}
				closed[restart.State.Key()] = true
			}
			current = restart
			if currentValue, err = search.ValueOf(p, current); err != nil {
				return nil, err
			}
			if currentValue <= bestValue {
				best, bestValue = current, currentValue
				if bestValue <= o.costLimit {
					return best, nil
				}
			}
		}
	}
	return best, nil
}

// WithBeamWidth sets the number of simultaneous states local beam search
// maintains. Defaults to 1, which behaves like hill climbing.
func WithBeamWidth(width int) Option {
	return func(o *options) { o.beamWidth = width }
}

// LocalBeam maintains beamWidth current states at once. Each round expands
// all of them and keeps the best beamWidth among the union of parents and
// children, stopping once the best value stops improving, an iteration
// budget runs out, or a cost limit is met. A width above 1 requires the
// Sampler capability to seed the extra beam slots.
func LocalBeam(ctx context.Context, p search.Problem, opts ...Option) (*search.Node, error) {
	o := buildOptions(opts)
	if o.beamWidth < 1 {
		o.beamWidth = 1
	}

	value := func(n *search.Node) (float64, error) { return search.ValueOf(p, n) }
	fringe := search.NewPriorityQueue(value, search.WithMaxLength(o.beamWidth))
	if err := fringe.Push(p.Initial()); err != nil {
		return nil, err
	}

	if o.beamWidth > 1 {
		sampler, ok := search.AsSampler(p)
		if !ok {
			return nil, &search.CapabilityError{Strategy: "local beam search", Capability: "Sampler"}
		}
		for fringe.Len() < o.beamWidth {
			n, err := sampler.RandomNode(ctx, o.rng)
			if err != nil {
				return nil, err
			}
			if err := fringe.Push(n); err != nil {
				return nil, err
			}
		}
	}

	var closed map[string]bool
	if !o.tree {
		closed = map[string]bool{p.Initial().State.Key(): true}
	}

	var best *search.Node
	bestValue := math.Inf(1)

	for round := 0; fringe.Len() > 0; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if o.maxIter > 0 && round >= o.maxIter {
			return best, nil
		}

		roundBest, _ := fringe.Peek()
		roundValue, _ := fringe.PeekValue()
		if roundValue > bestValue {
			// The whole beam got worse: the previous best was a local
			// optimum for this beam.
			return best, nil
		}
		if roundValue < bestValue || best == nil {
			best, bestValue = roundBest, roundValue
			if bestValue <= o.costLimit {
				return best, nil
			}
		}

		parents := make([]*search.Node, 0, o.beamWidth)
		for fringe.Len() > 0 && len(parents) < o.beamWidth {
			n, _ := fringe.Pop()
			parents = append(parents, n)
		}
		fringe.Clear()

		generated := false
		for _, parent := range parents {
			successors, err := p.Successors(ctx, parent)
			if err != nil {
				return nil, err
			}
			for _, s := range successors {
				if closed != nil {
					key := s.State.Key()
					if closed[key] {
						continue
					}
					closed[key] = true
				}
				if err := fringe.Push(s); err != nil {
					return nil, err
				}
				generated = true
			}
			// Parents stay eligible so the beam keeps the best of the union
			// of current and generated states.
			if err := fringe.Push(parent); err != nil {
				return nil, err
			}
		}
		if !generated {
			// Every neighbor of the beam is already visited: nothing in the
			// beam can improve.
			break
		}
	}
	return best, nil
}

// SimulatedAnnealing draws one random neighbor per step, always accepting
// improvements and accepting a worsening move of size delta with probability
// exp(-delta/T). The temperature T decays between stages according to the
// cooling schedule, and the run stops after five consecutive stages whose
// acceptance rate falls below the minimum with no new best. The best node
// seen across the whole run is returned. Requires the Sampler capability.
//
// Formulation follows Johnson, Aragon, McGeoch & Schevon (1989),
// "Optimization by simulated annealing: an experimental evaluation, part I".
func SimulatedAnnealing(ctx context.Context, p search.Problem, opts ...Option) (*search.Node, error) {
	o := buildOptions(opts)

	sampler, ok := search.AsSampler(p)
	if !ok {
		return nil, &search.CapabilityError{Strategy: "simulated annealing", Capability: "Sampler"}
	}

	best := p.Initial()
	bestValue, err := search.ValueOf(p, best)
	if err != nil {
		return nil, err
	}
	if bestValue <= o.costLimit {
		return best, nil
	}

	tempLength := o.tempLength
	if tempLength <= 0 {
		successors, err := p.Successors(ctx, best)
		if err != nil {
			return nil, err
		}
		tempLength = len(successors)
		if tempLength == 0 {
			tempLength = 1
		}
	}

	current, currentValue := best, bestValue
	temp := o.initialTemp
	frozen := 0
	iterations := 0

	for stage := 1; frozen < 5; stage++ {
		accepted := 0
		for i := 0; i < tempLength; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			iterations++

			s, err := sampler.RandomSuccessor(ctx, o.rng, current)
			if err != nil {
				return nil, err
			}
			v, err := search.ValueOf(p, s)
			if err != nil {
				return nil, err
			}

			if v < bestValue {
				best, bestValue = s, v
				frozen = 0
			}
			if bestValue <= o.costLimit || (o.maxIter > 0 && iterations >= o.maxIter) {
				return best, nil
			}

			delta := v - currentValue
			if delta <= 0 || (temp > 1e-2 && o.rng.Float64() < math.Exp(-delta/temp)) {
				accepted++
				current, currentValue = s, v
			}
		}

		temp = o.schedule(o.initialTemp, stage)
		if float64(accepted)/float64(tempLength) < o.minAccept {
			frozen++
		}
	}
	return best, nil
}

// BranchAndBound explores the search tree in best-first order, keeping the
// cost of the best complete solution found as a global bound and pruning
// any partial node whose value reaches it. When the evaluation value is an
// admissible lower bound the returned solution is globally optimal.
// Completion is detected with IsGoal. Returns ErrExhausted when no complete
// solution exists.
func BranchAndBound(ctx context.Context, p search.Problem, opts ...Option) (*search.Node, error) {
	o := buildOptions(opts)

	value := func(n *search.Node) (float64, error) { return search.ValueOf(p, n) }
	fringe := search.NewPriorityQueue(value)
	if err := fringe.Push(p.Initial()); err != nil {
		return nil, err
	}

	var closed map[string]float64
	if !o.tree {
		closed = map[string]float64{p.Initial().State.Key(): p.Initial().PathCost}
	}

	var best *search.Node
	bestValue := math.Inf(1)

	for fringe.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		nodeValue, _ := fringe.PeekValue()
		node, _ := fringe.Pop()

		if nodeValue >= bestValue {
			// The fringe is sorted, so nothing cheaper remains.
			break
		}

		goal, err := p.IsGoal(ctx, node)
		if err != nil {
			return nil, err
		}
		if goal {
			best, bestValue = node, nodeValue
			fringe.UpdateCostLimit(bestValue)
			if bestValue <= o.costLimit {
				return best, nil
			}
			continue
		}

		successors, err := p.Successors(ctx, node)
		if err != nil {
			return nil, err
		}
		for _, s := range successors {
			if s == nil || s.State == nil {
				return nil, &search.ContractError{Reason: "nil successor", Node: node}
			}
			if closed != nil {
				key := s.State.Key()
				if prev, seen := closed[key]; seen && s.PathCost >= prev {
					continue
				}
				closed[key] = s.PathCost
			}
			if err := fringe.Push(s); err != nil {
				return nil, err
			}
		}
	}

	if best == nil {
		return nil, search.ErrExhausted
	}
	return best, nil
}
