package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/cmaclell/py-search/pkg/bench"
	"github.com/cmaclell/py-search/pkg/informed"
	"github.com/cmaclell/py-search/pkg/optimization"
	"github.com/cmaclell/py-search/pkg/problems/assignment"
	"github.com/cmaclell/py-search/pkg/problems/eightpuzzle"
	"github.com/cmaclell/py-search/pkg/problems/graphpart"
	"github.com/cmaclell/py-search/pkg/problems/nqueens"
	"github.com/cmaclell/py-search/pkg/search"
	"github.com/cmaclell/py-search/pkg/uninformed"
)

// Suite describes one benchmark configuration file.
type Suite struct {
	Seed       int64          `yaml:"seed"`
	Parallel   int            `yaml:"parallel"`
	Problems   []ProblemSpec  `yaml:"problems"`
	Strategies []StrategySpec `yaml:"strategies"`
}

// ProblemSpec selects one problem instance.
type ProblemSpec struct {
	Kind     string  `yaml:"kind"`
	Size     int     `yaml:"size"`
	Scramble int     `yaml:"scramble"`
	EdgeProb float64 `yaml:"edge_prob"`
}

// StrategySpec selects one strategy configuration.
type StrategySpec struct {
	Kind        string  `yaml:"kind"`
	Width       int     `yaml:"width"`
	CostLimit   float64 `yaml:"cost_limit"`
	MaxDepth    int     `yaml:"max_depth"`
	Restarts    int     `yaml:"restarts"`
	InitialTemp float64 `yaml:"initial_temp"`
	TempLength  int     `yaml:"temp_length"`
	Seed        int64   `yaml:"seed"`
}

func loadSuite(path string) (*Suite, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	suite := &Suite{Seed: 1, Parallel: 1}
	if err := yaml.Unmarshal(raw, suite); err != nil {
		return nil, err
	}
	return suite, nil
}

func runSuite(ctx context.Context, out io.Writer, logger *logrus.Logger, suite *Suite) error {
	rng := rand.New(rand.NewSource(suite.Seed))

	instances := make([]bench.Instance, 0, len(suite.Problems))
	for _, spec := range suite.Problems {
		inst, err := buildProblem(spec, rng)
		if err != nil {
			return err
		}
		instances = append(instances, inst)
	}

	strategies := make([]bench.Strategy, 0, len(suite.Strategies))
	for _, spec := range suite.Strategies {
		strat, err := buildStrategy(spec, suite.Seed)
		if err != nil {
			return err
		}
		strategies = append(strategies, strat)
	}

	results, err := bench.Compare(ctx, instances, strategies,
		bench.WithParallelism(suite.Parallel),
		bench.WithLogger(logger))
	bench.Render(out, results)
	return err
}

var problemBuilders = map[string]func(ProblemSpec, *rand.Rand) (bench.Instance, error){
	"nqueens": func(spec ProblemSpec, _ *rand.Rand) (bench.Instance, error) {
		size := spec.Size
		if size <= 0 {
			size = 6
		}
		return bench.Instance{
			Name:    fmt.Sprintf("nqueens-%d", size),
			Problem: nqueens.New(size),
		}, nil
	},
	"nqueens_local": func(spec ProblemSpec, rng *rand.Rand) (bench.Instance, error) {
		size := spec.Size
		if size <= 0 {
			size = 8
		}
		return bench.Instance{
			Name:    fmt.Sprintf("nqueens-local-%d", size),
			Problem: nqueens.NewLocal(nqueens.Random(size, rng)),
		}, nil
	},
	"eightpuzzle": func(spec ProblemSpec, rng *rand.Rand) (bench.Instance, error) {
		moves := spec.Scramble
		if moves <= 0 {
			moves = 20
		}
		return bench.Instance{
			Name:    fmt.Sprintf("eightpuzzle-%d", moves),
			Problem: eightpuzzle.New(eightpuzzle.Scramble(rng, moves)),
		}, nil
	},
	"assignment": func(spec ProblemSpec, rng *rand.Rand) (bench.Instance, error) {
		size := spec.Size
		if size <= 0 {
			size = 6
		}
		return bench.Instance{
			Name:    fmt.Sprintf("assignment-%d", size),
			Problem: assignment.New(assignment.RandomMatrix(size, rng)),
		}, nil
	},
	"assignment_local": func(spec ProblemSpec, rng *rand.Rand) (bench.Instance, error) {
		size := spec.Size
		if size <= 0 {
			size = 8
		}
		costs := assignment.RandomMatrix(size, rng)
		return bench.Instance{
			Name:    fmt.Sprintf("assignment-local-%d", size),
			Problem: assignment.NewLocal(costs, assignment.RandomAssignment(size, rng)),
		}, nil
	},
	"graphpart": func(spec ProblemSpec, rng *rand.Rand) (bench.Instance, error) {
		size := spec.Size
		if size <= 0 {
			size = 12
		}
		prob := spec.EdgeProb
		if prob <= 0 {
			prob = 0.3
		}
		g := graphpart.RandomGraph(size, prob, rng)
		return bench.Instance{
			Name:    fmt.Sprintf("graphpart-%d", size),
			Problem: graphpart.New(g, graphpart.RandomPartition(size, rng)),
		}, nil
	},
}

func buildProblem(spec ProblemSpec, rng *rand.Rand) (bench.Instance, error) {
	builder, ok := problemBuilders[spec.Kind]
	if !ok {
		return bench.Instance{}, fmt.Errorf("unknown problem kind %q", spec.Kind)
	}
	return builder(spec, rng)
}

func buildStrategy(spec StrategySpec, defaultSeed int64) (bench.Strategy, error) {
	seed := spec.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	switch spec.Kind {
	case "depth_first":
		return bench.Strategy{
			Name:  "depth-first",
			Solve: bench.FirstSolution(func(p search.Problem) search.Solutions { return uninformed.DepthFirst(p) }),
		}, nil
	case "breadth_first":
		return bench.Strategy{
			Name:  "breadth-first",
			Solve: bench.FirstSolution(func(p search.Problem) search.Solutions { return uninformed.BreadthFirst(p) }),
		}, nil
	case "iterative_deepening":
		opts := []uninformed.Option{}
		if spec.MaxDepth > 0 {
			opts = append(opts, uninformed.WithMaxDepth(spec.MaxDepth))
		}
		return bench.Strategy{
			Name: "iterative-deepening",
			Solve: bench.FirstSolution(func(p search.Problem) search.Solutions {
				return uninformed.IterativeDeepening(p, opts...)
			}),
		}, nil
	case "best_first":
		return bench.Strategy{
			Name:  "best-first",
			Solve: bench.FirstSolution(func(p search.Problem) search.Solutions { return informed.BestFirst(p) }),
		}, nil
	case "beam":
		width := spec.Width
		if width <= 0 {
			width = 3
		}
		return bench.Strategy{
			Name: fmt.Sprintf("beam-%d", width),
			Solve: bench.FirstSolution(func(p search.Problem) search.Solutions {
				return informed.Beam(p, width)
			}),
		}, nil
	case "widening_beam":
		return bench.Strategy{
			Name: "widening-beam",
			Solve: bench.FirstSolution(func(p search.Problem) search.Solutions {
				return informed.WideningBeam(p)
			}),
		}, nil
	case "ida":
		return bench.Strategy{
			Name: "iterative-deepening-best-first",
			Solve: bench.FirstSolution(func(p search.Problem) search.Solutions {
				return informed.IterativeDeepeningBestFirst(p)
			}),
		}, nil
	case "hill_climbing":
		return bench.Strategy{
			Name: "hill-climbing",
			Solve: func(ctx context.Context, p search.Problem) (*search.Node, error) {
				return optimization.HillClimbing(ctx, p,
					optimization.WithRandomRestarts(spec.Restarts),
					optimization.WithSeed(seed))
			},
		}, nil
	case "local_beam":
		width := spec.Width
		if width <= 0 {
			width = 3
		}
		return bench.Strategy{
			Name: fmt.Sprintf("local-beam-%d", width),
			Solve: func(ctx context.Context, p search.Problem) (*search.Node, error) {
				return optimization.LocalBeam(ctx, p,
					optimization.WithBeamWidth(width),
					optimization.WithSeed(seed))
			},
		}, nil
	case "annealing":
		opts := []optimization.Option{optimization.WithSeed(seed)}
		if spec.InitialTemp > 0 {
			opts = append(opts, optimization.WithInitialTemp(spec.InitialTemp))
		}
		if spec.TempLength > 0 {
			opts = append(opts, optimization.WithTempLength(spec.TempLength))
		}
		return bench.Strategy{
			Name: "simulated-annealing",
			Solve: func(ctx context.Context, p search.Problem) (*search.Node, error) {
				return optimization.SimulatedAnnealing(ctx, p, opts...)
			},
		}, nil
	case "branch_and_bound":
		return bench.Strategy{
			Name: "branch-and-bound",
			Solve: func(ctx context.Context, p search.Problem) (*search.Node, error) {
				return optimization.BranchAndBound(ctx, p)
			},
		}, nil
	default:
		return bench.Strategy{}, fmt.Errorf("unknown strategy kind %q", spec.Kind)
	}
}

func problemKinds() []string {
	kinds := make([]string, 0, len(problemBuilders))
	for kind := range problemBuilders {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func strategyKinds() []string {
	return []string{
		"annealing", "beam", "best_first", "branch_and_bound",
		"breadth_first", "depth_first", "hill_climbing", "ida",
		"iterative_deepening", "local_beam", "widening_beam",
	}
}
