package simulation

import (
	"errors"
	"strconv"

	"github.com/kpdsim/engine/arrangement"
	"github.com/kpdsim/engine/config"
	"github.com/kpdsim/engine/core"
	"github.com/kpdsim/engine/matchrun"
	"github.com/kpdsim/engine/solver"
)

// runMatchRunStage enumerates candidate structures over the currently
// active pool, scores each, solves the vertex-disjoint selection, and
// enqueues every selected structure onto the transplant queue — the Go
// shape of runMatchRunStage's collect/score/select/enqueue sequence.
func (s *Simulation) runMatchRunStage() []arrangement.Arrangement {
	active := s.Pool.ActiveHandles(s.currentTime)
	candidates := s.enumerate(active)
	s.Logger.WithMatchRun(s.currentMatchRun).Info("candidate arrangements: " + strconv.Itoa(len(candidates)))

	if len(candidates) == 0 {
		return nil
	}

	items := make([]solver.Item, len(candidates))
	utilities := make([]float64, len(candidates))
	for i, c := range candidates {
		u := s.scoreArrangement(c)
		utilities[i] = u
		items[i] = solver.Item{Utility: u, Vertices: handlesToInts(c.Handles)}
	}

	result := solver.Optimize(items, s.solverOptions())
	if result.Status != solver.StatusOptimal {
		s.Logger.WithMatchRun(s.currentMatchRun).Warn("solver returned non-optimal status: " + result.Status.String())
		return nil
	}

	selected := make([]arrangement.Arrangement, 0, len(result.Selected))
	for _, idx := range result.Selected {
		c := candidates[idx]
		for _, h := range c.Handles {
			node, err := s.Pool.Node(h)
			if err != nil {
				panic(err)
			}
			if err := node.SetTransplantStatus(core.TransplantInProgress); err != nil {
				panic(err)
			}
		}

		selected = append(selected, arrangement.Enqueue(c, utilities[idx], s.Iteration, s.currentMatchRun, s.currentTime, s.Params.ProcessingDelay))
	}

	s.transplantQueue = append(s.transplantQueue, selected...)

	return selected
}

// enumerate dispatches on the configured optimization scheme: LRS uses the
// pairs-only/NDD-including BFS passes, the two cycles/chains schemes share
// the same DFS enumeration — §4.5's fallback re-optimization runs
// unconditionally inside arrangement.Realize regardless of which scheme
// selected the structure (see DESIGN.md Open Questions).
func (s *Simulation) enumerate(active []core.Handle) []matchrun.Arrangement {
	if s.Params.OptimizationScheme == config.LocallyRelevantSubsets {
		return matchrun.EnumerateLRS(s.Pool, active, s.Params.MaxLRSSize, s.Params.MaxCycleSize, s.Params.MaxChainLength)
	}

	return matchrun.EnumerateCyclesAndChains(s.Pool, active, s.Params.MaxCycleSize, s.Params.MaxChainLength, s.Params.AllowABBridgeDonors)
}

// scoreArrangement applies the configured utility scheme, switching to
// expected-utility estimation when configured, per §4.3's EXPANSION
// estimate_expected_utility wiring.
func (s *Simulation) scoreArrangement(c matchrun.Arrangement) float64 {
	if !s.Params.EstimateExpectedUtility {
		return s.Scorer.Score(c)
	}

	eu, err := matchrun.ExactExpectedUtility(s.Pool, c, s.Scorer, s.Params.MaxCycleSize, s.Params.MaxChainLength)
	if err == nil {
		return eu
	}
	if errors.Is(err, matchrun.ErrTooManyNodes) {
		gen := s.Streams.ExpectedUtilityGenerator(s.currentTime)
		return matchrun.MonteCarloExpectedUtility(s.Pool, c, s.Scorer, s.Params.MaxCycleSize, s.Params.MaxChainLength, s.Params.NEUIterations, gen)
	}
	panic(err)
}

func handlesToInts(handles []core.Handle) []int {
	out := make([]int, len(handles))
	for i, h := range handles {
		out[i] = int(h)
	}

	return out
}
