package simulation

import (
	"fmt"

	"github.com/kpdsim/engine/arrangement"
	"github.com/kpdsim/engine/config"
	"github.com/kpdsim/engine/core"
	"github.com/kpdsim/engine/matchrun"
	"github.com/kpdsim/engine/rng"
	"github.com/kpdsim/engine/simlog"
	"github.com/kpdsim/engine/solver"
)

// Simulation owns one iteration's mutable pool and drives its tick loop.
// A fresh Simulation is built for every iteration, mirroring
// KPDSimulation::resetIteration's wholesale rebuild rather than mutating
// state left over from the previous iteration.
type Simulation struct {
	Pool      *core.Pool
	Params    config.Parameters
	Scorer    matchrun.Scorer
	Streams   *rng.Streams
	Logger    *simlog.Logger
	Iteration int

	currentTime     int
	currentMatchRun int
	matchRunTimes   []int
	transplantQueue []arrangement.Arrangement
}

// Result accumulates one iteration's outputs for the caller to hand to
// datasource's output sinks.
type Result struct {
	Arrangements []arrangement.Arrangement
	Transplants  []arrangement.TransplantRecord
}

// New builds a Simulation for one iteration: scorer.Pool is bound to pool so
// Score/ExpectedUtility calls resolve handles against this iteration's
// graph, and matchRunTimes is the fixed schedule every time_between_
// match_runs days through time_span, per §6. Crossmatch policy is already
// baked into the pool's recorded Match adjacency by record.BuildMatches, so
// Simulation itself never needs a crossmatch.Policy value.
func New(pool *core.Pool, params config.Parameters, scorer matchrun.Scorer, iteration int, logger *simlog.Logger) *Simulation {
	scorer.Pool = pool

	var times []int
	for t := params.TimeBetweenMatchRuns; t <= params.TimeSpan; t += params.TimeBetweenMatchRuns {
		times = append(times, t)
	}

	return &Simulation{
		Pool:          pool,
		Params:        params,
		Scorer:        scorer,
		Streams:       rng.NewStreams(params.Seeds, iteration),
		Logger:        logger.WithIteration(iteration),
		Iteration:     iteration,
		matchRunTimes: times,
	}
}

// RunIteration ticks currentTime from 1 through time_span+
// post_selection_inactive_period, running a match run whenever the
// schedule calls for one and resolving the transplant queue every tick, per
// KPDSimulation::runIteration. It returns a non-nil error, wrapping
// ErrIterationAborted, only when an invariant violation panicked; the
// returned Result still holds everything produced before the abort.
func (s *Simulation) RunIteration() (Result, error) {
	var result Result
	horizon := s.Params.TimeSpan + s.Params.PostSelectionInactivePeriod

	for s.currentTime < horizon {
		s.currentTime++

		if s.dueForMatchRun() {
			arrangements, err := s.protectMatchRun()
			if err != nil {
				return result, err
			}
			result.Arrangements = append(result.Arrangements, arrangements...)
		}

		transplants, err := s.protectTransplantStage()
		if err != nil {
			return result, err
		}
		result.Transplants = append(result.Transplants, transplants...)
	}

	return result, nil
}

func (s *Simulation) dueForMatchRun() bool {
	if len(s.matchRunTimes) == 0 || s.currentTime > s.Params.TimeSpan {
		return false
	}
	if s.matchRunTimes[0] != s.currentTime {
		return false
	}
	s.matchRunTimes = s.matchRunTimes[1:]

	return true
}

func (s *Simulation) protectMatchRun() (arrangements []arrangement.Arrangement, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("simulation: match run at time %d: %v: %w", s.currentTime, r, ErrIterationAborted)
			s.Logger.Error(err.Error())
		}
	}()

	s.currentMatchRun++
	arrangements = s.runMatchRunStage()

	return arrangements, nil
}

func (s *Simulation) protectTransplantStage() (records []arrangement.TransplantRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("simulation: transplant stage at time %d: %v: %w", s.currentTime, r, ErrIterationAborted)
			s.Logger.Error(err.Error())
		}
	}()

	records = s.runTransplantationStage()

	return records, nil
}

func (s *Simulation) solverOptions() solver.Options {
	return solver.Options{MaxThreads: 4, SuppressLog: true}
}
