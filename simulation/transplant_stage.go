package simulation

import (
	"fmt"

	"github.com/kpdsim/engine/arrangement"
	"github.com/kpdsim/engine/core"
	"github.com/kpdsim/engine/rng"
)

// runTransplantationStage realizes every queued arrangement whose
// transplant time has arrived: it first checks the §7 invariant that no
// queued node withdrew before transplant (panicking to the match-run/
// transplant-stage recovery boundary if one did), then delegates to
// arrangement.Realize for the lab-reveal/fallback/commit procedure.
func (s *Simulation) runTransplantationStage() []arrangement.TransplantRecord {
	var due []arrangement.Arrangement
	var remaining []arrangement.Arrangement
	for _, a := range s.transplantQueue {
		if a.TransplantTime <= s.currentTime {
			due = append(due, a)
		} else {
			remaining = append(remaining, a)
		}
	}
	s.transplantQueue = remaining

	if len(due) == 0 {
		return nil
	}

	cfg := arrangement.Config{
		MaxCycleSize:   s.Params.MaxCycleSize,
		MaxChainLength: s.Params.MaxChainLength,
		AllowABBridge:  s.Params.AllowABBridgeDonors,
		SolverOptions:  s.solverOptions(),
	}
	labGen := s.Streams.Get(rng.PurposeMatch)

	var records []arrangement.TransplantRecord
	for _, a := range due {
		s.assertNotWithdrawn(a)

		recs, err := arrangement.Realize(s.Pool, a, cfg, s.Scorer, labGen)
		if err != nil {
			panic(err)
		}
		records = append(records, recs...)
	}

	return records
}

func (s *Simulation) assertNotWithdrawn(a arrangement.Arrangement) {
	for _, h := range a.Handles {
		node, err := s.Pool.Node(h)
		if err != nil {
			panic(err)
		}
		if node.ObservedStatus(s.currentTime) == core.StatusWithdrawn {
			panic(fmt.Errorf("simulation: node %s withdrew before transplant time %d: %w", node.ID(), a.TransplantTime, arrangement.ErrAlreadyWithdrawn))
		}
	}
}
