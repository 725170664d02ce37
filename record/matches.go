package record

import (
	"fmt"

	"github.com/kpdsim/engine/config"
	"github.com/kpdsim/engine/core"
	"github.com/kpdsim/engine/crossmatch"
	"github.com/kpdsim/engine/rng"
)

// transplantDifficultyBaseline and transplantDifficultyHard mirror
// generateMatch's hard-coded difficulty assignment: every match starts
// near-zero difficulty, except a high-PRA candidate or an AB donor, which
// is scored maximally difficult.
const (
	transplantDifficultyBaseline = 0.0001
	transplantDifficultyHard     = 1.0
	pra97Cutoff                  = 97
)

// successProbabilityByPRA mirrors generateMatch's PRA-banded assumed/actual
// success probability: lower PRA candidates are assigned a higher
// probability of a successful transplant, in four fixed bands.
func successProbabilityByPRA(pra int) float64 {
	switch {
	case pra < 25:
		return 0.95
	case pra < 50:
		return 0.8
	case pra < 75:
		return 0.65
	default:
		return 0.5
	}
}

// BuildMatches computes a core.Match for every donor/candidate pair across
// handles: for each donor slot on a PAIR/NDD/BRIDGE node and each candidate
// on a distinct PAIR node, it runs the virtual crossmatch, and for
// allowable edges draws the utility/probability fields generateMatch
// assigns at match-generation time (survival scores, difficulty, assumed
// and actual success probability, the resulting lab-crossmatch draw is left
// to core.Match.RevealLab, called from arrangement.Realize at transplant
// time, not drawn here).
func BuildMatches(pool *core.Pool, handles []core.Handle, equiv crossmatch.EquivalenceDictionary, policy crossmatch.Policy, scorer SurvivalScorer, gen *rng.Generator) error {
	for _, donorHandle := range handles {
		donorNode, err := pool.Node(donorHandle)
		if err != nil {
			return fmt.Errorf("record: BuildMatches: %w", err)
		}

		for donorIdx, donor := range donorNode.Donors() {
			for _, candidateHandle := range handles {
				if candidateHandle == donorHandle {
					continue
				}
				candidateNode, err := pool.Node(candidateHandle)
				if err != nil {
					return fmt.Errorf("record: BuildMatches: %w", err)
				}
				candidate := candidateNode.Candidate()
				if candidate == nil {
					continue
				}

				key := core.EdgeKey{DonorNode: donorHandle, DonorIndex: donorIdx, CandidateNode: candidateHandle}
				if err := addMatch(pool, key, candidate, donor, equiv, policy, scorer, gen); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func addMatch(pool *core.Pool, key core.EdgeKey, candidate *core.Candidate, donor *core.Donor, equiv crossmatch.EquivalenceDictionary, policy crossmatch.Policy, scorer SurvivalScorer, gen *rng.Generator) error {
	code := crossmatch.Virtual(candidate, donor, equiv)
	adjacency := crossmatch.Allowable(code, policy)

	m := core.NewMatch(key, adjacency, code)
	if adjacency {
		m.FiveYearSurvival = scorer.Estimate(candidate, donor, fiveYearHorizon)
		m.TenYearSurvival = scorer.Estimate(candidate, donor, tenYearHorizon)
		m.DifficultyScore = transplantDifficultyScore(candidate, donor)
		m.RandomUniform = gen.Float64()

		prob := successProbabilityByPRA(candidate.PRA())
		m.ActualSuccessProbability = prob
		m.AssumedSuccessProbability = prob
	}

	return pool.AddMatch(m)
}

func transplantDifficultyScore(candidate *core.Candidate, donor *core.Donor) float64 {
	if candidate.PRA() >= pra97Cutoff || donor.BloodType() == core.BloodTypeAB {
		return transplantDifficultyHard
	}

	return transplantDifficultyBaseline
}

// ApplyPlanningModel enforces the configured assumed/actual probability
// split: under PerfectInformation every allowable match's
// AssumedSuccessProbability collapses to 1, matching the original's several
// hard-coded assumed_success_probability=1 call sites named in §4.3's
// EXPANSION; Parameterized leaves the loaded/drawn assumed probability as
// computed by BuildMatches untouched.
func ApplyPlanningModel(pool *core.Pool, model config.PlanningModel) {
	if model != config.PerfectInformation {
		return
	}
	for _, m := range pool.AllMatches() {
		if m.Adjacency {
			m.AssumedSuccessProbability = 1
		}
	}
}
