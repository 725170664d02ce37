package matchrun

import "github.com/kpdsim/engine/core"

// UtilityScheme selects how a single donor->candidate edge's value is
// computed, per §4.3.
type UtilityScheme int

const (
	SchemeTransplants UtilityScheme = iota
	Scheme5YSurvival
	Scheme10YSurvival
	SchemeDifficulty
	SchemeRandom
)

// PRAAdvantage configures the high-PRA bonus added to each edge whose
// candidate meets the configured cutoff.
type PRAAdvantage struct {
	Cutoff int
	Value  float64
}

// Scorer computes deterministic utility for cycles and chains. It wraps
// core.Match.SchemeValue, which already encodes the per-scheme edge value
// (see core/match.go), and adds the PRA bonus and cycle-closing edge
// handling described in §4.3.
type Scorer struct {
	Pool     *core.Pool
	Scheme   UtilityScheme
	PRABonus PRAAdvantage

	// SurvivalProbability supplies p_ndd/p_pair, the per-donor assumed
	// survival probability §4.3's expected-utility estimators multiply
	// into P(S). A nil function means every donor survives with
	// probability 1 (record.NewScorer wires in the loaded survival
	// parameter table; see DESIGN.md).
	SurvivalProbability func(*core.Donor) float64
}

// survivalProbability applies SurvivalProbability, defaulting to 1.0 when
// unset.
func (s Scorer) survivalProbability(d *core.Donor) float64 {
	if s.SurvivalProbability == nil {
		return 1.0
	}

	return s.SurvivalProbability(d)
}

// Score computes the deterministic utility of a cycle or chain: the sum,
// over each directed edge in order (including the closing edge for a
// cycle), of the best adjacent donor's scheme value, plus the PRA bonus for
// each edge whose candidate qualifies.
func (s Scorer) Score(a Arrangement) float64 {
	total := 0.0
	for _, e := range a.edges() {
		total += s.bestDonorUtility(e[0], e[1])
	}

	return total
}

// bestDonorUtility finds, among donors at u adjacent to v, the one with the
// maximal scheme value, and returns that value plus the PRA bonus when v's
// candidate qualifies. Returns 0 when u has no adjacency-true donor to v.
func (s Scorer) bestDonorUtility(u, v core.Handle) float64 {
	best := 0.0
	found := false

	for i := range mustNode(s.Pool, u).Donors() {
		m := s.Pool.Matches(u, v)
		match := matchForDonor(m, i)
		if match == nil || !match.Adjacency {
			continue
		}

		candidateIsPair := mustNode(s.Pool, v).Kind() == core.KindPair
		val := match.SchemeValue(int(s.Scheme), candidateIsPair)
		if !found || val > best {
			best = val
			found = true
		}
	}

	if found {
		best += s.praBonus(v)
	}

	return best
}

func matchForDonor(matches []*core.Match, donorIndex int) *core.Match {
	for _, m := range matches {
		if m.Key.DonorIndex == donorIndex {
			return m
		}
	}

	return nil
}

func (s Scorer) praBonus(v core.Handle) float64 {
	n := mustNode(s.Pool, v)
	if n.Kind() != core.KindPair {
		return 0
	}

	if n.Candidate().PRA() >= s.PRABonus.Cutoff {
		return s.PRABonus.Value
	}

	return 0
}
