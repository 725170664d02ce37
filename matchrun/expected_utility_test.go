package matchrun

import (
	"fmt"
	"testing"

	"github.com/kpdsim/engine/core"
	"github.com/kpdsim/engine/rng"
	"github.com/stretchr/testify/require"
)

// certainTwoCycle builds the two-pair mutual-adjacency fixture with both
// matches forced to assumed success probability 1, so every expected-utility
// estimator should collapse to the deterministic cycle value with no
// variance: donor survival defaults to 1 (Scorer.SurvivalProbability unset),
// so only the all-available, all-edges-succeed branch ever carries weight.
func certainTwoCycle(t *testing.T) (*core.Pool, Arrangement) {
	t.Helper()
	pool, h1, h2 := twoPairPool(t)
	pool.SetAdjacency(h1, h2, true)
	pool.SetAdjacency(h2, h1, true)

	forward := core.NewMatch(core.EdgeKey{DonorNode: h1, DonorIndex: 0, CandidateNode: h2}, true, core.CrossmatchSuccessful)
	forward.AssumedSuccessProbability = 1
	require.NoError(t, pool.AddMatch(forward))

	backward := core.NewMatch(core.EdgeKey{DonorNode: h2, DonorIndex: 0, CandidateNode: h1}, true, core.CrossmatchSuccessful)
	backward.AssumedSuccessProbability = 1
	require.NoError(t, pool.AddMatch(backward))

	return pool, Arrangement{Kind: KindLRS, Handles: []core.Handle{h1, h2}}
}

func TestExactExpectedUtilityCollapsesToDeterministicCycleValue(t *testing.T) {
	pool, lrs := certainTwoCycle(t)
	scorer := Scorer{Pool: pool, Scheme: SchemeTransplants}

	eu, err := ExactExpectedUtility(pool, lrs, scorer, 2, 2)
	require.NoError(t, err)
	require.Equal(t, 2.0, eu)
}

func TestExactExpectedUtilityZeroWhenNoEdgesSurvive(t *testing.T) {
	pool, h1, h2 := twoPairPool(t)
	pool.SetAdjacency(h1, h2, true)
	pool.SetAdjacency(h2, h1, true)

	forward := core.NewMatch(core.EdgeKey{DonorNode: h1, DonorIndex: 0, CandidateNode: h2}, true, core.CrossmatchSuccessful)
	forward.AssumedSuccessProbability = 0
	require.NoError(t, pool.AddMatch(forward))
	backward := core.NewMatch(core.EdgeKey{DonorNode: h2, DonorIndex: 0, CandidateNode: h1}, true, core.CrossmatchSuccessful)
	backward.AssumedSuccessProbability = 0
	require.NoError(t, pool.AddMatch(backward))

	lrs := Arrangement{Kind: KindLRS, Handles: []core.Handle{h1, h2}}
	scorer := Scorer{Pool: pool, Scheme: SchemeTransplants}

	eu, err := ExactExpectedUtility(pool, lrs, scorer, 2, 2)
	require.NoError(t, err)
	require.Equal(t, 0.0, eu)
}

func TestExactExpectedUtilityErrTooManyNodes(t *testing.T) {
	pool := core.NewPool()
	cand, err := core.NewCandidate("c1", 0, core.BloodTypeO, nil, nil)
	require.NoError(t, err)

	donors := make([]*core.Donor, 21)
	for i := range donors {
		d, err := core.NewDonor(fmt.Sprintf("d%d", i), core.BloodTypeO, nil, core.RelationSpouse)
		require.NoError(t, err)
		donors[i] = d
	}
	n, err := core.NewPairNode("P1", cand, donors, 0)
	require.NoError(t, err)
	h := pool.AddNode(n)

	lrs := Arrangement{Kind: KindLRS, Handles: []core.Handle{h}}
	scorer := Scorer{Pool: pool, Scheme: SchemeTransplants}

	_, err = ExactExpectedUtility(pool, lrs, scorer, 3, 3)
	require.ErrorIs(t, err, ErrTooManyNodes)
}

func TestMonteCarloExpectedUtilityMatchesDeterministicCycle(t *testing.T) {
	pool, lrs := certainTwoCycle(t)
	scorer := Scorer{Pool: pool, Scheme: SchemeTransplants}
	gen := rng.NewGenerator(99)

	eu := MonteCarloExpectedUtility(pool, lrs, scorer, 2, 2, 25, gen)
	require.Equal(t, 2.0, eu)
}

func TestMonteCarloExpectedUtilityZeroIterationsReturnsZero(t *testing.T) {
	pool, lrs := certainTwoCycle(t)
	scorer := Scorer{Pool: pool, Scheme: SchemeTransplants}
	gen := rng.NewGenerator(3)

	eu := MonteCarloExpectedUtility(pool, lrs, scorer, 2, 2, 0, gen)
	require.Equal(t, 0.0, eu)
}
