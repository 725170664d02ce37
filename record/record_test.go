package record

import (
	"testing"

	"github.com/kpdsim/engine/config"
	"github.com/kpdsim/engine/core"
	"github.com/kpdsim/engine/crossmatch"
	"github.com/kpdsim/engine/datasource"
	"github.com/kpdsim/engine/rng"
	"github.com/stretchr/testify/require"
)

func samplePairAndNDDRows() []datasource.KPDRow {
	return []datasource.KPDRow{
		{
			MatchingID:         1,
			CandidateID:        "c1",
			CandidateBloodType: core.BloodTypeA,
			CandidatePRA:       10,
			CandidateAge:       40,
			DonorID:            "d1",
			DonorBloodType:     core.BloodTypeB,
			DonorRelation:      core.RelationSpouse,
			DonorAge:           45,
			DonorHeightCM:      170,
			DonorWeightKG:      70,
		},
		{
			MatchingID:     2,
			IsNDD:          true,
			DonorID:        "ndd1",
			DonorBloodType: core.BloodTypeO,
			DonorRelation:  core.RelationNonDirected,
			DonorAge:       30,
		},
	}
}

func TestBuildPoolGroupsRowsByMatchingID(t *testing.T) {
	pool, err := BuildPool(samplePairAndNDDRows(), 0)
	require.NoError(t, err)
	require.Equal(t, 2, pool.NumNodes())

	handles := pool.Handles()
	var sawPair, sawNDD bool
	for _, h := range handles {
		n, err := pool.Node(h)
		require.NoError(t, err)
		switch n.Kind() {
		case core.KindPair:
			sawPair = true
			require.Equal(t, "c1", n.Candidate().ID())
		case core.KindNDD:
			sawNDD = true
		}
	}
	require.True(t, sawPair)
	require.True(t, sawNDD)
}

func TestBuildPoolMultipleDonorsShareOneNode(t *testing.T) {
	rows := []datasource.KPDRow{
		{MatchingID: 5, CandidateID: "c5", CandidateBloodType: core.BloodTypeO, DonorID: "d5a", DonorBloodType: core.BloodTypeO},
		{MatchingID: 5, CandidateID: "c5", CandidateBloodType: core.BloodTypeO, DonorID: "d5b", DonorBloodType: core.BloodTypeA},
	}
	pool, err := BuildPool(rows, 0)
	require.NoError(t, err)
	require.Equal(t, 1, pool.NumNodes())

	n, err := pool.Node(pool.Handles()[0])
	require.NoError(t, err)
	require.Len(t, n.Donors(), 2)
}

func TestBuildPoolRejectsPairRowWithoutCandidate(t *testing.T) {
	rows := []datasource.KPDRow{
		{MatchingID: 9, DonorID: "d9", DonorBloodType: core.BloodTypeO},
	}
	_, err := BuildPool(rows, 0)
	require.ErrorIs(t, err, ErrPairWithoutCandidate)
}

func TestBuildMatchesComputesAdjacencyAndUtility(t *testing.T) {
	pool, err := BuildPool(samplePairAndNDDRows(), 0)
	require.NoError(t, err)

	handles := pool.Handles()
	policy := crossmatch.Policy{AllowDesensitization: false, ReserveODonorsForOCandidates: false}
	scorer := NewSurvivalScorer(map[string]datasource.SurvivalParameterRow{
		"HLA ABDR Mismatch": {FiveYear: 0.8, TenYear: 0.6},
	})
	gen := rng.NewGenerator(1)

	require.NoError(t, BuildMatches(pool, handles, nil, policy, scorer, gen))

	matches := pool.AllMatches()
	require.NotEmpty(t, matches)
	for _, m := range matches {
		if m.Adjacency {
			require.Greater(t, m.FiveYearSurvival, 0.0)
			require.GreaterOrEqual(t, m.AssumedSuccessProbability, 0.5)
		}
	}
}

func TestApplyPlanningModelCollapsesAssumedProbability(t *testing.T) {
	pool, err := BuildPool(samplePairAndNDDRows(), 0)
	require.NoError(t, err)

	handles := pool.Handles()
	policy := crossmatch.Policy{ReserveODonorsForOCandidates: false}
	scorer := NewSurvivalScorer(nil)
	gen := rng.NewGenerator(1)
	require.NoError(t, BuildMatches(pool, handles, nil, policy, scorer, gen))

	ApplyPlanningModel(pool, config.PerfectInformation)
	for _, m := range pool.AllMatches() {
		if m.Adjacency {
			require.Equal(t, 1.0, m.AssumedSuccessProbability)
		}
	}
}

func TestGenerateTimelinesPairReachesWithdrawnOrEndsAtHorizon(t *testing.T) {
	pool, err := BuildPool(samplePairAndNDDRows(), 0)
	require.NoError(t, err)

	params := config.Defaults()
	params.TimeSpan = 30
	params.PostSelectionInactivePeriod = 0
	params.ProbPairAttrition = 1.0

	gen := rng.NewGenerator(7)
	GenerateTimelines(pool, pool.Handles(), params, gen)

	for _, h := range pool.Handles() {
		n, err := pool.Node(h)
		require.NoError(t, err)
		if n.Kind() == core.KindPair {
			require.Equal(t, core.StatusWithdrawn, n.ObservedStatus(params.TimeSpan))
		}
	}
}

func TestSurvivalScorerEstimateIsClampedToUnitInterval(t *testing.T) {
	scorer := NewSurvivalScorer(map[string]datasource.SurvivalParameterRow{
		"HLA ABDR Mismatch": {FiveYear: 2, TenYear: -10},
		"Recipient Age":     {FiveYear: 1, TenYear: 1},
	})
	cand, err := core.NewCandidate("c1", 0, core.BloodTypeO, nil, nil, core.WithDemographics(80, core.SexFemale, core.RaceUnspecified, 0, 0, false, false, core.InsuranceUnspecified, 0))
	require.NoError(t, err)
	donor, err := core.NewDonor("d1", core.BloodTypeO, nil, core.RelationSpouse)
	require.NoError(t, err)

	require.Equal(t, 1.0, scorer.Estimate(cand, donor, fiveYearHorizon))
	require.Equal(t, 0.0, scorer.Estimate(cand, donor, tenYearHorizon))
}
