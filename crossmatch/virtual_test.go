package crossmatch

import (
	"testing"

	"github.com/kpdsim/engine/core"
	"github.com/stretchr/testify/require"
)

func mustCandidate(t *testing.T, bt core.BloodType, unacceptable, desensitizable []string) *core.Candidate {
	t.Helper()
	c, err := core.NewCandidate("c1", 0, bt, unacceptable, desensitizable)
	require.NoError(t, err)

	return c
}

func mustDonor(t *testing.T, bt core.BloodType, hla []string) *core.Donor {
	t.Helper()
	d, err := core.NewDonor("d1", bt, hla, core.RelationSpouse)
	require.NoError(t, err)

	return d
}

func TestVirtualCrossmatchBTRule(t *testing.T) {
	cand := mustCandidate(t, core.BloodTypeO, nil, nil)
	donor := mustDonor(t, core.BloodTypeA, nil)
	require.Equal(t, core.CrossmatchFailedBT, Virtual(cand, donor, nil))
}

func TestVirtualCrossmatchReserveO(t *testing.T) {
	cand := mustCandidate(t, core.BloodTypeA, nil, nil)
	donor := mustDonor(t, core.BloodTypeO, nil)

	code := Virtual(cand, donor, nil)
	require.Equal(t, core.CrossmatchODonorToNonO, code)

	require.False(t, Allowable(code, Policy{ReserveODonorsForOCandidates: true}))
	require.True(t, Allowable(code, Policy{ReserveODonorsForOCandidates: false}))
}

func TestVirtualCrossmatchDesensitization(t *testing.T) {
	cand := mustCandidate(t, core.BloodTypeA, nil, []string{"A2"})
	donor := mustDonor(t, core.BloodTypeA, []string{"A2"})

	equiv := EquivalenceDictionary{"A2": {"A2"}}
	code := Virtual(cand, donor, equiv)
	require.Equal(t, core.CrossmatchRequiresDesensitization, code)

	require.False(t, Allowable(code, Policy{AllowDesensitization: false}))
	require.True(t, Allowable(code, Policy{AllowDesensitization: true}))
}

func TestVirtualCrossmatchUnacceptableHLAFails(t *testing.T) {
	cand := mustCandidate(t, core.BloodTypeO, []string{"B7"}, nil)
	donor := mustDonor(t, core.BloodTypeO, []string{"B7"})

	code := Virtual(cand, donor, nil)
	require.Equal(t, core.CrossmatchFailedHLA, code)
	require.False(t, Allowable(code, Policy{AllowDesensitization: true, ReserveODonorsForOCandidates: false}))
}

func TestVirtualCrossmatchSymmetry(t *testing.T) {
	cand := mustCandidate(t, core.BloodTypeB, []string{"DR4"}, nil)
	donor := mustDonor(t, core.BloodTypeO, []string{"A1"})

	first := Virtual(cand, donor, nil)
	second := Virtual(cand, donor, nil)
	require.Equal(t, first, second)
}
