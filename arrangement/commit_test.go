package arrangement

import (
	"testing"

	"github.com/kpdsim/engine/core"
	"github.com/kpdsim/engine/matchrun"
	"github.com/stretchr/testify/require"
)

func chainPool(t *testing.T) (*core.Pool, core.Handle, core.Handle) {
	t.Helper()
	pool := core.NewPool()

	nddDonor, err := core.NewDonor("nd1", core.BloodTypeO, nil, core.RelationNonDirected)
	require.NoError(t, err)
	nddNode, err := core.NewNDDNode("N1", nddDonor, 0)
	require.NoError(t, err)
	nddHandle := pool.AddNode(nddNode)

	cand, err := core.NewCandidate("c1", 0, core.BloodTypeO, nil, nil)
	require.NoError(t, err)
	tailDonor, err := core.NewDonor("d1", core.BloodTypeO, nil, core.RelationSpouse)
	require.NoError(t, err)
	pairNode, err := core.NewPairNode("P1", cand, []*core.Donor{tailDonor}, 0)
	require.NoError(t, err)
	pairHandle := pool.AddNode(pairNode)

	key := core.EdgeKey{DonorNode: nddHandle, DonorIndex: 0, CandidateNode: pairHandle}
	m := core.NewMatch(key, true, core.CrossmatchSuccessful)
	require.NoError(t, pool.AddMatch(m))

	return pool, nddHandle, pairHandle
}

func TestCommitChainConvertsTailToBridge(t *testing.T) {
	pool, nddHandle, pairHandle := chainPool(t)

	a := matchrun.Arrangement{Kind: matchrun.KindChain, Handles: []core.Handle{nddHandle, pairHandle}}
	records, err := commit(pool, a, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, pairHandle, records[0].CandidateNode)

	tail, err := pool.Node(pairHandle)
	require.NoError(t, err)
	require.Equal(t, core.KindBridge, tail.Kind())
	require.Equal(t, core.Transplanted, tail.TransplantStatus())
}

func TestCommitChainOverwritesStaleMatchOnBridgeConversion(t *testing.T) {
	pool, nddHandle, pairHandle := chainPool(t)

	otherCand, err := core.NewCandidate("c2", 0, core.BloodTypeO, nil, nil)
	require.NoError(t, err)
	otherDonor, err := core.NewDonor("d2", core.BloodTypeO, nil, core.RelationSpouse)
	require.NoError(t, err)
	otherNode, err := core.NewPairNode("P2", otherCand, []*core.Donor{otherDonor}, 0)
	require.NoError(t, err)
	otherHandle := pool.AddNode(otherNode)

	// record.BuildMatches would have already recorded this donor's match
	// against the tail's original candidate, here deliberately stale
	// (failed, unrevealed) to prove commit overwrites rather than skips it.
	staleKey := core.EdgeKey{DonorNode: otherHandle, DonorIndex: 0, CandidateNode: pairHandle}
	stale := core.NewMatch(staleKey, false, core.CrossmatchFailedBT)
	require.NoError(t, pool.AddMatch(stale))

	a := matchrun.Arrangement{Kind: matchrun.KindChain, Handles: []core.Handle{nddHandle, pairHandle}}
	_, err = commit(pool, a, 10)
	require.NoError(t, err)

	updated, ok := pool.Match(staleKey)
	require.True(t, ok)
	require.True(t, updated.Adjacency)
	require.Equal(t, core.CrossmatchSuccessful, updated.VirtualCrossmatch)
	require.Equal(t, 1.0, updated.AssumedSuccessProbability)
	require.Equal(t, 1.0, updated.ActualSuccessProbability)
	require.True(t, updated.LabRevealed)
	require.True(t, updated.LabResult)
	require.True(t, pool.Adjacent(otherHandle, pairHandle))
}

func TestCommitCycleMarksAllTransplanted(t *testing.T) {
	pool := core.NewPool()

	c1, err := core.NewCandidate("c1", 0, core.BloodTypeO, nil, nil)
	require.NoError(t, err)
	d1, err := core.NewDonor("d1", core.BloodTypeA, nil, core.RelationSpouse)
	require.NoError(t, err)
	n1, err := core.NewPairNode("P1", c1, []*core.Donor{d1}, 0)
	require.NoError(t, err)
	h1 := pool.AddNode(n1)

	c2, err := core.NewCandidate("c2", 0, core.BloodTypeA, nil, nil)
	require.NoError(t, err)
	d2, err := core.NewDonor("d2", core.BloodTypeO, nil, core.RelationSpouse)
	require.NoError(t, err)
	n2, err := core.NewPairNode("P2", c2, []*core.Donor{d2}, 0)
	require.NoError(t, err)
	h2 := pool.AddNode(n2)

	require.NoError(t, pool.AddMatch(core.NewMatch(core.EdgeKey{DonorNode: h1, DonorIndex: 0, CandidateNode: h2}, true, core.CrossmatchSuccessful)))
	require.NoError(t, pool.AddMatch(core.NewMatch(core.EdgeKey{DonorNode: h2, DonorIndex: 0, CandidateNode: h1}, true, core.CrossmatchSuccessful)))

	a := matchrun.Arrangement{Kind: matchrun.KindCycle, Handles: []core.Handle{h1, h2}}
	records, err := commit(pool, a, 5)
	require.NoError(t, err)
	require.Len(t, records, 2)

	n1After, _ := pool.Node(h1)
	n2After, _ := pool.Node(h2)
	require.Equal(t, core.Transplanted, n1After.TransplantStatus())
	require.Equal(t, core.Transplanted, n2After.TransplantStatus())
}
