package arrangement

import (
	"testing"

	"github.com/kpdsim/engine/core"
	"github.com/kpdsim/engine/matchrun"
	"github.com/kpdsim/engine/rng"
	"github.com/kpdsim/engine/solver"
	"github.com/stretchr/testify/require"
)

// threeChainPool builds N1 -> P1 -> P2, the three-chain fallback fixture:
// the N1->P1 edge's lab crossmatch is fated to succeed and the P1->P2 edge's
// is fated to fail, so realization should collapse the chain to the
// single-edge N1->P1 and leave P2 untouched in the pool.
func threeChainPool(t *testing.T) (*core.Pool, core.Handle, core.Handle, core.Handle) {
	t.Helper()
	pool := core.NewPool()

	nddDonor, err := core.NewDonor("nd1", core.BloodTypeO, nil, core.RelationNonDirected)
	require.NoError(t, err)
	nddNode, err := core.NewNDDNode("N1", nddDonor, 0)
	require.NoError(t, err)
	n1 := pool.AddNode(nddNode)

	c1, err := core.NewCandidate("c1", 0, core.BloodTypeO, nil, nil)
	require.NoError(t, err)
	d1, err := core.NewDonor("d1", core.BloodTypeO, nil, core.RelationSpouse)
	require.NoError(t, err)
	p1Node, err := core.NewPairNode("P1", c1, []*core.Donor{d1}, 0)
	require.NoError(t, err)
	p1 := pool.AddNode(p1Node)

	c2, err := core.NewCandidate("c2", 0, core.BloodTypeO, nil, nil)
	require.NoError(t, err)
	d2, err := core.NewDonor("d2", core.BloodTypeO, nil, core.RelationSpouse)
	require.NoError(t, err)
	p2Node, err := core.NewPairNode("P2", c2, []*core.Donor{d2}, 0)
	require.NoError(t, err)
	p2 := pool.AddNode(p2Node)

	pool.SetAdjacency(n1, p1, true)
	pool.SetAdjacency(p1, p2, true)
	pool.RebuildImplicitEdges()

	firstEdge := core.NewMatch(core.EdgeKey{DonorNode: n1, DonorIndex: 0, CandidateNode: p1}, true, core.CrossmatchSuccessful)
	firstEdge.ActualSuccessProbability = 1
	require.NoError(t, pool.AddMatch(firstEdge))

	secondEdge := core.NewMatch(core.EdgeKey{DonorNode: p1, DonorIndex: 0, CandidateNode: p2}, true, core.CrossmatchSuccessful)
	secondEdge.ActualSuccessProbability = 0
	require.NoError(t, pool.AddMatch(secondEdge))

	return pool, n1, p1, p2
}

func TestRealizeCollapsesChainOnLabCrossmatchFailure(t *testing.T) {
	pool, n1, p1, p2 := threeChainPool(t)

	a := Arrangement{
		Handles:        []core.Handle{n1, p1, p2},
		Kind:           matchrun.KindChain,
		TransplantTime: 10,
	}
	cfg := Config{
		MaxCycleSize:   3,
		MaxChainLength: 3,
		AllowABBridge:  true,
		SolverOptions:  solver.Options{},
	}
	scorer := matchrun.Scorer{Pool: pool, Scheme: matchrun.SchemeTransplants}
	labGen := rng.NewGenerator(7)

	records, err := Realize(pool, a, cfg, scorer, labGen)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, n1, records[0].DonorNode)
	require.Equal(t, p1, records[0].CandidateNode)

	p1Node, err := pool.Node(p1)
	require.NoError(t, err)
	require.Equal(t, core.KindBridge, p1Node.Kind())
	require.Equal(t, core.Transplanted, p1Node.TransplantStatus())

	p2Node, err := pool.Node(p2)
	require.NoError(t, err)
	require.Equal(t, core.KindPair, p2Node.Kind())
	require.Equal(t, core.NotTransplanted, p2Node.TransplantStatus())

	failed, ok := pool.Match(core.EdgeKey{DonorNode: p1, DonorIndex: 0, CandidateNode: p2})
	require.True(t, ok)
	require.True(t, failed.LabRevealed)
	require.False(t, failed.LabResult)
	require.False(t, failed.Adjacency)
}
