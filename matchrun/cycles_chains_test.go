package matchrun

import (
	"testing"

	"github.com/kpdsim/engine/core"
	"github.com/stretchr/testify/require"
)

func twoPairPool(t *testing.T) (*core.Pool, core.Handle, core.Handle) {
	t.Helper()
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

	return pool, h1, h2
}

func TestEnumerateCyclesFindsTwoCycle(t *testing.T) {
	pool, h1, h2 := twoPairPool(t)
	pool.SetAdjacency(h1, h2, true)
	pool.SetAdjacency(h2, h1, true)

	arrangements := EnumerateCyclesAndChains(pool, pool.Handles(), 3, 3, true)

	found := false
	for _, a := range arrangements {
		if a.Kind == KindCycle && len(a.Handles) == 2 {
			found = true
		}
	}
	require.True(t, found)
}

func TestEnumerateChainsRotatesNDDToFront(t *testing.T) {
	pool, h1, _ := twoPairPool(t)

	nddDonor, err := core.NewDonor("nd1", core.BloodTypeO, nil, core.RelationNonDirected)
	require.NoError(t, err)
	nddNode, err := core.NewNDDNode("N1", nddDonor, 0)
	require.NoError(t, err)
	nddHandle := pool.AddNode(nddNode)

	pool.SetAdjacency(nddHandle, h1, true)

	arrangements := EnumerateCyclesAndChains(pool, pool.Handles(), 3, 3, true)

	found := false
	for _, a := range arrangements {
		if a.Kind == KindChain {
			require.Equal(t, nddHandle, a.Handles[0])
			found = true
		}
	}
	require.True(t, found)
}

func TestEnumerateCyclesRejectsOversizedStack(t *testing.T) {
	pool, h1, h2 := twoPairPool(t)
	pool.SetAdjacency(h1, h2, true)
	pool.SetAdjacency(h2, h1, true)

	arrangements := EnumerateCyclesAndChains(pool, pool.Handles(), 1, 0, true)
	for _, a := range arrangements {
		require.NotEqual(t, KindCycle, a.Kind)
	}
}
