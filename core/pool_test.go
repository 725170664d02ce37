package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolAdjacencyImplicitBackwardEdge(t *testing.T) {
	p := NewPool()

	cand, err := NewCandidate("c1", 0, BloodTypeO, nil, nil)
	require.NoError(t, err)
	donor, err := NewDonor("d1", BloodTypeO, nil, RelationSpouse)
	require.NoError(t, err)
	pairNode, err := NewPairNode("P1", cand, []*Donor{donor}, 0)
	require.NoError(t, err)
	pairHandle := p.AddNode(pairNode)

	nddDonor, err := NewDonor("nd1", BloodTypeO, nil, RelationNonDirected)
	require.NoError(t, err)
	nddNode, err := NewNDDNode("N1", nddDonor, 0)
	require.NoError(t, err)
	nddHandle := p.AddNode(nddNode)

	// No explicit edge recorded PAIR->NDD, but the implicit backward-edge
	// rule means A[pair][ndd] is true even though A_reduced is not.
	require.True(t, p.Adjacent(pairHandle, nddHandle))
	require.False(t, p.AdjacentReduced(pairHandle, nddHandle))

	// The forward NDD->PAIR edge must be recorded explicitly.
	require.False(t, p.Adjacent(nddHandle, pairHandle))
}

func TestNodeObservedStatus(t *testing.T) {
	donor, err := NewDonor("d1", BloodTypeO, nil, RelationNonDirected)
	require.NoError(t, err)
	n, err := NewNDDNode("N1", donor, 5)
	require.NoError(t, err)

	n.SetTimeline([]StatusEvent{
		{Time: 5, Status: StatusActive},
		{Time: 10, Status: StatusInactive},
		{Time: 20, Status: StatusActive},
		{Time: 30, Status: StatusWithdrawn},
	})

	require.Equal(t, StatusActive, n.ObservedStatus(5))
	require.Equal(t, StatusActive, n.ObservedStatus(9))
	require.Equal(t, StatusInactive, n.ObservedStatus(10))
	require.Equal(t, StatusActive, n.ObservedStatus(25))
	require.Equal(t, StatusWithdrawn, n.ObservedStatus(100))
}

func TestTransplantStatusInvariants(t *testing.T) {
	donor, err := NewDonor("d1", BloodTypeO, nil, RelationNonDirected)
	require.NoError(t, err)
	n, err := NewNDDNode("N1", donor, 0)
	require.NoError(t, err)

	require.NoError(t, n.SetTransplantStatus(TransplantInProgress))
	require.NoError(t, n.SetTransplantStatus(NotTransplanted)) // arrangement fell through
	require.NoError(t, n.SetTransplantStatus(Transplanted))
	require.Error(t, n.SetTransplantStatus(NotTransplanted)) // absorbing
}
