package solver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptimizeEmptyIsInfeasible(t *testing.T) {
	res := Optimize(nil, Options{})
	require.Equal(t, StatusInfeasible, res.Status)
}

func TestOptimizePicksDisjointHighValue(t *testing.T) {
	items := []Item{
		{Utility: 5, Vertices: []int{0, 1}},
		{Utility: 3, Vertices: []int{1, 2}},
		{Utility: 2, Vertices: []int{2, 3}},
	}

	res := Optimize(items, Options{MaxThreads: 2})
	require.Equal(t, StatusOptimal, res.Status)
	// item 0 (5) and item 2 (2) are disjoint and beat item 0 alone or item 1 alone.
	require.InDelta(t, 7.0, res.Value, 1e-9)
}

func TestOptimizeRespectsVertexConflict(t *testing.T) {
	items := []Item{
		{Utility: 10, Vertices: []int{0}},
		{Utility: 10, Vertices: []int{0}},
	}

	res := Optimize(items, Options{})
	require.InDelta(t, 10.0, res.Value, 1e-9)
	require.Len(t, res.Selected, 1)
}

func TestOptimizeThreadCapClamped(t *testing.T) {
	o := Options{MaxThreads: 99}
	require.Equal(t, 4, o.threads())

	o2 := Options{MaxThreads: 0}
	require.Equal(t, 4, o2.threads())

	o3 := Options{MaxThreads: 2}
	require.Equal(t, 2, o3.threads())
}
