package datasource

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kpdsim/engine/arrangement"
	"github.com/kpdsim/engine/core"
	"github.com/kpdsim/engine/matchrun"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPairPool(t *testing.T) (*core.Pool, core.Handle, core.Handle) {
	t.Helper()
	pool := core.NewPool()

	cand1, err := core.NewCandidate("cand1", 0, core.BloodTypeO, nil, nil)
	require.NoError(t, err)
	don1, err := core.NewDonor("don1", core.BloodTypeA, nil, core.RelationSpouse)
	require.NoError(t, err)
	n1, err := core.NewPairNode("pair1", cand1, []*core.Donor{don1}, 0)
	require.NoError(t, err)
	h1 := pool.AddNode(n1)

	cand2, err := core.NewCandidate("cand2", 0, core.BloodTypeA, nil, nil)
	require.NoError(t, err)
	don2, err := core.NewDonor("don2", core.BloodTypeO, nil, core.RelationSpouse)
	require.NoError(t, err)
	n2, err := core.NewPairNode("pair2", cand2, []*core.Donor{don2}, 0)
	require.NoError(t, err)
	h2 := pool.AddNode(n2)

	return pool, h1, h2
}

func TestArrangementsSinkWritesHeaderAndRow(t *testing.T) {
	pool, h1, h2 := twoPairPool(t)
	var buf bytes.Buffer
	sink := NewArrangementsSink(&buf)

	a := arrangement.Enqueue(matchrun.Arrangement{Kind: matchrun.KindCycle, Handles: []core.Handle{h1, h2}}, 1.5, 1, 1, 7, 14)
	require.NoError(t, sink.WriteRow(pool, a))
	require.NoError(t, sink.Flush())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "iteration,match_run_index"))
	assert.Contains(t, out, "pair1;pair2")
	assert.Contains(t, out, "cycle")
}

func TestTransplantsSinkWritesRow(t *testing.T) {
	pool, h1, h2 := twoPairPool(t)
	var buf bytes.Buffer
	sink := NewTransplantsSink(&buf)

	rec := arrangement.TransplantRecord{DonorNode: h1, DonorIndex: 0, CandidateNode: h2, Kind: matchrun.KindCycle}
	require.NoError(t, sink.WriteRow(pool, rec, 3))
	require.NoError(t, sink.Flush())

	out := buf.String()
	assert.Contains(t, out, "don1")
	assert.Contains(t, out, "pair2")
}

func TestPopulationSinkWritesDemographics(t *testing.T) {
	pool, h1, _ := twoPairPool(t)
	node, err := pool.Node(h1)
	require.NoError(t, err)

	var buf bytes.Buffer
	sink := NewPopulationSink(&buf)
	require.NoError(t, sink.WriteRow(0, node))
	require.NoError(t, sink.Flush())

	out := buf.String()
	assert.Contains(t, out, "pair1")
	assert.Contains(t, out, "cand1")
	assert.Contains(t, out, "NA") // no deceased-donor recovery time
}

func TestLogSinkWritesLines(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(&buf)
	require.NoError(t, sink.Writeln("iteration 1 complete"))
	assert.Equal(t, "iteration 1 complete\n", buf.String())
}
