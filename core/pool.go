package core

import (
	"fmt"
	"sort"
)

// Pool owns every Node and Match for one simulation iteration, plus the two
// adjacency matrices A and A_reduced described in §3. It is the sole
// mutation boundary: all mutation of status, transplant_status, adjacency
// and node type happens through Pool methods called from the simulation
// loop between ticks (§5); enumeration and utility code only read it.
type Pool struct {
	nodes   []*Node
	matches map[EdgeKey]*Match

	// a[i][j] / aReduced[i][j] are true iff node i has an adjacency-true
	// edge to node j. a additionally carries the implicit PAIR->NDD/BRIDGE
	// backward edge; aReduced omits it (used by the LRS routines).
	a         [][]bool
	aReduced  [][]bool
}

// NewPool constructs an empty Pool.
func NewPool() *Pool {
	return &Pool{matches: make(map[EdgeKey]*Match)}
}

// AddNode appends a node and returns its Handle.
func (p *Pool) AddNode(n *Node) Handle {
	p.nodes = append(p.nodes, n)
	h := Handle(len(p.nodes) - 1)
	p.growMatrices()
	for u := range p.nodes {
		p.recomputeA(Handle(u), h)
		p.recomputeA(h, Handle(u))
	}

	return h
}

func (p *Pool) growMatrices() {
	n := len(p.nodes)
	for len(p.a) < n {
		p.a = append(p.a, make([]bool, n))
		p.aReduced = append(p.aReduced, make([]bool, n))
	}
	for i := range p.a {
		for len(p.a[i]) < n {
			p.a[i] = append(p.a[i], false)
			p.aReduced[i] = append(p.aReduced[i], false)
		}
	}
}

// Node returns the node at handle h.
func (p *Pool) Node(h Handle) (*Node, error) {
	if h < 0 || int(h) >= len(p.nodes) {
		return nil, fmt.Errorf("core: Pool.Node(%d): %w", h, ErrHandleNotFound)
	}

	return p.nodes[h], nil
}

// NumNodes returns the number of nodes ever added to the pool this
// iteration (including withdrawn/transplanted ones still resident).
func (p *Pool) NumNodes() int { return len(p.nodes) }

// Handles returns every handle currently in the pool, in insertion order.
func (p *Pool) Handles() []Handle {
	out := make([]Handle, len(p.nodes))
	for i := range p.nodes {
		out[i] = Handle(i)
	}

	return out
}

// ActiveHandles returns handles whose observed status at time t is ACTIVE
// and whose transplant status is NOT_TRANSPLANTED.
func (p *Pool) ActiveHandles(t int) []Handle {
	var out []Handle
	for i, n := range p.nodes {
		if n.ObservedStatus(t) == StatusActive && n.TransplantStatus() == NotTransplanted {
			out = append(out, Handle(i))
		}
	}

	return out
}

// AddMatch records a Match for edge key, rejecting a duplicate per-iteration
// recording of the same edge (§3 invariant).
func (p *Pool) AddMatch(m *Match) error {
	if _, exists := p.matches[m.Key]; exists {
		return fmt.Errorf("core: Pool.AddMatch(%+v): %w", m.Key, ErrMatchExists)
	}
	p.matches[m.Key] = m
	if m.Adjacency {
		p.SetAdjacency(m.Key.DonorNode, m.Key.CandidateNode, true)
	}

	return nil
}

// Match looks up the recorded match for an edge, if any.
func (p *Pool) Match(key EdgeKey) (*Match, bool) {
	m, ok := p.matches[key]

	return m, ok
}

// Matches returns every recorded match whose donor node is u and candidate
// node is v (there may be several, one per donor index), ordered by donor
// index.
func (p *Pool) Matches(u, v Handle) []*Match {
	var out []*Match
	for key, m := range p.matches {
		if key.DonorNode == u && key.CandidateNode == v {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.DonorIndex < out[j].Key.DonorIndex })

	return out
}

// AllMatches returns every match recorded this iteration.
func (p *Pool) AllMatches() []*Match {
	out := make([]*Match, 0, len(p.matches))
	for _, m := range p.matches {
		out = append(out, m)
	}

	return out
}

// SetAdjacency sets A_reduced[u][v] to the given value and recomputes
// A[u][v] as the reduced value OR the implicit PAIR->NDD/BRIDGE backward
// edge rule from §3.
func (p *Pool) SetAdjacency(u, v Handle, adjacent bool) {
	p.growMatrices()
	p.aReduced[u][v] = adjacent
	p.recomputeA(u, v)
}

func (p *Pool) recomputeA(u, v Handle) {
	implicit := p.nodes[u].Kind() == KindPair && p.nodes[v].Kind() != KindPair
	p.a[u][v] = p.aReduced[u][v] || implicit
}

// RebuildImplicitEdges recomputes every A[u][v] from A_reduced plus the
// implicit-backward-edge rule. Called after any node's Kind changes (e.g.
// a chain tail becomes a BRIDGE, changing which backward edges are
// implicit).
func (p *Pool) RebuildImplicitEdges() {
	n := len(p.nodes)
	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			p.recomputeA(Handle(u), Handle(v))
		}
	}
}

// Adjacent reports A[u][v].
func (p *Pool) Adjacent(u, v Handle) bool {
	if int(u) >= len(p.a) || int(v) >= len(p.a[u]) {
		return false
	}

	return p.a[u][v]
}

// AdjacentReduced reports A_reduced[u][v].
func (p *Pool) AdjacentReduced(u, v Handle) bool {
	if int(u) >= len(p.aReduced) || int(v) >= len(p.aReduced[u]) {
		return false
	}

	return p.aReduced[u][v]
}

// A returns a defensive copy of the full adjacency matrix.
func (p *Pool) A() [][]bool { return cloneBoolMatrix(p.a) }

// AReduced returns a defensive copy of the reduced adjacency matrix.
func (p *Pool) AReduced() [][]bool { return cloneBoolMatrix(p.aReduced) }

func cloneBoolMatrix(m [][]bool) [][]bool {
	out := make([][]bool, len(m))
	for i, row := range m {
		out[i] = append([]bool(nil), row...)
	}

	return out
}

// RemoveEdgesAt clears every A_reduced edge incident to node v (both
// directions), used by the bridge-donor rewrite in §4.5 step 3 before the
// implicit edges from every PAIR are installed.
func (p *Pool) RemoveEdgesAt(v Handle) {
	p.growMatrices()
	n := len(p.nodes)
	for u := 0; u < n; u++ {
		p.aReduced[Handle(u)][v] = false
		p.aReduced[v][Handle(u)] = false
	}
	p.RebuildImplicitEdges()
}
