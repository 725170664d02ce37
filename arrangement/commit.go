package arrangement

import (
	"github.com/kpdsim/engine/core"
	"github.com/kpdsim/engine/matchrun"
)

// commit realizes one selected cycle or chain per §4.5 step 3: every edge's
// best eligible donor is recorded as a TransplantRecord, every candidate
// along the structure is marked TRANSPLANTED, and — for a chain — the tail
// pair's node is converted in place to a BRIDGE donor and rewired so every
// remaining PAIR reaches it implicitly.
func commit(pool *core.Pool, a matchrun.Arrangement, arrivalTime int) ([]TransplantRecord, error) {
	edges := structureEdges(a)

	var records []TransplantRecord
	for _, e := range edges {
		donorIdx, ok := bestEligibleDonor(pool, e[0], e[1])
		if !ok {
			continue
		}
		records = append(records, TransplantRecord{
			DonorNode:     e[0],
			DonorIndex:    donorIdx,
			CandidateNode: e[1],
			Kind:          a.Kind,
		})

		candidate, err := pool.Node(e[1])
		if err != nil {
			return nil, err
		}
		if err := candidate.SetTransplantStatus(core.Transplanted); err != nil {
			return nil, err
		}
	}

	if a.Kind == matchrun.KindChain {
		if err := convertTailToBridge(pool, a, arrivalTime); err != nil {
			return nil, err
		}
	}

	return records, nil
}

func structureEdges(a matchrun.Arrangement) [][2]core.Handle {
	n := len(a.Handles)
	edges := make([][2]core.Handle, 0, n)
	for i := 0; i+1 < n; i++ {
		edges = append(edges, [2]core.Handle{a.Handles[i], a.Handles[i+1]})
	}
	if a.Kind == matchrun.KindCycle && n > 1 {
		edges = append(edges, [2]core.Handle{a.Handles[n-1], a.Handles[0]})
	}

	return edges
}

// bestEligibleDonor returns the lowest donor index at u whose match to v is
// adjacency-true. It does not compare the donors' scheme values, so it can
// differ from the donor that utility scoring picks, and it does not check
// the observed status of u.
func bestEligibleDonor(pool *core.Pool, u, v core.Handle) (int, bool) {
	best := -1
	for _, m := range pool.Matches(u, v) {
		if !m.Adjacency {
			continue
		}
		if best == -1 || m.Key.DonorIndex < best {
			best = m.Key.DonorIndex
		}
	}
	if best == -1 {
		return 0, false
	}

	return best, true
}

// convertTailToBridge converts the chain's last pair node into a BRIDGE
// node carrying its own first donor, marks it transplanted is not
// applicable (bridge donors have no candidate), removes its stale edges,
// and rebuilds implicit PAIR->BRIDGE adjacency with fully-successful Match
// placeholders, per §4.5 step 3.
func convertTailToBridge(pool *core.Pool, a matchrun.Arrangement, arrivalTime int) error {
	tailHandle := a.Handles[len(a.Handles)-1]
	tail, err := pool.Node(tailHandle)
	if err != nil {
		return err
	}

	donors := tail.Donors()
	tailDonor := donors[0]

	if err := tail.ConvertToBridge(tailDonor, arrivalTime); err != nil {
		return err
	}

	pool.RemoveEdgesAt(tailHandle)

	for _, h := range pool.Handles() {
		if h == tailHandle {
			continue
		}
		n, err := pool.Node(h)
		if err != nil {
			return err
		}
		if n.Kind() != core.KindPair {
			continue
		}

		key := core.EdgeKey{DonorNode: h, DonorIndex: 0, CandidateNode: tailHandle}
		forceSuccessfulMatch(pool, key)
	}
	pool.RebuildImplicitEdges()

	return nil
}

// forceSuccessfulMatch records a fully-successful, already-revealed Match
// for key, per §4.5 step 3's PAIR->BRIDGE rewrite. record.BuildMatches
// pre-creates a Match for every donor x candidate combination at the start
// of the iteration, so key virtually always already exists, computed
// against the tail's pre-conversion candidate. Mutating it in place,
// instead of calling the duplicate-rejecting Pool.AddMatch, is what
// actually overwrites the stale virtual-crossmatch result.
func forceSuccessfulMatch(pool *core.Pool, key core.EdgeKey) {
	m, ok := pool.Match(key)
	if !ok {
		m = core.NewMatch(key, true, core.CrossmatchSuccessful)
		_ = pool.AddMatch(m)
	}

	m.Adjacency = true
	m.VirtualCrossmatch = core.CrossmatchSuccessful
	m.AssumedSuccessProbability = 1
	m.ActualSuccessProbability = 1
	m.LabRevealed = true
	m.LabResult = true
	pool.SetAdjacency(key.DonorNode, key.CandidateNode, true)
}
