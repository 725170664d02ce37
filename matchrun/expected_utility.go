package matchrun

import (
	"github.com/kpdsim/engine/core"
	"github.com/kpdsim/engine/rng"
)

// availableDonor names one donor slot within an LRS, for subset enumeration
// over donor availability.
type availableDonor struct {
	node  core.Handle
	index int
}

// activeEdge names one currently-adjacent edge incident on an available
// node within the LRS, for subset enumeration over edge success.
type activeEdge struct {
	from, to core.Handle
	donorIdx int
}

// ExactExpectedUtility implements §4.3's exact estimator: enumerate every
// subset S of the LRS's active donors (n must be <=20; see ErrTooManyNodes)
// and, within each, every subset E of currently-adjacent edges incident on
// available nodes in S, accumulating P(S)*P(E|S)*best_packing_utility.
func ExactExpectedUtility(pool *core.Pool, lrs Arrangement, scorer Scorer, maxCycleSize, maxChainLength int) (float64, error) {
	donors := donorsOf(pool, lrs.Handles)
	if len(donors) > 20 {
		return 0, ErrTooManyNodes
	}

	total := 0.0
	nSubsets := 1 << len(donors)
	for mask := 0; mask < nSubsets; mask++ {
		available := selectDonors(donors, mask)
		pS := probabilityOfAvailability(pool, scorer, donors, mask)
		if pS == 0 {
			continue
		}

		edges := edgesIncidentOn(pool, lrs.Handles, available)
		total += pS * expectedOverEdgeSubsets(pool, lrs, scorer, edges, maxCycleSize, maxChainLength)
	}

	return total, nil
}

// donorsOf lists every donor slot across the LRS's nodes.
func donorsOf(pool *core.Pool, handles []core.Handle) []availableDonor {
	var out []availableDonor
	for _, h := range handles {
		for i := range mustNode(pool, h).Donors() {
			out = append(out, availableDonor{node: h, index: i})
		}
	}

	return out
}

func selectDonors(donors []availableDonor, mask int) map[availableDonor]bool {
	sel := make(map[availableDonor]bool, len(donors))
	for i, d := range donors {
		sel[d] = mask&(1<<i) != 0
	}

	return sel
}

// probabilityOfAvailability computes P(S): the product, over nodes, of
// donor-availability factors: each donor in the mask contributes its
// assumed survival probability and each omitted donor contributes its
// complement. Candidate availability is not modelled: it adds no factor
// here, and edgesIncidentOn keeps edges into a pair whatever the state of
// its candidate.
func probabilityOfAvailability(pool *core.Pool, scorer Scorer, donors []availableDonor, mask int) float64 {
	p := 1.0
	for i, d := range donors {
		donor, err := mustNode(pool, d.node).Donor(d.index)
		if err != nil {
			panic(err)
		}

		survival := scorer.survivalProbability(donor)
		if mask&(1<<i) != 0 {
			p *= survival
		} else {
			p *= 1 - survival
		}
	}

	return p
}

// edgesIncidentOn lists every currently-adjacent edge between nodes in
// handles where the tail donor is marked available in the sampled subset.
func edgesIncidentOn(pool *core.Pool, handles []core.Handle, available map[availableDonor]bool) []activeEdge {
	var edges []activeEdge
	for _, u := range handles {
		for _, v := range handles {
			if u == v || !pool.Adjacent(u, v) {
				continue
			}
			for i := range mustNode(pool, u).Donors() {
				if available[availableDonor{node: u, index: i}] {
					edges = append(edges, activeEdge{from: u, to: v, donorIdx: i})
				}
			}
		}
	}

	return edges
}

// expectedOverEdgeSubsets enumerates every subset E of edges, weighting each
// by P(E|S), and for each computes the best vertex-disjoint packing utility
// over the reduced adjacency induced by E plus implicit PAIR->NDD backward
// edges.
func expectedOverEdgeSubsets(pool *core.Pool, lrs Arrangement, scorer Scorer, edges []activeEdge, maxCycleSize, maxChainLength int) float64 {
	if len(edges) == 0 {
		return 0
	}

	total := 0.0
	nSubsets := 1 << len(edges)
	for mask := 0; mask < nSubsets; mask++ {
		pE := 1.0
		chosen := make(map[activeEdge]bool, len(edges))
		for i, e := range edges {
			m, _ := pool.Match(core.EdgeKey{DonorNode: e.from, DonorIndex: e.donorIdx, CandidateNode: e.to})
			succ := 1.0
			if m != nil {
				succ = m.AssumedSuccessProbability
			}

			if mask&(1<<i) != 0 {
				pE *= succ
				chosen[e] = true
			} else {
				pE *= 1 - succ
			}
		}
		if pE == 0 {
			continue
		}

		total += pE * bestPackingUtility(pool, lrs, scorer, chosen, maxCycleSize, maxChainLength)
	}

	return total
}

// bestPackingUtility restricts adjacency to the chosen edge set (plus
// implicit PAIR->NDD backward edges), re-enumerates cycles/chains within the
// LRS's node set, and exhaustively searches the vertex-disjoint subsets of
// that small candidate list for the maximum-utility packing. Candidates are
// scored against pool, since the restricted copy holds no matches.
func bestPackingUtility(pool *core.Pool, lrs Arrangement, scorer Scorer, chosen map[activeEdge]bool, maxCycleSize, maxChainLength int) float64 {
	restricted, restrictedHandles := restrictedPool(pool, lrs.Handles, chosen)
	candidates := EnumerateCyclesAndChains(restricted, restrictedHandles, maxCycleSize, maxChainLength, true)
	for i, c := range candidates {
		// Restricted handle k stands for lrs.Handles[k].
		orig := make([]core.Handle, len(c.Handles))
		for k, rh := range c.Handles {
			orig[k] = lrs.Handles[int(rh)]
		}
		candidates[i].Handles = orig
	}

	best := 0.0
	n := len(candidates)
	for mask := 1; mask < (1 << n); mask++ {
		if !vertexDisjoint(candidates, mask) {
			continue
		}

		val := 0.0
		for i, c := range candidates {
			if mask&(1<<i) != 0 {
				val += scorer.withPool(pool).Score(c)
			}
		}
		if val > best {
			best = val
		}
	}

	return best
}

func vertexDisjoint(candidates []Arrangement, mask int) bool {
	seen := make(map[core.Handle]bool)
	for i, c := range candidates {
		if mask&(1<<i) == 0 {
			continue
		}
		for _, h := range c.Handles {
			if seen[h] {
				return false
			}
			seen[h] = true
		}
	}

	return true
}

// restrictedPool builds a throwaway Pool sharing the same node objects but
// with adjacency limited to the chosen edge subset plus implicit backward
// edges, so enumeration can be reused unchanged against the restricted view.
func restrictedPool(pool *core.Pool, handles []core.Handle, chosen map[activeEdge]bool) (*core.Pool, []core.Handle) {
	restricted := core.NewPool()
	index := make(map[core.Handle]core.Handle, len(handles))
	restrictedHandles := make([]core.Handle, 0, len(handles))
	for _, h := range handles {
		rh := restricted.AddNode(mustNode(pool, h))
		index[h] = rh
		restrictedHandles = append(restrictedHandles, rh)
	}
	for e, on := range chosen {
		if !on {
			continue
		}
		if ru, ok := index[e.from]; ok {
			if rv, ok2 := index[e.to]; ok2 {
				restricted.SetAdjacency(ru, rv, true)
			}
		}
	}
	restricted.RebuildImplicitEdges()

	return restricted, restrictedHandles
}

func (s Scorer) withPool(p *core.Pool) Scorer {
	s.Pool = p

	return s
}

// MonteCarloExpectedUtility implements §4.3's Monte-Carlo estimator: repeat
// nIterations times, each time sampling independent Bernoulli node
// availability and, conditional on availability, edge success, evaluating
// the best packing on the realized subgraph, and averaging.
func MonteCarloExpectedUtility(pool *core.Pool, lrs Arrangement, scorer Scorer, maxCycleSize, maxChainLength, nIterations int, gen *rng.Generator) float64 {
	if nIterations <= 0 {
		return 0
	}

	donors := donorsOf(pool, lrs.Handles)
	total := 0.0

	for iter := 0; iter < nIterations; iter++ {
		available := make(map[availableDonor]bool, len(donors))
		for _, d := range donors {
			donor, err := mustNode(pool, d.node).Donor(d.index)
			if err != nil {
				panic(err)
			}
			available[d] = gen.Bernoulli(scorer.survivalProbability(donor))
		}

		edges := edgesIncidentOn(pool, lrs.Handles, available)
		chosen := make(map[activeEdge]bool, len(edges))
		for _, e := range edges {
			m, _ := pool.Match(core.EdgeKey{DonorNode: e.from, DonorIndex: e.donorIdx, CandidateNode: e.to})
			succ := 1.0
			if m != nil {
				succ = m.AssumedSuccessProbability
			}
			chosen[e] = gen.Bernoulli(succ)
		}

		total += bestPackingUtility(pool, lrs, scorer, chosen, maxCycleSize, maxChainLength)
	}

	return total / float64(nIterations)
}
