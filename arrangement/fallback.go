package arrangement

import (
	"github.com/kpdsim/engine/core"
	"github.com/kpdsim/engine/matchrun"
	"github.com/kpdsim/engine/rng"
	"github.com/kpdsim/engine/solver"
)

// Config bundles the parameters Realize needs from the simulation's
// configuration, kept together so the function signature doesn't grow a new
// positional parameter with every configuration addition.
type Config struct {
	MaxCycleSize   int
	MaxChainLength int
	AllowABBridge  bool
	SolverOptions  solver.Options
}

// Realize performs §4.5's transplant-time procedure:
//  1. reveal the lab crossmatch on every edge of the snapshotted
//     arrangement, updating pool adjacency for any edge that fails;
//  2. re-enumerate cycles/chains restricted to the arrangement's nodes
//     under the now-current adjacency, score them, and solve a local
//     vertex-disjoint packing;
//  3. commit each realized structure: mark transplanted candidates, convert
//     chain tails to bridge donors, and rebuild their adjacency;
//  4. reset every arrangement node that wasn't realized back to
//     NOT_TRANSPLANTED.
//
// It returns the realized transplant records, in commit order.
func Realize(pool *core.Pool, a Arrangement, cfg Config, scorer matchrun.Scorer, labGen *rng.Generator) ([]TransplantRecord, error) {
	revealLabCrossmatches(pool, a.Handles, a.Kind == matchrun.KindCycle, labGen)

	candidates := matchrun.EnumerateCyclesAndChains(pool, a.Handles, cfg.MaxCycleSize, cfg.MaxChainLength, cfg.AllowABBridge)
	items := make([]solver.Item, len(candidates))
	for i, c := range candidates {
		items[i] = solver.Item{
			Utility:  scorer.Score(c),
			Vertices: handlesToInts(c.Handles),
		}
	}

	result := solver.Optimize(items, cfg.SolverOptions)

	realized := make(map[core.Handle]bool)
	var records []TransplantRecord

	if result.Status == solver.StatusOptimal {
		for _, idx := range result.Selected {
			structure := candidates[idx]
			for _, h := range structure.Handles {
				realized[h] = true
			}

			recs, err := commit(pool, structure, a.TransplantTime)
			if err != nil {
				return nil, err
			}
			records = append(records, recs...)
		}
	}

	for _, h := range a.Handles {
		if realized[h] {
			continue
		}
		n, err := pool.Node(h)
		if err != nil {
			return nil, err
		}
		if err := n.SetTransplantStatus(core.NotTransplanted); err != nil {
			return nil, err
		}
	}

	return records, nil
}

// revealLabCrossmatches draws the lab-crossmatch outcome for every match
// between consecutive (and, for a cycle, closing) handle pairs in the
// snapshot, then recomputes pool adjacency for each such edge from the
// surviving per-donor matches.
func revealLabCrossmatches(pool *core.Pool, handles []core.Handle, isCycle bool, labGen *rng.Generator) {
	n := len(handles)
	for i := 0; i+1 < n; i++ {
		revealEdge(pool, handles[i], handles[i+1], labGen)
	}
	if isCycle && n > 1 {
		revealEdge(pool, handles[n-1], handles[0], labGen)
	}
}

func revealEdge(pool *core.Pool, u, v core.Handle, labGen *rng.Generator) {
	for _, m := range pool.Matches(u, v) {
		if m.LabRevealed {
			continue
		}
		success := labGen.Bernoulli(m.ActualSuccessProbability)
		m.RevealLab(success)
	}

	pool.SetAdjacency(u, v, anyDonorAdjacent(pool, u, v))
}

func anyDonorAdjacent(pool *core.Pool, u, v core.Handle) bool {
	for _, m := range pool.Matches(u, v) {
		if m.Adjacency {
			return true
		}
	}

	return false
}

func handlesToInts(handles []core.Handle) []int {
	out := make([]int, len(handles))
	for i, h := range handles {
		out[i] = int(h)
	}

	return out
}
