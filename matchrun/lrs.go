package matchrun

import "github.com/kpdsim/engine/core"

// EnumerateLRS performs both passes of locally-relevant-subgraph enumeration
// described in §4.2, bounded by maxLRSSize.
func EnumerateLRS(pool *core.Pool, active []core.Handle, maxLRSSize, maxCycleSize, maxChainLength int) []Arrangement {
	var out []Arrangement
	out = append(out, pairsOnlyPass(pool, active, maxLRSSize, maxCycleSize, maxChainLength)...)
	out = append(out, nddIncludingPass(pool, active, maxLRSSize, maxCycleSize, maxChainLength)...)

	return out
}

// pairsOnlyPass grows, for every pair vertex r, a BFS tree over A_reduced
// rooted at r. A candidate child at intended level l is admitted only if it
// is unvisited, has no predecessor already in the tree at a level below
// l-1, and has at least one predecessor at level l-1. Strong reachability
// is checked once, on the finished tree, by reachable(), whose pair-root
// rule needs every vertex to reach r and be reached from r; there is no
// check per extension, and a tree that fails it is dropped whole.
func pairsOnlyPass(pool *core.Pool, active []core.Handle, maxLRSSize, maxCycleSize, maxChainLength int) []Arrangement {
	var out []Arrangement

	for _, r := range active {
		if mustNode(pool, r).Kind() != core.KindPair {
			continue
		}

		tree := growPairsOnlyTree(pool, r, active, maxLRSSize)
		if len(tree) == 0 {
			continue
		}
		if !reachable(pool, tree, maxCycleSize, maxChainLength) {
			continue
		}

		out = append(out, Arrangement{Kind: KindLRS, Handles: tree, HasNDD: countNDDs(pool, tree) > 0})
	}

	return out
}

// growPairsOnlyTree grows a single BFS tree rooted at r, level by level,
// admitting a pair child only when it has a predecessor at the immediately
// preceding level and no predecessor at an earlier level (clause (ii) of
// §4.2), stopping once maxLRSSize vertices are collected or no further
// admissible children exist.
func growPairsOnlyTree(pool *core.Pool, r core.Handle, active []core.Handle, maxLRSSize int) []core.Handle {
	level := map[core.Handle]int{r: 0}
	tree := []core.Handle{r}
	frontier := []core.Handle{r}

	for len(tree) < maxLRSSize && len(frontier) > 0 {
		var next []core.Handle
		for _, u := range frontier {
			for _, v := range active {
				if mustNode(pool, v).Kind() != core.KindPair {
					continue
				}
				if _, seen := level[v]; seen {
					continue
				}
				if !pool.AdjacentReduced(u, v) {
					continue
				}
				if hasEarlierPredecessor(pool, tree, level, v, level[u]) {
					continue
				}

				level[v] = level[u] + 1
				tree = append(tree, v)
				next = append(next, v)

				if len(tree) >= maxLRSSize {
					return tree
				}
			}
		}
		frontier = next
	}

	return tree
}

// hasEarlierPredecessor reports whether candidate v has a reduced-adjacency
// predecessor already in tree at a level strictly below parentLevel — which
// would violate clause (ii) of the pairs-only admission rule (no
// predecessor at a level below l-1, where l = parentLevel+1).
func hasEarlierPredecessor(pool *core.Pool, tree []core.Handle, level map[core.Handle]int, v core.Handle, parentLevel int) bool {
	for _, u := range tree {
		if pool.AdjacentReduced(u, v) && level[u] < parentLevel {
			return true
		}
	}

	return false
}

// nddIncludingPass grows one BFS tree over A per NDD/BRIDGE root, admitting
// children under the same level discipline as the pairs-only pass. Each
// tree has exactly one root: no further NDD subtree is started or joined to
// it. This is a bounded, terminating
// approximation of the state-machine described in §4.2 (next, nextNDD,
// childLevel, childLevelNDD, childCanBeNDD, childIsAdjacentToLowerLevels):
// each NDD root is tried once, its subtree grown to maxLRSSize under the
// same predecessor-level rule as pairs, and accepted when reach-admissible.
func nddIncludingPass(pool *core.Pool, active []core.Handle, maxLRSSize, maxCycleSize, maxChainLength int) []Arrangement {
	var out []Arrangement

	for _, root := range active {
		k := mustNode(pool, root).Kind()
		if k != core.KindNDD && k != core.KindBridge {
			continue
		}

		tree := growNDDTree(pool, root, active, maxLRSSize)
		if len(tree) == 0 {
			continue
		}
		if !reachable(pool, tree, maxCycleSize, maxChainLength) {
			continue
		}

		out = append(out, Arrangement{Kind: KindLRS, Handles: tree, HasNDD: true})
	}

	return out
}

func growNDDTree(pool *core.Pool, root core.Handle, active []core.Handle, maxLRSSize int) []core.Handle {
	level := map[core.Handle]int{root: 0}
	tree := []core.Handle{root}
	frontier := []core.Handle{root}

	for len(tree) < maxLRSSize && len(frontier) > 0 {
		var next []core.Handle
		for _, u := range frontier {
			for _, v := range active {
				if v == root {
					continue
				}
				if _, seen := level[v]; seen {
					continue
				}
				if !pool.Adjacent(u, v) {
					continue
				}
				if hasEarlierPredecessor(pool, tree, level, v, level[u]) {
					continue
				}

				level[v] = level[u] + 1
				tree = append(tree, v)
				next = append(next, v)

				if len(tree) >= maxLRSSize {
					return tree
				}
			}
		}
		frontier = next
	}

	return tree
}
