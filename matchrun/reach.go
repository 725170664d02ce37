package matchrun

import "github.com/kpdsim/engine/core"

// unreachable is the sentinel distance used by floydWarshall for vertex
// pairs with no path, chosen well above any realistic bounded-size
// arrangement's diameter so additions never overflow.
const unreachable = 1 << 30

// floydWarshall computes all-pairs shortest path lengths over A_reduced
// restricted to the given handle set. dist[i][j] is the hop count
// from handles[i] to handles[j], or unreachable. Grounded on the classic
// O(n^3) relaxation: dist starts at 1 for each adjacent pair and 0 on the
// diagonal, then each candidate intermediate vertex k is tried in turn.
func floydWarshall(pool *core.Pool, handles []core.Handle) [][]int {
	n := len(handles)
	dist := make([][]int, n)
	for i := range dist {
		dist[i] = make([]int, n)
		for j := range dist[i] {
			switch {
			case i == j:
				dist[i][j] = 0
			case pool.AdjacentReduced(handles[i], handles[j]):
				dist[i][j] = 1
			default:
				dist[i][j] = unreachable
			}
		}
	}

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if dist[i][k] == unreachable {
				continue
			}
			for j := 0; j < n; j++ {
				if dist[k][j] == unreachable {
					continue
				}
				if alt := dist[i][k] + dist[k][j]; alt < dist[i][j] {
					dist[i][j] = alt
				}
			}
		}
	}

	return dist
}

// reachable implements the §4.2 reach predicate from vertex 0 of the given
// handle ordering: vertex i is flood-reachable if either vertex 0 is an
// NDD/BRIDGE root and sp[0->i] <= maxChainLength+1, or vertex 0 is a PAIR
// and (i is a PAIR with sp[i->0]+sp[0->i] <= maxCycleSize, or i is not a
// PAIR with sp[i->0] <= maxChainLength+1).
func reachable(pool *core.Pool, handles []core.Handle, maxCycleSize, maxChainLength int) bool {
	if len(handles) == 0 {
		return false
	}

	dist := floydWarshall(pool, handles)
	rootIsPair := mustNode(pool, handles[0]).Kind() == core.KindPair

	for i, h := range handles {
		if !floodReach(pool, dist, i, rootIsPair, h, maxCycleSize, maxChainLength) {
			return false
		}
	}

	return true
}

func floodReach(pool *core.Pool, dist [][]int, i int, rootIsPair bool, h core.Handle, maxCycleSize, maxChainLength int) bool {
	if !rootIsPair {
		return dist[0][i] <= maxChainLength+1
	}

	if mustNode(pool, h).Kind() == core.KindPair {
		return dist[i][0]+dist[0][i] <= maxCycleSize
	}

	return dist[i][0] <= maxChainLength+1
}
