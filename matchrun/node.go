package matchrun

import "github.com/kpdsim/engine/core"

// mustNode resolves a handle known to come from the pool's own handle list.
// A lookup failure here means a Handle outlived the Pool that issued it —
// an invariant violation, not a recoverable condition — so it panics; the
// simulation loop recovers at iteration boundaries (see package simulation).
func mustNode(pool *core.Pool, h core.Handle) *core.Node {
	n, err := pool.Node(h)
	if err != nil {
		panic(err)
	}

	return n
}
