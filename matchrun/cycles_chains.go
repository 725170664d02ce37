package matchrun

import "github.com/kpdsim/engine/core"

// cycleChainWalker encapsulates the DFS state used to enumerate bounded
// cycles and chains, in the same walker-struct idiom used throughout this
// engine's predecessor traversal code: a single struct carrying the
// immutable inputs and the mutable stack/visited bookkeeping, with one
// method per recursive step.
type cycleChainWalker struct {
	pool            *core.Pool
	maxCycleSize    int
	maxChainLength  int
	allowABBridge   bool
	maxDepth        int
	active          []core.Handle
	onStack         map[core.Handle]int // handle -> position in stack
	stack           []core.Handle
	out             []Arrangement
}

// EnumerateCyclesAndChains performs the DFS over the pool's adjacency
// described in §4.2, visiting only the handles in active: paths are
// extended up to
// max(maxChainLength+1, maxCycleSize) vertices; when a back-edge to the
// path's start is found, the stack's NDD count decides whether it is
// emitted as a cycle (0 NDDs) or rotated into a chain (exactly 1 NDD, NDD at
// position 0); stacks with 2 or more NDDs are rejected. Emission order is
// DFS discovery order; no further deduplication is required because the
// search only ever starts a candidate cycle from its lowest-indexed vertex.
func EnumerateCyclesAndChains(pool *core.Pool, active []core.Handle, maxCycleSize, maxChainLength int, allowABBridge bool) []Arrangement {
	maxDepth := maxChainLength + 1
	if maxCycleSize > maxDepth {
		maxDepth = maxCycleSize
	}

	w := &cycleChainWalker{
		pool:           pool,
		maxCycleSize:   maxCycleSize,
		maxChainLength: maxChainLength,
		allowABBridge:  allowABBridge,
		maxDepth:       maxDepth,
		active:         active,
		onStack:        make(map[core.Handle]int, maxDepth),
	}

	for _, start := range active {
		w.stack = w.stack[:0]
		w.onStack = make(map[core.Handle]int, maxDepth)
		w.extend(start, start)
	}

	return w.out
}

// extend explores every forward adjacency edge from current, pushing onto
// the stack and recursing, or — on discovering a back-edge to start —
// attempting to emit the stack as a cycle or chain.
func (w *cycleChainWalker) extend(start, current core.Handle) {
	w.onStack[current] = len(w.stack)
	w.stack = append(w.stack, current)
	defer func() {
		delete(w.onStack, current)
		w.stack = w.stack[:len(w.stack)-1]
	}()

	if len(w.stack) > w.maxDepth {
		return
	}

	for _, next := range w.active {
		if !w.pool.Adjacent(current, next) {
			continue
		}

		if next == start && len(w.stack) >= 1 {
			// Only canonicalize cycles/chains starting at the lowest
			// handle on the stack, so each structure is discovered once.
			if isLowestOnStack(w.stack, start) {
				w.tryEmit()
			}

			continue
		}

		if _, onStack := w.onStack[next]; onStack {
			continue
		}

		w.extend(start, next)
	}
}

func isLowestOnStack(stack []core.Handle, start core.Handle) bool {
	for _, h := range stack {
		if h < start {
			return false
		}
	}

	return true
}

// tryEmit classifies the current stack by NDD count and, if admissible,
// appends the resulting Arrangement to w.out.
func (w *cycleChainWalker) tryEmit() {
	ndds := countNDDs(w.pool, w.stack)

	switch ndds {
	case 0:
		if len(w.stack) <= w.maxCycleSize {
			handles := append([]core.Handle(nil), w.stack...)
			w.out = append(w.out, Arrangement{Kind: KindCycle, Handles: handles})
		}
	case 1:
		if len(w.stack) <= w.maxChainLength+1 {
			handles := rotateNDDToFront(w.pool, w.stack)
			if !w.allowABBridge && !hasNonABDonor(w.pool, handles[len(handles)-1]) {
				return
			}
			w.out = append(w.out, Arrangement{Kind: KindChain, Handles: handles, HasNDD: true})
		}
	default:
		// 2+ NDDs on the stack: rejected per §4.2.
	}
}

// rotateNDDToFront rotates stack so its single NDD/BRIDGE handle is at
// position 0, preserving the relative (cyclic) order of the remaining pairs.
func rotateNDDToFront(pool *core.Pool, stack []core.Handle) []core.Handle {
	nddIdx := -1
	for i, h := range stack {
		if k := mustNode(pool, h).Kind(); k == core.KindNDD || k == core.KindBridge {
			nddIdx = i

			break
		}
	}
	if nddIdx <= 0 {
		return append([]core.Handle(nil), stack...)
	}

	rotated := make([]core.Handle, 0, len(stack))
	rotated = append(rotated, stack[nddIdx:]...)
	rotated = append(rotated, stack[:nddIdx]...)

	return rotated
}
