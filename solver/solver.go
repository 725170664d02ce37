package solver

import (
	"sort"
	"sync"
)

// Item is one candidate arrangement: its utility coefficient and the pool
// vertex indices it occupies (the per-vertex <=1 packing constraint in
// §4.4). Vertex indices are caller-assigned small integers (core.Handle
// converts directly).
type Item struct {
	Utility  float64
	Vertices []int
}

// Options configures a single Optimize call. MaxThreads is clamped to 4 per
// §4.4's "4-thread cap" contract; SuppressLog exists so callers can silence
// solver diagnostics without a global logger flag, matching "a suppressed
// solver log" as a per-call contract rather than ambient state.
type Options struct {
	MaxThreads  int
	SuppressLog bool
}

func (o Options) threads() int {
	if o.MaxThreads <= 0 || o.MaxThreads > 4 {
		return 4
	}

	return o.MaxThreads
}

// Result is the outcome of one Optimize call.
type Result struct {
	Status   Status
	Selected []int // indices into the input Items slice
	Value    float64
}

type searchState struct {
	value    float64
	selected []int
}

// bbSearch carries the inputs shared by every recursive call: the items in
// utility-descending order and a precomputed suffix bound (the sum of the
// remaining positive utilities).
type bbSearch struct {
	items       []Item
	order       []int // indices into items, utility descending
	suffixBound []float64
}

// Optimize solves the vertex-disjoint set-packing maximization: select a
// subset of items maximizing total utility such that no vertex is covered
// by more than one selected item. Returns StatusInfeasible only when items
// is empty; StatusOptimal otherwise, since an empty selection (value 0) is
// always feasible for this model.
//
// The top-level include/exclude decision for the highest-utility item is
// split across up to Options.MaxThreads (capped at 4) goroutines; each
// explores its half of the search tree with a plain sequential
// branch-and-bound. The branch results are compared in a fixed order
// (exclude, then include), so between equal values the exclude branch's
// selection is kept.
func Optimize(items []Item, opts Options) Result {
	if len(items) == 0 {
		return Result{Status: StatusInfeasible}
	}

	order := sortByUtilityDescending(items)
	b := &bbSearch{
		items:       items,
		order:       order,
		suffixBound: makeSuffixBound(items, order),
	}

	sem := make(chan struct{}, opts.threads())
	var wg sync.WaitGroup

	branches := b.rootBranches()
	results := make([]searchState, len(branches))
	for i, start := range branches {
		i, start := i, start
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			results[i] = b.search(1, start.occupied, start.state)
		}()
	}
	wg.Wait()

	best := searchState{}
	for _, local := range results {
		if local.value > best.value {
			best = local
		}
	}

	return Result{Status: StatusOptimal, Selected: best.selected, Value: best.value}
}

type rootBranch struct {
	occupied map[int]bool
	state    searchState
}

// rootBranches returns the one or two starting states for the top-level
// parallel split: "exclude the first item" always, and "include it" when
// it doesn't conflict with itself (vacuously true, included for symmetry
// with deeper recursion).
func (b *bbSearch) rootBranches() []rootBranch {
	exclude := rootBranch{occupied: map[int]bool{}, state: searchState{}}

	idx := b.order[0]
	item := b.items[idx]
	occupied := map[int]bool{}
	claim(occupied, item.Vertices)
	include := rootBranch{
		occupied: occupied,
		state:    searchState{value: item.Utility, selected: []int{idx}},
	}

	return []rootBranch{exclude, include}
}

// search explores position pos in the utility-descending order, given the
// vertices already occupied by inclusions made so far (base), and returns
// the best completion found by either taking or skipping each remaining
// item. suffixBound cuts the recursion only where base plus every remaining
// positive utility is still at most 0; branches are not compared against
// an incumbent.
func (b *bbSearch) search(pos int, occupied map[int]bool, base searchState) searchState {
	if pos >= len(b.order) || base.value+b.suffixBound[pos] <= 0 {
		return base
	}

	best := b.search(pos+1, occupied, base)

	idx := b.order[pos]
	item := b.items[idx]
	if !conflicts(item.Vertices, occupied) {
		claim(occupied, item.Vertices)
		withItem := b.search(pos+1, occupied, searchState{
			value:    base.value + item.Utility,
			selected: append(append([]int(nil), base.selected...), idx),
		})
		release(occupied, item.Vertices)

		if withItem.value > best.value {
			best = withItem
		}
	}

	return best
}

func conflicts(vertices []int, occupied map[int]bool) bool {
	for _, v := range vertices {
		if occupied[v] {
			return true
		}
	}

	return false
}

func claim(occupied map[int]bool, vertices []int) {
	for _, v := range vertices {
		occupied[v] = true
	}
}

func release(occupied map[int]bool, vertices []int) {
	for _, v := range vertices {
		delete(occupied, v)
	}
}

func sortByUtilityDescending(items []Item) []int {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return items[order[i]].Utility > items[order[j]].Utility
	})

	return order
}

// makeSuffixBound precomputes, for each position in order, the maximum
// value achievable by any subset of the remaining items (ignoring the
// disjointness constraint) — a valid relaxation upper bound; search uses it
// only to stop where nothing remaining can lift the value above 0.
func makeSuffixBound(items []Item, order []int) []float64 {
	bound := make([]float64, len(order)+1)
	for i := len(order) - 1; i >= 0; i-- {
		v := items[order[i]].Utility
		if v < 0 {
			v = 0
		}
		bound[i] = bound[i+1] + v
	}

	return bound
}
