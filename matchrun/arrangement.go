package matchrun

import "github.com/kpdsim/engine/core"

// Kind distinguishes the three structures enumeration can produce.
type Kind uint8

const (
	KindCycle Kind = iota
	KindChain
	KindLRS
)

func (k Kind) String() string {
	switch k {
	case KindCycle:
		return "cycle"
	case KindChain:
		return "chain"
	case KindLRS:
		return "lrs"
	default:
		return "unknown"
	}
}

// Arrangement is a candidate structure produced by enumeration: an ordered
// (for cycles/chains) or unordered (for LRS) set of node handles. For a
// chain, Handles[0] is always the NDD/BRIDGE root per the rotation rule in
// §4.2. HasNDD records whether any handle is an NDD or BRIDGE node.
type Arrangement struct {
	Kind    Kind
	Handles []core.Handle
	HasNDD  bool

	// Utility is populated by the scoring pass (matchrun/utility.go) and is
	// zero until then.
	Utility float64
}

// edges returns the ordered directed edges walked by this arrangement: for
// a cycle/chain, consecutive handles plus — for a cycle only — the closing
// edge back to Handles[0]. LRS arrangements have no canonical edge order and
// are not valid inputs to this helper.
func (a Arrangement) edges() [][2]core.Handle {
	n := len(a.Handles)
	if n == 0 {
		return nil
	}

	edges := make([][2]core.Handle, 0, n)
	for i := 0; i+1 < n; i++ {
		edges = append(edges, [2]core.Handle{a.Handles[i], a.Handles[i+1]})
	}
	if a.Kind == KindCycle {
		edges = append(edges, [2]core.Handle{a.Handles[n-1], a.Handles[0]})
	}

	return edges
}

func countNDDs(pool *core.Pool, handles []core.Handle) int {
	count := 0
	for _, h := range handles {
		if k := mustNode(pool, h).Kind(); k == core.KindNDD || k == core.KindBridge {
			count++
		}
	}

	return count
}

func hasNonABDonor(pool *core.Pool, h core.Handle) bool {
	for _, d := range mustNode(pool, h).Donors() {
		if d.BloodType() != core.BloodTypeAB {
			return true
		}
	}

	return false
}
