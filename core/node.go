package core

import "fmt"

// StatusEvent records a single lifecycle-status change at a given
// simulation day, as generated once per iteration by record.GenerateTimelines.
type StatusEvent struct {
	Time   int
	Status NodeStatus
}

// Node is an entity in the exchange graph: a tagged union over PAIR (a
// candidate with one or more ordered donors), NDD (a single non-directed
// donor) or BRIDGE (a former chain-tail donor persisting in the pool).
//
// Node is a mutable value owned by a Pool; callers outside the owning
// simulation tick must not mutate it directly (see doc.go).
type Node struct {
	id          string
	kind        NodeKind
	candidate   *Candidate  // nil for NDD/BRIDGE
	donors      []*Donor    // len>=1 for PAIR; len==1 for NDD/BRIDGE
	arrivalTime int

	timeline         []StatusEvent
	transplantStatus TransplantStatus
}

// NewPairNode constructs a PAIR node. donors must be non-empty (order is
// significant: donor indices referenced by Match are positions in this
// slice).
func NewPairNode(id string, candidate *Candidate, donors []*Donor, arrivalTime int) (*Node, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if len(donors) == 0 {
		return nil, ErrNoDonors
	}

	return &Node{
		id:          id,
		kind:        KindPair,
		candidate:   candidate,
		donors:      append([]*Donor(nil), donors...),
		arrivalTime: arrivalTime,
		timeline:    []StatusEvent{{Time: arrivalTime, Status: StatusActive}},
	}, nil
}

// NewNDDNode constructs a non-directed-donor node.
func NewNDDNode(id string, donor *Donor, arrivalTime int) (*Node, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	return &Node{
		id:          id,
		kind:        KindNDD,
		donors:      []*Donor{donor},
		arrivalTime: arrivalTime,
		timeline:    []StatusEvent{{Time: arrivalTime, Status: StatusActive}},
	}, nil
}

func (n *Node) ID() string         { return n.id }
func (n *Node) Kind() NodeKind     { return n.kind }
func (n *Node) Candidate() *Candidate { return n.candidate }
func (n *Node) ArrivalTime() int   { return n.arrivalTime }

// Donors returns the node's ordered donor list. Do not mutate the returned
// slice's backing array; use Donor(i) for single lookups.
func (n *Node) Donors() []*Donor { return n.donors }

// Donor returns the donor at idx, or ErrDonorIndexOutOfRange.
func (n *Node) Donor(idx int) (*Donor, error) {
	if idx < 0 || idx >= len(n.donors) {
		return nil, fmt.Errorf("core: Node(%s).Donor(%d): %w", n.id, idx, ErrDonorIndexOutOfRange)
	}

	return n.donors[idx], nil
}

// TransplantStatus reports the node's current transplant progress.
func (n *Node) TransplantStatus() TransplantStatus { return n.transplantStatus }

// SetTimeline replaces the node's lifecycle timeline wholesale. Used once by
// record.GenerateTimelines at iteration start; the slice must be
// non-decreasing in Time and start no later than arrivalTime.
func (n *Node) SetTimeline(events []StatusEvent) {
	n.timeline = append([]StatusEvent(nil), events...)
}

// ObservedStatus returns the node's last recorded status at or before time t
// (§4.6: "A node's observed status at time t is the last recorded status at
// or before t"). If t precedes the first event, StatusActive is returned.
func (n *Node) ObservedStatus(t int) NodeStatus {
	status := StatusActive
	for _, ev := range n.timeline {
		if ev.Time > t {
			break
		}
		status = ev.Status
	}

	return status
}

// SetTransplantStatus applies a transplant-status transition, rejecting
// moves that violate the monotone-except-IN_PROGRESS-reverts invariant.
func (n *Node) SetTransplantStatus(s TransplantStatus) error {
	switch {
	case n.transplantStatus == Transplanted && s != Transplanted:
		return fmt.Errorf("core: Node(%s).SetTransplantStatus(%s): %w", n.id, s, ErrInvalidTransition)
	case n.transplantStatus == TransplantInProgress && s == NotTransplanted:
		// allowed: arrangement did not, in the end, transplant this node.
	case s < n.transplantStatus:
		return fmt.Errorf("core: Node(%s).SetTransplantStatus(%s): %w", n.id, s, ErrInvalidTransition)
	}
	n.transplantStatus = s

	return nil
}

// ConvertToBridge mutates a NDD or a PAIR's chain-tail donor in place into a
// BRIDGE node: the node's identity (id) persists, but its kind and donor set
// change per §4.5/design-notes "variant mutation, not a new node". The
// candidate (if any) is dropped since a bridge donor has no paired
// candidate of its own.
func (n *Node) ConvertToBridge(tailDonor *Donor, arrivalTime int) error {
	if n.kind != KindNDD && n.kind != KindPair {
		return fmt.Errorf("core: Node(%s).ConvertToBridge: %w", n.id, ErrWrongNodeKind)
	}

	n.kind = KindBridge
	n.candidate = nil
	n.donors = []*Donor{tailDonor}
	n.arrivalTime = arrivalTime

	return nil
}

func (n *Node) String() string {
	return fmt.Sprintf("Node(%s, %s)", n.id, n.kind)
}
