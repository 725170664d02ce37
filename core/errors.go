package core

import "errors"

// Sentinel errors for package core. Callers branch on these with errors.Is;
// messages are never interpolated with parameters at the definition site.
var (
	// ErrEmptyID indicates a Candidate, Donor or Node was constructed with
	// an empty identifier.
	ErrEmptyID = errors.New("core: empty id")

	// ErrNoDonors indicates a PAIR node was constructed with zero donors,
	// violating the "donors[>=1]" invariant in the data model.
	ErrNoDonors = errors.New("core: pair node requires at least one donor")

	// ErrHandleNotFound indicates a Handle does not refer to a live node in
	// the Pool.
	ErrHandleNotFound = errors.New("core: handle not found")

	// ErrDonorIndexOutOfRange indicates a donor index exceeds the node's
	// donor list.
	ErrDonorIndexOutOfRange = errors.New("core: donor index out of range")

	// ErrWrongNodeKind indicates an operation required a Node of a kind
	// (PAIR/NDD/BRIDGE) other than the one supplied.
	ErrWrongNodeKind = errors.New("core: wrong node kind for operation")

	// ErrInvalidTransition indicates an attempted status or transplant-status
	// transition violates the lifecycle invariants in §3 of the design (e.g.
	// mutating a WITHDRAWN or already-TRANSPLANTED node).
	ErrInvalidTransition = errors.New("core: invalid lifecycle transition")

	// ErrMatchExists indicates AddMatch was called twice for the same
	// (donor node, donor index, candidate node) triple in one iteration.
	ErrMatchExists = errors.New("core: match already recorded for this edge")
)
