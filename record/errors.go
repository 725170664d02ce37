package record

import "errors"

var (
	// ErrEmptyMatchingGroup is an Invariant-kind error: a matching-group
	// id in the KPD pairs table had no rows at all.
	ErrEmptyMatchingGroup = errors.New("record: matching group has no rows")

	// ErrPairWithoutCandidate is a Data-kind error: a non-NDD matching
	// group's first row carried no candidate id.
	ErrPairWithoutCandidate = errors.New("record: pair row missing candidate id")
)
