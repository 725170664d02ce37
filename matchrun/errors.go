package matchrun

import "errors"

var (
	// ErrTooManyNodes guards the exact expected-utility enumerator's subset
	// blow-up: beyond this many active donors the power set is intractable
	// and the Monte-Carlo estimator must be used instead.
	ErrTooManyNodes = errors.New("matchrun: exact expected utility requires n<=20 active donors")

	// ErrEmptyArrangement names a structure with no nodes. No function in
	// this package returns it.
	ErrEmptyArrangement = errors.New("matchrun: arrangement has no nodes")

	// ErrUnknownScheme names a UtilityScheme or OptimizationScheme value
	// outside its declared range. No function in this package returns it.
	ErrUnknownScheme = errors.New("matchrun: unrecognized scheme")
)
