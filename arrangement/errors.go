package arrangement

import "errors"

// ErrAlreadyWithdrawn is an invariant violation: an arrangement was asked to
// transplant a node that withdrew before its transplant time fired. Per §7
// this aborts the enclosing iteration; it is not a recoverable condition.
var ErrAlreadyWithdrawn = errors.New("arrangement: cannot transplant a withdrawn node")
