package simulation

import "errors"

// ErrIterationAborted wraps a recovered invariant-violation panic: the
// iteration stopped early and its partial Result should still be reported,
// per §7's "abort the iteration ... outer simulation loop continues".
var ErrIterationAborted = errors.New("simulation: iteration aborted by invariant violation")
