// Package solver implements the vertex-disjoint 0/1 set-packing selection
// described in §4.4: choose a subset of candidate arrangements maximizing
// total utility subject to each pool vertex appearing in at most one chosen
// arrangement.
//
// No branch-and-bound or MILP library was found among the retrieved example
// repositories (checked gonum, the nearest candidate, which ships no
// integer-programming solver), so this package implements a from-scratch
// branch-and-bound search, grounded on the same recursive
// bound-then-branch structure the example corpus's travelling-salesman
// branch-and-bound solver uses for its own NP-hard search. The 4-thread cap
// and suppressed solver log are honored as explicit fields on Options rather
// than a solver-wide global, so concurrent Optimize calls never share
// state.
package solver
