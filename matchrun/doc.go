// Package matchrun enumerates the arrangements available at a single match
// run — cycles, chains, and locally-relevant subgraphs over the pool's
// current adjacency — and scores each under a selected utility scheme,
// including the exact and Monte-Carlo expected-utility estimators used for
// locally-relevant subgraphs.
//
// The functions here only read the core.Pool they are given: they never
// mutate it. Selection and realization are the caller's
// responsibility (see packages solver and arrangement).
package matchrun
