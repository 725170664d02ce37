// Package rng implements the portable multiplicative-congruential generator
// (Schrage's method, a=16807, m=2^31-1) used for every stochastic decision in
// the simulation, and the seven named per-purpose streams — selection,
// attrition, arrival, match, donor, status, expected_utility — that must
// never share state.
//
// Determinism is the entire point of this package: given the same base seed
// and the same iteration index, NewStreams must produce the same stream, call
// after call, platform after platform. Nothing here may fall back to
// math/rand or any source of real entropy.
package rng
