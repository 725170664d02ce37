// Package engine simulates kidney-paired-donation exchange: candidates and
// their incompatible donors, together with non-directed donors, arrive into
// a pool; at each match run the engine enumerates cycles, chains, and
// locally-relevant subgraphs over the current compatibility graph, scores
// them, solves a vertex-disjoint selection, and carries selected
// arrangements through lab-crossmatch fallback to realized transplants.
//
// The engine is organized under:
//
//	core/        — Candidate, Donor, Node, Match, and the Pool that owns them
//	crossmatch/  — virtual (planning-time) blood-type/HLA compatibility test
//	rng/         — the deterministic Schrage generator and its seven streams
//	matchrun/    — cycle/chain/LRS enumeration, utility, expected utility
//	solver/      — vertex-disjoint 0/1 set-packing branch-and-bound
//	arrangement/ — lifecycle from selection through fallback to realization
//	record/      — per-iteration pool synthesis and status timelines
//	simulation/  — the tick loop tying the above together
//	config/      — key=value parameter loading
//	datasource/  — CSV input tables and output sinks
//	cmd/kpdsim/  — command-line driver
package engine
