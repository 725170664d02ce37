// Package simulation drives one iteration's tick loop: per-day state
// transitions (read from the precomputed timelines record.GenerateTimelines
// produces), periodic match runs (enumerate/score/select via matchrun and
// solver), and the delayed transplant queue arrangement.Enqueue/Realize
// feed. It is the Go counterpart of the teacher's top-level orchestration
// loop, generalized from a single fixed pipeline into one driven by
// config.Parameters.
//
// Per §7, an invariant-violation panic (core/matchrun/arrangement all panic
// on conditions that should never occur given a valid pool) is recovered at
// the match-run and transplant-stage call boundaries within RunIteration,
// turned into a returned error that aborts the remainder of that iteration;
// the caller (cmd/kpdsim) logs it and proceeds to the next iteration.
package simulation
