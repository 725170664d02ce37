// Package simlog provides the structured, leveled logging the simulation
// loop and its collaborators write to. The teacher's own examples reach for
// the standard library's log.Logger directly (log.Fatalf at call sites, no
// third-party logging framework), and no logging library appears anywhere
// in the retrieved corpus, so Logger wraps *log.Logger rather than
// introducing one.
package simlog
