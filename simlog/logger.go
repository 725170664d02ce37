package simlog

import (
	"io"
	"log"
)

// Level is a log line's severity.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Logger writes one line per call, each carrying the iteration and,
// where applicable, match-run context that produced it — the detail the
// spec's error-handling design expects a "logged, skipped" event to carry.
type Logger struct {
	out       *log.Logger
	iteration int
	matchRun  int
}

// New wraps w with the standard flags the teacher's own log.Fatalf call
// sites assume (date/time prefix, no extra decoration).
func New(w io.Writer) *Logger {
	return &Logger{out: log.New(w, "", log.LstdFlags)}
}

// WithIteration returns a Logger scoped to the given simulation iteration,
// leaving the receiver unchanged.
func (l *Logger) WithIteration(iteration int) *Logger {
	return &Logger{out: l.out, iteration: iteration, matchRun: l.matchRun}
}

// WithMatchRun returns a Logger additionally scoped to a match-run index
// within the current iteration.
func (l *Logger) WithMatchRun(matchRun int) *Logger {
	return &Logger{out: l.out, iteration: l.iteration, matchRun: matchRun}
}

func (l *Logger) log(level Level, msg string) {
	l.out.Printf("[%s] iteration=%d match_run=%d %s", level, l.iteration, l.matchRun, msg)
}

// Info logs a normal-progress line.
func (l *Logger) Info(msg string) { l.log(LevelInfo, msg) }

// Warn logs a recoverable anomaly, e.g. a Data-kind row skipped per §7.
func (l *Logger) Warn(msg string) { l.log(LevelWarn, msg) }

// Error logs an Invariant-kind panic recovered at an iteration boundary,
// per §7's "outer simulation loop continues to the next iteration" rule.
func (l *Logger) Error(msg string) { l.log(LevelError, msg) }
