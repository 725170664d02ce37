package simlog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerIncludesIterationAndMatchRunContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf).WithIteration(3).WithMatchRun(2)
	l.Info("match run complete")

	out := buf.String()
	assert.Contains(t, out, "iteration=3")
	assert.Contains(t, out, "match_run=2")
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "match run complete")
}

func TestLoggerLevelsRenderDistinctTags(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.Warn("skipped malformed row")
	l.Error("invariant violation recovered")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require := assert.New(t)
	require.Len(lines, 2)
	require.Contains(lines[0], "[WARN]")
	require.Contains(lines[1], "[ERROR]")
}

func TestWithIterationDoesNotMutateReceiver(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf)
	scoped := base.WithIteration(5)

	base.Info("base line")
	scoped.Info("scoped line")

	out := buf.String()
	assert.Contains(t, out, "iteration=0")
	assert.Contains(t, out, "iteration=5")
}
