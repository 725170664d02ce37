package datasource

import (
	"bufio"
	"fmt"
	"io"
)

// LogSink is the plain-text simulation log output named in §6: one line per
// call, flushed immediately so a crashed run still leaves a readable log.
type LogSink struct {
	w *bufio.Writer
}

// NewLogSink wraps w.
func NewLogSink(w io.Writer) *LogSink {
	return &LogSink{w: bufio.NewWriter(w)}
}

// Writeln writes one line and flushes.
func (s *LogSink) Writeln(line string) error {
	if _, err := fmt.Fprintln(s.w, line); err != nil {
		return err
	}

	return s.w.Flush()
}
