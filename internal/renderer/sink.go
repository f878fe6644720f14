package renderer

import (
	"fmt"
	"io"
)

// Sink receives progress text line by line.
type Sink interface {
	WriteLine(line string)
}

type writerSink struct {
	w io.Writer
}

// NewWriterSink returns a Sink writing each line, newline terminated, to w.
func NewWriterSink(w io.Writer) Sink {
	return &writerSink{w: w}
}

func (s *writerSink) WriteLine(line string) {
	fmt.Fprintln(s.w, line)
}

// DiscardSink drops every line.
var DiscardSink Sink = discardSink{}

type discardSink struct{}

func (discardSink) WriteLine(string) {}
