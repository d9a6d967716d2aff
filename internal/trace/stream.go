package trace

import (
	"io"
	"sync"
)

// StreamTracer writes every accepted event as soon as it arrives.
type StreamTracer struct {
	gate
	mu     sync.Mutex
	w      io.Writer
	format Format
	owned  bool // w was opened by New and is closed with the tracer
}

// NewStreamTracer writes to w, which the caller keeps ownership of.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{gate: gate{level}, w: w, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.accepts(ev) {
		return
	}
	ev.Seq = NextSeq()
	data := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	// tracing never fails a command
	_, _ = t.w.Write(data)
}

// Flush calls Flush on the writer when it has one.
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if flusher, ok := t.w.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// Close flushes, and closes the writer only if New opened it.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if closer, ok := t.w.(io.Closer); ok && t.owned {
		return closer.Close()
	}
	return nil
}
