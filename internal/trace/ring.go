package trace

import (
	"fmt"
	"io"
	"sync"
)

// RingTracer remembers the most recent events of a run so they can be
// dumped when a check ends, without paying for output on every event.
type RingTracer struct {
	gate
	mu    sync.Mutex
	buf   []Event
	next  int // slot for the next event
	count int // stored events, at most len(buf)
}

// NewRingTracer keeps up to size events; a non-positive size means
// DefaultRingSize.
func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingTracer{gate: gate{level}, buf: make([]Event, size)}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.accepts(ev) {
		return
	}
	stored := *ev
	stored.Seq = NextSeq()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf[t.next] = stored
	t.next = (t.next + 1) % len(t.buf)
	t.count = min(t.count+1, len(t.buf))
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, 0, t.count)
	start := (t.next - t.count + len(t.buf)) % len(t.buf)
	for i := range t.count {
		out = append(out, t.buf[(start+i)%len(t.buf)])
	}
	return out
}

// Dump writes the stored events in format. Text dumps start with a header
// naming how many events were kept.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	events := t.Snapshot()
	if format == FormatText && len(events) > 0 {
		if _, err := fmt.Fprintf(w, "trace: last %d events\n", len(events)); err != nil {
			return err
		}
	}
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }
func (t *RingTracer) Close() error { return nil }
