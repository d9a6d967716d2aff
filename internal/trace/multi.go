package trace

import "errors"

// MultiTracer sends each event to every sink, as with --trace-mode=both.
type MultiTracer struct {
	gate
	sinks []Tracer
}

func NewMultiTracer(level Level, sinks ...Tracer) *MultiTracer {
	return &MultiTracer{gate: gate{level}, sinks: sinks}
}

// Ring returns the first ring sink, if any, so its contents can be dumped.
func (t *MultiTracer) Ring() (*RingTracer, bool) {
	for _, s := range t.sinks {
		if ring, ok := s.(*RingTracer); ok {
			return ring, true
		}
	}
	return nil, false
}

func (t *MultiTracer) Emit(ev *Event) {
	for _, s := range t.sinks {
		s.Emit(ev)
	}
}

func (t *MultiTracer) Flush() error {
	var errs []error
	for _, s := range t.sinks {
		errs = append(errs, s.Flush())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Close() error {
	var errs []error
	for _, s := range t.sinks {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
