package trace

import "context"

type tracerKey struct{}

type spanKey struct{}

// SpanContext identifies the span that work started from ctx belongs to.
type SpanContext struct {
	SpanID uint64
	GID    uint64
}

// WithTracer returns ctx carrying t; a nil t stores Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer of ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// WithSpan returns ctx under span, so that phases started from it nest
// below. A span from a filtered scope leaves ctx as it is.
func WithSpan(ctx context.Context, span *Span) context.Context {
	if span == nil || span.ID() == 0 {
		return ctx
	}
	return context.WithValue(ctx, spanKey{}, SpanContext{SpanID: span.id, GID: span.gid})
}

// CurrentSpan returns the span recorded by WithSpan, or the zero value.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx != nil {
		if sc, ok := ctx.Value(spanKey{}).(SpanContext); ok {
			return sc
		}
	}
	return SpanContext{}
}
