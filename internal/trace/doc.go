// Package trace records what the cito tools spend their time on.
//
// Enable tracing via command-line flags:
//
//	cito env --trace=- --trace-level=detail
//
// Tracers:
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: last events of the run, dumped when the command exits
//   - MultiTracer: stream and ring together
//
// The CLI opens a driver span per command and stores it with WithSpan, so
// environment construction and batch checks nest below it.
//
// Levels select scopes: phase emits driver and phase spans, detail adds one
// event per class, debug adds members.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "system.init", 0)
//	defer span.End("")
package trace
