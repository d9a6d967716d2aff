// Package observ times the phases of a CLI run. Each phase is also a trace
// span, so --timings and --trace agree on what was measured.
package observ

import (
	"fmt"
	"strings"
	"time"

	"cito/internal/trace"
)

// Phase is one measured step.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
	span  *trace.Span
}

// Timer records phases in start order.
type Timer struct {
	tracer trace.Tracer
	parent uint64
	phases []Phase
}

// NewTimer returns a timer whose phases are traced as children of parent.
// A nil tracer disables tracing.
func NewTimer(tracer trace.Tracer, parent uint64) *Timer {
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Timer{tracer: tracer, parent: parent, phases: make([]Phase, 0, 8)}
}

// Begin starts a phase and returns its index for End. A nil Timer records
// nothing.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.phases = append(t.phases, Phase{
		Name:  name,
		Start: time.Now(),
		span:  trace.Begin(t.tracer, trace.ScopePhase, name, t.parent),
	})
	return len(t.phases) - 1
}

// End finishes the phase at idx. Unknown indexes are ignored.
func (t *Timer) End(idx int, note string) {
	if t == nil || idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
	p.span.End(note)
}

// Phases returns the recorded phases.
func (t *Timer) Phases() []Phase { return t.phases }

// PhaseReport is the serialized form of a phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report aggregates the phases with their total.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{Name: phase.Name, DurationMS: millis(phase.Dur), Note: phase.Note}
	}
	report.TotalMS = millis(total)
	return report
}

// Summary renders the report as an aligned table.
func (t *Timer) Summary() string {
	report := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&b, "  %-20s %8.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  " + p.Note)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "  %-20s %8.2f ms\n", "total", report.TotalMS)
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
