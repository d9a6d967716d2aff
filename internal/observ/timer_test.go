package observ

import (
	"strings"
	"testing"

	"cito/internal/trace"
)

func TestTimerRecordsPhasesAndSpans(t *testing.T) {
	ring := trace.NewRingTracer(16, trace.LevelPhase)
	timer := NewTimer(ring, 0)
	env := timer.Begin("env")
	timer.End(env, "60 classes")
	check := timer.Begin("check")
	timer.End(check, "")
	timer.End(99, "ignored")

	report := timer.Report()
	if len(report.Phases) != 2 || report.Phases[0].Name != "env" || report.Phases[0].Note != "60 classes" {
		t.Fatalf("report %+v", report)
	}
	if report.TotalMS < report.Phases[0].DurationMS {
		t.Fatalf("total %f below phase %f", report.TotalMS, report.Phases[0].DurationMS)
	}
	if n := len(ring.Snapshot()); n != 4 {
		t.Fatalf("got %d trace events, want begin and end for each phase", n)
	}
	summary := timer.Summary()
	for _, want := range []string{"timings:", "env", "check", "total", "60 classes"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestTimerWithoutTracer(t *testing.T) {
	timer := NewTimer(nil, 0)
	timer.End(timer.Begin("only"), "")
	if got := timer.Phases(); len(got) != 1 || got[0].Dur < 0 {
		t.Fatalf("phases %+v", got)
	}
}

func TestNilTimer(t *testing.T) {
	var timer *Timer
	idx := timer.Begin("skipped")
	timer.End(idx, "")
	if idx != -1 {
		t.Fatalf("nil timer returned index %d", idx)
	}
}
