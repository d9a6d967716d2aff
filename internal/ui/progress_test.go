package ui

import (
	"strings"
	"testing"
)

func TestApplyEventCountsOnce(t *testing.T) {
	events := make(chan Event)
	m := NewProgressModel("check", []string{"a", "b"}, events).(*progressModel)

	m.applyEvent(Event{Name: "a", OK: true})
	m.applyEvent(Event{Name: "a", OK: false})
	m.applyEvent(Event{Name: "missing"})
	if m.finished != 1 || m.items[0].status != statusOK {
		t.Fatalf("finished %d, status %q", m.finished, m.items[0].status)
	}

	m.applyEvent(Event{Name: "b", Diagnostics: 2})
	if m.finished != 2 || m.items[1].status != statusFailed || m.items[1].diags != 2 {
		t.Fatalf("second event not applied: %+v", m.items[1])
	}
}

func TestViewListsQueries(t *testing.T) {
	m := NewProgressModel("check", []string{"substring", "fill"}, nil).(*progressModel)
	m.applyEvent(Event{Name: "fill", Diagnostics: 1})
	view := m.View()
	for _, want := range []string{"check (1/2)", "substring", "fill (1 diagnostics)", statusQueued, statusFailed} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 6, "abc..."},
		{"abcdef", 2, "ab"},
		{"日本語テキスト", 7, "日本..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
