package diag

import (
	"testing"

	"cito/internal/source"
)

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{SynUnknownType, "SYN2002"},
		{SemaTypeMismatch, "SEM3001"},
		{IOLoadFileError, "IO4001"},
		{GenUnsupported, "GEN5001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
	if got := SemaTypeMismatch.String(); got != "[SEM3001]: Type mismatch" {
		t.Fatalf("String() = %q", got)
	}
	if Code(3999).Title() != "Unknown error" {
		t.Fatalf("unlisted codes must fall back to the unknown title")
	}
}

func TestBagSortAndLimit(t *testing.T) {
	bag := NewBag(3)
	r := BagReporter{Bag: bag}
	ReportWarning(r, SemaStaticMismatch, source.Pos{File: 0, Line: 4}, "static").Emit()
	ReportError(r, SemaTypeMismatch, source.Pos{File: 0, Line: 4}, "mismatch").Emit()
	ReportError(r, SemaUnknownMember, source.Pos{File: 0, Line: 2}, "member").Emit()
	ReportError(r, SemaArgumentCount, source.Pos{File: 0, Line: 9}, "dropped").Emit()

	if bag.Len() != 3 || bag.Dropped() != 1 {
		t.Fatalf("len=%d dropped=%d", bag.Len(), bag.Dropped())
	}
	bag.Sort()
	var got []Code
	for _, d := range bag.Items() {
		got = append(got, d.Code)
	}
	want := []Code{SemaUnknownMember, SemaTypeMismatch, SemaStaticMismatch}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if !bag.HasErrors() {
		t.Fatalf("bag must report errors")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, SemaTypeMismatch, source.Pos{Line: 1}, "x").
		WithNote(source.Pos{Line: 2}, "declared here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	if notes := bag.Items()[0].Notes; len(notes) != 1 || notes[0].Pos.Line != 2 {
		t.Fatalf("notes = %+v", notes)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(NewSyncReporter(BagReporter{Bag: bag}))
	pos := source.Pos{Line: 3}
	for range 3 {
		r.Report(SemaTypeMismatch, SevError, pos, "Cannot coerce int to string", nil)
	}
	r.Report(SemaTypeMismatch, SevError, source.Pos{Line: 4}, "Cannot coerce int to string", nil)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", bag.Len())
	}
}

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	a := fs.AddVirtual("b.ci", []byte("x\n"))
	b := fs.AddVirtual("a.ci", []byte("y\n"))
	diags := []Diagnostic{
		NewError(SemaTypeMismatch, source.Pos{File: a, Line: 1}, "Cannot coerce\nint to string"),
		NewError(SemaUnknownMember, source.Pos{File: b, Line: 7}, "no Foo").
			WithNote(source.Pos{File: a, Line: 2}, "see here"),
	}
	got := FormatGoldenDiagnostics(diags, fs, true)
	want := "error SEM3003 a.ci:7 no Foo\n" +
		"error SEM3001 b.ci:1 Cannot coerce int to string\n" +
		"note SEM3003 b.ci:2 see here"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
	if FormatGoldenDiagnostics(nil, fs, true) != "" {
		t.Fatalf("empty input must render empty")
	}
}
