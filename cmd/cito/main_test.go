package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cito/internal/diag"
	"cito/internal/source"
	"cito/internal/system"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, configFileName, "[output]\ncolor = \"off\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok, err := findConfig(nested)
	if err != nil || !ok {
		t.Fatalf("findConfig: %v, %v", ok, err)
	}
	if got != want {
		t.Fatalf("found %s, want %s", got, want)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, configFileName, `
[output]
color = "on"
max_diagnostics = 5

[trace]
level = "detail"
mode = "ring"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Output.Color != "on" || cfg.Output.MaxDiagnostics == nil || *cfg.Output.MaxDiagnostics != 5 {
		t.Fatalf("output section %+v", cfg.Output)
	}
	if cfg.Trace.Level != "detail" || cfg.Trace.Mode != "ring" {
		t.Fatalf("trace section %+v", cfg.Trace)
	}

	bad := writeFile(t, dir, "bad.toml", "[output]\ncolour = \"on\"\n")
	if _, err := loadConfig(bad); err == nil || !strings.Contains(err.Error(), "unknown key") {
		t.Fatalf("unknown key accepted: %v", err)
	}
	negative := writeFile(t, dir, "neg.toml", "[output]\nmax_diagnostics = -1\n")
	if _, err := loadConfig(negative); err == nil {
		t.Fatalf("negative limit accepted")
	}
}

func TestColorEnabled(t *testing.T) {
	tests := []struct {
		mode string
		tty  bool
		want bool
	}{
		{"auto", true, true},
		{"auto", false, false},
		{"on", false, true},
		{"off", true, false},
	}
	for _, tt := range tests {
		got, err := colorEnabled(tt.mode, tt.tty)
		if err != nil || got != tt.want {
			t.Errorf("colorEnabled(%q, %v) = %v, %v", tt.mode, tt.tty, got, err)
		}
	}
	if _, err := colorEnabled("sometimes", true); err == nil {
		t.Fatalf("invalid mode accepted")
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Fatalf("invalid ui mode accepted")
	}
}

func TestLoadQueries(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "queries.toml", `# checks
[[query]]
target = "byte"
source = "(0 .. 300)"

[[query]]
name = "substring"
target = "string"
method = "Substring"
args = ["int"]
line = 42

[[query]]
target = "byte"
source = "(0 .. 300)"
`)
	fs := source.NewFileSet()
	queries, err := loadQueries(fs, path)
	if err != nil {
		t.Fatalf("loadQueries: %v", err)
	}
	if len(queries) != 3 {
		t.Fatalf("got %d queries", len(queries))
	}
	if queries[0].Name != "byte = (0 .. 300)" || queries[0].Pos.Line != 2 {
		t.Fatalf("first query %+v", queries[0])
	}
	if queries[1].Name != "substring" || queries[1].Pos.Line != 42 || len(queries[1].Args) != 1 {
		t.Fatalf("second query %+v", queries[1])
	}
	if queries[2].Name != "byte = (0 .. 300)#3" || queries[2].Pos.Line != 13 {
		t.Fatalf("duplicate name not disambiguated: %+v", queries[2])
	}
}

func TestLoadQueriesRejectsAmbiguousEntry(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "queries.toml", "[[query]]\ntarget = \"int\"\nsource = \"int\"\nmethod = \"X\"\n")
	if _, err := loadQueries(source.NewFileSet(), path); err == nil {
		t.Fatalf("query with both source and method accepted")
	}
}

func TestRenderManifestText(t *testing.T) {
	m := system.Default().Manifest()
	var buf bytes.Buffer
	if err := renderManifestText(&buf, m, "String", false); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"String", "Substring(", "StringSubstring", "uint Length"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if err := renderManifestText(&buf, m, "Nope", false); err == nil {
		t.Fatalf("unknown class accepted")
	}
}

func TestDiffManifestAgainstItself(t *testing.T) {
	m := system.Default().Manifest()
	path := filepath.Join(t.TempDir(), "env.msgpack")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Encode(f); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := diffManifest(&out, m, path); err != nil {
		t.Fatalf("diff: %v\n%s", err, out.String())
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected differences:\n%s", out.String())
	}
}

func TestWriteDiagnosticsGolden(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("<args>", []byte("byte = (300 .. 400)\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaTypeMismatch,
		Message:  "Cannot coerce (300 .. 400) to (0 .. 255)",
		Primary:  source.Pos{File: file, Line: 1},
		Notes:    []diag.Note{{Pos: source.Pos{File: file, Line: 1}, Msg: "target declared here"}},
	})

	var buf bytes.Buffer
	if err := writeDiagnostics(&buf, "golden", bag, fs); err != nil {
		t.Fatalf("writeDiagnostics: %v", err)
	}
	want := "error SEM3001 <args>:1 Cannot coerce (300 .. 400) to (0 .. 255)\n" +
		"note SEM3001 <args>:1 target declared here\n"
	if buf.String() != want {
		t.Fatalf("golden output:\n%s\nwant:\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := writeDiagnostics(&buf, "golden", diag.NewBag(0), fs); err != nil || buf.Len() != 0 {
		t.Fatalf("empty bag wrote %q, err %v", buf.String(), err)
	}
	if err := writeDiagnostics(&buf, "xml", bag, fs); err == nil {
		t.Fatalf("unknown format must fail")
	}
}
