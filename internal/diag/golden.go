package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"cito/internal/source"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     int
	Message  string
}

// FormatGoldenDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation suitable for golden files and the CLI short output.
// Entries are sorted by path, line, severity, code and message.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}

	rendered := make([]goldenDiagnostic, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		rendered = append(rendered, goldenEntry(fs, severityLabel(d.Severity), d.Code, d.Primary, d.Message))
		if includeNotes {
			for _, note := range d.Notes {
				rendered = append(rendered, goldenEntry(fs, "note", d.Code, note.Pos, note.Msg))
			}
		}
	}

	slices.SortStableFunc(rendered, func(a, b goldenDiagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Path, b.Path),
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Severity, b.Severity),
			cmp.Compare(a.Code, b.Code),
			cmp.Compare(a.Message, b.Message),
		)
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func goldenEntry(fs *source.FileSet, sev string, code Code, pos source.Pos, msg string) goldenDiagnostic {
	path := "-"
	if fs != nil {
		if f := fs.Get(pos.File); f != nil {
			path = f.Path
		}
	}
	return goldenDiagnostic{
		Severity: sev,
		Code:     code.ID(),
		Path:     path,
		Line:     pos.Line,
		Message:  sanitizeMessage(msg),
	}
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
