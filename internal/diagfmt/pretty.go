package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"cito/internal/diag"
	"cito/internal/source"
)

// Pretty renders diagnostics for humans. It walks bag.Items(), so callers
// sort the bag first. Each diagnostic prints as
//
//	<path>:<line>: <severity> <CODE>: <message>
//
// followed by the source line when ShowSource is set, then its notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := printer{w: w, fs: fs, opts: opts}
	p.palette(opts.Color)
	for _, d := range bag.Items() {
		p.diagnostic(d)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "%s\n", p.dim.Sprintf("... %d more diagnostics not shown", n))
	}
}

type printer struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts

	err, warn, info, note, dim, bold *color.Color
}

func (p *printer) palette(enabled bool) {
	p.err = color.New(color.FgRed, color.Bold)
	p.warn = color.New(color.FgYellow, color.Bold)
	p.info = color.New(color.FgBlue, color.Bold)
	p.note = color.New(color.FgCyan)
	p.dim = color.New(color.Faint)
	p.bold = color.New(color.Bold)
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.dim, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

func (p *printer) severity(sev diag.Severity) string {
	label := strings.ToLower(sev.String())
	switch sev {
	case diag.SevError:
		return p.err.Sprint(label)
	case diag.SevWarning:
		return p.warn.Sprint(label)
	default:
		return p.info.Sprint(label)
	}
}

func (p *printer) diagnostic(d diag.Diagnostic) {
	loc := formatPos(p.fs, d.Primary, p.opts.PathMode, p.opts.BaseDir)
	fmt.Fprintf(p.w, "%s: %s %s: %s\n", p.bold.Sprint(loc), p.severity(d.Severity), d.Code.ID(), d.Message)
	p.sourceLine(d.Primary)
	if !p.opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		loc := formatPos(p.fs, n.Pos, p.opts.PathMode, p.opts.BaseDir)
		fmt.Fprintf(p.w, "  %s %s: %s\n", p.note.Sprint("note:"), loc, n.Msg)
		p.sourceLine(n.Pos)
	}
}

func (p *printer) sourceLine(pos source.Pos) {
	if !p.opts.ShowSource || !pos.IsValid() {
		return
	}
	f := p.fs.Get(pos.File)
	if f == nil {
		return
	}
	text := strings.TrimRight(f.Line(pos.Line), " \t")
	if text == "" {
		return
	}
	gutter := fmt.Sprintf("%5d | ", pos.Line)
	fmt.Fprintf(p.w, "%s%s\n", p.dim.Sprint(gutter), text)
}
