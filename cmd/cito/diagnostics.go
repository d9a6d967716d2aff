package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cito/internal/diag"
	"cito/internal/diagfmt"
	"cito/internal/sema"
	"cito/internal/source"
)

// collectDiagnostics gathers the diagnostics of all results into one sorted
// bag capped by --max-diagnostics.
func collectDiagnostics(cmd *cobra.Command, results []sema.Result) (*diag.Bag, error) {
	limit, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(limit)
	for _, res := range results {
		for _, d := range res.Diagnostics {
			bag.Add(d)
		}
	}
	bag.Sort()
	return bag, nil
}

func writeDiagnostics(w io.Writer, format string, bag *diag.Bag, fs *source.FileSet) error {
	switch format {
	case "pretty":
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:      !color.NoColor,
			PathMode:   diagfmt.PathModeRelative,
			ShowNotes:  true,
			ShowSource: true,
		})
		return nil
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{PathMode: diagfmt.PathModeRelative, IncludeNotes: true})
	case "golden":
		// one line per entry, stable across runs
		if text := diag.FormatGoldenDiagnostics(bag.Items(), fs, true); text != "" {
			_, err := io.WriteString(w, text+"\n")
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown diagnostics format %q", format)
	}
}
