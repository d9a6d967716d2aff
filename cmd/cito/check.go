package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"cito/internal/sema"
	"cito/internal/source"
	"cito/internal/system"
	"cito/internal/ui"
)

type checkOptions struct {
	workers int
	ui      string
	format  string
}

var checkOpts checkOptions

func init() {
	f := checkCmd.Flags()
	f.IntVarP(&checkOpts.workers, "workers", "j", 0, "parallel checks (0 = GOMAXPROCS)")
	f.StringVar(&checkOpts.ui, "ui", "auto", "progress view (auto|on|off)")
	f.StringVar(&checkOpts.format, "format", "pretty", "diagnostics format (pretty|json|golden)")
}

var checkCmd = &cobra.Command{
	Use:   "check QUERIES.toml",
	Short: "Run a file of assignment and call checks against the built-in environment",
	Long: `Each [[query]] either asks whether a source type may be stored in a
target type, or checks a method call on a target type:

  [[query]]
  target = "byte"
  source = "(0 .. 300)"

  [[query]]
  name   = "substring"
  target = "string"
  method = "Substring"
  args   = ["int", "int"]`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := readUIMode(checkOpts.ui)
		if err != nil {
			return err
		}
		timer := newTimer(cmd)
		defer printTimings(cmd, timer)

		phase := timer.Begin("load")
		fs := source.NewFileSet()
		queries, err := loadQueries(fs, args[0])
		timer.End(phase, strconv.Itoa(len(queries))+" queries")
		if err != nil {
			return err
		}

		phase = timer.Begin("env")
		env := system.NewWithContext(cmd.Context())
		timer.End(phase, "")

		phase = timer.Begin("check")
		opts := sema.BatchOptions{Workers: checkOpts.workers}
		var results []sema.Result
		if shouldUseTUI(mode) && checkOpts.format == "pretty" {
			results, err = checkWithUI(cmd.Context(), env, queries, opts)
		} else {
			results, err = sema.CheckBatch(cmd.Context(), env, queries, opts)
		}
		timer.End(phase, "")
		if err != nil {
			return err
		}

		bag, err := collectDiagnostics(cmd, results)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if err := writeDiagnostics(out, checkOpts.format, bag, fs); err != nil {
			return err
		}
		failed := 0
		for _, res := range results {
			if !res.OK {
				failed++
			}
		}
		if checkOpts.format == "pretty" {
			fmt.Fprintf(out, "%d queries, %d failed\n", len(results), failed)
		}
		if failed > 0 {
			return errors.New(strconv.Itoa(failed) + " queries failed")
		}
		return nil
	},
}

type queryFile struct {
	Query []queryEntry `toml:"query"`
}

type queryEntry struct {
	Name   string   `toml:"name"`
	Target string   `toml:"target"`
	Source string   `toml:"source"`
	Method string   `toml:"method"`
	Args   []string `toml:"args"`
	Static bool     `toml:"static"`
	Line   int      `toml:"line"`
}

// loadQueries reads a query file into fs. A query without an explicit line
// is placed at its [[query]] header.
func loadQueries(fs *source.FileSet, path string) ([]sema.Query, error) {
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	content := string(fs.Get(id).Content)
	var qf queryFile
	meta, err := toml.Decode(content, &qf)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	headers := queryHeaderLines(content)

	queries := make([]sema.Query, 0, len(qf.Query))
	seen := make(map[string]bool, len(qf.Query))
	for i, e := range qf.Query {
		if e.Target == "" {
			return nil, fmt.Errorf("%s: query %d: missing target", path, i+1)
		}
		if (e.Source == "") == (e.Method == "") {
			return nil, fmt.Errorf("%s: query %d: set exactly one of source and method", path, i+1)
		}
		line := e.Line
		if line == 0 && i < len(headers) {
			line = headers[i]
		}
		name := e.Name
		if name == "" {
			name = defaultQueryName(e)
		}
		if seen[name] {
			name += "#" + strconv.Itoa(i+1)
		}
		seen[name] = true
		queries = append(queries, sema.Query{
			Name:   name,
			Target: e.Target,
			Source: e.Source,
			Method: e.Method,
			Args:   e.Args,
			Static: e.Static,
			Pos:    source.Pos{File: id, Line: line},
		})
	}
	return queries, nil
}

func queryHeaderLines(content string) []int {
	var lines []int
	for i, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "[[query]]" {
			lines = append(lines, i+1)
		}
	}
	return lines
}

func defaultQueryName(e queryEntry) string {
	if e.Method == "" {
		return e.Target + " = " + e.Source
	}
	return e.Target + "." + e.Method + "(" + strings.Join(e.Args, ", ") + ")"
}

type batchOutcome struct {
	results []sema.Result
	err     error
}

func checkWithUI(ctx context.Context, env *system.Env, queries []sema.Query, opts sema.BatchOptions) ([]sema.Result, error) {
	events := make(chan ui.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		opts.Progress = func(_ int, res sema.Result) {
			events <- ui.Event{Name: res.Query.Name, OK: res.OK, Diagnostics: len(res.Diagnostics)}
		}
		results, err := sema.CheckBatch(ctx, env, queries, opts)
		outcomeCh <- batchOutcome{results: results, err: err}
		close(events)
	}()

	names := make([]string, len(queries))
	for i, q := range queries {
		names[i] = q.Name
	}
	program := tea.NewProgram(ui.NewProgressModel("checking", names, events), tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// the view may quit early; keep the workers unblocked
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
