package sema

import (
	"context"
	"errors"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"cito/internal/diag"
	"cito/internal/source"
	"cito/internal/system"
	"cito/internal/trace"
	"cito/internal/typeexpr"
	"cito/internal/types"
)

// Query is one check over textual types. With Method empty it asks whether
// a Source value may be stored in a Target; otherwise it checks the call
// Target.Method(Args...), on an instance of Target or, with Static set, on
// the class itself.
type Query struct {
	Name   string
	Target string
	Source string
	Method string
	Args   []string
	Static bool
	Pos    source.Pos
}

// Result is the outcome of one Query.
type Result struct {
	Query Query
	OK    bool
	// Type is the call result type, or the target type of an assignment.
	Type        *types.Type
	Diagnostics []diag.Diagnostic
}

// BatchOptions configure CheckBatch.
type BatchOptions struct {
	// Workers bounds concurrency; zero means GOMAXPROCS.
	Workers int
	// Progress is called after each query from the worker that finished it.
	Progress func(done int, res Result)
}

// CheckBatch runs queries concurrently against env, which is only read.
// Results are in query order. It fails only when ctx is canceled.
func CheckBatch(ctx context.Context, env *system.Env, queries []Query, opts BatchOptions) ([]Result, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePhase, "sema.batch", trace.CurrentSpan(ctx).SpanID).
		WithExtra("queries", strconv.Itoa(len(queries)))
	defer span.End("")

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(queries))
	done := make(chan Result, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range queries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = checkQuery(env, queries[i])
			trace.Point(tracer, trace.ScopeClass, "query", queries[i].Name, span.ID())
			done <- results[i]
			return nil
		})
	}

	var progress errgroup.Group
	progress.Go(func() error {
		n := 0
		for res := range done {
			n++
			if opts.Progress != nil {
				opts.Progress(n, res)
			}
		}
		return nil
	})

	err := g.Wait()
	close(done)
	_ = progress.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

func checkQuery(env *system.Env, q Query) Result {
	bag := diag.NewBag(0)
	reporter := diag.BagReporter{Bag: bag}
	res := Result{Query: q}
	p := typeexpr.New(env)

	parse := func(text string) *types.Type {
		ty, err := p.Parse(text)
		if err == nil {
			return ty
		}
		var perr *typeexpr.Error
		if errors.As(err, &perr) {
			diag.ReportError(reporter, perr.Code, q.Pos, "in "+strconv.Quote(text)+" at "+strconv.Itoa(perr.Col)+": "+perr.Msg).Emit()
		} else {
			diag.ReportError(reporter, diag.SynUnexpectedToken, q.Pos, err.Error()).Emit()
		}
		return nil
	}

	c := NewChecker(Options{Env: env, Reporter: reporter})
	target := parse(q.Target)
	if q.Method == "" {
		src := parse(q.Source)
		if target != nil && src != nil {
			res.OK = c.Coerce(q.Pos, src, target)
			res.Type = target
		}
	} else {
		args := make([]*types.Type, len(q.Args))
		valid := target != nil
		for i, a := range q.Args {
			args[i] = parse(a)
			valid = valid && args[i] != nil
		}
		switch {
		case !valid:
		case q.Static && !target.IsClass():
			diag.ReportError(reporter, diag.SemaStaticMismatch, q.Pos, target.String()+" is not a class").Emit()
		case q.Static:
			res.Type, _, res.OK = c.CallStatic(q.Pos, target.Class(), q.Method, args)
		default:
			res.Type, _, res.OK = c.CallMethod(q.Pos, target, q.Method, args)
		}
	}
	res.Diagnostics = bag.Items()
	return res
}
