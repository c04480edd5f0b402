package driver

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"cmm/internal/trace"
)

// CheckResult holds one ParseResult per input path, in input order.
type CheckResult struct {
	Units []*ParseResult
}

// Failed returns the number of units with error diagnostics.
func (r *CheckResult) Failed() int {
	n := 0
	for _, u := range r.Units {
		if u != nil && u.Failed() {
			n++
		}
	}
	return n
}

// Check parses independent translation units concurrently. Units share
// nothing but the tracer and the progress sink; a failing unit does not
// stop the others. The returned error is only non-nil on cancellation.
func Check(ctx context.Context, paths []string, opts Options) (*CheckResult, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "check", trace.ParentID(ctx)).WithExtra("units", strconv.Itoa(len(paths)))
	defer span.End("")

	res := &CheckResult{Units: make([]*ParseResult, len(paths))}
	if len(paths) == 0 {
		return res, nil
	}
	for _, p := range paths {
		emit(opts.Progress, Event{File: p, Stage: StageLoad, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	started := time.Now()
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			unitSpan := trace.Begin(tracer, trace.ScopeFile, "unit", span.ID()).WithExtra("file", path)
			t0 := time.Now()
			// индекс i уникален для горутины, мьютекс не нужен
			u, err := parseUnit(trace.WithParent(gctx, unitSpan), path, opts, opts.Progress)
			if err != nil {
				unitSpan.End("canceled")
				return fmt.Errorf("%s: %w", path, err)
			}
			res.Units[i] = u

			status := StatusDone
			if u.Failed() {
				status = StatusError
			}
			unitSpan.End(string(status))
			emit(opts.Progress, Event{File: path, Stage: StageParse, Status: status, Elapsed: time.Since(t0)})
			return nil
		})
	}

	err := g.Wait()
	emit(opts.Progress, Event{Stage: StageParse, Status: StatusDone, Err: err, Elapsed: time.Since(started)})
	if err != nil {
		return res, err
	}
	return res, nil
}
