package driver

import (
	"context"

	"cmm/internal/ast"
	"cmm/internal/diag"
	"cmm/internal/parser"
	"cmm/internal/preproc"
	"cmm/internal/source"
	"cmm/internal/trace"
)

type ParseResult struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File // nil when the file could not be read
	Builder *ast.Builder
	// Unit is nil when parsing stopped on a fatal diagnostic.
	Unit *ast.Unit
	Bag  *diag.Bag
	// Fatal marks a lexical, directive or IO failure (the last diagnostic in Bag).
	Fatal bool
}

// Failed reports whether the unit has error diagnostics.
func (r *ParseResult) Failed() bool {
	return r.Fatal || r.Bag.HasErrors()
}

// Parse preprocesses and parses one translation unit. Syntax errors and
// fatal source errors are both reported through Bag; the returned error
// is only non-nil on cancellation.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "parse", trace.ParentID(ctx)).WithExtra("file", path)
	defer span.End("")
	return parseUnit(trace.WithParent(ctx, span), path, opts, nil)
}

// parseUnit owns a fresh FileSet, macro table and preprocessor, so
// several units may run at once.
func parseUnit(ctx context.Context, path string, opts Options, sink ProgressSink) (*ParseResult, error) {
	bag := diag.NewBag(opts.MaxDiagnostics)
	res := &ParseResult{Path: path, FileSet: source.NewFileSet(), Bag: bag}

	emit(sink, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	done := opts.Timer.Track("load")
	id, err := res.FileSet.Load(path, 0)
	done(path)
	if err != nil {
		addFatal(bag, loadError(path, err))
		res.Fatal = true
		return res, nil
	}
	res.File = res.FileSet.Get(id)

	emit(sink, Event{File: path, Stage: StageParse, Status: StatusWorking})
	done = opts.Timer.Track("parse")
	defer func() { done(path) }()

	pp, err := preproc.New(ctx, res.FileSet, id, opts.preprocConfig(bag))
	if err != nil {
		return res, fatal(res, err)
	}
	res.Builder = ast.NewBuilder(ast.Hints{})
	result, err := parser.Parse(ctx, res.FileSet, pp, res.Builder, parser.Options{
		Reporter: diag.BagReporter{Bag: bag},
		Typedefs: opts.Typedefs,
	})
	if err != nil {
		return res, fatal(res, err)
	}
	res.Unit = result.Unit
	res.Unit.Path = res.File.Path
	return res, nil
}

// fatal records a diagnostic error in res and passes anything else through.
func fatal(res *ParseResult, err error) error {
	d, ok := diag.AsDiagnostic(err)
	if !ok {
		return err
	}
	addFatal(res.Bag, d)
	res.Fatal = true
	return nil
}
