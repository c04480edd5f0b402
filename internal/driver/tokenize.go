package driver

import (
	"context"
	"fmt"
	"strconv"

	"cmm/internal/diag"
	"cmm/internal/preproc"
	"cmm/internal/source"
	"cmm/internal/token"
	"cmm/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File // nil when the file could not be read
	// Tokens are fully preprocessed; the End token is not included.
	Tokens []token.Token
	Bag    *diag.Bag
	// Fatal is set when the run stopped on a fatal diagnostic (it is the last one in Bag).
	Fatal  bool
	Cached bool
}

// Tokenize preprocesses path and collects the resulting tokens. Fatal
// lexical and directive errors end up in Bag; the returned error is
// reserved for cancellation and cache IO.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "tokenize", trace.ParentID(ctx)).WithExtra("file", path)
	defer span.End("")
	ctx = trace.WithParent(ctx, span)

	bag := diag.NewBag(opts.MaxDiagnostics)
	res := &TokenizeResult{FileSet: source.NewFileSet(), Bag: bag}

	done := opts.Timer.Track("load")
	id, err := res.FileSet.Load(path, 0)
	done(path)
	if err != nil {
		addFatal(bag, loadError(path, err))
		res.Fatal = true
		return res, nil
	}
	res.File = res.FileSet.Get(id)

	key := opts.fingerprint(res.File.Hash)
	if opts.Cache != nil {
		fs, entry, ok, err := opts.Cache.get(key)
		if err != nil {
			return nil, fmt.Errorf("token cache: %w", err)
		}
		if ok {
			res.FileSet = fs
			res.File = fs.Get(0)
			res.Tokens = entry.Tokens
			for _, d := range entry.Diags {
				bag.Add(d)
			}
			res.Fatal = bag.HasErrors()
			res.Cached = true
			trace.Point(tracer, trace.ScopeDriver, "cache-hit", path)
			return res, nil
		}
	}

	done = opts.Timer.Track("preprocess")
	pp, err := preproc.New(ctx, res.FileSet, id, opts.preprocConfig(bag))
	if err == nil {
		res.Tokens, err = drain(ctx, pp)
	}
	done(strconv.Itoa(len(res.Tokens)) + " tokens")
	if err != nil {
		d, ok := diag.AsDiagnostic(err)
		if !ok {
			return nil, err
		}
		addFatal(bag, d)
		res.Fatal = true
	}

	if opts.Cache != nil {
		if err := opts.Cache.put(key, res.FileSet, res.Tokens, bag.Items()); err != nil {
			return res, fmt.Errorf("token cache: %w", err)
		}
	}
	return res, nil
}

func drain(ctx context.Context, pp *preproc.Preprocessor) ([]token.Token, error) {
	var tokens []token.Token
	for {
		if err := ctx.Err(); err != nil {
			return tokens, err
		}
		tok, err := pp.Next()
		if err != nil {
			return tokens, err
		}
		if tok.Kind == token.End {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

func loadError(path string, err error) diag.Diagnostic {
	return diag.NewError(diag.IOLoadFileError, nil, fmt.Sprintf("cannot read '%s': %v", path, err))
}

// addFatal records d even when the bag is already full.
func addFatal(bag *diag.Bag, d diag.Diagnostic) {
	if bag.Add(d) {
		return
	}
	overflow := diag.NewBag(1)
	overflow.Add(d)
	bag.Merge(overflow)
}
