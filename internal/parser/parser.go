package parser

import (
	"context"
	"fmt"

	"cmm/internal/ast"
	"cmm/internal/calltree"
	"cmm/internal/diag"
	"cmm/internal/source"
	"cmm/internal/token"
	"cmm/internal/trace"
)

// TokenSource is the token stream contract. *lexer.Lexer and
// *preproc.Preprocessor both satisfy it.
type TokenSource interface {
	Next() (token.Token, error)
	Back()
	Save() int
	Restore(int)
	Current() token.Token
}

type Options struct {
	// Reporter receives the parse diagnostics as well; may be nil.
	Reporter diag.Reporter
	// Typedefs are names known to be types before the first token.
	Typedefs []string
}

type Result struct {
	Unit *ast.Unit
	// Diags is empty on success.
	Diags []diag.Diagnostic
	// Tree holds the attempts of the declaration that failed.
	Tree *calltree.Tree
}

// Parser — состояние разбора одной единицы трансляции
type Parser struct {
	ts       TokenSource
	b        *ast.Builder
	tree     *calltree.Tree
	typedefs typedefs
	opts     Options

	err    error       // первая фатальная ошибка источника
	last   token.Token // последний съеденный токен
	farPos int
	farTok token.Token
	ctx    context.Context
	tracer trace.Tracer
}

// Parse reads a translation unit from ts into b. The error is the token
// source's fatal error, if any; syntax errors come back in Result.Diags.
func Parse(ctx context.Context, fs *source.FileSet, ts TokenSource, b *ast.Builder, opts Options) (Result, error) {
	p := &Parser{
		ts:     ts,
		b:      b,
		tree:   calltree.New(fs),
		opts:   opts,
		farPos: -1,
		ctx:    ctx,
		tracer: trace.FromContext(ctx),
	}
	for _, name := range opts.Typedefs {
		p.typedefs.add(name)
	}
	span := trace.Begin(p.tracer, trace.ScopePass, "parse", trace.ParentID(ctx))
	defer span.End("")

	unit, diags := p.translationUnit()
	if p.err != nil {
		return Result{Tree: p.tree}, p.err
	}
	for _, d := range diags {
		if p.opts.Reporter != nil {
			p.opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
		}
	}
	return Result{Unit: unit, Diags: diags, Tree: p.tree}, nil
}

func (p *Parser) translationUnit() (*ast.Unit, []diag.Diagnostic) {
	unit := &ast.Unit{Span: p.peek().Span}
	for {
		if err := p.ctx.Err(); err != nil {
			p.err = err
			return unit, nil
		}
		if p.peek().Kind == token.End {
			break
		}
		p.tree.Reset()
		d, ok := p.externalDeclaration()
		if !ok {
			if p.err != nil {
				return unit, nil
			}
			return unit, p.failure()
		}
		unit.Decls = append(unit.Decls, d)
		trace.Point(p.tracer, trace.ScopeNode, "external_declaration", p.b.Decls.Get(d).Kind.String())
	}
	if !p.last.Span.Empty() {
		unit.Span = unit.Span.Merge(p.last.Span)
	}
	return unit, nil
}

// failure turns the call tree of the failed declaration into diagnostics,
// falling back to the furthest token reached.
func (p *Parser) failure() []diag.Diagnostic {
	if diags := p.tree.Diagnose(); len(diags) > 0 {
		return diags
	}
	msg := "unexpected end of input"
	if p.farTok.Kind != token.End {
		msg = fmt.Sprintf("unexpected '%s'", p.farTok.Text)
	}
	return []diag.Diagnostic{diag.NewError(diag.SynUnexpectedToken, p.farTok.Span, msg)}
}
