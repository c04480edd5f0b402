package preproc

import (
	"context"
	"fmt"
	"strings"

	"cmm/internal/diag"
	"cmm/internal/lexer"
	"cmm/internal/macro"
	"cmm/internal/source"
	"cmm/internal/token"
	"cmm/internal/trace"
)

// Preprocessor wraps the lexer's token cache: it produces tokens through
// its own producer (comments, newlines inside directives, header names)
// and rewrites the cache as it consumes them (directives removed, macros
// replaced, adjacent strings merged). Backtracking via Save/Restore
// replays finished tokens without processing them again.
type Preprocessor struct {
	*lexer.Lexer

	cfg    Config
	fs     *source.FileSet
	file   *source.File
	macros *macro.Table
	tracer trace.Tracer

	modes []Mode
	conds []cond

	child      *Preprocessor // активный #include
	childSpan  *trace.Span
	parentSpan uint64 // родитель спанов #include этого файла
	depth      int

	filename  string // для __FILE__, меняется через #line
	lineShift int

	afterHash bool // предыдущий выданный токен — '#' директивы
	done      int  // токены ниже этого индекса уже обработаны
	nesting   int
	err       error
}

// cond is one open #if-family group.
type cond struct {
	taken  bool // одна из ветвей уже выбрана
	inElse bool
	where  source.Span
}

// New preprocesses file. Command-line definitions from cfg are applied
// before the first token.
func New(ctx context.Context, fs *source.FileSet, file source.FileID, cfg Config) (*Preprocessor, error) {
	if cfg.Macros == nil {
		cfg.Macros = macro.NewTable()
	}
	pp := newPreprocessor(fs, fs.Get(file), cfg, trace.FromContext(ctx), 0)
	pp.parentSpan = trace.ParentID(ctx)
	if err := pp.predefine(); err != nil {
		return nil, err
	}
	return pp, nil
}

func newPreprocessor(fs *source.FileSet, f *source.File, cfg Config, tracer trace.Tracer, depth int) *Preprocessor {
	pp := &Preprocessor{
		Lexer:    lexer.NewFile(f, lexer.Options{Reporter: cfg.Reporter}),
		cfg:      cfg,
		fs:       fs,
		file:     f,
		macros:   cfg.Macros,
		tracer:   tracer,
		depth:    depth,
		filename: f.Path,
	}
	if !cfg.KeepComments {
		pp.push(IgnoreComment)
	}
	pp.SetProducer(pp.produce)
	return pp
}

// Macros returns the table shared by this preprocessor and its includes.
func (pp *Preprocessor) Macros() *macro.Table {
	return pp.macros
}

func (pp *Preprocessor) File() *source.File {
	return pp.file
}

// Next returns the next fully preprocessed token. Errors are fatal and sticky.
func (pp *Preprocessor) Next() (token.Token, error) {
	if pp.err != nil {
		return token.Token{}, pp.err
	}
	if pp.Save() < pp.done {
		return pp.Lexer.Next()
	}
	pp.nesting++
	tok, err := pp.next()
	pp.nesting--
	if err != nil {
		pp.err = err
		return token.Token{}, err
	}
	if pp.nesting == 0 {
		pp.done = max(pp.done, pp.Save())
	}
	return tok, nil
}

func (pp *Preprocessor) next() (token.Token, error) {
	for {
		tok, err := pp.Lexer.Next()
		if err != nil {
			return tok, err
		}
		idx := pp.Save() - 1

		switch {
		case tok.Kind == token.Hash && tok.PPHash && !pp.in(SkippingGroup):
			if err := pp.handleDirective(idx, tok); err != nil {
				return token.Token{}, err
			}
			continue

		case tok.Kind == token.End && pp.plain() && len(pp.conds) > 0:
			return tok, diag.Errorf(diag.PPUnterminatedCond, pp.conds[len(pp.conds)-1].where, "unterminated conditional directive")

		case pp.expanding() && (tok.Kind == token.Ident || tok.IsKeyword()):
			var rescan bool
			tok, rescan, err = pp.expand(idx, tok)
			if err != nil {
				return tok, err
			}
			if rescan {
				continue
			}
		}

		if tok.Kind == token.StringLiteral && pp.plain() {
			return pp.mergeStrings(idx, tok)
		}
		return tok, nil
	}
}

// mergeStrings joins the string literals following the one at idx into it.
func (pp *Preprocessor) mergeStrings(idx int, tok token.Token) (token.Token, error) {
	for {
		mark := pp.Save()
		next, err := pp.Next()
		if err != nil {
			return tok, err
		}
		if next.Kind != token.StringLiteral {
			pp.Restore(mark)
			return tok, nil
		}
		tok.Text += " " + next.Text
		tok.Content += next.Content
		tok.Span = tok.Span.Merge(next.Span)
		tok.Prefix = token.WiderPrefix(tok.Prefix, next.Prefix)
		pp.Set(idx, tok)
		j := pp.Save() - 1
		pp.Splice(j, j+1, nil)
	}
}

// produce is installed as the lexer's producer.
func (pp *Preprocessor) produce() (token.Token, bool, error) {
	if pp.child != nil {
		tok, err := pp.child.Next()
		if err != nil {
			return token.Token{}, false, err
		}
		if tok.Kind != token.End {
			return tok, true, nil
		}
		pp.childSpan.End("")
		pp.child, pp.childSpan = nil, nil
		return token.Token{}, false, nil
	}

	cs := pp.Chars()
	mark := cs.Pos()
	if c, ok := cs.Next(); ok {
		switch {
		case c.R == '/' && cs.PeekIs('/'):
			return pp.lineComment(c)
		case c.R == '/' && cs.PeekIs('*'):
			return pp.blockComment(c)
		case c.R == '\n' && pp.in(HandlingDirective):
			pp.afterHash = false
			return pp.MakeToken(token.Newline, []lexer.Char{c}), true, nil
		case c.R == '<' && pp.in(HandlingInclude):
			return pp.headerName(c)
		}
		cs.SetPos(mark)
	}

	tok, ok, err := pp.Scan()
	if err != nil || !ok {
		return tok, ok, err
	}
	switch {
	case tok.Kind == token.Hash:
		tok.PPHash = cs.AtLineStart(mark)
	case pp.afterHash:
		if k, ok := token.LookupPPKeyword(tok.Name()); ok {
			tok.Kind = k
		}
	case pp.in(HandlingDirective) && tok.Name() == "__VA_ARGS__":
		tok.Kind = token.PPVaArgs
	case pp.in(HandlingDirective) && tok.Name() == "__VA_OPT__":
		tok.Kind = token.PPVaOpt
	}
	pp.afterHash = tok.Kind == token.Hash && tok.PPHash
	return tok, true, nil
}

func (pp *Preprocessor) lineComment(first lexer.Char) (token.Token, bool, error) {
	cs := pp.Chars()
	chars := []lexer.Char{first}
	for {
		c, ok := cs.Next()
		if !ok {
			break
		}
		if c.R == '\n' {
			cs.Back()
			break
		}
		chars = append(chars, c)
	}
	return pp.comment(chars)
}

// blockComment reads to "*/"; an unterminated comment runs to end of input.
func (pp *Preprocessor) blockComment(first lexer.Char) (token.Token, bool, error) {
	cs := pp.Chars()
	star, _ := cs.Next()
	chars := []lexer.Char{first, star}
	for {
		c, ok := cs.Next()
		if !ok {
			break
		}
		chars = append(chars, c)
		if c.R == '*' && cs.PeekIs('/') {
			slash, _ := cs.Next()
			chars = append(chars, slash)
			break
		}
	}
	return pp.comment(chars)
}

func (pp *Preprocessor) comment(chars []lexer.Char) (token.Token, bool, error) {
	if pp.ignoringComments() {
		pp.MarkSpace()
		return token.Token{}, false, nil
	}
	return pp.MakeToken(token.Comment, chars), true, nil
}

func (pp *Preprocessor) headerName(first lexer.Char) (token.Token, bool, error) {
	cs := pp.Chars()
	chars := []lexer.Char{first}
	for {
		c, ok := cs.Next()
		if !ok || c.R == '\n' {
			if ok {
				cs.Back()
			}
			tok := pp.MakeToken(token.HeaderName, chars)
			return token.Token{}, false, diag.Errorf(diag.LexUnterminatedHeader, tok.Span, "missing terminating '>' character")
		}
		chars = append(chars, c)
		if c.R == '>' {
			break
		}
	}
	tok := pp.MakeToken(token.HeaderName, chars)
	tok.Content = tok.Text[1 : len(tok.Text)-1]
	return tok, true, nil
}

// predefine runs the -D/-U options through a throwaway preprocessor that
// shares the macro table.
func (pp *Preprocessor) predefine() error {
	var b strings.Builder
	for _, d := range pp.cfg.Defines {
		name, value, ok := strings.Cut(d, "=")
		if !ok {
			value = "1"
		}
		fmt.Fprintf(&b, "#define %s %s\n", name, value)
	}
	for _, u := range pp.cfg.Undefines {
		fmt.Fprintf(&b, "#undef %s\n", u)
	}
	if b.Len() == 0 {
		return nil
	}
	id := pp.fs.AddVirtual("<command line>", []byte(b.String()))
	cl := newPreprocessor(pp.fs, pp.fs.Get(id), pp.cfg, pp.tracer, pp.depth)
	for {
		tok, err := cl.Next()
		if err != nil {
			return err
		}
		if tok.Kind == token.End {
			return nil
		}
	}
}
