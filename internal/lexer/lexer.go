package lexer

import (
	"cmm/internal/source"
	"cmm/internal/token"
)

// Producer creates the next token from the character stream; ok is false
// when it consumed input without producing a token (whitespace, comments).
type Producer func() (tok token.Token, ok bool, err error)

// Lexer turns characters into tokens and caches every token it hands out,
// so Back, Save and Restore replay tokens instead of re-lexing.
type Lexer struct {
	chars   *CharStream
	opts    Options
	tokens  []token.Token // все выданные токены
	pos     int           // индекс следующего токена в tokens
	produce Producer
	space   bool // перед следующим токеном был пробел
	lenient bool // ошибки литералов не фатальны (пропускаемые группы)
}

func New(rd Reader, opts Options) *Lexer {
	lx := &Lexer{
		chars: NewCharStream(rd),
		opts:  opts,
	}
	lx.produce = lx.Scan
	return lx
}

// NewFile is a shortcut for New(NewFileReader(f), opts).
func NewFile(f *source.File, opts Options) *Lexer {
	return New(NewFileReader(f), opts)
}

// Next returns the next token, from the cache when available.
// After END it keeps returning END.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.pos < len(lx.tokens) {
		tok := lx.tokens[lx.pos]
		lx.pos++
		return tok, nil
	}
	for {
		tok, ok, err := lx.produce()
		if err != nil {
			return token.Token{}, err
		}
		if !ok {
			continue
		}
		lx.tokens = append(lx.tokens, tok)
		lx.pos++
		return tok, nil
	}
}

// Back un-consumes the last token.
func (lx *Lexer) Back() {
	if lx.pos > 0 {
		lx.pos--
	}
}

// Save returns a checkpoint for Restore.
func (lx *Lexer) Save() int {
	return lx.pos
}

func (lx *Lexer) Restore(mark int) {
	lx.pos = min(max(mark, 0), len(lx.tokens))
}

// Current returns the token most recently returned by Next.
func (lx *Lexer) Current() token.Token {
	if lx.pos == 0 {
		return token.Token{Kind: token.End, Span: source.SpanOf(lx.chars.EndRange())}
	}
	return lx.tokens[lx.pos-1]
}

// Tokens exposes the cache. Callers must not modify it except through Splice.
func (lx *Lexer) Tokens() []token.Token {
	return lx.tokens
}

// Splice replaces tokens[from:to] with repl and moves the cursor to from.
func (lx *Lexer) Splice(from, to int, repl []token.Token) {
	tail := lx.tokens[to:]
	out := make([]token.Token, 0, from+len(repl)+len(tail))
	out = append(out, lx.tokens[:from]...)
	out = append(out, repl...)
	lx.tokens = append(out, tail...)
	lx.pos = from
}

// Set overwrites the cached token at index i.
func (lx *Lexer) Set(i int, tok token.Token) {
	lx.tokens[i] = tok
}

// SetProducer replaces the token factory; the preprocessor installs its own.
func (lx *Lexer) SetProducer(p Producer) {
	lx.produce = p
}

func (lx *Lexer) Chars() *CharStream {
	return lx.chars
}

// MarkSpace records that the next token is preceded by whitespace.
func (lx *Lexer) MarkSpace() {
	lx.space = true
}

// SetLenient toggles tolerant literal scanning.
func (lx *Lexer) SetLenient(on bool) {
	lx.lenient = on
}

// Scan classifies the next characters into one raw token.
func (lx *Lexer) Scan() (token.Token, bool, error) {
	c, ok := lx.chars.Next()
	if !ok {
		return lx.MakeToken(token.End, nil), true, nil
	}

	switch {
	case isSpace(c.R):
		lx.space = true
		return token.Token{}, false, nil
	case isIdentStart(c.R):
		return lx.scanIdent(c)
	case isDigit(c.R):
		return lx.scanNumber(c)
	case c.R == '.':
		if next, ok := lx.chars.Peek(); ok && isDigit(next.R) {
			return lx.scanNumber(c)
		}
		if tok, ok := lx.scanEllipsis(c); ok {
			return tok, true, nil
		}
		return lx.scanPunct(c), true, nil
	case c.R == '"' || c.R == '\'':
		return lx.scanQuoted([]Char{c})
	default:
		return lx.scanPunct(c), true, nil
	}
}

// MakeToken builds a token from the characters that spell it.
// Without characters the token is zero-width at end of input.
func (lx *Lexer) MakeToken(kind token.Kind, chars []Char) token.Token {
	tok := token.Token{Kind: kind, Space: lx.space}
	lx.space = false
	if len(chars) == 0 {
		tok.Span = source.SpanOf(lx.chars.EndRange())
		return tok
	}
	text := make([]rune, 0, len(chars))
	var span source.Span
	for _, c := range chars {
		text = append(text, c.R)
		// быстрый путь: символ продолжает последний диапазон
		if n := len(span); n > 0 && span[n-1].File == c.Loc.File && span[n-1].End == c.Loc.Start {
			span[n-1].End = c.Loc.End
			continue
		}
		span = span.Add(c.Loc)
	}
	tok.Text = string(text)
	tok.Span = span
	if kind == token.CharConst || kind == token.StringLiteral {
		tok.Prefix, tok.Content = token.SplitLiteral(tok.Text)
	}
	return tok
}
