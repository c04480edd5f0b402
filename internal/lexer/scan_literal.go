package lexer

import (
	"cmm/internal/diag"
	"cmm/internal/token"
)

// scanQuoted continues a literal whose prefix and opening quote are in
// chars. It stops at the matching unescaped quote; a newline or end of
// input first is an unterminated literal. The finished text must match
// the literal grammar as a whole.
func (lx *Lexer) scanQuoted(chars []Char) (token.Token, bool, error) {
	quote := chars[len(chars)-1].R
	kind, what := token.StringLiteral, "string"
	if quote == '\'' {
		kind, what = token.CharConst, "character"
	}

	closed := false
	for !closed {
		c, ok := lx.chars.Next()
		if !ok || c.R == '\n' {
			if ok {
				lx.chars.Back()
			}
			return lx.literalError(kind, chars, diag.LexUnterminatedLit, "unterminated "+what+" literal")
		}
		chars = append(chars, c)
		switch c.R {
		case '\\':
			esc, ok := lx.chars.Next()
			if !ok || esc.R == '\n' {
				if ok {
					lx.chars.Back()
				}
				return lx.literalError(kind, chars, diag.LexUnterminatedLit, "unterminated "+what+" literal")
			}
			chars = append(chars, esc)
		case quote:
			closed = true
		}
	}

	if !validLiteral(charsText(chars)) {
		return lx.literalError(kind, chars, diag.LexMalformedLit, "malformed "+what+" literal "+charsText(chars))
	}
	return lx.MakeToken(kind, chars), true, nil
}

// literalError is fatal unless the lexer is lenient; then the text scanned
// so far becomes an Unknown token.
func (lx *Lexer) literalError(kind token.Kind, chars []Char, code diag.Code, msg string) (token.Token, bool, error) {
	if lx.lenient {
		return lx.MakeToken(token.Unknown, chars), true, nil
	}
	tok := lx.MakeToken(kind, chars)
	return token.Token{}, false, diag.Errorf(code, tok.Span, "%s", msg)
}
