package lexer

import (
	"cmm/internal/diag"
	"cmm/internal/token"

	"golang.org/x/text/unicode/norm"
)

// scanIdent reads a maximal identifier. An encoding prefix directly
// followed by a quote turns into a string or character literal instead.
func (lx *Lexer) scanIdent(first Char) (token.Token, bool, error) {
	chars := []Char{first}
	for {
		c, ok := lx.chars.Next()
		if !ok {
			break
		}
		if !isIdentContinue(c.R) {
			lx.chars.Back()
			break
		}
		chars = append(chars, c)
	}

	text := charsText(chars)
	if isEncodingPrefix(text) {
		if q, ok := lx.chars.Peek(); ok && (q.R == '"' || q.R == '\'') {
			lx.chars.Next()
			return lx.scanQuoted(append(chars, q))
		}
	}

	kind := token.Ident
	if kw, ok := token.LookupKeyword(text); ok {
		kind = kw
	}
	tok := lx.MakeToken(kind, chars)
	if kind == token.Ident && !norm.NFC.IsNormalString(text) {
		lx.warn(diag.LexIdentNotNFC, tok.Span, "identifier '"+text+"' is not in Normalization Form C")
	}
	return tok, true, nil
}

func charsText(chars []Char) string {
	rs := make([]rune, len(chars))
	for i, c := range chars {
		rs[i] = c.R
	}
	return string(rs)
}
