package lexer

import (
	"cmm/internal/token"
)

// scanPunct extends the punctuator one character at a time while the text
// is still a punctuator and backs off the character that broke it, so
// `<<=` wins over `<<` over `<`.
func (lx *Lexer) scanPunct(first Char) token.Token {
	chars := []Char{first}
	text := string(first.R)
	kind, ok := token.LookupPunct(text)
	if !ok {
		return lx.MakeToken(token.Unknown, chars)
	}
	for {
		c, more := lx.chars.Next()
		if !more {
			break
		}
		k, ok := token.LookupPunct(text + string(c.R))
		if !ok {
			lx.chars.Back()
			break
		}
		chars = append(chars, c)
		text += string(c.R)
		kind = k
	}
	return lx.MakeToken(kind, chars)
}

// scanEllipsis: "..." is the only punctuator whose two-character prefix is not one.
func (lx *Lexer) scanEllipsis(first Char) (token.Token, bool) {
	mark := lx.chars.Pos()
	c1, ok1 := lx.chars.Next()
	c2, ok2 := lx.chars.Next()
	if ok1 && ok2 && c1.R == '.' && c2.R == '.' {
		return lx.MakeToken(token.Ellipsis, []Char{first, c1, c2}), true
	}
	lx.chars.SetPos(mark)
	return token.Token{}, false
}
