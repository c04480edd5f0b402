package lexer

import (
	"cmm/internal/token"
)

// scanNumber gathers the rest of the numeric-looking run on the logical
// line, then keeps the longest floating constant, or failing that the
// longest integer constant, and gives the remaining characters back.
func (lx *Lexer) scanNumber(first Char) (token.Token, bool, error) {
	start := lx.chars.Pos() - 1
	chars := []Char{first}
	for {
		c, ok := lx.chars.Next()
		if !ok {
			break
		}
		prev := chars[len(chars)-1].R
		sign := (c.R == '+' || c.R == '-') && (prev == 'e' || prev == 'E' || prev == 'p' || prev == 'P')
		if !isNumberChar(c.R) && !sign {
			lx.chars.Back()
			break
		}
		chars = append(chars, c)
	}

	// все символы числовой грамматики — ASCII, так что байты == символы
	n, isFloat := matchNumber(charsText(chars))
	if n == 0 {
		lx.chars.SetPos(start + 1)
		return lx.MakeToken(token.Unknown, chars[:1]), true, nil
	}
	lx.chars.SetPos(start + n)

	kind := token.IntConst
	if isFloat {
		kind = token.FloatConst
	}
	return lx.MakeToken(kind, chars[:n]), true, nil
}
