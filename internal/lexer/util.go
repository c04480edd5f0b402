package lexer

import "unicode"

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isASCIILetter(r rune) bool { return r|0x20 >= 'a' && r|0x20 <= 'z' }

// isBlank — пробельные символы кроме перевода строки.
func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\v' || r == '\f' || r == '\r'
}

func isSpace(r rune) bool {
	return r == '\n' || isBlank(r)
}

// isIdentStart accepts '_', ASCII letters and Unicode XID_Start.
func isIdentStart(r rune) bool {
	if r < unicode.MaxASCII+1 {
		return r == '_' || isASCIILetter(r)
	}
	return unicode.In(r, unicode.L, unicode.Nl, unicode.Other_ID_Start)
}

// isIdentContinue accepts identifier starts, digits and Unicode XID_Continue.
func isIdentContinue(r rune) bool {
	if r < unicode.MaxASCII+1 {
		return r == '_' || isASCIILetter(r) || isDigit(r)
	}
	return isIdentStart(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}

// isNumberChar is every character the numeric grammars can consume.
func isNumberChar(r rune) bool {
	return isDigit(r) || isASCIILetter(r) || r == '_' || r == '.' || r == '\''
}

// isEncodingPrefix: u8, u, U, L перед кавычкой образуют один токен с литералом.
func isEncodingPrefix(s string) bool {
	return s == "u8" || s == "u" || s == "U" || s == "L"
}
