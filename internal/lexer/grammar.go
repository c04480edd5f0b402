package lexer

import (
	"regexp"
	"strings"
)

// Грамматики литералов C23. Числа сопоставляются по самому длинному
// совпадению, строковые и символьные литералы проверяются целиком.
const (
	digit                  = `[0-9]`
	nonzeroDigit           = `[1-9]`
	decimalConstant        = nonzeroDigit + `('?` + digit + `)*`
	octalConstant          = `0('?[0-7])*`
	hexPrefix              = `(0x|0X)`
	hexDigit               = `[0-9a-fA-F]`
	hexDigitSequence       = hexDigit + `('?` + hexDigit + `)*`
	hexConstant            = hexPrefix + hexDigitSequence
	binaryConstant         = `(0b|0B)[01]('?[01])*`
	bitPreciseSuffix       = `(wb|WB)`
	unsignedSuffix         = `[uU]`
	longSuffix             = `[lL]`
	longLongSuffix         = `(ll|LL)`
	integerSuffix          = `(` + unsignedSuffix + `(` + longLongSuffix + `|` + bitPreciseSuffix + `)|` + unsignedSuffix + longSuffix + `?|(` + longLongSuffix + `|` + bitPreciseSuffix + `|` + longSuffix + `)` + unsignedSuffix + `?)`
	integerConstant        = `(` + hexConstant + `|` + binaryConstant + `|` + octalConstant + `|` + decimalConstant + `)` + integerSuffix + `?`
	floatingSuffix         = `(df|dd|dl|DF|DD|DL|[flFL])`
	digitSequence          = `(` + digit + `('?` + digit + `)*)`
	exponentPart           = `([eE][+-]?` + digitSequence + `)`
	binaryExponentPart     = `([pP][+-]?` + digitSequence + `)`
	fractionalConstant     = `(` + digitSequence + `?\.` + digitSequence + `|` + digitSequence + `\.)`
	hexFractionalConstant  = `(` + hexDigitSequence + `?\.` + hexDigitSequence + `|` + hexDigitSequence + `\.)`
	decimalFloatConstant   = `(` + fractionalConstant + exponentPart + `?` + floatingSuffix + `?|` + digitSequence + exponentPart + floatingSuffix + `?)`
	hexFloatConstant       = `(` + hexPrefix + hexFractionalConstant + binaryExponentPart + `|` + hexPrefix + hexDigitSequence + binaryExponentPart + `)` + floatingSuffix + `?`
	floatingConstant       = `(` + decimalFloatConstant + `|` + hexFloatConstant + `)`
	universalCharacterName = `(\\[uU](` + hexDigit + `{4}){1,2})`
	encodingPrefix         = `(u8|u|U|L)`
	escapeSequence         = `(\\['"?\\abfnrtv]|\\[0-7]{1,3}|\\x` + hexDigit + `+|` + universalCharacterName + `)`
	characterConstant      = encodingPrefix + `?'(` + escapeSequence + `|[^'\n\\])+'`
	stringLiteral          = encodingPrefix + `?"(` + escapeSequence + `|[^"\n\\])*"`
)

var (
	floatRe  = longest(`^` + floatingConstant)
	intRe    = longest(`^` + integerConstant)
	charRe   = regexp.MustCompile(`^` + characterConstant + `$`)
	stringRe = regexp.MustCompile(`^` + stringLiteral + `$`)
)

func longest(expr string) *regexp.Regexp {
	re := regexp.MustCompile(expr)
	re.Longest()
	return re
}

// matchNumber returns the length of the longest numeric constant at the
// start of text and whether it is a floating constant.
func matchNumber(text string) (n int, isFloat bool) {
	if m := floatRe.FindString(text); m != "" {
		return len(m), true
	}
	return len(intRe.FindString(text)), false
}

func validLiteral(text string) bool {
	if strings.HasSuffix(text, "'") {
		return charRe.MatchString(text)
	}
	return stringRe.MatchString(text)
}
