package token

import (
	"strings"
	"unicode/utf8"
)

var prefixRank = map[string]int{"": 0, "u8": 1, "L": 2, "u": 3, "U": 4}

// WiderPrefix picks the prefix that wins when two string literals merge:
// none < u8 < L < u < U.
func WiderPrefix(a, b string) string {
	if prefixRank[b] > prefixRank[a] {
		return b
	}
	return a
}

// SplitLiteral separates the encoding prefix of a char or string literal
// and decodes the text between the quotes.
func SplitLiteral(text string) (prefix, content string) {
	q := strings.IndexAny(text, `"'`)
	if q < 0 || len(text)-q < 2 {
		return "", ""
	}
	return text[:q], Decode(text[q+1 : len(text)-1])
}

// Decode resolves C escape sequences. Malformed escapes are kept literally;
// the lexer has already rejected them for real source text.
func Decode(body string) string {
	if !strings.Contains(body, `\`) {
		return body
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b.WriteByte(c)
			i++
			continue
		}
		i++
		e := body[i]
		switch e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '\\', '\'', '"', '?':
			b.WriteByte(e)
		case 'x':
			v, n := scanDigits(body[i+1:], 16, -1)
			if n == 0 {
				b.WriteString(`\x`)
				break
			}
			writeCode(&b, v)
			i += n
		case 'u', 'U':
			want := 4
			if e == 'U' {
				want = 8
			}
			v, n := scanDigits(body[i+1:], 16, want)
			if n != want {
				b.WriteByte('\\')
				b.WriteByte(e)
				break
			}
			writeCode(&b, v)
			i += n
		default:
			if e >= '0' && e <= '7' {
				v, n := scanDigits(body[i:], 8, 3)
				writeCode(&b, v)
				i += n - 1
				break
			}
			b.WriteByte('\\')
			b.WriteByte(e)
		}
		i++
	}
	return b.String()
}

// scanDigits reads up to limit digits (limit < 0: unbounded) in the given base.
func scanDigits(s string, base uint32, limit int) (uint32, int) {
	var v uint32
	n := 0
	for n < len(s) && (limit < 0 || n < limit) {
		d, ok := digitValue(s[n])
		if !ok || d >= base {
			break
		}
		v = v*base + d
		n++
	}
	return v, n
}

func digitValue(c byte) (uint32, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint32(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint32(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint32(c-'A') + 10, true
	}
	return 0, false
}

func writeCode(b *strings.Builder, v uint32) {
	r := rune(v) // #nosec G115 -- invalid values become RuneError below
	if !utf8.ValidRune(r) {
		r = utf8.RuneError
	}
	b.WriteRune(r)
}
