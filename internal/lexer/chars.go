package lexer

import "cmm/internal/source"

// CharStream drops backslash-newline pairs before anything else sees the
// characters and remembers everything it has produced, so scanners can
// back up freely and the preprocessor can look back to the last newline.
type CharStream struct {
	rd      Reader
	buf     []Char
	pos     int
	pending []Char // сырые символы, прочитанные вперёд при проверке на '\\\n'
}

func NewCharStream(rd Reader) *CharStream {
	return &CharStream{rd: rd}
}

// Next returns the next logical character; ok is false at end of input.
func (cs *CharStream) Next() (Char, bool) {
	if cs.pos < len(cs.buf) {
		c := cs.buf[cs.pos]
		cs.pos++
		return c, true
	}
	c, ok := cs.fetch()
	if !ok {
		return Char{}, false
	}
	cs.buf = append(cs.buf, c)
	cs.pos++
	return c, true
}

// Back un-reads the last character returned by Next.
func (cs *CharStream) Back() {
	if cs.pos > 0 {
		cs.pos--
	}
}

// Peek returns the next character without consuming it.
func (cs *CharStream) Peek() (Char, bool) {
	c, ok := cs.Next()
	if ok {
		cs.Back()
	}
	return c, ok
}

// PeekIs reports whether the next character is r.
func (cs *CharStream) PeekIs(r rune) bool {
	c, ok := cs.Peek()
	return ok && c.R == r
}

func (cs *CharStream) Pos() int {
	return cs.pos
}

// SetPos rewinds or advances within already produced characters.
func (cs *CharStream) SetPos(pos int) {
	cs.pos = min(max(pos, 0), len(cs.buf))
}

// At returns the character produced at index i.
func (cs *CharStream) At(i int) Char {
	return cs.buf[i]
}

// Slice returns the characters in [from, to).
func (cs *CharStream) Slice(from, to int) []Char {
	return cs.buf[from:to]
}

// AtLineStart reports whether only blanks precede index i on its line.
func (cs *CharStream) AtLineStart(i int) bool {
	for j := i - 1; j >= 0; j-- {
		switch r := cs.buf[j].R; {
		case r == '\n':
			return true
		case !isBlank(r):
			return false
		}
	}
	return true
}

// EndRange is the zero-width location of end of input.
func (cs *CharStream) EndRange() source.Range {
	return cs.rd.EndRange()
}

func (cs *CharStream) raw() (Char, bool) {
	if n := len(cs.pending); n > 0 {
		c := cs.pending[0]
		cs.pending = cs.pending[1:]
		return c, true
	}
	return cs.rd.Read()
}

func (cs *CharStream) fetch() (Char, bool) {
	for {
		c, ok := cs.raw()
		if !ok || c.R != '\\' {
			return c, ok
		}
		next, ok := cs.raw()
		if !ok {
			return c, true
		}
		if next.R == '\n' {
			continue
		}
		cs.pending = append(cs.pending, next)
		return c, true
	}
}
