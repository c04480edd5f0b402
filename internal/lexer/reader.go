package lexer

import (
	"fmt"
	"unicode/utf8"

	"cmm/internal/source"
	"cmm/internal/token"

	"fortio.org/safecast"
)

// Char is one source character together with the bytes it occupies.
type Char struct {
	R   rune
	Loc source.Range
}

// Reader is a raw character source. Line splicing happens above it, in CharStream.
type Reader interface {
	// Read returns the next character; ok is false at end of input.
	Read() (c Char, ok bool)
	// EndRange is the zero-width location just past the last character.
	EndRange() source.Range
}

// FileReader reads UTF-8 characters of a source.File.
type FileReader struct {
	file  *source.File
	off   uint32
	limit uint32
}

func NewFileReader(f *source.File) *FileReader {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return &FileReader{file: f, limit: limit}
}

func (r *FileReader) Read() (Char, bool) {
	if r.off >= r.limit {
		return Char{}, false
	}
	ch, size := rune(r.file.Content[r.off]), uint32(1)
	if ch >= utf8.RuneSelf {
		var n int
		ch, n = utf8.DecodeRune(r.file.Content[r.off:])
		size = uint32(n) // #nosec G115 -- at most utf8.UTFMax
	}
	c := Char{R: ch, Loc: source.Range{File: r.file.ID, Start: r.off, End: r.off + size}}
	r.off += size
	return c, true
}

func (r *FileReader) EndRange() source.Range {
	return source.Range{File: r.file.ID, Start: r.limit, End: r.limit}
}

// ConcatReader replays the characters of several tokens back to back, each
// character keeping its original location. Token pasting feeds it to a
// fresh Lexer so the pasted text is tokenized exactly like source text.
type ConcatReader struct {
	chars []Char
	pos   int
	end   source.Range
}

// NewConcatReader builds the character list from the tokens' spans.
// When a span no longer spells the token's text (stringized or predefined
// results, merged literals), the text itself is used, anchored at the
// first range of the span.
func NewConcatReader(fs *source.FileSet, toks []token.Token) *ConcatReader {
	cr := &ConcatReader{}
	for _, tok := range toks {
		if fs != nil && spellsText(fs, tok) {
			for _, rg := range tok.Span {
				cr.chars = appendRangeChars(cr.chars, fs, rg)
			}
			continue
		}
		anchor := tok.Span.First()
		for _, ch := range tok.Text {
			cr.chars = append(cr.chars, Char{R: ch, Loc: anchor})
		}
	}
	if n := len(cr.chars); n > 0 {
		last := cr.chars[n-1].Loc
		cr.end = source.Range{File: last.File, Start: last.End, End: last.End}
	}
	return cr
}

func (cr *ConcatReader) Read() (Char, bool) {
	if cr.pos >= len(cr.chars) {
		return Char{}, false
	}
	c := cr.chars[cr.pos]
	cr.pos++
	return c, true
}

func (cr *ConcatReader) EndRange() source.Range {
	return cr.end
}

func spellsText(fs *source.FileSet, tok token.Token) bool {
	if tok.Span.Empty() {
		return false
	}
	n := 0
	for _, rg := range tok.Span {
		if int(rg.File) >= fs.Len() {
			return false
		}
		part := fs.Text(rg)
		if n+len(part) > len(tok.Text) || tok.Text[n:n+len(part)] != part {
			return false
		}
		n += len(part)
	}
	return n == len(tok.Text)
}

func appendRangeChars(out []Char, fs *source.FileSet, rg source.Range) []Char {
	text := fs.Text(rg)
	off := rg.Start
	for i := 0; i < len(text); {
		ch, n := utf8.DecodeRuneInString(text[i:])
		size := uint32(n) // #nosec G115 -- at most utf8.UTFMax
		out = append(out, Char{R: ch, Loc: source.Range{File: rg.File, Start: off, End: off + size}})
		off += size
		i += n
	}
	return out
}
