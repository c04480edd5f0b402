package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"cmm/internal/source"
	"cmm/internal/token"
)

// TokenOutput is the serialized form of one token, shared by the JSON
// and msgpack dumps.
type TokenOutput struct {
	Kind    string         `json:"kind" msgpack:"kind"`
	Text    string         `json:"text,omitempty" msgpack:"text,omitempty"`
	Content string         `json:"content,omitempty" msgpack:"content,omitempty"`
	Prefix  string         `json:"prefix,omitempty" msgpack:"prefix,omitempty"`
	File    string         `json:"file,omitempty" msgpack:"file,omitempty"`
	Line    uint32         `json:"line,omitempty" msgpack:"line,omitempty"`
	Col     uint32         `json:"col,omitempty" msgpack:"col,omitempty"`
	Space   bool           `json:"space,omitempty" msgpack:"space,omitempty"`
	Ranges  []source.Range `json:"ranges" msgpack:"ranges"`
}

// TokenOutputs converts tokens for serialization. Positions are taken from
// the first range of each span.
func TokenOutputs(tokens []token.Token, fs *source.FileSet) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		o := TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Content: tok.Content,
			Prefix:  tok.Prefix,
			Space:   tok.Space,
			Ranges:  tok.Span,
		}
		if fs != nil && !tok.Span.Empty() {
			first := tok.Span.First()
			start, _ := fs.Resolve(first)
			o.File = fs.Get(first.File).Path
			o.Line, o.Col = start.Line, start.Col
		}
		out = append(out, o)
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, o := range TokenOutputs(tokens, fs) {
		if _, err := fmt.Fprintf(w, "%4d: %-14s", i+1, o.Kind); err != nil {
			return err
		}
		if o.Text != "" {
			fmt.Fprintf(w, " %q", o.Text)
		}
		if o.Line != 0 {
			fmt.Fprintf(w, " at %s:%d:%d", o.File, o.Line, o.Col)
		}
		if len(o.Ranges) > 1 {
			fmt.Fprintf(w, " (%d ranges)", len(o.Ranges))
		}
		fmt.Fprintln(w)
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(TokenOutputs(tokens, fs))
}

// FormatTokensMsgpack writes the same records as FormatTokensJSON in msgpack.
func FormatTokensMsgpack(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	return msgpack.NewEncoder(w).Encode(TokenOutputs(tokens, fs))
}
