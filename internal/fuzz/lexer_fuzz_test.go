package fuzztests

import (
	"testing"

	"cmm/internal/diag"
	"cmm/internal/lexer"
	"cmm/internal/source"
	"cmm/internal/testkit"
	"cmm/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.c", input)
		bag := diag.NewBag(128)
		lx := lexer.NewFile(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

		var toks []token.Token
		// каждый токен съедает хотя бы один байт
		for range len(input) + 2 {
			tok, err := lx.Next()
			if err != nil {
				break
			}
			if tok.Kind == token.End {
				break
			}
			toks = append(toks, tok)
		}
		if len(toks) > len(input) {
			t.Fatalf("%d tokens from %d bytes", len(toks), len(input))
		}
		if err := testkit.CheckTokens(toks, fs); err != nil {
			t.Fatalf("%v\ninput: %q", err, truncateForLog(input, 256))
		}
	})
}
