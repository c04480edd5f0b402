package driver

import (
	"crypto/sha256"
	"strconv"
	"strings"
	"time"

	"cmm/internal/diag"
	"cmm/internal/observ"
	"cmm/internal/preproc"
)

// Options configure every driver entry point. Zero value: no include
// paths, unlimited diagnostics, no cache.
type Options struct {
	IncludePaths []string
	Defines      []string // NAME or NAME=VALUE
	Undefines    []string
	KeepComments bool

	// MaxDiagnostics caps each unit's Bag; <= 0 means unlimited.
	MaxDiagnostics int
	// Typedefs are type names known before the first token (e.g. from a
	// header the parser never sees).
	Typedefs []string

	// Cache stores token dumps between runs; Tokenize only.
	Cache *TokenCache
	// Timer receives phase timings; nil disables them.
	Timer *observ.Timer
	// Now drives __DATE__ and __TIME__; time.Now when nil.
	Now func() time.Time

	// Jobs bounds the number of units Check processes at once; <= 0 means GOMAXPROCS.
	Jobs int
	// Progress receives Check events; may be nil.
	Progress ProgressSink
}

func (o Options) preprocConfig(bag *diag.Bag) preproc.Config {
	return preproc.Config{
		IncludePaths: o.IncludePaths,
		Defines:      o.Defines,
		Undefines:    o.Undefines,
		KeepComments: o.KeepComments,
		Reporter:     diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
		Now:          o.Now,
	}
}

// fingerprint hashes everything besides file contents that changes the
// token stream.
func (o Options) fingerprint(content [32]byte) [32]byte {
	h := sha256.New()
	_, _ = h.Write(content[:])
	write := func(tag string, items []string) {
		_, _ = h.Write([]byte(tag + strconv.Itoa(len(items)) + "\x00"))
		_, _ = h.Write([]byte(strings.Join(items, "\x00")))
	}
	write("I", o.IncludePaths)
	write("D", o.Defines)
	write("U", o.Undefines)
	if o.KeepComments {
		_, _ = h.Write([]byte("C"))
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
