package preproc

import (
	"time"

	"cmm/internal/diag"
	"cmm/internal/macro"
)

// MaxIncludeDepth bounds #include nesting.
const MaxIncludeDepth = 200

type Config struct {
	// IncludePaths are searched for <h> and, after the includer's directory, for "h".
	IncludePaths []string
	// Defines are NAME or NAME=VALUE; NAME(params)=VALUE defines a function-like macro.
	Defines   []string
	Undefines []string
	// KeepComments emits COMMENT tokens instead of dropping comments.
	KeepComments bool
	// Reporter receives #warning, #pragma and lexer advisories; may be nil.
	Reporter diag.Reporter
	// Now is the clock behind __DATE__ and __TIME__; time.Now when nil.
	Now func() time.Time
	// Macros lets several preprocessors share definitions; a fresh table when nil.
	Macros *macro.Table
}

func (c Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
