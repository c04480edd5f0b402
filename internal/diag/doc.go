// Package diag defines the diagnostic model shared by the lexer, the
// preprocessor and the parser.
//
// Diagnostic is the central record: Severity, Code, Message, a primary
// source.Span (possibly several disjoint ranges) and optional Notes.
//
// Two channels carry diagnostics:
//
//   - Fatal problems (bad literals, malformed directives, #error, missing
//     includes) travel as *Error values through ordinary error returns and
//     abort the translation unit. Nothing resynchronizes after them.
//   - Non-fatal findings (#warning, NFC identifier warnings) go to a
//     Reporter, normally a BagReporter filling a Bag.
//
// Parse failures are a third case: the parser never reports individual
// speculative failures; calltree synthesizes diagnostics once the whole
// parse has failed and the driver puts them into a Bag.
//
// Codes are grouped by thousands: LEX1xxx lexical, PP2xxx directives and
// macros, PP3xxx user directives, SYN4xxx syntax, IO5xxx file access.
//
// Rendering lives in internal/diagfmt; this package performs no IO.
package diag
