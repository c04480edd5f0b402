// Package token defines the closed set of C token kinds and the Token record.
// Invariants:
//   - Token.Text is the exact source spelling, after line splicing.
//   - Token.Span covers every character that contributed to Text; a token
//     interrupted by a backslash-newline has one range per physical line.
//   - Content and Prefix are set only for CharConst and StringLiteral.
//   - Directive-name kinds (PPDefine...) appear only inside directive lines.
package token
