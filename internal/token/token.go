package token

import (
	"fmt"
	"slices"

	"cmm/internal/source"
)

// Token represents a single C token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string

	// Content is the decoded value of a char/string literal, without prefix and quotes.
	Content string
	// Prefix is the encoding prefix of a char/string literal: "", "u8", "u", "U" or "L".
	Prefix string
	// PPHash marks a '#' preceded only by whitespace since the last newline.
	PPHash bool
	// Space reports whether whitespace separated this token from the previous one.
	Space bool
	// Hide lists the macros whose expansion produced this token.
	Hide HideSet
}

// IsLiteral reports whether the token is a numeric, character or string literal.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

// IsPunct reports whether the token is a punctuator.
func (t Token) IsPunct() bool { return t.Kind.IsPunct() }

// IsKeyword reports whether the token is a C keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Is reports whether the token has one of the given kinds.
func (t Token) Is(kinds ...Kind) bool {
	return slices.Contains(kinds, t.Kind)
}

// Name returns the identifier-like spelling of identifiers, keywords and
// directive names, or "" for anything else. Directive dispatch relies on it
// because `if`/`else` arrive as keywords.
func (t Token) Name() string {
	if t.Kind == Ident || t.Kind.IsKeyword() || t.Kind.IsPPKeyword() {
		return t.Text
	}
	return ""
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}
