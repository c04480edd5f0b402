package diag

import (
	"errors"
	"fmt"

	"cmm/internal/source"
)

// Error is a fatal diagnostic travelling through the error channel.
// Lexical, directive and user #error failures are all reported this way;
// nothing downstream tries to recover from them.
type Error struct {
	Diag Diagnostic
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Diag.Code.ID(), e.Diag.Message)
}

// Errorf builds a fatal *Error with a formatted message.
func Errorf(code Code, primary source.Span, format string, args ...any) *Error {
	return &Error{Diag: NewError(code, primary, fmt.Sprintf(format, args...))}
}

// AsDiagnostic extracts the diagnostic from err if it wraps an *Error.
func AsDiagnostic(err error) (Diagnostic, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Diag, true
	}
	return Diagnostic{}, false
}
