package notes

import (
	"errors"
	"fmt"
)

// ErrMalformed is matched by every structural parse failure.
var ErrMalformed = errors.New("malformed document")

// MalformedError describes why Parse rejected its input.
type MalformedError struct {
	Line   int
	Reason string
}

func (e *MalformedError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed document: line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed document: %s", e.Reason)
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformed
}

func malformed(line int, format string, args ...any) error {
	return &MalformedError{Line: line, Reason: fmt.Sprintf(format, args...)}
}
