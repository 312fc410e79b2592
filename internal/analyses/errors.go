package analyses

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTextTooShort is returned when the extracted resume text, trimmed, is
// below the minimum length gate.
var ErrTextTooShort = errors.New("resume text too short")

// ErrExtract wraps failures of the PDF text extraction step.
var ErrExtract = errors.New("pdf extraction failed")

// ValidationError reports a model payload that parsed as JSON but does not
// match the expected result shape. Malformed payloads are rejected rather
// than forwarded or persisted.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid analyzer payload: %s", strings.Join(e.Issues, "; "))
}
