package csvio

import (
	"errors"
	"fmt"
)

var ErrInvalidHeader = errors.New("invalid header")

// MalformedRecordError is a row that could not become an event. The row is dropped
// and reading can continue with the next one.
type MalformedRecordError struct {
	Line   int
	Kind   string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// IsMalformed reports whether err only concerns a single skipped row.
func IsMalformed(err error) bool {
	var malformed *MalformedRecordError
	return errors.As(err, &malformed)
}
