package quotes

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmpty is returned when selecting from an empty sequence.
var ErrEmpty = errors.New("cannot pick from an empty list")

// ErrNotArray indicates the top-level JSON value is not an array.
var ErrNotArray = errors.New("top-level JSON value must be an array")

// DecodeError describes why a transfer document was rejected.
type DecodeError struct {
	Err        error
	Violations []string
}

func (e *DecodeError) Error() string {
	if len(e.Violations) > 0 {
		return fmt.Sprintf("invalid quotes file: %s", strings.Join(e.Violations, "; "))
	}
	return fmt.Sprintf("invalid quotes file: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
