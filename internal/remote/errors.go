package remote

import (
	"errors"
	"fmt"
)

// ErrUnexpectedResponse indicates the body was not a JSON array of posts
var ErrUnexpectedResponse = errors.New("unexpected response from quote server")

// ServerError represents a non-2xx reply from the quote server
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("quote server error: HTTP %d", e.StatusCode)
}
