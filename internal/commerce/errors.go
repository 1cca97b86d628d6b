package commerce

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response other than 404.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API status %d", e.Status)
	}
	return fmt.Sprintf("API status %d: %s", e.Status, e.Body)
}
