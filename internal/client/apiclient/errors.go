package apiclient

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("user not found")

// APIError is a non-success response carrying {"error": ...}.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}
