package breeze

import (
	"fmt"
)

// APIError reports a request the Breeze service rejected. Breeze
// usually answers HTTP 200 and flags the failure in the body, so Status
// may be 200 even for errors.
type APIError struct {
	Endpoint string
	Command  string
	Status   int
	Message  string
}

func (e *APIError) Error() string {
	path := e.Endpoint
	if e.Command != "" {
		path += "/" + e.Command
	}
	if e.Message != "" {
		return fmt.Sprintf("breeze: %s: %s", path, e.Message)
	}
	return fmt.Sprintf("breeze: %s: request failed with status %d", path, e.Status)
}

// BadRequestError reports a request rejected locally before any I/O:
// missing required parameters or combinations Breeze would refuse.
type BadRequestError struct {
	Reason string
}

func (e *BadRequestError) Error() string {
	return "breeze: " + e.Reason
}

func badRequest(format string, args ...any) error {
	return &BadRequestError{Reason: fmt.Sprintf(format, args...)}
}
