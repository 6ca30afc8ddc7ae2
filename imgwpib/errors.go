package imgwpib

import "fmt"

// APIError is the single error kind surfaced by the client. It covers invalid
// station configuration, non-success HTTP responses, wrong content types,
// missing station records, and an absent mandatory water level. Everything
// else degrades to absent values instead of failing.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func newAPIError(format string, args ...any) *APIError {
	return &APIError{Message: fmt.Sprintf(format, args...)}
}
