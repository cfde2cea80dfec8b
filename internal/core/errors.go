package core

import "fmt"

// ExternalServiceError reports a non-success HTTP status from an external
// backend. It carries the numeric status and the raw response body so the
// failure can be surfaced verbatim.
type ExternalServiceError struct {
	Backend    string
	StatusCode int
	Body       string
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s API error (%d): %s", e.Backend, e.StatusCode, e.Body)
}
