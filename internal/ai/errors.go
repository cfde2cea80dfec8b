package ai

import "errors"

// Static errors.
var (
	// ErrUnknownBackend is returned by the factory for an unrecognized
	// backend id.
	ErrUnknownBackend = errors.New("unknown text-generation backend")

	// ErrEmptyResponse is returned when a backend answers successfully
	// but carries no usable text.
	ErrEmptyResponse = errors.New("backend returned no usable text")
)
