package reports

import "errors"

var (
	// ErrStudioNotFound is returned when the studio does not exist.
	ErrStudioNotFound = errors.New("studio not found")

	// ErrAccessDenied is returned when the user is not studio staff.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput is returned for malformed period bounds.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on unexpected service failures.
	ErrInternal = errors.New("service: internal error")
)
