package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrStudioNotFound is returned when the studio does not exist.
	ErrStudioNotFound = errors.New("studio not found")

	// ErrAccessDenied is returned when the user is not studio staff.
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel is returned when the booking is past cancellation.
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrInvalidTransition is returned for a status change the state
	// machine does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on unexpected service failures.
	ErrInternal = errors.New("service: internal error")
)
