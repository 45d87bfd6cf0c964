package get_available_slots

import "errors"

var (
	// ErrStudioNotFound is returned when the studio does not exist.
	ErrStudioNotFound = errors.New("studio not found")

	// ErrLayoutNotFound is returned when the layout does not exist or does
	// not belong to the studio.
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrLayoutInactive is returned for layouts no longer open for booking.
	ErrLayoutInactive = errors.New("layout is not active")

	// ErrInvalidDate is returned for past dates.
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateTooFarInFuture is returned when the date exceeds the studio's
	// advance booking window.
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrConfigUnavailable is returned on the fail-closed path when studio
	// configuration cannot be loaded.
	ErrConfigUnavailable = errors.New("studio configuration unavailable")

	// ErrInternal is returned on unexpected usecase failures.
	ErrInternal = errors.New("usecase: internal error")
)
