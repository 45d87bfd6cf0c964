package create_booking

import "errors"

var (
	// ErrStudioNotFound is returned when the studio does not exist.
	ErrStudioNotFound = errors.New("create_booking: studio not found")

	// ErrLayoutNotFound is returned when the layout does not exist or does
	// not belong to the studio.
	ErrLayoutNotFound = errors.New("create_booking: layout not found")

	// ErrLayoutInactive is returned for layouts no longer open for booking.
	ErrLayoutInactive = errors.New("create_booking: layout is not active")

	// ErrAddonNotFound is returned when the named addon is not sold with
	// the layout.
	ErrAddonNotFound = errors.New("create_booking: addon not found for layout")

	// ErrInvalidDate is returned for past dates.
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture is returned when the date exceeds the studio's
	// advance booking window.
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrOutsideOperatingHours is returned when the interval does not fit
	// the studio's hours or cuts into the break window.
	ErrOutsideOperatingHours = errors.New("create_booking: time is outside operating hours")

	// ErrSlotNotAvailable is returned when the slot is already taken.
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrTooLateToBook is returned when the start violates the studio's
	// minimum booking notice.
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrFeatureNotAllowed is returned when the studio's tier does not
	// include the requested capability, e.g. FPX payment.
	ErrFeatureNotAllowed = errors.New("create_booking: feature not allowed for studio tier")

	// ErrInvalidPhone is returned when the customer phone cannot be
	// normalized.
	ErrInvalidPhone = errors.New("create_booking: invalid customer phone")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal is returned on unexpected usecase failures.
	ErrInternal = errors.New("create_booking: internal error")
)
