package send_blast

import "errors"

var (
	// ErrStudioNotFound is returned when the studio does not exist.
	ErrStudioNotFound = errors.New("studio not found")

	// ErrAccessDenied is returned when the user is not studio staff.
	ErrAccessDenied = errors.New("access denied")

	// ErrFeatureNotAllowed is returned when the studio's tier does not
	// include WhatsApp blasts.
	ErrFeatureNotAllowed = errors.New("feature not allowed for package tier")

	// ErrWhatsAppNotConnected is returned when the gateway session is down.
	ErrWhatsAppNotConnected = errors.New("whatsapp session not connected")

	// ErrNoRecipients is returned when the studio has no customer phones.
	ErrNoRecipients = errors.New("no recipients for blast")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("internal error")
)
