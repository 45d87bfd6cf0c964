package studios

import "errors"

var (
	// ErrStudioNotFound is returned when the studio does not exist.
	ErrStudioNotFound = errors.New("studio not found")

	// ErrLayoutNotFound is returned when the layout does not exist or
	// belongs to another studio.
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrAccessDenied is returned when the user is not studio staff.
	ErrAccessDenied = errors.New("access denied")

	// ErrOwnerOnly is returned when a staff-management action is attempted
	// by a non-owner.
	ErrOwnerOnly = errors.New("only the studio owner can manage staff")

	// ErrStaffExists is returned when the user is already a sub-account.
	ErrStaffExists = errors.New("user is already studio staff")

	// ErrStaffNotFound is returned when removing a user who is not staff.
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrStaffLimitReached is returned when the tier's sub-account quota
	// is exhausted.
	ErrStaffLimitReached = errors.New("staff sub-account limit reached for tier")

	// ErrInvalidInput is returned for malformed or out-of-range values.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on unexpected service failures.
	ErrInternal = errors.New("service: internal error")
)
