package studio

import "errors"

var (
	// ErrStudioNotFound is returned when no studio matches the lookup.
	ErrStudioNotFound = errors.New("studio.repository: studio not found")

	// ErrLayoutNotFound is returned when no layout matches the lookup.
	ErrLayoutNotFound = errors.New("studio.repository: layout not found")

	// ErrStaffExists is returned when adding a user already on the staff list.
	ErrStaffExists = errors.New("studio.repository: staff member already exists")

	// ErrStaffNotFound is returned when removing a user not on the staff list.
	ErrStaffNotFound = errors.New("studio.repository: staff member not found")

	// ErrBuildQuery is returned when SQL generation fails.
	ErrBuildQuery = errors.New("studio.repository: failed to build query")

	// ErrExecQuery is returned when query execution fails.
	ErrExecQuery = errors.New("studio.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("studio.repository: failed to scan row")
)
