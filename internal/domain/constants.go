package domain

// Default studio configuration values
const (
	DefaultSlotGapMinutes          = 60
	DefaultMinBookingNoticeMinutes = 0
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited

	// Fallback operating hours used by the fail-open availability path.
	DefaultOpenTime  = "09:00"
	DefaultCloseTime = "18:00"
)

// Business validation constants
const (
	MinSlotGapMinutes          = 15
	MaxSlotGapMinutes          = 240
	MinMinutePackage           = 30
	MaxMinutePackage           = 480 // 8 hours
	MinAdvanceBookingDays      = 0
	MaxAdvanceBookingDays      = 365
	MaxNotesLength             = 500
	MaxCancellationReasonLength = 500
	MaxBlastMessageLength      = 1000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses is the allow-list used when reading bookings that hold
// a slot. Kept in sync with BookingStatus.Occupies.
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// ReleasedStatuses lists the statuses that free a slot, used to exclude
// rows when counting availability.
var ReleasedStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelledByCustomer,
	StatusCancelledByStudio,
	StatusNoShow,
	StatusRescheduled,
}
