package domain

import "errors"

// BookingStatus is the closed set of booking states. Every comparison and
// transition in the service goes through this type; raw strings are parsed
// once at the edge with ParseBookingStatus.
type BookingStatus string

const (
	StatusPending             BookingStatus = "pending"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusInProgress          BookingStatus = "in_progress"
	StatusCompleted           BookingStatus = "completed"
	StatusCancelledByCustomer BookingStatus = "cancelled_by_customer"
	StatusCancelledByStudio   BookingStatus = "cancelled_by_studio"
	StatusNoShow              BookingStatus = "no_show"
	StatusRescheduled         BookingStatus = "rescheduled"
)

// ErrUnknownStatus is returned when a string is not a valid booking status.
var ErrUnknownStatus = errors.New("unknown booking status")

// allStatuses lists every valid status for parsing.
var allStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelledByCustomer,
	StatusCancelledByStudio,
	StatusNoShow,
	StatusRescheduled,
}

// allowedTransitions is the single source of truth for the booking state
// machine. Terminal statuses have no outgoing edges.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending: {
		StatusConfirmed,
		StatusCancelledByCustomer,
		StatusCancelledByStudio,
		StatusRescheduled,
	},
	StatusConfirmed: {
		StatusInProgress,
		StatusCancelledByCustomer,
		StatusCancelledByStudio,
		StatusNoShow,
		StatusRescheduled,
	},
	StatusInProgress: {
		StatusCompleted,
		StatusCancelledByStudio,
	},
	StatusCompleted:           {},
	StatusCancelledByCustomer: {},
	StatusCancelledByStudio:   {},
	StatusNoShow:              {},
	StatusRescheduled:         {},
}

// ParseBookingStatus validates a raw string into a BookingStatus.
func ParseBookingStatus(s string) (BookingStatus, error) {
	candidate := BookingStatus(s)
	for _, valid := range allStatuses {
		if candidate == valid {
			return candidate, nil
		}
	}
	return "", ErrUnknownStatus
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s BookingStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// Occupies reports whether a booking in this status holds its time slot.
// Cancelled, no-show, rescheduled and completed bookings free the slot.
func (s BookingStatus) Occupies() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress:
		return true
	default:
		return false
	}
}
