package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studiokita/booking-service/pkg/types"
)

// PaymentMethod is how the customer pays for a booking.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentFPX          PaymentMethod = "fpx"
)

// PaymentType distinguishes full payment from a deposit.
type PaymentType string

const (
	PaymentFull    PaymentType = "full"
	PaymentDeposit PaymentType = "deposit"
)

// Booking represents a reservation of a layout at a studio for a contiguous
// interval on one calendar date. The date is wall-clock local time with no
// offset; times of day are HH:MM strings.
type Booking struct {
	ID        int64
	Reference string // unique customer-facing code, e.g. "BK-9F3A2C1D"

	StudioID int64
	LayoutID int64

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int

	AddonName  *string
	TotalPrice float64

	PaymentMethod PaymentMethod
	PaymentType   PaymentType

	Status BookingStatus

	Notes      *string // customer-visible notes
	StaffNotes *string // internal, never returned on public endpoints

	CancellationReason *string
	CancelledAt        *time.Time

	// Google Calendar event backing this booking, when calendar sync ran.
	CalendarEventID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewReference generates a customer-facing booking code from a random UUID.
func NewReference() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BK-" + strings.ToUpper(raw[:8])
}

// Occupies reports whether the booking currently holds its slot.
func (b *Booking) Occupies() bool {
	return b.Status.Occupies()
}

// CanBeCancelled reports whether the booking may still be cancelled.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled reports whether the booking was cancelled by either side.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByCustomer || b.Status == StatusCancelledByStudio
}

// HasAddon reports whether an addon was booked. Classification is by the
// explicit field, never by a price threshold.
func (b *Booking) HasAddon() bool {
	return b.AddonName != nil && *b.AddonName != ""
}

// StudioBookingsFilter narrows studio booking listings.
type StudioBookingsFilter struct {
	StudioID        int64 // required
	LayoutID        *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *BookingStatus
	IncludeReleased bool // include cancelled / no-show / rescheduled rows
}

// ParsePaymentMethod validates a raw payment method string.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentBankTransfer, PaymentFPX:
		return PaymentMethod(s), true
	}
	return "", false
}

// ParsePaymentType validates a raw payment type string.
func ParsePaymentType(s string) (PaymentType, bool) {
	switch PaymentType(s) {
	case PaymentFull, PaymentDeposit:
		return PaymentType(s), true
	}
	return "", false
}
