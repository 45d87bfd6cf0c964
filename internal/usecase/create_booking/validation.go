package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/studiokita/booking-service/internal/domain"
	"github.com/studiokita/booking-service/pkg/types"
)

func validateRequest(req *Request) error {
	if req.StudioID <= 0 {
		return fmt.Errorf("%w: studioID must be positive", ErrInvalidInput)
	}
	if req.LayoutID <= 0 {
		return fmt.Errorf("%w: layoutID must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if _, ok := domain.ParsePaymentMethod(req.PaymentMethod); !ok {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}
	if _, ok := domain.ParsePaymentType(req.PaymentType); !ok {
		return fmt.Errorf("%w: unknown payment type %q", ErrInvalidInput, req.PaymentType)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

func validateDate(bookingDate, now time.Time, advanceBookingDays int) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	// advanceBookingDays = 0 means unlimited.
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)
	bookingDateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())

	if bookingDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

func validateBookingTime(bookingDate time.Time, startTime types.TimeString, now time.Time, minNoticeMinutes int) error {
	if !isSameDay(bookingDate, now) {
		return nil
	}

	minAllowed, err := types.NewTimeString(now).AddMinutes(minNoticeMinutes)
	if err != nil {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	if startTime.IsBefore(minAllowed) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}

// validateWithinHours checks the interval against operating hours and the
// break window. Touching the break boundary is allowed.
func validateWithinHours(studio *domain.Studio, start, end types.TimeString) error {
	if start.IsBefore(studio.OpenTime) || end.IsAfter(studio.CloseTime) {
		return ErrOutsideOperatingHours
	}
	if studio.HasBreak() && start.IsBefore(*studio.BreakEnd) && end.IsAfter(*studio.BreakStart) {
		return ErrOutsideOperatingHours
	}
	return nil
}

// validateOnSlotGrid rejects start times that are not generated slots. The
// grid steps from open time in gap-sized increments, so a bookable start is
// exactly a multiple of the gap past opening. Called after the operating
// hours check, which guarantees start >= open.
func validateOnSlotGrid(studio *domain.Studio, start types.TimeString) error {
	gap := studio.SlotGapMinutes
	if gap <= 0 {
		gap = domain.DefaultSlotGapMinutes
	}

	openMinutes, err := studio.OpenTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid studio open time: %v", ErrInternal, err)
	}
	startMinutes, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if (startMinutes-openMinutes)%gap != 0 {
		return fmt.Errorf("%w: start time %s is not on the %d-minute slot grid", ErrInvalidInput, start, gap)
	}
	return nil
}

// hasConflict reports whether the interval overlaps any occupying booking.
// Boundary-touching intervals do not conflict.
func hasConflict(start, end types.TimeString, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		if !booking.Occupies() {
			continue
		}
		if booking.StartTime.IsBefore(end) && booking.EndTime.IsAfter(start) {
			return true
		}
	}
	return false
}

func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
