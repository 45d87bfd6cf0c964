package get_available_slots

import (
	"time"

	"github.com/studiokita/booking-service/internal/domain"
	"github.com/studiokita/booking-service/pkg/types"
)

// slotParams is the resolved configuration slot generation runs on. It is
// normally taken from the studio row; the fail-open path substitutes
// defaults.
type slotParams struct {
	OpenTime                types.TimeString
	CloseTime               types.TimeString
	BreakStart              *types.TimeString
	BreakEnd                *types.TimeString
	SlotGapMinutes          int
	MinBookingNoticeMinutes int
	AdvanceBookingDays      int
}

func paramsFromStudio(studio *domain.Studio) slotParams {
	return slotParams{
		OpenTime:                studio.OpenTime,
		CloseTime:               studio.CloseTime,
		BreakStart:              studio.BreakStart,
		BreakEnd:                studio.BreakEnd,
		SlotGapMinutes:          studio.SlotGapMinutes,
		MinBookingNoticeMinutes: studio.MinBookingNoticeMinutes,
		AdvanceBookingDays:      studio.AdvanceBookingDays,
	}
}

func defaultParams() slotParams {
	return slotParams{
		OpenTime:                types.TimeString(domain.DefaultOpenTime),
		CloseTime:               types.TimeString(domain.DefaultCloseTime),
		SlotGapMinutes:          domain.DefaultSlotGapMinutes,
		MinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:      domain.DefaultAdvanceBookingDays,
	}
}

// generateCandidateStarts walks the day grid from open time in gap-sized
// steps. A candidate survives when the full booking interval fits before
// closing and does not cut into the break window.
func generateCandidateStarts(params slotParams, durationMinutes int) ([]types.TimeString, error) {
	gap := params.SlotGapMinutes
	if gap <= 0 {
		gap = domain.DefaultSlotGapMinutes
	}

	starts := make([]types.TimeString, 0)
	current := params.OpenTime

	for current.IsBefore(params.CloseTime) {
		end, err := current.AddMinutes(durationMinutes)
		if err != nil {
			// Interval would cross midnight; nothing later fits either.
			break
		}
		if end.IsAfter(params.CloseTime) {
			break
		}

		if !overlapsBreak(current, end, params.BreakStart, params.BreakEnd) {
			starts = append(starts, current)
		}

		current, err = current.AddMinutes(gap)
		if err != nil {
			break
		}
	}

	return starts, nil
}

// overlapsBreak reports whether [start, end) cuts into the break window.
// Intervals that merely touch the break boundaries do not overlap.
func overlapsBreak(start, end types.TimeString, breakStart, breakEnd *types.TimeString) bool {
	if breakStart == nil || breakEnd == nil {
		return false
	}
	return start.IsBefore(*breakEnd) && end.IsAfter(*breakStart)
}

// filterPastStarts drops starts that are already unreachable today: anything
// earlier than now plus the studio's minimum notice. Dates other than today
// pass through untouched.
func filterPastStarts(starts []types.TimeString, date, now time.Time, minNoticeMinutes int) []types.TimeString {
	if !isSameDay(date, now) {
		return starts
	}

	earliest, err := types.NewTimeString(now).AddMinutes(minNoticeMinutes)
	if err != nil {
		// Notice pushes past midnight; nothing today is bookable.
		return []types.TimeString{}
	}

	filtered := make([]types.TimeString, 0, len(starts))
	for _, start := range starts {
		if !start.IsBefore(earliest) {
			filtered = append(filtered, start)
		}
	}
	return filtered
}

// markAvailability builds the response slots, flagging each candidate whose
// interval overlaps an occupying booking. Boundary-touching intervals do not
// conflict: a booking ending 11:00 leaves the 11:00 slot free.
func markAvailability(starts []types.TimeString, durationMinutes int, bookings []*domain.Booking) []Slot {
	slots := make([]Slot, 0, len(starts))

	for _, start := range starts {
		end, err := start.AddMinutes(durationMinutes)
		if err != nil {
			continue
		}

		available := true
		for _, booking := range bookings {
			if !booking.Occupies() {
				continue
			}
			if booking.StartTime.IsBefore(end) && booking.EndTime.IsAfter(start) {
				available = false
				break
			}
		}

		slots = append(slots, Slot{
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: durationMinutes,
			Available:       available,
		})
	}

	return slots
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
