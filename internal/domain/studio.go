package domain

import (
	"time"

	"github.com/studiokita/booking-service/pkg/types"
)

// Studio is the tenant entity. Operating hours and the optional break window
// drive slot generation for every layout the studio owns.
type Studio struct {
	ID   int64
	Name string

	ContactEmail string
	ContactPhone string

	OpenTime  types.TimeString
	CloseTime types.TimeString

	// Optional midday break; both set or both nil.
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString

	SlotGapMinutes          int
	MinBookingNoticeMinutes int
	AdvanceBookingDays      int // 0 = unlimited

	Tier PackageTier

	OwnerUserID int64
	StaffIDs    []int64

	// Google Calendar id for confirmed-booking events; nil disables the
	// calendar side effect for this studio.
	CalendarID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StudioConfigUpdate carries a partial update of a studio's booking
// configuration. Nil fields are left unchanged; SetBreak distinguishes
// "clear the break" from "leave it alone".
type StudioConfigUpdate struct {
	OpenTime  *types.TimeString
	CloseTime *types.TimeString

	SetBreak   bool
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString

	SlotGapMinutes          *int
	MinBookingNoticeMinutes *int
	AdvanceBookingDays      *int

	CalendarID *string
}

// HasBreak reports whether a break window is configured.
func (s *Studio) HasBreak() bool {
	return s.BreakStart != nil && s.BreakEnd != nil
}

// HasAdvanceBookingLimit reports whether far-future dates are restricted.
func (s *Studio) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// IsStaff reports whether the user is the owner or a staff sub-account.
func (s *Studio) IsStaff(userID int64) bool {
	if userID == s.OwnerUserID {
		return true
	}
	for _, id := range s.StaffIDs {
		if id == userID {
			return true
		}
	}
	return false
}
