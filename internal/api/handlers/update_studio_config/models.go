package update_studio_config

import "github.com/studiokita/booking-service/internal/service/studios/models"

// UpdateStudioConfigRequest is the HTTP request body. Omitted fields are
// left unchanged. Sending a break object rewrites the break window; a break
// object with null start and end removes it; omitting the key leaves it
// alone.
type UpdateStudioConfigRequest struct {
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`

	Break *BreakWindow `json:"break,omitempty"`

	SlotGapMinutes          *int `json:"slotGapMinutes,omitempty"`
	MinBookingNoticeMinutes *int `json:"minBookingNoticeMinutes,omitempty"`
	AdvanceBookingDays      *int `json:"advanceBookingDays,omitempty"`

	CalendarID *string `json:"calendarId,omitempty"`
}

// BreakWindow is the midday break in the request body.
type BreakWindow struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// ToServiceRequest converts the HTTP body into the service request.
func (r *UpdateStudioConfigRequest) ToServiceRequest(studioID, userID int64) *models.UpdateStudioConfigRequest {
	req := &models.UpdateStudioConfigRequest{
		UserID:                  userID,
		StudioID:                studioID,
		OpenTime:                r.OpenTime,
		CloseTime:               r.CloseTime,
		SlotGapMinutes:          r.SlotGapMinutes,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		CalendarID:              r.CalendarID,
	}

	if r.Break != nil {
		req.SetBreak = true
		req.BreakStart = r.Break.Start
		req.BreakEnd = r.Break.End
	}

	return req
}
