package get_available_slots

import (
	"github.com/studiokita/booking-service/internal/domain"
	getAvailableSlots "github.com/studiokita/booking-service/internal/usecase/get_available_slots"
)

// SlotResponse is one candidate slot in the day grid.
type SlotResponse struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// AvailableSlotsResponse is the HTTP response model.
type AvailableSlotsResponse struct {
	StudioID int64          `json:"studioId"`
	LayoutID int64          `json:"layoutId"`
	Date     string         `json:"date"`
	Slots    []SlotResponse `json:"slots"`
	Degraded bool           `json:"degraded,omitempty"`
}

// FromUseCaseResponse converts the usecase result to the HTTP model.
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:       s.StartTime.String(),
			EndTime:         s.EndTime.String(),
			DurationMinutes: s.DurationMinutes,
			Available:       s.Available,
		}
	}
	return &AvailableSlotsResponse{
		StudioID: resp.StudioID,
		LayoutID: resp.LayoutID,
		Date:     resp.Date.Format(domain.DateFormat),
		Slots:    slots,
		Degraded: resp.Degraded,
	}
}
