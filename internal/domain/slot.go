package domain

import "github.com/studiokita/booking-service/pkg/types"

// TimeSlot is one candidate start time within a studio's operating hours.
// Slots are transient: recomputed from bookings and studio configuration on
// every availability query, never persisted.
type TimeSlot struct {
	Time      types.TimeString
	Available bool
}
