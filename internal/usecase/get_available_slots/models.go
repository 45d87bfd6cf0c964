package get_available_slots

import (
	"time"

	"github.com/studiokita/booking-service/pkg/types"
)

// Request asks for the bookable slots of one layout on one date.
type Request struct {
	StudioID int64
	LayoutID int64
	Date     time.Time // date only, no clock part

	// IgnoreBookings skips the occupancy read and marks every slot
	// available. Staff tooling uses it to inspect the raw grid.
	IgnoreBookings bool
}

// Response lists every candidate slot with its availability. Occupied slots
// are included but marked unavailable, so clients can render the full day
// grid; slots inside the minimum notice window are dropped outright.
type Response struct {
	StudioID int64
	LayoutID int64
	Date     time.Time
	Slots    []Slot

	// Degraded is set when the fail-open fallback produced this response
	// from default configuration instead of the studio's own.
	Degraded bool
}

// Slot is one candidate start time.
type Slot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString // start plus the layout's minute package
	DurationMinutes int
	Available       bool
}
