package create_booking

import (
	"time"

	"github.com/studiokita/booking-service/pkg/types"
)

// Request is a booking submission. Prices never come from the client: the
// total is computed server side from the layout and the named addon.
type Request struct {
	StudioID int64
	LayoutID int64

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	Date      time.Time        // date only, no clock part
	StartTime types.TimeString // e.g. "10:00"

	AddonName *string // must match a layout addon by name

	PaymentMethod string // cash | bank_transfer | fpx
	PaymentType   string // full | deposit

	Notes *string
}

// Response is the created booking.
type Response struct {
	ID        int64
	Reference string

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

	PaymentMethod string
	PaymentType   string
	Status        string

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
