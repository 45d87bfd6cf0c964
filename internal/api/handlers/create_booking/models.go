package create_booking

import (
	"time"

	"github.com/studiokita/booking-service/internal/domain"
	createBooking "github.com/studiokita/booking-service/internal/usecase/create_booking"
	"github.com/studiokita/booking-service/pkg/types"
)

// CreateBookingRequest is the HTTP request model. No price fields: the total
// is computed server side.
type CreateBookingRequest struct {
	StudioID int64 `json:"studioId"`
	LayoutID int64 `json:"layoutId"`

	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	CustomerPhone string `json:"customerPhone"`

	BookingDate string `json:"bookingDate"` // "2026-09-10"
	StartTime   string `json:"startTime"`   // "10:00"

	AddonName *string `json:"addonName,omitempty"`

	PaymentMethod string `json:"paymentMethod"`
	PaymentType   string `json:"paymentType"`

	Notes *string `json:"notes,omitempty"`
}

// BookingResponse is the HTTP response model.
type BookingResponse struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`

	StudioID int64 `json:"studioId"`
	LayoutID int64 `json:"layoutId"`

	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	CustomerPhone string `json:"customerPhone"`

	BookingDate     string `json:"bookingDate"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`

	AddonName  *string `json:"addonName,omitempty"`
	TotalPrice float64 `json:"totalPrice"`

	PaymentMethod string `json:"paymentMethod"`
	PaymentType   string `json:"paymentType"`
	Status        string `json:"status"`

	Notes *string `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest parses the date and time fields into the usecase model.
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		StudioID:      r.StudioID,
		LayoutID:      r.LayoutID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Date:          bookingDate,
		StartTime:     startTime,
		AddonName:     r.AddonName,
		PaymentMethod: r.PaymentMethod,
		PaymentType:   r.PaymentType,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse converts the usecase result to the HTTP model.
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		Reference:       resp.Reference,
		StudioID:        resp.StudioID,
		LayoutID:        resp.LayoutID,
		CustomerName:    resp.CustomerName,
		CustomerEmail:   resp.CustomerEmail,
		CustomerPhone:   resp.CustomerPhone,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		AddonName:       resp.AddonName,
		TotalPrice:      resp.TotalPrice,
		PaymentMethod:   resp.PaymentMethod,
		PaymentType:     resp.PaymentType,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
