package models

import (
	"errors"
	"time"

	"github.com/studiokita/booking-service/internal/domain"
	"github.com/studiokita/booking-service/pkg/types"
)

// ErrInvalidStatus is returned for unknown status strings in filters.
var ErrInvalidStatus = errors.New("invalid booking status")

// CancelBookingRequest cancels a booking. ByStudio is set on the staff
// endpoint; the public cancel-by-reference path leaves it false.
type CancelBookingRequest struct {
	UserID             int64
	ByStudio           bool
	CancellationReason string
}

// UpdateStatusRequest moves a booking through the state machine.
type UpdateStatusRequest struct {
	UserID int64
	Status string
}

// GetStudioBookingsRequest lists a studio's bookings for staff.
type GetStudioBookingsRequest struct {
	UserID          int64
	StudioID        int64
	LayoutID        *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	IncludeReleased bool
}

// ToDomainFilter converts the request into a repository filter.
func (r *GetStudioBookingsRequest) ToDomainFilter() (domain.StudioBookingsFilter, error) {
	filter := domain.StudioBookingsFilter{
		StudioID:        r.StudioID,
		LayoutID:        r.LayoutID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeReleased: r.IncludeReleased,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// BookingResponse is the service-level booking view. StaffNotes is filled
// only on staff endpoints.
type BookingResponse struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`

	StudioID int64 `json:"studioId"`
	LayoutID int64 `json:"layoutId"`

	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	CustomerPhone string `json:"customerPhone"`

	BookingDate     time.Time        `json:"bookingDate"`
	StartTime       types.TimeString `json:"startTime"`
	EndTime         types.TimeString `json:"endTime"`
	DurationMinutes int              `json:"durationMinutes"`

	AddonName  *string `json:"addonName,omitempty"`
	TotalPrice float64 `json:"totalPrice"`

	PaymentMethod string `json:"paymentMethod"`
	PaymentType   string `json:"paymentType"`
	Status        string `json:"status"`

	Notes      *string `json:"notes,omitempty"`
	StaffNotes *string `json:"staffNotes,omitempty"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse wraps a list of bookings.
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking converts a booking for the public surface: internal
// staff notes are stripped.
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := fromDomain(b)
	resp.StaffNotes = nil
	return resp
}

// FromDomainBookingStaff converts a booking for staff endpoints.
func FromDomainBookingStaff(b *domain.Booking) *BookingResponse {
	return fromDomain(b)
}

func fromDomain(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference,
		StudioID:           b.StudioID,
		LayoutID:           b.LayoutID,
		CustomerName:       b.CustomerName,
		CustomerEmail:      b.CustomerEmail,
		CustomerPhone:      b.CustomerPhone,
		BookingDate:        b.BookingDate,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		DurationMinutes:    b.DurationMinutes,
		AddonName:          b.AddonName,
		TotalPrice:         b.TotalPrice,
		PaymentMethod:      string(b.PaymentMethod),
		PaymentType:        string(b.PaymentType),
		Status:             string(b.Status),
		Notes:              b.Notes,
		StaffNotes:         b.StaffNotes,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList converts a staff booking list.
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	out := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = FromDomainBookingStaff(b)
	}
	return &BookingListResponse{Bookings: out, Total: len(out)}
}
