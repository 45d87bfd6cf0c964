package bookings

import (
	"context"

	"github.com/studiokita/booking-service/internal/domain"
)

// BookingRepository is the persistence surface the service needs.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	GetByStudioWithFilter(ctx context.Context, filter domain.StudioBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error
}

// StudioRepository resolves studios for access checks.
type StudioRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Studio, error)
}

// Notifier fires cancellation side effects in the background.
type Notifier interface {
	BookingCancelled(booking *domain.Booking, studio *domain.Studio)
}

// Logger is the minimal logging surface the service needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
