package reports

import (
	"context"

	"github.com/studiokita/booking-service/internal/domain"
)

// BookingRepository reads the rows being exported.
type BookingRepository interface {
	GetByStudioWithFilter(ctx context.Context, filter domain.StudioBookingsFilter) ([]*domain.Booking, error)
}

// StudioRepository resolves studios for access checks.
type StudioRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Studio, error)
}

// Logger is the minimal logging surface the service needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
