package get_available_slots

import (
	"context"
	"time"

	"github.com/studiokita/booking-service/internal/domain"
)

// BookingRepository reads the bookings occupying slots on a date.
type BookingRepository interface {
	GetByStudioWithFilter(ctx context.Context, filter domain.StudioBookingsFilter) ([]*domain.Booking, error)
}

// StudioRepository reads studio configuration and layouts.
type StudioRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Studio, error)
	GetLayoutByID(ctx context.Context, id int64) (*domain.StudioLayout, error)
}

// TimeProvider abstracts the current time for testing.
type TimeProvider interface {
	Now() time.Time
}

// MetricsCollector counts fail-open fallbacks.
type MetricsCollector interface {
	IncAvailabilityFailOpen()
}

// Logger is the minimal logging surface the usecase needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
