package create_booking

import (
	"context"
	"time"

	"github.com/studiokita/booking-service/internal/domain"
)

// BookingRepository persists bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByStudioWithFilter(ctx context.Context, filter domain.StudioBookingsFilter) ([]*domain.Booking, error)
}

// StudioRepository reads studio configuration and layouts.
type StudioRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Studio, error)
	GetLayoutByID(ctx context.Context, id int64) (*domain.StudioLayout, error)
}

// SlotLocker is the optional Redis mutex taken before the database
// transaction. nil disables the pre-lock.
type SlotLocker interface {
	Acquire(ctx context.Context, studioID, layoutID int64, date, startTime string) (string, error)
	Release(ctx context.Context, studioID, layoutID int64, date, startTime, token string) error
}

// Notifier fires post-commit side effects in the background.
type Notifier interface {
	BookingCreated(booking *domain.Booking, studio *domain.Studio, layout *domain.StudioLayout)
}

// TransactionManager runs the conflict check and insert atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider abstracts the current time for testing.
type TimeProvider interface {
	Now() time.Time
}

// MetricsCollector counts slot lock contention.
type MetricsCollector interface {
	IncSlotLockContention()
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
