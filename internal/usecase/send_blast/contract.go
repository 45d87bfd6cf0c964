package send_blast

import (
	"context"

	"github.com/studiokita/booking-service/internal/domain"
)

// BookingRepository supplies the recipient list.
type BookingRepository interface {
	GetCustomerPhonesByStudioID(ctx context.Context, studioID int64) ([]string, error)
}

// StudioRepository reads the studio for access and tier checks.
type StudioRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Studio, error)
}

// MessageSender delivers one message to a normalized phone number.
type MessageSender interface {
	SendMessage(ctx context.Context, phone, message string) error
}

// RateLimiter paces outgoing messages. *rate.Limiter satisfies it.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// MetricsCollector counts blast delivery results.
type MetricsCollector interface {
	IncBlastMessage(result string)
}

// Logger is the minimal logging surface the usecase needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
