package notify

import (
	"context"

	"github.com/studiokita/booking-service/internal/domain"
)

// Logger is the minimal logging surface the notifier needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MessageSender delivers WhatsApp text messages.
type MessageSender interface {
	SendMessage(ctx context.Context, phone, message string) error
}

// ReceiptGenerator renders a booking receipt PDF and returns its path.
type ReceiptGenerator interface {
	Generate(ctx context.Context, booking *domain.Booking, studio *domain.Studio, layout *domain.StudioLayout) (string, error)
}

// CalendarClient manages booking events on studio calendars.
type CalendarClient interface {
	CreateBookingEvent(ctx context.Context, studio *domain.Studio, booking *domain.Booking, layoutName string) (string, error)
	DeleteBookingEvent(ctx context.Context, calendarID, eventID string) error
}

// BookingUpdater persists notification outcomes back onto the booking.
type BookingUpdater interface {
	SetCalendarEventID(ctx context.Context, id int64, eventID string) error
}

// MetricsCollector counts notification failures.
type MetricsCollector interface {
	IncNotificationFailure(channel string)
}
