package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/studiokita/booking-service/internal/domain"
)

const sideEffectTimeout = 30 * time.Second

// Notifier runs the side effects of a booking event: WhatsApp confirmation,
// PDF receipt, Google Calendar sync. Everything here is best effort. A
// booking is already committed when the notifier sees it, so failures are
// logged and counted but never propagate back to the customer.
type Notifier struct {
	sender   MessageSender    // nil when WhatsApp is disabled
	receipts ReceiptGenerator // nil when receipts are disabled
	calendar CalendarClient   // nil when calendar sync is disabled
	bookings BookingUpdater
	metrics  MetricsCollector // nil when metrics are disabled
	retry    RetryPolicy
	log      Logger
}

func NewNotifier(
	sender MessageSender,
	receipts ReceiptGenerator,
	calendar CalendarClient,
	bookings BookingUpdater,
	metrics MetricsCollector,
	retry RetryPolicy,
	log Logger,
) *Notifier {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 3
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}

	return &Notifier{
		sender:   sender,
		receipts: receipts,
		calendar: calendar,
		bookings: bookings,
		metrics:  metrics,
		retry:    retry,
		log:      log,
	}
}

// BookingCreated fires the post-submission side effects in the background.
// The caller's request finishes immediately.
func (n *Notifier) BookingCreated(booking *domain.Booking, studio *domain.Studio, layout *domain.StudioLayout) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()

		n.sendConfirmation(ctx, booking, studio, layout)
		n.sendReceipt(ctx, booking, studio, layout)
		n.syncCalendar(ctx, booking, studio, layout)
	}()
}

// BookingCancelled notifies the customer and removes the calendar event.
func (n *Notifier) BookingCancelled(booking *domain.Booking, studio *domain.Studio) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()

		if n.sender != nil {
			message := fmt.Sprintf(
				"Hi %s, your booking %s at %s on %s has been cancelled.",
				booking.CustomerName, booking.Reference, studio.Name,
				booking.BookingDate.Format("2006-01-02"),
			)
			n.sendWithRetry(ctx, "whatsapp", booking.CustomerPhone, message)
		}

		if n.calendar != nil && studio.CalendarID != nil && booking.CalendarEventID != nil {
			if err := n.calendar.DeleteBookingEvent(ctx, *studio.CalendarID, *booking.CalendarEventID); err != nil {
				n.fail("calendar", "Calendar event delete failed for booking %s: %v", booking.Reference, err)
			}
		}
	}()
}

func (n *Notifier) sendConfirmation(ctx context.Context, booking *domain.Booking, studio *domain.Studio, layout *domain.StudioLayout) {
	if n.sender == nil {
		return
	}

	message := fmt.Sprintf(
		"Hi %s, your booking is confirmed!\n\nReference: %s\nStudio: %s\nLayout: %s\nDate: %s\nTime: %s - %s\nTotal: RM %.2f",
		booking.CustomerName, booking.Reference, studio.Name, layout.Name,
		booking.BookingDate.Format("2006-01-02"), booking.StartTime, booking.EndTime,
		booking.TotalPrice,
	)
	n.sendWithRetry(ctx, "whatsapp", booking.CustomerPhone, message)
}

func (n *Notifier) sendReceipt(ctx context.Context, booking *domain.Booking, studio *domain.Studio, layout *domain.StudioLayout) {
	if n.receipts == nil || !studio.Tier.HasFeature(domain.FeatureReceiptPDF) {
		return
	}

	path, err := n.receipts.Generate(ctx, booking, studio, layout)
	if err != nil {
		n.fail("receipt", "Receipt generation failed for booking %s: %v", booking.Reference, err)
		return
	}

	if n.sender != nil {
		n.sendWithRetry(ctx, "whatsapp", booking.CustomerPhone,
			fmt.Sprintf("Your receipt for booking %s is ready: %s", booking.Reference, path))
	}
}

func (n *Notifier) syncCalendar(ctx context.Context, booking *domain.Booking, studio *domain.Studio, layout *domain.StudioLayout) {
	if n.calendar == nil || !studio.Tier.HasFeature(domain.FeatureGoogleCalendar) {
		return
	}
	if studio.CalendarID == nil || *studio.CalendarID == "" {
		return
	}

	eventID, err := n.calendar.CreateBookingEvent(ctx, studio, booking, layout.Name)
	if err != nil {
		n.fail("calendar", "Calendar sync failed for booking %s: %v", booking.Reference, err)
		return
	}

	if err := n.bookings.SetCalendarEventID(ctx, booking.ID, eventID); err != nil {
		n.log.Error("Failed to store calendar event id for booking %s: %v", booking.Reference, err)
	}
}

func (n *Notifier) sendWithRetry(ctx context.Context, channel, phone, message string) {
	var lastErr error
	for attempt := 1; attempt <= n.retry.MaxRetries; attempt++ {
		if err := n.sender.SendMessage(ctx, phone, message); err == nil {
			return
		} else {
			lastErr = err
		}

		if attempt < n.retry.MaxRetries {
			delay := n.retry.NextDelay(attempt)
			n.log.Warn("WhatsApp send attempt %d failed, retrying in %s: %v", attempt, delay, lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				n.fail(channel, "WhatsApp send to %s abandoned: %v", phone, ctx.Err())
				return
			}
		}
	}

	n.fail(channel, "WhatsApp send to %s failed after %d attempts: %v", phone, n.retry.MaxRetries, lastErr)
}

func (n *Notifier) fail(channel, format string, v ...interface{}) {
	n.log.Error(format, v...)
	if n.metrics != nil {
		n.metrics.IncNotificationFailure(channel)
	}
}
