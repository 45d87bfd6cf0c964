package gcalendar

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/studiokita/booking-service/internal/domain"
)

// ErrNoCalendar is returned when the studio has no calendar configured.
var ErrNoCalendar = errors.New("gcalendar: studio has no calendar id")

// Logger is the minimal logging surface the client needs.
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client creates booking events on studio-owned Google Calendars using a
// service account. Each studio shares its calendar with the service account
// and stores the calendar id in its configuration.
type Client struct {
	service *calendar.Service
	log     Logger
}

func NewClient(ctx context.Context, credentialsFile string, log Logger) (*Client, error) {
	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("gcalendar: read credentials file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(credentialsJSON, calendar.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("gcalendar: parse credentials: %w", err)
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("gcalendar: create calendar service: %w", err)
	}

	return &Client{service: srv, log: log}, nil
}

// CreateBookingEvent inserts an event for a confirmed booking and returns
// the event id, stored with the booking for later cancellation.
func (c *Client) CreateBookingEvent(ctx context.Context, studio *domain.Studio, booking *domain.Booking, layoutName string) (string, error) {
	if studio.CalendarID == nil || *studio.CalendarID == "" {
		return "", ErrNoCalendar
	}

	start, err := combineDateTime(booking.BookingDate, booking.StartTime.String())
	if err != nil {
		return "", fmt.Errorf("gcalendar: booking %s start: %w", booking.Reference, err)
	}
	end, err := combineDateTime(booking.BookingDate, booking.EndTime.String())
	if err != nil {
		return "", fmt.Errorf("gcalendar: booking %s end: %w", booking.Reference, err)
	}

	event := &calendar.Event{
		Summary:     fmt.Sprintf("%s - %s (%s)", layoutName, booking.CustomerName, booking.Reference),
		Description: fmt.Sprintf("Booking %s\nCustomer: %s\nPhone: %s", booking.Reference, booking.CustomerName, booking.CustomerPhone),
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
		},
	}

	created, err := c.service.Events.Insert(*studio.CalendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("gcalendar: insert event for booking %s: %w", booking.Reference, err)
	}

	c.log.Info("Calendar event %s created for booking %s", created.Id, booking.Reference)
	return created.Id, nil
}

// DeleteBookingEvent removes a previously created event, used when a
// confirmed booking is cancelled.
func (c *Client) DeleteBookingEvent(ctx context.Context, calendarID, eventID string) error {
	if err := c.service.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("gcalendar: delete event %s: %w", eventID, err)
	}
	return nil
}

// Booking times are studio-local wall clock; events carry no explicit offset
// and inherit the calendar's zone.
func combineDateTime(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}
