package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiokita/booking-service/internal/domain"
	studioRepo "github.com/studiokita/booking-service/internal/infra/storage/studio"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetByStudioWithFilter(ctx context.Context, filter domain.StudioBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeStudioRepo struct {
	studio    *domain.Studio
	studioErr error
	layout    *domain.StudioLayout
	layoutErr error
}

func (f *fakeStudioRepo) GetByID(ctx context.Context, id int64) (*domain.Studio, error) {
	return f.studio, f.studioErr
}

func (f *fakeStudioRepo) GetLayoutByID(ctx context.Context, id int64) (*domain.StudioLayout, error) {
	return f.layout, f.layoutErr
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type fakeMetrics struct{ failOpens int }

func (f *fakeMetrics) IncAvailabilityFailOpen() { f.failOpens++ }

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func fixtureStudio() *domain.Studio {
	return &domain.Studio{
		ID:             1,
		Name:           "Sunset Studio",
		OpenTime:       "09:00",
		CloseTime:      "18:00",
		SlotGapMinutes: 60,
		Tier:           domain.TierGold,
	}
}

func fixtureLayout() *domain.StudioLayout {
	return &domain.StudioLayout{
		ID:            2,
		StudioID:      1,
		Name:          "Loft A",
		MinutePackage: 60,
		Active:        true,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, studios *fakeStudioRepo, metrics MetricsCollector, failOpen bool) *UseCase {
	uc := NewUseCase(bookings, studios, metrics, failOpen, noopLogger{})
	uc.timeProvider = &fixedTime{now: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed},
		{StartTime: "14:00", EndTime: "15:00", Status: domain.StatusConfirmed},
	}}
	studios := &fakeStudioRepo{studio: fixtureStudio(), layout: fixtureLayout()}

	uc := newTestUseCase(bookings, studios, nil, true)

	resp, err := uc.Execute(context.Background(), &Request{
		StudioID: 1,
		LayoutID: 2,
		Date:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 9)
	assert.False(t, resp.Degraded)

	unavailable := 0
	for _, slot := range resp.Slots {
		if !slot.Available {
			unavailable++
		}
	}
	assert.Equal(t, 2, unavailable)
}

func TestExecuteIgnoreBookings(t *testing.T) {
	bookings := &fakeBookingRepo{err: errors.New("should not be queried")}
	studios := &fakeStudioRepo{studio: fixtureStudio(), layout: fixtureLayout()}

	uc := newTestUseCase(bookings, studios, nil, true)

	resp, err := uc.Execute(context.Background(), &Request{
		StudioID:       1,
		LayoutID:       2,
		Date:           time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		IgnoreBookings: true,
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 9)
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
	}
}

func TestExecuteLayoutChecks(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		studios := &fakeStudioRepo{layoutErr: studioRepo.ErrLayoutNotFound}
		uc := newTestUseCase(&fakeBookingRepo{}, studios, nil, true)

		_, err := uc.Execute(context.Background(), &Request{StudioID: 1, LayoutID: 2, Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)})
		assert.ErrorIs(t, err, ErrLayoutNotFound)
	})

	t.Run("WrongStudio", func(t *testing.T) {
		layout := fixtureLayout()
		layout.StudioID = 99
		studios := &fakeStudioRepo{studio: fixtureStudio(), layout: layout}
		uc := newTestUseCase(&fakeBookingRepo{}, studios, nil, true)

		_, err := uc.Execute(context.Background(), &Request{StudioID: 1, LayoutID: 2, Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)})
		assert.ErrorIs(t, err, ErrLayoutNotFound)
	})

	t.Run("Inactive", func(t *testing.T) {
		layout := fixtureLayout()
		layout.Active = false
		studios := &fakeStudioRepo{studio: fixtureStudio(), layout: layout}
		uc := newTestUseCase(&fakeBookingRepo{}, studios, nil, true)

		_, err := uc.Execute(context.Background(), &Request{StudioID: 1, LayoutID: 2, Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)})
		assert.ErrorIs(t, err, ErrLayoutInactive)
	})
}

func TestExecutePastDate(t *testing.T) {
	studios := &fakeStudioRepo{studio: fixtureStudio(), layout: fixtureLayout()}
	uc := newTestUseCase(&fakeBookingRepo{}, studios, nil, true)

	_, err := uc.Execute(context.Background(), &Request{
		StudioID: 1,
		LayoutID: 2,
		Date:     time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecuteAdvanceBookingWindow(t *testing.T) {
	studio := fixtureStudio()
	studio.AdvanceBookingDays = 7
	studios := &fakeStudioRepo{studio: studio, layout: fixtureLayout()}
	uc := newTestUseCase(&fakeBookingRepo{}, studios, nil, true)

	_, err := uc.Execute(context.Background(), &Request{
		StudioID: 1,
		LayoutID: 2,
		Date:     time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)

	// The last day inside the window is fine.
	_, err = uc.Execute(context.Background(), &Request{
		StudioID: 1,
		LayoutID: 2,
		Date:     time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
}

func TestExecuteFailOpenServesDefaults(t *testing.T) {
	metrics := &fakeMetrics{}
	studios := &fakeStudioRepo{studioErr: errors.New("connection refused"), layout: fixtureLayout()}
	uc := newTestUseCase(&fakeBookingRepo{}, studios, metrics, true)

	resp, err := uc.Execute(context.Background(), &Request{
		StudioID: 1,
		LayoutID: 2,
		Date:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.True(t, resp.Degraded)
	assert.Len(t, resp.Slots, 9) // defaults: 09:00-18:00 with 60-minute gap
	assert.Equal(t, 1, metrics.failOpens)
}

func TestExecuteBookingsReadFailOpenServesFreeDay(t *testing.T) {
	metrics := &fakeMetrics{}
	bookings := &fakeBookingRepo{err: errors.New("connection refused")}
	studios := &fakeStudioRepo{studio: fixtureStudio(), layout: fixtureLayout()}
	uc := newTestUseCase(bookings, studios, metrics, true)

	resp, err := uc.Execute(context.Background(), &Request{
		StudioID: 1,
		LayoutID: 2,
		Date:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.True(t, resp.Degraded)
	require.Len(t, resp.Slots, 9)
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
	}
	assert.Equal(t, 1, metrics.failOpens)
}

func TestExecuteBookingsReadFailClosedRefuses(t *testing.T) {
	metrics := &fakeMetrics{}
	bookings := &fakeBookingRepo{err: errors.New("connection refused")}
	studios := &fakeStudioRepo{studio: fixtureStudio(), layout: fixtureLayout()}
	uc := newTestUseCase(bookings, studios, metrics, false)

	_, err := uc.Execute(context.Background(), &Request{
		StudioID: 1,
		LayoutID: 2,
		Date:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, metrics.failOpens)
}

func TestExecuteFailClosedRefuses(t *testing.T) {
	studios := &fakeStudioRepo{studioErr: errors.New("connection refused"), layout: fixtureLayout()}
	uc := newTestUseCase(&fakeBookingRepo{}, studios, nil, false)

	_, err := uc.Execute(context.Background(), &Request{
		StudioID: 1,
		LayoutID: 2,
		Date:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrConfigUnavailable)
}

func TestExecuteStudioNotFoundIsNotDegraded(t *testing.T) {
	metrics := &fakeMetrics{}
	studios := &fakeStudioRepo{studioErr: studioRepo.ErrStudioNotFound, layout: fixtureLayout()}
	uc := newTestUseCase(&fakeBookingRepo{}, studios, metrics, true)

	_, err := uc.Execute(context.Background(), &Request{
		StudioID: 1,
		LayoutID: 2,
		Date:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrStudioNotFound)
	assert.Zero(t, metrics.failOpens)
}

func TestExecuteInvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeStudioRepo{}, nil, true)

	_, err := uc.Execute(context.Background(), &Request{StudioID: 0, LayoutID: 2, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{StudioID: 1, LayoutID: 0, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{StudioID: 1, LayoutID: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
