package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiokita/booking-service/internal/domain"
	"github.com/studiokita/booking-service/internal/infra/slotlock"
	bookingRepo "github.com/studiokita/booking-service/internal/infra/storage/booking"
	"github.com/studiokita/booking-service/pkg/ptr"
	"github.com/studiokita/booking-service/pkg/types"
)

type fakeBookingRepo struct {
	existing  []*domain.Booking
	createErr error
	created   *domain.Booking
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	booking.ID = 42
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	f.created = booking
	return booking, nil
}

func (f *fakeBookingRepo) GetByStudioWithFilter(ctx context.Context, filter domain.StudioBookingsFilter) ([]*domain.Booking, error) {
	return f.existing, nil
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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLocker struct {
	acquireErr error
	acquired   int
	released   int
}

func (f *fakeLocker) Acquire(ctx context.Context, studioID, layoutID int64, date, startTime string) (string, error) {
	if f.acquireErr != nil {
		return "", f.acquireErr
	}
	f.acquired++
	return "token", nil
}

func (f *fakeLocker) Release(ctx context.Context, studioID, layoutID int64, date, startTime, token string) error {
	f.released++
	return nil
}

type fakeNotifier struct {
	notified []*domain.Booking
}

func (f *fakeNotifier) BookingCreated(booking *domain.Booking, studio *domain.Studio, layout *domain.StudioLayout) {
	f.notified = append(f.notified, booking)
}

type fakeMetrics struct{ contention int }

func (f *fakeMetrics) IncSlotLockContention() { f.contention++ }

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

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
		Price:         150,
		MinutePackage: 90,
		Addons: domain.LayoutAddons{
			{Name: "extra lighting", Price: 50},
		},
		Active: true,
	}
}

func validRequest() *Request {
	return &Request{
		StudioID:      1,
		LayoutID:      2,
		CustomerName:  "Mei",
		CustomerEmail: "mei@example.com",
		CustomerPhone: "0123456789",
		Date:          time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		PaymentMethod: "cash",
		PaymentType:   "full",
	}
}

func newTestUseCase(bookings *fakeBookingRepo, studios *fakeStudioRepo, locker SlotLocker, notifier Notifier, metrics MetricsCollector) *UseCase {
	uc := NewUseCase(bookings, studios, locker, notifier, fakeTxManager{}, metrics, "60", noopLogger{})
	uc.timeProvider = &fixedTime{now: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute(t *testing.T) {
	bookings := &fakeBookingRepo{}
	studios := &fakeStudioRepo{studio: fixtureStudio(), layout: fixtureLayout()}
	notifier := &fakeNotifier{}

	uc := newTestUseCase(bookings, studios, nil, notifier, nil)

	req := validRequest()
	req.AddonName = ptr.Ptr("extra lighting")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// 90-minute package starting 10:00 ends 11:30.
	assert.Equal(t, types.TimeString("11:30"), resp.EndTime)
	assert.Equal(t, 90, resp.DurationMinutes)

	// RM150 package plus RM50 addon.
	assert.Equal(t, 200.0, resp.TotalPrice)

	assert.Equal(t, "pending", resp.Status)
	assert.Contains(t, resp.Reference, "BK-")

	// Local numbers are normalized to the country code form.
	assert.Equal(t, "60123456789", resp.CustomerPhone)

	require.Len(t, notifier.notified, 1)
	assert.Equal(t, resp.ID, notifier.notified[0].ID)
}

func TestExecuteWithoutAddon(t *testing.T) {
	studios := &fakeStudioRepo{studio: fixtureStudio(), layout: fixtureLayout()}
	uc := newTestUseCase(&fakeBookingRepo{}, studios, nil, nil, nil)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 150.0, resp.TotalPrice)
	assert.Nil(t, resp.AddonName)
}

func TestExecuteUnknownAddon(t *testing.T) {
	studios := &fakeStudioRepo{studio: fixtureStudio(), layout: fixtureLayout()}
	uc := newTestUseCase(&fakeBookingRepo{}, studios, nil, nil, nil)

	req := validRequest()
	req.AddonName = ptr.Ptr("smoke machine")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAddonNotFound)
}

func TestExecuteSlotConflict(t *testing.T) {
	bookings := &fakeBookingRepo{existing: []*domain.Booking{
		{StartTime: "09:30", EndTime: "11:00", Status: domain.StatusConfirmed},
	}}
	studios := &fakeStudioRepo{studio: fixtureStudio(), layout: fixtureLayout()}
	uc := newTestUseCase(bookings, studios, nil, nil, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecuteBoundaryTouchIsNotConflict(t *testing.T) {
	bookings := &fakeBookingRepo{existing: []*domain.Booking{
		{StartTime: "09:00", EndTime: "10:00", Status: domain.StatusConfirmed},
		{StartTime: "11:30", EndTime: "13:00", Status: domain.StatusConfirmed},
	}}
	studios := &fakeStudioRepo{studio: fixtureStudio(), layout: fixtureLayout()}
	uc := newTestUseCase(bookings, studios, nil, nil, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecuteReleasedBookingsDoNotBlock(t *testing.T) {
	bookings := &fakeBookingRepo{existing: []*domain.Booking{
		{StartTime: "10:00", EndTime: "11:30", Status: domain.StatusCancelledByCustomer},
	}}
	studios := &fakeStudioRepo{studio: fixtureStudio(), layout: fixtureLayout()}
	uc := newTestUseCase(bookings, studios, nil, nil, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecuteUniqueConstraintMapsToSlotNotAvailable(t *testing.T) {
	bookings := &fakeBookingRepo{createErr: bookingRepo.ErrSlotTaken}
	studios := &fakeStudioRepo{studio: fixtureStudio(), layout: fixtureLayout()}
	uc := newTestUseCase(bookings, studios, nil, nil, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecuteFPXTierGate(t *testing.T) {
	t.Run("GoldRefused", func(t *testing.T) {
		studios := &fakeStudioRepo{studio: fixtureStudio(), layout: fixtureLayout()}
		uc := newTestUseCase(&fakeBookingRepo{}, studios, nil, nil, nil)

		req := validRequest()
		req.PaymentMethod = "fpx"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrFeatureNotAllowed)
	})

	t.Run("PlatinumAllowed", func(t *testing.T) {
		studio := fixtureStudio()
		studio.Tier = domain.TierPlatinum
		studios := &fakeStudioRepo{studio: studio, layout: fixtureLayout()}
		uc := newTestUseCase(&fakeBookingRepo{}, studios, nil, nil, nil)

		req := validRequest()
		req.PaymentMethod = "fpx"

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "fpx", resp.PaymentMethod)
	})
}

func TestExecuteSlotLock(t *testing.T) {
	t.Run("AcquiredAndReleased", func(t *testing.T) {
		locker := &fakeLocker{}
		studios := &fakeStudioRepo{studio: fixtureStudio(), layout: fixtureLayout()}
		uc := newTestUseCase(&fakeBookingRepo{}, studios, locker, nil, nil)

		_, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, 1, locker.acquired)
		assert.Equal(t, 1, locker.released)
	})

	t.Run("ContentionRejects", func(t *testing.T) {
		locker := &fakeLocker{acquireErr: slotlock.ErrSlotLocked}
		metrics := &fakeMetrics{}
		studios := &fakeStudioRepo{studio: fixtureStudio(), layout: fixtureLayout()}
		uc := newTestUseCase(&fakeBookingRepo{}, studios, locker, nil, metrics)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
		assert.Equal(t, 1, metrics.contention)
	})

	t.Run("LockInfraFailureProceeds", func(t *testing.T) {
		locker := &fakeLocker{acquireErr: assert.AnError}
		studios := &fakeStudioRepo{studio: fixtureStudio(), layout: fixtureLayout()}
		uc := newTestUseCase(&fakeBookingRepo{}, studios, locker, nil, nil)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.NoError(t, err)
	})
}

func TestExecuteOperatingHours(t *testing.T) {
	studios := &fakeStudioRepo{studio: fixtureStudio(), layout: fixtureLayout()}
	uc := newTestUseCase(&fakeBookingRepo{}, studios, nil, nil, nil)

	t.Run("BeforeOpen", func(t *testing.T) {
		req := validRequest()
		req.StartTime = "08:00"
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideOperatingHours)
	})

	t.Run("RunsPastClose", func(t *testing.T) {
		req := validRequest()
		req.StartTime = "17:00" // 90 minutes ends 18:30
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideOperatingHours)
	})

	t.Run("EndsExactlyAtClose", func(t *testing.T) {
		studio := fixtureStudio()
		studio.SlotGapMinutes = 30
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeStudioRepo{studio: studio, layout: fixtureLayout()}, nil, nil, nil)

		req := validRequest()
		req.StartTime = "16:30"
		_, err := uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("CutsIntoBreak", func(t *testing.T) {
		studio := fixtureStudio()
		studio.BreakStart = ptr.Ptr(types.TimeString("13:00"))
		studio.BreakEnd = ptr.Ptr(types.TimeString("14:00"))
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeStudioRepo{studio: studio, layout: fixtureLayout()}, nil, nil, nil)

		req := validRequest()
		req.StartTime = "12:30" // ends 14:00, overlaps 13:00-14:00
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideOperatingHours)
	})
}

func TestExecuteOffGridStart(t *testing.T) {
	offGrid := []types.TimeString{"10:15", "10:30", "09:01"}

	for _, start := range offGrid {
		t.Run(start.String(), func(t *testing.T) {
			bookings := &fakeBookingRepo{}
			studios := &fakeStudioRepo{studio: fixtureStudio(), layout: fixtureLayout()}
			uc := newTestUseCase(bookings, studios, nil, nil, nil)

			req := validRequest()
			req.StartTime = start

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, bookings.created)
		})
	}

	// The grid steps from open time, so a half-hour opening shifts every
	// bookable start by half an hour.
	t.Run("GridFollowsOpenTime", func(t *testing.T) {
		studio := fixtureStudio()
		studio.OpenTime = "09:30"
		bookings := &fakeBookingRepo{}
		uc := newTestUseCase(bookings, &fakeStudioRepo{studio: studio, layout: fixtureLayout()}, nil, nil, nil)

		req := validRequest()
		req.StartTime = "10:30"

		_, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, bookings.created)
		assert.Equal(t, types.TimeString("10:30"), bookings.created.StartTime)
	})
}

func TestExecuteMinimumNotice(t *testing.T) {
	studio := fixtureStudio()
	studio.MinBookingNoticeMinutes = 120
	studios := &fakeStudioRepo{studio: studio, layout: fixtureLayout()}

	uc := newTestUseCase(&fakeBookingRepo{}, studios, nil, nil, nil)
	uc.timeProvider = &fixedTime{now: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)}

	// Same-day 10:00 start violates the 120-minute notice at 09:00.
	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooLateToBook)

	// 11:00 is exactly at the notice boundary.
	req := validRequest()
	req.StartTime = "11:00"
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecuteInvalidInput(t *testing.T) {
	studios := &fakeStudioRepo{studio: fixtureStudio(), layout: fixtureLayout()}
	uc := newTestUseCase(&fakeBookingRepo{}, studios, nil, nil, nil)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"MissingName", func(r *Request) { r.CustomerName = "  " }},
		{"MissingPhone", func(r *Request) { r.CustomerPhone = "" }},
		{"BadStartTime", func(r *Request) { r.StartTime = "25:00" }},
		{"BadPaymentMethod", func(r *Request) { r.PaymentMethod = "bitcoin" }},
		{"BadPaymentType", func(r *Request) { r.PaymentType = "half" }},
		{"ZeroStudio", func(r *Request) { r.StudioID = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecuteInvalidPhone(t *testing.T) {
	studios := &fakeStudioRepo{studio: fixtureStudio(), layout: fixtureLayout()}
	uc := newTestUseCase(&fakeBookingRepo{}, studios, nil, nil, nil)

	req := validRequest()
	req.CustomerPhone = "12-34"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidPhone)
}
