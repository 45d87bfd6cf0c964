package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiokita/booking-service/internal/domain"
	bookingRepo "github.com/studiokita/booking-service/internal/infra/storage/booking"
	studioRepo "github.com/studiokita/booking-service/internal/infra/storage/studio"
	"github.com/studiokita/booking-service/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	byRef    map[string]*domain.Booking
	listed   []*domain.Booking
	filter   domain.StudioBookingsFilter

	updatedStatus domain.BookingStatus
	cancelStatus  domain.BookingStatus
	cancelReason  string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByReference(_ context.Context, reference string) (*domain.Booking, error) {
	b, ok := f.byRef[reference]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByStudioWithFilter(_ context.Context, filter domain.StudioBookingsFilter) ([]*domain.Booking, error) {
	f.filter = filter
	return f.listed, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updatedStatus = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, reason string) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.cancelStatus = status
	f.cancelReason = reason
	return nil
}

type fakeStudioRepo struct {
	studios map[int64]*domain.Studio
}

func (f *fakeStudioRepo) GetByID(_ context.Context, id int64) (*domain.Studio, error) {
	s, ok := f.studios[id]
	if !ok {
		return nil, studioRepo.ErrStudioNotFound
	}
	return s, nil
}

type fakeNotifier struct {
	cancelled *domain.Booking
}

func (f *fakeNotifier) BookingCancelled(booking *domain.Booking, _ *domain.Studio) {
	f.cancelled = booking
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

const (
	staffUserID    = int64(10)
	outsiderUserID = int64(99)
)

func fixtureBooking(status domain.BookingStatus) *domain.Booking {
	notes := "bring own props"
	staffNotes := "VIP customer"
	return &domain.Booking{
		ID:              1,
		Reference:       "BK-A1B2C3D4",
		StudioID:        5,
		LayoutID:        7,
		CustomerName:    "Aisyah",
		CustomerPhone:   "60123456789",
		BookingDate:     time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		EndTime:         "11:00",
		DurationMinutes: 60,
		TotalPrice:      150,
		PaymentMethod:   domain.PaymentCash,
		PaymentType:     domain.PaymentFull,
		Status:          status,
		Notes:           &notes,
		StaffNotes:      &staffNotes,
	}
}

func fixtureSvc(booking *domain.Booking) (*Service, *fakeBookingRepo, *fakeNotifier) {
	bRepo := &fakeBookingRepo{
		bookings: map[int64]*domain.Booking{},
		byRef:    map[string]*domain.Booking{},
	}
	if booking != nil {
		bRepo.bookings[booking.ID] = booking
		bRepo.byRef[booking.Reference] = booking
	}
	sRepo := &fakeStudioRepo{studios: map[int64]*domain.Studio{
		5: {ID: 5, Name: "Studio Lima", StaffIDs: []int64{staffUserID}},
	}}
	notifier := &fakeNotifier{}
	return NewService(bRepo, sRepo, notifier, noopLogger{}), bRepo, notifier
}

func TestGetByID_StaffOnly(t *testing.T) {
	svc, _, _ := fixtureSvc(fixtureBooking(domain.StatusConfirmed))

	resp, err := svc.GetByID(context.Background(), 1, staffUserID)
	require.NoError(t, err)
	assert.Equal(t, "BK-A1B2C3D4", resp.Reference)
	require.NotNil(t, resp.StaffNotes)
	assert.Equal(t, "VIP customer", *resp.StaffNotes)

	_, err = svc.GetByID(context.Background(), 1, outsiderUserID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _, _ := fixtureSvc(nil)

	_, err := svc.GetByID(context.Background(), 42, staffUserID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByReference_StripsStaffNotes(t *testing.T) {
	svc, _, _ := fixtureSvc(fixtureBooking(domain.StatusPending))

	resp, err := svc.GetByReference(context.Background(), "BK-A1B2C3D4")
	require.NoError(t, err)
	assert.Equal(t, "Aisyah", resp.CustomerName)
	assert.Nil(t, resp.StaffNotes, "reference lookups must not expose staff notes")

	_, err = svc.GetByReference(context.Background(), "BK-MISSING1")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetStudioBookings(t *testing.T) {
	svc, bRepo, _ := fixtureSvc(nil)
	bRepo.listed = []*domain.Booking{fixtureBooking(domain.StatusConfirmed)}

	status := "confirmed"
	resp, err := svc.GetStudioBookings(context.Background(), &models.GetStudioBookingsRequest{
		UserID:   staffUserID,
		StudioID: 5,
		Status:   &status,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	require.NotNil(t, bRepo.filter.Status)
	assert.Equal(t, domain.StatusConfirmed, *bRepo.filter.Status)
}

func TestGetStudioBookings_AccessDenied(t *testing.T) {
	svc, _, _ := fixtureSvc(nil)

	_, err := svc.GetStudioBookings(context.Background(), &models.GetStudioBookingsRequest{
		UserID:   outsiderUserID,
		StudioID: 5,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetStudioBookings_InvalidStatus(t *testing.T) {
	svc, _, _ := fixtureSvc(nil)

	bad := "teleported"
	_, err := svc.GetStudioBookings(context.Background(), &models.GetStudioBookingsRequest{
		UserID:   staffUserID,
		StudioID: 5,
		Status:   &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_ByCustomer(t *testing.T) {
	svc, bRepo, notifier := fixtureSvc(fixtureBooking(domain.StatusPending))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		CancellationReason: "change of plans",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByCustomer, bRepo.cancelStatus)
	assert.Equal(t, "change of plans", bRepo.cancelReason)
	require.NotNil(t, notifier.cancelled)
	assert.Equal(t, domain.StatusCancelledByCustomer, notifier.cancelled.Status)
}

func TestCancel_ByStudio(t *testing.T) {
	svc, bRepo, _ := fixtureSvc(fixtureBooking(domain.StatusConfirmed))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             staffUserID,
		ByStudio:           true,
		CancellationReason: "double maintenance slot",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByStudio, bRepo.cancelStatus)
}

func TestCancel_ByStudio_RequiresStaff(t *testing.T) {
	svc, _, _ := fixtureSvc(fixtureBooking(domain.StatusConfirmed))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:   outsiderUserID,
		ByStudio: true,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_PastCancellation(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelledByCustomer,
	} {
		t.Run(string(status), func(t *testing.T) {
			svc, _, _ := fixtureSvc(fixtureBooking(status))

			err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
				CancellationReason: "too late",
			})
			assert.ErrorIs(t, err, ErrCannotCancel)
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, bRepo, _ := fixtureSvc(fixtureBooking(domain.StatusPending))

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: staffUserID,
		Status: "confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, domain.StatusConfirmed, bRepo.updatedStatus)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	svc, _, _ := fixtureSvc(fixtureBooking(domain.StatusCompleted))

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: staffUserID,
		Status: "pending",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	svc, _, _ := fixtureSvc(fixtureBooking(domain.StatusPending))

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: staffUserID,
		Status: "teleported",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_StaffOnly(t *testing.T) {
	svc, _, _ := fixtureSvc(fixtureBooking(domain.StatusPending))

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: outsiderUserID,
		Status: "confirmed",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
