package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/studiokita/booking-service/internal/domain"
	bookingRepo "github.com/studiokita/booking-service/internal/infra/storage/booking"
	studioRepo "github.com/studiokita/booking-service/internal/infra/storage/studio"
	"github.com/studiokita/booking-service/internal/service/bookings/models"
)

// Service covers booking reads and lifecycle changes outside the
// submission flow.
type Service struct {
	bookingRepo BookingRepository
	studioRepo  StudioRepository
	notifier    Notifier // nil disables side effects
	logger      Logger
}

func NewService(
	bookingRepo BookingRepository,
	studioRepo StudioRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		studioRepo:  studioRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetByID fetches a booking for studio staff.
func (s *Service) GetByID(ctx context.Context, id, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.requireStaff(ctx, booking.StudioID, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainBookingStaff(booking), nil
}

// GetByReference fetches a booking by its customer-facing code. The code is
// the only credential, so the internal staff notes are stripped.
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.BookingResponse, error) {
	s.logger.Info("GetByReference: fetching booking %s", reference)

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking %s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for %s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetStudioBookings lists a studio's bookings for staff with optional
// narrowing by layout, period and status.
func (s *Service) GetStudioBookings(ctx context.Context, req *models.GetStudioBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetStudioBookings: studio=%d, user=%d", req.StudioID, req.UserID)

	if _, err := s.requireStaff(ctx, req.StudioID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetStudioBookings: invalid filter for studio=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByStudioWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetStudioBookings: repository error for studio=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: GetStudioBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudioBookings: fetched %d bookings for studio=%d", len(bookings), req.StudioID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel cancels a booking. The staff endpoint sets ByStudio; the public
// cancel-by-reference path cancels as the customer. Only pending and
// confirmed bookings can be cancelled.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: booking id=%d, byStudio=%t", bookingID, req.ByStudio)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	studio, err := s.getStudio(ctx, booking.StudioID)
	if err != nil {
		return err
	}

	if req.ByStudio {
		if !studio.IsStaff(req.UserID) {
			s.logger.Warn("Cancel: user=%d is not staff of studio=%d", req.UserID, booking.StudioID)
			return ErrAccessDenied
		}
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d in status %s cannot be cancelled", bookingID, booking.Status)
		return ErrCannotCancel
	}

	status := domain.StatusCancelledByCustomer
	if req.ByStudio {
		status = domain.StatusCancelledByStudio
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, status, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking id=%d cancelled with status %s", bookingID, status)

	if s.notifier != nil {
		booking.Status = status
		booking.CancellationReason = &req.CancellationReason
		s.notifier.BookingCancelled(booking, studio)
	}

	return nil
}

// UpdateStatus moves a booking to a new status, enforcing the state
// machine. Staff only.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d -> %s by user=%d", bookingID, req.Status, req.UserID)

	target, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if _, err := s.requireStaff(ctx, booking.StudioID, req.UserID); err != nil {
		return nil, err
	}

	if !domain.CanTransition(booking.Status, target) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%d",
			booking.Status, target, bookingID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, target)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, target); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	booking.Status = target
	return models.FromDomainBookingStaff(booking), nil
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("getBooking: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

func (s *Service) getStudio(ctx context.Context, id int64) (*domain.Studio, error) {
	studio, err := s.studioRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, studioRepo.ErrStudioNotFound) {
			return nil, ErrStudioNotFound
		}
		s.logger.Error("getStudio: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return studio, nil
}

func (s *Service) requireStaff(ctx context.Context, studioID, userID int64) (*domain.Studio, error) {
	studio, err := s.getStudio(ctx, studioID)
	if err != nil {
		return nil, err
	}
	if !studio.IsStaff(userID) {
		return nil, ErrAccessDenied
	}
	return studio, nil
}
