package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/studiokita/booking-service/internal/domain"
	studioRepo "github.com/studiokita/booking-service/internal/infra/storage/studio"
)

// UseCase computes the bookable slots of one layout on one date.
type UseCase struct {
	bookingRepo  BookingRepository
	studioRepo   StudioRepository
	timeProvider TimeProvider
	metrics      MetricsCollector // nil when metrics are disabled
	failOpen     bool
	logger       Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	studioRepo StudioRepository,
	metrics MetricsCollector,
	failOpen bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		studioRepo:   studioRepo,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		failOpen:     failOpen,
		logger:       logger,
	}
}

// Execute runs the availability query.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: studio=%d, layout=%d, date=%s",
		req.StudioID, req.LayoutID, req.Date.Format(domain.DateFormat))

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Load the layout; its minute package sets the slot duration
	layout, err := uc.studioRepo.GetLayoutByID(ctx, req.LayoutID)
	if err != nil {
		if errors.Is(err, studioRepo.ErrLayoutNotFound) {
			uc.logger.Warn("GetAvailableSlots: layout id=%d not found", req.LayoutID)
			return nil, ErrLayoutNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get layout id=%d: %v", req.LayoutID, err)
		return nil, fmt.Errorf("%w: failed to get layout: %v", ErrInternal, err)
	}
	if layout.StudioID != req.StudioID {
		uc.logger.Warn("GetAvailableSlots: layout id=%d does not belong to studio id=%d", req.LayoutID, req.StudioID)
		return nil, ErrLayoutNotFound
	}
	if !layout.Active {
		return nil, ErrLayoutInactive
	}

	// 3. Load studio configuration; on failure apply the degradation policy
	params, degraded, err := uc.loadParams(ctx, req.StudioID)
	if err != nil {
		return nil, err
	}

	// 4. Validate the date against the advance booking window
	if err := validateDate(req.Date, now, params.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Generate the candidate grid and drop unreachable starts for today
	starts, err := generateCandidateStarts(params, layout.MinutePackage)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	starts = filterPastStarts(starts, req.Date, now, params.MinBookingNoticeMinutes)

	// 6. Load the date's occupying bookings for this layout, unless the
	// caller asked for the raw grid. A read failure follows the degradation
	// policy: fail-open serves the day as free, fail-closed refuses.
	var bookings []*domain.Booking
	if !req.IgnoreBookings {
		filter := domain.StudioBookingsFilter{
			StudioID:  req.StudioID,
			LayoutID:  &req.LayoutID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		}
		bookings, err = uc.bookingRepo.GetByStudioWithFilter(ctx, filter)
		if err != nil {
			if !uc.failOpen {
				uc.logger.Error("GetAvailableSlots: bookings read failed (fail-closed): %v", err)
				return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
			}

			uc.logger.Error("GetAvailableSlots: bookings read failed, serving the day as free (fail-open): %v", err)
			if uc.metrics != nil {
				uc.metrics.IncAvailabilityFailOpen()
			}
			bookings = nil
			degraded = true
		}
	}

	// 7. Mark occupied slots
	slots := markAvailability(starts, layout.MinutePackage, bookings)

	uc.logger.Info("GetAvailableSlots: %d slots for studio=%d, layout=%d, date=%s (degraded=%t)",
		len(slots), req.StudioID, req.LayoutID, req.Date.Format(domain.DateFormat), degraded)

	return &Response{
		StudioID: req.StudioID,
		LayoutID: req.LayoutID,
		Date:     req.Date,
		Slots:    slots,
		Degraded: degraded,
	}, nil
}

// loadParams fetches the studio's slot configuration. A missing studio is
// always an error. An infrastructure failure either degrades to defaults
// (fail-open, counted and logged) or refuses the query (fail-closed),
// depending on service configuration.
func (uc *UseCase) loadParams(ctx context.Context, studioID int64) (slotParams, bool, error) {
	studio, err := uc.studioRepo.GetByID(ctx, studioID)
	if err == nil {
		return paramsFromStudio(studio), false, nil
	}

	if errors.Is(err, studioRepo.ErrStudioNotFound) {
		uc.logger.Warn("GetAvailableSlots: studio id=%d not found", studioID)
		return slotParams{}, false, ErrStudioNotFound
	}

	if !uc.failOpen {
		uc.logger.Error("GetAvailableSlots: studio config load failed (fail-closed): %v", err)
		return slotParams{}, false, fmt.Errorf("%w: %v", ErrConfigUnavailable, err)
	}

	uc.logger.Error("GetAvailableSlots: studio config load failed, serving defaults (fail-open): %v", err)
	if uc.metrics != nil {
		uc.metrics.IncAvailabilityFailOpen()
	}
	return defaultParams(), true, nil
}
