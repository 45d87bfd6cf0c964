package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/studiokita/booking-service/internal/domain"
	"github.com/studiokita/booking-service/internal/infra/slotlock"
	bookingRepo "github.com/studiokita/booking-service/internal/infra/storage/booking"
	studioRepo "github.com/studiokita/booking-service/internal/infra/storage/studio"
	"github.com/studiokita/booking-service/pkg/phone"
)

// UseCase submits a booking. Double booking is prevented in layers: an
// optional Redis pre-lock, a locked re-read inside a serializable
// transaction, and finally the partial unique index in the database.
type UseCase struct {
	bookingRepo  BookingRepository
	studioRepo   StudioRepository
	slotLocker   SlotLocker // nil disables the Redis pre-lock
	notifier     Notifier   // nil disables side effects
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      MetricsCollector // nil when metrics are disabled
	countryCode  string
	logger       Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	studioRepo StudioRepository,
	slotLocker SlotLocker,
	notifier Notifier,
	txManager TransactionManager,
	metrics MetricsCollector,
	countryCode string,
	logger Logger,
) *UseCase {
	if countryCode == "" {
		countryCode = "60"
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		studioRepo:   studioRepo,
		slotLocker:   slotLocker,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		countryCode:  countryCode,
		logger:       logger,
	}
}

// Execute runs the submission.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: studio=%d, layout=%d, date=%s, time=%s",
		req.StudioID, req.LayoutID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Normalize the customer phone
	customerPhone, err := phone.Normalize(req.CustomerPhone, uc.countryCode)
	if err != nil {
		uc.logger.Warn("CreateBooking: phone normalization failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}

	// 3. Load the studio
	studio, err := uc.studioRepo.GetByID(ctx, req.StudioID)
	if err != nil {
		if errors.Is(err, studioRepo.ErrStudioNotFound) {
			uc.logger.Warn("CreateBooking: studio id=%d not found", req.StudioID)
			return nil, ErrStudioNotFound
		}
		uc.logger.Error("CreateBooking: failed to get studio id=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}

	// 4. Load the layout
	layout, err := uc.studioRepo.GetLayoutByID(ctx, req.LayoutID)
	if err != nil {
		if errors.Is(err, studioRepo.ErrLayoutNotFound) {
			uc.logger.Warn("CreateBooking: layout id=%d not found", req.LayoutID)
			return nil, ErrLayoutNotFound
		}
		uc.logger.Error("CreateBooking: failed to get layout id=%d: %v", req.LayoutID, err)
		return nil, fmt.Errorf("%w: failed to get layout: %v", ErrInternal, err)
	}
	if layout.StudioID != req.StudioID {
		uc.logger.Warn("CreateBooking: layout id=%d does not belong to studio id=%d", req.LayoutID, req.StudioID)
		return nil, ErrLayoutNotFound
	}
	if !layout.Active {
		return nil, ErrLayoutInactive
	}

	// 5. Gate FPX on the studio's tier
	paymentMethod, _ := domain.ParsePaymentMethod(req.PaymentMethod)
	paymentType, _ := domain.ParsePaymentType(req.PaymentType)
	if paymentMethod == domain.PaymentFPX && !studio.Tier.HasFeature(domain.FeatureFPXPayment) {
		uc.logger.Warn("CreateBooking: fpx payment not allowed for tier %s (studio id=%d)", studio.Tier, req.StudioID)
		return nil, fmt.Errorf("%w: fpx_payment requires platinum", ErrFeatureNotAllowed)
	}

	// 6. Price the booking server side: layout package plus the named addon
	totalPrice := layout.Price
	if req.AddonName != nil && *req.AddonName != "" {
		addon, ok := layout.AddonByName(*req.AddonName)
		if !ok {
			uc.logger.Warn("CreateBooking: addon %q not found for layout id=%d", *req.AddonName, req.LayoutID)
			return nil, ErrAddonNotFound
		}
		totalPrice += addon.Price
	}

	// 7. Derive the end time from the layout's minute package
	endTime, err := req.StartTime.AddMinutes(layout.MinutePackage)
	if err != nil {
		uc.logger.Warn("CreateBooking: interval crosses midnight: %v", err)
		return nil, ErrOutsideOperatingHours
	}

	// 8. Validate date, notice and operating hours
	if err := validateDate(req.Date, now, studio.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateBookingTime(req.Date, req.StartTime, now, studio.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}
	if err := validateWithinHours(studio, req.StartTime, endTime); err != nil {
		uc.logger.Warn("CreateBooking: interval %s-%s outside hours for studio id=%d", req.StartTime, endTime, req.StudioID)
		return nil, err
	}
	if err := validateOnSlotGrid(studio, req.StartTime); err != nil {
		uc.logger.Warn("CreateBooking: start %s off the slot grid for studio id=%d: %v", req.StartTime, req.StudioID, err)
		return nil, err
	}

	// 9. Take the Redis pre-lock when configured
	dateStr := req.Date.Format(domain.DateFormat)
	if uc.slotLocker != nil {
		token, err := uc.slotLocker.Acquire(ctx, req.StudioID, req.LayoutID, dateStr, req.StartTime.String())
		if err != nil {
			if errors.Is(err, slotlock.ErrSlotLocked) {
				uc.logger.Warn("CreateBooking: slot lock contention for studio=%d layout=%d %s %s",
					req.StudioID, req.LayoutID, dateStr, req.StartTime)
				if uc.metrics != nil {
					uc.metrics.IncSlotLockContention()
				}
				return nil, ErrSlotNotAvailable
			}
			// Lock infrastructure failure is not fatal: the transaction and
			// the unique constraint still protect the slot.
			uc.logger.Error("CreateBooking: slot lock unavailable, proceeding without it: %v", err)
		} else {
			defer func() {
				if err := uc.slotLocker.Release(ctx, req.StudioID, req.LayoutID, dateStr, req.StartTime.String(), token); err != nil {
					uc.logger.Error("CreateBooking: slot lock release failed: %v", err)
				}
			}()
		}
	}

	// 10. Re-check and insert inside a serializable transaction
	var result *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 10.1. Re-read the date's occupying bookings under FOR UPDATE
		filter := domain.StudioBookingsFilter{
			StudioID:  req.StudioID,
			LayoutID:  &req.LayoutID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		}
		bookings, err := uc.bookingRepo.GetByStudioWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 10.2. Overlap check against the locked rows
		if hasConflict(req.StartTime, endTime, bookings) {
			uc.logger.Warn("CreateBooking: slot %s-%s already taken", req.StartTime, endTime)
			return ErrSlotNotAvailable
		}

		// 10.3. Insert; the unique constraint is the final arbiter
		booking := &domain.Booking{
			Reference:       domain.NewReference(),
			StudioID:        req.StudioID,
			LayoutID:        req.LayoutID,
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   customerPhone,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			EndTime:         endTime,
			DurationMinutes: layout.MinutePackage,
			AddonName:       req.AddonName,
			TotalPrice:      totalPrice,
			PaymentMethod:   paymentMethod,
			PaymentType:     paymentType,
			Status:          domain.StatusPending,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: unique constraint rejected slot %s %s", dateStr, req.StartTime)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking %s (id=%d)", result.Reference, result.ID)

	// 11. Side effects run in the background after commit
	if uc.notifier != nil {
		uc.notifier.BookingCreated(result, studio, layout)
	}

	return &Response{
		ID:              result.ID,
		Reference:       result.Reference,
		StudioID:        result.StudioID,
		LayoutID:        result.LayoutID,
		CustomerName:    result.CustomerName,
		CustomerEmail:   result.CustomerEmail,
		CustomerPhone:   result.CustomerPhone,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: result.DurationMinutes,
		AddonName:       result.AddonName,
		TotalPrice:      result.TotalPrice,
		PaymentMethod:   string(result.PaymentMethod),
		PaymentType:     string(result.PaymentType),
		Status:          string(result.Status),
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
