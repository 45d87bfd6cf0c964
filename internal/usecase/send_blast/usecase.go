package send_blast

import (
	"context"
	"errors"
	"fmt"

	"github.com/studiokita/booking-service/internal/domain"
	studioRepo "github.com/studiokita/booking-service/internal/infra/storage/studio"
	"github.com/studiokita/booking-service/internal/integrations/whatsapp"
)

// UseCase broadcasts one message to every past customer of a studio over
// WhatsApp, paced by the rate limiter. Gold tier and above.
type UseCase struct {
	bookingRepo BookingRepository
	studioRepo  StudioRepository
	sender      MessageSender
	limiter     RateLimiter
	metrics     MetricsCollector // nil when metrics are disabled
	logger      Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	studioRepo StudioRepository,
	sender MessageSender,
	limiter RateLimiter,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		studioRepo:  studioRepo,
		sender:      sender,
		limiter:     limiter,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute runs the blast synchronously and reports per-recipient results.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SendBlast: studio=%d, user=%d, message length=%d",
		req.StudioID, req.UserID, len(req.Message))

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SendBlast: validation failed: %v", err)
		return nil, err
	}

	// 2. Load the studio and check the caller is staff
	studio, err := uc.studioRepo.GetByID(ctx, req.StudioID)
	if err != nil {
		if errors.Is(err, studioRepo.ErrStudioNotFound) {
			uc.logger.Warn("SendBlast: studio id=%d not found", req.StudioID)
			return nil, ErrStudioNotFound
		}
		uc.logger.Error("SendBlast: failed to get studio id=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}
	if !studio.IsStaff(req.UserID) {
		uc.logger.Warn("SendBlast: user=%d is not staff of studio=%d", req.UserID, req.StudioID)
		return nil, ErrAccessDenied
	}

	// 3. Gate the blast on the studio's tier
	if !studio.Tier.HasFeature(domain.FeatureWhatsAppBlast) {
		uc.logger.Warn("SendBlast: whatsapp_blast not allowed for tier %s (studio id=%d)", studio.Tier, req.StudioID)
		return nil, fmt.Errorf("%w: whatsapp_blast requires gold", ErrFeatureNotAllowed)
	}

	// 4. Collect the distinct customer phones
	phones, err := uc.bookingRepo.GetCustomerPhonesByStudioID(ctx, req.StudioID)
	if err != nil {
		uc.logger.Error("SendBlast: failed to get customer phones for studio=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: failed to get customer phones: %v", ErrInternal, err)
	}
	if len(phones) == 0 {
		uc.logger.Warn("SendBlast: studio=%d has no customers to blast", req.StudioID)
		return nil, ErrNoRecipients
	}

	// 5. Deliver, paced by the limiter. A disconnected session aborts the
	//    whole blast; individual failures only mark that recipient.
	resp := &Response{StudioID: req.StudioID, Recipients: len(phones)}
	for _, recipient := range phones {
		if err := uc.limiter.Wait(ctx); err != nil {
			uc.logger.Error("SendBlast: rate limiter interrupted: %v", err)
			return nil, fmt.Errorf("%w: rate limiter interrupted: %v", ErrInternal, err)
		}

		if err := uc.sender.SendMessage(ctx, recipient, req.Message); err != nil {
			if errors.Is(err, whatsapp.ErrNotConnected) {
				uc.logger.Error("SendBlast: session disconnected after %d of %d messages", resp.Sent, resp.Recipients)
				return nil, ErrWhatsAppNotConnected
			}
			uc.logger.Error("SendBlast: delivery to %s failed: %v", recipient, err)
			resp.Failed++
			uc.countResult("failed")
			continue
		}

		resp.Sent++
		uc.countResult("sent")
	}

	uc.logger.Info("SendBlast: studio=%d done, sent=%d, failed=%d", req.StudioID, resp.Sent, resp.Failed)
	return resp, nil
}

func (uc *UseCase) countResult(result string) {
	if uc.metrics != nil {
		uc.metrics.IncBlastMessage(result)
	}
}
