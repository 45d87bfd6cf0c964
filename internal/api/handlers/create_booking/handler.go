package create_booking

import (
	"errors"
	"net/http"

	"github.com/studiokita/booking-service/internal/api/handlers"
	createBooking "github.com/studiokita/booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateTime    = "invalid booking date or time, expected YYYY-MM-DD and HH:MM"
	msgSlotNotAvailable   = "selected time slot is not available"
	msgStudioNotFound     = "studio not found"
	msgLayoutNotFound     = "layout not found"
	msgAddonNotFound      = "addon not found for this layout"
	msgInvalidDate        = "invalid booking date"
	msgDateTooFar         = "booking date is beyond the studio's booking window"
	msgOutsideHours       = "time is outside the studio's operating hours"
	msgTooLateToBook      = "too late to book this slot"
	msgFeatureNotAllowed  = "payment method not available on this studio's plan"
	msgInvalidPhone       = "invalid customer phone number"
	msgInvalidInput       = "invalid booking data"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: studio_id=%d, layout_id=%d, date=%s, time=%s",
				req.StudioID, req.LayoutID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrStudioNotFound):
			h.logger.Warn("POST /bookings - Studio not found: studio_id=%d", req.StudioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, createBooking.ErrLayoutNotFound),
			errors.Is(err, createBooking.ErrLayoutInactive):
			h.logger.Warn("POST /bookings - Layout not found: layout_id=%d", req.LayoutID)
			handlers.RespondNotFound(w, msgLayoutNotFound)

		case errors.Is(err, createBooking.ErrAddonNotFound):
			h.logger.Warn("POST /bookings - Addon not found: layout_id=%d", req.LayoutID)
			handlers.RespondBadRequest(w, msgAddonNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: studio_id=%d, date=%s", req.StudioID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: studio_id=%d, date=%s", req.StudioID, req.BookingDate)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrOutsideOperatingHours):
			h.logger.Warn("POST /bookings - Outside operating hours: studio_id=%d, time=%s", req.StudioID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: studio_id=%d, time=%s", req.StudioID, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrFeatureNotAllowed):
			h.logger.Warn("POST /bookings - Feature not allowed: studio_id=%d, payment=%s", req.StudioID, req.PaymentMethod)
			handlers.RespondForbidden(w, msgFeatureNotAllowed)

		case errors.Is(err, createBooking.ErrInvalidPhone):
			h.logger.Warn("POST /bookings - Invalid phone: studio_id=%d", req.StudioID)
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: studio_id=%d, error=%v", req.StudioID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: studio_id=%d, layout_id=%d, error=%v",
				req.StudioID, req.LayoutID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: reference=%s, studio_id=%d, layout_id=%d",
		result.Reference, req.StudioID, req.LayoutID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
