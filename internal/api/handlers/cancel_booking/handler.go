package cancel_booking

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/studiokita/booking-service/internal/api/handlers"
	"github.com/studiokita/booking-service/internal/api/middleware"
	"github.com/studiokita/booking-service/internal/service/bookings"
	"github.com/studiokita/booking-service/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidBookingID   = "invalid booking id"
	msgNotFound           = "booking not found"
	msgMissingUserID      = "missing user id"
	msgForbidden          = "access denied"
	msgCannotCancel       = "booking can no longer be cancelled"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleByReference POST /api/v1/bookings/reference/{reference}/cancel
// Public customer cancellation, the booking code is the credential.
func (h *Handler) HandleByReference(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/reference/{ref}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.GetByReference(r.Context(), reference)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			h.logger.Warn("POST /bookings/reference/{ref}/cancel - Not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("POST /bookings/reference/{ref}/cancel - Lookup failed: reference=%s, error=%v", reference, err)
		handlers.RespondInternalError(w)
		return
	}

	h.cancel(r.Context(), w, booking.ID, &models.CancelBookingRequest{
		CancellationReason: req.CancellationReason,
	}, reference)
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
// Staff cancellation on behalf of the studio.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	h.cancel(r.Context(), w, bookingID, &models.CancelBookingRequest{
		UserID:             userID,
		ByStudio:           true,
		CancellationReason: req.CancellationReason,
	}, "")
}

func (h *Handler) cancel(ctx context.Context, w http.ResponseWriter, bookingID int64, req *models.CancelBookingRequest, reference string) {
	if err := h.service.Cancel(ctx, bookingID, req); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("Cancel - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("Cancel - Access denied: booking_id=%d, user_id=%d", bookingID, req.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("Cancel - Past cancellation: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("Cancel - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("Cancel - Booking cancelled: booking_id=%d, reference=%s, by_studio=%t",
		bookingID, reference, req.ByStudio)
	w.WriteHeader(http.StatusNoContent)
}
