package get_studio_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/studiokita/booking-service/internal/api/handlers"
	"github.com/studiokita/booking-service/internal/api/middleware"
	"github.com/studiokita/booking-service/internal/service/bookings"
)

const (
	msgInvalidStudioID = "invalid studio id"
	msgMissingUserID   = "missing user id"
	msgInvalidParams   = "invalid query parameters"
	msgStudioNotFound  = "studio not found"
	msgForbidden       = "access denied"
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

// Handle GET /api/v1/studios/{studioId}/bookings
// Query params: layoutId, status, startDate, endDate, includeReleased.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studioID, err := strconv.ParseInt(mux.Vars(r)["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/bookings - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /studios/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(studioID, userID,
		query.Get("layoutId"), query.Get("status"),
		query.Get("startDate"), query.Get("endDate"),
		query.Get("includeReleased"))
	if err != nil {
		h.logger.Warn("GET /studios/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetStudioBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrStudioNotFound):
			h.logger.Warn("GET /studios/{id}/bookings - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /studios/{id}/bookings - Access denied: studio_id=%d, user_id=%d", studioID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /studios/{id}/bookings - Invalid filter: studio_id=%d, error=%v", studioID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /studios/{id}/bookings - Failed: studio_id=%d, error=%v", studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /studios/{id}/bookings - %d bookings for studio_id=%d", result.Total, studioID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
