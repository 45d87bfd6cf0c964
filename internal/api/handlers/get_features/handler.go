package get_features

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/studiokita/booking-service/internal/api/handlers"
	"github.com/studiokita/booking-service/internal/api/middleware"
	"github.com/studiokita/booking-service/internal/service/studios"
)

const (
	msgInvalidStudioID = "invalid studio id"
	msgMissingUserID   = "missing user id"
	msgStudioNotFound  = "studio not found"
	msgForbidden       = "access denied"
)

type Handler struct {
	service StudioService
	logger  Logger
}

func NewHandler(service StudioService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/studios/{studioId}/features
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studioID, err := strconv.ParseInt(mux.Vars(r)["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/features - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /studios/{id}/features - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	features, err := h.service.GetFeatures(r.Context(), studioID, userID)
	if err != nil {
		switch {
		case errors.Is(err, studios.ErrStudioNotFound):
			h.logger.Warn("GET /studios/{id}/features - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, studios.ErrAccessDenied):
			h.logger.Warn("GET /studios/{id}/features - Access denied: studio_id=%d, user_id=%d", studioID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /studios/{id}/features - Failed: studio_id=%d, error=%v", studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /studios/{id}/features - Features retrieved: studio_id=%d, tier=%s", studioID, features.Tier)
	handlers.RespondJSON(w, http.StatusOK, features)
}
