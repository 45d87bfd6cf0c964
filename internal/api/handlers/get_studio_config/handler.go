package get_studio_config

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

// Handle GET /api/v1/studios/{studioId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studioID, err := strconv.ParseInt(mux.Vars(r)["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/config - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /studios/{id}/config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	config, err := h.service.GetConfig(r.Context(), studioID, userID)
	if err != nil {
		switch {
		case errors.Is(err, studios.ErrStudioNotFound):
			h.logger.Warn("GET /studios/{id}/config - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, studios.ErrAccessDenied):
			h.logger.Warn("GET /studios/{id}/config - Access denied: studio_id=%d, user_id=%d", studioID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /studios/{id}/config - Failed: studio_id=%d, error=%v", studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /studios/{id}/config - Config retrieved: studio_id=%d, user_id=%d", studioID, userID)
	handlers.RespondJSON(w, http.StatusOK, config)
}
