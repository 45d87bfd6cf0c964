package update_studio_config

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
	msgInvalidRequestBody = "invalid request body"
	msgInvalidStudioID    = "invalid studio id"
	msgMissingUserID      = "missing user id"
	msgStudioNotFound     = "studio not found"
	msgForbidden          = "access denied"
	msgInvalidConfig      = "invalid configuration"
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

// Handle PUT /api/v1/studios/{studioId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studioID, err := strconv.ParseInt(mux.Vars(r)["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /studios/{id}/config - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /studios/{id}/config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateStudioConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /studios/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	config, err := h.service.UpdateConfig(r.Context(), req.ToServiceRequest(studioID, userID))
	if err != nil {
		switch {
		case errors.Is(err, studios.ErrStudioNotFound):
			h.logger.Warn("PUT /studios/{id}/config - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, studios.ErrAccessDenied):
			h.logger.Warn("PUT /studios/{id}/config - Access denied: studio_id=%d, user_id=%d", studioID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, studios.ErrInvalidInput):
			h.logger.Warn("PUT /studios/{id}/config - Invalid configuration: studio_id=%d, error=%v", studioID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		default:
			h.logger.Error("PUT /studios/{id}/config - Failed: studio_id=%d, error=%v", studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /studios/{id}/config - Config updated: studio_id=%d, user_id=%d", studioID, userID)
	handlers.RespondJSON(w, http.StatusOK, config)
}
