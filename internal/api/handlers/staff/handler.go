package staff

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
	msgInvalidUserID      = "invalid user id"
	msgMissingUserID      = "missing user id"
	msgStudioNotFound     = "studio not found"
	msgOwnerOnly          = "only the studio owner can manage staff"
	msgStaffExists        = "user is already studio staff"
	msgStaffNotFound      = "staff member not found"
	msgLimitReached       = "staff sub-account limit reached for this plan"
)

// Handler covers the staff sub-account routes. Owner only.
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

// HandleAdd POST /api/v1/studios/{studioId}/staff
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	studioID, err := strconv.ParseInt(mux.Vars(r)["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /studios/{id}/staff - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /studios/{id}/staff - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /studios/{id}/staff - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.UserID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	if err := h.service.AddStaff(r.Context(), studioID, ownerID, req.UserID); err != nil {
		switch {
		case errors.Is(err, studios.ErrStudioNotFound):
			h.logger.Warn("POST /studios/{id}/staff - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, studios.ErrOwnerOnly):
			h.logger.Warn("POST /studios/{id}/staff - Not the owner: studio_id=%d, user_id=%d", studioID, ownerID)
			handlers.RespondForbidden(w, msgOwnerOnly)

		case errors.Is(err, studios.ErrStaffExists):
			h.logger.Warn("POST /studios/{id}/staff - Already staff: studio_id=%d, user_id=%d", studioID, req.UserID)
			handlers.RespondConflict(w, msgStaffExists)

		case errors.Is(err, studios.ErrStaffLimitReached):
			h.logger.Warn("POST /studios/{id}/staff - Limit reached: studio_id=%d", studioID)
			handlers.RespondForbidden(w, msgLimitReached)

		case errors.Is(err, studios.ErrInvalidInput):
			h.logger.Warn("POST /studios/{id}/staff - Invalid input: studio_id=%d, error=%v", studioID, err)
			handlers.RespondBadRequest(w, msgInvalidUserID)

		default:
			h.logger.Error("POST /studios/{id}/staff - Failed: studio_id=%d, error=%v", studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /studios/{id}/staff - Staff added: studio_id=%d, user_id=%d", studioID, req.UserID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemove DELETE /api/v1/studios/{studioId}/staff/{userId}
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /studios/{id}/staff/{userId} - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}
	staffID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /studios/{id}/staff/{userId} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /studios/{id}/staff/{userId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.RemoveStaff(r.Context(), studioID, ownerID, staffID); err != nil {
		switch {
		case errors.Is(err, studios.ErrStudioNotFound):
			h.logger.Warn("DELETE /studios/{id}/staff/{userId} - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, studios.ErrOwnerOnly):
			h.logger.Warn("DELETE /studios/{id}/staff/{userId} - Not the owner: studio_id=%d, user_id=%d", studioID, ownerID)
			handlers.RespondForbidden(w, msgOwnerOnly)

		case errors.Is(err, studios.ErrStaffNotFound):
			h.logger.Warn("DELETE /studios/{id}/staff/{userId} - Staff not found: studio_id=%d, user_id=%d", studioID, staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		default:
			h.logger.Error("DELETE /studios/{id}/staff/{userId} - Failed: studio_id=%d, error=%v", studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /studios/{id}/staff/{userId} - Staff removed: studio_id=%d, user_id=%d", studioID, staffID)
	w.WriteHeader(http.StatusNoContent)
}
