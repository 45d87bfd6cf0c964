package layouts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/studiokita/booking-service/internal/api/handlers"
	"github.com/studiokita/booking-service/internal/api/middleware"
	"github.com/studiokita/booking-service/internal/service/studios"
	"github.com/studiokita/booking-service/internal/service/studios/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidStudioID    = "invalid studio id"
	msgInvalidLayoutID    = "invalid layout id"
	msgMissingUserID      = "missing user id"
	msgStudioNotFound     = "studio not found"
	msgLayoutNotFound     = "layout not found"
	msgForbidden          = "access denied"
	msgInvalidLayout      = "invalid layout data"
)

// Handler covers the layout CRUD routes. List and get are public; create
// and update require staff.
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

// HandleList GET /api/v1/studios/{studioId}/layouts
// Query param includeInactive=true requires staff.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	studioID, ok := h.studioID(w, r)
	if !ok {
		return
	}

	req := &models.GetLayoutsRequest{StudioID: studioID}
	if raw := r.URL.Query().Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidLayoutID)
			return
		}
		req.IncludeInactive = includeInactive
		// Hidden layouts are staff only, so the id is read when present.
		if userID, ok := middleware.GetUserID(r.Context()); ok {
			req.UserID = userID
		}
	}

	layouts, err := h.service.GetLayouts(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, "GET /studios/{id}/layouts", studioID, err)
		return
	}

	h.logger.Info("GET /studios/{id}/layouts - %d layouts for studio_id=%d", len(layouts), studioID)
	handlers.RespondJSON(w, http.StatusOK, layouts)
}

// HandleGet GET /api/v1/studios/{studioId}/layouts/{layoutId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	studioID, ok := h.studioID(w, r)
	if !ok {
		return
	}
	layoutID, ok := h.layoutID(w, r)
	if !ok {
		return
	}

	layout, err := h.service.GetLayout(r.Context(), studioID, layoutID)
	if err != nil {
		h.respondServiceError(w, "GET /studios/{id}/layouts/{layoutId}", studioID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, layout)
}

// HandleCreate POST /api/v1/studios/{studioId}/layouts
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	studioID, ok := h.studioID(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SaveLayoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /studios/{id}/layouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	layout, err := h.service.CreateLayout(r.Context(), req.ToServiceRequest(studioID, 0, userID))
	if err != nil {
		h.respondServiceError(w, "POST /studios/{id}/layouts", studioID, err)
		return
	}

	h.logger.Info("POST /studios/{id}/layouts - Layout created: studio_id=%d, layout_id=%d", studioID, layout.ID)
	handlers.RespondJSON(w, http.StatusCreated, layout)
}

// HandleUpdate PUT /api/v1/studios/{studioId}/layouts/{layoutId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	studioID, ok := h.studioID(w, r)
	if !ok {
		return
	}
	layoutID, ok := h.layoutID(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SaveLayoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /studios/{id}/layouts/{layoutId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	layout, err := h.service.UpdateLayout(r.Context(), req.ToServiceRequest(studioID, layoutID, userID))
	if err != nil {
		h.respondServiceError(w, "PUT /studios/{id}/layouts/{layoutId}", studioID, err)
		return
	}

	h.logger.Info("PUT /studios/{id}/layouts/{layoutId} - Layout updated: studio_id=%d, layout_id=%d", studioID, layoutID)
	handlers.RespondJSON(w, http.StatusOK, layout)
}

func (h *Handler) studioID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	studioID, err := strconv.ParseInt(mux.Vars(r)["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("layouts - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return 0, false
	}
	return studioID, true
}

func (h *Handler) layoutID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	layoutID, err := strconv.ParseInt(mux.Vars(r)["layoutId"], 10, 64)
	if err != nil {
		h.logger.Warn("layouts - Invalid layout ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLayoutID)
		return 0, false
	}
	return layoutID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, studioID int64, err error) {
	switch {
	case errors.Is(err, studios.ErrStudioNotFound):
		h.logger.Warn("%s - Studio not found: studio_id=%d", route, studioID)
		handlers.RespondNotFound(w, msgStudioNotFound)

	case errors.Is(err, studios.ErrLayoutNotFound):
		h.logger.Warn("%s - Layout not found: studio_id=%d", route, studioID)
		handlers.RespondNotFound(w, msgLayoutNotFound)

	case errors.Is(err, studios.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: studio_id=%d", route, studioID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, studios.ErrInvalidInput):
		h.logger.Warn("%s - Invalid layout data: studio_id=%d, error=%v", route, studioID, err)
		handlers.RespondBadRequest(w, msgInvalidLayout)

	default:
		h.logger.Error("%s - Failed: studio_id=%d, error=%v", route, studioID, err)
		handlers.RespondInternalError(w)
	}
}
