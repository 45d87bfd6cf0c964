package export_bookings

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/studiokita/booking-service/internal/api/handlers"
	"github.com/studiokita/booking-service/internal/api/middleware"
	"github.com/studiokita/booking-service/internal/domain"
	"github.com/studiokita/booking-service/internal/service/reports"
)

const (
	msgInvalidStudioID = "invalid studio id"
	msgMissingUserID   = "missing user id"
	msgInvalidParams   = "invalid query parameters"
	msgStudioNotFound  = "studio not found"
	msgForbidden       = "access denied"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service ReportService
	logger  Logger
}

func NewHandler(service ReportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/studios/{studioId}/bookings/export
// Query params: startDate, endDate, includeReleased.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studioID, err := strconv.ParseInt(mux.Vars(r)["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/bookings/export - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /studios/{id}/bookings/export - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &reports.ExportRequest{
		UserID:   userID,
		StudioID: studioID,
	}

	query := r.URL.Query()
	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.StartDate = &startDate
	}
	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.EndDate = &endDate
	}
	if raw := query.Get("includeReleased"); raw != "" {
		includeReleased, err := strconv.ParseBool(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.IncludeReleased = includeReleased
	}

	// The workbook is buffered so failures can still produce a JSON error
	// instead of a truncated download.
	var buf bytes.Buffer
	fileName, err := h.service.ExportBookings(r.Context(), req, &buf)
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrStudioNotFound):
			h.logger.Warn("GET /studios/{id}/bookings/export - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, reports.ErrAccessDenied):
			h.logger.Warn("GET /studios/{id}/bookings/export - Access denied: studio_id=%d, user_id=%d", studioID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reports.ErrInvalidInput):
			h.logger.Warn("GET /studios/{id}/bookings/export - Invalid period: studio_id=%d, error=%v", studioID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /studios/{id}/bookings/export - Failed: studio_id=%d, error=%v", studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /studios/{id}/bookings/export - Export ready: studio_id=%d, file=%s", studioID, fileName)

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
