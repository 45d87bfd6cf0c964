package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/studiokita/booking-service/internal/api/handlers"
	"github.com/studiokita/booking-service/internal/domain"
	getAvailableSlots "github.com/studiokita/booking-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidStudioID    = "invalid studio id"
	msgInvalidLayoutID    = "invalid layout id"
	msgInvalidDate        = "invalid date, expected YYYY-MM-DD"
	msgStudioNotFound     = "studio not found"
	msgLayoutNotFound     = "layout not found"
	msgDateInPast         = "date is in the past"
	msgDateTooFar         = "date is beyond the studio's booking window"
	msgConfigUnavailable  = "studio configuration temporarily unavailable"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/studios/{studioId}/layouts/{layoutId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	layoutID, err := strconv.ParseInt(vars["layoutId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid layout ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLayoutID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	ignoreBookings, _ := strconv.ParseBool(r.URL.Query().Get("ignoreBookings"))

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		StudioID:       studioID,
		LayoutID:       layoutID,
		Date:           date,
		IgnoreBookings: ignoreBookings,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrStudioNotFound):
			h.logger.Warn("GET /available-slots - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, getAvailableSlots.ErrLayoutNotFound),
			errors.Is(err, getAvailableSlots.ErrLayoutInactive):
			h.logger.Warn("GET /available-slots - Layout not found: layout_id=%d", layoutID)
			handlers.RespondNotFound(w, msgLayoutNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /available-slots - Date in the past: studio_id=%d", studioID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /available-slots - Date too far in future: studio_id=%d", studioID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrConfigUnavailable):
			h.logger.Error("GET /available-slots - Config unavailable: studio_id=%d", studioID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgConfigUnavailable)

		default:
			h.logger.Error("GET /available-slots - Failed: studio_id=%d, layout_id=%d, error=%v",
				studioID, layoutID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - %d slots for studio_id=%d, layout_id=%d, date=%s",
		len(result.Slots), studioID, layoutID, date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
