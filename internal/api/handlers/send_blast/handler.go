package send_blast

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/studiokita/booking-service/internal/api/handlers"
	"github.com/studiokita/booking-service/internal/api/middleware"
	sendBlast "github.com/studiokita/booking-service/internal/usecase/send_blast"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidStudioID    = "invalid studio id"
	msgMissingUserID      = "missing user id"
	msgStudioNotFound     = "studio not found"
	msgForbidden          = "access denied"
	msgFeatureNotAllowed  = "whatsapp blast not available on this studio's plan"
	msgNotConnected       = "whatsapp session is not connected"
	msgNoRecipients       = "no customers to send to"
	msgInvalidMessage     = "invalid blast message"
)

type Handler struct {
	useCase SendBlastUseCase
	logger  Logger
}

func NewHandler(useCase SendBlastUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/studios/{studioId}/blast
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studioID, err := strconv.ParseInt(mux.Vars(r)["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /studios/{id}/blast - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /studios/{id}/blast - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SendBlastRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /studios/{id}/blast - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &sendBlast.Request{
		UserID:   userID,
		StudioID: studioID,
		Message:  req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, sendBlast.ErrStudioNotFound):
			h.logger.Warn("POST /studios/{id}/blast - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, sendBlast.ErrAccessDenied):
			h.logger.Warn("POST /studios/{id}/blast - Access denied: studio_id=%d, user_id=%d", studioID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sendBlast.ErrFeatureNotAllowed):
			h.logger.Warn("POST /studios/{id}/blast - Feature not allowed: studio_id=%d", studioID)
			handlers.RespondForbidden(w, msgFeatureNotAllowed)

		case errors.Is(err, sendBlast.ErrWhatsAppNotConnected):
			h.logger.Error("POST /studios/{id}/blast - Session not connected: studio_id=%d", studioID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgNotConnected)

		case errors.Is(err, sendBlast.ErrNoRecipients):
			h.logger.Warn("POST /studios/{id}/blast - No recipients: studio_id=%d", studioID)
			handlers.RespondConflict(w, msgNoRecipients)

		case errors.Is(err, sendBlast.ErrInvalidInput):
			h.logger.Warn("POST /studios/{id}/blast - Invalid message: studio_id=%d, error=%v", studioID, err)
			handlers.RespondBadRequest(w, msgInvalidMessage)

		default:
			h.logger.Error("POST /studios/{id}/blast - Failed: studio_id=%d, error=%v", studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /studios/{id}/blast - Blast finished: studio_id=%d, sent=%d, failed=%d",
		studioID, result.Sent, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, result)
}
