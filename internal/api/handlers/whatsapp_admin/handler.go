package whatsapp_admin

import (
	"errors"
	"net/http"

	"github.com/studiokita/booking-service/internal/api/handlers"
	"github.com/studiokita/booking-service/internal/api/middleware"
	"github.com/studiokita/booking-service/internal/integrations/whatsapp"
)

const (
	msgMissingUserID = "missing user id"
	msgNotConnected  = "whatsapp session is not connected"
	msgGatewayFailed = "whatsapp gateway request failed"
)

// Handler exposes WhatsApp session management for operators. The gateway
// owns a single session, so these endpoints are not scoped to a studio.
type Handler struct {
	client SessionClient
	logger Logger
}

func NewHandler(client SessionClient, logger Logger) *Handler {
	return &Handler{
		client: client,
		logger: logger,
	}
}

// HandleConnect POST /api/v1/whatsapp/session/connect
func (h *Handler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.client.Connect(r.Context()); err != nil {
		h.logger.Error("POST /whatsapp/session/connect - Failed: user_id=%d, error=%v", userID, err)
		handlers.RespondError(w, http.StatusBadGateway, msgGatewayFailed)
		return
	}

	h.logger.Info("POST /whatsapp/session/connect - Session connect requested: user_id=%d", userID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleDisconnect POST /api/v1/whatsapp/session/disconnect
func (h *Handler) HandleDisconnect(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.client.Disconnect(r.Context()); err != nil {
		if errors.Is(err, whatsapp.ErrNotConnected) {
			h.logger.Warn("POST /whatsapp/session/disconnect - Session not connected: user_id=%d", userID)
			handlers.RespondConflict(w, msgNotConnected)
			return
		}
		h.logger.Error("POST /whatsapp/session/disconnect - Failed: user_id=%d, error=%v", userID, err)
		handlers.RespondError(w, http.StatusBadGateway, msgGatewayFailed)
		return
	}

	h.logger.Info("POST /whatsapp/session/disconnect - Session disconnected: user_id=%d", userID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleStatus GET /api/v1/whatsapp/session/status
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	status, err := h.client.Status(r.Context())
	if err != nil {
		h.logger.Error("GET /whatsapp/session/status - Failed: error=%v", err)
		handlers.RespondError(w, http.StatusBadGateway, msgGatewayFailed)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, status)
}

// HandleQR GET /api/v1/whatsapp/session/qr
func (h *Handler) HandleQR(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	qr, err := h.client.QR(r.Context())
	if err != nil {
		if errors.Is(err, whatsapp.ErrNotConnected) {
			h.logger.Warn("GET /whatsapp/session/qr - Session not in pairing state")
			handlers.RespondConflict(w, msgNotConnected)
			return
		}
		h.logger.Error("GET /whatsapp/session/qr - Failed: error=%v", err)
		handlers.RespondError(w, http.StatusBadGateway, msgGatewayFailed)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, qr)
}
