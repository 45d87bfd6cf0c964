package whatsapp_admin

import (
	"context"

	"github.com/studiokita/booking-service/internal/integrations/whatsapp"
)

type SessionClient interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Status(ctx context.Context) (*whatsapp.SessionStatus, error)
	QR(ctx context.Context) (*whatsapp.QRCode, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
