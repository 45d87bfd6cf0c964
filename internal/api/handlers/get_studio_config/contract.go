package get_studio_config

import (
	"context"

	"github.com/studiokita/booking-service/internal/service/studios/models"
)

type StudioService interface {
	GetConfig(ctx context.Context, studioID, userID int64) (*models.StudioConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
