package get_features

import (
	"context"

	"github.com/studiokita/booking-service/internal/service/studios/models"
)

type StudioService interface {
	GetFeatures(ctx context.Context, studioID, userID int64) (*models.FeaturesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
