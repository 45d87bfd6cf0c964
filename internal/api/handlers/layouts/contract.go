package layouts

import (
	"context"

	"github.com/studiokita/booking-service/internal/service/studios/models"
)

type StudioService interface {
	GetLayouts(ctx context.Context, req *models.GetLayoutsRequest) ([]*models.LayoutResponse, error)
	GetLayout(ctx context.Context, studioID, layoutID int64) (*models.LayoutResponse, error)
	CreateLayout(ctx context.Context, req *models.SaveLayoutRequest) (*models.LayoutResponse, error)
	UpdateLayout(ctx context.Context, req *models.SaveLayoutRequest) (*models.LayoutResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
