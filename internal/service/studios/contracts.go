package studios

import (
	"context"

	"github.com/studiokita/booking-service/internal/domain"
)

// StudioRepository is the persistence surface the service needs.
type StudioRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Studio, error)
	UpdateConfig(ctx context.Context, id int64, update domain.StudioConfigUpdate) error
	GetLayoutByID(ctx context.Context, id int64) (*domain.StudioLayout, error)
	GetLayoutsByStudioID(ctx context.Context, studioID int64, includeInactive bool) ([]*domain.StudioLayout, error)
	CreateLayout(ctx context.Context, layout *domain.StudioLayout) (*domain.StudioLayout, error)
	UpdateLayout(ctx context.Context, layout *domain.StudioLayout) error
	AddStaff(ctx context.Context, studioID, userID int64) error
	RemoveStaff(ctx context.Context, studioID, userID int64) error
	CountStaff(ctx context.Context, studioID int64) (int, error)
}

// TransactionManager runs the staff quota check and insert atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the minimal logging surface the service needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
