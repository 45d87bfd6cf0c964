package studios

import (
	"context"
	"errors"
	"fmt"

	"github.com/studiokita/booking-service/internal/domain"
	studioRepo "github.com/studiokita/booking-service/internal/infra/storage/studio"
	"github.com/studiokita/booking-service/internal/service/studios/models"
)

// Service covers studio configuration, layouts, staff and feature listing.
type Service struct {
	studioRepo StudioRepository
	txManager  TransactionManager
	logger     Logger
}

func NewService(studioRepo StudioRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		studioRepo: studioRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// GetConfig returns the studio's booking configuration. Staff only.
func (s *Service) GetConfig(ctx context.Context, studioID, userID int64) (*models.StudioConfigResponse, error) {
	s.logger.Info("GetConfig: studio=%d, user=%d", studioID, userID)

	studio, err := s.requireStaff(ctx, studioID, userID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainStudio(studio), nil
}

// UpdateConfig applies a partial configuration update. Validation runs
// against the merged result so partial writes cannot produce an
// inconsistent window.
func (s *Service) UpdateConfig(ctx context.Context, req *models.UpdateStudioConfigRequest) (*models.StudioConfigResponse, error) {
	s.logger.Info("UpdateConfig: studio=%d, user=%d", req.StudioID, req.UserID)

	studio, err := s.requireStaff(ctx, req.StudioID, req.UserID)
	if err != nil {
		return nil, err
	}

	update, err := applyConfigUpdate(studio, req)
	if err != nil {
		s.logger.Warn("UpdateConfig: validation failed for studio=%d: %v", req.StudioID, err)
		return nil, err
	}

	if err := s.studioRepo.UpdateConfig(ctx, req.StudioID, update); err != nil {
		if errors.Is(err, studioRepo.ErrStudioNotFound) {
			return nil, ErrStudioNotFound
		}
		s.logger.Error("UpdateConfig: repository error for studio=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: UpdateConfig - repository error: %v", ErrInternal, err)
	}

	updated, err := s.getStudio(ctx, req.StudioID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateConfig: studio=%d configuration updated", req.StudioID)
	return models.FromDomainStudio(updated), nil
}

// GetLayouts lists a studio's layouts. Inactive layouts are only visible to
// staff.
func (s *Service) GetLayouts(ctx context.Context, req *models.GetLayoutsRequest) ([]*models.LayoutResponse, error) {
	s.logger.Info("GetLayouts: studio=%d, includeInactive=%t", req.StudioID, req.IncludeInactive)

	studio, err := s.getStudio(ctx, req.StudioID)
	if err != nil {
		return nil, err
	}

	if req.IncludeInactive && !studio.IsStaff(req.UserID) {
		return nil, ErrAccessDenied
	}

	layouts, err := s.studioRepo.GetLayoutsByStudioID(ctx, req.StudioID, req.IncludeInactive)
	if err != nil {
		s.logger.Error("GetLayouts: repository error for studio=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: GetLayouts - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLayoutList(layouts), nil
}

// GetLayout fetches one active layout for the public detail page.
func (s *Service) GetLayout(ctx context.Context, studioID, layoutID int64) (*models.LayoutResponse, error) {
	s.logger.Info("GetLayout: studio=%d, layout=%d", studioID, layoutID)

	layout, err := s.getLayout(ctx, layoutID)
	if err != nil {
		return nil, err
	}
	if layout.StudioID != studioID || !layout.Active {
		return nil, ErrLayoutNotFound
	}

	return models.FromDomainLayout(layout), nil
}

// CreateLayout adds a layout to the studio. Staff only.
func (s *Service) CreateLayout(ctx context.Context, req *models.SaveLayoutRequest) (*models.LayoutResponse, error) {
	s.logger.Info("CreateLayout: studio=%d, user=%d, name=%s", req.StudioID, req.UserID, req.Name)

	if _, err := s.requireStaff(ctx, req.StudioID, req.UserID); err != nil {
		return nil, err
	}
	if err := validateLayout(req); err != nil {
		return nil, err
	}

	created, err := s.studioRepo.CreateLayout(ctx, req.ToDomainLayout())
	if err != nil {
		s.logger.Error("CreateLayout: repository error for studio=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: CreateLayout - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateLayout: layout id=%d created for studio=%d", created.ID, req.StudioID)
	return models.FromDomainLayout(created), nil
}

// UpdateLayout rewrites a layout. Staff only. The studio id in the request
// scopes the write, so a layout cannot be moved between studios.
func (s *Service) UpdateLayout(ctx context.Context, req *models.SaveLayoutRequest) (*models.LayoutResponse, error) {
	s.logger.Info("UpdateLayout: studio=%d, layout=%d, user=%d", req.StudioID, req.LayoutID, req.UserID)

	if _, err := s.requireStaff(ctx, req.StudioID, req.UserID); err != nil {
		return nil, err
	}
	if err := validateLayout(req); err != nil {
		return nil, err
	}

	layout := req.ToDomainLayout()
	if err := s.studioRepo.UpdateLayout(ctx, layout); err != nil {
		if errors.Is(err, studioRepo.ErrLayoutNotFound) {
			return nil, ErrLayoutNotFound
		}
		s.logger.Error("UpdateLayout: repository error for layout=%d: %v", req.LayoutID, err)
		return nil, fmt.Errorf("%w: UpdateLayout - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLayout(layout), nil
}

// AddStaff links a user as a sub-account, enforcing the tier quota. The
// count and insert run in one serializable transaction so two concurrent
// adds cannot both pass the quota check. Owner only.
func (s *Service) AddStaff(ctx context.Context, studioID, ownerID, newStaffID int64) error {
	s.logger.Info("AddStaff: studio=%d, owner=%d, newStaff=%d", studioID, ownerID, newStaffID)

	studio, err := s.requireOwner(ctx, studioID, ownerID)
	if err != nil {
		return err
	}
	if newStaffID == studio.OwnerUserID {
		return fmt.Errorf("%w: owner is always staff", ErrInvalidInput)
	}

	limit := studio.Tier.SubAccountLimit()

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if limit > 0 {
			count, err := s.studioRepo.CountStaff(txCtx, studioID)
			if err != nil {
				return fmt.Errorf("%w: AddStaff - count staff: %v", ErrInternal, err)
			}
			if count >= limit {
				return ErrStaffLimitReached
			}
		}
		if err := s.studioRepo.AddStaff(txCtx, studioID, newStaffID); err != nil {
			if errors.Is(err, studioRepo.ErrStaffExists) {
				return ErrStaffExists
			}
			return fmt.Errorf("%w: AddStaff - insert: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrStaffLimitReached) {
			s.logger.Warn("AddStaff: studio=%d hit the %s tier limit of %d", studioID, studio.Tier, limit)
		}
		return err
	}

	s.logger.Info("AddStaff: user=%d added to studio=%d", newStaffID, studioID)
	return nil
}

// RemoveStaff unlinks a sub-account. Owner only.
func (s *Service) RemoveStaff(ctx context.Context, studioID, ownerID, staffID int64) error {
	s.logger.Info("RemoveStaff: studio=%d, owner=%d, staff=%d", studioID, ownerID, staffID)

	if _, err := s.requireOwner(ctx, studioID, ownerID); err != nil {
		return err
	}

	if err := s.studioRepo.RemoveStaff(ctx, studioID, staffID); err != nil {
		if errors.Is(err, studioRepo.ErrStaffNotFound) {
			return ErrStaffNotFound
		}
		s.logger.Error("RemoveStaff: repository error for studio=%d: %v", studioID, err)
		return fmt.Errorf("%w: RemoveStaff - repository error: %v", ErrInternal, err)
	}

	return nil
}

// GetFeatures lists the capabilities the studio's tier grants. Staff only.
func (s *Service) GetFeatures(ctx context.Context, studioID, userID int64) (*models.FeaturesResponse, error) {
	s.logger.Info("GetFeatures: studio=%d, user=%d", studioID, userID)

	studio, err := s.requireStaff(ctx, studioID, userID)
	if err != nil {
		return nil, err
	}

	features := studio.Tier.Features()
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = string(f)
	}

	return &models.FeaturesResponse{
		StudioID:        studio.ID,
		Tier:            string(studio.Tier),
		Features:        names,
		SubAccountLimit: studio.Tier.SubAccountLimit(),
	}, nil
}

func (s *Service) getStudio(ctx context.Context, id int64) (*domain.Studio, error) {
	studio, err := s.studioRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, studioRepo.ErrStudioNotFound) {
			return nil, ErrStudioNotFound
		}
		s.logger.Error("getStudio: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return studio, nil
}

func (s *Service) getLayout(ctx context.Context, id int64) (*domain.StudioLayout, error) {
	layout, err := s.studioRepo.GetLayoutByID(ctx, id)
	if err != nil {
		if errors.Is(err, studioRepo.ErrLayoutNotFound) {
			return nil, ErrLayoutNotFound
		}
		s.logger.Error("getLayout: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return layout, nil
}

func (s *Service) requireStaff(ctx context.Context, studioID, userID int64) (*domain.Studio, error) {
	studio, err := s.getStudio(ctx, studioID)
	if err != nil {
		return nil, err
	}
	if !studio.IsStaff(userID) {
		s.logger.Warn("requireStaff: user=%d is not staff of studio=%d", userID, studioID)
		return nil, ErrAccessDenied
	}
	return studio, nil
}

func (s *Service) requireOwner(ctx context.Context, studioID, userID int64) (*domain.Studio, error) {
	studio, err := s.getStudio(ctx, studioID)
	if err != nil {
		return nil, err
	}
	if studio.OwnerUserID != userID {
		s.logger.Warn("requireOwner: user=%d is not the owner of studio=%d", userID, studioID)
		return nil, ErrOwnerOnly
	}
	return studio, nil
}
