package studios

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiokita/booking-service/internal/domain"
	studioRepo "github.com/studiokita/booking-service/internal/infra/storage/studio"
	"github.com/studiokita/booking-service/internal/service/studios/models"
	"github.com/studiokita/booking-service/pkg/types"
)

type fakeStudioRepo struct {
	studios map[int64]*domain.Studio
	layouts map[int64]*domain.StudioLayout

	staffCount  int
	staffExists bool

	lastConfigUpdate domain.StudioConfigUpdate
	addedStaff       []int64
	removedStaff     []int64
	countCalled      bool
}

func (f *fakeStudioRepo) GetByID(_ context.Context, id int64) (*domain.Studio, error) {
	s, ok := f.studios[id]
	if !ok {
		return nil, studioRepo.ErrStudioNotFound
	}
	return s, nil
}

func (f *fakeStudioRepo) UpdateConfig(_ context.Context, id int64, update domain.StudioConfigUpdate) error {
	if _, ok := f.studios[id]; !ok {
		return studioRepo.ErrStudioNotFound
	}
	f.lastConfigUpdate = update
	return nil
}

func (f *fakeStudioRepo) GetLayoutByID(_ context.Context, id int64) (*domain.StudioLayout, error) {
	l, ok := f.layouts[id]
	if !ok {
		return nil, studioRepo.ErrLayoutNotFound
	}
	return l, nil
}

func (f *fakeStudioRepo) GetLayoutsByStudioID(_ context.Context, studioID int64, includeInactive bool) ([]*domain.StudioLayout, error) {
	out := make([]*domain.StudioLayout, 0)
	for _, l := range f.layouts {
		if l.StudioID != studioID {
			continue
		}
		if !l.Active && !includeInactive {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeStudioRepo) CreateLayout(_ context.Context, layout *domain.StudioLayout) (*domain.StudioLayout, error) {
	layout.ID = int64(len(f.layouts) + 1)
	return layout, nil
}

func (f *fakeStudioRepo) UpdateLayout(_ context.Context, layout *domain.StudioLayout) error {
	existing, ok := f.layouts[layout.ID]
	if !ok || existing.StudioID != layout.StudioID {
		return studioRepo.ErrLayoutNotFound
	}
	f.layouts[layout.ID] = layout
	return nil
}

func (f *fakeStudioRepo) AddStaff(_ context.Context, studioID, userID int64) error {
	if f.staffExists {
		return studioRepo.ErrStaffExists
	}
	f.addedStaff = append(f.addedStaff, userID)
	return nil
}

func (f *fakeStudioRepo) RemoveStaff(_ context.Context, studioID, userID int64) error {
	if f.staffCount == 0 {
		return studioRepo.ErrStaffNotFound
	}
	f.removedStaff = append(f.removedStaff, userID)
	return nil
}

func (f *fakeStudioRepo) CountStaff(_ context.Context, studioID int64) (int, error) {
	f.countCalled = true
	return f.staffCount, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

const (
	ownerID    = int64(1)
	staffID    = int64(10)
	outsiderID = int64(99)
)

func ts(s string) types.TimeString { return types.TimeString(s) }

func fixtureStudio(tier domain.PackageTier) *domain.Studio {
	return &domain.Studio{
		ID:                      5,
		Name:                    "Studio Lima",
		OpenTime:                ts("09:00"),
		CloseTime:               ts("18:00"),
		SlotGapMinutes:          60,
		MinBookingNoticeMinutes: 60,
		Tier:                    tier,
		OwnerUserID:             ownerID,
		StaffIDs:                []int64{staffID},
	}
}

func fixtureSvc(tier domain.PackageTier) (*Service, *fakeStudioRepo) {
	repo := &fakeStudioRepo{
		studios: map[int64]*domain.Studio{5: fixtureStudio(tier)},
		layouts: map[int64]*domain.StudioLayout{},
	}
	return NewService(repo, passthroughTxManager{}, noopLogger{}), repo
}

func TestGetConfig(t *testing.T) {
	svc, _ := fixtureSvc(domain.TierGold)

	resp, err := svc.GetConfig(context.Background(), 5, staffID)
	require.NoError(t, err)
	assert.Equal(t, ts("09:00"), resp.OpenTime)
	assert.Equal(t, "gold", resp.Tier)

	_, err = svc.GetConfig(context.Background(), 5, outsiderID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateConfig_Partial(t *testing.T) {
	svc, repo := fixtureSvc(domain.TierGold)

	gap := 30
	resp, err := svc.UpdateConfig(context.Background(), &models.UpdateStudioConfigRequest{
		UserID:         staffID,
		StudioID:       5,
		SlotGapMinutes: &gap,
	})
	require.NoError(t, err)
	require.NotNil(t, repo.lastConfigUpdate.SlotGapMinutes)
	assert.Equal(t, 30, *repo.lastConfigUpdate.SlotGapMinutes)
	assert.Nil(t, repo.lastConfigUpdate.OpenTime, "untouched fields stay nil")
	assert.NotNil(t, resp)
}

func TestUpdateConfig_SetAndClearBreak(t *testing.T) {
	svc, repo := fixtureSvc(domain.TierGold)

	start, end := "13:00", "14:00"
	_, err := svc.UpdateConfig(context.Background(), &models.UpdateStudioConfigRequest{
		UserID:     staffID,
		StudioID:   5,
		SetBreak:   true,
		BreakStart: &start,
		BreakEnd:   &end,
	})
	require.NoError(t, err)
	assert.True(t, repo.lastConfigUpdate.SetBreak)
	require.NotNil(t, repo.lastConfigUpdate.BreakStart)
	assert.Equal(t, ts("13:00"), *repo.lastConfigUpdate.BreakStart)

	_, err = svc.UpdateConfig(context.Background(), &models.UpdateStudioConfigRequest{
		UserID:   staffID,
		StudioID: 5,
		SetBreak: true,
	})
	require.NoError(t, err)
	assert.True(t, repo.lastConfigUpdate.SetBreak)
	assert.Nil(t, repo.lastConfigUpdate.BreakStart)
	assert.Nil(t, repo.lastConfigUpdate.BreakEnd)
}

func TestUpdateConfig_Validation(t *testing.T) {
	svc, _ := fixtureSvc(domain.TierGold)

	strPtr := func(s string) *string { return &s }
	intPtr := func(i int) *int { return &i }

	cases := []struct {
		name string
		req  models.UpdateStudioConfigRequest
	}{
		{"open after close", models.UpdateStudioConfigRequest{OpenTime: strPtr("19:00")}},
		{"malformed time", models.UpdateStudioConfigRequest{OpenTime: strPtr("9am")}},
		{"gap too small", models.UpdateStudioConfigRequest{SlotGapMinutes: intPtr(10)}},
		{"gap too large", models.UpdateStudioConfigRequest{SlotGapMinutes: intPtr(300)}},
		{"negative notice", models.UpdateStudioConfigRequest{MinBookingNoticeMinutes: intPtr(-1)}},
		{"advance window too long", models.UpdateStudioConfigRequest{AdvanceBookingDays: intPtr(400)}},
		{"break outside hours", models.UpdateStudioConfigRequest{
			SetBreak: true, BreakStart: strPtr("08:00"), BreakEnd: strPtr("10:00"),
		}},
		{"break start only", models.UpdateStudioConfigRequest{
			SetBreak: true, BreakStart: strPtr("13:00"),
		}},
		{"break inverted", models.UpdateStudioConfigRequest{
			SetBreak: true, BreakStart: strPtr("14:00"), BreakEnd: strPtr("13:00"),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			req.UserID = staffID
			req.StudioID = 5
			_, err := svc.UpdateConfig(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetLayouts_InactiveVisibility(t *testing.T) {
	svc, repo := fixtureSvc(domain.TierGold)
	repo.layouts[1] = &domain.StudioLayout{ID: 1, StudioID: 5, Name: "A", Active: true}
	repo.layouts[2] = &domain.StudioLayout{ID: 2, StudioID: 5, Name: "B", Active: false}

	public, err := svc.GetLayouts(context.Background(), &models.GetLayoutsRequest{StudioID: 5})
	require.NoError(t, err)
	assert.Len(t, public, 1)

	all, err := svc.GetLayouts(context.Background(), &models.GetLayoutsRequest{
		StudioID: 5, UserID: staffID, IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.GetLayouts(context.Background(), &models.GetLayoutsRequest{
		StudioID: 5, UserID: outsiderID, IncludeInactive: true,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetLayout_PublicScope(t *testing.T) {
	svc, repo := fixtureSvc(domain.TierGold)
	repo.layouts[1] = &domain.StudioLayout{ID: 1, StudioID: 5, Name: "A", Active: true}
	repo.layouts[2] = &domain.StudioLayout{ID: 2, StudioID: 5, Name: "B", Active: false}
	repo.layouts[3] = &domain.StudioLayout{ID: 3, StudioID: 6, Name: "C", Active: true}

	resp, err := svc.GetLayout(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.Equal(t, "A", resp.Name)

	_, err = svc.GetLayout(context.Background(), 5, 2)
	assert.ErrorIs(t, err, ErrLayoutNotFound, "inactive layouts are hidden")

	_, err = svc.GetLayout(context.Background(), 5, 3)
	assert.ErrorIs(t, err, ErrLayoutNotFound, "other studio's layout is hidden")
}

func TestCreateLayout(t *testing.T) {
	svc, _ := fixtureSvc(domain.TierGold)

	resp, err := svc.CreateLayout(context.Background(), &models.SaveLayoutRequest{
		UserID:        staffID,
		StudioID:      5,
		Name:          "Natural Light Room",
		Capacity:      8,
		Price:         150,
		MinutePackage: 60,
		Addons:        []domain.LayoutAddon{{Name: "Smoke machine", Price: 50}},
		Active:        true,
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, 150.0, resp.Price)
}

func TestCreateLayout_Validation(t *testing.T) {
	svc, _ := fixtureSvc(domain.TierGold)

	base := models.SaveLayoutRequest{
		UserID: staffID, StudioID: 5,
		Name: "Room", Capacity: 4, Price: 100, MinutePackage: 60,
	}

	cases := []struct {
		name   string
		mutate func(*models.SaveLayoutRequest)
	}{
		{"empty name", func(r *models.SaveLayoutRequest) { r.Name = "" }},
		{"zero capacity", func(r *models.SaveLayoutRequest) { r.Capacity = 0 }},
		{"negative price", func(r *models.SaveLayoutRequest) { r.Price = -1 }},
		{"package too short", func(r *models.SaveLayoutRequest) { r.MinutePackage = 15 }},
		{"package too long", func(r *models.SaveLayoutRequest) { r.MinutePackage = 600 }},
		{"duplicate addon", func(r *models.SaveLayoutRequest) {
			r.Addons = []domain.LayoutAddon{{Name: "Props", Price: 10}, {Name: "Props", Price: 20}}
		}},
		{"negative addon price", func(r *models.SaveLayoutRequest) {
			r.Addons = []domain.LayoutAddon{{Name: "Props", Price: -5}}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			_, err := svc.CreateLayout(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateLayout_NotFound(t *testing.T) {
	svc, _ := fixtureSvc(domain.TierGold)

	_, err := svc.UpdateLayout(context.Background(), &models.SaveLayoutRequest{
		UserID: staffID, StudioID: 5, LayoutID: 77,
		Name: "Room", Capacity: 4, Price: 100, MinutePackage: 60,
	})
	assert.ErrorIs(t, err, ErrLayoutNotFound)
}

func TestAddStaff_TierQuota(t *testing.T) {
	t.Run("SilverAtLimit", func(t *testing.T) {
		svc, repo := fixtureSvc(domain.TierSilver)
		repo.staffCount = 1

		err := svc.AddStaff(context.Background(), 5, ownerID, 20)
		assert.ErrorIs(t, err, ErrStaffLimitReached)
		assert.Empty(t, repo.addedStaff)
	})

	t.Run("GoldUnderLimit", func(t *testing.T) {
		svc, repo := fixtureSvc(domain.TierGold)
		repo.staffCount = 1

		err := svc.AddStaff(context.Background(), 5, ownerID, 20)
		require.NoError(t, err)
		assert.Equal(t, []int64{20}, repo.addedStaff)
	})

	t.Run("PlatinumUnbounded", func(t *testing.T) {
		svc, repo := fixtureSvc(domain.TierPlatinum)
		repo.staffCount = 50

		err := svc.AddStaff(context.Background(), 5, ownerID, 20)
		require.NoError(t, err)
		assert.False(t, repo.countCalled, "no quota check when the tier is unbounded")
	})
}

func TestAddStaff_OwnerOnly(t *testing.T) {
	svc, _ := fixtureSvc(domain.TierGold)

	err := svc.AddStaff(context.Background(), 5, staffID, 20)
	assert.ErrorIs(t, err, ErrOwnerOnly)
}

func TestAddStaff_AlreadyExists(t *testing.T) {
	svc, repo := fixtureSvc(domain.TierGold)
	repo.staffExists = true

	err := svc.AddStaff(context.Background(), 5, ownerID, staffID)
	assert.ErrorIs(t, err, ErrStaffExists)
}

func TestRemoveStaff(t *testing.T) {
	svc, repo := fixtureSvc(domain.TierGold)
	repo.staffCount = 1

	require.NoError(t, svc.RemoveStaff(context.Background(), 5, ownerID, staffID))
	assert.Equal(t, []int64{staffID}, repo.removedStaff)

	repo.staffCount = 0
	err := svc.RemoveStaff(context.Background(), 5, ownerID, 77)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestGetFeatures(t *testing.T) {
	svc, _ := fixtureSvc(domain.TierPlatinum)

	resp, err := svc.GetFeatures(context.Background(), 5, staffID)
	require.NoError(t, err)
	assert.Equal(t, "platinum", resp.Tier)
	assert.Contains(t, resp.Features, "fpx_payment")
	assert.Equal(t, 0, resp.SubAccountLimit)

	_, err = svc.GetFeatures(context.Background(), 5, outsiderID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
