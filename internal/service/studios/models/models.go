package models

import (
	"github.com/studiokita/booking-service/internal/domain"
	"github.com/studiokita/booking-service/pkg/types"
)

// StudioConfigResponse is the booking configuration staff see and edit.
type StudioConfigResponse struct {
	StudioID int64  `json:"studioId"`
	Name     string `json:"name"`

	OpenTime  types.TimeString  `json:"openTime"`
	CloseTime types.TimeString  `json:"closeTime"`
	BreakStart *types.TimeString `json:"breakStart,omitempty"`
	BreakEnd   *types.TimeString `json:"breakEnd,omitempty"`

	SlotGapMinutes          int `json:"slotGapMinutes"`
	MinBookingNoticeMinutes int `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int `json:"advanceBookingDays"`

	Tier       string  `json:"tier"`
	CalendarID *string `json:"calendarId,omitempty"`
}

// FromDomainStudio builds the config view of a studio.
func FromDomainStudio(s *domain.Studio) *StudioConfigResponse {
	return &StudioConfigResponse{
		StudioID:                s.ID,
		Name:                    s.Name,
		OpenTime:                s.OpenTime,
		CloseTime:               s.CloseTime,
		BreakStart:              s.BreakStart,
		BreakEnd:                s.BreakEnd,
		SlotGapMinutes:          s.SlotGapMinutes,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
		AdvanceBookingDays:      s.AdvanceBookingDays,
		Tier:                    string(s.Tier),
		CalendarID:              s.CalendarID,
	}
}

// UpdateStudioConfigRequest carries a partial config update. Nil fields are
// left unchanged. SetBreak distinguishes "rewrite the break window" (with
// nil start and end meaning "remove it") from "leave it alone".
type UpdateStudioConfigRequest struct {
	UserID   int64
	StudioID int64

	OpenTime  *string
	CloseTime *string

	SetBreak   bool
	BreakStart *string
	BreakEnd   *string

	SlotGapMinutes          *int
	MinBookingNoticeMinutes *int
	AdvanceBookingDays      *int

	CalendarID *string
}

// LayoutResponse is the layout view shared by public and staff endpoints.
type LayoutResponse struct {
	ID       int64 `json:"id"`
	StudioID int64 `json:"studioId"`

	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Capacity    int    `json:"capacity"`

	Price         float64 `json:"price"`
	MinutePackage int     `json:"minutePackage"`

	Photos    []string             `json:"photos"`
	Amenities []string             `json:"amenities"`
	Addons    []domain.LayoutAddon `json:"addons"`

	Active bool `json:"active"`
}

// FromDomainLayout converts a layout.
func FromDomainLayout(l *domain.StudioLayout) *LayoutResponse {
	return &LayoutResponse{
		ID:            l.ID,
		StudioID:      l.StudioID,
		Name:          l.Name,
		Description:   l.Description,
		Capacity:      l.Capacity,
		Price:         l.Price,
		MinutePackage: l.MinutePackage,
		Photos:        l.Photos,
		Amenities:     l.Amenities,
		Addons:        l.Addons,
		Active:        l.Active,
	}
}

// FromDomainLayoutList converts a layout slice.
func FromDomainLayoutList(layouts []*domain.StudioLayout) []*LayoutResponse {
	out := make([]*LayoutResponse, len(layouts))
	for i, l := range layouts {
		out[i] = FromDomainLayout(l)
	}
	return out
}

// GetLayoutsRequest lists a studio's layouts. IncludeInactive is staff only.
type GetLayoutsRequest struct {
	StudioID        int64
	UserID          int64
	IncludeInactive bool
}

// SaveLayoutRequest creates or updates a layout. LayoutID is zero on create.
type SaveLayoutRequest struct {
	UserID   int64
	StudioID int64
	LayoutID int64

	Name        string
	Description string
	Capacity    int

	Price         float64
	MinutePackage int

	Photos    []string
	Amenities []string
	Addons    []domain.LayoutAddon

	Active bool
}

// ToDomainLayout builds the domain layout from the request.
func (r *SaveLayoutRequest) ToDomainLayout() *domain.StudioLayout {
	return &domain.StudioLayout{
		ID:            r.LayoutID,
		StudioID:      r.StudioID,
		Name:          r.Name,
		Description:   r.Description,
		Capacity:      r.Capacity,
		Price:         r.Price,
		MinutePackage: r.MinutePackage,
		Photos:        r.Photos,
		Amenities:     r.Amenities,
		Addons:        r.Addons,
		Active:        r.Active,
	}
}

// FeaturesResponse lists the studio's gated capabilities.
type FeaturesResponse struct {
	StudioID        int64    `json:"studioId"`
	Tier            string   `json:"tier"`
	Features        []string `json:"features"`
	SubAccountLimit int      `json:"subAccountLimit"` // 0 = unbounded
}
