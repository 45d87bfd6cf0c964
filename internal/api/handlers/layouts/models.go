package layouts

import (
	"github.com/studiokita/booking-service/internal/domain"
	"github.com/studiokita/booking-service/internal/service/studios/models"
)

// SaveLayoutRequest is the HTTP request body for create and update.
type SaveLayoutRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Capacity    int    `json:"capacity"`

	Price         float64 `json:"price"`
	MinutePackage int     `json:"minutePackage"`

	Photos    []string             `json:"photos,omitempty"`
	Amenities []string             `json:"amenities,omitempty"`
	Addons    []domain.LayoutAddon `json:"addons,omitempty"`

	Active bool `json:"active"`
}

// ToServiceRequest converts the HTTP body. LayoutID is zero on create.
func (r *SaveLayoutRequest) ToServiceRequest(studioID, layoutID, userID int64) *models.SaveLayoutRequest {
	return &models.SaveLayoutRequest{
		UserID:        userID,
		StudioID:      studioID,
		LayoutID:      layoutID,
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
