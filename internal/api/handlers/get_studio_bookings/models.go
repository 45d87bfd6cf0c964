package get_studio_bookings

import (
	"strconv"
	"time"

	"github.com/studiokita/booking-service/internal/domain"
	"github.com/studiokita/booking-service/internal/service/bookings/models"
)

// ToServiceRequest parses the optional query parameters into the service
// request. Empty strings mean the filter is not applied.
func ToServiceRequest(studioID, userID int64, layoutIDStr, statusStr, startDateStr, endDateStr, includeReleasedStr string) (*models.GetStudioBookingsRequest, error) {
	req := &models.GetStudioBookingsRequest{
		StudioID: studioID,
		UserID:   userID,
	}

	if layoutIDStr != "" {
		layoutID, err := strconv.ParseInt(layoutIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.LayoutID = &layoutID
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if includeReleasedStr != "" {
		includeReleased, err := strconv.ParseBool(includeReleasedStr)
		if err != nil {
			return nil, err
		}
		req.IncludeReleased = includeReleased
	}

	return req, nil
}
