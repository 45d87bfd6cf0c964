package studios

import (
	"fmt"

	"github.com/studiokita/booking-service/internal/domain"
	"github.com/studiokita/booking-service/internal/service/studios/models"
	"github.com/studiokita/booking-service/pkg/types"
)

// applyConfigUpdate merges the request onto a copy of the current studio and
// returns the repository update. Validation runs on the merged result so a
// partial update cannot leave the configuration inconsistent.
func applyConfigUpdate(studio *domain.Studio, req *models.UpdateStudioConfigRequest) (domain.StudioConfigUpdate, error) {
	effective := *studio
	update := domain.StudioConfigUpdate{}

	if req.OpenTime != nil {
		ts, err := types.NewTimeStringFromString(*req.OpenTime)
		if err != nil {
			return update, fmt.Errorf("%w: open time: %v", ErrInvalidInput, err)
		}
		effective.OpenTime = ts
		update.OpenTime = &ts
	}
	if req.CloseTime != nil {
		ts, err := types.NewTimeStringFromString(*req.CloseTime)
		if err != nil {
			return update, fmt.Errorf("%w: close time: %v", ErrInvalidInput, err)
		}
		effective.CloseTime = ts
		update.CloseTime = &ts
	}

	if req.SetBreak {
		update.SetBreak = true
		if (req.BreakStart == nil) != (req.BreakEnd == nil) {
			return update, fmt.Errorf("%w: break start and end must be set together", ErrInvalidInput)
		}
		effective.BreakStart = nil
		effective.BreakEnd = nil
		if req.BreakStart != nil {
			start, err := types.NewTimeStringFromString(*req.BreakStart)
			if err != nil {
				return update, fmt.Errorf("%w: break start: %v", ErrInvalidInput, err)
			}
			end, err := types.NewTimeStringFromString(*req.BreakEnd)
			if err != nil {
				return update, fmt.Errorf("%w: break end: %v", ErrInvalidInput, err)
			}
			effective.BreakStart = &start
			effective.BreakEnd = &end
			update.BreakStart = &start
			update.BreakEnd = &end
		}
	}

	if req.SlotGapMinutes != nil {
		effective.SlotGapMinutes = *req.SlotGapMinutes
		update.SlotGapMinutes = req.SlotGapMinutes
	}
	if req.MinBookingNoticeMinutes != nil {
		effective.MinBookingNoticeMinutes = *req.MinBookingNoticeMinutes
		update.MinBookingNoticeMinutes = req.MinBookingNoticeMinutes
	}
	if req.AdvanceBookingDays != nil {
		effective.AdvanceBookingDays = *req.AdvanceBookingDays
		update.AdvanceBookingDays = req.AdvanceBookingDays
	}
	if req.CalendarID != nil {
		update.CalendarID = req.CalendarID
	}

	if err := validateEffectiveConfig(&effective); err != nil {
		return update, err
	}

	return update, nil
}

func validateEffectiveConfig(s *domain.Studio) error {
	if !s.OpenTime.IsBefore(s.CloseTime) {
		return fmt.Errorf("%w: open time must be before close time", ErrInvalidInput)
	}

	if s.HasBreak() {
		if !s.BreakStart.IsBefore(*s.BreakEnd) {
			return fmt.Errorf("%w: break start must be before break end", ErrInvalidInput)
		}
		if s.BreakStart.IsBefore(s.OpenTime) || s.BreakEnd.IsAfter(s.CloseTime) {
			return fmt.Errorf("%w: break must be within operating hours", ErrInvalidInput)
		}
	}

	if s.SlotGapMinutes < domain.MinSlotGapMinutes || s.SlotGapMinutes > domain.MaxSlotGapMinutes {
		return fmt.Errorf("%w: slot gap must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotGapMinutes, domain.MaxSlotGapMinutes)
	}
	if s.MinBookingNoticeMinutes < 0 {
		return fmt.Errorf("%w: minimum booking notice cannot be negative", ErrInvalidInput)
	}
	if s.AdvanceBookingDays < domain.MinAdvanceBookingDays || s.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advance booking window must be between %d and %d days",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	return nil
}

func validateLayout(req *models.SaveLayoutRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: layout name is required", ErrInvalidInput)
	}
	if req.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	if req.MinutePackage < domain.MinMinutePackage || req.MinutePackage > domain.MaxMinutePackage {
		return fmt.Errorf("%w: minute package must be between %d and %d minutes",
			ErrInvalidInput, domain.MinMinutePackage, domain.MaxMinutePackage)
	}

	seen := make(map[string]struct{}, len(req.Addons))
	for _, addon := range req.Addons {
		if addon.Name == "" {
			return fmt.Errorf("%w: addon name is required", ErrInvalidInput)
		}
		if addon.Price < 0 {
			return fmt.Errorf("%w: addon price cannot be negative", ErrInvalidInput)
		}
		if _, dup := seen[addon.Name]; dup {
			return fmt.Errorf("%w: duplicate addon name %q", ErrInvalidInput, addon.Name)
		}
		seen[addon.Name] = struct{}{}
	}

	return nil
}
