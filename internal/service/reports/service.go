package reports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/studiokita/booking-service/internal/domain"
	studioRepo "github.com/studiokita/booking-service/internal/infra/storage/studio"
)

const sheetName = "Bookings"

var exportHeaders = []string{
	"Reference", "Date", "Start", "End", "Duration (min)",
	"Customer", "Phone", "Email", "Layout ID",
	"Addon", "Total (RM)", "Payment", "Status", "Notes",
}

// ExportRequest scopes a bookings export. Nil period bounds mean unbounded.
type ExportRequest struct {
	UserID   int64
	StudioID int64

	StartDate *time.Time
	EndDate   *time.Time

	IncludeReleased bool
}

// Service produces spreadsheet exports of a studio's bookings.
type Service struct {
	bookingRepo BookingRepository
	studioRepo  StudioRepository
	logger      Logger
}

func NewService(bookingRepo BookingRepository, studioRepo StudioRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		studioRepo:  studioRepo,
		logger:      logger,
	}
}

// ExportBookings writes an xlsx workbook of the studio's bookings to w and
// returns the suggested file name. Staff only.
func (s *Service) ExportBookings(ctx context.Context, req *ExportRequest, w io.Writer) (string, error) {
	s.logger.Info("ExportBookings: studio=%d, user=%d", req.StudioID, req.UserID)

	studio, err := s.studioRepo.GetByID(ctx, req.StudioID)
	if err != nil {
		if errors.Is(err, studioRepo.ErrStudioNotFound) {
			return "", ErrStudioNotFound
		}
		s.logger.Error("ExportBookings: load studio=%d: %v", req.StudioID, err)
		return "", fmt.Errorf("%w: load studio: %v", ErrInternal, err)
	}
	if !studio.IsStaff(req.UserID) {
		s.logger.Warn("ExportBookings: user=%d is not staff of studio=%d", req.UserID, req.StudioID)
		return "", ErrAccessDenied
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return "", fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByStudioWithFilter(ctx, domain.StudioBookingsFilter{
		StudioID:        req.StudioID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		IncludeReleased: req.IncludeReleased,
	})
	if err != nil {
		s.logger.Error("ExportBookings: load bookings for studio=%d: %v", req.StudioID, err)
		return "", fmt.Errorf("%w: load bookings: %v", ErrInternal, err)
	}

	if err := s.writeWorkbook(w, studio, bookings); err != nil {
		return "", err
	}

	s.logger.Info("ExportBookings: exported %d bookings for studio=%d", len(bookings), req.StudioID)
	return exportFileName(req), nil
}

func (s *Service) writeWorkbook(w io.Writer, studio *domain.Studio, bookings []*domain.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("%w: create sheet: %v", ErrInternal, err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s - bookings export", studio.Name))
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, b := range bookings {
		row := i + 3
		values := []interface{}{
			b.Reference,
			b.BookingDate.Format(domain.DateFormat),
			b.StartTime.String(),
			b.EndTime.String(),
			b.DurationMinutes,
			b.CustomerName,
			b.CustomerPhone,
			b.CustomerEmail,
			b.LayoutID,
			derefOrEmpty(b.AddonName),
			b.TotalPrice,
			fmt.Sprintf("%s / %s", b.PaymentMethod, b.PaymentType),
			string(b.Status),
			derefOrEmpty(b.Notes),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 14)
	_ = f.SetColWidth(sheetName, "B", "E", 12)
	_ = f.SetColWidth(sheetName, "F", "H", 22)
	_ = f.SetColWidth(sheetName, "I", "N", 16)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("%w: write workbook: %v", ErrInternal, err)
	}
	return nil
}

func exportFileName(req *ExportRequest) string {
	from, to := "all", "all"
	if req.StartDate != nil {
		from = req.StartDate.Format(domain.DateFormat)
	}
	if req.EndDate != nil {
		to = req.EndDate.Format(domain.DateFormat)
	}
	return fmt.Sprintf("bookings_%d_%s_to_%s.xlsx", req.StudioID, from, to)
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
