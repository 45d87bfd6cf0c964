package export_bookings

import (
	"context"
	"io"

	"github.com/studiokita/booking-service/internal/service/reports"
)

type ReportService interface {
	ExportBookings(ctx context.Context, req *reports.ExportRequest, w io.Writer) (string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
