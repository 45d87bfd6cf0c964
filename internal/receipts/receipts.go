package receipts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/studiokita/booking-service/internal/config"
	"github.com/studiokita/booking-service/internal/domain"
)

// Logger is the minimal logging surface the generator needs.
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Generator renders booking receipts as PDF files into a spool directory.
// Files are handed to the WhatsApp gateway as documents and removed after a
// delay, so the spool never grows unbounded.
type Generator struct {
	spoolDir     string
	businessName string
	footerNote   string
	cleanupAfter time.Duration
	log          Logger
}

func NewGenerator(cfg config.ReceiptsConfig, log Logger) (*Generator, error) {
	if err := os.MkdirAll(cfg.SpoolDir, 0o755); err != nil {
		return nil, fmt.Errorf("receipts: create spool dir: %w", err)
	}

	return &Generator{
		spoolDir:     cfg.SpoolDir,
		businessName: cfg.BusinessName,
		footerNote:   cfg.FooterNote,
		cleanupAfter: time.Duration(cfg.CleanupAfterMin) * time.Minute,
		log:          log,
	}, nil
}

// Generate renders the receipt and returns the file path. The file is
// scheduled for removal after the configured delay.
func (g *Generator) Generate(ctx context.Context, booking *domain.Booking, studio *domain.Studio, layout *domain.StudioLayout) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, g.businessName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, studio.Name, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, fmt.Sprintf("Booking Receipt %s", booking.Reference), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	writeRow := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}

	writeRow("Customer", booking.CustomerName)
	writeRow("Phone", booking.CustomerPhone)
	writeRow("Layout", layout.Name)
	writeRow("Date", booking.BookingDate.Format("2006-01-02"))
	writeRow("Time", fmt.Sprintf("%s - %s", booking.StartTime, booking.EndTime))
	writeRow("Duration", fmt.Sprintf("%d minutes", booking.DurationMinutes))
	if booking.HasAddon() {
		writeRow("Addon", *booking.AddonName)
	}
	writeRow("Payment", fmt.Sprintf("%s (%s)", booking.PaymentMethod, booking.PaymentType))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	writeRow("Total", fmt.Sprintf("RM %.2f", booking.TotalPrice))

	if g.footerNote != "" {
		pdf.Ln(10)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 7, g.footerNote, "", 1, "C", false, 0, "")
	}

	path := filepath.Join(g.spoolDir, fmt.Sprintf("receipt_%s.pdf", booking.Reference))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("receipts: write %s: %w", path, err)
	}

	g.scheduleCleanup(path)
	g.log.Info("Receipt generated for booking %s at %s", booking.Reference, path)

	return path, nil
}

func (g *Generator) scheduleCleanup(path string) {
	if g.cleanupAfter <= 0 {
		return
	}
	time.AfterFunc(g.cleanupAfter, func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			g.log.Error("Receipt cleanup failed for %s: %v", path, err)
		}
	})
}
