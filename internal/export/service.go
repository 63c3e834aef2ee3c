package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/musmankhan/cnic-ocr/internal/repository"
)

// Service is a tiny façade over the history repository that produces XLSX
// bytes for exports.
type Service struct {
	history repository.ExtractionRepository
	logger  *slog.Logger
}

func NewService(history repository.ExtractionRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{history: history, logger: logger}
}

// ExportExtractionsXLSX returns an XLSX workbook (as bytes) with the most
// recent extractions, newest first. limit <= 0 exports the repository default.
func (s *Service) ExportExtractionsXLSX(ctx context.Context, limit int) ([]byte, error) {
	start := time.Now()

	recs, err := s.history.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("query extractions: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Extractions"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// Drop the default sheet so the workbook opens on ours.
	_ = f.DeleteSheet("Sheet1")

	headers := []string{
		"Processed At",
		"Filename",
		"Engine",
		"Identity Number",
		"Name",
		"Father Name",
		"Gender",
		"Country of Stay",
		"Date of Birth",
		"Date of Issue",
		"Date of Expiry",
		"Confidence",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		opt := func(v *string) string {
			if v == nil {
				return ""
			}
			return *v
		}

		write(1, r.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
		write(2, r.Filename)
		write(3, r.Engine)
		write(4, opt(r.Identity))
		write(5, opt(r.Name))
		write(6, opt(r.FatherName))
		write(7, opt(r.Gender))
		write(8, opt(r.Country))
		write(9, opt(r.DateOfBirth))
		write(10, opt(r.DateOfIssue))
		write(11, opt(r.DateOfExpiry))
		write(12, r.Confidence)

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 20) // timestamp
	_ = f.SetColWidth(sheet, "B", "B", 32) // filename
	_ = f.SetColWidth(sheet, "D", "D", 18) // identity number
	_ = f.SetColWidth(sheet, "E", "F", 24) // names
	_ = f.SetColWidth(sheet, "I", "K", 14) // dates

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
