package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Sheet names used by the Excel report layout.
const (
	observationsSheet = "Observations"
	summarySheet      = "Summary"
)

// ExcelWriter writes analytics reports as Excel workbooks.
type ExcelWriter struct {
	baseDir string
}

// NewExcelWriter creates a new Excel writer. Relative output paths
// resolve under baseDir.
func NewExcelWriter(baseDir string) *ExcelWriter {
	return &ExcelWriter{baseDir: baseDir}
}

// WriteSeriesWorkbook writes a series report as a two-sheet workbook:
// the observation table and the summary statistics.
func (w *ExcelWriter) WriteSeriesWorkbook(filePath string, report SeriesReport) error {
	fullPath := w.resolvePath(filePath)

	slog.Info("Writing Excel report",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("observation_count", len(report.Series)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeObservations(f, report); err != nil {
		return err
	}
	if err := w.writeSummary(f, report); err != nil {
		return err
	}

	// Drop excelize's default sheet so the report opens on Observations.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (w *ExcelWriter) writeObservations(f *excelize.File, report SeriesReport) error {
	if _, err := f.NewSheet(observationsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	for col, header := range observationHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(observationsSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, p := range report.Series {
		dateCell, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return fmt.Errorf("failed to build cell: %w", err)
		}
		if err := f.SetCellValue(observationsSheet, dateCell, p.Date); err != nil {
			return fmt.Errorf("failed to write date: %w", err)
		}

		valueCell, err := excelize.CoordinatesToCellName(2, row+2)
		if err != nil {
			return fmt.Errorf("failed to build cell: %w", err)
		}
		if err := f.SetCellValue(observationsSheet, valueCell, p.Value); err != nil {
			return fmt.Errorf("failed to write value: %w", err)
		}
	}

	if err := f.SetColWidth(observationsSheet, "A", "A", 14); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	return nil
}

func (w *ExcelWriter) writeSummary(f *excelize.File, report SeriesReport) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	title := report.Name
	if title == "" {
		title = "Series Summary"
	}
	if err := f.SetCellValue(summarySheet, "A1", title); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}

	for i, row := range summaryRows(report) {
		labelCell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return fmt.Errorf("failed to build cell: %w", err)
		}
		if err := f.SetCellValue(summarySheet, labelCell, row[0]); err != nil {
			return fmt.Errorf("failed to write label: %w", err)
		}

		valueCell, err := excelize.CoordinatesToCellName(2, i+3)
		if err != nil {
			return fmt.Errorf("failed to build cell: %w", err)
		}
		if err := f.SetCellValue(summarySheet, valueCell, row[1]); err != nil {
			return fmt.Errorf("failed to write value: %w", err)
		}
	}

	if err := f.SetColWidth(summarySheet, "A", "A", 24); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	return nil
}

func (w *ExcelWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.baseDir == "" {
		return filePath
	}
	return filepath.Join(w.baseDir, filePath)
}
