package client

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportSheet is the worksheet name of exported workbooks.
const ExportSheet = "Test Cases"

var exportHeader = []any{"ID", "Title", "Steps", "Expected Result", "Priority", "Execution Status"}

var exportWidths = map[string]float64{
	"A": 15,
	"B": 40,
	"C": 60,
	"D": 60,
	"E": 15,
	"F": 18,
}

// ExportFileName returns TestCases_<YYYY-MM-DD>.xlsx for the UTC date of now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("TestCases_%s.xlsx", now.UTC().Format("2006-01-02"))
}

// ExportXLSX writes rows to dir/TestCases_<date>.xlsx and returns the path.
func ExportXLSX(rows []DisplayRow, dir string, now time.Time) (string, error) {
	if len(rows) == 0 {
		return "", ErrNothingToExport
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(dir, ExportFileName(now))
	f, err := buildWorkbook(rows)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

// WriteXLSX writes the workbook for rows to w.
func WriteXLSX(w io.Writer, rows []DisplayRow) error {
	if len(rows) == 0 {
		return ErrNothingToExport
	}
	f, err := buildWorkbook(rows)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func buildWorkbook(rows []DisplayRow) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	if err := f.SetSheetRow(ExportSheet, "A1", &exportHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		values := []any{r.ID, r.Title, r.Steps, r.ExpectedResult, r.Priority, r.Status}
		if err := f.SetSheetRow(ExportSheet, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	for col, width := range exportWidths {
		if err := f.SetColWidth(ExportSheet, col, col, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetCellStyle(ExportSheet, "A1", "F1", headerStyle); err != nil {
		f.Close()
		return nil, fmt.Errorf("style header: %w", err)
	}

	bodyStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create body style: %w", err)
	}
	lastCell, _ := excelize.CoordinatesToCellName(len(exportHeader), len(rows)+1)
	if err := f.SetCellStyle(ExportSheet, "A2", lastCell, bodyStyle); err != nil {
		f.Close()
		return nil, fmt.Errorf("style rows: %w", err)
	}

	return f, nil
}
