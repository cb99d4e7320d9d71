package sink

import (
	"fmt"

	"acsward/domain/table"
	"acsward/internal/errors"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const excelSheet = "Sheet1"

// ExcelSink mirrors the CSV output into an .xlsx workbook for analysts who
// want the table directly in a spreadsheet.
type ExcelSink struct {
	path string
}

// NewExcelSink creates an Excel sink targeting the given file path.
func NewExcelSink(path string) *ExcelSink {
	return &ExcelSink{path: path}
}

// Write creates or overwrites the workbook with one sheet: header row first,
// one row per district.
func (s *ExcelSink) Write(runID uuid.UUID, t *table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := s.writeRow(f, 1, t.Columns()); err != nil {
		return err
	}
	for i, row := range t.Rows() {
		if err := s.writeRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(s.path); err != nil {
		return errors.WriteError(fmt.Sprintf("failed to save workbook %s", s.path), err)
	}
	return nil
}

func (s *ExcelSink) writeRow(f *excelize.File, rowNum int, cells []string) error {
	for col, value := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return errors.WriteError("failed to compute cell coordinates", err)
		}
		if err := f.SetCellValue(excelSheet, cell, value); err != nil {
			return errors.WriteError(fmt.Sprintf("failed to set cell %s", cell), err)
		}
	}
	return nil
}
