package table

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/lcftools/ndaforge/internal/core"
)

// ReportSheetName is the worksheet the per-row report is written to.
const ReportSheetName = "Report"

var reportHeader = []interface{}{"emp_name", "filename", "status"}

// ExcelWriter produces the run report workbook.
type ExcelWriter struct{}

func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{}
}

// WriteReport implements core.TableWriter. Entries are written in the order
// given, one row per source row, after a fixed header.
func (e *ExcelWriter) WriteReport(entries []core.ReportEntry) ([]byte, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName("Sheet1", ReportSheetName); err != nil {
		return nil, fmt.Errorf("name report sheet: %w", err)
	}

	if err := wb.SetSheetRow(ReportSheetName, "A1", &reportHeader); err != nil {
		return nil, fmt.Errorf("write report header: %w", err)
	}

	for i, entry := range entries {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{entry.EmpName, entry.Filename, entry.Status}
		if err := wb.SetSheetRow(ReportSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write report row %d: %w", i+1, err)
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize report: %w", err)
	}
	return buf.Bytes(), nil
}
