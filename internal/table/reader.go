// Package table reads employee spreadsheets and writes run reports in xlsx
// format using excelize.
package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lcftools/ndaforge/internal/core"
)

// ExcelReader parses an uploaded xlsx workbook into a core.Sheet. Only the
// first worksheet is read; the first row is treated as the header.
type ExcelReader struct{}

func NewExcelReader() *ExcelReader {
	return &ExcelReader{}
}

// Read implements core.TableReader.
func (e *ExcelReader) Read(r io.Reader) (*core.Sheet, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no worksheets")
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read worksheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return &core.Sheet{}, nil
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.TrimSpace(cell)
	}

	sheet := &core.Sheet{
		Columns: header,
		Rows:    make([]core.Row, 0, len(rows)-1),
	}
	for _, cells := range rows[1:] {
		if blankRow(cells) {
			continue
		}
		row := make(core.Row, len(header))
		for i, key := range header {
			if key == "" {
				continue
			}
			var value string
			if i < len(cells) {
				value = strings.TrimSpace(cells[i])
			}
			row[strings.ToLower(key)] = value
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	return sheet, nil
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
