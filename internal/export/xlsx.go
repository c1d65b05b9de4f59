// Package export encodes tabular report results as downloadable
// spreadsheet files.
package export

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/MajjiR/zingoStats/internal/report"
)

// XLSXContentType is the MIME type for the Open XML spreadsheet
// format.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const sheetName = "Sheet1"

// Table is an ordered tabular result: a header and one row of cells
// per record. Cells must be string, int, int64, or float64; anything
// else is a programming error in the caller, not a runtime condition.
type Table struct {
	Columns []string
	Rows    [][]any
}

// File is a fully encoded download: filename, MIME type, and content.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Encode writes the table as a single-sheet workbook: header row
// first, then one row per record, no styling. Output is deterministic
// for identical input up to the container metadata the format itself
// stamps.
func Encode(t Table) ([]byte, error) {
	if len(t.Columns) == 0 {
		return nil, errors.New("export: table has no columns")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("export: header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return nil, fmt.Errorf("export: write header: %w", err)
		}
	}

	for ri, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return nil, fmt.Errorf("export: row %d has %d cells, want %d", ri, len(row), len(t.Columns))
		}
		for ci, v := range row {
			switch v.(type) {
			case string, int, int64, float64:
				// representable
			default:
				return nil, fmt.Errorf("export: unsupported cell type %T in column %q", v, t.Columns[ci])
			}
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return nil, fmt.Errorf("export: data cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("export: write cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename builds the download name for a report over a range, e.g.
// restaurant_stats_2024-01-02_to_2024-01-31.xlsx.
func Filename(stem string, rng report.DateRange) string {
	return stem + "_" + rng.Slug() + ".xlsx"
}
