// Package render turns reconciled tables into their two output forms: an
// XLSX workbook and HTML fragments for inline display.
package render

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fintab/fintab/internal/tables"
)

const defaultSheet = "Sheet1"

// Workbook renders one sheet per table and returns the workbook bytes.
// Sheet names are sanitized to the XLSX constraints; when two tables
// sanitize to the same sheet name the later one gets a numeric suffix.
func Workbook(tbls []tables.ReconciledTable) ([]byte, error) {
	if len(tbls) == 0 {
		return nil, fmt.Errorf("no tables to render")
	}

	f := excelize.NewFile()
	used := make(map[string]bool, len(tbls))
	sheets := make([]string, 0, len(tbls))

	for _, t := range tbls {
		sheet := uniqueSheetName(SheetName(t.Name), used)
		used[strings.ToLower(sheet)] = true
		sheets = append(sheets, sheet)

		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet %q: %w", sheet, err)
		}
		if err := writeSheet(f, sheet, t); err != nil {
			return nil, err
		}
	}

	// Drop the default sheet unless a table claimed its name.
	if !used[strings.ToLower(defaultSheet)] {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return nil, fmt.Errorf("failed to remove default sheet: %w", err)
		}
	}
	if index, err := f.GetSheetIndex(sheets[0]); err == nil {
		f.SetActiveSheet(index)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// writeSheet fills one sheet: header row first, then one row per data row.
func writeSheet(f *excelize.File, sheet string, t tables.ReconciledTable) error {
	write := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, v)
	}

	widths := make([]int, len(t.Columns))
	for j, name := range t.Columns {
		if err := write(j+1, 1, name); err != nil {
			return fmt.Errorf("failed to write header of sheet %q: %w", sheet, err)
		}
		widths[j] = len(name)
	}

	for i, row := range t.Rows {
		for j, v := range row {
			if err := write(j+1, i+2, v.Cell()); err != nil {
				return fmt.Errorf("failed to write cell of sheet %q: %w", sheet, err)
			}
			if n := len(v.Display()); n > widths[j] {
				widths[j] = n
			}
		}
	}

	for j := range t.Columns {
		col, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, columnWidth(widths[j])); err != nil {
			return err
		}
	}
	return nil
}

// columnWidth clamps a content length to a readable column width.
func columnWidth(contentLen int) float64 {
	const min, max = 10, 40
	w := contentLen + 2
	if w < min {
		w = min
	}
	if w > max {
		w = max
	}
	return float64(w)
}

// uniqueSheetName suffixes a sanitized name until it is unique in the
// workbook. Sheet names are case-insensitive.
func uniqueSheetName(name string, used map[string]bool) string {
	if !used[strings.ToLower(name)] {
		return name
	}
	for i := 2; ; i++ {
		suffix := fmt.Sprintf("_%d", i)
		candidate := name
		if len(candidate)+len(suffix) > maxSheetNameLen {
			candidate = candidate[:maxSheetNameLen-len(suffix)]
		}
		candidate += suffix
		if !used[strings.ToLower(candidate)] {
			return candidate
		}
	}
}
