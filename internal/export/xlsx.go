package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Line Items"

// WriteXLSX renders line-item entries as an Excel workbook with a header
// row, one row per item, and a grand-total row.
func WriteXLSX(w io.Writer, entries []Entry) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("export.WriteXLSX rename sheet: %w", err)
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("export.WriteXLSX header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return fmt.Errorf("export.WriteXLSX header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCol, _ := excelize.CoordinatesToCellName(len(columns), 1)
		_ = f.SetCellStyle(sheetName, "A1", lastCol, headerStyle)
	}

	var grandTotal float64
	for i := range entries {
		e := &entries[i]
		item := &e.Item
		total := lineTotal(item)
		grandTotal += total

		rowVals := []any{
			e.FieldLabel,
			item.DisplayName(),
			item.Description,
			item.Quantity,
			item.Price,
			total,
			formatSelected(item.Selected),
		}
		for j, v := range rowVals {
			cell, cerr := excelize.CoordinatesToCellName(j+1, i+2)
			if cerr != nil {
				return fmt.Errorf("export.WriteXLSX cell: %w", cerr)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("export.WriteXLSX row %d: %w", i+2, err)
			}
		}
	}

	totalRow := len(entries) + 2
	labelCell, _ := excelize.CoordinatesToCellName(1, totalRow)
	totalCell, _ := excelize.CoordinatesToCellName(6, totalRow)
	if err := f.SetCellValue(sheetName, labelCell, "Total"); err != nil {
		return fmt.Errorf("export.WriteXLSX total label: %w", err)
	}
	if err := f.SetCellValue(sheetName, totalCell, grandTotal); err != nil {
		return fmt.Errorf("export.WriteXLSX total: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export.WriteXLSX write: %w", err)
	}
	return nil
}
