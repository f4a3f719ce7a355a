package receipt

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Expense"

var exportColumns = []string{"Category", "Amount", "Date"}

// writeWorkbook writes one row per expense under a header row
func writeWorkbook(w io.Writer, expenses []*Expense) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for col, title := range exportColumns {
		if err := setCell(f, col+1, 1, title); err != nil {
			return err
		}
	}

	for i, e := range expenses {
		row := i + 2
		values := []any{e.Category, fromCents(e.Amount), e.Date.Format("2006-01-02")}
		for col, v := range values {
			if err := setCell(f, col+1, row, v); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellValue(exportSheet, cell, value); err != nil {
		return fmt.Errorf("setting %s: %w", cell, err)
	}
	return nil
}
