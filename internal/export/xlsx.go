// Package export writes the clean table out as an xlsx workbook.
package export

import (
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// WriteXLSX writes df to w as a single-sheet workbook, header row first.
// Undefined cells are left blank rather than carrying a NaN sentinel.
func WriteXLSX(df dataframe.DataFrame, w io.Writer) error {
	if df.Err != nil {
		return fmt.Errorf("export: %w", df.Err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for r, row := range df.Records() {
		for c, value := range row {
			if r > 0 && value == "NaN" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("export cell %d,%d: %w", r, c, err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("export cell %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
