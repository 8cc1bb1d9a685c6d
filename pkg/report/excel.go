package report

import (
	"fmt"
	"os"

	"github.com/chenBenjamin97/shot-analyzer/pkg/shot"
	"github.com/chenBenjamin97/shot-analyzer/pkg/utils"
	"github.com/xuri/excelize/v2"
)

//SheetName is the name of the only worksheet of the spreadsheet
const SheetName = "Shot"

//WriteSpreadsheet writes the metrics table (header + one line per metric) to an .xlsx file.
//Point rows fill Frame, X and Y; value rows fill Value only. Numbers are stored unrounded.
func WriteSpreadsheet(path string, metrics shot.Metrics) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("WriteSpreadsheet: Error, got '%v'", err)
	}

	for col, title := range utils.TableHeader {
		if err := setCell(f, col+1, 1, title); err != nil {
			return err
		}
	}

	for i, row := range metrics.Rows() {
		line := i + 2
		if err := setCell(f, 1, line, row.Metric); err != nil {
			return err
		}

		if row.HasPoint {
			if err := setCell(f, 2, line, row.Frame); err != nil {
				return err
			}
			if err := setCell(f, 3, line, row.X); err != nil {
				return err
			}
			if err := setCell(f, 4, line, row.Y); err != nil {
				return err
			}
		}

		if row.HasValue {
			if err := setCell(f, 5, line, row.Value); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		os.Remove(path)
		return fmt.Errorf("WriteSpreadsheet: Could not save '%s', got '%v'", path, err)
	}

	return nil
}

func setCell(f *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("WriteSpreadsheet: Error, got '%v'", err)
	}

	if err := f.SetCellValue(SheetName, cell, value); err != nil {
		return fmt.Errorf("WriteSpreadsheet: Could not set cell %s, got '%v'", cell, err)
	}

	return nil
}
