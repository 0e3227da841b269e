package app

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hyperifyio/orderextract/internal/order"
)

const xlsxSheet = "Orders"

// writeOrderXLSX writes a workbook with a header row of dashboard labels and
// one row for the order. Sentinel values are left as empty cells; warnings
// go to the last column.
func writeOrderXLSX(rec order.Record, outPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	rows := orderRows(rec)
	for i, r := range rows {
		if err := setCell(f, i+1, 1, r.Label); err != nil {
			return err
		}
		value := ""
		if order.Present(r.Value) {
			value = r.Value
		}
		if err := setCell(f, i+1, 2, value); err != nil {
			return err
		}
	}
	if err := setCell(f, len(rows)+1, 1, "경고"); err != nil {
		return err
	}
	if err := setCell(f, len(rows)+1, 2, strings.Join(rec.WarningStrings(), "; ")); err != nil {
		return err
	}
	if err := f.SetColWidth(xlsxSheet, "A", "A", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(xlsxSheet, "B", "I", 40); err != nil {
		return err
	}
	return f.SaveAs(outPath)
}

func setCell(f *excelize.File, col, rowNum int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, rowNum)
	if err != nil {
		return fmt.Errorf("cell %d,%d: %w", col, rowNum, err)
	}
	return f.SetCellValue(xlsxSheet, cell, value)
}
