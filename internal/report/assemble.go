package report

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"kontrola/internal/domain"
)

// Write assembles the workbook from the evaluated, sorted bucket rows and
// writes it to path. The workbook is staged in a temporary file and renamed
// into place, so a failed run never clobbers the previous report.
func Write(path string, rows map[domain.Bucket][]domain.Row) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for col, width := range columnWidths {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("report: set width %s: %w", col, err)
		}
	}

	overdueStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "FF0000"}})
	if err != nil {
		return fmt.Errorf("report: overdue style: %w", err)
	}

	for _, band := range Bands {
		cursor := firstRow
		for _, bucket := range band.Buckets {
			if bucket == domain.NonTruck {
				cursor += nonTruckOffset
			}
			n, err := writeTable(f, sheet, band, bucket, cursor, rows[bucket], overdueStyle)
			if err != nil {
				return err
			}
			cursor += n + tableGap
		}
	}

	// The staging name keeps the workbook extension; SaveAs validates it.
	tmp := path + ".tmp.xlsx"
	if err := f.SaveAs(tmp); err != nil {
		return fmt.Errorf("report: save workbook: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("report: replace %s: %w", path, err)
	}
	return nil
}

// writeTable renders one bucket's header and rows starting at headerRow and
// registers the styled Excel table over the written range. It returns the
// number of data rows the table claims.
func writeTable(f *excelize.File, sheet string, band Band, bucket domain.Bucket, headerRow int, rows []domain.Row, overdueStyle int) (int, error) {
	set := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, v)
	}

	for i, h := range headers(bucket) {
		if err := set(band.StartCol+i, headerRow, h); err != nil {
			return 0, fmt.Errorf("report: %s header: %w", bucket, err)
		}
	}

	for i, r := range rows {
		rowNum := headerRow + 1 + i
		if err := set(band.StartCol, rowNum, r.Vehicle); err != nil {
			return 0, fmt.Errorf("report: %s row %d: %w", bucket, rowNum, err)
		}
		if err := set(band.StartCol+1, rowNum, r.DueDisplay); err != nil {
			return 0, fmt.Errorf("report: %s row %d: %w", bucket, rowNum, err)
		}
		if r.Overdue {
			cell, err := excelize.CoordinatesToCellName(band.StartCol+1, rowNum)
			if err != nil {
				return 0, err
			}
			if err := f.SetCellStyle(sheet, cell, cell, overdueStyle); err != nil {
				return 0, fmt.Errorf("report: %s overdue style: %w", bucket, err)
			}
		}
		noteCol := band.StartCol + 2
		if bucket.HasControlColumn() {
			if err := set(band.StartCol+2, rowNum, r.Control); err != nil {
				return 0, fmt.Errorf("report: %s row %d: %w", bucket, rowNum, err)
			}
			noteCol = band.StartCol + 3
		}
		if r.Note != "" {
			if err := set(noteCol, rowNum, r.Note); err != nil {
				return 0, fmt.Errorf("report: %s row %d: %w", bucket, rowNum, err)
			}
		}
	}

	// A table range must span the header plus at least one data row, so an
	// empty bucket still claims one blank row.
	dataRows := len(rows)
	if dataRows == 0 {
		dataRows = 1
	}
	first, err := excelize.CoordinatesToCellName(band.StartCol, headerRow)
	if err != nil {
		return 0, err
	}
	last, err := excelize.CoordinatesToCellName(band.StartCol+band.Width-1, headerRow+dataRows)
	if err != nil {
		return 0, err
	}
	stripes := true
	if err := f.AddTable(sheet, &excelize.Table{
		Range:          fmt.Sprintf("%s:%s", first, last),
		Name:           bucket.TableName(),
		StyleName:      tableStyles[bucket],
		ShowRowStripes: &stripes,
	}); err != nil {
		return 0, fmt.Errorf("report: add table %s: %w", bucket.TableName(), err)
	}
	return dataRows, nil
}
