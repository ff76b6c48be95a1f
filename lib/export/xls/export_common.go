package xlsexport

import (
	"strconv"

	"github.com/xuri/excelize/v2"
)

const fontFamily = "Calibri"

// writeRow пишет значения в строку начиная с колонки A
func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	return f.SetSheetRow(sheet, "A"+strconv.Itoa(row), &values)
}

func styleRange(f *excelize.File, sheet string, style *excelize.Style, colFrom, rowFrom, colTo, rowTo int) error {
	styleID, err := f.NewStyle(style)
	if err != nil {
		return err
	}
	first, err := excelize.CoordinatesToCellName(colFrom, rowFrom)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(colTo, rowTo)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, styleID)
}

func writeTitle(f *excelize.File, sheet string, row int, title string) (int, error) {
	row++
	style := &excelize.Style{
		Font: &excelize.Font{Bold: true, Family: fontFamily, Size: 14},
	}
	if err := styleRange(f, sheet, style, 1, row, 1, row); err != nil {
		return row, err
	}
	return row, writeRow(f, sheet, row, []interface{}{title})
}

// writeHeader заголовок таблицы, строки ниже заголовка прокручиваются отдельно
func writeHeader(f *excelize.File, sheet string, row int, headers []string, widths []float64) (int, error) {
	row++
	style := &excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Font:      &excelize.Font{Bold: true, Family: fontFamily, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F46E5"}},
	}
	if err := styleRange(f, sheet, style, 1, row, len(headers), row); err != nil {
		return row, err
	}
	for idx, width := range widths {
		col, err := excelize.ColumnNumberToName(idx + 1)
		if err != nil {
			return row, err
		}
		if err = f.SetColWidth(sheet, col, col, width); err != nil {
			return row, err
		}
	}
	values := make([]interface{}, 0, len(headers))
	for _, header := range headers {
		values = append(values, header)
	}
	if err := writeRow(f, sheet, row, values); err != nil {
		return row, err
	}
	err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      row,
		TopLeftCell: "A" + strconv.Itoa(row+1),
		ActivePane:  "bottomLeft",
	})
	return row, err
}

func styleDataRows(f *excelize.File, sheet string, columns, rowFrom, rowTo int) error {
	style := &excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
		Font:      &excelize.Font{Family: fontFamily, Size: 11},
	}
	return styleRange(f, sheet, style, 1, rowFrom, columns, rowTo)
}
