// Package reader 把对账单电子表格读成按列字母定位的原始行
// 源表没有表头行，xlsx 走 excelize，老版 xls 走 xlsReader
package reader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"github.com/Tapu45/Wekeyar-dashboard-sub000/internal/parser"
)

// ReadFile 读取对账单文件的第一个工作表
// 空行保留为无单元格的行，保证行号与窗口扫描下标对齐
func ReadFile(path string) ([]parser.RawRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readXLSX(path)
	case ".xls":
		return readXLS(path)
	default:
		return nil, fmt.Errorf("unsupported spreadsheet format: %s", filepath.Ext(path))
	}
}

// readXLSX 读取 xlsx/xlsm，日期单元格由 excelize 按单元格样式格式化
func readXLSX(path string) ([]parser.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	return toRawRows(rows), nil
}

// readXLS 读取老版 BIFF 格式
func readXLS(path string) ([]parser.RawRow, error) {
	book, err := xls.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xls workbook: %w", err)
	}

	sheet, err := book.GetSheet(0)
	if err != nil || sheet == nil {
		return nil, fmt.Errorf("xls workbook has no sheets: %w", err)
	}

	var rows [][]string
	for _, xlsRow := range sheet.GetRows() {
		var values []string
		for _, col := range xlsRow.GetCols() {
			values = append(values, col.GetString())
		}
		rows = append(rows, values)
	}

	return toRawRows(rows), nil
}

// toRawRows 丢弃空单元格，列号转为字母
func toRawRows(rows [][]string) []parser.RawRow {
	out := make([]parser.RawRow, 0, len(rows))
	for ri, row := range rows {
		raw := parser.RawRow{Number: ri + 1}
		for ci, v := range row {
			if strings.TrimSpace(v) == "" {
				continue
			}
			col, err := excelize.ColumnNumberToName(ci + 1)
			if err != nil {
				continue
			}
			raw.Cells = append(raw.Cells, parser.Cell{Column: col, Value: v})
		}
		out = append(out, raw)
	}
	return out
}
