// Package export writes a filtered expense set to xlsx or csv.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/spendwatch/internal/model"
)

// Sheet names in the xlsx workbook.
const (
	ExpensesSheet = "Expenses"
	SummarySheet  = "Summary"
)

const timeLayout = "2006-01-02 15:04:05"

// ErrFormat is returned for an output path with an unsupported extension.
var ErrFormat = errors.New("export: unsupported format (use .xlsx or .csv)")

var headers = []string{"ID", "Title", "Amount", "Category", "Created"}

// ToFile writes expenses to path, choosing the format from its extension.
func ToFile(path string, expenses []model.Expense, report model.Report) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".csv" {
		return ErrFormat
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("export: creating %s: %w", path, err)
	}
	defer f.Close()

	if ext == ".csv" {
		err = WriteCSV(f, expenses)
	} else {
		err = WriteXLSX(f, expenses, report)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

// WriteCSV writes one header row and one row per expense.
func WriteCSV(w io.Writer, expenses []model.Expense) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("export: writing csv: %w", err)
	}
	for _, e := range expenses {
		row := []string{
			e.ID,
			e.Title,
			e.Amount.String(),
			string(e.Category),
			formatTime(e),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("export: writing csv: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("export: writing csv: %w", err)
	}
	return nil
}

// WriteXLSX writes a workbook with an Expenses sheet and a Summary sheet.
func WriteXLSX(w io.Writer, expenses []model.Expense, report model.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExpensesSheet); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("export: total style: %w", err)
	}

	if err := writeExpenses(f, expenses, report, headerStyle, totalStyle); err != nil {
		return err
	}
	if err := writeSummary(f, report, headerStyle); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: writing xlsx: %w", err)
	}
	return nil
}

func writeExpenses(f *excelize.File, expenses []model.Expense, report model.Report, headerStyle, totalStyle int) error {
	s := ExpensesSheet
	widths := map[string]float64{"A": 28, "B": 36, "C": 14, "D": 16, "E": 22}
	for col, wd := range widths {
		if err := f.SetColWidth(s, col, col, wd); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}

	if err := setRow(f, s, 1, toAny(headers)...); err != nil {
		return err
	}
	if err := f.SetCellStyle(s, "A1", "E1", headerStyle); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	for i, e := range expenses {
		if err := setRow(f, s, i+2, e.ID, e.Title, e.Amount.InexactFloat64(), string(e.Category), formatTime(e)); err != nil {
			return err
		}
	}

	totalRow := len(expenses) + 2
	if err := setRow(f, s, totalRow, "Total", fmt.Sprintf("%d records", report.Count), report.Total.InexactFloat64()); err != nil {
		return err
	}
	from, _ := excelize.CoordinatesToCellName(1, totalRow)
	to, _ := excelize.CoordinatesToCellName(5, totalRow)
	if err := f.SetCellStyle(s, from, to, totalStyle); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, r model.Report, headerStyle int) error {
	s := SummarySheet
	if err := f.SetColWidth(s, "A", "D", 18); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	rows := [][]any{
		{"Metric", "Value"},
		{"Total", r.Total.InexactFloat64()},
		{"Transactions", r.Count},
		{"This month", r.ThisMonthTotal.InexactFloat64()},
		{"Last month", r.LastMonthTotal.InexactFloat64()},
		{"Trend %", r.Trend},
		{"Highest", r.Highest.InexactFloat64()},
		{},
		{"Category", "Amount", "Count", "Share %"},
	}
	for _, c := range r.Categories {
		rows = append(rows, []any{string(c.Category), c.Amount.InexactFloat64(), c.Count, c.SharePercent})
	}
	rows = append(rows, []any{}, []any{"Month", "Amount", "Count"})
	for _, m := range r.Months {
		rows = append(rows, []any{m.Month.Format("Jan 2006"), m.Amount.InexactFloat64(), m.Count})
	}

	catHeader := 9
	monthHeader := catHeader + len(r.Categories) + 2
	for i, row := range rows {
		if err := setRow(f, s, i+1, row...); err != nil {
			return err
		}
	}
	for _, hdr := range []struct {
		row  int
		last string
	}{{1, "B"}, {catHeader, "D"}, {monthHeader, "C"}} {
		if err := f.SetCellStyle(s, fmt.Sprintf("A%d", hdr.row), fmt.Sprintf("%s%d", hdr.last, hdr.row), headerStyle); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("export: %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func formatTime(e model.Expense) string {
	if e.CreatedAt.IsZero() {
		return ""
	}
	return e.CreatedAt.Format(timeLayout)
}
