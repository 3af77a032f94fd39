package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"finboard/pkg/core/finance"
)

// Sheet names, in workbook order.
const (
	SheetIncome   = "Income Statement"
	SheetBalance  = "Balance Sheet"
	SheetCashflow = "Cash Flow"
	SheetInfo     = "Company Info"
)

// formatScanLimit caps how many values per column the number-format heuristic
// inspects.
const formatScanLimit = 50

// Display priority per statement type. Rows whose labels match these keywords
// (exact first, then contains, case-insensitive) lead the sheet; everything
// else keeps its original order below them.
var (
	incomePriority = []string{
		"Total Revenue",
		"Cost Of Revenue",
		"Gross Profit",
		"Operating Expense",
		"Operating Income",
		"Interest Expense",
		"Pretax Income",
		"Income Tax Expense",
		"Net Income",
		"Ebit",
	}

	balancePriority = []string{
		"Total Assets",
		"Total Current Assets",
		"Cash",
		"Inventory",
		"Total Liabilities",
		"Total Current Liabilities",
		"Total Debt",
		"Long Term Debt",
		"Total Stockholder Equity",
		"Retained Earnings",
	}

	cashflowPriority = []string{
		"Total Cash From Operating Activities",
		"Total Cashflows From Investing Activities",
		"Total Cash From Financing Activities",
		"Capital Expenditures",
		"Depreciation",
		"Dividends Paid",
		"Change In Cash",
	}
)

// BuildWorkbook assembles the multi-sheet spreadsheet for one company:
// one sheet per statement plus a key/value info sheet (omitted when there is
// no info). Statements are cleaned of all-missing rows/columns and reordered
// for display before writing.
func BuildWorkbook(info, income, balance, cashflow *finance.Statement) (*excelize.File, error) {
	f := excelize.NewFile()

	// The default sheet becomes the first statement sheet.
	if err := f.SetSheetName(f.GetSheetName(0), SheetIncome); err != nil {
		return nil, fmt.Errorf("failed to rename default sheet: %w", err)
	}
	if err := writeStatementSheet(f, SheetIncome, income, incomePriority); err != nil {
		return nil, err
	}

	for _, s := range []struct {
		name       string
		st         *finance.Statement
		priorities []string
	}{
		{SheetBalance, balance, balancePriority},
		{SheetCashflow, cashflow, cashflowPriority},
	} {
		if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}
		if err := writeStatementSheet(f, s.name, s.st, s.priorities); err != nil {
			return nil, err
		}
	}

	if err := writeInfoSheet(f, info); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// writeStatementSheet renders one statement: first column holds the row
// labels, remaining columns the period values. An empty statement gets a
// single placeholder row instead of a grid.
func writeStatementSheet(f *excelize.File, sheet string, st *finance.Statement, priorities []string) error {
	st = finance.DropEmpty(st)
	if st.Empty() {
		return f.SetCellValue(sheet, "A1", "No data available")
	}
	st = finance.Reorder(st, priorities)

	if err := f.SetCellValue(sheet, "A1", "Line Item"); err != nil {
		return err
	}
	for j, col := range st.Columns {
		cell, _ := excelize.CoordinatesToCellName(j+2, 1)
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}

	for i, label := range st.Index {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetCellValue(sheet, cell, label); err != nil {
			return err
		}
		for j := range st.Columns {
			cell, _ := excelize.CoordinatesToCellName(j+2, i+2)
			if err := writeCell(f, sheet, cell, st.Cells[i][j]); err != nil {
				return err
			}
		}
	}

	return styleStatementSheet(f, sheet, st)
}

func writeCell(f *excelize.File, sheet, cell string, v finance.Value) error {
	if n, ok := finance.CleanScalar(v); ok {
		return f.SetCellValue(sheet, cell, n)
	}
	if v.Kind() == finance.KindText {
		return f.SetCellValue(sheet, cell, v.Str())
	}
	return nil // absent stays blank
}

// styleStatementSheet widens the label column and applies a thousands number
// format per value column: decimal when any of the first formatScanLimit
// usable values is non-integral, integer otherwise.
func styleStatementSheet(f *excelize.File, sheet string, st *finance.Statement) error {
	if err := f.SetColWidth(sheet, "A", "A", 42); err != nil {
		return err
	}

	intStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return fmt.Errorf("failed to create integer style: %w", err)
	}
	decStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("failed to create decimal style: %w", err)
	}

	for j := range st.Columns {
		colName, _ := excelize.ColumnNumberToName(j + 2)
		if err := f.SetColWidth(sheet, colName, colName, 18); err != nil {
			return err
		}
		style := intStyle
		if columnIsDecimal(st, j) {
			style = decStyle
		}
		if err := f.SetColStyle(sheet, colName, style); err != nil {
			return err
		}
	}
	return nil
}

func columnIsDecimal(st *finance.Statement, col int) bool {
	scanned := 0
	for i := range st.Index {
		if scanned >= formatScanLimit {
			break
		}
		n, ok := finance.CleanScalar(st.Cells[i][col])
		if !ok {
			continue
		}
		scanned++
		if n != float64(int64(n)) {
			return true
		}
	}
	return false
}

// writeInfoSheet renders the flattened key/value company info block. The
// sheet is omitted entirely when no info survived sanitization.
func writeInfoSheet(f *excelize.File, info *finance.Statement) error {
	info = finance.DropEmpty(info)
	if info.Empty() {
		return nil
	}

	if _, err := f.NewSheet(SheetInfo); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", SheetInfo, err)
	}

	row := 1
	for i, key := range info.Index {
		v := info.Cells[i][0]
		n, numOK := finance.CleanScalar(v)
		if !numOK && v.Kind() != finance.KindText {
			continue
		}
		keyCell, _ := excelize.CoordinatesToCellName(1, row)
		valCell, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellValue(SheetInfo, keyCell, key); err != nil {
			return err
		}
		if numOK {
			if err := f.SetCellValue(SheetInfo, valCell, n); err != nil {
				return err
			}
		} else {
			if err := f.SetCellValue(SheetInfo, valCell, v.Str()); err != nil {
				return err
			}
		}
		row++
	}

	if err := f.SetColWidth(SheetInfo, "A", "A", 32); err != nil {
		return err
	}
	return f.SetColWidth(SheetInfo, "B", "B", 60)
}
