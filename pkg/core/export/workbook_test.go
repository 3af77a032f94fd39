package export

import (
	"math"
	"testing"

	"finboard/pkg/core/finance"
)

func sampleIncome() *finance.Statement {
	st := finance.NewStatement(
		[]string{"Other Expense", "Total Revenue", "Net Income"},
		[]string{"2023-12-31", "2022-12-31"},
	)
	st.Cells[0][0] = finance.Number(12.5)
	st.Cells[0][1] = finance.Number(11)
	st.Cells[1][0] = finance.Number(1000)
	st.Cells[1][1] = finance.Number(900)
	st.Cells[2][0] = finance.Number(100)
	st.Cells[2][1] = finance.Number(90)
	return st
}

func TestBuildWorkbookSheets(t *testing.T) {
	info := finance.NewStatement([]string{"Sector"}, []string{"value"})
	info.Cells[0][0] = finance.Text("Technology")

	f, err := BuildWorkbook(info, sampleIncome(), nil, nil)
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}
	defer f.Close()

	want := []string{SheetIncome, SheetBalance, SheetCashflow, SheetInfo}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheet list = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sheet[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildWorkbookOmitsEmptyInfoSheet(t *testing.T) {
	f, err := BuildWorkbook(nil, sampleIncome(), nil, nil)
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		if name == SheetInfo {
			t.Fatal("info sheet present despite empty info")
		}
	}
}

func TestEmptyStatementPlaceholder(t *testing.T) {
	f, err := BuildWorkbook(nil, sampleIncome(), nil, nil)
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue(SheetBalance, "A1")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if got != "No data available" {
		t.Errorf("placeholder = %q, want %q", got, "No data available")
	}
}

func TestStatementSheetLayout(t *testing.T) {
	f, err := BuildWorkbook(nil, sampleIncome(), nil, nil)
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}
	defer f.Close()

	cells := map[string]string{
		"A1": "Line Item",
		"B1": "2023-12-31",
		"C1": "2022-12-31",
		// Priority rows come first, leftovers in original order.
		"A2": "Total Revenue",
		"A3": "Net Income",
		"A4": "Other Expense",
		"B2": "1000",
		"C3": "90",
	}
	for cell, want := range cells {
		got, err := f.GetCellValue(SheetIncome, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}
}

func TestAbsentCellsLeftBlank(t *testing.T) {
	st := finance.NewStatement([]string{"Total Revenue", "Ebit"}, []string{"2023", "2022"})
	st.Cells[0][0] = finance.Number(500)
	st.Cells[0][1] = finance.Number(480)
	st.Cells[1][0] = finance.Number(math.NaN())
	st.Cells[1][1] = finance.Number(90)

	f, err := BuildWorkbook(nil, st, nil, nil)
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}
	defer f.Close()

	// The Ebit row survives via its 2022 value; its NaN 2023 cell stays blank.
	label, err := f.GetCellValue(SheetIncome, "A3")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if label != "Ebit" {
		t.Fatalf("A3 = %q, want %q", label, "Ebit")
	}
	blank, err := f.GetCellValue(SheetIncome, "B3")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if blank != "" {
		t.Errorf("NaN cell rendered as %q, want blank", blank)
	}
	kept, err := f.GetCellValue(SheetIncome, "C3")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if kept != "90" {
		t.Errorf("C3 = %q, want %q", kept, "90")
	}
}

func TestColumnIsDecimal(t *testing.T) {
	st := finance.NewStatement([]string{"a", "b"}, []string{"x", "y"})
	st.Cells[0][0] = finance.Number(100)
	st.Cells[1][0] = finance.Number(200)
	st.Cells[0][1] = finance.Number(100)
	st.Cells[1][1] = finance.Number(0.5)

	if columnIsDecimal(st, 0) {
		t.Error("integer column reported as decimal")
	}
	if !columnIsDecimal(st, 1) {
		t.Error("decimal column reported as integer")
	}
}

func TestInfoSheetValues(t *testing.T) {
	info := finance.NewStatement(
		[]string{"Sector", "Full Time Employees", "Website"},
		[]string{"value"},
	)
	info.Cells[0][0] = finance.Text("Technology")
	info.Cells[1][0] = finance.Number(164000)
	info.Cells[2][0] = finance.Text("https://example.com")

	f, err := BuildWorkbook(info, sampleIncome(), nil, nil)
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}
	defer f.Close()

	cells := map[string]string{
		"A1": "Sector",
		"B1": "Technology",
		"A2": "Full Time Employees",
		"B2": "164000",
		"A3": "Website",
		"B3": "https://example.com",
	}
	for cell, want := range cells {
		got, err := f.GetCellValue(SheetInfo, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}
}
