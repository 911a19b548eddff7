package staf

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/stafkit/internal/workbook"
)

// writeSourceFixture builds a three-machine details workbook and returns
// its path.
func writeSourceFixture(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "Machine Details")
	rows := [][]interface{}{
		{"Position", "Asset Number", "Denom"},
		{1, 61623168, "1¢"},
		{2, 61623169, "5¢"},
		{3, 61623170, "1¢"},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			f.SetCellValue("Machine Details", cell, v)
		}
	}

	path := filepath.Join(t.TempDir(), "details.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeTargetFixture builds a workbook with a FLOOR PLAN displaying the
// coin-in values and a TOTALS sheet carrying both metrics.
func writeTargetFixture(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "FLOOR PLAN")
	if _, err := f.NewSheet("TOTALS"); err != nil {
		t.Fatal(err)
	}

	// TOTALS: header row 2, one machine per row below.
	f.SetCellValue("TOTALS", "A1", "Slot Totals")
	f.SetCellValue("TOTALS", "B2", "DAILY COIN IN")
	f.SetCellValue("TOTALS", "C2", "DAILY NET WIN")
	coin := []float64{120.5, 300.25, 99.99}
	net := []float64{10.5, 42.42, 7.77}
	for i := 0; i < 3; i++ {
		coinCell, _ := excelize.CoordinatesToCellName(2, 3+i)
		netCell, _ := excelize.CoordinatesToCellName(3, 3+i)
		f.SetCellValue("TOTALS", coinCell, coin[i])
		f.SetCellValue("TOTALS", netCell, net[i])
	}

	// FLOOR PLAN: position labels in row 2, displayed values in row 3.
	f.SetCellValue("FLOOR PLAN", "B2", 1)
	f.SetCellValue("FLOOR PLAN", "C2", 2)
	f.SetCellValue("FLOOR PLAN", "D2", 3)
	f.SetCellValue("FLOOR PLAN", "B3", 120.5)
	f.SetCellValue("FLOOR PLAN", "C3", 300.25)
	f.SetCellValue("FLOOR PLAN", "D3", 99.99)

	path := filepath.Join(t.TempDir(), "staf.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func openSheet(t *testing.T, path, name string) *workbook.Sheet {
	t.Helper()
	wb, err := workbook.OpenReadOnly(path)
	if err != nil {
		t.Fatal(err)
	}
	sheet, err := wb.Sheet(name)
	if err != nil {
		t.Fatal(err)
	}
	return sheet
}
