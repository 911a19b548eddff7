package workbook

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// mergedFixture builds a sheet with a 2x2 merged block at D1:E2 holding 42
// and a plain value at F1.
func mergedFixture(t *testing.T) *Sheet {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if err := f.MergeCell("Sheet1", "D1", "E2"); err != nil {
		t.Fatal(err)
	}
	f.SetCellValue("Sheet1", "D1", 42)
	f.SetCellValue("Sheet1", "F1", 7)

	path := filepath.Join(t.TempDir(), "merged.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	wb, err := OpenReadOnly(path)
	if err != nil {
		t.Fatal(err)
	}
	sheet, err := wb.Sheet("Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	return sheet
}

func TestMergedBounds(t *testing.T) {
	sheet := mergedFixture(t)

	minRow, minCol, maxRow, maxCol, ok := sheet.MergedBounds(2, 5) // E2
	if !ok {
		t.Fatal("E2 should be inside the merged block")
	}
	if minRow != 1 || minCol != 4 || maxRow != 2 || maxCol != 5 {
		t.Errorf("bounds = (%d,%d,%d,%d), want (1,4,2,5)", minRow, minCol, maxRow, maxCol)
	}

	if _, _, _, _, ok := sheet.MergedBounds(1, 6); ok {
		t.Error("F1 is not merged")
	}
}

func TestMergeSafeAt(t *testing.T) {
	sheet := mergedFixture(t)

	// Any cell of the block resolves to the anchor value.
	for _, pos := range [][2]int{{1, 4}, {1, 5}, {2, 4}, {2, 5}} {
		n, ok := sheet.MergeSafeAt(pos[0], pos[1]).AsNumber()
		if !ok || n != 42 {
			t.Errorf("MergeSafeAt(%d, %d) = %v %v, want 42", pos[0], pos[1], n, ok)
		}
	}

	if n, ok := sheet.MergeSafeAt(1, 6).AsNumber(); !ok || n != 7 {
		t.Errorf("MergeSafeAt(1, 6) = %v %v, want 7", n, ok)
	}
}

func TestJumpOverMerged(t *testing.T) {
	sheet := mergedFixture(t)

	// Stepping right from inside D1:E2 lands past the block, not inside it.
	r, c := sheet.JumpOverMerged(1, 4, 0, 1)
	if r != 1 || c != 6 {
		t.Errorf("right from D1 = (%d, %d), want (1, 6)", r, c)
	}

	// Stepping down from E1 exits below the block.
	r, c = sheet.JumpOverMerged(1, 5, 1, 0)
	if r != 3 {
		t.Errorf("down from E1 lands on row %d, want 3", r)
	}

	// Unmerged cells step a single cell.
	r, c = sheet.JumpOverMerged(1, 6, 1, 1)
	if r != 2 || c != 7 {
		t.Errorf("step from F1 = (%d, %d), want (2, 7)", r, c)
	}
}
