// Package workbook provides the read-only spreadsheet pass. Workbooks are
// opened with excelize and never saved through it: a non-native save path can
// drop drawing objects, so every mutation goes through the automation layer
// instead.
package workbook

import (
	"errors"
	"fmt"
	"os"

	"github.com/sahilm/fuzzy"
	"github.com/xuri/excelize/v2"
)

// ErrInvalidReference is returned when an A1-style cell reference cannot be
// parsed or lies outside the sheet.
var ErrInvalidReference = errors.New("invalid cell reference")

// Sheet holds a worksheet's typed cell grid plus its merged ranges.
// Rows and columns are 1-based throughout, matching the host application.
type Sheet struct {
	Name   string
	cells  [][]Value
	merges []mergeRange
	maxCol int
}

// Workbook is the result of a read-only pass over an .xlsx/.xlsm file.
type Workbook struct {
	Path   string
	Sheets []Sheet
}

// OpenReadOnly reads a workbook without ever writing it back.
func OpenReadOnly(path string) (*Workbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s — check that the path is correct", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid workbook? %w", path, err)
	}
	defer f.Close()

	wb := &Workbook{Path: path}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("could not read sheet %q: %w", name, err)
		}

		sheet := Sheet{Name: name}
		for _, row := range rows {
			vals := make([]Value, len(row))
			for i, raw := range row {
				vals[i] = parseValue(raw)
			}
			if len(vals) > sheet.maxCol {
				sheet.maxCol = len(vals)
			}
			sheet.cells = append(sheet.cells, vals)
		}

		merges, err := f.GetMergeCells(name)
		if err != nil {
			return nil, fmt.Errorf("could not read merged ranges of %q: %w", name, err)
		}
		for _, m := range merges {
			mr, err := parseMergeRange(m.GetStartAxis(), m.GetEndAxis())
			if err != nil {
				return nil, fmt.Errorf("sheet %q: %w", name, err)
			}
			sheet.merges = append(sheet.merges, mr)
		}

		wb.Sheets = append(wb.Sheets, sheet)
	}

	return wb, nil
}

// Sheet returns the named worksheet. On a miss it suggests the closest
// existing name so a typo like "FLOORPLAN" points at "FLOOR PLAN".
func (wb *Workbook) Sheet(name string) (*Sheet, error) {
	names := make([]string, len(wb.Sheets))
	for i := range wb.Sheets {
		if wb.Sheets[i].Name == name {
			return &wb.Sheets[i], nil
		}
		names[i] = wb.Sheets[i].Name
	}

	if matches := fuzzy.Find(name, names); len(matches) > 0 {
		return nil, fmt.Errorf("sheet %q not found — did you mean %q?", name, matches[0].Str)
	}
	return nil, fmt.Errorf("sheet %q not found — available sheets: %v", name, names)
}

// MaxRow returns the number of the last populated row.
func (s *Sheet) MaxRow() int {
	return len(s.cells)
}

// MaxCol returns the number of the widest populated row.
func (s *Sheet) MaxCol() int {
	return s.maxCol
}

// At returns the typed value at (row, col), 1-based. Cells outside the
// populated grid read as empty.
func (s *Sheet) At(row, col int) Value {
	if row < 1 || col < 1 || row > len(s.cells) {
		return Value{Kind: Empty}
	}
	r := s.cells[row-1]
	if col > len(r) {
		return Value{Kind: Empty}
	}
	return r[col-1]
}

// ParseCellRef parses an A1-style reference into 1-based (row, col).
func ParseCellRef(ref string) (row, col int, err error) {
	c, r, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	return r, c, nil
}

// CellName formats 1-based (row, col) as an A1-style reference.
func CellName(row, col int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	return name
}
