package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// mergeRange is a rectangle of merged cells, 1-based and inclusive.
type mergeRange struct {
	minRow, minCol, maxRow, maxCol int
}

func parseMergeRange(start, end string) (mergeRange, error) {
	sc, sr, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return mergeRange{}, fmt.Errorf("bad merge range start %q: %w", start, err)
	}
	ec, er, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return mergeRange{}, fmt.Errorf("bad merge range end %q: %w", end, err)
	}
	return mergeRange{minRow: sr, minCol: sc, maxRow: er, maxCol: ec}, nil
}

func (m mergeRange) contains(row, col int) bool {
	return m.minRow <= row && row <= m.maxRow && m.minCol <= col && col <= m.maxCol
}

// MergedBounds returns the bounds of the merged range containing (row, col),
// if any, as (minRow, minCol, maxRow, maxCol).
func (s *Sheet) MergedBounds(row, col int) (int, int, int, int, bool) {
	for _, m := range s.merges {
		if m.contains(row, col) {
			return m.minRow, m.minCol, m.maxRow, m.maxCol, true
		}
	}
	return 0, 0, 0, 0, false
}

// MergeSafeAt returns the value at (row, col), resolving merged cells to
// their anchor. Only the anchor of a merged range carries the value.
func (s *Sheet) MergeSafeAt(row, col int) Value {
	if minRow, minCol, _, _, ok := s.MergedBounds(row, col); ok {
		return s.At(minRow, minCol)
	}
	return s.At(row, col)
}

// JumpOverMerged steps one cell in direction (dr, dc), skipping across the
// full width/height of the merged block at the starting position. Without
// this, stepping "right" from inside a wide merged cell lands back inside
// the same block.
func (s *Sheet) JumpOverMerged(row, col, dr, dc int) (int, int) {
	minRow, minCol, maxRow, maxCol, ok := s.MergedBounds(row, col)
	if !ok {
		return row + dr, col + dc
	}
	switch {
	case dr < 0:
		row = minRow - 1
	case dr > 0:
		row = maxRow + 1
	}
	switch {
	case dc < 0:
		col = minCol - 1
	case dc > 0:
		col = maxCol + 1
	}
	return row, col
}
