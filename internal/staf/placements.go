package staf

import (
	"math"
	"sort"
	"strconv"

	"github.com/klytics/stafkit/internal/workbook"
)

// Placement says where one note belongs on the floor plan.
type Placement struct {
	Cell     string `yaml:"cell" json:"cell"`
	Position string `yaml:"position" json:"position"`
	Text     string `yaml:"text" json:"text"`
}

// DefaultTolerance is the maximum distance between a floor-plan value and a
// metric value for the cell to count as that machine's display cell.
const DefaultTolerance = 0.2

var neighborDirs = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// hasSurroundingPositionNumber checks the 8 neighbors of (row, col) for the
// integer position number, stepping merge-safely so that a merged value
// block still sees the position label beside it.
func hasSurroundingPositionNumber(s *workbook.Sheet, row, col, expected int) bool {
	if minRow, minCol, maxRow, maxCol, ok := s.MergedBounds(row, col); ok {
		row = (minRow + maxRow) / 2
		col = (minCol + maxCol) / 2
	}

	for _, d := range neighborDirs {
		r, c := s.JumpOverMerged(row, col, d[0], d[1])
		if r < 1 || c < 1 || r > s.MaxRow() || c > s.MaxCol() {
			continue
		}
		if n, ok := s.MergeSafeAt(r, c).AsNumber(); ok && int(n) == expected {
			return true
		}
	}
	return false
}

// FindPlacements scans the floor plan for cells displaying a metric value
// and pairs them with note text. A cell qualifies when its value is within
// tolerance of a position's metric value and one of its merge-safe neighbors
// holds that position's integer number. Each position is placed at most once.
func FindPlacements(floor *workbook.Sheet, dict map[string]string, metric map[string]float64, tolerance float64) []Placement {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	keys := make([]string, 0, len(metric))
	for k := range metric {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var placements []Placement
	placed := make(map[string]bool)

	for r := 1; r <= floor.MaxRow(); r++ {
		for c := 1; c <= floor.MaxCol(); c++ {
			val, ok := floor.At(r, c).AsNumber()
			if !ok {
				continue
			}

			for _, key := range keys {
				if placed[key] {
					continue
				}
				if math.Abs(val-metric[key]) >= tolerance {
					continue
				}
				pos, err := positionNumber(key)
				if err != nil {
					continue
				}
				if !hasSurroundingPositionNumber(floor, r, c, pos) {
					continue
				}
				text, ok := dict[key]
				if !ok {
					continue
				}
				placements = append(placements, Placement{
					Cell:     workbook.CellName(r, c),
					Position: key,
					Text:     text,
				})
				placed[key] = true
				break
			}
		}
	}
	return placements
}

// positionNumber extracts the trailing 3-digit number from a key like "GR042".
func positionNumber(key string) (int, error) {
	return strconv.Atoi(key[len(key)-3:])
}
