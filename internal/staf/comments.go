// Package staf implements the read-only analysis pass: building note text
// from the machine details workbook, extracting daily metrics from the STAF
// totals sheet, detecting which metric the floor plan displays, and planning
// note placements. Nothing in this package writes to a file.
package staf

import (
	"fmt"
	"strings"

	"github.com/klytics/stafkit/internal/workbook"
)

// ValidateShipCode normalizes and checks a two-letter ship code like "GR".
func ValidateShipCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 || !isAlpha(code) {
		return "", fmt.Errorf("ship code must be exactly 2 alphabetic characters (e.g., \"GR\"), got %q", code)
	}
	return code, nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// SampleNoteText is the fixed text used by the test-insert action.
func SampleNoteText(shipCode string) string {
	return fmt.Sprintf("STAF Tool Test\nPosition: %s001\nAsset Number: 61623168\nDenom: 1¢", shipCode)
}

// PositionKey formats a position number as "GR042".
func PositionKey(shipCode string, position int) string {
	return fmt.Sprintf("%s%03d", shipCode, position)
}

// BuildCommentDict maps position keys ("GR001") to multiline note text built
// from the machine details sheet. Row 1 must be a header row containing
// "Position"; each following row becomes one "Header: value" block.
func BuildCommentDict(sheet *workbook.Sheet, shipCode string) (map[string]string, error) {
	headers := make([]string, sheet.MaxCol())
	posCol := 0
	for c := 1; c <= sheet.MaxCol(); c++ {
		h := sheet.At(1, c).String()
		headers[c-1] = h
		if strings.EqualFold(h, "Position") {
			posCol = c
		}
	}
	if posCol == 0 {
		return nil, fmt.Errorf("source sheet %q must have a \"Position\" header in row 1", sheet.Name)
	}

	dict := make(map[string]string)
	for r := 2; r <= sheet.MaxRow(); r++ {
		pos, ok := sheet.At(r, posCol).AsInt()
		if !ok {
			continue
		}

		var lines []string
		for c := 1; c <= sheet.MaxCol(); c++ {
			v := sheet.At(r, c)
			if v.IsEmpty() || headers[c-1] == "" {
				continue
			}
			lines = append(lines, headers[c-1]+": "+v.String())
		}
		if len(lines) == 0 {
			continue
		}
		dict[PositionKey(shipCode, pos)] = strings.Join(lines, "\n")
	}
	return dict, nil
}
