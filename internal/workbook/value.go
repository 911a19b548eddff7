package workbook

import (
	"strconv"
	"strings"
)

// Kind classifies a cell value after the raw spreadsheet string has been
// mapped at the read boundary.
type Kind int

const (
	// Empty means the cell holds no value (or only whitespace).
	Empty Kind = iota
	// Number means the cell parses as a numeric value.
	Number
	// Text means the cell holds non-numeric text.
	Text
)

// Value is a typed cell value. Metric rules consume Values instead of raw
// strings so that currency formatting ("$1,234.50") and blanks are handled
// in one place.
type Value struct {
	Kind   Kind
	Raw    string
	Number float64
}

var currencyCleaner = strings.NewReplacer("$", "", ",", "", "¢", "")

// parseValue maps a formatted cell string onto a tagged Value.
// Currency symbols and thousands separators are stripped before the
// numeric parse, matching how position numbers appear on the floor plan.
func parseValue(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Value{Kind: Empty}
	}
	cleaned := strings.TrimSpace(currencyCleaner.Replace(trimmed))
	if n, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return Value{Kind: Number, Raw: trimmed, Number: n}
	}
	return Value{Kind: Text, Raw: trimmed}
}

// String returns the original cell text ("" for empty cells).
func (v Value) String() string {
	return v.Raw
}

// AsNumber returns the numeric value and whether the cell is numeric.
func (v Value) AsNumber() (float64, bool) {
	if v.Kind != Number {
		return 0, false
	}
	return v.Number, true
}

// AsInt returns the value as an integer if it is numeric and integral.
func (v Value) AsInt() (int, bool) {
	n, ok := v.AsNumber()
	if !ok || n != float64(int(n)) {
		return 0, false
	}
	return int(n), true
}

// IsEmpty reports whether the cell holds no value.
func (v Value) IsEmpty() bool {
	return v.Kind == Empty
}
