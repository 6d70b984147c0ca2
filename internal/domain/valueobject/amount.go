// Package valueobject holds small domain value types and conversions.
package valueobject

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// ParseAmount converts a pt-BR formatted currency string into a stored cell
// value. The rule is reproduced exactly for compatibility with documents
// written by the web client:
//
//	strip whitespace, the currency symbol and '.' thousands separators,
//	turn the ',' decimal separator into '.', parse as a float,
//	treat parse failure or a negative result as 0,
//	clamp into [0, MaxCellValue].
//
// "R$ 1.234,56" parses to 1234.56; "abc" and "-5" parse to 0.
func ParseAmount(raw string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == 'R' || r == '$' || r == '.':
			return -1
		case unicode.IsSpace(r):
			return -1
		}
		return r
	}, raw)
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) || parsed < 0 {
		return 0
	}
	return ClampAmount(parsed)
}

// ClampAmount bounds a cell value into [0, MaxCellValue].
func ClampAmount(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > entity.MaxCellValue {
		return entity.MaxCellValue
	}
	return v
}
