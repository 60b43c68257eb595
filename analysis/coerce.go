package analysis

import (
	"math"
	"strconv"
	"strings"
)

// NumericCoercion turns a raw cell into a number. The boolean is false when
// the cell held something that is not a number and a default was used.
type NumericCoercion func(cell string) (float64, bool)

// LenientNumericCoercion never fails: blank, non-numeric, NaN and infinite
// cells all read as 0. Blank cells are not reported as fallbacks.
func LenientNumericCoercion(cell string) (float64, bool) {
	v := strings.TrimSpace(cell)
	if v == "" || strings.EqualFold(v, "nan") {
		return 0, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// RoundTenth rounds half-to-even at one decimal place.
func RoundTenth(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}

// Percentage is round(100*part/whole, 1), or 0 when whole is 0.
func Percentage(part, whole int) float64 {
	if whole == 0 {
		return 0.0
	}
	return RoundTenth(100 * float64(part) / float64(whole))
}
