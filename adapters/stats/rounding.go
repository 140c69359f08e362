package stats

import (
	"math"
)

// Presentation rounding for the report contract: descriptives and test
// statistics carry 2 decimals, p-values 2 significant figures, degrees
// of freedom round to the nearest integer.

// Round2 rounds to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// SignificantFigures rounds x to the given number of significant figures.
func SignificantFigures(x float64, figures int) float64 {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	magnitude := math.Floor(math.Log10(math.Abs(x)))
	scale := math.Pow(10, float64(figures-1)-magnitude)
	return math.Round(x*scale) / scale
}

// RoundDF rounds fractional Welch-Satterthwaite degrees of freedom to
// the nearest integer for presentation.
func RoundDF(df float64) int {
	return int(math.Round(df))
}
