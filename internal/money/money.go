package money

import "math"

// All balances, amounts and payouts are paise (1/100 rupee) held as int64.
// Conversion to and from display rupees happens only at the HTTP boundary;
// nothing downstream of a handler computes with floating point.

// RupeesToPaise converts a decimal rupee amount to paise, rounding to the
// nearest paisa.
func RupeesToPaise(rupees float64) int64 {
	return int64(math.Round(rupees * 100))
}

// PaiseToRupees converts paise to display rupees.
func PaiseToRupees(paise int64) float64 {
	return float64(paise) / 100
}

// PercentToBasisPoints converts a decimal percentage (20.5) to integer basis
// points (2050). Percentages live as basis points everywhere inside the
// engine so that payout arithmetic stays integral.
func PercentToBasisPoints(percent float64) int64 {
	return int64(math.Round(percent * 100))
}

// BasisPointsToPercent converts basis points back to a display percentage.
func BasisPointsToPercent(bp int64) float64 {
	return float64(bp) / 100
}

// ApplyBasisPoints grows amount by bp basis points using integer arithmetic.
// The fractional paisa rounds half-up, exactly once; callers freeze the
// result instead of recomputing it later.
func ApplyBasisPoints(amount, bp int64) int64 {
	return amount + (amount*bp+5_000)/10_000
}
