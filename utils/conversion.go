package utils

import (
	"fmt"
	"math"
)

// minorUnitTolerance absorbs float64 representation noise after scaling;
// anything beyond it means the amount genuinely carries sub-cent precision.
const minorUnitTolerance = 1e-6

// ErrAmountPrecision is returned when a decimal amount cannot be expressed
// exactly in minor currency units.
var ErrAmountPrecision = fmt.Errorf("amount is not representable in minor currency units")

// MinorUnits converts a decimal euro amount to integer cents. Amounts must be
// strictly positive and expressed to at most two decimal places; sub-cent
// precision is rejected rather than silently rounded.
func MinorUnits(amount float64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be strictly positive, got %.4f", amount)
	}
	scaled := amount * 100
	rounded := math.Round(scaled)
	if math.Abs(scaled-rounded) > minorUnitTolerance*math.Max(1, math.Abs(scaled)) {
		return 0, fmt.Errorf("%w: %.6f", ErrAmountPrecision, amount)
	}
	return int64(rounded), nil
}

// FormatEuros renders a cent amount as a human readable euro string.
func FormatEuros(cents int64) string {
	return fmt.Sprintf("%d,%02d €", cents/100, cents%100)
}
