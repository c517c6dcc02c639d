package ledger

import (
	"fmt"
	"math"
)

// ParseAmount converts a major-unit amount from a JSON request into minor
// units. This is the only place major-unit floats enter the system; everything
// past it is integer arithmetic. Non-positive, NaN and infinite values are
// rejected with ErrInvalidAmount.
func ParseAmount(major float64) (int64, error) {
	if math.IsNaN(major) || math.IsInf(major, 0) || major <= 0 {
		return 0, ErrInvalidAmount
	}
	minor := int64(math.Round(major * MinorUnitsPerToken))
	if minor <= 0 {
		return 0, ErrInvalidAmount
	}
	return minor, nil
}

// MajorUnits converts minor units back to a major-unit amount for responses.
func MajorUnits(minor int64) float64 {
	return RoundToTwoDecimals(float64(minor) / MinorUnitsPerToken)
}

// RoundToTwoDecimals is a presentation helper, not part of the integrity model.
func RoundToTwoDecimals(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatAmount renders minor units as a display string, e.g. "12.50".
func FormatAmount(minor int64) string {
	return fmt.Sprintf("%.2f", float64(minor)/MinorUnitsPerToken)
}
