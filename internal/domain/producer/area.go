package producer

import (
	"github.com/agro/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AreaScale is the number of decimal places kept for areas, matching the
// numeric(14,4) columns they are stored in.
const AreaScale = 4

// maxArea is the largest value a numeric(14,4) column holds
var maxArea = decimal.RequireFromString("9999999999.9999")

// RoundArea rounds d half away from zero to AreaScale places
func RoundArea(d decimal.Decimal) decimal.Decimal {
	return d.Round(AreaScale)
}

// CheckAreas reports whether the land figures of a farm are coherent:
// every area is non-negative and arable plus vegetation fits inside the total.
func CheckAreas(total, arable, vegetation decimal.Decimal) bool {
	if total.IsNegative() || arable.IsNegative() || vegetation.IsNegative() {
		return false
	}
	return arable.Add(vegetation).LessThanOrEqual(total)
}

// validateAreas expects values already passed through RoundArea, so the
// figures checked are the ones persisted.
func validateAreas(total, arable, vegetation decimal.Decimal) error {
	if total.IsNegative() || arable.IsNegative() || vegetation.IsNegative() {
		return shared.NewDomainError("INVALID_AREA_SUM", "Areas cannot be negative")
	}
	if total.GreaterThan(maxArea) || arable.GreaterThan(maxArea) || vegetation.GreaterThan(maxArea) {
		return shared.NewDomainError("INVALID_INPUT", "Areas cannot exceed "+maxArea.String()+" ha")
	}
	if !CheckAreas(total, arable, vegetation) {
		return shared.NewDomainError("INVALID_AREA_SUM",
			"Arable area plus vegetation area ("+arable.Add(vegetation).String()+
				" ha) exceeds total area ("+total.String()+" ha)")
	}
	return nil
}
