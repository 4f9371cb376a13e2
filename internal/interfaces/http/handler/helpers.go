package handler

import "github.com/shopspring/decimal"

// toDecimalPtr converts an optional float64 to an optional decimal
func toDecimalPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}

func toDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
