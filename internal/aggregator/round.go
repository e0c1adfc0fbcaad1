package aggregator

import "github.com/shopspring/decimal"

var half = decimal.NewFromFloat(0.5)

// roundHalfUp rounds to the nearest integer with halves going toward
// positive infinity (-2.5 becomes -2).
func roundHalfUp(d decimal.Decimal) int64 {
	return d.Add(half).Floor().IntPart()
}

// percentOf returns round(part/whole*100). whole must be non-zero.
func percentOf(part, whole int64) int64 {
	ratio := decimal.NewFromInt(part).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(whole))
	return roundHalfUp(ratio)
}
