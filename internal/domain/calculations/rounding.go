// Package calculations holds the pure arithmetic behind the dashboard: account trend,
// goal progress, the 50/30/20 budget split and expense/salary rollups. Nothing here
// performs I/O.
package calculations

import "github.com/shopspring/decimal"

// Round2 rounds to cents, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func sum2(a, b float64) float64 {
	return decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).Round(2).InexactFloat64()
}
