package calculations

const (
	TrendUp   = "up"
	TrendDown = "down"
)

type AccountSummary struct {
	Balance       float64 `json:"balance"`
	TrendType     string  `json:"trendType"`
	PercentChange float64 `json:"percentChange"`
}

// AccountData compares the balance with the snapshot taken before the last transaction.
// A zero previous balance reports a 100% change.
func AccountData(balance, previousBalance float64) AccountSummary {
	summary := AccountSummary{Balance: Round2(balance), TrendType: TrendUp}
	if previousBalance > balance {
		summary.TrendType = TrendDown
	}

	if previousBalance != 0 {
		summary.PercentChange = Round2((balance - previousBalance) / previousBalance * 100)
	} else {
		summary.PercentChange = 100.0
	}
	return summary
}
