package calculations

type BudgetSplit struct {
	Needs   float64 `json:"needs"`
	Wants   float64 `json:"wants"`
	Savings float64 `json:"savings"`
}

// FiftyThirtyTwenty splits a salary into needs, wants and savings.
func FiftyThirtyTwenty(salary float64) BudgetSplit {
	return BudgetSplit{
		Needs:   Round2(salary * 0.5),
		Wants:   Round2(salary * 0.3),
		Savings: Round2(salary * 0.2),
	}
}
