package salary

import (
	"time"

	"Finboard/internal/domain/calculations"
	"Finboard/internal/domain/expense"

	"github.com/oklog/ulid/v2"
)

const (
	MinAmount = 10.0
	MaxAmount = 1_000_000.0
)

type Salary struct {
	Id         ulid.ULID `json:"id"`
	UserId     ulid.ULID `json:"userId"`
	Amount     float64   `json:"amount"`
	SalaryDate time.Time `json:"salaryDate"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CreateRequest struct {
	UserId ulid.ULID
	Amount float64
	// Date is YYYY-MM-DD; blank means today.
	Date string
}

// BudgetSuggestion applies the 50/30/20 rule to the latest salary month.
type BudgetSuggestion struct {
	Salary     float64   `json:"salary"`
	SalaryDate time.Time `json:"salaryDate"`
	calculations.BudgetSplit
}

type AddResult struct {
	Salary            *Salary
	NewBalance        float64
	AccountData       calculations.AccountSummary
	BudgetSuggestions BudgetSuggestion
	GoalData          []calculations.GoalStatus
	Transactions      []*expense.Expense
}

func Entries(salaries []*Salary) []calculations.Entry {
	entries := make([]calculations.Entry, 0, len(salaries))
	for _, s := range salaries {
		entries = append(entries, calculations.Entry{Date: s.SalaryDate, Amount: s.Amount})
	}
	return entries
}
