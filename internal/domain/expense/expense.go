package expense

import (
	"time"

	"Finboard/internal/domain/calculations"

	"github.com/oklog/ulid/v2"
)

const maxCategoryLength = 100

type Expense struct {
	Id            ulid.ULID `json:"id"`
	UserId        ulid.ULID `json:"userId"`
	Category      string    `json:"category"`
	Amount        float64   `json:"amount"`
	Date          time.Time `json:"date"`
	WeekStartDate time.Time `json:"weekStartDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

type CreateRequest struct {
	UserId   ulid.ULID
	Category string
	Amount   float64
	// Date is YYYY-MM-DD; blank means today.
	Date string
}

// AddResult carries the figures the client refreshes after recording an expense.
type AddResult struct {
	Expense          *Expense
	NewBalance       float64
	AccountData      calculations.AccountSummary
	MonthlySpendData [12]float64
	Transactions     []*Expense
	GoalData         []calculations.GoalStatus
}

func Entries(expenses []*Expense) []calculations.Entry {
	entries := make([]calculations.Entry, 0, len(expenses))
	for _, e := range expenses {
		entries = append(entries, calculations.Entry{Date: e.Date, Amount: e.Amount, Category: e.Category})
	}
	return entries
}
