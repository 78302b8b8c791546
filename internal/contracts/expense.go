package contracts

import (
	"Finboard/internal/domain/calculations"
	"Finboard/internal/domain/expense"
	"Finboard/internal/pkg"
)

type ExpenseCreateRequest struct {
	Category string   `json:"category" binding:"required"`
	Amount   *float64 `json:"amount" binding:"required"`
	Date     string   `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

type ExpenseResponse struct {
	Id            string  `json:"id"`
	Category      string  `json:"category"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
	WeekStartDate string  `json:"weekStartDate"`
}

func NewExpenseResponse(e *expense.Expense) ExpenseResponse {
	return ExpenseResponse{
		Id:            e.Id.String(),
		Category:      e.Category,
		Amount:        e.Amount,
		Date:          pkg.FormatDate(e.Date),
		WeekStartDate: pkg.FormatDate(e.WeekStartDate),
	}
}

func NewExpenseListResponse(expenses []*expense.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, NewExpenseResponse(e))
	}
	return out
}

type ExpenseAddedResponse struct {
	Expense          ExpenseResponse             `json:"expense"`
	NewBalance       float64                     `json:"newBalance"`
	AccountData      calculations.AccountSummary `json:"accountData"`
	MonthlySpendData [12]float64                 `json:"monthlySpendData"`
	Transaction      []ExpenseResponse           `json:"transaction"`
	GoalData         []calculations.GoalStatus   `json:"goalData"`
}

func NewExpenseAddedResponse(r *expense.AddResult) ExpenseAddedResponse {
	return ExpenseAddedResponse{
		Expense:          NewExpenseResponse(r.Expense),
		NewBalance:       r.NewBalance,
		AccountData:      r.AccountData,
		MonthlySpendData: r.MonthlySpendData,
		Transaction:      NewExpenseListResponse(r.Transactions),
		GoalData:         r.GoalData,
	}
}
