package contracts

import (
	"Finboard/internal/domain/calculations"
	"Finboard/internal/domain/salary"
	"Finboard/internal/pkg"
)

type SalaryCreateRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
	Date   string   `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

type SalaryResponse struct {
	Id         string  `json:"id"`
	Amount     float64 `json:"amount"`
	SalaryDate string  `json:"salaryDate"`
}

func NewSalaryResponse(s *salary.Salary) SalaryResponse {
	return SalaryResponse{
		Id:         s.Id.String(),
		Amount:     s.Amount,
		SalaryDate: pkg.FormatDate(s.SalaryDate),
	}
}

type BudgetSuggestionResponse struct {
	Salary     float64 `json:"salary"`
	SalaryDate string  `json:"salaryDate"`
	Needs      float64 `json:"needs"`
	Wants      float64 `json:"wants"`
	Savings    float64 `json:"savings"`
}

func NewBudgetSuggestionResponse(b salary.BudgetSuggestion) BudgetSuggestionResponse {
	return BudgetSuggestionResponse{
		Salary:     b.Salary,
		SalaryDate: pkg.FormatDate(b.SalaryDate),
		Needs:      b.Needs,
		Wants:      b.Wants,
		Savings:    b.Savings,
	}
}

type SalaryAddedResponse struct {
	Salary            SalaryResponse              `json:"salary"`
	NewBalance        float64                     `json:"newBalance"`
	AccountData       calculations.AccountSummary `json:"accountData"`
	BudgetSuggestions BudgetSuggestionResponse    `json:"budgetSuggestions"`
	GoalData          []calculations.GoalStatus   `json:"goalData"`
	Transaction       []ExpenseResponse           `json:"transaction"`
}

func NewSalaryAddedResponse(r *salary.AddResult) SalaryAddedResponse {
	return SalaryAddedResponse{
		Salary:            NewSalaryResponse(r.Salary),
		NewBalance:        r.NewBalance,
		AccountData:       r.AccountData,
		BudgetSuggestions: NewBudgetSuggestionResponse(r.BudgetSuggestions),
		GoalData:          r.GoalData,
		Transaction:       NewExpenseListResponse(r.Transactions),
	}
}
