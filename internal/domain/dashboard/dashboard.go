package dashboard

import (
	"Finboard/internal/domain/calculations"
	"Finboard/internal/domain/expense"
	"Finboard/internal/domain/salary"
)

// Dashboard is the landing page payload. Every section has a has<X> flag; a section
// that failed to load or has no data is reported as false with an empty payload.
type Dashboard struct {
	Username             string                      `json:"username"`
	FirstName            string                      `json:"firstName"`
	LastName             string                      `json:"lastName"`
	HasAccountBalance    bool                        `json:"hasAccountBalance"`
	AccountData          calculations.AccountSummary `json:"accountData"`
	HasGoal              bool                        `json:"hasGoal"`
	GoalData             []calculations.GoalStatus   `json:"goalData"`
	HasExpense           bool                        `json:"hasExpense"`
	MonthlySpendData     [12]float64                 `json:"monthlySpendData"`
	Transactions         []*expense.Expense          `json:"transaction"`
	HasSalary            bool                        `json:"hasSalary"`
	BudgetSuggestionData *salary.BudgetSuggestion    `json:"budgetSuggestionData"`
	ReportCount          int64                       `json:"reportCount"`
}

type ExpenseAndSalary struct {
	SalaryData  [12]float64 `json:"salaryData"`
	ExpenseData [12]float64 `json:"expenseData"`
}

type ExpensePage struct {
	HasSalary               bool                          `json:"hasSalary"`
	HasExpense              bool                          `json:"hasExpense"`
	ExpenseAndSalary        ExpenseAndSalary              `json:"expenseAndSalary"`
	WeeklyExpense           map[string]float64            `json:"weeklyExpense"`
	MonthlyCategoryExpenses map[string]map[string]float64 `json:"monthlyCategoryExpenses"`
}

func emptyDashboard() *Dashboard {
	return &Dashboard{
		GoalData:             []calculations.GoalStatus{},
		Transactions:         []*expense.Expense{},
		BudgetSuggestionData: &salary.BudgetSuggestion{},
	}
}

func emptyExpensePage() *ExpensePage {
	return &ExpensePage{
		WeeklyExpense:           map[string]float64{},
		MonthlyCategoryExpenses: map[string]map[string]float64{},
	}
}
