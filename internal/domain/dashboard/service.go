package dashboard

import (
	"context"
	"errors"

	"Finboard/internal/domain/calculations"
	"Finboard/internal/domain/expense"
	"Finboard/internal/domain/goal"
	"Finboard/internal/domain/salary"
	"Finboard/internal/domain/shared"
	"Finboard/internal/domain/user"
	appErrors "Finboard/internal/errors"
	"Finboard/internal/logger"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"
)

// UnreadCounter reports how many shared reports a user has not opened yet.
type UnreadCounter interface {
	CountUnread(ctx context.Context, receiverID ulid.ULID) (int64, error)
}

type Service struct {
	Users    *user.Service
	Balances shared.BalanceStore
	Goals    *goal.Service
	Expenses *expense.Service
	Salaries *salary.Service
	Reports  UnreadCounter
}

func NewService(
	users *user.Service,
	balances shared.BalanceStore,
	goals *goal.Service,
	expenses *expense.Service,
	salaries *salary.Service,
	reports UnreadCounter,
) *Service {
	return &Service{
		Users:    users,
		Balances: balances,
		Goals:    goals,
		Expenses: expenses,
		Salaries: salaries,
		Reports:  reports,
	}
}

// GetDashboard loads every section concurrently. Only a missing user fails the call;
// section errors are logged and the section is reported empty.
func (s *Service) GetDashboard(ctx context.Context, userID ulid.ULID) (*Dashboard, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	d := emptyDashboard()
	d.Username = u.Username
	d.FirstName = u.FirstName
	d.LastName = u.LastName

	// Sections write disjoint fields of d and never return an error, so a failing
	// section cannot cancel its siblings.
	var g errgroup.Group

	g.Go(func() error {
		balance, err := s.Balances.GetBalance(ctx, userID)
		if err != nil {
			sectionFailed(userID, "account", err)
			return nil
		}
		d.AccountData = calculations.AccountData(balance.Current, balance.Previous)
		d.HasAccountBalance = balance.Current != 0 || balance.Previous != 0
		return nil
	})

	g.Go(func() error {
		goals, err := s.Goals.ListProgress(ctx, userID)
		if err != nil {
			sectionFailed(userID, "goals", err)
			return nil
		}
		if len(goals) > 0 {
			d.GoalData = goals
			d.HasGoal = true
		}
		return nil
	})

	g.Go(func() error {
		monthly, err := s.Expenses.MonthlyExpenses(ctx, userID)
		if err != nil {
			sectionFailed(userID, "monthly_expenses", err)
			return nil
		}
		latest, err := s.Expenses.LatestFive(ctx, userID)
		if err != nil {
			sectionFailed(userID, "latest_expenses", err)
			return nil
		}
		d.MonthlySpendData = monthly
		if len(latest) > 0 {
			d.Transactions = latest
			d.HasExpense = true
		}
		return nil
	})

	g.Go(func() error {
		suggestion, err := s.Salaries.BudgetSuggestion(ctx, userID)
		if err != nil {
			if !errors.Is(err, appErrors.ErrSalaryNotFound) {
				sectionFailed(userID, "salary", err)
			}
			return nil
		}
		d.BudgetSuggestionData = suggestion
		d.HasSalary = true
		return nil
	})

	if s.Reports != nil {
		g.Go(func() error {
			count, err := s.Reports.CountUnread(ctx, userID)
			if err != nil {
				sectionFailed(userID, "reports", err)
				return nil
			}
			d.ReportCount = count
			return nil
		})
	}

	g.Wait()
	return d, nil
}

// GetExpensePage builds the expense analytics page: salary against spending per month,
// the last weeks of spending and per-category totals by month.
func (s *Service) GetExpensePage(ctx context.Context, userID ulid.ULID) (*ExpensePage, error) {
	if err := s.Users.Exists(ctx, userID); err != nil {
		return nil, err
	}

	page := emptyExpensePage()
	var g errgroup.Group

	g.Go(func() error {
		salaries, has, err := s.Salaries.MonthlySalaries(ctx, userID)
		if err != nil {
			sectionFailed(userID, "monthly_salaries", err)
			return nil
		}
		page.ExpenseAndSalary.SalaryData = salaries
		page.HasSalary = has
		return nil
	})

	g.Go(func() error {
		data, has, err := s.Expenses.PageData(ctx, userID)
		if err != nil {
			sectionFailed(userID, "expense_page", err)
			return nil
		}
		page.HasExpense = has
		page.ExpenseAndSalary.ExpenseData = data.Monthly
		if data.Weekly != nil {
			page.WeeklyExpense = data.Weekly
		}
		if data.Categories != nil {
			page.MonthlyCategoryExpenses = data.Categories
		}
		return nil
	})

	g.Wait()
	return page, nil
}

// Account returns the balance card shown on the dashboard.
func (s *Service) Account(ctx context.Context, userID ulid.ULID) (calculations.AccountSummary, error) {
	balance, err := s.Balances.GetBalance(ctx, userID)
	if err != nil {
		return calculations.AccountSummary{}, err
	}
	return calculations.AccountData(balance.Current, balance.Previous), nil
}

func sectionFailed(userID ulid.ULID, section string, err error) {
	logger.Warn().
		Err(err).
		Str("user_id", userID.String()).
		Str("section", section).
		Msg("dashboard_section_failed")
}
