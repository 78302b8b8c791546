package salary

import (
	"context"
	"fmt"
	"math"
	"time"

	"Finboard/internal/domain/calculations"
	"Finboard/internal/domain/expense"
	"Finboard/internal/domain/goal"
	"Finboard/internal/domain/shared"
	appErrors "Finboard/internal/errors"
	"Finboard/internal/logger"
	"Finboard/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	shared.BaseService
	Repository Repository
	Balances   shared.BalanceStore
	Tx         shared.TxRunner
	Goals      *goal.Service
	Expenses   *expense.Service
	Now        func() time.Time
}

func NewService(
	repo Repository,
	balances shared.BalanceStore,
	tx shared.TxRunner,
	goals *goal.Service,
	expenses *expense.Service,
	userChecker *shared.UserCheckerService,
) *Service {
	return &Service{
		BaseService: shared.BaseService{UserChecker: userChecker},
		Repository:  repo,
		Balances:    balances,
		Tx:          tx,
		Goals:       goals,
		Expenses:    expenses,
		Now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) AddSalary(ctx context.Context, req *CreateRequest) (*AddResult, error) {
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	date, err := pkg.ParseDateOrToday(req.Date)
	if err != nil {
		return nil, appErrors.NewValidationError("date", "must be formatted as YYYY-MM-DD").WithError(err)
	}
	if err := s.EnsureUserExists(ctx, req.UserId); err != nil {
		return nil, err
	}

	entity := &Salary{
		Id:         pkg.GenerateULIDObject(),
		UserId:     req.UserId,
		Amount:     calculations.Round2(req.Amount),
		SalaryDate: date,
		CreatedAt:  pkg.SetTimestamps(),
	}

	var next shared.Balance
	err = s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.Balances.LockBalance(ctx, req.UserId)
		if err != nil {
			return err
		}
		next = shared.Balance{
			Previous: current.Current,
			Current:  calculations.Round2(current.Current + entity.Amount),
		}
		if err := s.Balances.SetBalance(ctx, req.UserId, next); err != nil {
			return err
		}
		return s.Repository.Create(ctx, entity)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("user_id", req.UserId.String()).
		Str("salary_id", entity.Id.String()).
		Float64("amount", entity.Amount).
		Msg("salary_recorded")

	result := &AddResult{
		Salary:       entity,
		NewBalance:   next.Current,
		AccountData:  calculations.AccountData(next.Current, next.Previous),
		GoalData:     []calculations.GoalStatus{},
		Transactions: []*expense.Expense{},
	}

	suggestion, err := s.BudgetSuggestion(ctx, req.UserId)
	if err != nil {
		return nil, err
	}
	result.BudgetSuggestions = *suggestion

	if s.Goals != nil {
		if result.GoalData, err = s.Goals.ListProgress(ctx, req.UserId); err != nil {
			return nil, err
		}
	}
	if s.Expenses != nil {
		if result.Transactions, err = s.Expenses.LatestFive(ctx, req.UserId); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// LastSalary returns the latest salary with its amount summed over that salary's month.
func (s *Service) LastSalary(ctx context.Context, userID ulid.ULID) (*Salary, error) {
	last, err := s.Repository.GetLast(ctx, userID)
	if err != nil {
		return nil, err
	}

	from, to := pkg.MonthRange(last.SalaryDate)
	sameMonth, err := s.Repository.GetByUserInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	total := 0.0
	for _, sal := range sameMonth {
		total += sal.Amount
	}
	monthly := *last
	monthly.Amount = calculations.Round2(total)
	return &monthly, nil
}

func (s *Service) BudgetSuggestion(ctx context.Context, userID ulid.ULID) (*BudgetSuggestion, error) {
	last, err := s.LastSalary(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &BudgetSuggestion{
		Salary:      last.Amount,
		SalaryDate:  last.SalaryDate,
		BudgetSplit: calculations.FiftyThirtyTwenty(last.Amount),
	}, nil
}

func (s *Service) CurrentYear(ctx context.Context, userID ulid.ULID) ([]*Salary, error) {
	from, to := pkg.YearRange(s.Now())
	return s.Repository.GetByUserInRange(ctx, userID, from, to)
}

func (s *Service) MonthlySalaries(ctx context.Context, userID ulid.ULID) ([12]float64, bool, error) {
	salaries, err := s.CurrentYear(ctx, userID)
	if err != nil {
		return [12]float64{}, false, err
	}
	return calculations.MonthlySalaryList(Entries(salaries)), len(salaries) > 0, nil
}

func validateAmount(amount float64) error {
	switch {
	case math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0:
		return appErrors.NewValidationError("amount", "must be greater than 0")
	case amount < MinAmount:
		return appErrors.NewValidationError("amount", fmt.Sprintf("must be at least $%.0f", MinAmount))
	case amount > MaxAmount:
		return appErrors.NewValidationError("amount", "must be at most $1,000,000")
	}
	return nil
}
