package expense

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"Finboard/internal/domain/calculations"
	"Finboard/internal/domain/goal"
	"Finboard/internal/domain/shared"
	appErrors "Finboard/internal/errors"
	"Finboard/internal/logger"
	"Finboard/internal/pkg"

	"github.com/oklog/ulid/v2"
)

const LatestLimit = 5

type Service struct {
	shared.BaseService
	Repository Repository
	Balances   shared.BalanceStore
	Tx         shared.TxRunner
	Goals      *goal.Service
	Now        func() time.Time
}

func NewService(
	repo Repository,
	balances shared.BalanceStore,
	tx shared.TxRunner,
	goals *goal.Service,
	userChecker *shared.UserCheckerService,
) *Service {
	return &Service{
		BaseService: shared.BaseService{UserChecker: userChecker},
		Repository:  repo,
		Balances:    balances,
		Tx:          tx,
		Goals:       goals,
		Now:         func() time.Time { return time.Now().UTC() },
	}
}

// AddExpense validates the request, books it against the balance and returns the refreshed
// dashboard figures.
func (s *Service) AddExpense(ctx context.Context, req *CreateRequest) (*AddResult, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, appErrors.NewMissingFieldError("category")
	}
	if len(category) > maxCategoryLength {
		return nil, appErrors.NewValidationError("category", "must be at most 100 characters")
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}
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

	var created *Expense
	var balance shared.Balance
	err = s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, balance, err = s.record(ctx, req.UserId, category, req.Amount, date)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("user_id", req.UserId.String()).
		Str("expense_id", created.Id.String()).
		Float64("amount", created.Amount).
		Msg("expense_recorded")

	return s.buildResult(ctx, created, balance)
}

// RecordExpense implements goal.ExpenseRecorder.
func (s *Service) RecordExpense(ctx context.Context, userID ulid.ULID, category string, amount float64, date time.Time) error {
	if err := validateCategory(category); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	return s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		_, _, err := s.record(ctx, userID, category, amount, date)
		return err
	})
}

// record runs the balance state machine: lock, snapshot previous, apply, insert.
func (s *Service) record(ctx context.Context, userID ulid.ULID, category string, amount float64, date time.Time) (*Expense, shared.Balance, error) {
	current, err := s.Balances.LockBalance(ctx, userID)
	if err != nil {
		return nil, shared.Balance{}, err
	}

	amount = calculations.Round2(amount)
	next := shared.Balance{
		Previous: current.Current,
		Current:  calculations.Round2(current.Current - amount),
	}
	if err := s.Balances.SetBalance(ctx, userID, next); err != nil {
		return nil, shared.Balance{}, err
	}

	entity := &Expense{
		Id:            pkg.GenerateULIDObject(),
		UserId:        userID,
		Category:      category,
		Amount:        amount,
		Date:          pkg.DateOnly(date),
		WeekStartDate: calculations.StartOfWeek(pkg.DateOnly(date)),
		CreatedAt:     pkg.SetTimestamps(),
	}
	if err := s.Repository.Create(ctx, entity); err != nil {
		return nil, shared.Balance{}, err
	}
	return entity, next, nil
}

func (s *Service) buildResult(ctx context.Context, created *Expense, balance shared.Balance) (*AddResult, error) {
	monthly, err := s.MonthlyExpenses(ctx, created.UserId)
	if err != nil {
		return nil, err
	}
	latest, err := s.LatestFive(ctx, created.UserId)
	if err != nil {
		return nil, err
	}

	result := &AddResult{
		Expense:          created,
		NewBalance:       balance.Current,
		AccountData:      calculations.AccountData(balance.Current, balance.Previous),
		MonthlySpendData: monthly,
		Transactions:     latest,
		GoalData:         []calculations.GoalStatus{},
	}
	if s.Goals != nil {
		goals, err := s.Goals.ListProgress(ctx, created.UserId)
		if err != nil {
			return nil, err
		}
		result.GoalData = goals
	}
	return result, nil
}

func (s *Service) LatestFive(ctx context.Context, userID ulid.ULID) ([]*Expense, error) {
	return s.Repository.GetLatest(ctx, userID, LatestLimit)
}

// CurrentYear returns the user's expenses dated in the current calendar year.
func (s *Service) CurrentYear(ctx context.Context, userID ulid.ULID) ([]*Expense, error) {
	from, to := pkg.YearRange(s.Now())
	return s.Repository.GetByUserInRange(ctx, userID, from, to)
}

func (s *Service) MonthlyExpenses(ctx context.Context, userID ulid.ULID) ([12]float64, error) {
	expenses, err := s.CurrentYear(ctx, userID)
	if err != nil {
		return [12]float64{}, err
	}
	return calculations.MonthlyExpenseList(Entries(expenses)), nil
}

// PageData loads enough history for the monthly, weekly and category views.
func (s *Service) PageData(ctx context.Context, userID ulid.ULID) (calculations.ExpensePage, bool, error) {
	now := s.Now()
	yearStart, _ := pkg.YearRange(now)
	since := pkg.DateOnly(now).Add(-calculations.CategoryWindow)
	if weekly := calculations.StartOfWeek(now).AddDate(0, 0, -7*(calculations.WeeklyWindow-1)); weekly.Before(since) {
		since = weekly
	}
	if yearStart.Before(since) {
		since = yearStart
	}

	expenses, err := s.Repository.GetByUserSince(ctx, userID, since)
	if err != nil {
		return calculations.ExpensePage{}, false, err
	}
	return calculations.ExpensePageData(Entries(expenses), now), len(expenses) > 0, nil
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return appErrors.NewValidationError("amount", "must be greater than 0")
	}
	if calculations.Round2(amount) <= 0 {
		return appErrors.NewValidationError("amount", "must be at least 0.01")
	}
	return nil
}

// validateCategory rejects the name reserved for the monthly total in category rollups.
func validateCategory(category string) error {
	if strings.EqualFold(category, calculations.TotalKey) {
		return appErrors.NewValidationError("category", fmt.Sprintf("%q is reserved", calculations.TotalKey))
	}
	return nil
}
