package salary_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"Finboard/internal/domain/salary"
	"Finboard/internal/domain/shared"
	appErrors "Finboard/internal/errors"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSalaryRepository struct {
	salaries []*salary.Salary
}

func (f *fakeSalaryRepository) Create(ctx context.Context, s *salary.Salary) error {
	f.salaries = append(f.salaries, s)
	return nil
}

func (f *fakeSalaryRepository) GetByUserInRange(ctx context.Context, userID ulid.ULID, from, to time.Time) ([]*salary.Salary, error) {
	var out []*salary.Salary
	for _, s := range f.salaries {
		if s.UserId == userID && !s.SalaryDate.Before(from) && s.SalaryDate.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSalaryRepository) GetLast(ctx context.Context, userID ulid.ULID) (*salary.Salary, error) {
	var mine []*salary.Salary
	for _, s := range f.salaries {
		if s.UserId == userID {
			mine = append(mine, s)
		}
	}
	if len(mine) == 0 {
		return nil, appErrors.ErrSalaryNotFound
	}
	sort.SliceStable(mine, func(i, j int) bool { return mine[i].SalaryDate.After(mine[j].SalaryDate) })
	return mine[0], nil
}

type fakeBalances struct {
	balance shared.Balance
}

func (f *fakeBalances) GetBalance(ctx context.Context, userID ulid.ULID) (shared.Balance, error) {
	return f.balance, nil
}

func (f *fakeBalances) LockBalance(ctx context.Context, userID ulid.ULID) (shared.Balance, error) {
	return f.balance, nil
}

func (f *fakeBalances) SetBalance(ctx context.Context, userID ulid.ULID, b shared.Balance) error {
	f.balance = b
	return nil
}

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type existsChecker struct{}

func (existsChecker) Exists(ctx context.Context, userID ulid.ULID) error { return nil }

func newService(balance float64) (*salary.Service, *fakeSalaryRepository, *fakeBalances) {
	repo := &fakeSalaryRepository{}
	balances := &fakeBalances{balance: shared.Balance{Current: balance, Previous: balance}}
	svc := salary.NewService(repo, balances, passthroughTx{}, nil, nil, shared.NewUserCheckerService(existsChecker{}))
	svc.Now = func() time.Time { return time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC) }
	return svc, repo, balances
}

func TestService_AddSalary(t *testing.T) {
	t.Parallel()

	svc, repo, balances := newService(250)
	userID := ulid.Make()

	result, err := svc.AddSalary(context.Background(), &salary.CreateRequest{UserId: userID, Amount: 5000, Date: "2025-01-01"})
	require.NoError(t, err)

	assert.Equal(t, 5250.0, result.NewBalance)
	assert.Equal(t, shared.Balance{Current: 5250, Previous: 250}, balances.balance)
	assert.Equal(t, "up", result.AccountData.TrendType)
	assert.Equal(t, 5000.0, result.BudgetSuggestions.Salary)
	assert.Equal(t, 2500.0, result.BudgetSuggestions.Needs)
	assert.Equal(t, 1500.0, result.BudgetSuggestions.Wants)
	assert.Equal(t, 1000.0, result.BudgetSuggestions.Savings)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), result.BudgetSuggestions.SalaryDate)
	assert.NotNil(t, result.GoalData)
	assert.NotNil(t, result.Transactions)
	require.Len(t, repo.salaries, 1)
}

func TestService_AddSalaryValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount float64
		date   string
	}{
		{"zero", 0, ""},
		{"negative", -100, ""},
		{"below minimum", 9.99, ""},
		{"above maximum", 1_000_000.01, ""},
		{"bad date", 100, "2025-13-01"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, repo, balances := newService(10)
			_, err := svc.AddSalary(context.Background(), &salary.CreateRequest{UserId: ulid.Make(), Amount: tt.amount, Date: tt.date})
			assert.ErrorIs(t, err, appErrors.ErrInvalidInput)
			assert.Empty(t, repo.salaries)
			assert.Equal(t, 10.0, balances.balance.Current)
		})
	}
}

func TestService_AddSalaryAcceptsMaximum(t *testing.T) {
	t.Parallel()

	svc, repo, balances := newService(0)
	result, err := svc.AddSalary(context.Background(), &salary.CreateRequest{UserId: ulid.Make(), Amount: salary.MaxAmount, Date: "2025-01-10"})
	require.NoError(t, err)
	assert.Equal(t, 1_000_000.0, result.NewBalance)
	assert.Equal(t, 1_000_000.0, balances.balance.Current)
	assert.Len(t, repo.salaries, 1)
}

func TestService_LastSalarySumsMonth(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newService(0)
	userID := ulid.Make()
	repo.salaries = []*salary.Salary{
		{UserId: userID, Amount: 2000, SalaryDate: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
		{UserId: userID, Amount: 1500, SalaryDate: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)},
		{UserId: userID, Amount: 1800, SalaryDate: time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC)},
	}

	last, err := svc.LastSalary(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 3500.0, last.Amount)
	assert.Equal(t, 20, last.SalaryDate.Day())
	assert.Equal(t, 1500.0, repo.salaries[1].Amount, "stored salary must not be mutated")

	monthly, has, err := svc.MonthlySalaries(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, 3500.0, monthly[0])
	assert.Equal(t, 0.0, monthly[11])
}

func TestService_BudgetSuggestionWithoutSalary(t *testing.T) {
	t.Parallel()

	svc, _, _ := newService(0)
	_, err := svc.BudgetSuggestion(context.Background(), ulid.Make())
	assert.ErrorIs(t, err, appErrors.ErrSalaryNotFound)
}
