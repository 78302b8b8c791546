package expense_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"Finboard/internal/domain/expense"
	"Finboard/internal/domain/shared"
	appErrors "Finboard/internal/errors"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpenseRepository struct {
	expenses []*expense.Expense
	createFn func(ctx context.Context, e *expense.Expense) error
}

func (f *fakeExpenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	if f.createFn != nil {
		if err := f.createFn(ctx, e); err != nil {
			return err
		}
	}
	f.expenses = append(f.expenses, e)
	return nil
}

func (f *fakeExpenseRepository) GetByUserInRange(ctx context.Context, userID ulid.ULID, from, to time.Time) ([]*expense.Expense, error) {
	var out []*expense.Expense
	for _, e := range f.expenses {
		if e.UserId == userID && !e.Date.Before(from) && e.Date.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExpenseRepository) GetByUserSince(ctx context.Context, userID ulid.ULID, since time.Time) ([]*expense.Expense, error) {
	return f.GetByUserInRange(ctx, userID, since, time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC))
}

func (f *fakeExpenseRepository) GetLatest(ctx context.Context, userID ulid.ULID, limit int) ([]*expense.Expense, error) {
	out, _ := f.GetByUserSince(ctx, userID, time.Time{})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeBalances struct {
	balance shared.Balance
	setErr  error
}

func (f *fakeBalances) GetBalance(ctx context.Context, userID ulid.ULID) (shared.Balance, error) {
	return f.balance, nil
}

func (f *fakeBalances) LockBalance(ctx context.Context, userID ulid.ULID) (shared.Balance, error) {
	return f.balance, nil
}

func (f *fakeBalances) SetBalance(ctx context.Context, userID ulid.ULID, b shared.Balance) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.balance = b
	return nil
}

// snapshotTx restores the balance when fn fails, like a database rollback would.
type snapshotTx struct {
	balances *fakeBalances
}

func (s *snapshotTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	saved := s.balances.balance
	if err := fn(ctx); err != nil {
		s.balances.balance = saved
		return err
	}
	return nil
}

type existsChecker struct{ err error }

func (e existsChecker) Exists(ctx context.Context, userID ulid.ULID) error { return e.err }

func newService(balance float64) (*expense.Service, *fakeExpenseRepository, *fakeBalances) {
	repo := &fakeExpenseRepository{}
	balances := &fakeBalances{balance: shared.Balance{Current: balance, Previous: balance}}
	svc := expense.NewService(repo, balances, &snapshotTx{balances: balances}, nil, shared.NewUserCheckerService(existsChecker{}))
	svc.Now = func() time.Time { return time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC) }
	return svc, repo, balances
}

func TestService_AddExpense(t *testing.T) {
	t.Parallel()

	svc, repo, balances := newService(1000)
	userID := ulid.Make()

	result, err := svc.AddExpense(context.Background(), &expense.CreateRequest{
		UserId: userID, Category: "Groceries", Amount: 200, Date: "2025-03-10",
	})
	require.NoError(t, err)

	assert.Equal(t, 800.0, result.NewBalance)
	assert.Equal(t, shared.Balance{Current: 800, Previous: 1000}, balances.balance)
	assert.Equal(t, "down", result.AccountData.TrendType)
	assert.Equal(t, -20.0, result.AccountData.PercentChange)
	assert.Equal(t, 200.0, result.MonthlySpendData[2])
	require.Len(t, result.Transactions, 1)
	assert.NotNil(t, result.GoalData)

	require.Len(t, repo.expenses, 1)
	created := repo.expenses[0]
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), created.Date)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), created.WeekStartDate)
}

func TestService_AddExpenseWeekStart(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newService(100)
	_, err := svc.AddExpense(context.Background(), &expense.CreateRequest{
		UserId: ulid.Make(), Category: "Fuel", Amount: 10, Date: "2025-03-16",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), repo.expenses[0].WeekStartDate)
}

func TestService_AddExpenseValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		req      expense.CreateRequest
		wantCode string
	}{
		{"missing category", expense.CreateRequest{Amount: 10}, "MISSING_FIELD"},
		{"zero amount", expense.CreateRequest{Category: "Food"}, "INVALID_INPUT"},
		{"negative amount", expense.CreateRequest{Category: "Food", Amount: -5}, "INVALID_INPUT"},
		{"sub cent amount", expense.CreateRequest{Category: "Food", Amount: 0.001}, "INVALID_INPUT"},
		{"bad date", expense.CreateRequest{Category: "Food", Amount: 5, Date: "03/10/2025"}, "INVALID_INPUT"},
		{"reserved category", expense.CreateRequest{Category: "Total", Amount: 5}, "INVALID_INPUT"},
		{"reserved category padded", expense.CreateRequest{Category: "  total ", Amount: 5}, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, repo, balances := newService(100)
			req := tt.req
			req.UserId = ulid.Make()
			_, err := svc.AddExpense(context.Background(), &req)
			appErr, ok := appErrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Empty(t, repo.expenses)
			assert.Equal(t, 100.0, balances.balance.Current)
		})
	}
}

func TestService_AddExpenseRollsBackOnInsertFailure(t *testing.T) {
	t.Parallel()

	svc, repo, balances := newService(500)
	repo.createFn = func(ctx context.Context, e *expense.Expense) error {
		return appErrors.NewDatabaseError(errors.New("disk full"))
	}

	_, err := svc.AddExpense(context.Background(), &expense.CreateRequest{
		UserId: ulid.Make(), Category: "Food", Amount: 50,
	})
	require.Error(t, err)
	assert.True(t, appErrors.FromError(err).IsSystem())
	assert.Equal(t, shared.Balance{Current: 500, Previous: 500}, balances.balance)
}

func TestService_AddExpenseUnknownUser(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newService(0)
	svc.UserChecker = shared.NewUserCheckerService(existsChecker{err: appErrors.ErrUserNotFound})

	_, err := svc.AddExpense(context.Background(), &expense.CreateRequest{UserId: ulid.Make(), Category: "x", Amount: 1})
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)
	assert.Empty(t, repo.expenses)
}

func TestService_LatestFiveAndMonthly(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newService(0)
	userID := ulid.Make()
	for day := 1; day <= 7; day++ {
		repo.expenses = append(repo.expenses, &expense.Expense{
			Id: ulid.Make(), UserId: userID, Category: "c", Amount: 10, Date: time.Date(2025, 2, day, 0, 0, 0, 0, time.UTC),
		})
	}
	repo.expenses = append(repo.expenses, &expense.Expense{
		Id: ulid.Make(), UserId: userID, Category: "old", Amount: 99, Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	})

	latest, err := svc.LatestFive(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, latest, 5)
	assert.Equal(t, 7, latest[0].Date.Day())

	monthly, err := svc.MonthlyExpenses(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 70.0, monthly[1])
}

func TestService_RecordExpense(t *testing.T) {
	t.Parallel()

	svc, repo, balances := newService(300)
	err := svc.RecordExpense(context.Background(), ulid.Make(), "Goal: Trip", 300, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, shared.Balance{Current: 0, Previous: 300}, balances.balance)
	assert.Equal(t, "Goal: Trip", repo.expenses[0].Category)
}

func TestService_RecordExpenseRejectsReservedCategory(t *testing.T) {
	t.Parallel()

	svc, repo, balances := newService(300)
	err := svc.RecordExpense(context.Background(), ulid.Make(), "TOTAL", 100, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, appErrors.ErrInvalidInput)
	assert.Empty(t, repo.expenses)
	assert.Equal(t, 300.0, balances.balance.Current)
}

func TestService_PageData(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newService(0)
	userID := ulid.Make()
	repo.expenses = []*expense.Expense{
		{UserId: userID, Category: "Food", Amount: 12.5, Date: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)},
		{UserId: userID, Category: "Rent", Amount: 700, Date: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)},
	}

	page, has, err := svc.PageData(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, 12.5, page.Monthly[2])
	assert.Equal(t, 0.0, page.Monthly[11])
	assert.Equal(t, 12.5, page.Weekly["2025-03-10"])
	assert.Equal(t, 700.0, page.Categories["December"]["Rent"])
}
