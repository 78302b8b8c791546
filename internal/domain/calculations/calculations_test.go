package calculations_test

import (
	"testing"
	"time"

	"Finboard/internal/domain/calculations"
	appErrors "Finboard/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAccountData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		balance   float64
		previous  float64
		wantTrend string
		wantPct   float64
	}{
		{"up", 1200, 1000, calculations.TrendUp, 20.0},
		{"down", 800, 1000, calculations.TrendDown, -20.0},
		{"unchanged counts as up", 1000, 1000, calculations.TrendUp, 0},
		{"zero previous", 350, 0, calculations.TrendUp, 100.0},
		{"rounded", 1001, 3000, calculations.TrendDown, -66.63},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := calculations.AccountData(tt.balance, tt.previous)
			assert.Equal(t, tt.wantTrend, got.TrendType)
			assert.InDelta(t, tt.wantPct, got.PercentChange, 1e-9)
			assert.Equal(t, tt.balance, got.Balance)
		})
	}
}

func TestGoalProgress(t *testing.T) {
	t.Parallel()

	goals := []calculations.GoalInput{
		{ID: "a", GoalName: "Emergency Fund", TargetAmount: 500, TimeDuration: 5, PercentageAllocation: 50},
		{ID: "b", GoalName: "Vacation", TargetAmount: 1000, TimeDuration: 10, PercentageAllocation: 25},
		{ID: "c", GoalName: "Laptop", TargetAmount: 1000, TimeDuration: 3, PercentageAllocation: 10},
	}

	got, err := calculations.GoalProgress(goals, 2000)
	require.NoError(t, err)
	require.Len(t, got, 3)

	met := got[0]
	assert.True(t, met.Met)
	assert.Equal(t, 100.0, met.ProgressPercentage)
	assert.Equal(t, 0.0, met.Remaining)
	assert.Equal(t, 500.0, met.Saved)
	assert.Equal(t, calculations.GoalMetMessage, met.Message)

	vacation := got[1]
	assert.False(t, vacation.Met)
	assert.Equal(t, 500.0, vacation.Saved)
	assert.Equal(t, 50.0, vacation.ProgressPercentage)
	assert.Equal(t, 500.0, vacation.Remaining)
	assert.Equal(t, "Save at least $100.00 per month to reach your goal!", vacation.Message)

	laptop := got[2]
	assert.Equal(t, 200.0, laptop.Saved)
	assert.Equal(t, 20.0, laptop.ProgressPercentage)
	assert.Equal(t, 800.0, laptop.Remaining)
	assert.Equal(t, "Save at least $333.33 per month to reach your goal!", laptop.Message)
}

func TestGoalProgress_RejectsZeroDuration(t *testing.T) {
	t.Parallel()

	_, err := calculations.GoalProgress([]calculations.GoalInput{{GoalName: "x", TargetAmount: 10}}, 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrInvalidInput)
}

func TestGoalProgress_Empty(t *testing.T) {
	t.Parallel()

	got, err := calculations.GoalProgress(nil, 100)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFiftyThirtyTwenty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		salary float64
		want   calculations.BudgetSplit
	}{
		{1000, calculations.BudgetSplit{Needs: 500, Wants: 300, Savings: 200}},
		{5000, calculations.BudgetSplit{Needs: 2500, Wants: 1500, Savings: 1000}},
		{1234.57, calculations.BudgetSplit{Needs: 617.29, Wants: 370.37, Savings: 246.91}},
	}

	for _, tt := range tests {
		got := calculations.FiftyThirtyTwenty(tt.salary)
		assert.Equal(t, tt.want, got)
		assert.InDelta(t, calculations.Round2(tt.salary), got.Needs+got.Wants+got.Savings, 0.011)
	}
}

func TestStartOfWeek(t *testing.T) {
	t.Parallel()

	assert.Equal(t, date(2025, 5, 5), calculations.StartOfWeek(date(2025, 5, 8)))
	assert.Equal(t, date(2025, 3, 10), calculations.StartOfWeek(date(2025, 3, 10)))
	assert.Equal(t, date(2025, 3, 10), calculations.StartOfWeek(date(2025, 3, 16)))

	for d := date(2024, 12, 20); d.Before(date(2025, 1, 20)); d = d.AddDate(0, 0, 1) {
		got := calculations.StartOfWeek(d.Add(15 * time.Hour))
		assert.Equal(t, time.Monday, got.Weekday())
		assert.False(t, got.After(d))
		assert.Less(t, d.Sub(got), 7*24*time.Hour)
	}
}

func TestMonthlyLists(t *testing.T) {
	t.Parallel()

	assert.Equal(t, [12]float64{}, calculations.MonthlyExpenseList(nil))

	expenses := []calculations.Entry{
		{Date: date(2025, 1, 10), Amount: 200},
		{Date: date(2025, 1, 15), Amount: 300},
		{Date: date(2025, 2, 5), Amount: 150.1},
		{Date: date(2025, 2, 6), Amount: 0.2},
	}
	got := calculations.MonthlyExpenseList(expenses)
	assert.Equal(t, 500.0, got[0])
	assert.Equal(t, 150.3, got[1])
	assert.Equal(t, 0.0, got[11])

	salaries := []calculations.Entry{
		{Date: date(2025, 1, 5), Amount: 2000},
		{Date: date(2025, 1, 20), Amount: 1500},
		{Date: date(2025, 2, 10), Amount: 1800},
	}
	sal := calculations.MonthlySalaryList(salaries)
	assert.Equal(t, 3500.0, sal[0])
	assert.Equal(t, 1800.0, sal[1])
}

func TestExpensePageData(t *testing.T) {
	t.Parallel()

	now := date(2025, 5, 8).Add(10 * time.Hour)
	expenses := []calculations.Entry{
		{Date: date(2025, 5, 8), Amount: 100, Category: "Food"},
		{Date: date(2025, 5, 5), Amount: 20.5, Category: "Food"},
		{Date: date(2025, 4, 8), Amount: 150, Category: "Travel"},
		{Date: date(2025, 1, 2), Amount: 40, Category: "Rent"},
		{Date: date(2024, 12, 30), Amount: 60, Category: "Rent"},
		{Date: date(2024, 11, 1), Amount: 999, Category: "Old"},
	}

	page := calculations.ExpensePageData(expenses, now)

	assert.Equal(t, 40.0, page.Monthly[0])
	assert.Equal(t, 150.0, page.Monthly[3])
	assert.Equal(t, 120.5, page.Monthly[4])
	assert.Equal(t, 0.0, page.Monthly[11], "previous year's December is excluded")

	require.Len(t, page.Weekly, calculations.WeeklyWindow)
	assert.Equal(t, 120.5, page.Weekly["2025-05-05"])
	assert.Equal(t, 150.0, page.Weekly["2025-04-07"])
	assert.Equal(t, 0.0, page.Weekly["2025-03-17"])
	_, tooOld := page.Weekly["2025-03-10"]
	assert.False(t, tooOld)

	assert.Equal(t, map[string]float64{"Food": 120.5, calculations.TotalKey: 120.5}, page.Categories["May"])
	assert.Equal(t, map[string]float64{"Travel": 150, calculations.TotalKey: 150}, page.Categories["April"])
	assert.Equal(t, 60.0, page.Categories["December"]["Rent"])
	assert.NotContains(t, page.Categories, "November")
}

func TestCategoryTotals_MonthTotalCountsEachExpenseOnce(t *testing.T) {
	t.Parallel()

	expenses := []calculations.Entry{
		{Date: date(2025, 3, 10), Amount: 50, Category: calculations.TotalKey},
		{Date: date(2025, 3, 11), Amount: 20, Category: "Food"},
		{Date: date(2025, 3, 12), Amount: 5.25, Category: "Food"},
	}

	months := calculations.CategoryTotals(expenses, date(2025, 3, 20))

	require.Contains(t, months, "March")
	assert.Equal(t, 75.25, months["March"][calculations.TotalKey])
	assert.Equal(t, 25.25, months["March"]["Food"])
}

func TestRound2(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.3, calculations.Round2(0.1+0.2))
	assert.Equal(t, 2.68, calculations.Round2(2.675))
	assert.Equal(t, -1.24, calculations.Round2(-1.235))
}
