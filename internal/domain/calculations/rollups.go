package calculations

import (
	"time"
)

const (
	WeeklyWindow   = 8
	CategoryWindow = 150 * 24 * time.Hour
	TotalKey       = "total"
	weekLabel      = "2006-01-02"
)

// Entry is a dated amount; Category is empty for salaries.
type Entry struct {
	Date     time.Time
	Amount   float64
	Category string
}

type ExpensePage struct {
	Monthly    [12]float64
	Weekly     map[string]float64
	Categories map[string]map[string]float64
}

// StartOfWeek returns midnight of the Monday on or before date.
func StartOfWeek(date time.Time) time.Time {
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// MonthlyList sums amounts into January..December slots without filtering by year.
func MonthlyList(entries []Entry) [12]float64 {
	var months [12]float64
	for _, e := range entries {
		idx := int(e.Date.Month()) - 1
		months[idx] = sum2(months[idx], e.Amount)
	}
	return months
}

func MonthlyExpenseList(expenses []Entry) [12]float64 { return MonthlyList(expenses) }

func MonthlySalaryList(salaries []Entry) [12]float64 { return MonthlyList(salaries) }

// WeeklyTotals covers the WeeklyWindow weeks ending with now's week; empty weeks are zero.
func WeeklyTotals(expenses []Entry, now time.Time) map[string]float64 {
	current := StartOfWeek(now)
	oldest := current.AddDate(0, 0, -7*(WeeklyWindow-1))

	weeks := make(map[string]float64, WeeklyWindow)
	for i := 0; i < WeeklyWindow; i++ {
		weeks[oldest.AddDate(0, 0, 7*i).Format(weekLabel)] = 0
	}

	for _, e := range expenses {
		start := StartOfWeek(e.Date)
		if start.Before(oldest) || start.After(current) {
			continue
		}
		label := start.Format(weekLabel)
		weeks[label] = sum2(weeks[label], e.Amount)
	}
	return weeks
}

// CategoryTotals groups expenses from the last CategoryWindow by month name then category.
// TotalKey holds the month total and is written after the categories.
func CategoryTotals(expenses []Entry, now time.Time) map[string]map[string]float64 {
	cutoff := StartOfDay(now).Add(-CategoryWindow)
	months := make(map[string]map[string]float64)
	totals := make(map[string]float64)
	for _, e := range expenses {
		if e.Date.Before(cutoff) || e.Date.After(now) {
			continue
		}
		month := e.Date.Month().String()
		bucket, ok := months[month]
		if !ok {
			bucket = make(map[string]float64)
			months[month] = bucket
		}
		bucket[e.Category] = sum2(bucket[e.Category], e.Amount)
		totals[month] = sum2(totals[month], e.Amount)
	}
	for month, total := range totals {
		months[month][TotalKey] = total
	}
	return months
}

// ExpensePageData builds the three expense page views. The monthly view only counts now's year.
func ExpensePageData(expenses []Entry, now time.Time) ExpensePage {
	thisYear := make([]Entry, 0, len(expenses))
	for _, e := range expenses {
		if e.Date.Year() == now.Year() {
			thisYear = append(thisYear, e)
		}
	}

	return ExpensePage{
		Monthly:    MonthlyExpenseList(thisYear),
		Weekly:     WeeklyTotals(expenses, now),
		Categories: CategoryTotals(expenses, now),
	}
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
