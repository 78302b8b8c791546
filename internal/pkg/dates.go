package pkg

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Today() time.Time {
	return DateOnly(time.Now())
}

// ParseDateOrToday parses YYYY-MM-DD; blank input yields today.
func ParseDateOrToday(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Today(), nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// YearRange returns [Jan 1, Jan 1 next year) for t's year.
func YearRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// MonthRange returns [first of month, first of next month) for t's month.
func MonthRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
