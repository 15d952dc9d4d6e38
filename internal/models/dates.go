package models

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// DateKey formats t as a UTC calendar day.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// WeekKey returns the date of the Sunday that starts the week containing date.
func WeekKey(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, -int(t.Weekday())).Format(DateLayout), nil
}

// AddDays shifts a date key by n days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}
