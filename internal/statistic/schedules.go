package statistic

import (
	"fmt"
	"time"
)

// DailyAt fires once a day at a wall-clock time in loc.
type DailyAt struct {
	Hour, Minute int
	Location     *time.Location
}

// Next returns the first fire time strictly after t.
func (d DailyAt) Next(t time.Time) time.Time {
	local := t.In(d.Location)
	next := time.Date(local.Year(), local.Month(), local.Day(), d.Hour, d.Minute, 0, 0, d.Location)
	if !next.After(t) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, d.Hour, d.Minute, 0, 0, d.Location)
	}
	return next
}

// WeeklyAt fires once a week on Weekday at a wall-clock time in loc.
type WeeklyAt struct {
	Weekday      time.Weekday
	Hour, Minute int
	Location     *time.Location
}

func (w WeeklyAt) Next(t time.Time) time.Time {
	local := t.In(w.Location)
	ahead := (int(w.Weekday) - int(local.Weekday()) + 7) % 7
	next := time.Date(local.Year(), local.Month(), local.Day()+ahead, w.Hour, w.Minute, 0, 0, w.Location)
	if !next.After(t) {
		next = time.Date(local.Year(), local.Month(), local.Day()+ahead+7, w.Hour, w.Minute, 0, 0, w.Location)
	}
	return next
}

// ParseClock reads an "HH:MM" time of day.
func ParseClock(clock string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q: %w", clock, err)
	}
	return t.Hour(), t.Minute(), nil
}

// Location resolves a configured timezone name; empty means local time.
func Location(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
