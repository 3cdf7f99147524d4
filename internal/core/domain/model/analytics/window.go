package analytics

import (
	"fmt"
	"time"

	"marketplace/internal/pkg/errs"
)

// Window is a half-open time range [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// days spans n calendar days starting at start's midnight. time.Date
// normalizes, so days around a DST change keep their wall-clock boundaries.
func days(start time.Time, n int) Window {
	return Window{
		Start: start,
		End:   time.Date(start.Year(), start.Month(), start.Day()+n, 0, 0, 0, 0, start.Location()),
	}
}

func shiftDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, t.Location())
}

// Day is the calendar day containing t in loc.
func Day(t time.Time, loc *time.Location) Window {
	return days(midnight(t, loc), 1)
}

// Yesterday is the calendar day before the one containing t.
func Yesterday(t time.Time, loc *time.Location) Window {
	return days(shiftDays(midnight(t, loc), -1), 1)
}

// RollingWeek is the seven calendar days ending with t's day, inclusive.
func RollingWeek(t time.Time, loc *time.Location) Window {
	return days(shiftDays(midnight(t, loc), -6), 7)
}

// PreviousRollingWeek is the seven days immediately before RollingWeek.
func PreviousRollingWeek(t time.Time, loc *time.Location) Window {
	return days(shiftDays(midnight(t, loc), -13), 7)
}

// CalendarWeek is the Monday-to-Sunday week containing t.
func CalendarWeek(t time.Time, loc *time.Location) Window {
	day := midnight(t, loc)
	sinceMonday := (int(day.Weekday()) + 6) % 7
	return days(shiftDays(day, -sinceMonday), 7)
}

// PreviousCalendarWeek is the Monday-to-Sunday week before CalendarWeek.
func PreviousCalendarWeek(t time.Time, loc *time.Location) Window {
	w := CalendarWeek(t, loc)
	return days(shiftDays(w.Start, -7), 7)
}

// MonthDays returns one window per calendar day of month in year.
func MonthDays(year int, month time.Month, loc *time.Location) ([]Window, error) {
	if month < time.January || month > time.December {
		return nil, errs.NewValueIsOutOfRangeError("month", int(month), 1, 12)
	}
	if year < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("year", fmt.Errorf("%d is not a positive year", year))
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	n := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	out := make([]Window, 0, n)
	for d := 0; d < n; d++ {
		out = append(out, days(shiftDays(first, d), 1))
	}
	return out, nil
}
