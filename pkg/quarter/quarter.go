// Package quarter computes the three-month windows the schedule views page
// through.
package quarter

import (
	"fmt"
	"time"

	"tableflip.dev/rota/pkg/shift"
)

// Window is an inclusive range of three consecutive calendar months aligned to
// a quarter boundary.
type Window struct {
	Start time.Time
	End   time.Time
}

// For returns the window offset quarters away from the quarter containing ref.
// Negative offsets page backwards; year rollover is handled by time.Date
// normalization.
func For(ref time.Time, offset int) Window {
	loc := ref.Location()
	first := (int(ref.Month()) - 1) / 3 * 3
	month := time.Month(first + 1 + offset*3)
	start := time.Date(ref.Year(), month, 1, 0, 0, 0, 0, loc)
	// Day zero of the fourth month is the last day of the third.
	end := time.Date(start.Year(), start.Month()+3, 0, 0, 0, 0, 0, loc)
	return Window{Start: start, End: end}
}

// Year is the calendar year of the window's first month.
func (w Window) Year() int { return w.Start.Year() }

// StartMonthIndex is the zero-based month the window starts on (0, 3, 6 or 9).
func (w Window) StartMonthIndex() int { return int(w.Start.Month()) - 1 }

// Number is the 1-based quarter number.
func (w Window) Number() int { return w.StartMonthIndex()/3 + 1 }

// Label renders the window as "Q1 2024".
func (w Window) Label() string {
	return fmt.Sprintf("Q%d %d", w.Number(), w.Year())
}

// From is the first day as a cache key.
func (w Window) From() string { return shift.FormatDate(w.Start) }

// To is the last day as a cache key.
func (w Window) To() string { return shift.FormatDate(w.End) }

// Months returns the first day of each month in the window.
func (w Window) Months() []time.Time {
	out := make([]time.Time, 0, 3)
	for m := 0; m < 3; m++ {
		out = append(out, time.Date(w.Start.Year(), w.Start.Month()+time.Month(m), 1, 0, 0, 0, 0, w.Start.Location()))
	}
	return out
}

// Contains reports whether the date key falls inside the window. Keys compare
// lexically because of the fixed-width layout.
func (w Window) Contains(date string) bool {
	if len(date) != len(shift.DateLayout) {
		return false
	}
	return date >= w.From() && date <= w.To()
}

// Equal compares windows by their calendar bounds.
func (w Window) Equal(o Window) bool {
	return w.From() == o.From() && w.To() == o.To()
}

// DaysIn returns the number of days in month's month.
func DaysIn(month time.Time) int {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	return first.AddDate(0, 1, -1).Day()
}
