// Package viewmodel builds the presentation-independent models behind the
// calendar, timeline and history views. Renderers in the terminal UI and the
// CLI printers consume these models; nothing here draws or talks to the store.
package viewmodel

import (
	"strings"
	"time"

	"tableflip.dev/rota/pkg/quarter"
	"tableflip.dev/rota/pkg/shift"
)

const (
	monthFormat     = "January 2006"
	historyLayout   = "02.01 15:04"
	emptyChange     = "—"
	emptyHistoryRow = "no history"
)

// Lookup resolves a date key to its cached shift.
type Lookup interface {
	Get(date string) (shift.Shift, bool)
}

// WeekdayLabels are the Monday-first column headers.
var WeekdayLabels = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// DayCell is one day in any of the schedule views.
type DayCell struct {
	Date    string
	Day     int
	Weekday time.Weekday
	Today   bool
	Weekend bool

	// HasShift is set when the cache holds a record for Date.
	HasShift bool
	Shift    shift.Shift
}

// Type returns the shift type, or "" for an empty day.
func (d DayCell) Type() shift.Type {
	if !d.HasShift {
		return ""
	}
	return d.Shift.Type
}

// Detail is the one-line description of the day: "<date> <type> <start>–<end>"
// for a scheduled day, the bare date otherwise.
func (d DayCell) Detail() string {
	if !d.HasShift {
		return d.Date
	}
	parts := []string{d.Date, string(d.Shift.Type)}
	if h := d.Shift.Hours(); h != "" {
		parts = append(parts, h)
	}
	return strings.Join(parts, " ")
}

// MondayOffset is the number of blank cells before the first of month in a
// Monday-first grid.
func MondayOffset(month time.Time) int {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	return (int(first.Weekday()) + 6) % 7
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

func days(month time.Time, lookup Lookup, today string) []DayCell {
	n := quarter.DaysIn(month)
	out := make([]DayCell, 0, n)
	for d := 1; d <= n; d++ {
		t := time.Date(month.Year(), month.Month(), d, 0, 0, 0, 0, month.Location())
		cell := DayCell{
			Date:    shift.FormatDate(t),
			Day:     d,
			Weekday: t.Weekday(),
			Weekend: isWeekend(t),
		}
		cell.Today = cell.Date == today
		if lookup != nil {
			cell.Shift, cell.HasShift = lookup.Get(cell.Date)
		}
		out = append(out, cell)
	}
	return out
}

// Month is one calendar block.
type Month struct {
	Title   string
	Start   time.Time
	Leading int
	Days    []DayCell
}

// Weeks lays the month out in Monday-first rows of seven. Blank cells are nil.
func (m Month) Weeks() [][]*DayCell {
	total := m.Leading + len(m.Days)
	rows := (total + 6) / 7
	out := make([][]*DayCell, rows)
	for r := range out {
		out[r] = make([]*DayCell, 7)
		for c := 0; c < 7; c++ {
			idx := r*7 + c - m.Leading
			if idx >= 0 && idx < len(m.Days) {
				out[r][c] = &m.Days[idx]
			}
		}
	}
	return out
}

// Position returns the row and column of date in Weeks, or ok=false.
func (m Month) Position(date string) (row, col int, ok bool) {
	for i, d := range m.Days {
		if d.Date == date {
			idx := m.Leading + i
			return idx / 7, idx % 7, true
		}
	}
	return 0, 0, false
}

// CalendarView is the month-grid presentation of a window.
type CalendarView struct {
	Window quarter.Window
	Label  string
	Months []Month
}

// Calendar builds three month blocks for w.
func Calendar(w quarter.Window, lookup Lookup, today time.Time) CalendarView {
	key := shift.FormatDate(today)
	view := CalendarView{Window: w, Label: w.Label()}
	for _, m := range w.Months() {
		view.Months = append(view.Months, Month{
			Title:   m.Format(monthFormat),
			Start:   m,
			Leading: MondayOffset(m),
			Days:    days(m, lookup, key),
		})
	}
	return view
}

// Column is one day in a timeline strip.
type Column struct {
	DayCell
	WeekdayLabel string
}

// Strip is one month of the timeline.
type Strip struct {
	Title   string
	Start   time.Time
	Columns []Column
	// TodayIndex is the column holding today, or -1.
	TodayIndex int
}

// TimelineView is the horizontal-strip presentation of a window.
type TimelineView struct {
	Window quarter.Window
	Label  string
	Strips []Strip
}

// Timeline builds one strip per month of w.
func Timeline(w quarter.Window, lookup Lookup, today time.Time) TimelineView {
	key := shift.FormatDate(today)
	view := TimelineView{Window: w, Label: w.Label()}
	for _, m := range w.Months() {
		strip := Strip{Title: m.Format("January"), Start: m, TodayIndex: -1}
		for i, d := range days(m, lookup, key) {
			strip.Columns = append(strip.Columns, Column{
				DayCell:      d,
				WeekdayLabel: WeekdayLabels[(int(d.Weekday)+6)%7],
			})
			if d.Today {
				strip.TodayIndex = i
			}
		}
		view.Strips = append(view.Strips, strip)
	}
	return view
}

// TodayStrip returns the index of the strip containing today, or -1.
func (v TimelineView) TodayStrip() int {
	for i, s := range v.Strips {
		if s.TodayIndex >= 0 {
			return i
		}
	}
	return -1
}

// HistoryRow is one rendered audit entry.
type HistoryRow struct {
	ID     int64
	When   string
	Date   string
	Change string
}

// HistoryView is the change log presentation.
type HistoryView struct {
	Rows []HistoryRow
	// Empty is set when there is nothing to show; Placeholder is the text of
	// the single row rendered instead.
	Empty       bool
	Placeholder string
}

// History formats entries in the order given, newest first as the store
// returns them.
func History(entries []shift.HistoryEntry, loc *time.Location) HistoryView {
	if len(entries) == 0 {
		return HistoryView{Empty: true, Placeholder: emptyHistoryRow}
	}
	view := HistoryView{Rows: make([]HistoryRow, 0, len(entries))}
	for _, e := range entries {
		change := strings.TrimSpace(e.Change)
		if change == "" {
			change = emptyChange
		}
		view.Rows = append(view.Rows, HistoryRow{
			ID:     e.ID,
			When:   FormatTimestamp(e.Timestamp, loc),
			Date:   e.Date,
			Change: change,
		})
	}
	return view
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
}

// FormatTimestamp renders an ISO-8601 timestamp as "DD.MM HH:MM" in loc.
// Timestamps without a zone are taken to be in loc already. Unparseable input
// is returned unchanged; an empty one yields "".
func FormatTimestamp(ts string, loc *time.Location) string {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, ts, loc)
		if err == nil {
			return t.In(loc).Format(historyLayout)
		}
	}
	return ts
}
