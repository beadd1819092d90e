// Package calendar renders Monday-first month grids for the schedule.
package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/rota/pkg/tui/theme"
	"tableflip.dev/rota/pkg/viewmodel"
)

// Width is the rendered width of one month block.
const Width = len("Mo Tu We Th Fr Sa Su")

// Options controls calendar styling.
type Options struct {
	Styles     theme.ScheduleTheme
	ShowHeader bool
	// Cursor is the date key of the selected cell, if any.
	Cursor string
}

// DefaultOptions returns the styling used for calendar rendering.
func DefaultOptions() Options {
	return Options{Styles: theme.Default().Schedule, ShowHeader: true}
}

// Render produces a multi-line block for one month.
func Render(m viewmodel.Month, opts Options) string {
	lines := []string{opts.Styles.Title.Render(center(m.Title, Width))}
	if opts.ShowHeader {
		lines = append(lines, opts.Styles.Header.Render(strings.Join(viewmodel.WeekdayLabels, " ")))
	}
	for _, week := range m.Weeks() {
		cells := make([]string, 0, 7)
		for _, d := range week {
			if d == nil {
				cells = append(cells, "  ")
				continue
			}
			cells = append(cells, renderDay(*d, opts))
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}

// RenderQuarter lays out the months side by side when width allows, stacked
// otherwise.
func RenderQuarter(view viewmodel.CalendarView, width int, opts Options) string {
	blocks := make([]string, 0, len(view.Months))
	for _, m := range view.Months {
		blocks = append(blocks, Render(m, opts))
	}
	gap := "   "
	if width <= 0 || width >= len(blocks)*Width+(len(blocks)-1)*len(gap) {
		parts := make([]string, 0, len(blocks)*2)
		for i, b := range blocks {
			if i > 0 {
				parts = append(parts, gap)
			}
			parts = append(parts, b)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}
	return strings.Join(blocks, "\n\n")
}

func renderDay(d viewmodel.DayCell, opts Options) string {
	text := fmt.Sprintf("%2d", d.Day)

	style := opts.Styles.Empty
	if d.Weekend {
		style = opts.Styles.Weekend
	}
	if d.HasShift {
		style = opts.Styles.ShiftStyle(d.Shift.Type)
	}
	if d.Today {
		style = style.Inherit(opts.Styles.Today)
	}
	if opts.Cursor != "" && d.Date == opts.Cursor {
		style = style.Inherit(opts.Styles.Cursor)
	}
	return style.Render(text)
}

func center(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
