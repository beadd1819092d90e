package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/rota/pkg/shift"
	"tableflip.dev/rota/pkg/viewmodel"
)

// PrettyPrint writes schedule data for humans.
type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintf(pp.out(), " %s\n", noun)
	default:
		_, _ = c.Fprintf(pp.out(), " %ss\n", noun)
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// TypeColor is the terminal color for a shift type.
func TypeColor(t shift.Type) *color.Color {
	switch t {
	case shift.Day8:
		return color.New(color.FgHiYellow)
	case shift.Day12:
		return color.New(color.FgHiGreen)
	case shift.Night12:
		return color.New(color.FgHiBlue)
	default:
		return color.New(color.FgHiMagenta)
	}
}

// Shifts prints one row per shift.
func (pp *PrettyPrint) Shifts(shifts []shift.Shift) {
	if len(shifts) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Date"), bold.Sprint("Type"), bold.Sprint("Hours"))
	for _, s := range shifts {
		tbl.AddRow(s.Date, TypeColor(s.Type).Sprint(string(s.Type)), s.Hours())
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Quarter prints the calendar grid of each month in the view, coloring the
// days that have a shift.
func (pp *PrettyPrint) Quarter(view viewmodel.CalendarView) {
	pp.Title(view.Label)
	pp.NewLine()
	for _, m := range view.Months {
		pp.Month(m)
	}
}

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints a Monday-first month grid.
func (pp *PrettyPrint) Month(m viewmodel.Month) {
	tf := color.New(color.FgWhite, color.Italic)
	mid := (width - len(m.Title)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), m.Title)

	h := color.New(color.Faint)
	_, _ = h.Fprintln(pp.out(), strings.Join(viewmodel.WeekdayLabels, " "))

	for _, week := range m.Weeks() {
		cells := make([]string, 0, 7)
		for _, d := range week {
			if d == nil {
				cells = append(cells, "  ")
				continue
			}
			c := color.New(color.Faint, color.FgWhite)
			if d.HasShift {
				c = TypeColor(d.Shift.Type)
			}
			if d.Today {
				c = c.Add(color.Underline, color.Bold)
			}
			cells = append(cells, c.Sprintf("%2d", d.Day))
		}
		_, _ = fmt.Fprintln(pp.out(), strings.TrimRight(strings.Join(cells, " "), " "))
	}
	pp.NewLine()
}

// History prints the change log.
func (pp *PrettyPrint) History(view viewmodel.HistoryView) {
	if view.Empty {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintf(pp.out(), " %s\n\n", view.Placeholder)
		return
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("When"), bold.Sprint("Date"), bold.Sprint("Change"))
	for _, r := range view.Rows {
		tbl.AddRow(faint.Sprint(r.When), r.Date, r.Change)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Types prints the shift type catalogue.
func (pp *PrettyPrint) Types(defs []shift.Definition) {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Type"), bold.Sprint("Label"), bold.Sprint("Start"), bold.Sprint("End"))
	for _, d := range defs {
		tbl.AddRow(TypeColor(d.Type).Sprint(string(d.Type)), d.Label, d.Start, d.End)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Next prints the next upcoming shift.
func (pp *PrettyPrint) Next(n *shift.NextShift) {
	if n == nil || n.Date == "" {
		pp.none()
		return
	}
	c := TypeColor(n.Type)
	_, _ = fmt.Fprintf(pp.out(), "%s %s %s–%s\n", n.Date, c.Sprint(string(n.Type)), n.Start, n.End)
}

// Message prints a one-line confirmation.
func (pp *PrettyPrint) Message(msg string) {
	g := color.New(color.FgGreen)
	_, _ = g.Fprintln(pp.out(), msg)
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	if w == nil {
		w = color.Output
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
