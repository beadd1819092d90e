package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/rota/pkg/shift"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer   FooterTheme
	Tabs     TabTheme
	Toolbar  ToolbarTheme
	Schedule ScheduleTheme
	Modal    ModalTheme
	History  HistoryTheme
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Live   lipgloss.Style
	Down   lipgloss.Style
	Detail lipgloss.Style
}

// TabTheme styles the view switcher.
type TabTheme struct {
	Active   lipgloss.Style
	Inactive lipgloss.Style
	Label    lipgloss.Style
}

// ToolbarTheme styles the paint tool strip.
type ToolbarTheme struct {
	Tool   lipgloss.Style
	Active lipgloss.Style
	Hint   lipgloss.Style
}

// ScheduleTheme styles day cells in the calendar and timeline.
type ScheduleTheme struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Empty   lipgloss.Style
	Weekend lipgloss.Style
	Today   lipgloss.Style
	Cursor  lipgloss.Style
	// Shift styles are keyed by type; Other covers types not listed.
	Shift map[shift.Type]lipgloss.Style
	Other lipgloss.Style
}

// ModalTheme styles centered modal overlays.
type ModalTheme struct {
	Frame    lipgloss.Style
	Title    lipgloss.Style
	Body     lipgloss.Style
	Selected lipgloss.Style
	Warn     lipgloss.Style
}

// HistoryTheme styles the change log.
type HistoryTheme struct {
	Frame  lipgloss.Style
	Header lipgloss.Style
	When   lipgloss.Style
	Date   lipgloss.Style
	Change lipgloss.Style
	Empty  lipgloss.Style
}

// ShiftStyle returns the cell style for t.
func (s ScheduleTheme) ShiftStyle(t shift.Type) lipgloss.Style {
	if st, ok := s.Shift[t]; ok {
		return st
	}
	return s.Other
}

var (
	background = "#1c1c1c"
	day8       = "#e5c07b"
	day12      = "#98c379"
	night12    = "#61afef"
	other      = "#c678dd"
)

// shade blends hex toward the background by amount.
func shade(hex string, amount float64) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return lipgloss.Color(hex)
	}
	bg, _ := colorful.Hex(background)
	return lipgloss.Color(c.BlendLab(bg, amount).Clamped().Hex())
}

func cell(hex string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color("#000000"))
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
			Live:   lipgloss.NewStyle().Foreground(lipgloss.Color("#98c379")),
			Down:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB347")),
			Detail: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Italic(true),
		},
		Tabs: TabTheme{
			Active:   lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("212")),
			Inactive: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Label:    lipgloss.NewStyle().Bold(true),
		},
		Toolbar: ToolbarTheme{
			Tool:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			Active: lipgloss.NewStyle().Reverse(true).Bold(true),
			Hint:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		},
		Schedule: ScheduleTheme{
			Title:   lipgloss.NewStyle().Bold(true),
			Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
			Empty:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Weekend: lipgloss.NewStyle().Foreground(shade("#bbbbbb", 0.45)),
			Today:   lipgloss.NewStyle().Underline(true).Bold(true),
			Cursor:  lipgloss.NewStyle().Reverse(true),
			Shift: map[shift.Type]lipgloss.Style{
				shift.Day8:    cell(day8),
				shift.Day12:   cell(day12),
				shift.Night12: cell(night12),
			},
			Other: cell(other),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title:    lipgloss.NewStyle().Bold(true),
			Body:     lipgloss.NewStyle(),
			Selected: lipgloss.NewStyle().Reverse(true),
			Warn:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB347")),
		},
		History: HistoryTheme{
			Frame:  lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")),
			Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("248")),
			When:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Date:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Change: lipgloss.NewStyle(),
			Empty:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		},
	}
}

// WeekendShift dims a shift style for weekend columns.
func (s ScheduleTheme) WeekendShift(t shift.Type) lipgloss.Style {
	hex := other
	switch t {
	case shift.Day8:
		hex = day8
	case shift.Day12:
		hex = day12
	case shift.Night12:
		hex = night12
	}
	return lipgloss.NewStyle().
		Background(shade(hex, 0.3)).
		Foreground(lipgloss.Color("#000000"))
}
