package teaui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/rota/pkg/app"
	"tableflip.dev/rota/pkg/live"
	"tableflip.dev/rota/pkg/paint"
	"tableflip.dev/rota/pkg/shift"
	"tableflip.dev/rota/pkg/tui/components/calendar"
	"tableflip.dev/rota/pkg/tui/components/timeline"
	"tableflip.dev/rota/pkg/viewmodel"
)

// View renders the tabs, toolbar, active schedule view and status line.
func (m *Model) View() string {
	sections := []string{m.renderTabs(), m.renderToolbar(), ""}

	body := m.renderBody()
	if m.showHelp {
		body = m.overlay(m.help.View())
	} else if m.state.Editor.Active() {
		body = m.overlay(m.renderEditor())
	} else if m.confirmUndo {
		body = m.overlay(m.renderUndoConfirm())
	}
	sections = append(sections, body, m.renderDetail(), m.renderStatus())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderTabs() string {
	t := m.theme.Tabs
	parts := make([]string, 0, len(app.Views())+1)
	for _, v := range app.Views() {
		name := strings.ToUpper(v.String()[:1]) + v.String()[1:]
		if v == m.state.View {
			parts = append(parts, t.Active.Render(name))
		} else {
			parts = append(parts, t.Inactive.Render(name))
		}
	}
	label := "Change log"
	if m.state.View.Windowed() {
		label = m.state.Window(m.state.View).Label()
	}
	if m.pending > 0 {
		label += " · loading…"
	}
	return strings.Join(parts, "  ") + "   " + t.Label.Render(label)
}

func (m *Model) renderToolbar() string {
	t := m.theme.Toolbar
	active := m.state.Paint.Active()
	parts := make([]string, 0, len(paint.Tools())+1)
	for _, tool := range paint.Tools() {
		text := fmt.Sprintf("%s %s", tool.Key(), tool)
		if tool == active {
			parts = append(parts, t.Active.Render(text))
		} else {
			parts = append(parts, t.Tool.Render(text))
		}
	}
	hint := "enter edit"
	if active != paint.None {
		hint = "enter paint · esc off"
	}
	return strings.Join(parts, "  ") + "   " + t.Hint.Render(hint)
}

func (m *Model) renderBody() string {
	switch m.state.View {
	case app.ViewCalendar:
		opts := calendar.Options{
			Styles:     m.theme.Schedule,
			ShowHeader: true,
			Cursor:     m.cursor[app.ViewCalendar],
		}
		return calendar.RenderQuarter(m.state.CalendarView(), m.width, opts)
	case app.ViewTimeline:
		opts := timeline.Options{
			Styles: m.theme.Schedule,
			Width:  m.width,
			Cursor: m.cursor[app.ViewTimeline],
		}
		return timeline.Render(m.state.TimelineView(), m.scroll, opts)
	default:
		return m.history.View()
	}
}

func (m *Model) overlay(content string) string {
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderEditor() string {
	ed := &m.state.Editor
	t := m.theme.Modal
	lines := []string{t.Title.Render("Edit " + ed.Date())}
	if existing, ok := ed.Existing(); ok {
		lines = append(lines, t.Body.Render(fmt.Sprintf("current: %s %s", m.typeLabel(existing.Type), existing.Hours())))
	} else {
		lines = append(lines, t.Body.Render("current: none"))
	}
	lines = append(lines, "")
	for i, d := range m.catalog.Definitions() {
		row := fmt.Sprintf("%d %-10s %s–%s", i+1, m.typeLabel(d.Type), d.Start, d.End)
		if d.Type == ed.Selected() {
			lines = append(lines, t.Selected.Render(row))
		} else {
			lines = append(lines, t.Body.Render(row))
		}
	}
	lines = append(lines, "")
	switch {
	case ed.Confirming():
		lines = append(lines, t.Warn.Render("Delete this shift? y/n"))
	case ed.Err() != nil:
		lines = append(lines, t.Warn.Render(ed.Err().Error()))
	default:
		help := "enter save · esc cancel"
		if _, ok := ed.Existing(); ok {
			help += " · d delete"
		}
		lines = append(lines, m.theme.Footer.Help.Render(help))
	}
	return t.Frame.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderUndoConfirm() string {
	t := m.theme.Modal
	return t.Frame.Render(strings.Join([]string{
		t.Title.Render("Undo"),
		t.Body.Render("Revert the most recent change?"),
		"",
		t.Warn.Render("y/n"),
	}, "\n"))
}

// renderDetail shows the cell under the cursor.
func (m *Model) renderDetail() string {
	v := m.state.View
	if !v.Windowed() {
		return m.theme.Footer.Help.Render("u undo · ↑/↓ scroll")
	}
	cell, ok := m.cursorCell(v)
	if !ok {
		return ""
	}
	return m.theme.Footer.Detail.Render(cell.Detail())
}

func (m *Model) cursorCell(v app.View) (viewmodel.DayCell, bool) {
	date := m.cursor[v]
	if date == "" {
		return viewmodel.DayCell{}, false
	}
	if v == app.ViewTimeline {
		for _, strip := range m.state.TimelineView().Strips {
			for _, col := range strip.Columns {
				if col.Date == date {
					return col.DayCell, true
				}
			}
		}
		return viewmodel.DayCell{}, false
	}
	for _, mo := range m.state.CalendarView().Months {
		for _, d := range mo.Days {
			if d.Date == date {
				return d, true
			}
		}
	}
	return viewmodel.DayCell{}, false
}

func (m *Model) renderStatus() string {
	f := m.theme.Footer
	var conn string
	switch {
	case m.liveState == live.StateConnected:
		conn = f.Live.Render("● " + m.liveState.String())
	case m.svc != nil && m.svc.Live != nil:
		conn = f.Down.Render("○ " + m.liveState.String())
	}
	status := m.status
	width := m.width - lipgloss.Width(conn) - 2
	if m.width > 0 && width > 0 {
		status = truncate.StringWithTail(status, uint(width), "…")
	}
	style := f.Status
	if m.statusErr {
		style = f.Error
	}
	if conn == "" {
		return style.Render(status)
	}
	return style.Render(status) + "  " + conn
}

// typeLabel is the catalogue label for t, or t itself.
func (m *Model) typeLabel(t shift.Type) string {
	if d, ok := m.catalog.Lookup(t); ok && d.Label != "" {
		return d.Label
	}
	return string(t)
}
