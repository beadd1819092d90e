package teaui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/rota/pkg/app"
	"tableflip.dev/rota/pkg/logx"
	"tableflip.dev/rota/pkg/paint"
	"tableflip.dev/rota/pkg/shift"
	"tableflip.dev/rota/pkg/tui/components/help"
	"tableflip.dev/rota/pkg/tui/components/timeline"
)

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		m.stopWatch()
		return tea.Quit
	}
	if m.showHelp {
		return m.handleHelpKey(msg)
	}
	if m.state.Editor.Active() {
		return m.handleEditorKey(key)
	}
	if m.confirmUndo {
		return m.handleUndoConfirmKey(key)
	}

	switch key {
	case "q":
		m.stopWatch()
		return tea.Quit
	case "tab":
		return m.switchView(m.state.View.Next())
	case "c":
		return m.switchView(app.ViewCalendar)
	case "t":
		return m.switchView(app.ViewTimeline)
	case "h":
		return m.switchView(app.ViewHistory)
	case "[":
		return m.navigate(-1)
	case "]":
		return m.navigate(1)
	case ".":
		m.state.ResetOffset()
		return m.afterWindowChange()
	case "r":
		return m.refresh()
	case "?":
		if m.help == nil {
			m.help = help.New(m.helpSize())
		}
		m.showHelp = true
		return nil
	case "ctrl+z":
		return m.undo(false)
	case "esc":
		if m.state.Paint.Painting() {
			m.selectTool(m.state.Paint.Active())
		}
		return nil
	}

	if tool, ok := paint.ForKey(key); ok {
		m.selectTool(tool)
		return nil
	}

	switch m.state.View {
	case app.ViewHistory:
		if key == "u" {
			m.confirmUndo = true
			return nil
		}
		_, cmd := m.history.Update(msg)
		return cmd
	case app.ViewCalendar:
		switch key {
		case "left":
			return m.moveCursor(0, -1)
		case "right":
			return m.moveCursor(0, 1)
		case "up":
			return m.moveCursor(0, -7)
		case "down":
			return m.moveCursor(0, 7)
		}
	case app.ViewTimeline:
		switch key {
		case "left":
			return m.moveCursor(0, -1)
		case "right":
			return m.moveCursor(0, 1)
		case "up":
			return m.moveCursor(-1, 0)
		case "down":
			return m.moveCursor(1, 0)
		}
	}
	if key == "enter" || key == "space" || key == " " {
		return m.activate()
	}
	return nil
}

func (m *Model) handleHelpKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "?", "esc", "q":
		m.showHelp = false
		return nil
	}
	_, cmd := m.help.Update(msg)
	return cmd
}

func (m *Model) selectTool(t paint.Tool) {
	active := m.state.SelectTool(t)
	m.log.Debug("paint tool", logx.String("tool", active.String()))
}

func (m *Model) switchView(v app.View) tea.Cmd {
	if v == m.state.View {
		return nil
	}
	m.confirmUndo = false
	req := m.state.SwitchView(v)
	if v.Windowed() {
		m.ensureCursor(v)
	}
	if v == app.ViewTimeline {
		m.scrollWindow = m.state.Window(v)
		return tea.Batch(m.load(req), m.centerTimeline(false))
	}
	return m.load(req)
}

func (m *Model) navigate(delta int) tea.Cmd {
	m.state.Navigate(delta)
	return m.afterWindowChange()
}

func (m *Model) afterWindowChange() tea.Cmd {
	if v := m.state.View; v.Windowed() {
		m.ensureCursor(v)
	}
	return m.refresh()
}

// ensureCursor keeps v's cursor inside its window, preferring today.
func (m *Model) ensureCursor(v app.View) {
	w := m.state.Window(v)
	if c := m.cursor[v]; c != "" && w.Contains(c) {
		return
	}
	today := shift.FormatDate(m.state.Today())
	if w.Contains(today) {
		m.cursor[v] = today
		return
	}
	m.cursor[v] = w.From()
}

// moveCursor moves the active view's cursor by months and days, staying
// inside the window.
func (m *Model) moveCursor(months, days int) tea.Cmd {
	v := m.state.View
	m.ensureCursor(v)
	loc := m.state.Now().Location()
	cur, err := shift.ParseDate(m.cursor[v], loc)
	if err != nil {
		return nil
	}
	var next time.Time
	if months != 0 {
		first := time.Date(cur.Year(), cur.Month()+time.Month(months), 1, 0, 0, 0, 0, loc)
		day := min(cur.Day(), daysIn(first))
		next = time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, loc)
	} else {
		next = cur.AddDate(0, 0, days)
	}
	key := shift.FormatDate(next)
	if !m.state.Window(v).Contains(key) {
		return nil
	}
	m.cursor[v] = key
	if v == app.ViewTimeline {
		return m.followCursor()
	}
	return nil
}

func daysIn(month time.Time) int {
	return time.Date(month.Year(), month.Month()+1, 0, 0, 0, 0, 0, month.Location()).Day()
}

func (m *Model) activate() tea.Cmd {
	v := m.state.View
	if !v.Windowed() {
		return nil
	}
	m.ensureCursor(v)
	// Shifts of another window must never be read through the cursor.
	if w, ok := m.state.Cache.Window(); !ok || !w.Equal(m.state.Window(v)) {
		m.setStatus("still loading " + m.state.Window(v).Label())
		return nil
	}
	mu, ok := m.state.Activate(m.cursor[v])
	if !ok {
		return nil
	}
	return m.mutate(mu)
}

func (m *Model) handleEditorKey(key string) tea.Cmd {
	ed := &m.state.Editor
	if ed.Confirming() {
		switch key {
		case "y", "enter":
			mu, ok := ed.ConfirmDelete()
			if !ok {
				return nil
			}
			return m.mutate(mu)
		case "n", "esc":
			ed.AbortDelete()
		}
		return nil
	}

	defs := m.catalog.Definitions()
	switch key {
	case "esc":
		ed.Cancel()
	case "up", "k":
		m.cycleSelection(defs, -1)
	case "down", "j":
		m.cycleSelection(defs, 1)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		i := int(key[0] - '1')
		if i < len(defs) {
			ed.Select(defs[i].Type)
		}
	case "enter", "s":
		mu, err := ed.Save()
		if err != nil {
			if !errors.Is(err, app.ErrTypeRequired) {
				m.setError("save", err)
			}
			return nil
		}
		return m.mutate(mu)
	case "d", "delete":
		if _, ok := ed.Existing(); ok {
			ed.RequestDelete()
		}
	}
	return nil
}

func (m *Model) cycleSelection(defs []shift.Definition, delta int) {
	if len(defs) == 0 {
		return
	}
	idx := -1
	for i, d := range defs {
		if d.Type == m.state.Editor.Selected() {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = len(defs) - 1
	default:
		idx = (idx + delta + len(defs)) % len(defs)
	}
	m.state.Editor.Select(defs[idx].Type)
}

func (m *Model) handleUndoConfirmKey(key string) tea.Cmd {
	m.confirmUndo = false
	switch key {
	case "y", "enter":
		return m.undo(true)
	}
	return nil
}

// centerTimeline aims every strip at today, or at its start when today is
// elsewhere. Without jump the strips glide there.
func (m *Model) centerTimeline(jump bool) tea.Cmd {
	view := m.state.TimelineView()
	visible := timeline.Visible(m.width)
	for i, strip := range view.Strips {
		start := timeline.Target(len(strip.Columns), visible, strip.TodayIndex)
		if jump {
			m.scroll.Jump(i, start)
		} else {
			m.scroll.SetTarget(i, start)
		}
	}
	if jump {
		return nil
	}
	return m.animate()
}

// followCursor scrolls the cursor's strip only when the cursor left the
// visible columns.
func (m *Model) followCursor() tea.Cmd {
	view := m.state.TimelineView()
	visible := timeline.Visible(m.width)
	for i, strip := range view.Strips {
		for idx, col := range strip.Columns {
			if col.Date != m.cursor[app.ViewTimeline] {
				continue
			}
			first := m.scroll.TargetOf(i)
			if idx >= first && idx < first+visible {
				return nil
			}
			m.scroll.SetTarget(i, timeline.Target(len(strip.Columns), visible, idx))
			return m.animate()
		}
	}
	return nil
}

func (m *Model) animate() tea.Cmd {
	if m.animating {
		return nil
	}
	m.animating = true
	return scrollTick()
}
