// Package history renders the change log in a scrollable, bordered viewport.
package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/rota/pkg/tui/theme"
	"tableflip.dev/rota/pkg/viewmodel"
)

const (
	whenWidth = len("02.01 15:04")
	dateWidth = len("2006-01-02")
)

// Model renders the most recent changes, newest first.
type Model struct {
	viewport viewport.Model
	view     viewmodel.HistoryView
	loaded   bool

	width  int
	height int

	styles theme.HistoryTheme
}

// NewModel constructs an empty history pane.
func NewModel(styles theme.HistoryTheme) *Model {
	vp := viewport.New(
		viewport.WithWidth(1),
		viewport.WithHeight(1),
	)
	return &Model{viewport: vp, styles: styles}
}

// Update forwards scrolling keys to the viewport.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return m, cmd
}

// SetSize resizes the viewport while keeping the header and border intact.
func (m *Model) SetSize(width, height int) {
	if width < 4 {
		width = 4
	}
	if height < 4 {
		height = 4
	}
	if m.width == width && m.height == height {
		return
	}
	m.width = width
	m.height = height

	innerWidth := max(1, width-2)
	innerHeight := max(1, height-2)
	headerRows := 1
	m.viewport.SetWidth(innerWidth)
	m.viewport.SetHeight(max(1, innerHeight-headerRows))
	m.refreshContent()
}

// SetHistory replaces the rows and scrolls back to the newest entry.
func (m *Model) SetHistory(view viewmodel.HistoryView) {
	m.view = view
	m.loaded = true
	m.refreshContent()
	m.viewport.SetYOffset(0)
}

// View renders the bordered viewport.
func (m *Model) View() string {
	header := m.styles.Header.Render(m.row("When", "Date", "Change"))
	body := lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View())
	if m.width == 0 || m.height == 0 {
		return m.styles.Frame.Render(body)
	}
	return m.styles.Frame.Width(m.width).Height(m.height).Render(body)
}

func (m *Model) changeWidth() int {
	w := m.viewport.Width() - whenWidth - dateWidth - 4
	if w < 8 {
		w = 8
	}
	return w
}

func (m *Model) row(when, date, change string) string {
	change = truncate.StringWithTail(change, uint(m.changeWidth()), "…")
	return fmt.Sprintf("%-*s  %-*s  %s", whenWidth, when, dateWidth, date, change)
}

func (m *Model) refreshContent() {
	if !m.loaded {
		m.viewport.SetContent(m.styles.Empty.Render("loading…"))
		return
	}
	if m.view.Empty {
		m.viewport.SetContent(m.styles.Empty.Render(m.view.Placeholder))
		return
	}
	lines := make([]string, 0, len(m.view.Rows))
	for _, r := range m.view.Rows {
		change := truncate.StringWithTail(r.Change, uint(m.changeWidth()), "…")
		lines = append(lines, fmt.Sprintf("%s  %s  %s",
			m.styles.When.Render(fmt.Sprintf("%-*s", whenWidth, r.When)),
			m.styles.Date.Render(fmt.Sprintf("%-*s", dateWidth, r.Date)),
			m.styles.Change.Render(change)))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}
