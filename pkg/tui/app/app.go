// Package teaui hosts the Bubble Tea program for the rota TUI.
package teaui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/rota/pkg/app"
	"tableflip.dev/rota/pkg/live"
	"tableflip.dev/rota/pkg/logx"
	"tableflip.dev/rota/pkg/quarter"
	"tableflip.dev/rota/pkg/remote"
	"tableflip.dev/rota/pkg/shift"
	"tableflip.dev/rota/pkg/tui/components/help"
	"tableflip.dev/rota/pkg/tui/components/history"
	"tableflip.dev/rota/pkg/tui/components/timeline"
	"tableflip.dev/rota/pkg/tui/theme"
)

const watchRetry = 5 * time.Second

// Options configure the UI model.
type Options struct {
	Theme   *theme.Theme
	Log     logx.Logger
	Catalog *shift.Catalog
}

// Model is the root Bubble Tea model. It owns the application state and is
// its only mutator.
type Model struct {
	svc     *app.Service
	ctx     context.Context
	state   *app.State
	theme   theme.Theme
	log     logx.Logger
	catalog *shift.Catalog

	width  int
	height int

	cursor      map[app.View]string
	status      string
	statusErr   bool
	confirmUndo bool
	// pending counts loads in flight; the header shows it.
	pending     int

	liveState   live.State
	watchCh     <-chan live.Event
	watchCancel context.CancelFunc

	history      *history.Model
	help         *help.Model
	showHelp     bool
	scroll       *timeline.Scroller
	animating    bool
	scrollWindow quarter.Window
}

// New constructs a UI model over svc and state. A nil state starts on the
// calendar for the current quarter.
func New(ctx context.Context, svc *app.Service, state *app.State, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if state == nil {
		state = app.NewState(nil)
	}
	th := theme.Default()
	if opts.Theme != nil {
		th = *opts.Theme
	}
	cat := opts.Catalog
	if cat == nil {
		cat = shift.DefaultCatalog()
	}
	return &Model{
		svc:     svc,
		ctx:     ctx,
		state:   state,
		theme:   th,
		log:     opts.Log,
		catalog: cat,
		cursor:  map[app.View]string{},
		history: history.NewModel(th.History),
		scroll:  timeline.NewScroller(3),
	}
}

// Run launches the Bubble Tea program.
func Run(ctx context.Context, svc *app.Service, state *app.State, opts Options) error {
	m := New(ctx, svc, state, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	m.stopWatch()
	return err
}

// messages
type loadedMsg struct{ res app.Result }

type mutatedMsg struct {
	mutation app.Mutation
	err      error
}

type undoneMsg struct {
	res         *shift.UndoResult
	err         error
	fromHistory bool
}

type catalogMsg struct {
	catalog *shift.Catalog
	err     error
}

type scrollTickMsg struct{}

type watchStartedMsg struct {
	ch     <-chan live.Event
	cancel context.CancelFunc
	err    error
}

// Watch messages carry their channel so a replaced subscription's tail is
// ignored.
type watchEventMsg struct {
	ch    <-chan live.Event
	event live.Event
}

type watchStoppedMsg struct {
	ch <-chan live.Event
}

type watchRetryMsg struct{}

// Init loads the active view, the type catalogue and starts live updates.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.loadCatalog(), startWatchCmd(m.ctx, m.svc))
}

func (m *Model) load(req app.Request) tea.Cmd {
	if m.svc == nil {
		return nil
	}
	svc, ctx := m.svc, m.ctx
	m.pending++
	return func() tea.Msg {
		return loadedMsg{res: svc.Load(ctx, req)}
	}
}

// refresh reloads the active view.
func (m *Model) refresh() tea.Cmd {
	return m.load(m.state.Request())
}

func (m *Model) mutate(mu app.Mutation) tea.Cmd {
	if m.svc == nil {
		return nil
	}
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		return mutatedMsg{mutation: mu, err: svc.Apply(ctx, mu)}
	}
}

func (m *Model) undo(fromHistory bool) tea.Cmd {
	if m.svc == nil {
		return nil
	}
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		res, err := svc.Undo(ctx)
		return undoneMsg{res: res, err: err, fromHistory: fromHistory}
	}
}

type typeSource interface {
	ShiftTypes(ctx context.Context) (*shift.Catalog, error)
}

func (m *Model) loadCatalog() tea.Cmd {
	if m.svc == nil {
		return nil
	}
	src, ok := m.svc.Remote.(typeSource)
	if !ok {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		cat, err := src.ShiftTypes(ctx)
		return catalogMsg{catalog: cat, err: err}
	}
}

func scrollTick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(timeline.FrameRate()), func(time.Time) tea.Msg {
		return scrollTickMsg{}
	})
}

// Update handles messages and keybindings.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		if m.state.View == app.ViewTimeline {
			m.centerTimeline(true)
		}
	case loadedMsg:
		cmds = append(cmds, m.applyLoaded(msg.res))
	case mutatedMsg:
		if msg.err != nil {
			m.setError(msg.mutation.String(), msg.err)
		} else {
			m.setStatus(msg.mutation.String())
		}
		// The cache is never patched locally; every write is followed by a
		// full reload of whatever is on screen.
		cmds = append(cmds, m.refresh())
	case undoneMsg:
		cmds = append(cmds, m.applyUndo(msg))
	case catalogMsg:
		if msg.err != nil {
			m.log.Warn("loading shift types failed", logx.Err(msg.err))
		} else if msg.catalog != nil && len(msg.catalog.Definitions()) > 0 {
			m.catalog = msg.catalog
		}
	case scrollTickMsg:
		if m.scroll.Step() {
			cmds = append(cmds, scrollTick())
		} else {
			m.animating = false
		}
	case watchStartedMsg:
		if msg.err != nil {
			m.log.Warn("live updates unavailable", logx.Err(msg.err))
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		cmds = append(cmds, m.waitForWatch())
	case watchEventMsg:
		if msg.ch != m.watchCh {
			break
		}
		cmds = append(cmds, m.handleLiveEvent(msg.event), m.waitForWatch())
	case watchStoppedMsg:
		if msg.ch != m.watchCh {
			break
		}
		m.stopWatch()
		m.liveState = live.StateClosed
		if m.ctx.Err() == nil {
			cmds = append(cmds, tea.Tick(watchRetry, func(time.Time) tea.Msg { return watchRetryMsg{} }))
		}
	case watchRetryMsg:
		cmds = append(cmds, startWatchCmd(m.ctx, m.svc))
	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKey(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) applyLoaded(res app.Result) tea.Cmd {
	if m.pending > 0 {
		m.pending--
	}
	if res.Err != nil {
		m.setError("loading "+res.Request.String(), res.Err)
	}
	if !m.state.Apply(res) {
		m.log.Debug("dropping result for a window no longer shown", logx.String("request", res.Request.String()))
		return nil
	}
	switch res.Request.View {
	case app.ViewHistory:
		m.history.SetHistory(m.state.HistoryView())
	case app.ViewCalendar:
		m.ensureCursor(app.ViewCalendar)
	case app.ViewTimeline:
		m.ensureCursor(app.ViewTimeline)
		if !res.Request.Window.Equal(m.scrollWindow) {
			m.scrollWindow = res.Request.Window
			return m.centerTimeline(false)
		}
	}
	return nil
}

func (m *Model) applyUndo(msg undoneMsg) tea.Cmd {
	if msg.err != nil {
		var apiErr *remote.APIError
		if errors.As(msg.err, &apiErr) && apiErr.Detail != "" {
			m.setError("undo", errors.New(apiErr.Detail))
		} else {
			m.setError("undo", msg.err)
		}
		return nil
	}
	if msg.fromHistory {
		m.setStatus(undoStatus(msg.res))
		return m.refresh()
	}
	if !app.UndoRefreshes(msg.res) {
		return nil
	}
	m.setStatus(undoStatus(msg.res))
	return m.refresh()
}

func undoStatus(res *shift.UndoResult) string {
	if res == nil || res.Message == "" {
		return "Undone"
	}
	if res.RestoredDate != "" {
		return fmt.Sprintf("%s (%s)", res.Message, res.RestoredDate)
	}
	return res.Message
}

func (m *Model) handleLiveEvent(ev live.Event) tea.Cmd {
	switch ev.Type {
	case live.EventState:
		m.liveState = ev.State
	case live.EventRefresh:
		return m.refresh()
	}
	return nil
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(what string, err error) {
	m.status = fmt.Sprintf("%s: %v", what, err)
	m.statusErr = true
}

// layout sizes the components to the terminal.
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.history.SetSize(m.width, m.bodyHeight())
	if m.help != nil {
		m.help.SetSize(m.helpSize())
	}
}

func (m *Model) helpSize() (int, int) {
	w := m.width - 8
	if w > 72 {
		w = 72
	}
	return w, m.bodyHeight()
}

// header, toolbar and a blank line above; detail and status below.
const chromeRows = 5

func (m *Model) bodyHeight() int {
	h := m.height - chromeRows
	if h < 4 {
		h = 4
	}
	return h
}
