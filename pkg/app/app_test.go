package app

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/rota/pkg/logx"
	"tableflip.dev/rota/pkg/paint"
	"tableflip.dev/rota/pkg/remote"
	"tableflip.dev/rota/pkg/shift"
)

type memoryRemote struct {
	mu      sync.Mutex
	shifts  map[string]shift.Shift
	history []shift.HistoryEntry
	calls   []string
}

func newMemoryRemote(shifts ...shift.Shift) *memoryRemote {
	m := &memoryRemote{shifts: make(map[string]shift.Shift)}
	for _, s := range shifts {
		m.shifts[s.Date] = s
	}
	return m
}

func (m *memoryRemote) record(call string) {
	m.calls = append(m.calls, call)
}

func (m *memoryRemote) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *memoryRemote) Shifts(_ context.Context, from, to string) ([]shift.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("shifts " + from + " " + to)
	var out []shift.Shift
	for _, s := range m.shifts {
		if s.Date >= from && s.Date <= to {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (m *memoryRemote) SetShift(_ context.Context, date string, typ shift.Type) (*shift.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("set " + date + " " + string(typ))
	s := shift.Shift{Date: date, Type: typ}
	m.shifts[date] = s
	m.history = append([]shift.HistoryEntry{{ID: int64(len(m.history) + 1), Date: date, Change: "set " + string(typ)}}, m.history...)
	return &s, nil
}

func (m *memoryRemote) DeleteShift(_ context.Context, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("delete " + date)
	if _, ok := m.shifts[date]; !ok {
		return &remote.APIError{Status: http.StatusNotFound, Detail: "No shift on " + date}
	}
	delete(m.shifts, date)
	return nil
}

func (m *memoryRemote) History(_ context.Context, limit int) ([]shift.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("history")
	if limit < len(m.history) {
		return append([]shift.HistoryEntry(nil), m.history[:limit]...), nil
	}
	return append([]shift.HistoryEntry(nil), m.history...), nil
}

func (m *memoryRemote) Undo(_ context.Context) (*shift.UndoResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("undo")
	if len(m.history) == 0 {
		return &shift.UndoResult{}, &remote.APIError{Status: http.StatusNotFound, Detail: "Nothing to undo"}
	}
	last := m.history[0]
	m.history = m.history[1:]
	delete(m.shifts, last.Date)
	return &shift.UndoResult{Message: "Undone", RestoredDate: last.Date}, nil
}

func fixedNow() time.Time {
	return time.Date(2024, time.February, 10, 9, 30, 0, 0, time.UTC)
}

func newHarness(shifts ...shift.Shift) (*State, *Service, *memoryRemote) {
	r := newMemoryRemote(shifts...)
	svc := &Service{Remote: r, Log: logx.Nop()}
	return NewState(fixedNow), svc, r
}

// refresh runs the load for the active view and applies it, the way the UI
// loop does with a command and its result message.
func refresh(t *testing.T, st *State, svc *Service) {
	t.Helper()
	res := svc.Load(context.Background(), st.Request())
	require.NoError(t, res.Err)
	st.Apply(res)
}

func TestEraserOnEmptyCellIssuesNothing(t *testing.T) {
	st, svc, r := newHarness()
	refresh(t, st, svc)
	st.SelectTool(paint.Eraser)

	_, ok := st.Activate("2024-02-12")
	assert.False(t, ok, "eraser on an empty day must not produce a write")
	assert.False(t, st.Editor.Active(), "eraser must not open the editor")
	assert.Equal(t, []string{"shifts 2024-01-01 2024-03-31"}, r.Calls())
}

func TestEraserRemovesExistingShift(t *testing.T) {
	st, svc, r := newHarness(shift.Shift{Date: "2024-02-12", Type: shift.Day8})
	refresh(t, st, svc)
	st.SelectTool(paint.Eraser)

	m, ok := st.Activate("2024-02-12")
	require.True(t, ok)
	assert.Equal(t, Mutation{Date: "2024-02-12", Delete: true}, m)
	require.NoError(t, svc.Apply(context.Background(), m))
	refresh(t, st, svc)

	_, has := st.Cache.Get("2024-02-12")
	assert.False(t, has)
	assert.Contains(t, r.Calls(), "delete 2024-02-12")
}

func TestPaintOverwritesWithoutConfirmation(t *testing.T) {
	st, svc, _ := newHarness(shift.Shift{Date: "2024-02-12", Type: shift.Day8})
	refresh(t, st, svc)
	st.SelectTool(paint.Day12)

	m, ok := st.Activate("2024-02-12")
	require.True(t, ok)
	assert.Equal(t, shift.Day12, m.Type)
	assert.False(t, st.Editor.Active())

	require.NoError(t, svc.Apply(context.Background(), m))
	// The cache is only updated by the refetch.
	got, _ := st.Cache.Get("2024-02-12")
	assert.Equal(t, shift.Day8, got.Type)

	refresh(t, st, svc)
	got, _ = st.Cache.Get("2024-02-12")
	assert.Equal(t, shift.Day12, got.Type)
}

func TestNoToolOpensEditorPreloaded(t *testing.T) {
	st, svc, r := newHarness(shift.Shift{Date: "2024-02-12", Type: shift.Night12})
	refresh(t, st, svc)

	_, ok := st.Activate("2024-02-12")
	require.False(t, ok)
	require.True(t, st.Editor.Active())
	assert.Equal(t, "2024-02-12", st.Editor.Date())
	assert.Equal(t, shift.Night12, st.Editor.Selected())
	assert.Len(t, r.Calls(), 1, "opening the editor must not touch the store")
}

func TestUndoOnEmptyHistoryDoesNotFail(t *testing.T) {
	st, svc, r := newHarness()
	res, err := svc.Undo(context.Background())
	require.NotNil(t, res)
	require.Error(t, err)
	assert.True(t, remote.IsNotFound(err))
	assert.False(t, UndoRefreshes(res))
	assert.Equal(t, []string{"undo"}, r.Calls())

	// The application keeps working afterwards.
	refresh(t, st, svc)
	assert.Equal(t, 0, st.Cache.Len())
}

func TestUndoRefreshesOnMessage(t *testing.T) {
	st, svc, _ := newHarness()
	require.NoError(t, svc.Apply(context.Background(), Mutation{Date: "2024-03-01", Type: shift.Day8}))

	res, err := svc.Undo(context.Background())
	require.NoError(t, err)
	require.True(t, UndoRefreshes(res))
	assert.Equal(t, "2024-03-01", res.RestoredDate)

	refresh(t, st, svc)
	_, has := st.Cache.Get("2024-03-01")
	assert.False(t, has)
}

func TestIndependentOffsets(t *testing.T) {
	st, _, _ := newHarness()
	req := st.Navigate(-1)
	assert.Equal(t, "Q4 2023", req.Window.Label())

	req = st.SwitchView(ViewTimeline)
	assert.Equal(t, ViewTimeline, req.View)
	assert.Equal(t, "Q1 2024", req.Window.Label(), "timeline keeps its own offset")

	st.Navigate(2)
	assert.Equal(t, 2, st.Offset(ViewTimeline))
	assert.Equal(t, -1, st.Offset(ViewCalendar))

	req = st.SwitchView(ViewHistory)
	assert.Equal(t, ViewHistory, req.View)
	st.Navigate(1)
	assert.Equal(t, 2, st.Offset(ViewTimeline))

	st.SwitchView(ViewCalendar)
	assert.Equal(t, "Q1 2024", st.ResetOffset().Window.Label())
}

func TestStaleWindowResultIsDropped(t *testing.T) {
	st, svc, _ := newHarness(shift.Shift{Date: "2024-02-12", Type: shift.Day8})
	stale := svc.Load(context.Background(), st.Request())
	st.Navigate(1)

	assert.False(t, st.Apply(stale), "a result for a window no longer shown is discarded")
	_, loaded := st.Cache.Window()
	assert.False(t, loaded)

	refresh(t, st, svc)
	w, _ := st.Cache.Window()
	assert.Equal(t, "Q2 2024", w.Label())
}

func TestLastResultWins(t *testing.T) {
	st, svc, r := newHarness(shift.Shift{Date: "2024-02-12", Type: shift.Day8})
	first := svc.Load(context.Background(), st.Request())
	_, err := r.SetShift(context.Background(), "2024-02-13", shift.Day12)
	require.NoError(t, err)
	second := svc.Load(context.Background(), st.Request())

	st.Apply(second)
	st.Apply(first)
	assert.Equal(t, 1, st.Cache.Len(), "the later-arriving result overwrites the cache")
}

func TestCalendarViewIgnoresOtherWindow(t *testing.T) {
	st, svc, _ := newHarness(shift.Shift{Date: "2024-02-12", Type: shift.Day8})
	refresh(t, st, svc)
	st.SwitchView(ViewTimeline)
	st.Navigate(1)

	marked := 0
	for _, s := range st.TimelineView().Strips {
		for _, c := range s.Columns {
			if c.HasShift {
				marked++
			}
		}
	}
	assert.Zero(t, marked, "timeline must not render the calendar's quarter")

	cal := st.CalendarView()
	assert.True(t, cal.Months[1].Days[11].HasShift)
}

func TestHistoryLoad(t *testing.T) {
	st, svc, _ := newHarness()
	svc.HistoryLimit = 1
	require.NoError(t, svc.Apply(context.Background(), Mutation{Date: "2024-02-01", Type: shift.Day8}))
	require.NoError(t, svc.Apply(context.Background(), Mutation{Date: "2024-02-02", Type: shift.Day12}))

	st.SwitchView(ViewHistory)
	assert.False(t, st.HistoryLoaded())
	refresh(t, st, svc)
	require.True(t, st.HistoryLoaded())
	require.Len(t, st.History, 1)
	assert.Equal(t, "2024-02-02", st.History[0].Date)
}

func TestDeleteMissingShiftIsAValue(t *testing.T) {
	_, svc, _ := newHarness()
	err := svc.Apply(context.Background(), Mutation{Date: "2024-02-01", Delete: true})
	var apiErr *remote.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.NotFound())
}

func TestServiceWithoutRemote(t *testing.T) {
	svc := &Service{Log: logx.Nop()}
	assert.ErrorIs(t, svc.Apply(context.Background(), Mutation{Date: "2024-01-01", Type: shift.Day8}), ErrNoRemote)
	res, err := svc.Undo(context.Background())
	assert.NotNil(t, res)
	assert.ErrorIs(t, err, ErrNoRemote)
	_, err = svc.Watch(context.Background())
	assert.Error(t, err)
}
