package app

import (
	"time"

	"tableflip.dev/rota/pkg/cache"
	"tableflip.dev/rota/pkg/paint"
	"tableflip.dev/rota/pkg/quarter"
	"tableflip.dev/rota/pkg/shift"
	"tableflip.dev/rota/pkg/viewmodel"
)

// View is one of the three schedule presentations.
type View int

const (
	ViewCalendar View = iota
	ViewTimeline
	ViewHistory
)

// Views lists the views in tab order.
func Views() []View { return []View{ViewCalendar, ViewTimeline, ViewHistory} }

func (v View) String() string {
	switch v {
	case ViewCalendar:
		return "calendar"
	case ViewTimeline:
		return "timeline"
	case ViewHistory:
		return "history"
	default:
		return "unknown"
	}
}

// Next is the view after v in tab order.
func (v View) Next() View { return (v + 1) % 3 }

// Windowed reports whether the view pages through quarters.
func (v View) Windowed() bool { return v == ViewCalendar || v == ViewTimeline }

// State is the single application-state aggregate. Only the UI loop mutates
// it; loads and writes happen in Service and come back as Results.
type State struct {
	View    View
	Paint   paint.State
	Cache   *cache.ShiftCache
	History []shift.HistoryEntry
	Editor  Editor
	Now     func() time.Time

	offsets map[View]int
	// historyLoaded distinguishes "not fetched yet" from an empty log.
	historyLoaded bool
}

// NewState returns a state showing the calendar for the current quarter.
func NewState(now func() time.Time) *State {
	if now == nil {
		now = time.Now
	}
	return &State{
		View:    ViewCalendar,
		Cache:   cache.New(),
		Now:     now,
		offsets: map[View]int{},
	}
}

// Today is the current date in local time at midnight.
func (s *State) Today() time.Time { return shift.Day(s.Now()) }

// Offset is v's quarter offset from the current quarter.
func (s *State) Offset(v View) int { return s.offsets[v] }

// Window recomputes v's window from the clock and its offset.
func (s *State) Window(v View) quarter.Window {
	return quarter.For(s.Now(), s.offsets[v])
}

// Request is the refresh request for the active view.
func (s *State) Request() Request {
	req := Request{View: s.View}
	if s.View.Windowed() {
		req.Window = s.Window(s.View)
	}
	return req
}

// SwitchView activates v and returns the refresh it needs.
func (s *State) SwitchView(v View) Request {
	s.View = v
	return s.Request()
}

// Navigate moves the active view's window by delta quarters. The history view
// has no window; it just refreshes.
func (s *State) Navigate(delta int) Request {
	if s.View.Windowed() {
		s.offsets[s.View] += delta
	}
	return s.Request()
}

// ResetOffset returns the active view to the current quarter.
func (s *State) ResetOffset() Request {
	if s.View.Windowed() {
		s.offsets[s.View] = 0
	}
	return s.Request()
}

// SelectTool applies the paint tool transition and returns the new tool.
func (s *State) SelectTool(t paint.Tool) paint.Tool { return s.Paint.Select(t) }

// Activate runs the cell protocol for date. It returns the write to issue, or
// ok=false when there is none: either the editor opened (no tool) or the
// eraser hit an empty day.
func (s *State) Activate(date string) (m Mutation, ok bool) {
	existing, has := s.Cache.Get(date)
	tool := s.Paint.Active()
	switch tool {
	case paint.None:
		if has {
			s.Editor.Open(date, &existing)
		} else {
			s.Editor.Open(date, nil)
		}
		return Mutation{}, false
	case paint.Eraser:
		if !has {
			return Mutation{}, false
		}
		return Mutation{Date: date, Delete: true}, true
	default:
		typ, _ := tool.ShiftType()
		return Mutation{Date: date, Type: typ}, true
	}
}

// Apply stores a load result. Shift results are only applied while they
// still match the active view's window; history results always replace the
// log. It reports whether anything changed.
func (s *State) Apply(res Result) bool {
	if res.Request.View == ViewHistory {
		s.History = res.History
		s.historyLoaded = true
		return true
	}
	if !s.View.Windowed() || !res.Request.Window.Equal(s.Window(s.View)) {
		return false
	}
	s.Cache.Replace(res.Request.Window, res.Shifts)
	return true
}

// HistoryLoaded reports whether a history load has completed.
func (s *State) HistoryLoaded() bool { return s.historyLoaded }

// CalendarView builds the calendar model for the calendar window.
func (s *State) CalendarView() viewmodel.CalendarView {
	return viewmodel.Calendar(s.Window(ViewCalendar), s.lookupFor(ViewCalendar), s.Today())
}

// TimelineView builds the timeline model for the timeline window.
func (s *State) TimelineView() viewmodel.TimelineView {
	return viewmodel.Timeline(s.Window(ViewTimeline), s.lookupFor(ViewTimeline), s.Today())
}

// HistoryView builds the history model.
func (s *State) HistoryView() viewmodel.HistoryView {
	return viewmodel.History(s.History, s.Now().Location())
}

// lookupFor returns the cache only when it holds v's window, so a view never
// renders another window's shifts while its own fetch is in flight.
func (s *State) lookupFor(v View) viewmodel.Lookup {
	w, ok := s.Cache.Window()
	if !ok || !w.Equal(s.Window(v)) {
		return nil
	}
	return s.Cache
}
