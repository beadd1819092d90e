// Package app holds the schedule application state and the operations shared
// by the terminal UI and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/rota/pkg/live"
	"tableflip.dev/rota/pkg/logx"
	"tableflip.dev/rota/pkg/quarter"
	"tableflip.dev/rota/pkg/remote"
	"tableflip.dev/rota/pkg/shift"
)

var (
	// ErrNoRemote is returned by a Service without a store client.
	ErrNoRemote = errors.New("app: no remote configured")
	// ErrTypeRequired is returned when saving an edit without a type.
	ErrTypeRequired = errors.New("app: select a shift type first")

	errEditorClosed = errors.New("app: no edit in progress")
)

// Remote is the subset of the store client the application drives.
type Remote interface {
	Shifts(ctx context.Context, from, to string) ([]shift.Shift, error)
	SetShift(ctx context.Context, date string, typ shift.Type) (*shift.Shift, error)
	DeleteShift(ctx context.Context, date string) error
	History(ctx context.Context, limit int) ([]shift.HistoryEntry, error)
	Undo(ctx context.Context) (*shift.UndoResult, error)
}

var _ Remote = (*remote.Client)(nil)

// Request names what a refresh should load: the shifts of Window for the
// calendar and timeline, the change log for history.
type Request struct {
	View   View
	Window quarter.Window
}

func (r Request) String() string {
	if r.View == ViewHistory {
		return r.View.String()
	}
	return fmt.Sprintf("%s %s", r.View, r.Window.Label())
}

// Result is a completed load, applied to State on the UI loop.
type Result struct {
	Request Request
	Shifts  []shift.Shift
	History []shift.HistoryEntry
	Err     error
}

// Mutation is a single-date write.
type Mutation struct {
	Date   string
	Type   shift.Type
	Delete bool
}

func (m Mutation) String() string {
	if m.Delete {
		return "remove " + m.Date
	}
	return fmt.Sprintf("set %s %s", m.Date, m.Type)
}

// Service runs store operations off the UI loop. It never touches State.
type Service struct {
	Remote       Remote
	Live         *live.Channel
	HistoryLimit int
	Log          logx.Logger
}

// Load fetches whatever req asks for. Transport failures already arrive as
// empty results; Err carries remote-reported errors.
func (s *Service) Load(ctx context.Context, req Request) Result {
	res := Result{Request: req}
	if s.Remote == nil {
		res.Err = ErrNoRemote
		return res
	}
	if req.View == ViewHistory {
		limit := s.HistoryLimit
		if limit <= 0 {
			limit = remote.DefaultHistoryLimit
		}
		res.History, res.Err = s.Remote.History(ctx, limit)
		return res
	}
	res.Shifts, res.Err = s.Remote.Shifts(ctx, req.Window.From(), req.Window.To())
	if res.Err != nil {
		s.Log.Warn("loading shifts failed", logx.String("window", req.Window.Label()), logx.Err(res.Err))
	}
	return res
}

// Apply issues m against the store. The cache is not patched; callers refresh.
func (s *Service) Apply(ctx context.Context, m Mutation) error {
	if s.Remote == nil {
		return ErrNoRemote
	}
	if m.Delete {
		return s.Remote.DeleteShift(ctx, m.Date)
	}
	if m.Type == "" {
		return ErrTypeRequired
	}
	_, err := s.Remote.SetShift(ctx, m.Date, m.Type)
	return err
}

// Undo asks the store to revert its most recent change. The result is never
// nil; "Nothing to undo" comes back as a not-found *remote.APIError.
func (s *Service) Undo(ctx context.Context) (*shift.UndoResult, error) {
	if s.Remote == nil {
		return &shift.UndoResult{}, ErrNoRemote
	}
	res, err := s.Remote.Undo(ctx)
	if res == nil {
		res = &shift.UndoResult{}
	}
	return res, err
}

// Watch subscribes to live change notifications.
func (s *Service) Watch(ctx context.Context) (<-chan live.Event, error) {
	if s.Live == nil {
		return nil, errors.New("app: no live channel configured")
	}
	return s.Live.Watch(ctx)
}

// UndoRefreshes reports whether an undo answer should trigger a refresh: only
// answers carrying a message describe a change.
func UndoRefreshes(res *shift.UndoResult) bool {
	return res != nil && res.Message != ""
}
