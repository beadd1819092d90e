// Package history prints the store's change log.
package history

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/rota/pkg/printers"
	"tableflip.dev/rota/pkg/remote"
	"tableflip.dev/rota/pkg/shift"
	"tableflip.dev/rota/pkg/viewmodel"
)

// Source loads change log entries, newest first.
type Source interface {
	History(ctx context.Context, limit int) ([]shift.HistoryEntry, error)
}

// History prints up to Limit entries. Limit is clamped to what the store
// accepts.
type History struct {
	Source Source
	Limit  int
	JSON   bool
	Loc    *time.Location
	Out    io.Writer
}

func (h *History) Do(ctx context.Context) error {
	if h.Source == nil {
		return errors.New("can not show history, no store")
	}
	entries, err := h.Source.History(ctx, remote.ClampHistoryLimit(h.Limit))
	if err != nil {
		return err
	}
	if h.JSON {
		if entries == nil {
			entries = []shift.HistoryEntry{}
		}
		return printers.JSON(h.Out, entries)
	}
	loc := h.Loc
	if loc == nil {
		loc = time.Local
	}
	pp := printers.PrettyPrint{Out: h.Out}
	pp.NewLine()
	pp.TitleWithCount("History", len(entries), "change")
	pp.History(viewmodel.History(entries, loc))
	return nil
}
