// Package shifts prints the schedule of one quarter.
package shifts

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/rota/pkg/printers"
	"tableflip.dev/rota/pkg/quarter"
	"tableflip.dev/rota/pkg/shift"
	"tableflip.dev/rota/pkg/viewmodel"
)

// Source loads the shifts of a date range.
type Source interface {
	Shifts(ctx context.Context, from, to string) ([]shift.Shift, error)
}

// Shifts prints the quarter Offset quarters away from the current one.
type Shifts struct {
	Source Source
	Offset int
	JSON   bool
	Now    func() time.Time
	Out    io.Writer
}

type result struct {
	Quarter string        `json:"quarter"`
	From    string        `json:"from"`
	To      string        `json:"to"`
	Shifts  []shift.Shift `json:"shifts"`
}

type lookup map[string]shift.Shift

func (l lookup) Get(date string) (shift.Shift, bool) {
	s, ok := l[date]
	return s, ok
}

func (s *Shifts) Do(ctx context.Context) error {
	if s.Source == nil {
		return errors.New("can not list shifts, no store")
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	w := quarter.For(now(), s.Offset)
	list, err := s.Source.Shifts(ctx, w.From(), w.To())
	if err != nil {
		return err
	}

	if s.JSON {
		if list == nil {
			list = []shift.Shift{}
		}
		return printers.JSON(s.Out, result{Quarter: w.Label(), From: w.From(), To: w.To(), Shifts: list})
	}

	byDate := make(lookup, len(list))
	for _, sh := range list {
		byDate[sh.Date] = sh
	}
	pp := printers.PrettyPrint{Out: s.Out}
	pp.NewLine()
	pp.Quarter(viewmodel.Calendar(w, byDate, shift.Day(now())))
	pp.TitleWithCount("Shifts", len(list), "shift")
	pp.Shifts(list)
	return nil
}
