// Package edit changes single days on the store from the command line.
package edit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"tableflip.dev/rota/pkg/printers"
	"tableflip.dev/rota/pkg/shift"
)

var errNoStore = errors.New("edit: no store")

// Store is the subset of the store client the edit commands use.
type Store interface {
	SetShift(ctx context.Context, date string, typ shift.Type) (*shift.Shift, error)
	DeleteShift(ctx context.Context, date string) error
	Undo(ctx context.Context) (*shift.UndoResult, error)
	ShiftTypes(ctx context.Context) (*shift.Catalog, error)
}

// Set assigns Type to Date.
type Set struct {
	Store Store
	Date  string
	Type  string
	JSON  bool
	Out   io.Writer
}

func (s *Set) Do(ctx context.Context) error {
	if s.Store == nil {
		return errNoStore
	}
	date, err := normalizeDate(s.Date)
	if err != nil {
		return err
	}
	typ := shift.ParseType(s.Type)
	if typ == "" {
		return errors.New("edit: a shift type is required")
	}
	cat, err := s.Store.ShiftTypes(ctx)
	if err != nil || cat == nil || len(cat.Definitions()) == 0 {
		cat = shift.DefaultCatalog()
	}
	if !cat.Valid(typ) {
		return fmt.Errorf("edit: unknown shift type %q, want one of %s", s.Type, strings.Join(cat.Names(), ", "))
	}

	saved, err := s.Store.SetShift(ctx, date, typ)
	if err != nil {
		return err
	}
	if s.JSON {
		return printers.JSON(s.Out, saved)
	}
	pp := printers.PrettyPrint{Out: s.Out}
	if saved == nil {
		pp.Message(fmt.Sprintf("%s set to %s", date, typ))
		return nil
	}
	pp.Message(fmt.Sprintf("%s set to %s %s", saved.Date, saved.Type, saved.Hours()))
	return nil
}

// Remove deletes the shift on Date.
type Remove struct {
	Store Store
	Date  string
	Out   io.Writer
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Store == nil {
		return errNoStore
	}
	date, err := normalizeDate(r.Date)
	if err != nil {
		return err
	}
	if err := r.Store.DeleteShift(ctx, date); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: r.Out}
	pp.Message(date + " removed")
	return nil
}

// Undo reverts the store's most recent change.
type Undo struct {
	Store Store
	JSON  bool
	Out   io.Writer
}

func (u *Undo) Do(ctx context.Context) error {
	if u.Store == nil {
		return errNoStore
	}
	res, err := u.Store.Undo(ctx)
	if err != nil {
		return err
	}
	if u.JSON {
		return printers.JSON(u.Out, res)
	}
	pp := printers.PrettyPrint{Out: u.Out}
	msg := "Undone"
	if res != nil && res.Message != "" {
		msg = res.Message
	}
	if res != nil && res.RestoredDate != "" {
		msg += " (" + res.RestoredDate + ")"
	}
	pp.Message(msg)
	return nil
}

// normalizeDate accepts "today", "tomorrow" and yyyy-mm-dd.
func normalizeDate(s string) (string, error) {
	today := shift.Day(time.Now())
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return shift.FormatDate(today), nil
	case "tomorrow":
		return shift.FormatDate(today.AddDate(0, 0, 1)), nil
	}
	t, err := shift.ParseDate(s, time.Local)
	if err != nil {
		return "", fmt.Errorf("edit: date %q is not yyyy-mm-dd", s)
	}
	return shift.FormatDate(t), nil
}
