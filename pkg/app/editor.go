package app

import (
	"tableflip.dev/rota/pkg/shift"
)

// Editor is the explicit edit session for one date. Only one session exists
// at a time; opening another date drops whatever was selected before.
type Editor struct {
	open       bool
	date       string
	existing   *shift.Shift
	selected   shift.Type
	confirming bool
	err        error
}

// Open starts a session for date, preloading the selection from existing.
func (e *Editor) Open(date string, existing *shift.Shift) {
	*e = Editor{open: true, date: date}
	if existing != nil {
		cp := *existing
		e.existing = &cp
		e.selected = cp.Type
	}
}

// Active reports whether a session is open.
func (e *Editor) Active() bool { return e.open }

// Date is the date being edited.
func (e *Editor) Date() string { return e.date }

// Existing returns the shift the session was opened with.
func (e *Editor) Existing() (shift.Shift, bool) {
	if e.existing == nil {
		return shift.Shift{}, false
	}
	return *e.existing, true
}

// Selected is the type that Save would write.
func (e *Editor) Selected() shift.Type { return e.selected }

// Err is the last validation failure, cleared by the next selection.
func (e *Editor) Err() error { return e.err }

// Confirming reports whether a delete is awaiting confirmation.
func (e *Editor) Confirming() bool { return e.confirming }

// Select chooses the type to save.
func (e *Editor) Select(t shift.Type) {
	if !e.open {
		return
	}
	e.selected = t
	e.confirming = false
	e.err = nil
}

// Save closes the session and returns the write to issue. Without a selected
// type it returns ErrTypeRequired and the session stays open.
func (e *Editor) Save() (Mutation, error) {
	if !e.open {
		return Mutation{}, errEditorClosed
	}
	if e.selected == "" {
		e.err = ErrTypeRequired
		return Mutation{}, ErrTypeRequired
	}
	m := Mutation{Date: e.date, Type: e.selected}
	e.close()
	return m, nil
}

// RequestDelete asks for confirmation before deleting.
func (e *Editor) RequestDelete() {
	if e.open {
		e.confirming = true
	}
}

// ConfirmDelete closes the session and returns the delete to issue. It does
// nothing unless RequestDelete was called first.
func (e *Editor) ConfirmDelete() (Mutation, bool) {
	if !e.open || !e.confirming {
		return Mutation{}, false
	}
	m := Mutation{Date: e.date, Delete: true}
	e.close()
	return m, true
}

// AbortDelete leaves the confirmation prompt and keeps the session open.
func (e *Editor) AbortDelete() { e.confirming = false }

// Cancel closes the session without writing anything.
func (e *Editor) Cancel() { e.close() }

func (e *Editor) close() { *e = Editor{} }
