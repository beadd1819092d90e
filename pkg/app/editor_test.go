package app

import (
	"errors"
	"testing"

	"tableflip.dev/rota/pkg/shift"
)

func TestEditorSaveRequiresType(t *testing.T) {
	var e Editor
	e.Open("2024-01-15", nil)

	if _, err := e.Save(); !errors.Is(err, ErrTypeRequired) {
		t.Fatalf("expected ErrTypeRequired, got %v", err)
	}
	if !e.Active() {
		t.Fatalf("failed save must keep the session open")
	}
	if e.Err() == nil {
		t.Fatalf("validation failure should be reported")
	}

	e.Select(shift.Day12)
	if e.Err() != nil {
		t.Fatalf("selecting a type clears the failure")
	}
	m, err := e.Save()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if m != (Mutation{Date: "2024-01-15", Type: shift.Day12}) {
		t.Fatalf("unexpected mutation %+v", m)
	}
	if e.Active() {
		t.Fatalf("save closes the session")
	}
}

func TestEditorOpenDiscardsPreviousSession(t *testing.T) {
	var e Editor
	e.Open("2024-01-15", nil)
	e.Select(shift.Night12)
	e.RequestDelete()

	e.Open("2024-01-16", &shift.Shift{Date: "2024-01-16", Type: shift.Day8})
	if e.Date() != "2024-01-16" || e.Selected() != shift.Day8 {
		t.Fatalf("new session should start from its own shift: %s %s", e.Date(), e.Selected())
	}
	if e.Confirming() {
		t.Fatalf("pending confirmation leaked into the new session")
	}
	if s, ok := e.Existing(); !ok || s.Type != shift.Day8 {
		t.Fatalf("existing shift not kept")
	}
}

func TestEditorDeleteNeedsConfirmation(t *testing.T) {
	var e Editor
	e.Open("2024-01-15", &shift.Shift{Date: "2024-01-15", Type: shift.Day8})

	if _, ok := e.ConfirmDelete(); ok {
		t.Fatalf("delete must not go through without a request")
	}
	e.RequestDelete()
	e.AbortDelete()
	if _, ok := e.ConfirmDelete(); ok {
		t.Fatalf("aborted delete must not go through")
	}
	if !e.Active() {
		t.Fatalf("aborting keeps the session open")
	}

	e.RequestDelete()
	m, ok := e.ConfirmDelete()
	if !ok || !m.Delete || m.Date != "2024-01-15" {
		t.Fatalf("unexpected delete %+v %v", m, ok)
	}
	if e.Active() {
		t.Fatalf("delete closes the session")
	}
}

func TestEditorCancel(t *testing.T) {
	var e Editor
	e.Open("2024-01-15", nil)
	e.Select(shift.Day8)
	e.Cancel()
	if e.Active() || e.Selected() != "" {
		t.Fatalf("cancel should reset the session")
	}
	if _, err := e.Save(); err == nil {
		t.Fatalf("save without a session should fail")
	}
}
