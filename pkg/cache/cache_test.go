package cache

import (
	"testing"
	"time"

	"tableflip.dev/rota/pkg/quarter"
	"tableflip.dev/rota/pkg/shift"
)

func q1() quarter.Window {
	return quarter.For(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC), 0)
}

func TestReplaceKeepsOnlyWindowDates(t *testing.T) {
	c := New()
	kept := c.Replace(q1(), []shift.Shift{
		{Date: "2023-12-31", Type: shift.Day8},
		{Date: "2024-01-15", Type: shift.Day8, Start: "08:00", End: "16:00"},
		{Date: "2024-03-31", Type: shift.Night12},
		{Date: "2024-04-01", Type: shift.Day12},
	})
	if kept != 2 || c.Len() != 2 {
		t.Fatalf("kept %d, len %d; want 2", kept, c.Len())
	}
	if _, ok := c.Get("2023-12-31"); ok {
		t.Fatalf("date before window cached")
	}
	if _, ok := c.Get("2024-04-01"); ok {
		t.Fatalf("date after window cached")
	}
	s, ok := c.Get("2024-01-15")
	if !ok || s.Type != shift.Day8 || s.Start != "08:00" {
		t.Fatalf("unexpected record %+v (%v)", s, ok)
	}
}

func TestReplaceDiscardsPreviousContents(t *testing.T) {
	c := New()
	c.Replace(q1(), []shift.Shift{{Date: "2024-01-02", Type: shift.Day8}})

	q2 := quarter.For(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC), 1)
	c.Replace(q2, []shift.Shift{{Date: "2024-05-05", Type: shift.Day12}})

	if _, ok := c.Get("2024-01-02"); ok {
		t.Fatalf("stale shift from previous window survived")
	}
	w, ok := c.Window()
	if !ok || !w.Equal(q2) {
		t.Fatalf("window = %v (%v), want %v", w, ok, q2)
	}

	c.Replace(q2, nil)
	if c.Len() != 0 {
		t.Fatalf("empty fetch should clear cache, len %d", c.Len())
	}
}

func TestShiftsOrdered(t *testing.T) {
	c := New()
	c.Replace(q1(), []shift.Shift{
		{Date: "2024-03-01", Type: shift.Day8},
		{Date: "2024-01-01", Type: shift.Day12},
		{Date: "2024-02-01", Type: shift.Night12},
	})
	got := c.Shifts()
	if len(got) != 3 || got[0].Date != "2024-01-01" || got[2].Date != "2024-03-01" {
		t.Fatalf("unexpected order %+v", got)
	}
}
