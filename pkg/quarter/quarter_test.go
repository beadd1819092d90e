package quarter

import (
	"testing"
	"time"
)

func TestForCurrentQuarter(t *testing.T) {
	ref := time.Date(2026, time.October, 19, 15, 4, 0, 0, time.UTC)
	w := For(ref, 0)
	if got := w.From(); got != "2026-10-01" {
		t.Fatalf("start = %s, want 2026-10-01", got)
	}
	if got := w.To(); got != "2026-12-31" {
		t.Fatalf("end = %s, want 2026-12-31", got)
	}
	if w.Label() != "Q4 2026" {
		t.Fatalf("label = %q", w.Label())
	}
}

func TestForRollsOverYears(t *testing.T) {
	ref := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		offset   int
		from, to string
	}{
		{-1, "2023-10-01", "2023-12-31"},
		{-5, "2022-10-01", "2022-12-31"},
		{1, "2024-04-01", "2024-06-30"},
		{3, "2024-10-01", "2024-12-31"},
		{4, "2025-01-01", "2025-03-31"},
		{-13, "2020-10-01", "2020-12-31"},
	}
	for _, tc := range cases {
		w := For(ref, tc.offset)
		if w.From() != tc.from || w.To() != tc.to {
			t.Fatalf("offset %d: got %s..%s, want %s..%s", tc.offset, w.From(), w.To(), tc.from, tc.to)
		}
	}
}

func TestForSpansThreeAlignedMonths(t *testing.T) {
	refs := []time.Time{
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.May, 31, 23, 0, 0, 0, time.UTC),
		time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
	for _, ref := range refs {
		for k := -20; k <= 20; k++ {
			w := For(ref, k)
			if w.Start.Day() != 1 {
				t.Fatalf("ref %v offset %d: start day %d", ref, k, w.Start.Day())
			}
			if w.StartMonthIndex()%3 != 0 {
				t.Fatalf("ref %v offset %d: misaligned start month %v", ref, k, w.Start.Month())
			}
			third := w.Months()[2]
			if w.End.Year() != third.Year() || w.End.Month() != third.Month() || w.End.Day() != DaysIn(third) {
				t.Fatalf("ref %v offset %d: end %v is not the last day of %v", ref, k, w.End, third)
			}
			if got := w.End.AddDate(0, 0, 1); got.Day() != 1 {
				t.Fatalf("ref %v offset %d: end not month end", ref, k)
			}

			next := For(ref, k+4)
			if next.Start.Year() != w.Start.Year()+1 || next.Start.Month() != w.Start.Month() {
				t.Fatalf("ref %v offset %d: k+4 start %v, want one year after %v", ref, k, next.Start, w.Start)
			}
			if next.End.Year() != w.End.Year()+1 || next.End.Month() != w.End.Month() || next.End.Day() != w.End.Day() {
				t.Fatalf("ref %v offset %d: k+4 end %v, want one year after %v", ref, k, next.End, w.End)
			}
		}
	}
}

func TestContains(t *testing.T) {
	w := For(time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC), 0)
	for _, d := range []string{"2024-01-01", "2024-02-29", "2024-03-31"} {
		if !w.Contains(d) {
			t.Fatalf("expected %s inside %s", d, w.Label())
		}
	}
	for _, d := range []string{"2023-12-31", "2024-04-01", "", "2024-1-5"} {
		if w.Contains(d) {
			t.Fatalf("expected %q outside %s", d, w.Label())
		}
	}
}
