package history

import (
	"regexp"
	"strings"
	"testing"

	"tableflip.dev/rota/pkg/tui/theme"
	"tableflip.dev/rota/pkg/viewmodel"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;:]*[A-Za-z]`)

func plain(s string) string { return ansiPattern.ReplaceAllString(s, "") }

func TestHistoryShowsLoadingUntilSet(t *testing.T) {
	m := NewModel(theme.Default().History)
	m.SetSize(80, 10)
	if !strings.Contains(plain(m.View()), "loading…") {
		t.Fatalf("expected loading placeholder:\n%s", plain(m.View()))
	}

	m.SetHistory(viewmodel.HistoryView{Empty: true, Placeholder: "no history"})
	if !strings.Contains(plain(m.View()), "no history") {
		t.Fatalf("expected empty placeholder:\n%s", plain(m.View()))
	}
}

func TestHistoryRowsAndTruncation(t *testing.T) {
	m := NewModel(theme.Default().History)
	m.SetSize(50, 10)
	long := strings.Repeat("changed ", 20)
	m.SetHistory(viewmodel.HistoryView{Rows: []viewmodel.HistoryRow{
		{When: "14.01 07:05", Date: "2024-01-15", Change: "set day8"},
		{When: "13.01 20:00", Date: "2024-01-13", Change: long},
	}})

	out := plain(m.View())
	for _, want := range []string{"When", "Change", "14.01 07:05  2024-01-15  set day8", "…"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}
