package info

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/rota/pkg/config"
	"tableflip.dev/rota/pkg/shift"
)

type fakeStore struct {
	catalog *shift.Catalog
	next    *shift.NextShift
}

func (f *fakeStore) ShiftTypes(context.Context) (*shift.Catalog, error) {
	if f.catalog == nil {
		return nil, errors.New("offline")
	}
	return f.catalog, nil
}

func (f *fakeStore) NextShift(context.Context) (*shift.NextShift, error) {
	return f.next, nil
}

func noColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestTypesFallsBackToDefaults(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	ty := Types{Store: &fakeStore{}, Out: &buf}
	if err := ty.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Shift types - 3 types", "day8", "day12", "night12", "19:00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestTypesJSONFromStore(t *testing.T) {
	cat := shift.CatalogFrom(map[string]shift.Definition{"day8": {Start: "08:00", End: "16:00"}})
	var buf bytes.Buffer
	ty := Types{Store: &fakeStore{catalog: cat}, JSON: true, Out: &buf}
	if err := ty.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	var got []typeJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 1 || got[0].Type != shift.Day8 || got[0].Start != "08:00" {
		t.Fatalf("unexpected types %+v", got)
	}
}

func TestNext(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	n := Next{Store: &fakeStore{next: &shift.NextShift{Date: "2024-01-16", Type: shift.Night12, Start: "19:00", End: "07:00"}}, Out: &buf}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !strings.Contains(buf.String(), "2024-01-16 night12 19:00–07:00") {
		t.Fatalf("unexpected output %q", buf.String())
	}

	buf.Reset()
	n = Next{Store: &fakeStore{}, Out: &buf}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected none when nothing is scheduled, got %q", buf.String())
	}
}

func TestInfoPrintsConfig(t *testing.T) {
	noColor(t)
	t.Setenv(config.PathEnv, "")
	var buf bytes.Buffer
	i := Info{Config: &config.Config{Server: "http://rota.test"}, Store: &fakeStore{}, Out: &buf}
	if err := i.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ROTA_CONFIG_PATH env var not set", "(defaults)", "http://rota.test", "day12"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
