package edit

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/rota/pkg/remote"
	"tableflip.dev/rota/pkg/shift"
)

type fakeStore struct {
	calls   []string
	catalog *shift.Catalog
	undo    *shift.UndoResult
	undoErr error
}

func (f *fakeStore) SetShift(_ context.Context, date string, typ shift.Type) (*shift.Shift, error) {
	f.calls = append(f.calls, "set "+date+" "+string(typ))
	return &shift.Shift{Date: date, Type: typ, Start: "07:00", End: "19:00"}, nil
}

func (f *fakeStore) DeleteShift(_ context.Context, date string) error {
	f.calls = append(f.calls, "delete "+date)
	return &remote.APIError{Status: http.StatusNotFound, Detail: "No shift on " + date}
}

func (f *fakeStore) Undo(context.Context) (*shift.UndoResult, error) {
	f.calls = append(f.calls, "undo")
	return f.undo, f.undoErr
}

func (f *fakeStore) ShiftTypes(context.Context) (*shift.Catalog, error) {
	if f.catalog == nil {
		return nil, errors.New("offline")
	}
	return f.catalog, nil
}

func TestSetValidatesType(t *testing.T) {
	st := &fakeStore{}
	var buf bytes.Buffer

	s := Set{Store: st, Date: "2024-01-15", Type: "Day12", Out: &buf}
	require.NoError(t, s.Do(context.Background()))
	assert.Equal(t, []string{"set 2024-01-15 day12"}, st.calls)
	assert.Contains(t, buf.String(), "2024-01-15 set to day12 07:00–19:00")

	bad := Set{Store: st, Date: "2024-01-15", Type: "brunch", Out: &buf}
	err := bad.Do(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "day8, day12, night12")
	assert.Len(t, st.calls, 1, "invalid input must not reach the store")
}

func TestSetUsesStoreCatalog(t *testing.T) {
	st := &fakeStore{catalog: shift.CatalogFrom(map[string]shift.Definition{
		"day8":   {Start: "07:00", End: "15:00"},
		"oncall": {Start: "00:00", End: "23:59"},
	})}
	s := Set{Store: st, Date: "2024-01-15", Type: "oncall", Out: &bytes.Buffer{}}
	require.NoError(t, s.Do(context.Background()))
	assert.Equal(t, []string{"set 2024-01-15 oncall"}, st.calls)
}

func TestSetRejectsBadDate(t *testing.T) {
	st := &fakeStore{}
	s := Set{Store: st, Date: "15.01.2024", Type: "day8"}
	require.Error(t, s.Do(context.Background()))
	assert.Empty(t, st.calls)
}

func TestNormalizeDate(t *testing.T) {
	today := shift.FormatDate(time.Now())
	got, err := normalizeDate(" Today ")
	require.NoError(t, err)
	assert.Equal(t, today, got)

	got, err = normalizeDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", got)

	_, err = normalizeDate("2023-02-29")
	assert.Error(t, err)
}

func TestRemoveMissingIsAPIError(t *testing.T) {
	st := &fakeStore{}
	r := Remove{Store: st, Date: "2024-01-15", Out: &bytes.Buffer{}}
	err := r.Do(context.Background())
	var apiErr *remote.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.NotFound())
}

func TestUndoReportsRestoredDate(t *testing.T) {
	st := &fakeStore{undo: &shift.UndoResult{Message: "Undone", RestoredDate: "2024-01-15"}}
	var buf bytes.Buffer
	u := Undo{Store: st, Out: &buf}
	require.NoError(t, u.Do(context.Background()))
	assert.Contains(t, buf.String(), "Undone (2024-01-15)")

	st = &fakeStore{undo: &shift.UndoResult{}, undoErr: &remote.APIError{Status: http.StatusNotFound, Detail: "Nothing to undo"}}
	u = Undo{Store: st, Out: &buf}
	err := u.Do(context.Background())
	require.Error(t, err)
	assert.True(t, remote.IsNotFound(err))
}

func TestUnreachableStoreFailsEdits(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()
	client := remote.NewClient(addr)
	ctx := context.Background()

	var buf bytes.Buffer
	s := Set{Store: client, Date: "2024-01-15", Type: "day8", Out: &buf}
	require.ErrorIs(t, s.Do(ctx), remote.ErrUnreachable)

	r := Remove{Store: client, Date: "2024-01-15", Out: &buf}
	require.ErrorIs(t, r.Do(ctx), remote.ErrUnreachable)

	u := Undo{Store: client, Out: &buf}
	require.ErrorIs(t, u.Do(ctx), remote.ErrUnreachable)

	assert.Empty(t, buf.String(), "nothing may be reported as done")
}
