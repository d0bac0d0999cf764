package presenter

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/agenda"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/store/memstore"
)

var fixedNow = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

func newTestPresenter(t *testing.T) (*Presenter, *memstore.Slot) {
	t.Helper()
	slot := memstore.New()
	quiet := log.New(io.Discard)
	tick := fixedNow
	clock := func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}
	return New(store.New(slot, quiet), WithClock(clock), WithLogger(quiet)), slot
}

func titles(entries []agenda.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Task.Title)
	}
	return out
}

func TestOnAddReturnsSortedView(t *testing.T) {
	p, _ := newTestPresenter(t)

	_, _, err := p.OnAdd(model.Draft{Title: "A", Date: "2026-10-21"})
	require.NoError(t, err)
	_, _, err = p.OnAdd(model.Draft{Title: "C"})
	require.NoError(t, err)
	b, view, err := p.OnAdd(model.Draft{Title: "B", Desc: "late", Date: "2026-10-18"})
	require.NoError(t, err)

	assert.Equal(t, "late", b.Desc)
	assert.Equal(t, []string{"B", "A", "C"}, titles(view))
	require.NotNil(t, view[0].Remaining)
	assert.Equal(t, agenda.Overdue, view[0].Remaining.Status)
}

func TestOnAddValidationLeavesStoreUntouched(t *testing.T) {
	p, slot := newTestPresenter(t)
	_, _, err := p.OnAdd(model.Draft{Title: "keep"})
	require.NoError(t, err)
	before := slot.Bytes()

	_, _, err = p.OnAdd(model.Draft{Title: "   ", Desc: "no title"})
	assert.ErrorIs(t, err, model.ErrEmptyTitle)

	_, _, err = p.OnAdd(model.Draft{Title: "x", Date: "soon"})
	assert.ErrorIs(t, err, model.ErrInvalidDate)

	assert.Equal(t, 1, slot.Writes())
	assert.Equal(t, before, slot.Bytes())
}

func TestOnToggleAndDelete(t *testing.T) {
	p, _ := newTestPresenter(t)
	a, _, err := p.OnAdd(model.Draft{Title: "A"})
	require.NoError(t, err)
	b, _, err := p.OnAdd(model.Draft{Title: "B"})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	view, err := p.OnToggle(a.ID)
	require.NoError(t, err)
	assert.True(t, view[0].Task.Completed)

	view, err = p.OnToggle(a.ID)
	require.NoError(t, err)
	assert.False(t, view[0].Task.Completed)

	view, err = p.OnDelete(a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, titles(view))

	view, err = p.OnRestore(a)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "B"}, titles(view))
}

func TestMissingIDIsNotFound(t *testing.T) {
	p, slot := newTestPresenter(t)
	_, _, err := p.OnAdd(model.Draft{Title: "A"})
	require.NoError(t, err)
	writes := slot.Writes()

	_, err = p.OnDelete(12345)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = p.OnToggle(12345)
	assert.True(t, errors.Is(err, ErrNotFound))

	assert.Equal(t, writes, slot.Writes())
	view, err := p.View()
	require.NoError(t, err)
	assert.Len(t, view, 1)
}

func TestResolve(t *testing.T) {
	view := []agenda.Entry{
		{Task: model.Task{ID: 1760000000000, Title: "A"}, Position: 1},
		{Task: model.Task{ID: 2, Title: "B"}, Position: 2},
		{Task: model.Task{ID: 1760000000001, Title: "C"}, Position: 3},
	}

	tests := []struct {
		ref     string
		want    int64
		wantErr bool
	}{
		{ref: "1760000000001", want: 1760000000001},
		{ref: "1", want: 1760000000000},
		{ref: "2", want: 2},
		{ref: "#3", want: 1760000000001},
		{ref: "4", wantErr: true},
		{ref: "0", wantErr: true},
		{ref: "abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := Resolve(tt.ref, view)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
