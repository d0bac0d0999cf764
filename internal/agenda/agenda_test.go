package agenda

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/idilsaglam/tada/internal/model"
)

var (
	loc   = time.FixedZone("CEST", 2*3600)
	today = model.Date{Year: 2026, Month: time.October, Day: 19}
)

func dateOffset(n int) *model.Date {
	d := today.AddDays(n)
	return &d
}

func titles(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestComputeRemaining(t *testing.T) {
	nows := map[string]time.Time{
		"midnight": time.Date(2026, 10, 19, 0, 0, 0, 0, loc),
		"morning":  time.Date(2026, 10, 19, 9, 30, 0, 0, loc),
		"late":     time.Date(2026, 10, 19, 23, 59, 59, 0, loc),
	}
	tests := []struct {
		offset int
		want   Remaining
	}{
		{-3, Remaining{Status: Overdue, Days: 3}},
		{-1, Remaining{Status: Overdue, Days: 1}},
		{0, Remaining{Status: DueToday}},
		{1, Remaining{Status: Upcoming, Days: 1}},
		{5, Remaining{Status: Upcoming, Days: 5}},
		{400, Remaining{Status: Upcoming, Days: 400}},
	}
	for name, now := range nows {
		for _, tt := range tests {
			got := ComputeRemaining(today.AddDays(tt.offset), now)
			assert.Equal(t, tt.want, got, "%s offset %d", name, tt.offset)
		}
	}
}

func TestComputeRemainingAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name string
		date model.Date
		now  time.Time
		want Remaining
	}{
		{
			name: "fall back, tomorrow",
			date: model.Date{Year: 2026, Month: time.November, Day: 2},
			now:  time.Date(2026, 11, 1, 0, 30, 0, 0, ny),
			want: Remaining{Status: Upcoming, Days: 1},
		},
		{
			name: "fall back, today after the repeated hour",
			date: model.Date{Year: 2026, Month: time.November, Day: 1},
			now:  time.Date(2026, 11, 1, 23, 30, 0, 0, ny),
			want: Remaining{Status: DueToday},
		},
		{
			name: "spring forward, yesterday",
			date: model.Date{Year: 2027, Month: time.March, Day: 14},
			now:  time.Date(2027, 3, 15, 0, 30, 0, 0, ny),
			want: Remaining{Status: Overdue, Days: 1},
		},
		{
			name: "spring forward, a week out",
			date: model.Date{Year: 2027, Month: time.March, Day: 21},
			now:  time.Date(2027, 3, 14, 0, 30, 0, 0, ny),
			want: Remaining{Status: Upcoming, Days: 7},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeRemaining(tt.date, tt.now))
		})
	}
}

func TestRemainingLabel(t *testing.T) {
	assert.Equal(t, "1 day left", Remaining{Status: Upcoming, Days: 1}.Label())
	assert.Equal(t, "5 days left", Remaining{Status: Upcoming, Days: 5}.Label())
	assert.Equal(t, "Due today", Remaining{Status: DueToday}.Label())
	assert.Equal(t, "1 day overdue", Remaining{Status: Overdue, Days: 1}.Label())
	assert.Equal(t, "3 days overdue", Remaining{Status: Overdue, Days: 3}.Label())
}

func TestSortForDisplayScenario(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, loc)
	tasks := []model.Task{
		{ID: 1, Title: "A", Date: dateOffset(2)},
		{ID: 2, Title: "B", Date: dateOffset(-1)},
		{ID: 3, Title: "C"},
	}

	got := SortForDisplay(tasks, now)
	assert.Equal(t, []string{"B", "A", "C"}, titles(got))
	assert.Equal(t, []string{"A", "B", "C"}, titles(tasks), "input must not be reordered")
}

func TestSortForDisplayFullOrder(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, loc)
	tasks := []model.Task{
		{ID: 1, Title: "none-1"},
		{ID: 2, Title: "far", Date: dateOffset(30)},
		{ID: 3, Title: "today", Date: dateOffset(0)},
		{ID: 4, Title: "none-2"},
		{ID: 5, Title: "very-late", Date: dateOffset(-10)},
		{ID: 6, Title: "soon", Date: dateOffset(1)},
		{ID: 7, Title: "late", Date: dateOffset(-2)},
		{ID: 8, Title: "today-2", Date: dateOffset(0)},
	}

	got := SortForDisplay(tasks, now)
	assert.Equal(t,
		[]string{"very-late", "late", "today", "today-2", "soon", "far", "none-1", "none-2"},
		titles(got))
}

func TestBuild(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, loc)
	entries := Build([]model.Task{
		{ID: 1, Title: "A", Date: dateOffset(2)},
		{ID: 2, Title: "B", Date: dateOffset(-1), Completed: true},
		{ID: 3, Title: "C"},
	}, now)

	require.Len(t, entries, 3)
	assert.Equal(t, "B", entries[0].Task.Title)
	assert.Equal(t, 1, entries[0].Position)
	require.NotNil(t, entries[0].Remaining)
	assert.Equal(t, Remaining{Status: Overdue, Days: 1}, *entries[0].Remaining)

	assert.Equal(t, Remaining{Status: Upcoming, Days: 2}, *entries[1].Remaining)
	assert.Nil(t, entries[2].Remaining)
	assert.Equal(t, 3, entries[2].Position)

	done, pending, overdue := Counts(entries)
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, pending)
	assert.Equal(t, 0, overdue)
}

func TestFormatDeadline(t *testing.T) {
	assert.Equal(t, "Oct 21, 2026", FormatDeadline(model.Date{Year: 2026, Month: time.October, Day: 21}))
	assert.Equal(t, "Jan 5, 2027", FormatDeadline(model.Date{Year: 2027, Month: time.January, Day: 5}))
}

func testSortInvariants(t *rapid.T) {
	n := rapid.IntRange(0, 30).Draw(t, "n")
	tasks := make([]model.Task, n)
	for i := range tasks {
		tasks[i] = model.Task{ID: int64(i + 1), Title: "t"}
		if rapid.Bool().Draw(t, "dated") {
			tasks[i].Date = dateOffset(rapid.IntRange(-60, 60).Draw(t, "offset"))
		}
	}
	hour := rapid.IntRange(0, 23).Draw(t, "hour")
	now := time.Date(2026, 10, 19, hour, 0, 0, 0, loc)

	got := SortForDisplay(tasks, now)
	if len(got) != len(tasks) {
		t.Fatalf("length changed: %d -> %d", len(tasks), len(got))
	}

	seenDateless := false
	for i, task := range got {
		if !task.HasDate() {
			seenDateless = true
			continue
		}
		if seenDateless {
			t.Fatalf("dated task %d appears after a dateless one", task.ID)
		}
		if i > 0 && got[i-1].HasDate() {
			prev := got[i-1].Date.In(loc).Sub(now)
			cur := task.Date.In(loc).Sub(now)
			if prev > cur {
				t.Fatalf("task %d (%v) sorted before task %d (%v)", got[i-1].ID, prev, task.ID, cur)
			}
		}
	}
}

func TestSortForDisplay_Properties(t *testing.T) {
	rapid.Check(t, testSortInvariants)
}
