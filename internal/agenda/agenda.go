// Package agenda turns stored tasks into the ordered, annotated view shown to
// the user. Everything here is pure: "now" is always passed in.
package agenda

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/idilsaglam/tada/internal/model"
)

const day = 24 * time.Hour

// Status classifies a deadline relative to now.
type Status int

const (
	Upcoming Status = iota
	DueToday
	Overdue
)

func (s Status) String() string {
	switch s {
	case Upcoming:
		return "upcoming"
	case DueToday:
		return "due today"
	case Overdue:
		return "overdue"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Remaining is the annotation for a dated task. Days is never negative.
type Remaining struct {
	Status Status
	Days   int
}

// Label is the human-readable annotation, e.g. "2 days left".
func (r Remaining) Label() string {
	switch r.Status {
	case DueToday:
		return "Due today"
	case Overdue:
		return fmt.Sprintf("%d %s overdue", r.Days, plural(r.Days))
	default:
		return fmt.Sprintf("%d %s left", r.Days, plural(r.Days))
	}
}

func plural(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}

// wallUTC reads now's local wall clock as if it were UTC, so every calendar
// day is exactly 24h long regardless of daylight saving in now's zone.
func wallUTC(now time.Time) time.Time {
	y, m, d := now.Date()
	h, mi, s := now.Clock()
	return time.Date(y, m, d, h, mi, s, now.Nanosecond(), time.UTC)
}

// until is the span from now's wall clock to the start of date d.
func until(d model.Date, now time.Time) time.Duration {
	return d.In(time.UTC).Sub(wallUTC(now))
}

// ComputeRemaining returns ceil((date - now) / 1 day) classified as upcoming,
// due today or overdue.
func ComputeRemaining(d model.Date, now time.Time) Remaining {
	diff := int(math.Ceil(float64(until(d, now)) / float64(day)))
	switch {
	case diff > 0:
		return Remaining{Status: Upcoming, Days: diff}
	case diff == 0:
		return Remaining{Status: DueToday}
	default:
		return Remaining{Status: Overdue, Days: -diff}
	}
}

// SortForDisplay returns a sorted copy of tasks: dated tasks by ascending
// (date - now), so the most overdue come first, then dateless tasks.
// Equal keys keep their stored order.
func SortForDisplay(tasks []model.Task, now time.Time) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.HasDate() || !b.HasDate() {
			return a.HasDate() && !b.HasDate()
		}
		return until(*a.Date, now) < until(*b.Date, now)
	})
	return out
}

// Entry is one row of the rendered list.
type Entry struct {
	Task      model.Task
	Position  int        // 1-based position in the sorted view
	Remaining *Remaining // nil when the task has no date
}

// Build sorts tasks for display and annotates each with its remaining time.
func Build(tasks []model.Task, now time.Time) []Entry {
	sorted := SortForDisplay(tasks, now)
	entries := make([]Entry, 0, len(sorted))
	for i, t := range sorted {
		e := Entry{Task: t, Position: i + 1}
		if t.Date != nil {
			r := ComputeRemaining(*t.Date, now)
			e.Remaining = &r
		}
		entries = append(entries, e)
	}
	return entries
}

// FormatDeadline renders a date the way the list shows it: "Oct 21, 2026".
func FormatDeadline(d model.Date) string {
	return d.In(time.UTC).Format("Jan 2, 2006")
}

// Counts summarises a view for headers.
func Counts(entries []Entry) (done, pending, overdue int) {
	for _, e := range entries {
		if e.Task.Completed {
			done++
			continue
		}
		pending++
		if e.Remaining != nil && e.Remaining.Status == Overdue {
			overdue++
		}
	}
	return
}
