package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/idilsaglam/tada/internal/agenda"
)

const maxTitle = 80

// ListOptions tune the plain list rendering.
type ListOptions struct {
	Group bool // split into pending/done sections
	IDs   bool // show task ids next to positions
}

// RenderAgenda prints the framed task list with a header and progress bar.
func RenderAgenda(w io.Writer, entries []agenda.Entry, opt ListOptions) {
	t := Current()
	done, pending, overdue := agenda.Counts(entries)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d  %s %d",
		C(t.Title, "Tasks"),
		C(t.Success, symCheck), done,
		C(t.Pending, "•"), pending,
		C(t.Overdue, "!"), overdue,
		C(t.Accent, "Total"), len(entries),
	)

	lines := []string{header, C(t.Muted, ProgressBar(done, done+pending, 28)), ""}
	if opt.Group {
		lines = append(lines, groupLines(entries, opt)...)
	} else {
		lines = append(lines, entryLines(entries, opt)...)
	}
	lines = append(lines, "", C(t.Muted, "Tip: add with `tada add \"Buy milk\" --date 2026-10-21`"))
	Panel(w, lines)
}

// RemainingText is the colored annotation for a dated entry.
func RemainingText(r agenda.Remaining) string {
	t := Current()
	switch r.Status {
	case agenda.Overdue:
		return C(t.Overdue, t.SymOverdue+" "+r.Label())
	case agenda.DueToday:
		return C(t.DueToday, t.SymDueToday+" "+r.Label())
	default:
		return C(t.Upcoming, t.SymUpcoming+" "+r.Label())
	}
}

// DeadlineText is "Deadline: Oct 21, 2026  ⏳ 2 days left", or "" for a
// dateless entry.
func DeadlineText(e agenda.Entry) string {
	if e.Task.Date == nil || e.Remaining == nil {
		return ""
	}
	t := Current()
	return C(t.Muted, t.SymDeadline+" "+agenda.FormatDeadline(*e.Task.Date)) + "  " + RemainingText(*e.Remaining)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}

func entryLines(entries []agenda.Entry, opt ListOptions) []string {
	if len(entries) == 0 {
		return []string{C(Current().Muted, "no tasks")}
	}
	t := Current()
	out := make([]string, 0, len(entries)*3)
	for _, e := range entries {
		idx := fmt.Sprintf("%2d.", e.Position)
		box, color := t.BoxUnchecked, t.Muted
		title := truncate(e.Task.Title, maxTitle)
		if e.Task.Completed {
			box, color = t.BoxChecked, t.Success
			title = C(t.Done, title)
		}
		line := fmt.Sprintf("%s %s %s", C(dim, idx), C(color, box), title)
		if opt.IDs {
			line += " " + C(t.Muted, fmt.Sprintf("(%d)", e.Task.ID))
		}
		out = append(out, line)

		indent := strings.Repeat(" ", len(idx)+1+visibleWidth(box)+1)
		if e.Task.Desc != "" {
			out = append(out, indent+C(t.Muted, truncate(e.Task.Desc, maxTitle)))
		}
		if dl := DeadlineText(e); dl != "" {
			out = append(out, indent+dl)
		}
	}
	return out
}

func groupLines(entries []agenda.Entry, opt ListOptions) []string {
	var pend, done []agenda.Entry
	for _, e := range entries {
		if e.Task.Completed {
			done = append(done, e)
		} else {
			pend = append(pend, e)
		}
	}
	t := Current()
	var lines []string
	lines = append(lines, C(t.Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, C(t.Muted, "(none)"))
	} else {
		lines = append(lines, entryLines(pend, opt)...)
	}
	lines = append(lines, "")
	lines = append(lines, C(t.Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, C(t.Muted, "(none)"))
	} else {
		lines = append(lines, entryLines(done, opt)...)
	}
	return lines
}
