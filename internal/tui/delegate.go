package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/agenda"
)

// listItem adapts an agenda entry to bubbles/list.Item.
type listItem struct {
	agenda.Entry
}

func (i listItem) Title() string       { return i.Task.Title }
func (i listItem) Description() string { return i.Task.Desc }
func (i listItem) FilterValue() string { return i.Task.Title + " " + i.Task.Desc }

func toItems(entries []agenda.Entry) []list.Item {
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, listItem{Entry: e})
	}
	return items
}

// remainingStyled colors the annotation by urgency.
func remainingStyled(r agenda.Remaining) string {
	switch r.Status {
	case agenda.Overdue:
		return overdueStyle.Render("❌ " + r.Label())
	case agenda.DueToday:
		return dueTodayStyle.Render("🕒 " + r.Label())
	default:
		return upcomingStyle.Render("⏳ " + r.Label())
	}
}

// itemDelegate renders each task on two lines: title, then details.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 2 }
func (d itemDelegate) Spacing() int                              { return 1 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}

	box := mutedStyle.Render(boxUnchecked)
	title := it.Task.Title
	if it.Task.Completed {
		box = successStyle.Render(boxChecked)
		title = doneStyle.Render(title)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}

	var details []string
	if it.Task.Desc != "" {
		details = append(details, mutedStyle.Render(it.Task.Desc))
	}
	if it.Task.Date != nil && it.Remaining != nil {
		details = append(details,
			mutedStyle.Render("Deadline: "+agenda.FormatDeadline(*it.Task.Date)),
			remainingStyled(*it.Remaining))
	}

	fmt.Fprintf(w, "%s%s %s\n", prefix, box, title)
	fmt.Fprintf(w, "    %s", strings.Join(details, "  "))
}
