// Package tui is the interactive task list.
package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/agenda"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/presenter"
)

// RefreshMsg asks the model to reload the collection. The refresh scheduler
// and the file watcher post it from their own goroutines.
type RefreshMsg struct{}

type keyMap struct {
	add, toggle, remove, undo, refresh, quit key.Binding
}

var keys = keyMap{
	add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done")),
	remove:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	undo:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
	refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the Bubble Tea model. Every mutation goes through the presenter
// and the list is rebuilt from the view it returns.
type Model struct {
	p       *presenter.Presenter
	list    list.Model
	entries []agenda.Entry

	adding bool
	form   addForm

	// single-level undo of the last delete
	undo *model.Task

	status string
	err    string
	width  int
	height int
}

// New loads the initial view.
func New(p *presenter.Presenter) (Model, error) {
	entries, err := p.View()
	if err != nil {
		return Model{}, err
	}

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("task", "tasks")
	l.DisableQuitKeybindings()

	extra := func() []key.Binding {
		return []key.Binding{keys.add, keys.toggle, keys.remove, keys.undo, keys.refresh, keys.quit}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	m := Model{p: p, list: l, form: newAddForm(), width: 80, height: 24}
	m.setEntries(entries)
	return m, nil
}

// Entries is the view currently shown.
func (m Model) Entries() []agenda.Entry { return m.entries }

// Err is the last error shown in the footer.
func (m Model) Err() string { return m.err }

func (m Model) Init() tea.Cmd { return nil }

// setEntries replaces the list content and keeps the cursor on the same task
// when it is still there.
func (m *Model) setEntries(entries []agenda.Entry) {
	var selected int64 = -1
	if it, ok := m.list.SelectedItem().(listItem); ok {
		selected = it.Task.ID
	}
	m.entries = entries
	m.list.SetItems(toItems(entries))
	m.list.Title = m.header()
	for i, e := range entries {
		if e.Task.ID == selected {
			m.list.Select(i)
			break
		}
	}
}

func (m Model) header() string {
	done, pending, overdue := agenda.Counts(m.entries)
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d  %s %d",
		titleStyle.Render("Tasks"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
		overdueStyle.Render("!"), overdue,
		accentStyle.Render("Total"), len(m.entries),
	)
}

func (m *Model) apply(entries []agenda.Entry, err error, status string) {
	if err != nil {
		m.err = err.Error()
		return
	}
	m.err = ""
	m.status = status
	m.setEntries(entries)
}

func (m Model) selected() (agenda.Entry, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it.Entry, ok
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case RefreshMsg:
		entries, err := m.p.View()
		m.apply(entries, err, m.status)
		return m, nil
	}

	if m.adding {
		return m.updateForm(msg)
	}

	km, isKey := msg.(tea.KeyMsg)
	if !isKey || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, keys.quit):
		if m.list.FilterState() == list.FilterApplied && km.String() == "esc" {
			break
		}
		return m, tea.Quit
	case key.Matches(km, keys.add):
		m.adding = true
		m.resize()
		return m, m.form.open()
	case key.Matches(km, keys.toggle):
		if e, ok := m.selected(); ok {
			entries, err := m.p.OnToggle(e.Task.ID)
			m.apply(entries, err, "toggled "+e.Task.Title)
		}
		return m, nil
	case key.Matches(km, keys.remove):
		if e, ok := m.selected(); ok {
			entries, err := m.p.OnDelete(e.Task.ID)
			if err == nil {
				t := e.Task
				m.undo = &t
			}
			m.apply(entries, err, "deleted "+e.Task.Title+" (u to undo)")
		}
		return m, nil
	case key.Matches(km, keys.undo):
		if m.undo != nil {
			t := *m.undo
			entries, err := m.p.OnRestore(t)
			if err == nil {
				m.undo = nil
			}
			m.apply(entries, err, "restored "+t.Title)
		}
		return m, nil
	case key.Matches(km, keys.refresh):
		entries, err := m.p.View()
		m.apply(entries, err, "refreshed")
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			m.adding = false
			m.form.close()
			m.resize()
			return m, nil
		case "tab", "down":
			return m, m.form.move(1)
		case "shift+tab", "up":
			return m, m.form.move(-1)
		case "enter":
			t, entries, err := m.p.OnAdd(m.form.draft())
			switch {
			case errors.Is(err, model.ErrEmptyTitle):
				m.form.err = "Please enter a task title."
				return m, nil
			case errors.Is(err, model.ErrInvalidDate):
				m.form.err = "Deadline must be YYYY-MM-DD."
				return m, nil
			case err != nil:
				m.form.err = err.Error()
				return m, nil
			}
			m.adding = false
			m.form.close()
			m.resize()
			m.apply(entries, nil, "added "+t.Title)
			return m, nil
		}
	}
	return m, m.form.update(msg)
}

func (m *Model) resize() {
	h := m.height - 4
	if m.adding {
		h -= 7
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
}

func (m Model) View() string {
	content := m.list.View()
	if m.adding {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		content += "\n" + bar.Render(m.form.view())
	}
	switch {
	case m.err != "":
		content += "\n" + errorStyle.Render("✖ "+m.err)
	case m.status != "":
		content += "\n" + mutedStyle.Render(m.status)
	}
	return panelStyle.Render(content)
}
