package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
)

const (
	fieldTitle = iota
	fieldDesc
	fieldDate
	fieldCount
)

// addForm is the inline "new task" form: title, description, date.
type addForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

func newAddForm() addForm {
	var f addForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 200
		f.inputs[i] = ti
	}
	f.inputs[fieldTitle].Placeholder = "Title (required)"
	f.inputs[fieldDesc].Placeholder = "Description"
	f.inputs[fieldDate].Placeholder = "Deadline YYYY-MM-DD"
	f.inputs[fieldDate].CharLimit = 10
	return f
}

func (f *addForm) open() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.err = ""
	f.focus = fieldTitle
	return f.inputs[fieldTitle].Focus()
}

func (f *addForm) close() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.err = ""
}

func (f *addForm) move(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.inputs[f.focus].Focus()
}

func (f *addForm) draft() model.Draft {
	return model.Draft{
		Title: f.inputs[fieldTitle].Value(),
		Desc:  f.inputs[fieldDesc].Value(),
		Date:  f.inputs[fieldDate].Value(),
	}
}

func (f *addForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *addForm) view() string {
	header := "Add new task"
	if f.err != "" {
		header += "  " + errorStyle.Render(f.err)
	}
	lines := []string{header}
	for i := range f.inputs {
		lines = append(lines, f.inputs[i].View())
	}
	lines = append(lines, helpStyle.Render("tab next field • enter save • esc cancel"))
	return strings.Join(lines, "\n")
}
