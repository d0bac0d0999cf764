package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/agenda"
	"github.com/idilsaglam/tada/internal/model"
)

func plain(t *testing.T) {
	t.Helper()
	SetColorMode(ColorNever)
	SetTheme("classic")
	t.Cleanup(func() { SetColorMode(ColorAuto) })
}

func sampleEntries() []agenda.Entry {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	d1 := model.Date{Year: 2026, Month: time.October, Day: 21}
	d2 := model.Date{Year: 2026, Month: time.October, Day: 18}
	return agenda.Build([]model.Task{
		{ID: 1, Title: "A", Desc: "first", Date: &d1},
		{ID: 2, Title: "B", Date: &d2, Completed: true},
		{ID: 3, Title: "C"},
	}, now)
}

func TestRenderAgendaFlat(t *testing.T) {
	plain(t)
	var buf bytes.Buffer
	RenderAgenda(&buf, sampleEntries(), ListOptions{IDs: true})
	out := buf.String()

	assert.Contains(t, out, "Tasks")
	assert.Contains(t, out, " 1. ☑ B (2)")
	assert.Contains(t, out, " 2. ☐ A (1)")
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "Deadline: Oct 21, 2026  ⏳ 2 days left")
	assert.Contains(t, out, "Deadline: Oct 18, 2026  ❌ 1 day overdue")
	assert.Contains(t, out, " 3. ☐ C (3)")

	iB := strings.Index(out, "☑ B")
	iA := strings.Index(out, "☐ A")
	iC := strings.Index(out, "☐ C")
	assert.True(t, iB < iA && iA < iC, "entries out of order:\n%s", out)
}

func TestRenderAgendaGrouped(t *testing.T) {
	plain(t)
	var buf bytes.Buffer
	RenderAgenda(&buf, sampleEntries(), ListOptions{Group: true})
	out := buf.String()

	pending := strings.Index(out, "Pending")
	done := strings.Index(out, "Done")
	require.True(t, pending >= 0 && done > pending)
	assert.Greater(t, strings.Index(out, "☑ B"), done)
	assert.Less(t, strings.Index(out, "☐ A"), done)
}

func TestRenderAgendaEmpty(t *testing.T) {
	plain(t)
	var buf bytes.Buffer
	RenderAgenda(&buf, nil, ListOptions{})
	assert.Contains(t, buf.String(), "no tasks")
}

func TestPanelFramesAreAligned(t *testing.T) {
	plain(t)
	var buf bytes.Buffer
	Panel(&buf, []string{"short", "a much longer line", "⏳ wide"})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	width := visibleWidth(lines[0])
	for _, ln := range lines {
		assert.Equal(t, width, visibleWidth(ln), "line %q", ln)
	}
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1))
}

func TestOKAndFail(t *testing.T) {
	plain(t)
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	defer SetOutput(os.Stdout, os.Stderr)

	OK("added")
	Fail("boom")
	assert.Equal(t, "✔ added\n", out.String())
	assert.Equal(t, "✖ boom\n", errOut.String())
}

func TestMonoThemeDisablesColor(t *testing.T) {
	SetColorMode(ColorAlways)
	SetTheme("mono")
	t.Cleanup(func() {
		SetColorMode(ColorAuto)
		SetTheme("classic")
	})
	assert.Equal(t, "x", C(fgRed, "x"))
	assert.Equal(t, "[ ]", Current().BoxUnchecked)
}
