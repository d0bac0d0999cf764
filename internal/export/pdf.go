package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/idilsaglam/tada/internal/agenda"
)

// writePDF renders a printable A4 checklist of the sorted view.
func writePDF(w io.Writer, entries []agenda.Entry, now time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Tasks", true)
	pdf.SetCreator("tada", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Tasks")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.Cell(0, 6, "As of "+now.Format("Jan 2, 2006 15:04"))
	pdf.Ln(10)

	if len(entries) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 8, "no tasks")
	}

	for _, e := range entries {
		box := "[ ]"
		if e.Task.Completed {
			box = "[x]"
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%2d. %s %s", e.Position, box, e.Task.Title)), "", "L", false)

		pdf.SetFont("Helvetica", "", 10)
		if e.Task.Desc != "" {
			pdf.SetX(20)
			pdf.MultiCell(0, 5, tr(e.Task.Desc), "", "L", false)
		}
		if e.Task.Date != nil && e.Remaining != nil {
			r, g, b := remainingColor(e.Remaining.Status)
			pdf.SetTextColor(r, g, b)
			pdf.SetX(20)
			pdf.Cell(0, 5, tr(fmt.Sprintf("Deadline: %s  (%s)", agenda.FormatDeadline(*e.Task.Date), e.Remaining.Label())))
			pdf.Ln(5)
		}
		pdf.Ln(2)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

func remainingColor(s agenda.Status) (int, int, int) {
	switch s {
	case agenda.Overdue:
		return 200, 30, 30
	case agenda.DueToday:
		return 210, 120, 0
	default:
		return 30, 140, 60
	}
}
