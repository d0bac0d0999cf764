package export

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/idilsaglam/tada/internal/agenda"
)

const productID = "-//tada//tasks//EN"

// writeICS emits one VTODO per task; dated tasks carry an all-day DUE.
func writeICS(w io.Writer, entries []agenda.Entry, now time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, e := range entries {
		todo := cal.AddTodo(fmt.Sprintf("%d@tada", e.Task.ID))
		todo.SetDtStampTime(now.UTC())
		todo.SetSummary(e.Task.Title)
		if e.Task.Desc != "" {
			todo.SetDescription(e.Task.Desc)
		}
		if e.Task.Date != nil {
			todo.SetProperty(ical.ComponentPropertyDue,
				e.Task.Date.In(time.UTC).Format("20060102"),
				ical.WithValue(string(ical.ValueDataTypeDate)))
		}
		status := "NEEDS-ACTION"
		if e.Task.Completed {
			status = "COMPLETED"
		}
		todo.SetProperty(ical.ComponentPropertyStatus, status)
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}
