// Package export writes the sorted task view in interchange formats.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/tada/internal/agenda"
	"github.com/idilsaglam/tada/internal/model"
)

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	ICS  Format = "ics"
	PDF  Format = "pdf"
)

// Formats lists every supported format.
func Formats() []Format { return []Format{JSON, YAML, ICS, PDF} }

// ParseFormat accepts a format name or a file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "ics", "ical", "icalendar":
		return ICS, nil
	case "pdf":
		return PDF, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Write exports entries (already sorted) as of now.
func Write(w io.Writer, f Format, entries []agenda.Entry, now time.Time) error {
	switch f {
	case JSON:
		return writeJSON(w, entries)
	case YAML:
		return writeYAML(w, entries, now)
	case ICS:
		return writeICS(w, entries, now)
	case PDF:
		return writePDF(w, entries, now)
	}
	return fmt.Errorf("unknown export format %q", f)
}

// writeJSON emits the slot format, so the output can be loaded back as-is.
func writeJSON(w io.Writer, entries []agenda.Entry) error {
	tasks := make([]model.Task, 0, len(entries))
	for _, e := range entries {
		tasks = append(tasks, e.Task)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tasks)
}

type yamlDoc struct {
	Generated string     `yaml:"generated"`
	Tasks     []yamlTask `yaml:"tasks"`
}

type yamlTask struct {
	model.Task `yaml:",inline"`
	Remaining  string `yaml:"remaining,omitempty"`
}

func writeYAML(w io.Writer, entries []agenda.Entry, now time.Time) error {
	doc := yamlDoc{Generated: now.Format(time.RFC3339), Tasks: make([]yamlTask, 0, len(entries))}
	for _, e := range entries {
		yt := yamlTask{Task: e.Task}
		if e.Remaining != nil {
			yt.Remaining = e.Remaining.Label()
		}
		doc.Tasks = append(doc.Tasks, yt)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
