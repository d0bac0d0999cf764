package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyTitle  = errors.New("title cannot be empty")
	ErrInvalidDate = errors.New("invalid date, want YYYY-MM-DD")
)

// Task is the domain model for a todo entry.
// Only Completed changes after creation.
type Task struct {
	ID        int64  `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Desc      string `json:"desc" yaml:"desc,omitempty"`
	Date      *Date  `json:"date,omitempty" yaml:"date,omitempty"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// HasDate reports whether the task carries a deadline.
func (t Task) HasDate() bool { return t.Date != nil }

// UnmarshalJSON accepts "" and null as a missing date, the way older
// slots stored an untouched date input.
func (t *Task) UnmarshalJSON(b []byte) error {
	type alias Task
	var raw struct {
		alias
		Date *string `json:"date"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*t = Task(raw.alias)
	t.Date = nil
	if raw.Date != nil && strings.TrimSpace(*raw.Date) != "" {
		d, err := ParseDate(*raw.Date)
		if err != nil {
			return err
		}
		t.Date = &d
	}
	return nil
}

// Draft is what a user submits from a form or the command line.
type Draft struct {
	Title string
	Desc  string
	Date  string // YYYY-MM-DD or empty
}

// NewTask validates a draft and builds a task created at now.
func NewTask(d Draft, now time.Time) (Task, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}
	t := Task{
		ID:    now.UnixMilli(),
		Title: title,
		Desc:  strings.TrimSpace(d.Desc),
	}
	if s := strings.TrimSpace(d.Date); s != "" {
		date, err := ParseDate(s)
		if err != nil {
			return Task{}, err
		}
		t.Date = &date
	}
	return t, nil
}

// Date is a calendar day with no time zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const dateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	tm, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(tm), nil
}

// DateOf returns the calendar day of tm in tm's location.
func DateOf(tm time.Time) Date {
	y, m, d := tm.Date()
	return Date{Year: y, Month: m, Day: d}
}

// In returns midnight of the day in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays shifts the date by n calendar days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.In(time.UTC).AddDate(0, 0, n))
}

func (d Date) String() string {
	return d.In(time.UTC).Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalYAML() (any, error) { return d.String(), nil }
