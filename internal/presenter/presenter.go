// Package presenter holds the command handlers behind every front end.
//
// Each handler mutates through the store, then reloads the whole collection,
// sorts and annotates it, and returns the fresh view. Front ends only render
// what they get back.
package presenter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/agenda"
	"github.com/idilsaglam/tada/internal/model"
)

var ErrNotFound = errors.New("task not found")

// Repository is the slice of the store the presenter needs.
type Repository interface {
	Load() ([]model.Task, error)
	Add(t model.Task) (model.Task, error)
	Remove(id int64) (bool, error)
	Toggle(id int64) (bool, error)
}

type Presenter struct {
	repo Repository
	now  func() time.Time
	log  *log.Logger
}

type Option func(*Presenter)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Presenter) { p.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(p *Presenter) { p.log = l }
}

func New(repo Repository, opts ...Option) *Presenter {
	p := &Presenter{repo: repo, now: time.Now, log: log.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Now is the presenter's clock.
func (p *Presenter) Now() time.Time { return p.now() }

// View reloads the collection and returns it sorted and annotated.
func (p *Presenter) View() ([]agenda.Entry, error) {
	tasks, err := p.repo.Load()
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return agenda.Build(tasks, p.now()), nil
}

// OnAdd validates the draft and stores a new task. Validation failures leave
// the store untouched.
func (p *Presenter) OnAdd(d model.Draft) (model.Task, []agenda.Entry, error) {
	t, err := model.NewTask(d, p.now())
	if err != nil {
		return model.Task{}, nil, err
	}
	t, err = p.repo.Add(t)
	if err != nil {
		return model.Task{}, nil, fmt.Errorf("add: %w", err)
	}
	p.log.Debug("task added", "id", t.ID, "title", t.Title)
	view, err := p.View()
	return t, view, err
}

// OnToggle flips completion of the task with id.
func (p *Presenter) OnToggle(id int64) ([]agenda.Entry, error) {
	ok, err := p.repo.Toggle(id)
	if err != nil {
		return nil, fmt.Errorf("toggle: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	p.log.Debug("task toggled", "id", id)
	return p.View()
}

// OnDelete removes the task with id.
func (p *Presenter) OnDelete(id int64) ([]agenda.Entry, error) {
	ok, err := p.repo.Remove(id)
	if err != nil {
		return nil, fmt.Errorf("remove: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	p.log.Debug("task removed", "id", id)
	return p.View()
}

// OnRestore puts back a previously deleted task with its original id.
func (p *Presenter) OnRestore(t model.Task) ([]agenda.Entry, error) {
	if _, err := p.repo.Add(t); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	p.log.Debug("task restored", "id", t.ID)
	return p.View()
}

// Resolve maps a command-line reference to a task id. A number equal to a
// stored id wins; otherwise it is read as a 1-based position in view.
func Resolve(ref string, view []agenda.Entry) (int64, error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "#")
	n, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", ref)
	}
	for _, e := range view {
		if e.Task.ID == n {
			return n, nil
		}
	}
	if n >= 1 && n <= int64(len(view)) {
		return view[n-1].Task.ID, nil
	}
	return 0, fmt.Errorf("%w: %s (have %d)", ErrNotFound, ref, len(view))
}
