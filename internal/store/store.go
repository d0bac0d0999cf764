// Package store keeps the whole task collection in a single named slot.
//
// Every read loads the slot fresh and every write replaces it wholesale.
// There are no partial updates and no transactions; the backends only have
// to move bytes in and out of one location.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/model"
)

// ErrSlotEmpty is returned by Slot.Get when nothing has been stored yet.
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is one durable key/value location holding the serialized collection.
type Slot interface {
	Get() ([]byte, error)
	Put(data []byte) error
}

// Store does CRUD over the task collection kept in a Slot.
type Store struct {
	slot Slot
	log  *log.Logger
}

func New(slot Slot, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{slot: slot, log: logger}
}

// Load returns the stored tasks. An absent or malformed slot yields an empty
// collection; only I/O failures are returned as errors.
func (s *Store) Load() ([]model.Task, error) {
	b, err := s.slot.Get()
	if err != nil {
		if errors.Is(err, ErrSlotEmpty) {
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("read slot: %w", err)
	}
	tasks, err := decode(b)
	if err != nil {
		s.log.Warn("ignoring malformed task data", "err", err)
		return []model.Task{}, nil
	}
	return tasks, nil
}

// SaveAll overwrites the slot with tasks in a single write.
func (s *Store) SaveAll(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.slot.Put(b); err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	s.log.Debug("saved tasks", "count", len(tasks))
	return nil
}

// Add appends t. If t.ID is already taken the task gets max(id)+1, so ids stay
// unique; the stored task is returned.
func (s *Store) Add(t model.Task) (model.Task, error) {
	tasks, err := s.Load()
	if err != nil {
		return model.Task{}, err
	}
	var maxID int64
	taken := false
	for _, it := range tasks {
		if it.ID == t.ID {
			taken = true
		}
		if it.ID > maxID {
			maxID = it.ID
		}
	}
	if taken {
		t.ID = maxID + 1
	}
	tasks = append(tasks, t)
	if err := s.SaveAll(tasks); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// Remove deletes the task with id. It reports false, and writes nothing, when
// no task matched.
func (s *Store) Remove(id int64) (bool, error) {
	tasks, err := s.Load()
	if err != nil {
		return false, err
	}
	out := tasks[:0:0]
	for _, it := range tasks {
		if it.ID != id {
			out = append(out, it)
		}
	}
	if len(out) == len(tasks) {
		return false, nil
	}
	return true, s.SaveAll(out)
}

// SetCompleted sets the completed flag of the task with id.
func (s *Store) SetCompleted(id int64, value bool) (bool, error) {
	return s.update(id, func(t *model.Task) { t.Completed = value })
}

// Toggle flips the completed flag of the task with id.
func (s *Store) Toggle(id int64) (bool, error) {
	return s.update(id, func(t *model.Task) { t.Completed = !t.Completed })
}

func (s *Store) update(id int64, fn func(*model.Task)) (bool, error) {
	tasks, err := s.Load()
	if err != nil {
		return false, err
	}
	found := false
	for i := range tasks {
		if tasks[i].ID == id {
			fn(&tasks[i])
			found = true
		}
	}
	if !found {
		return false, nil
	}
	return true, s.SaveAll(tasks)
}

func decode(b []byte) ([]model.Task, error) {
	if err := validate(b); err != nil {
		return nil, err
	}
	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}
