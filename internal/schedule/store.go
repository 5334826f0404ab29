// Package schedule holds the canonical task list and team roster.
//
// A Store is not safe for concurrent use. The terminal UI mutates it only from
// its update loop, which serializes every write.
package schedule

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/gantt/internal/conflict"
	"github.com/javiermolinar/gantt/internal/notify"
	"github.com/javiermolinar/gantt/internal/task"
)

// Lookup errors. Callers driven by user input treat these as a no-op.
var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrMemberNotFound = errors.New("member not found")
)

// Store owns tasks, members and the derived conflict map.
type Store struct {
	tasks     []*task.Task
	members   []task.Member
	conflicts conflict.Map

	notifier notify.Notifier
	log      zerolog.Logger
	now      func() time.Time
	newID    func() string
}

// Option configures a Store.
type Option func(*Store)

// WithNotifier sets the event sink.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Store) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger sets the logger used for mutation traces.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDFunc overrides the id generator used by AddTask.
func WithIDFunc(f func() string) Option {
	return func(s *Store) {
		if f != nil {
			s.newID = f
		}
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		conflicts: conflict.Map{},
		notifier:  notify.Nop,
		log:       zerolog.Nop(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed replaces the roster and task list. Members and tasks are validated as
// a whole; on error the store is left unchanged.
func (s *Store) Seed(members []task.Member, tasks []*task.Task) error {
	roster := make([]task.Member, 0, len(members))
	for _, m := range members {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("member %q: %w", m.ID, err)
		}
		if slices.ContainsFunc(roster, func(x task.Member) bool { return x.ID == m.ID }) {
			return fmt.Errorf("member %q: %w", m.ID, task.ErrDuplicateMember)
		}
		roster = append(roster, m)
	}

	list := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t == nil {
			continue
		}
		if err := t.Validate(); err != nil {
			return fmt.Errorf("task %q: %w", t.ID, err)
		}
		if slices.ContainsFunc(list, func(x *task.Task) bool { return x.ID == t.ID }) {
			return fmt.Errorf("task %q: %w", t.ID, task.ErrDuplicateTaskID)
		}
		if err := checkAssignees(roster, t.AssignedTo); err != nil {
			return fmt.Errorf("task %q: %w", t.ID, err)
		}
		list = append(list, t.Clone())
	}

	s.members = roster
	s.tasks = list
	s.log.Debug().Int("members", len(roster)).Int("tasks", len(list)).Msg("schedule seeded")
	s.recompute()
	return nil
}

// AddTask appends a one-day, unassigned, medium priority task starting now.
// A blank title is ignored and returns nil, nil.
func (s *Store) AddTask(title string) (*task.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, nil
	}

	start := s.now()
	t := &task.Task{
		ID:           s.newID(),
		Title:        title,
		StartDate:    start,
		EndDate:      start.Add(task.Day),
		AssignedTo:   []string{},
		Priority:     task.PriorityMedium,
		Dependencies: []string{},
	}
	if err := s.insert(t); err != nil {
		return nil, err
	}

	s.emit(notify.Event{Kind: notify.TaskAdded, TaskID: t.ID, Message: "Task added successfully"})
	s.recompute()
	return t.Clone(), nil
}

// InsertTask appends a fully formed task, e.g. one produced by a
// collaborator. message overrides the default notification text.
func (s *Store) InsertTask(t *task.Task, message string) error {
	if t == nil {
		return task.ErrEmptyTaskID
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if err := checkAssignees(s.members, t.AssignedTo); err != nil {
		return err
	}
	if err := s.insert(t.Clone()); err != nil {
		return err
	}

	s.emit(notify.Event{Kind: notify.TaskAdded, TaskID: t.ID, Message: message})
	s.recompute()
	return nil
}

func (s *Store) insert(t *task.Task) error {
	if s.index(t.ID) >= 0 {
		return fmt.Errorf("%w: %s", task.ErrDuplicateTaskID, t.ID)
	}
	s.tasks = append(s.tasks, t)
	s.log.Debug().Str("task_id", t.ID).Str("title", t.Title).Msg("task added")
	return nil
}

// UpdateTask merges patch into the task. The merged task must satisfy every
// task invariant and reference only known members, otherwise the store is
// unchanged and the validation error is returned.
func (s *Store) UpdateTask(id string, patch task.Patch) (*task.Task, error) {
	i := s.index(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if patch.IsEmpty() {
		return s.tasks[i].Clone(), nil
	}

	merged := patch.Apply(s.tasks[i])
	if err := merged.Validate(); err != nil {
		s.log.Debug().Str("task_id", id).Err(err).Msg("update rejected")
		return nil, err
	}
	if err := checkAssignees(s.members, merged.AssignedTo); err != nil {
		s.log.Debug().Str("task_id", id).Err(err).Msg("update rejected")
		return nil, err
	}

	s.tasks[i] = merged
	s.log.Debug().
		Str("task_id", id).
		Time("start", merged.StartDate).
		Time("end", merged.EndDate).
		Msg("task updated")
	s.recompute()
	return merged.Clone(), nil
}

// DeleteTask removes the task.
func (s *Store) DeleteTask(id string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.log.Debug().Str("task_id", id).Msg("task deleted")

	s.emit(notify.Event{Kind: notify.TaskDeleted, TaskID: id, Message: "Task deleted"})
	s.recompute()
	return nil
}

// ToggleAssignment assigns the member to the task, or unassigns them if
// already assigned.
func (s *Store) ToggleAssignment(taskID, memberID string) error {
	i := s.index(taskID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	if _, ok := s.Member(memberID); !ok {
		return fmt.Errorf("%w: %s", ErrMemberNotFound, memberID)
	}

	current := s.tasks[i].AssignedTo
	var next []string
	if slices.Contains(current, memberID) {
		next = slices.DeleteFunc(slices.Clone(current), func(id string) bool { return id == memberID })
	} else {
		next = append(slices.Clone(current), memberID)
	}
	if next == nil {
		next = []string{}
	}

	_, err := s.UpdateTask(taskID, task.Patch{AssignedTo: next})
	return err
}

// ToggleCompleted flips the completed flag. Completing a task sets its
// progress to 100; reopening it resets progress to 0.
func (s *Store) ToggleCompleted(id string) error {
	t, ok := s.Task(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	completed := !t.Completed
	progress := 0
	if completed {
		progress = 100
	}
	_, err := s.UpdateTask(id, task.Patch{Completed: &completed, Progress: &progress})
	return err
}

// Task returns a copy of the task with the given id.
func (s *Store) Task(id string) (*task.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return nil, false
	}
	return s.tasks[i].Clone(), true
}

// Member returns the member with the given id.
func (s *Store) Member(id string) (task.Member, bool) {
	for _, m := range s.members {
		if m.ID == id {
			return m, true
		}
	}
	return task.Member{}, false
}

// Tasks returns copies of every task in insertion order.
func (s *Store) Tasks() []*task.Task {
	out := make([]*task.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Members returns the roster in insertion order.
func (s *Store) Members() []task.Member {
	return slices.Clone(s.members)
}

// Conflicts returns a copy of the current conflict map.
func (s *Store) Conflicts() conflict.Map {
	return s.conflicts.Clone()
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.tasks, func(t *task.Task) bool { return t.ID == id })
}

// recompute rebuilds the conflict map from scratch and reports it when it is
// non-empty and differs from the previous one.
func (s *Store) recompute() {
	next := conflict.Detect(s.tasks, s.members)
	changed := !next.Equal(s.conflicts)
	s.conflicts = next
	if !changed || next.Len() == 0 {
		return
	}
	s.log.Debug().Int("conflicts", next.Len()).Msg("conflicts detected")
	s.emit(notify.Event{Kind: notify.ConflictsDetected, Conflicts: next.Len()})
}

func (s *Store) emit(e notify.Event) {
	if e.At.IsZero() {
		e.At = s.now()
	}
	s.notifier.Notify(e)
}

func checkAssignees(members []task.Member, ids []string) error {
	for _, id := range ids {
		if !slices.ContainsFunc(members, func(m task.Member) bool { return m.ID == id }) {
			return fmt.Errorf("%w: %s", task.ErrUnknownAssignee, id)
		}
	}
	return nil
}
