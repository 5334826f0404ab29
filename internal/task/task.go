// Package task defines the core domain types for gantt.
package task

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// Day is the minimum duration a resize may leave a task with.
const Day = 24 * time.Hour

// Validation errors.
var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrEndBeforeStart  = errors.New("end date must be after start date")
	ErrInvalidPriority = errors.New("priority must be 'low', 'medium' or 'high'")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
	ErrDuplicateTaskID = errors.New("task id already exists")
	ErrEmptyTaskID     = errors.New("task id cannot be empty")
	ErrUnknownAssignee = errors.New("assignee is not a known member")
	ErrDuplicateMember = errors.New("member id already exists")
	ErrEmptyMemberID   = errors.New("member id cannot be empty")
	ErrEmptyMemberName = errors.New("member name cannot be empty")
	ErrSelfDependency  = errors.New("task cannot depend on itself")
)

// Priority ranks a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid returns true if the priority is a known value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// ParsePriority parses a case-insensitive priority name.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

// Priorities lists every priority from lowest to highest.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// Member is a person tasks can be assigned to.
type Member struct {
	ID     string
	Name   string
	Avatar string // short label, e.g. "AJ"
	Color  string // "#RRGGBB"
	Email  string
}

// Validate checks the member has the fields the roster needs.
func (m *Member) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return ErrEmptyMemberID
	}
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyMemberName
	}
	return nil
}

// Task is a time-bound unit of work on the timeline.
type Task struct {
	ID           string
	Title        string
	Description  string
	StartDate    time.Time
	EndDate      time.Time
	AssignedTo   []string // member ids, insertion ordered, no duplicates
	Completed    bool
	Progress     int // 0-100
	Priority     Priority
	Dependencies []string // task ids; stored but not enforced
}

// Validate checks the task invariants that hold for every stored task.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyTaskID
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.StartDate.Before(t.EndDate) {
		return ErrEndBeforeStart
	}
	if t.Progress < 0 || t.Progress > 100 {
		return ErrInvalidProgress
	}
	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	if slices.Contains(t.Dependencies, t.ID) {
		return ErrSelfDependency
	}
	return nil
}

// Duration returns the length of the task interval.
func (t *Task) Duration() time.Duration {
	return t.EndDate.Sub(t.StartDate)
}

// Overlaps reports whether two tasks share any instant.
// Intervals are open: a task ending exactly when another starts does not overlap it.
func (t *Task) Overlaps(other *Task) bool {
	if other == nil {
		return false
	}
	return IntervalsOverlap(t.StartDate, t.EndDate, other.StartDate, other.EndDate)
}

// IsAssigned returns true if the member is one of the task's assignees.
func (t *Task) IsAssigned(memberID string) bool {
	return slices.Contains(t.AssignedTo, memberID)
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.AssignedTo = slices.Clone(t.AssignedTo)
	c.Dependencies = slices.Clone(t.Dependencies)
	return &c
}

// IntervalsOverlap returns true if [start1, end1) and [start2, end2) intersect.
// Two ranges overlap if: start1 < end2 AND start2 < end1
func IntervalsOverlap(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}
