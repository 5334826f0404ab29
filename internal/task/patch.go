package task

import (
	"slices"
	"time"
)

// Patch is a partial task update. Nil fields are left untouched.
type Patch struct {
	Title        *string
	Description  *string
	StartDate    *time.Time
	EndDate      *time.Time
	AssignedTo   []string // nil leaves assignees alone; empty slice clears them
	Completed    *bool
	Progress     *int
	Priority     *Priority
	Dependencies []string // nil leaves dependencies alone
}

// IsEmpty returns true if the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.StartDate == nil &&
		p.EndDate == nil &&
		p.AssignedTo == nil &&
		p.Completed == nil &&
		p.Progress == nil &&
		p.Priority == nil &&
		p.Dependencies == nil
}

// Apply returns a copy of t with the patch merged in. t is not modified.
func (p Patch) Apply(t *Task) *Task {
	out := t.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.StartDate != nil {
		out.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		out.EndDate = *p.EndDate
	}
	if p.AssignedTo != nil {
		out.AssignedTo = dedupe(p.AssignedTo)
	}
	if p.Completed != nil {
		out.Completed = *p.Completed
	}
	if p.Progress != nil {
		out.Progress = *p.Progress
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	if p.Dependencies != nil {
		out.Dependencies = dedupe(p.Dependencies)
	}
	return out
}

// Reschedule builds a patch that sets both interval boundaries.
func Reschedule(start, end time.Time) Patch {
	return Patch{StartDate: &start, EndDate: &end}
}

// SetStart builds a patch that only moves the start boundary.
func SetStart(start time.Time) Patch {
	return Patch{StartDate: &start}
}

// SetEnd builds a patch that only moves the end boundary.
func SetEnd(end time.Time) Patch {
	return Patch{EndDate: &end}
}

// dedupe drops repeated ids keeping first occurrences in order.
func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
